package symbols

import (
	"fmt"

	"qres/internal/ast"
	"qres/internal/hir"
	"qres/internal/trace"
)

// ResolvePackage runs both sub-passes over pkg: declarations are bound into
// table first, then every reference is resolved. Errors from both passes are
// returned in Output, declaration errors first.
func ResolvePackage(table *GlobalTable, pkg *ast.Package, assigner *hir.Assigner, opts ResolverOptions) Output {
	tracer := opts.Tracer
	if tracer == nil {
		tracer = trace.Nop
	}

	bind := trace.Begin(tracer, trace.ScopePass, "bind-declarations", opts.TraceParent)
	declErrs := table.AddLocalPackage(assigner, pkg)
	bind.End(fmt.Sprintf("errors=%d", len(declErrs)))

	pass := trace.Begin(tracer, trace.ScopePass, "resolve-references", opts.TraceParent)
	opts.TraceParent = pass.ID()
	r := NewResolver(table, opts)
	r.errors = append(r.errors, declErrs...)
	if opts.Persistent {
		r.BindFragments(&ast.Package{Nodes: topLevelItems(pkg)}, assigner)
	}
	r.Resolve(pkg, assigner)
	out := r.Finish()
	pass.End(fmt.Sprintf("names=%d scopes=%d errors=%d", len(out.Names), out.Locals.Len(), len(out.Errors)))
	return out
}

// topLevelItems keeps the item statements of pkg; namespaces are already
// bound by AddLocalPackage.
func topLevelItems(pkg *ast.Package) []*ast.TopLevelNode {
	var out []*ast.TopLevelNode
	for _, node := range pkg.Nodes {
		if node != nil && node.Stmt != nil && node.Stmt.Kind == ast.StmtItem {
			out = append(out, node)
		}
	}
	return out
}

package symbols

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"fortio.org/safecast"

	"qres/internal/ast"
	"qres/internal/hir"
	"qres/internal/namespaces"
	"qres/internal/source"
	"qres/internal/trace"
)

// DroppedName is a declaration that existed in an earlier configuration of
// the program but was removed. References to it report NotAvailable.
type DroppedName struct {
	Namespace []string `toml:"namespace" json:"namespace"`
	Name      string   `toml:"name" json:"name"`
}

// Qualified returns "Namespace.Name".
func (d DroppedName) Qualified() string {
	if len(d.Namespace) == 0 {
		return d.Name
	}
	return strings.Join(d.Namespace, ".") + "." + d.Name
}

// ResolverOptions configures resolver construction.
type ResolverOptions struct {
	Dropped []DroppedName
	// Persistent opens a block scope spanning every offset. It stays on the
	// chain for the resolver's lifetime, so fragments resolved one after
	// another see each other's bindings.
	Persistent bool
	Tracer     trace.Tracer
	// TraceParent is the span ID node events are attached to.
	TraceParent uint64
}

// Resolver drives scope management, binding and reference resolution for
// one package. It owns the global scope handed over by the GlobalTable.
type Resolver struct {
	names      Names
	dropped    []DroppedName
	currParams map[string]struct{}
	chain      []ScopeID
	globals    *GlobalScope
	locals     *Locals
	errors     []*Error

	tracer      trace.Tracer
	traceParent uint64
}

// NewResolver takes ownership of table.
func NewResolver(table *GlobalTable, opts ResolverOptions) *Resolver {
	tracer := opts.Tracer
	if tracer == nil {
		tracer = trace.Nop
	}
	names := table.Names
	if names == nil {
		names = make(Names)
	}
	r := &Resolver{
		names:       names,
		dropped:     slices.Clone(opts.Dropped),
		globals:     table.Scope,
		locals:      NewLocals(),
		chain:       make([]ScopeID, 0, 8),
		tracer:      tracer,
		traceParent: opts.TraceParent,
	}
	if opts.Persistent {
		r.pushScope(source.Span{Start: 0, End: math.MaxUint32}, ScopeBlock, namespaces.Root)
	}
	return r
}

// Names returns the resolutions recorded so far.
func (r *Resolver) Names() Names { return r.names }

// Locals returns the scope arena.
func (r *Resolver) Locals() *Locals { return r.locals }

// Globals returns the global scope.
func (r *Resolver) Globals() *GlobalScope { return r.globals }

// Namespaces returns the namespace tree.
func (r *Resolver) Namespaces() *namespaces.Tree { return r.globals.Namespaces() }

// DrainErrors returns the accumulated errors and clears the list.
func (r *Resolver) DrainErrors() []*Error {
	errs := r.errors
	r.errors = nil
	return errs
}

// ExtendDroppedNames adds names tracked as removed.
func (r *Resolver) ExtendDroppedNames(names []DroppedName) {
	r.dropped = append(r.dropped, names...)
}

// Output is the finished result of a resolution pass. It is read-only and
// safe to share between goroutines.
type Output struct {
	Names      Names
	Locals     *Locals
	Errors     []*Error
	Namespaces *namespaces.Tree
}

// Finish hands the results over; the resolver must not be used afterwards.
// The namespace tree is copied because the table outlives the pass.
func (r *Resolver) Finish() Output {
	return Output{
		Names:      r.names,
		Locals:     r.locals,
		Errors:     r.errors,
		Namespaces: r.globals.Namespaces().Clone(),
	}
}

// BindFragments binds the namespaces and top-level item statements of a
// package fragment. Used with persistent resolvers for incremental input.
func (r *Resolver) BindFragments(pkg *ast.Package, assigner *hir.Assigner) {
	for _, node := range pkg.Nodes {
		switch {
		case node == nil:
		case node.Namespace != nil:
			r.errors = bindGlobalItems(r.names, r.globals, node.Namespace, assigner, r.errors)
		case node.Stmt != nil && node.Stmt.Kind == ast.StmtItem:
			r.bindLocalItem(assigner, node.Stmt.Item)
		}
	}
}

func (r *Resolver) checkItemStatus(res Res, name string, span source.Span) {
	if res.IsUnimplemented() {
		r.errors = append(r.errors, &Error{Kind: ErrUnimplemented, Name: name, Span: span})
	}
}

func (r *Resolver) scopeChain() []*Scope {
	return r.locals.chain(r.chain)
}

func (r *Resolver) resolveIdent(kind NameKind, name *ast.Ident) {
	res, err := resolve(kind, r.globals, r.scopeChain(), name, nil)
	if err != nil {
		r.errors = append(r.errors, err)
		return
	}
	r.checkItemStatus(res, name.Name, name.Span)
	r.names[name.ID] = res
}

func (r *Resolver) resolvePath(kind NameKind, path *ast.Path) {
	if path == nil || path.Name == nil {
		return
	}
	res, err := resolve(kind, r.globals, r.scopeChain(), path.Name, path.Namespace)
	if err != nil {
		if err.Kind == ErrNotFound {
			if dropped, ok := r.findDropped(err.Name); ok {
				err = &Error{Kind: ErrNotAvailable, Name: err.Name, Hint: dropped.Qualified(), Span: err.Span}
			}
		}
		r.errors = append(r.errors, err)
		return
	}
	r.checkItemStatus(res, path.Name.Name, path.Span)
	r.names[path.ID] = res
}

func (r *Resolver) findDropped(name string) (DroppedName, bool) {
	for _, d := range r.dropped {
		if d.Name == name {
			return d, true
		}
	}
	return DroppedName{}, false
}

// bindPat binds every name in pat in the current scope. validAt is the
// offset from which the names are visible: the end of a let statement, the
// end of a parameter list, or the start of a loop or lambda scope.
func (r *Resolver) bindPat(pat *ast.Pat, validAt uint32) {
	r.bindPatRecursive(pat, validAt, make(map[string]struct{}))
}

func (r *Resolver) bindPatRecursive(pat *ast.Pat, validAt uint32, bindings map[string]struct{}) {
	if pat == nil {
		return
	}
	switch pat.Kind {
	case ast.PatBind:
		name := pat.Name
		if name == nil {
			return
		}
		if _, dup := bindings[name.Name]; dup {
			r.errors = append(r.errors, &Error{Kind: ErrDuplicateBinding, Name: name.Name, Span: name.Span})
		}
		bindings[name.Name] = struct{}{}
		r.names[name.ID] = LocalRes(name.ID)
		r.currentScope().declareVar(name.Name, validAt, name.ID)
	case ast.PatParen, ast.PatTuple:
		for _, item := range pat.Items {
			r.bindPatRecursive(item, validAt, bindings)
		}
	}
}

// bindOpen adds an open of path to the current scope under alias, or under
// the path itself when alias is nil.
func (r *Resolver) bindOpen(path ast.Idents, alias *ast.Ident) {
	id, ok := r.globals.FindNamespace(path.Names())
	if !ok {
		r.errors = append(r.errors, notFound(path.String(), path.Span()))
		return
	}
	key := path.String()
	if alias != nil {
		key = alias.Name
	}
	r.currentScope().addOpen(key, Open{Namespace: id, Span: path.Span()})
}

// bindLocalItem binds an item declared inside a block (or at the top level
// of a fragment) in the current scope.
func (r *Resolver) bindLocalItem(assigner *hir.Assigner, item *ast.Item) {
	if item == nil {
		return
	}
	switch item.Kind {
	case ast.ItemOpen:
		if item.Open != nil {
			r.bindOpen(item.Open.Namespace, item.Open.Alias)
		}
	case ast.ItemCallable:
		if item.Callable == nil || item.Callable.Name == nil {
			return
		}
		name := item.Callable.Name
		it := scopeItem{id: hir.Intrapackage(assigner.NextItem()), status: itemStatus(item.Attrs)}
		r.names[name.ID] = ItemRes(it.id, it.status)
		r.currentScope().declareTerm(name.Name, it)
	case ast.ItemTy:
		if item.Ty == nil || item.Ty.Name == nil {
			return
		}
		name := item.Ty.Name
		it := scopeItem{id: hir.Intrapackage(assigner.NextItem()), status: itemStatus(item.Attrs)}
		r.names[name.ID] = ItemRes(it.id, it.status)
		scope := r.currentScope()
		scope.declareTy(name.Name, it)
		scope.declareTerm(name.Name, it)
	}
}

func (r *Resolver) bindTypeParameters(decl *ast.CallableDecl) {
	for ix, generic := range decl.Generics {
		if generic == nil {
			continue
		}
		raw, err := safecast.Conv[uint32](ix)
		if err != nil {
			panic(fmt.Errorf("type parameter index overflow: %w", err))
		}
		id := hir.ParamID(raw)
		r.currentScope().declareTyParam(generic.Name, id)
		r.names[generic.ID] = ParamRes(id)
	}
}

func (r *Resolver) pushScope(span source.Span, kind ScopeKind, ns namespaces.ID) {
	id := r.locals.push(newScope(kind, span, ns))
	r.chain = append(r.chain, id)
	if r.tracer.Enabled() {
		trace.Point(r.tracer, trace.ScopeNode, "push-scope", fmt.Sprintf("%s %s", kind, span), r.traceParent)
	}
}

func (r *Resolver) popScope() {
	if len(r.chain) == 0 {
		panic("pushed scope should be the last element on the stack")
	}
	id := r.chain[len(r.chain)-1]
	r.chain = r.chain[:len(r.chain)-1]
	if r.tracer.Enabled() {
		scope := r.locals.mustGet(id)
		trace.Point(r.tracer, trace.ScopeNode, "pop-scope", fmt.Sprintf("%s %s", scope.Kind, scope.Span), r.traceParent)
	}
}

// currentScope returns the innermost scope on the chain.
func (r *Resolver) currentScope() *Scope {
	if len(r.chain) == 0 {
		panic("there should be at least one scope at location")
	}
	return r.locals.mustGet(r.chain[len(r.chain)-1])
}

// withScope runs fn inside a fresh scope; the scope is popped on every exit
// path.
func (r *Resolver) withScope(span source.Span, kind ScopeKind, ns namespaces.ID, fn func()) {
	r.pushScope(span, kind, ns)
	defer r.popScope()
	fn()
}

// withPat runs fn in a block scope where pat's names are visible from the
// start of span.
func (r *Resolver) withPat(span source.Span, pat *ast.Pat, fn func()) {
	r.withScope(span, ScopeBlock, namespaces.Root, func() {
		r.bindPat(pat, span.Start)
		fn()
	})
}

// withSpecPat is withPat for specialization inputs: rebinding one of the
// callable's parameter names is a duplicate binding.
func (r *Resolver) withSpecPat(span source.Span, pat *ast.Pat, fn func()) {
	bindings := make(map[string]struct{}, len(r.currParams))
	for name := range r.currParams {
		bindings[name] = struct{}{}
	}
	r.withScope(span, ScopeBlock, namespaces.Root, func() {
		r.bindPatRecursive(pat, span.Start, bindings)
		fn()
	})
}

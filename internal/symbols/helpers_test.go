package symbols

import (
	"testing"

	"qres/internal/ast"
	"qres/internal/hir"
)

func layoutAndResolve(t *testing.T, pkg *ast.Package, opts ResolverOptions) (Output, *GlobalTable) {
	t.Helper()
	ast.Layout(pkg, 1)
	table := NewGlobalTable()
	out := ResolvePackage(table, pkg, hir.NewAssigner(), opts)
	if err := out.Locals.Validate(out.Namespaces); err != nil {
		t.Fatalf("locals invariant violated: %v", err)
	}
	if err := table.Scope.Validate(); err != nil {
		t.Fatalf("global scope invariant violated: %v", err)
	}
	return out, table
}

func resolveOK(t *testing.T, pkg *ast.Package) Output {
	t.Helper()
	out, _ := layoutAndResolve(t, pkg, ResolverOptions{})
	if len(out.Errors) != 0 {
		t.Fatalf("expected no errors, got %v", out.Errors)
	}
	return out
}

func localItem(n hir.LocalItemID) Res {
	return ItemRes(hir.Intrapackage(n), hir.StatusAvailable)
}

func errorKinds(errs []*Error) []ErrorKind {
	out := make([]ErrorKind, len(errs))
	for i, err := range errs {
		out[i] = err.Kind
	}
	return out
}

func expectRes(t *testing.T, out Output, id ast.NodeID, want Res) {
	t.Helper()
	got, ok := out.Names[id]
	if !ok {
		t.Fatalf("node %d: expected %s, got no resolution (errors: %v)", id, want, out.Errors)
	}
	if got != want {
		t.Fatalf("node %d: expected %s, got %s", id, want, got)
	}
}

func expectUnresolved(t *testing.T, out Output, id ast.NodeID) {
	t.Helper()
	if got, ok := out.Names[id]; ok {
		t.Fatalf("node %d: expected no resolution, got %s", id, got)
	}
}

func singleError(t *testing.T, out Output, kind ErrorKind) *Error {
	t.Helper()
	if len(out.Errors) != 1 || out.Errors[0].Kind != kind {
		t.Fatalf("expected a single %s error, got %v", kind, errorKinds(out.Errors))
	}
	return out.Errors[0]
}

package symbols

import (
	"testing"

	"qres/internal/ast"
	"qres/internal/hir"
	"qres/internal/source"
)

func TestNewGlobalTableDeclaresPreludeAndBuiltins(t *testing.T) {
	table := NewGlobalTable()
	for _, path := range Prelude {
		if _, ok := table.Scope.FindNamespace(path); !ok {
			t.Fatalf("expected prelude namespace %v to exist", path)
		}
	}
	core, _ := table.Scope.FindNamespace(CoreNamespace)
	tests := []struct {
		name string
		want Res
	}{
		{"Int", PrimRes(hir.PrimInt)},
		{"Qubit", PrimRes(hir.PrimQubit)},
		{"Result", PrimRes(hir.PrimResult)},
		{"Unit", UnitRes()},
	}
	for _, tt := range tests {
		got, ok := table.Scope.Get(NameTy, core, tt.name)
		if !ok || got != tt.want {
			t.Fatalf("%s: expected %s, got %s (found=%v)", tt.name, tt.want, got, ok)
		}
		if _, ok := table.Scope.Get(NameTerm, core, tt.name); ok {
			t.Fatalf("%s: builtin types must not be terms", tt.name)
		}
	}
}

func TestBindItemKeepsFirstDeclaration(t *testing.T) {
	scope := NewGlobalScope()
	ns := scope.InsertOrFindNamespace([]string{"A", "B"})
	first := localItem(1)
	if err := scope.BindItem(NameTerm, ns, "F", first, source.Span{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err := scope.BindItem(NameTerm, ns, "F", localItem(2), source.Span{Start: 5, End: 6})
	if err == nil || err.Kind != ErrDuplicate || err.Namespace != "A.B" {
		t.Fatalf("expected Duplicate in A.B, got %v", err)
	}
	if got, _ := scope.Get(NameTerm, ns, "F"); got != first {
		t.Fatalf("expected first declaration %s to stay, got %s", first, got)
	}
	if err := scope.BindItem(NameTy, ns, "F", localItem(3), source.Span{}); err != nil {
		t.Fatalf("types and terms are separate tables, got %v", err)
	}
}

func TestBindNewtypeIsAtomic(t *testing.T) {
	fn := ast.FunctionItem("P", ast.TuplePat())
	out, table := layoutAndResolve(t, ast.NewPackage(ast.NamespaceNode("A",
		fn,
		ast.NewtypeItem("P", ast.FieldDef("", ast.PathTy("Int"))),
	)), ResolverOptions{})

	err := singleError(t, out, ErrDuplicate)
	if err.Name != "P" || err.Namespace != "A" {
		t.Fatalf("expected duplicate P in A, got %q in %q", err.Name, err.Namespace)
	}
	ns, _ := table.Scope.FindNamespace([]string{"A"})
	if _, ok := table.Scope.Get(NameTy, ns, "P"); ok {
		t.Fatalf("expected no type entry for the rejected newtype")
	}
	if got, _ := table.Scope.Get(NameTerm, ns, "P"); got != localItem(2) {
		t.Fatalf("expected the callable to keep the term, got %s", got)
	}
}

func TestDuplicateDeclarationsStillGetNames(t *testing.T) {
	first := ast.FunctionItem("F", ast.TuplePat())
	second := ast.FunctionItem("F", ast.TuplePat())
	out, _ := layoutAndResolve(t, ast.NewPackage(ast.NamespaceNode("A", first, second)), ResolverOptions{})
	singleError(t, out, ErrDuplicate)
	expectRes(t, out, first.Callable.Name.ID, localItem(2))
	expectRes(t, out, second.Callable.Name.ID, localItem(3))
}

func TestDuplicateIntrinsicAcrossNamespaces(t *testing.T) {
	out, table := layoutAndResolve(t, ast.NewPackage(
		ast.NamespaceNode("A", ast.CallableItem(ast.IntrinsicFunction("M", ast.TuplePat()))),
		ast.NamespaceNode("B", ast.CallableItem(ast.IntrinsicFunction("M", ast.TuplePat()))),
	), ResolverOptions{})
	singleError(t, out, ErrDuplicateIntrinsic)
	if !table.Scope.IsIntrinsic("M") {
		t.Fatalf("expected M to be recorded as intrinsic")
	}
}

func TestDuplicateBindingStillBinds(t *testing.T) {
	first := ast.BindPat("a", nil)
	second := ast.BindPat("a", nil)
	ref := ast.PathExpr("a")
	out, _ := layoutAndResolve(t, ast.NewPackage(ast.NamespaceNode("A",
		ast.FunctionItem("F", ast.TuplePat(),
			ast.LetStmt(ast.TuplePat(first, second), ast.TupleExpr(ast.LitExpr("1"), ast.LitExpr("2"))),
			ast.SemiStmt(ref),
		),
	)), ResolverOptions{})

	err := singleError(t, out, ErrDuplicateBinding)
	if err.Span != second.Name.Span {
		t.Fatalf("expected error on the second binding %s, got %s", second.Name.Span, err.Span)
	}
	expectRes(t, out, first.Name.ID, LocalRes(first.Name.ID))
	expectRes(t, out, second.Name.ID, LocalRes(second.Name.ID))
	expectRes(t, out, ref.Path.ID, LocalRes(second.Name.ID))
}

func TestSpecializationInputCannotRebindParameter(t *testing.T) {
	param := ast.BindPat("q", ast.PathTy("Qubit"))
	bodyRef := ast.PathExpr("q")
	specQ := ast.BindPat("q", nil)
	ctlRef := ast.PathExpr("q")
	decl := ast.Operation("Op", ast.TuplePat(param)).WithSpecs(
		ast.SpecImplDecl(ast.SpecBody, ast.ElidedPat(), ast.SemiStmt(bodyRef)),
		ast.SpecImplDecl(ast.SpecCtl, ast.TuplePat(ast.BindPat("ctls", nil), specQ), ast.SemiStmt(ctlRef)),
	)
	out, _ := layoutAndResolve(t, ast.NewPackage(ast.NamespaceNode("A", ast.CallableItem(decl))), ResolverOptions{})

	err := singleError(t, out, ErrDuplicateBinding)
	if err.Span != specQ.Name.Span {
		t.Fatalf("expected error on the specialization binding %s, got %s", specQ.Name.Span, err.Span)
	}
	expectRes(t, out, bodyRef.Path.ID, LocalRes(param.Name.ID))
	expectRes(t, out, ctlRef.Path.ID, LocalRes(specQ.Name.ID))
}

package symbols

import (
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"

	"qres/internal/ast"
	"qres/internal/hir"
)

func libraryPackage() *ast.Package {
	return ast.NewPackage(
		ast.NamespaceNode("Lib",
			ast.FunctionItem("Pub", ast.TuplePat()),
			ast.FunctionItem("Hidden", ast.TuplePat()).Internal(),
			ast.CallableItem(ast.IntrinsicFunction("Intr", ast.TuplePat())).Internal(),
			ast.NewtypeItem("Pair", ast.TupleDef(ast.FieldDef("", ast.PathTy("Int")), ast.FieldDef("", ast.PathTy("Int")))),
		),
		ast.NamespaceNode("Secret", ast.FunctionItem("S", ast.TuplePat()).Internal()),
	)
}

func TestExportPackage(t *testing.T) {
	pkg := libraryPackage()
	out := resolveOK(t, pkg)
	got := ExportPackage(pkg, out.Names)

	lib := []string{"Lib"}
	want := []Global{
		{Kind: GlobalNamespace, Namespace: lib, Name: "Lib", Item: 1},
		{Kind: GlobalTerm, Namespace: lib, Name: "Pub", Item: 2},
		{Kind: GlobalTerm, Namespace: lib, Name: "Hidden", Visibility: hir.VisInternal, Item: 3},
		{Kind: GlobalTerm, Namespace: lib, Name: "Intr", Visibility: hir.VisInternal, Item: 4, Intrinsic: true},
		{Kind: GlobalTy, Namespace: lib, Name: "Pair", Item: 5},
		{Kind: GlobalTerm, Namespace: lib, Name: "Pair", Item: 5},
		{Kind: GlobalNamespace, Namespace: []string{"Secret"}, Name: "Secret", Item: 6},
		{Kind: GlobalTerm, Namespace: []string{"Secret"}, Name: "S", Visibility: hir.VisInternal, Item: 7},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("exports mismatch (-want +got):\n%s", diff)
	}
}

func TestAddExternalPackage(t *testing.T) {
	lib := libraryPackage()
	libOut := resolveOK(t, lib)
	globals := ExportPackage(lib, libOut.Names)

	const libID hir.PackageID = 7
	table := NewGlobalTable()
	table.AddExternalPackage(libID, slices.Values(globals))

	ns, ok := table.Scope.FindNamespace([]string{"Lib"})
	if !ok {
		t.Fatalf("expected namespace Lib to be declared")
	}
	if got, _ := table.Scope.Get(NameTerm, ns, "Pub"); got != ItemRes(hir.InPackage(libID, 2), hir.StatusAvailable) {
		t.Fatalf("expected Pub from package 7, got %s", got)
	}
	for _, name := range []string{"Hidden", "Intr"} {
		if _, ok := table.Scope.Get(NameTerm, ns, name); ok {
			t.Fatalf("expected internal %s to stay hidden", name)
		}
	}
	if !table.Scope.IsIntrinsic("Intr") {
		t.Fatalf("expected internal intrinsic to keep its name reserved")
	}
	if _, ok := table.Scope.Get(NameTy, ns, "Pair"); !ok {
		t.Fatalf("expected Pair type to be imported")
	}
	if _, ok := table.Scope.FindNamespace([]string{"Secret"}); !ok {
		t.Fatalf("expected namespace of filtered items to be declared")
	}

	call := ast.PathExpr("Pub")
	intr := ast.CallableItem(ast.IntrinsicFunction("Intr", ast.TuplePat()))
	app := ast.NewPackage(ast.NamespaceNode("App",
		ast.OpenItem("Lib", ""),
		ast.FunctionItem("Main", ast.TuplePat(), ast.SemiStmt(ast.CallExpr(call))),
		intr,
	))
	ast.Layout(app, 2)
	out := ResolvePackage(table, app, hir.NewAssigner(), ResolverOptions{})
	singleError(t, out, ErrDuplicateIntrinsic)
	expectRes(t, out, call.Path.ID, ItemRes(hir.InPackage(libID, 2), hir.StatusAvailable))
}

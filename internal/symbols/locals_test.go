package symbols

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"qres/internal/ast"
	"qres/internal/hir"
	"qres/internal/namespaces"
)

func TestGetAllAtOffset(t *testing.T) {
	a := ast.BindPat("a", ast.PathTy("Int"))
	b := ast.BindPat("b", nil)
	let := ast.LetStmt(b, ast.LitExpr("1"))
	probe := ast.SemiStmt(ast.PathExpr("b"))
	ns := ast.NamespaceNode("A", ast.FunctionItem("F", ast.TuplePat(a), let, probe))
	out := resolveOK(t, ast.NewPackage(ns))

	tests := []struct {
		name   string
		offset uint32
		want   []Local
	}{
		{
			name:   "after let",
			offset: probe.Span.Start,
			want: []Local{
				{Name: "b", Kind: LocalVar, Node: b.Name.ID},
				{Name: "a", Kind: LocalVar, Node: a.Name.ID},
			},
		},
		{
			name:   "inside let",
			offset: let.Span.Start,
			want:   []Local{{Name: "a", Kind: LocalVar, Node: a.Name.ID}},
		},
		{
			name:   "namespace boundary",
			offset: ns.Namespace.Span.Start,
			want:   nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := out.Locals.GetAllAtOffset(tt.offset)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("locals mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestGetAllAtOffsetHidesVariablesOutsideCallable(t *testing.T) {
	probe := ast.ExprStmt(ast.LitExpr("1"))
	out := resolveOK(t, ast.NewPackage(ast.NamespaceNode("A",
		ast.FunctionItem("Outer", ast.TuplePat(),
			ast.LetStmt(ast.BindPat("x", nil), ast.LitExpr("1")),
			ast.ItemStmt(ast.FunctionItem("Inner", ast.TuplePat(), probe)),
		),
	)))

	want := []Local{{Name: "Inner", Kind: LocalItem, Item: hir.Intrapackage(3)}}
	if diff := cmp.Diff(want, out.Locals.GetAllAtOffset(probe.Span.Start)); diff != "" {
		t.Fatalf("locals mismatch (-want +got):\n%s", diff)
	}
}

func TestGetAllAtOffsetInnermostWins(t *testing.T) {
	inner := ast.BindPat("x", nil)
	probe := ast.ExprStmt(ast.PathExpr("x"))
	out := resolveOK(t, ast.NewPackage(ast.NamespaceNode("A",
		ast.FunctionItem("F", ast.TuplePat(),
			ast.LetStmt(ast.BindPat("x", nil), ast.LitExpr("1")),
			ast.ExprStmt(ast.BlockExpr(ast.Blk(ast.LetStmt(inner, ast.LitExpr("2")), probe))),
		),
	)))

	want := []Local{{Name: "x", Kind: LocalVar, Node: inner.Name.ID}}
	if diff := cmp.Diff(want, out.Locals.GetAllAtOffset(probe.Span.Start)); diff != "" {
		t.Fatalf("locals mismatch (-want +got):\n%s", diff)
	}
}

func TestGetAllAtOffsetListsTypeParameters(t *testing.T) {
	x := ast.BindPat("x", ast.ParamTy("'T"))
	probe := ast.ExprStmt(ast.PathExpr("x"))
	decl := ast.Function("F", ast.TuplePat(x), probe).WithGenerics("'T")
	out := resolveOK(t, ast.NewPackage(ast.NamespaceNode("A", ast.CallableItem(decl))))

	want := []Local{
		{Name: "x", Kind: LocalVar, Node: x.Name.ID},
		{Name: "'T", Kind: LocalTyParam, Param: 0},
	}
	if diff := cmp.Diff(want, out.Locals.GetAllAtOffset(probe.Span.Start)); diff != "" {
		t.Fatalf("locals mismatch (-want +got):\n%s", diff)
	}
}

func TestLocalsGetOutOfRange(t *testing.T) {
	l := NewLocals()
	if l.Get(NoScopeID) != nil {
		t.Fatalf("expected nil for the sentinel scope")
	}
	id := l.push(newScope(ScopeBlock, ast.Blk().Span, 0))
	if l.Get(id) == nil || l.Get(id+1) != nil {
		t.Fatalf("expected only scope %d to exist", id)
	}
	if l.Len() != 1 {
		t.Fatalf("expected 1 scope, got %d", l.Len())
	}
}

func TestOpensAtOffset(t *testing.T) {
	openLib := ast.OpenItem("Lib", "")
	openMath := ast.OpenItem("Lib.Math", "M")
	openOther := ast.OpenItem("Other", "M")
	openBlock := ast.OpenItem("Other", "")
	stmt := ast.ExprStmt(ast.LitExpr("1"))
	out := resolveOK(t, ast.NewPackage(
		ast.NamespaceNode("Lib.Math", ast.FunctionItem("F", ast.TuplePat())),
		ast.NamespaceNode("Other", ast.FunctionItem("H", ast.TuplePat())),
		ast.NamespaceNode("App", openLib, openMath, openOther,
			ast.FunctionItem("G", ast.TuplePat(), ast.ItemStmt(openBlock), stmt),
		),
	))
	ns := func(path ...string) namespaces.ID {
		id, ok := out.Namespaces.Find(path)
		if !ok {
			t.Fatalf("namespace %v not found", path)
		}
		return id
	}

	want := []ScopeOpen{
		{Alias: "Other", Namespace: ns("Other"), Span: openBlock.Open.Namespace.Span()},
		{Alias: "Lib", Namespace: ns("Lib"), Span: openLib.Open.Namespace.Span()},
		{Alias: "M", Namespace: ns("Lib", "Math"), Span: openMath.Open.Namespace.Span()},
		{Alias: "M", Namespace: ns("Other"), Span: openOther.Open.Namespace.Span()},
	}
	if diff := cmp.Diff(want, out.Locals.OpensAtOffset(stmt.Span.Start)); diff != "" {
		t.Fatalf("opens mismatch (-want +got):\n%s", diff)
	}
	if got := out.Locals.OpensAtOffset(0); got != nil {
		t.Fatalf("expected no opens outside every scope, got %v", got)
	}
}

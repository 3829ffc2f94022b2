package symbols

import (
	"fmt"

	"qres/internal/ast"
	"qres/internal/hir"
	"qres/internal/namespaces"
)

// Resolve walks pkg and records a resolution for every reference. Global
// items must already be bound, see GlobalTable.AddLocalPackage and
// BindFragments. Top-level statements are only resolved by a persistent
// resolver, since nothing else provides a scope for them.
func (r *Resolver) Resolve(pkg *ast.Package, assigner *hir.Assigner) {
	w := &walker{r: r, assigner: assigner}
	persistent := len(r.chain) > 0
	for _, node := range pkg.Nodes {
		switch {
		case node == nil:
		case node.Namespace != nil:
			w.visitNamespace(node.Namespace)
		case node.Stmt != nil && persistent:
			w.visitStmt(node.Stmt)
		}
	}
}

// walker pairs the resolver with the item ID source used for local items.
type walker struct {
	r        *Resolver
	assigner *hir.Assigner
}

func (w *walker) visitNamespace(ns *ast.Namespace) {
	id, ok := w.r.globals.FindNamespace(ns.Name.Names())
	if !ok {
		panic(fmt.Sprintf("namespace %s should exist by this point", ns.Name))
	}
	w.r.withScope(ns.Span, ScopeNamespace, id, func() {
		// повторно открытое пространство имён должно видеть само себя
		w.r.bindOpen(ns.Name, nil)
		for _, item := range ns.Items {
			if item != nil && item.Kind == ast.ItemOpen && item.Open != nil {
				w.r.bindOpen(item.Open.Namespace, item.Open.Alias)
			}
		}
		for _, item := range ns.Items {
			w.visitItem(item)
		}
	})
}

func (w *walker) visitItem(item *ast.Item) {
	if item == nil {
		return
	}
	for _, attr := range item.Attrs {
		w.visitAttr(attr)
	}
	switch item.Kind {
	case ast.ItemCallable:
		if item.Callable != nil {
			w.visitCallableDecl(item.Callable)
		}
	case ast.ItemTy:
		if item.Ty != nil {
			w.visitTyDef(item.Ty.Def)
		}
	}
}

// visitAttr skips Config arguments; they are evaluated before resolution.
func (w *walker) visitAttr(attr *ast.Attr) {
	if attr == nil || isConfigAttr(attr) {
		return
	}
	w.visitExpr(attr.Arg)
}

func (w *walker) visitCallableDecl(decl *ast.CallableDecl) {
	params := make(map[string]struct{})
	collectParamNames(decl.Input, params)
	prev := w.r.currParams
	w.r.currParams = params
	defer func() { w.r.currParams = prev }()

	w.r.withScope(decl.Span, ScopeCallable, namespaces.Root, func() {
		w.r.bindTypeParameters(decl)
		// Параметры видны после конца входного шаблона.
		if decl.Input != nil {
			w.r.bindPat(decl.Input, decl.Input.Span.End)
		}
		w.visitPat(decl.Input)
		w.visitTy(decl.Output)
		if decl.Body == nil {
			return
		}
		if decl.Body.Block != nil {
			w.visitBlock(decl.Body.Block)
		}
		for _, spec := range decl.Body.Specs {
			w.visitSpecDecl(spec)
		}
	})
}

func collectParamNames(pat *ast.Pat, names map[string]struct{}) {
	if pat == nil {
		return
	}
	switch pat.Kind {
	case ast.PatBind:
		if pat.Name != nil {
			names[pat.Name.Name] = struct{}{}
		}
	case ast.PatParen, ast.PatTuple:
		for _, item := range pat.Items {
			collectParamNames(item, names)
		}
	}
}

func (w *walker) visitSpecDecl(spec *ast.SpecDecl) {
	if spec == nil || spec.Impl == nil || spec.Impl.Block == nil {
		return
	}
	block := spec.Impl.Block
	w.r.withSpecPat(block.Span, spec.Impl.Input, func() {
		w.visitBlock(block)
	})
}

func (w *walker) visitTyDef(def *ast.TyDef) {
	if def == nil {
		return
	}
	switch def.Kind {
	case ast.TyDefField, ast.TyDefParen:
		if def.Ty != nil {
			w.visitTy(def.Ty)
		}
		for _, item := range def.Items {
			w.visitTyDef(item)
		}
	case ast.TyDefTuple:
		for _, item := range def.Items {
			w.visitTyDef(item)
		}
	}
}

func (w *walker) visitTy(ty *ast.Ty) {
	if ty == nil {
		return
	}
	switch ty.Kind {
	case ast.TyPath:
		w.r.resolvePath(NameTy, ty.Path)
	case ast.TyParam:
		if ty.Param != nil {
			w.r.resolveIdent(NameTy, ty.Param)
		}
	default:
		for _, item := range ty.Items {
			w.visitTy(item)
		}
	}
}

// visitPat resolves the type annotations inside pat. Binding is done by the
// caller, which knows where the names become valid.
func (w *walker) visitPat(pat *ast.Pat) {
	if pat == nil {
		return
	}
	w.visitTy(pat.Ty)
	for _, item := range pat.Items {
		w.visitPat(item)
	}
}

// visitBlock binds the block's local items before any statement, so items
// are visible throughout the block.
func (w *walker) visitBlock(block *ast.Block) {
	if block == nil {
		return
	}
	w.r.withScope(block.Span, ScopeBlock, namespaces.Root, func() {
		for _, stmt := range block.Stmts {
			if stmt != nil && stmt.Kind == ast.StmtItem {
				w.r.bindLocalItem(w.assigner, stmt.Item)
			}
		}
		for _, stmt := range block.Stmts {
			w.visitStmt(stmt)
		}
	})
}

func (w *walker) visitStmt(stmt *ast.Stmt) {
	if stmt == nil {
		return
	}
	switch stmt.Kind {
	case ast.StmtItem:
		w.visitItem(stmt.Item)
	case ast.StmtLocal:
		w.visitPat(stmt.Pat)
		w.visitExpr(stmt.Expr)
		// let-привязка видна только после конца оператора
		w.r.bindPat(stmt.Pat, stmt.Span.End)
	case ast.StmtQubit:
		w.visitQubitInit(stmt.Init)
		if stmt.Block != nil {
			block := stmt.Block
			w.r.withPat(block.Span, stmt.Pat, func() { w.visitBlock(block) })
		} else {
			w.r.bindPat(stmt.Pat, stmt.Span.End)
		}
	case ast.StmtExpr, ast.StmtSemi:
		w.visitExpr(stmt.Expr)
	}
}

func (w *walker) visitQubitInit(init *ast.QubitInit) {
	if init == nil {
		return
	}
	switch init.Kind {
	case ast.QubitInitArray:
		w.visitExpr(init.Size)
	case ast.QubitInitParen, ast.QubitInitTuple:
		for _, item := range init.Items {
			w.visitQubitInit(item)
		}
	}
}

func (w *walker) visitExpr(expr *ast.Expr) {
	if expr == nil {
		return
	}
	switch expr.Kind {
	case ast.ExprPath:
		w.r.resolvePath(NameTerm, expr.Path)
	case ast.ExprFor:
		w.visitExpr(expr.Operand(0))
		if body := expr.BlockAt(0); body != nil {
			w.r.withPat(body.Span, expr.Pat, func() { w.visitBlock(body) })
		}
	case ast.ExprLambda:
		if body := expr.Operand(0); body != nil {
			w.r.withPat(body.Span, expr.Pat, func() { w.visitExpr(body) })
		}
	case ast.ExprTernOp:
		if expr.Tern != ast.TernUpdate {
			w.visitOperands(expr)
			return
		}
		w.visitUpdate(expr)
	case ast.ExprAssignUpdate:
		w.visitUpdate(expr)
	case ast.ExprIf:
		w.visitExpr(expr.Operand(0))
		w.visitBlock(expr.BlockAt(0))
		w.visitExpr(expr.Operand(1))
	case ast.ExprRepeat:
		w.visitBlock(expr.BlockAt(0))
		w.visitExpr(expr.Operand(0))
		w.visitBlock(expr.BlockAt(1))
	default:
		w.visitOperands(expr)
	}
}

func (w *walker) visitOperands(expr *ast.Expr) {
	for _, e := range expr.Exprs {
		w.visitExpr(e)
	}
	for _, b := range expr.Blocks {
		w.visitBlock(b)
	}
}

// visitUpdate handles `w/` and `w/=`, where the index is either an
// expression or a bare field name.
func (w *walker) visitUpdate(expr *ast.Expr) {
	w.visitExpr(expr.Operand(0))
	if index := expr.Operand(1); !w.isFieldUpdate(index) {
		w.visitExpr(index)
	}
	w.visitExpr(expr.Operand(2))
}

// isFieldUpdate reports whether index names a field: an unqualified path
// that does not resolve to a local variable.
func (w *walker) isFieldUpdate(index *ast.Expr) bool {
	if index == nil || index.Kind != ast.ExprPath || index.Path == nil || index.Path.Name == nil {
		return false
	}
	if len(index.Path.Namespace) > 0 {
		return false
	}
	res, err := resolve(NameTerm, w.r.globals, w.r.scopeChain(), index.Path.Name, nil)
	return err != nil || res.Kind != ResLocal
}

// ExtractFieldName returns the field named by the index operand of an
// update expression, using the resolutions already recorded: an unqualified
// path that was not resolved to a local is a field name.
func ExtractFieldName(names Names, expr *ast.Expr) (string, bool) {
	if expr == nil || expr.Kind != ast.ExprPath || expr.Path == nil || expr.Path.Name == nil {
		return "", false
	}
	if len(expr.Path.Namespace) > 0 {
		return "", false
	}
	if res, ok := names[expr.Path.ID]; ok && res.Kind == ResLocal {
		return "", false
	}
	return expr.Path.Name.Name, true
}

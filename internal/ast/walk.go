package ast

// Visitor receives nodes in source order. Returning false from Enter skips
// the node's children; Leave is still called.
type Visitor interface {
	Enter(n Node) bool
	Leave(n Node)
}

// VisitorFuncs adapts plain functions to Visitor. Nil fields are no-ops.
type VisitorFuncs struct {
	EnterFn func(Node) bool
	LeaveFn func(Node)
}

func (v VisitorFuncs) Enter(n Node) bool {
	if v.EnterFn == nil {
		return true
	}
	return v.EnterFn(n)
}

func (v VisitorFuncs) Leave(n Node) {
	if v.LeaveFn != nil {
		v.LeaveFn(n)
	}
}

// Walk visits n and every node below it.
func Walk(n Node, v Visitor) {
	w := walker{v: v}
	w.node(n)
}

type walker struct {
	v Visitor
}

func (w walker) node(n Node) {
	switch n := n.(type) {
	case *Package:
		if n != nil {
			w.visit(n, func() {
				for _, top := range n.Nodes {
					if top == nil {
						continue
					}
					if top.Namespace != nil {
						w.node(top.Namespace)
					}
					if top.Stmt != nil {
						w.node(top.Stmt)
					}
				}
			})
		}
	case *Namespace:
		if n != nil {
			w.visit(n, func() {
				w.idents(n.Name)
				for _, item := range n.Items {
					w.item(item)
				}
			})
		}
	case *Item:
		w.item(n)
	case *Attr:
		if n != nil {
			w.visit(n, func() {
				w.ident(n.Name)
				w.expr(n.Arg)
			})
		}
	case *CallableDecl:
		w.callable(n)
	case *SpecDecl:
		w.spec(n)
	case *TyDef:
		w.tyDef(n)
	case *Ty:
		w.ty(n)
	case *Path:
		w.path(n)
	case *Pat:
		w.pat(n)
	case *Block:
		w.block(n)
	case *Stmt:
		w.stmt(n)
	case *QubitInit:
		w.qubitInit(n)
	case *Expr:
		w.expr(n)
	case *Ident:
		w.ident(n)
	}
}

func (w walker) visit(n Node, children func()) {
	if w.v.Enter(n) {
		children()
	}
	w.v.Leave(n)
}

func (w walker) ident(id *Ident) {
	if id != nil {
		w.visit(id, func() {})
	}
}

func (w walker) idents(ids Idents) {
	for _, id := range ids {
		w.ident(id)
	}
}

func (w walker) item(item *Item) {
	if item == nil {
		return
	}
	w.visit(item, func() {
		for _, attr := range item.Attrs {
			w.node(attr)
		}
		switch item.Kind {
		case ItemCallable:
			w.callable(item.Callable)
		case ItemOpen:
			if item.Open != nil {
				w.idents(item.Open.Namespace)
				w.ident(item.Open.Alias)
			}
		case ItemTy:
			if item.Ty != nil {
				w.ident(item.Ty.Name)
				w.tyDef(item.Ty.Def)
			}
		}
	})
}

func (w walker) callable(decl *CallableDecl) {
	if decl == nil {
		return
	}
	w.visit(decl, func() {
		w.ident(decl.Name)
		for _, g := range decl.Generics {
			w.ident(g)
		}
		w.pat(decl.Input)
		w.ty(decl.Output)
		if decl.Body != nil {
			w.block(decl.Body.Block)
			for _, spec := range decl.Body.Specs {
				w.spec(spec)
			}
		}
	})
}

func (w walker) spec(spec *SpecDecl) {
	if spec == nil {
		return
	}
	w.visit(spec, func() {
		if spec.Impl != nil {
			w.pat(spec.Impl.Input)
			w.block(spec.Impl.Block)
		}
	})
}

func (w walker) tyDef(def *TyDef) {
	if def == nil {
		return
	}
	w.visit(def, func() {
		w.ident(def.Name)
		w.ty(def.Ty)
		for _, item := range def.Items {
			w.tyDef(item)
		}
	})
}

func (w walker) ty(ty *Ty) {
	if ty == nil {
		return
	}
	w.visit(ty, func() {
		w.path(ty.Path)
		w.ident(ty.Param)
		for _, item := range ty.Items {
			w.ty(item)
		}
	})
}

func (w walker) path(path *Path) {
	if path == nil {
		return
	}
	w.visit(path, func() {
		w.idents(path.Namespace)
		w.ident(path.Name)
	})
}

func (w walker) pat(pat *Pat) {
	if pat == nil {
		return
	}
	w.visit(pat, func() {
		w.ident(pat.Name)
		w.ty(pat.Ty)
		for _, item := range pat.Items {
			w.pat(item)
		}
	})
}

func (w walker) block(block *Block) {
	if block == nil {
		return
	}
	w.visit(block, func() {
		for _, stmt := range block.Stmts {
			w.stmt(stmt)
		}
	})
}

func (w walker) stmt(stmt *Stmt) {
	if stmt == nil {
		return
	}
	w.visit(stmt, func() {
		w.item(stmt.Item)
		w.pat(stmt.Pat)
		w.qubitInit(stmt.Init)
		w.expr(stmt.Expr)
		w.block(stmt.Block)
	})
}

func (w walker) qubitInit(init *QubitInit) {
	if init == nil {
		return
	}
	w.visit(init, func() {
		w.expr(init.Size)
		for _, item := range init.Items {
			w.qubitInit(item)
		}
	})
}

func (w walker) expr(expr *Expr) {
	if expr == nil {
		return
	}
	w.visit(expr, func() {
		switch expr.Kind {
		case ExprIf, ExprWhile:
			w.expr(expr.Operand(0))
			w.block(expr.BlockAt(0))
			for _, e := range expr.Exprs[min(1, len(expr.Exprs)):] {
				w.expr(e)
			}
		case ExprRepeat:
			w.block(expr.BlockAt(0))
			w.expr(expr.Operand(0))
			for _, b := range expr.Blocks[min(1, len(expr.Blocks)):] {
				w.block(b)
			}
		case ExprField:
			w.expr(expr.Operand(0))
			w.ident(expr.Field)
		default:
			w.path(expr.Path)
			w.pat(expr.Pat)
			for _, e := range expr.Exprs {
				w.expr(e)
			}
			for _, b := range expr.Blocks {
				w.block(b)
			}
		}
	})
}

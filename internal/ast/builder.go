package ast

import "strings"

// Constructors for building trees in memory (tests, tooling, REPL-style
// fragments). They leave IDs and spans zero; run Layout or AssignIDs after.

// NewIdent makes an identifier.
func NewIdent(name string) *Ident { return &Ident{Name: name} }

// Dotted splits "A.B.C" into identifiers.
func Dotted(path string) Idents {
	if path == "" {
		return nil
	}
	parts := strings.Split(path, ".")
	out := make(Idents, len(parts))
	for i, part := range parts {
		out[i] = NewIdent(part)
	}
	return out
}

// PathOf splits "A.B.Foo" into a namespace qualifier and a final name.
func PathOf(path string) *Path {
	ids := Dotted(path)
	if len(ids) == 0 {
		return &Path{Name: NewIdent("")}
	}
	return &Path{Namespace: ids[:len(ids)-1], Name: ids[len(ids)-1]}
}

// NewPackage wraps top-level nodes.
func NewPackage(nodes ...*TopLevelNode) *Package { return &Package{Nodes: nodes} }

// NamespaceNode declares `namespace name { items }`.
func NamespaceNode(name string, items ...*Item) *TopLevelNode {
	return &TopLevelNode{Namespace: &Namespace{Name: Dotted(name), Items: items}}
}

// TopStmt places a statement at package level.
func TopStmt(stmt *Stmt) *TopLevelNode { return &TopLevelNode{Stmt: stmt} }

// OpenItem declares `open ns;` or `open ns as alias;` when alias is non-empty.
func OpenItem(ns, alias string) *Item {
	open := &OpenDecl{Namespace: Dotted(ns)}
	if alias != "" {
		open.Alias = NewIdent(alias)
	}
	return &Item{Kind: ItemOpen, Open: open}
}

// CallableItem wraps a callable declaration.
func CallableItem(decl *CallableDecl) *Item {
	return &Item{Kind: ItemCallable, Callable: decl}
}

// Function declares a function with a block body and Unit output.
func Function(name string, input *Pat, stmts ...*Stmt) *CallableDecl {
	return &CallableDecl{
		Kind:   CallableFunction,
		Name:   NewIdent(name),
		Input:  input,
		Output: UnitTy(),
		Body:   &CallableBody{Block: Blk(stmts...)},
	}
}

// Operation declares an operation with a block body and Unit output.
func Operation(name string, input *Pat, stmts ...*Stmt) *CallableDecl {
	decl := Function(name, input, stmts...)
	decl.Kind = CallableOperation
	return decl
}

// IntrinsicFunction declares `function name(input) : Unit { body intrinsic; }`.
func IntrinsicFunction(name string, input *Pat) *CallableDecl {
	return &CallableDecl{
		Kind:   CallableFunction,
		Name:   NewIdent(name),
		Input:  input,
		Output: UnitTy(),
		Body:   &CallableBody{Specs: []*SpecDecl{{Spec: SpecBody, Gen: SpecGenIntrinsic}}},
	}
}

// FunctionItem is shorthand for CallableItem(Function(...)).
func FunctionItem(name string, input *Pat, stmts ...*Stmt) *Item {
	return CallableItem(Function(name, input, stmts...))
}

// WithGenerics sets type parameters on a callable.
func (d *CallableDecl) WithGenerics(names ...string) *CallableDecl {
	for _, name := range names {
		d.Generics = append(d.Generics, NewIdent(name))
	}
	return d
}

// WithSpecs replaces the body with explicit specializations.
func (d *CallableDecl) WithSpecs(specs ...*SpecDecl) *CallableDecl {
	d.Body = &CallableBody{Specs: specs}
	return d
}

// SpecImplDecl declares an explicit specialization with its own input pattern.
func SpecImplDecl(spec Spec, input *Pat, stmts ...*Stmt) *SpecDecl {
	return &SpecDecl{Spec: spec, Impl: &SpecImpl{Input: input, Block: Blk(stmts...)}}
}

// NewtypeItem declares `newtype name = def;`.
func NewtypeItem(name string, def *TyDef) *Item {
	return &Item{Kind: ItemTy, Ty: &TyDecl{Name: NewIdent(name), Def: def}}
}

// FieldDef is `name : ty` (or just `ty` when name is empty).
func FieldDef(name string, ty *Ty) *TyDef {
	def := &TyDef{Kind: TyDefField, Ty: ty}
	if name != "" {
		def.Name = NewIdent(name)
	}
	return def
}

// TupleDef is `(a, b, ...)`.
func TupleDef(items ...*TyDef) *TyDef { return &TyDef{Kind: TyDefTuple, Items: items} }

// WithAttrs attaches attributes to an item.
func (item *Item) WithAttrs(attrs ...*Attr) *Item {
	item.Attrs = append(item.Attrs, attrs...)
	return item
}

// Internal marks an item as package-internal.
func (item *Item) Internal() *Item {
	item.Visibility = VisInternal
	return item
}

// AttrOf makes `@name(arg)`; arg may be nil.
func AttrOf(name string, arg *Expr) *Attr { return &Attr{Name: NewIdent(name), Arg: arg} }

// PathTy is a named type such as `Int` or `A.T`.
func PathTy(path string) *Ty { return &Ty{Kind: TyPath, Path: PathOf(path)} }

// ParamTy is a type parameter reference such as `'T`.
func ParamTy(name string) *Ty { return &Ty{Kind: TyParam, Param: NewIdent(name)} }

// TupleTy is `(a, b, ...)`; with no items it is Unit.
func TupleTy(items ...*Ty) *Ty { return &Ty{Kind: TyTuple, Items: items} }

// UnitTy is `Unit` written as an empty tuple.
func UnitTy() *Ty { return TupleTy() }

// ArrayTy is `ty[]`.
func ArrayTy(elem *Ty) *Ty { return &Ty{Kind: TyArray, Items: []*Ty{elem}} }

// BindPat is `name` or `name : ty` when ty is non-nil.
func BindPat(name string, ty *Ty) *Pat { return &Pat{Kind: PatBind, Name: NewIdent(name), Ty: ty} }

// TuplePat is `(p, q, ...)`.
func TuplePat(items ...*Pat) *Pat { return &Pat{Kind: PatTuple, Items: items} }

// DiscardPat is `_`.
func DiscardPat() *Pat { return &Pat{Kind: PatDiscard} }

// ElidedPat is `...`.
func ElidedPat() *Pat { return &Pat{Kind: PatElided} }

// Blk is `{ stmts }`.
func Blk(stmts ...*Stmt) *Block { return &Block{Stmts: stmts} }

// LetStmt is `let pat = init;`.
func LetStmt(pat *Pat, init *Expr) *Stmt {
	return &Stmt{Kind: StmtLocal, Pat: pat, Expr: init}
}

// MutableStmt is `mutable pat = init;`.
func MutableStmt(pat *Pat, init *Expr) *Stmt {
	stmt := LetStmt(pat, init)
	stmt.Mutability = Mutable
	return stmt
}

// ExprStmt is a trailing expression without semicolon.
func ExprStmt(e *Expr) *Stmt { return &Stmt{Kind: StmtExpr, Expr: e} }

// SemiStmt is `expr;`.
func SemiStmt(e *Expr) *Stmt { return &Stmt{Kind: StmtSemi, Expr: e} }

// ItemStmt is a local item declaration.
func ItemStmt(item *Item) *Stmt { return &Stmt{Kind: StmtItem, Item: item} }

// UseStmt is `use pat = init;` or `use pat = init { block }` when block is non-nil.
func UseStmt(pat *Pat, init *QubitInit, block *Block) *Stmt {
	return &Stmt{Kind: StmtQubit, Pat: pat, Init: init, Block: block}
}

// SingleQubit is `Qubit()`.
func SingleQubit() *QubitInit { return &QubitInit{Kind: QubitInitSingle} }

// QubitArray is `Qubit[size]`.
func QubitArray(size *Expr) *QubitInit { return &QubitInit{Kind: QubitInitArray, Size: size} }

// PathExpr references a possibly qualified name.
func PathExpr(path string) *Expr { return &Expr{Kind: ExprPath, Path: PathOf(path)} }

// LitExpr is a literal.
func LitExpr(text string) *Expr { return &Expr{Kind: ExprLit, Lit: text} }

// CallExpr is `callee(args)`; the argument list becomes one tuple operand.
func CallExpr(callee *Expr, args ...*Expr) *Expr {
	return &Expr{Kind: ExprCall, Exprs: []*Expr{callee, TupleExpr(args...)}}
}

// TupleExpr is `(a, b, ...)`.
func TupleExpr(items ...*Expr) *Expr { return &Expr{Kind: ExprTuple, Exprs: items} }

// BinOpExpr is `lhs op rhs`.
func BinOpExpr(op string, lhs, rhs *Expr) *Expr {
	return &Expr{Kind: ExprBinOp, Op: op, Exprs: []*Expr{lhs, rhs}}
}

// FieldExpr is `record::name`.
func FieldExpr(record *Expr, name string) *Expr {
	return &Expr{Kind: ExprField, Exprs: []*Expr{record}, Field: NewIdent(name)}
}

// UpdateExpr is `record w/ index <- value`.
func UpdateExpr(record, index, value *Expr) *Expr {
	return &Expr{Kind: ExprTernOp, Tern: TernUpdate, Exprs: []*Expr{record, index, value}}
}

// AssignUpdateExpr is `set record w/= index <- value`.
func AssignUpdateExpr(record, index, value *Expr) *Expr {
	return &Expr{Kind: ExprAssignUpdate, Exprs: []*Expr{record, index, value}}
}

// AssignExpr is `set lhs = rhs`.
func AssignExpr(lhs, rhs *Expr) *Expr {
	return &Expr{Kind: ExprAssign, Exprs: []*Expr{lhs, rhs}}
}

// ForExpr is `for pat in iter { body }`.
func ForExpr(pat *Pat, iter *Expr, body *Block) *Expr {
	return &Expr{Kind: ExprFor, Pat: pat, Exprs: []*Expr{iter}, Blocks: []*Block{body}}
}

// WhileExpr is `while cond { body }`.
func WhileExpr(cond *Expr, body *Block) *Expr {
	return &Expr{Kind: ExprWhile, Exprs: []*Expr{cond}, Blocks: []*Block{body}}
}

// IfExpr is `if cond { then } else otherwise`; otherwise may be nil.
func IfExpr(cond *Expr, then *Block, otherwise *Expr) *Expr {
	e := &Expr{Kind: ExprIf, Exprs: []*Expr{cond}, Blocks: []*Block{then}}
	if otherwise != nil {
		e.Exprs = append(e.Exprs, otherwise)
	}
	return e
}

// LambdaExpr is `pat -> body` (or `=>` for operations).
func LambdaExpr(kind LambdaKind, pat *Pat, body *Expr) *Expr {
	return &Expr{Kind: ExprLambda, Lambda: kind, Pat: pat, Exprs: []*Expr{body}}
}

// BlockExpr wraps a block in an expression.
func BlockExpr(block *Block) *Expr {
	return &Expr{Kind: ExprBlock, Blocks: []*Block{block}}
}

// ReturnExpr is `return e`.
func ReturnExpr(e *Expr) *Expr { return &Expr{Kind: ExprReturn, Exprs: []*Expr{e}} }

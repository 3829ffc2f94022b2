package ast

// ExprKind enumerates expression shapes.
type ExprKind uint8

const (
	ExprErr ExprKind = iota
	ExprHole
	ExprLit
	ExprPath
	ExprParen
	ExprTuple
	ExprArray
	ExprArrayRepeat
	ExprRange
	ExprInterp
	ExprUnOp
	ExprBinOp
	ExprCall
	ExprIndex
	ExprField
	ExprTernOp
	ExprAssign
	ExprAssignOp
	ExprAssignUpdate
	ExprBlock
	ExprIf
	ExprWhile
	ExprFor
	ExprRepeat
	ExprConjugate
	ExprLambda
	ExprReturn
	ExprFail
)

// TernOp distinguishes the two ternary operators.
type TernOp uint8

const (
	TernCond   TernOp = iota // c ? a | b
	TernUpdate               // r w/ index <- value
)

// LambdaKind distinguishes `->` and `=>` lambdas.
type LambdaKind uint8

const (
	LambdaFunction LambdaKind = iota
	LambdaOperation
)

// Expr is an expression node. Operands live in Exprs and nested blocks in
// Blocks, both in source order, with these shapes:
//
//	Path                 Path
//	Field                Exprs[0] record, Field name
//	TernOp, AssignUpdate Exprs[0..2]
//	If                   Exprs[0] cond, Blocks[0] then, Exprs[1] optional else
//	While                Exprs[0] cond, Blocks[0] body
//	For                  Pat, Exprs[0] iterable, Blocks[0] body
//	Repeat               Blocks[0] body, Exprs[0] until, Blocks[1] optional fixup
//	Conjugate            Blocks[0] within, Blocks[1] apply
//	Lambda               Pat input, Exprs[0] body
//	Block                Blocks[0]
//
// Every other kind keeps its operands in Exprs.
type Expr struct {
	Meta
	Kind   ExprKind   `json:"kind" msgpack:"kind"`
	Path   *Path      `json:"path,omitempty" msgpack:"path,omitempty"`
	Pat    *Pat       `json:"pat,omitempty" msgpack:"pat,omitempty"`
	Exprs  []*Expr    `json:"exprs,omitempty" msgpack:"exprs,omitempty"`
	Blocks []*Block   `json:"blocks,omitempty" msgpack:"blocks,omitempty"`
	Field  *Ident     `json:"field,omitempty" msgpack:"field,omitempty"`
	Op     string     `json:"op,omitempty" msgpack:"op,omitempty"`
	Lit    string     `json:"lit,omitempty" msgpack:"lit,omitempty"`
	Tern   TernOp     `json:"tern,omitempty" msgpack:"tern,omitempty"`
	Lambda LambdaKind `json:"lambda,omitempty" msgpack:"lambda,omitempty"`
}

// Operand returns Exprs[i] or nil.
func (e *Expr) Operand(i int) *Expr {
	if e == nil || i < 0 || i >= len(e.Exprs) {
		return nil
	}
	return e.Exprs[i]
}

// BlockAt returns Blocks[i] or nil.
func (e *Expr) BlockAt(i int) *Block {
	if e == nil || i < 0 || i >= len(e.Blocks) {
		return nil
	}
	return e.Blocks[i]
}

package ast

// StmtKind enumerates statement shapes.
type StmtKind uint8

const (
	StmtErr StmtKind = iota
	StmtEmpty
	StmtExpr
	StmtSemi
	StmtItem
	StmtLocal
	StmtQubit
)

// Mutability of a local binding.
type Mutability uint8

const (
	Immutable Mutability = iota
	Mutable
)

// Block is `{ stmts }`; its span includes the braces.
type Block struct {
	Meta
	Stmts []*Stmt `json:"stmts" msgpack:"stmts"`
}

// Stmt is a statement. Local uses Pat and Expr; Qubit uses Pat, Init and
// an optional Block.
type Stmt struct {
	Meta
	Kind       StmtKind   `json:"kind" msgpack:"kind"`
	Expr       *Expr      `json:"expr,omitempty" msgpack:"expr,omitempty"`
	Item       *Item      `json:"item,omitempty" msgpack:"item,omitempty"`
	Mutability Mutability `json:"mutability,omitempty" msgpack:"mutability,omitempty"`
	Pat        *Pat       `json:"pat,omitempty" msgpack:"pat,omitempty"`
	Init       *QubitInit `json:"init,omitempty" msgpack:"init,omitempty"`
	Block      *Block     `json:"block,omitempty" msgpack:"block,omitempty"`
}

// QubitInitKind enumerates qubit allocation initializers.
type QubitInitKind uint8

const (
	QubitInitErr QubitInitKind = iota
	QubitInitSingle
	QubitInitArray
	QubitInitParen
	QubitInitTuple
)

// QubitInit is `Qubit()`, `Qubit[n]`, or a tuple of those. Paren uses Items[0].
type QubitInit struct {
	Meta
	Kind  QubitInitKind `json:"kind" msgpack:"kind"`
	Size  *Expr         `json:"size,omitempty" msgpack:"size,omitempty"`
	Items []*QubitInit  `json:"items,omitempty" msgpack:"items,omitempty"`
}

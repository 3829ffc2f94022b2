package ast

// TyKind enumerates type expression shapes.
type TyKind uint8

const (
	TyErr TyKind = iota
	TyHole
	TyPath
	TyParam
	TyArray
	TyArrow
	TyParen
	TyTuple
)

// Ty is a type expression. Array and Paren use Items[0]; Arrow uses
// Items[0] as input and Items[1] as output.
type Ty struct {
	Meta
	Kind  TyKind `json:"kind" msgpack:"kind"`
	Path  *Path  `json:"path,omitempty" msgpack:"path,omitempty"`
	Param *Ident `json:"param,omitempty" msgpack:"param,omitempty"`
	Items []*Ty  `json:"items,omitempty" msgpack:"items,omitempty"`
}

// PatKind enumerates pattern shapes.
type PatKind uint8

const (
	PatErr PatKind = iota
	PatBind
	PatDiscard
	PatElided
	PatParen
	PatTuple
)

// Pat is a binding pattern. Paren uses Items[0].
type Pat struct {
	Meta
	Kind  PatKind `json:"kind" msgpack:"kind"`
	Name  *Ident  `json:"name,omitempty" msgpack:"name,omitempty"`
	Ty    *Ty     `json:"ty,omitempty" msgpack:"ty,omitempty"`
	Items []*Pat  `json:"items,omitempty" msgpack:"items,omitempty"`
}

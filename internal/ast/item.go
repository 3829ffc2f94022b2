package ast

// ItemKind enumerates item payloads.
type ItemKind uint8

const (
	ItemErr ItemKind = iota
	ItemCallable
	ItemOpen
	ItemTy
)

// Item is a namespace member or a local item statement.
type Item struct {
	Meta
	Attrs      []*Attr       `json:"attrs,omitempty" msgpack:"attrs,omitempty"`
	Visibility Visibility    `json:"visibility,omitempty" msgpack:"visibility,omitempty"`
	Kind       ItemKind      `json:"kind" msgpack:"kind"`
	Callable   *CallableDecl `json:"callable,omitempty" msgpack:"callable,omitempty"`
	Open       *OpenDecl     `json:"open,omitempty" msgpack:"open,omitempty"`
	Ty         *TyDecl       `json:"ty,omitempty" msgpack:"ty,omitempty"`
}

// Attr is `@Name(arg)`.
type Attr struct {
	Meta
	Name *Ident `json:"name" msgpack:"name"`
	Arg  *Expr  `json:"arg,omitempty" msgpack:"arg,omitempty"`
}

// OpenDecl is `open A.B;` or `open A.B as C;`.
type OpenDecl struct {
	Namespace Idents `json:"namespace" msgpack:"namespace"`
	Alias     *Ident `json:"alias,omitempty" msgpack:"alias,omitempty"`
}

// TyDecl is `newtype Name = Def;`.
type TyDecl struct {
	Name *Ident `json:"name" msgpack:"name"`
	Def  *TyDef `json:"def" msgpack:"def"`
}

// TyDefKind enumerates newtype definition shapes.
type TyDefKind uint8

const (
	TyDefErr TyDefKind = iota
	TyDefField
	TyDefParen
	TyDefTuple
)

// TyDef is the right-hand side of a newtype declaration.
type TyDef struct {
	Meta
	Kind  TyDefKind `json:"kind" msgpack:"kind"`
	Name  *Ident    `json:"name,omitempty" msgpack:"name,omitempty"` // field name, optional
	Ty    *Ty       `json:"ty,omitempty" msgpack:"ty,omitempty"`
	Items []*TyDef  `json:"items,omitempty" msgpack:"items,omitempty"`
}

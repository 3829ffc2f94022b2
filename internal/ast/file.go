package ast

import (
	"strings"

	"qres/internal/source"
)

// Package is one compilation unit as produced by the parser.
type Package struct {
	Meta
	Nodes []*TopLevelNode `json:"nodes" msgpack:"nodes"`
}

// TopLevelNode is either a namespace or a top-level statement (fragments).
type TopLevelNode struct {
	Namespace *Namespace `json:"namespace,omitempty" msgpack:"namespace,omitempty"`
	Stmt      *Stmt      `json:"stmt,omitempty" msgpack:"stmt,omitempty"`
}

// Namespace is a `namespace A.B { ... }` declaration.
type Namespace struct {
	Meta
	Name  Idents  `json:"name" msgpack:"name"`
	Items []*Item `json:"items" msgpack:"items"`
}

// Ident is a single identifier.
type Ident struct {
	Meta
	Name string `json:"name" msgpack:"name"`
}

// Idents is a dotted sequence of identifiers such as `A.B.C`.
type Idents []*Ident

// Names returns the identifier texts.
func (ids Idents) Names() []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.Name
	}
	return out
}

func (ids Idents) String() string {
	return strings.Join(ids.Names(), ".")
}

// Span covers all identifiers.
func (ids Idents) Span() (sp source.Span) {
	for _, id := range ids {
		sp = sp.Cover(id.Span)
	}
	return sp
}

// Path is a possibly namespace-qualified name: `A.B.Foo` or `Foo`.
type Path struct {
	Meta
	Namespace Idents `json:"namespace,omitempty" msgpack:"namespace,omitempty"`
	Name      *Ident `json:"name" msgpack:"name"`
}

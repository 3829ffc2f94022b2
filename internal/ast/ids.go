package ast

import "qres/internal/source"

// NodeID is the parser-assigned identity of an AST node. Zero means
// "not assigned yet"; Layout fills missing IDs.
type NodeID uint32

const NoNodeID NodeID = 0

func (id NodeID) IsValid() bool { return id != NoNodeID }

// Meta is embedded in every node.
type Meta struct {
	ID   NodeID      `json:"id,omitempty" msgpack:"id,omitempty"`
	Span source.Span `json:"span" msgpack:"span"`
}

func (m *Meta) meta() *Meta { return m }

// Node is implemented by every AST node type.
type Node interface {
	meta() *Meta
}

// IDOf returns the node's ID.
func IDOf(n Node) NodeID { return n.meta().ID }

// SpanOf returns the node's span.
func SpanOf(n Node) source.Span { return n.meta().Span }

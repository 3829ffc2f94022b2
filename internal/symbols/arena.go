package symbols

import (
	"fmt"

	"fortio.org/safecast"

	"qres/internal/ast"
	"qres/internal/hir"
	"qres/internal/namespaces"
	"qres/internal/source"
)

// LocalKind classifies entries returned by offset queries.
type LocalKind uint8

const (
	// LocalItem is a local callable or newtype.
	LocalItem LocalKind = iota + 1
	// LocalTyParam is a type parameter.
	LocalTyParam
	// LocalVar is a local variable or parameter.
	LocalVar
)

func (k LocalKind) String() string {
	switch k {
	case LocalItem:
		return "item"
	case LocalTyParam:
		return "type-param"
	case LocalVar:
		return "var"
	default:
		return "invalid"
	}
}

// Local is a name visible at some offset.
type Local struct {
	Name  string      `json:"name"`
	Kind  LocalKind   `json:"kind"`
	Item  hir.ItemID  `json:"item,omitzero"`
	Param hir.ParamID `json:"param,omitempty"`
	Node  ast.NodeID  `json:"node,omitempty"`
}

// Locals stores every scope created during a resolution pass. Scopes are
// never removed, so offset queries stay valid after the pass.
type Locals struct {
	data []Scope // data[0]: заглушка для NoScopeID
}

// NewLocals creates an empty arena.
func NewLocals() *Locals {
	return &Locals{data: make([]Scope, 1, 33)}
}

func (l *Locals) push(s Scope) ScopeID {
	value, err := safecast.Conv[uint32](len(l.data))
	if err != nil {
		panic(fmt.Errorf("scopes arena overflow: %w", err))
	}
	l.data = append(l.data, s)
	return ScopeID(value)
}

// Get returns the scope pointer or nil if ID is invalid.
func (l *Locals) Get(id ScopeID) *Scope {
	if !id.IsValid() || int(id) >= len(l.data) {
		return nil
	}
	return &l.data[id]
}

func (l *Locals) mustGet(id ScopeID) *Scope {
	s := l.Get(id)
	if s == nil {
		panic(fmt.Sprintf("scope with id %d should exist", id))
	}
	return s
}

// Len reports total number of scopes excluding the sentinel.
func (l *Locals) Len() int { return len(l.data) - 1 }

// chain returns the scopes of ids from innermost to outermost.
func (l *Locals) chain(ids []ScopeID) []*Scope {
	out := make([]*Scope, len(ids))
	for i, id := range ids {
		out[len(ids)-1-i] = l.mustGet(id)
	}
	return out
}

// GetAllAtOffset lists the names visible at offset, innermost first. Every
// scope whose span strictly contains offset contributes; once a callable
// scope has been passed, outer variables are hidden (local callables do not
// capture) while outer items stay visible. Names are deduplicated, the
// innermost occurrence wins.
func (l *Locals) GetAllAtOffset(offset uint32) []Local {
	vars := true
	seen := make(map[string]struct{})
	var out []Local
	for i := len(l.data) - 1; i >= 1; i-- {
		scope := &l.data[i]
		if !scope.Span.StrictlyContains(offset) {
			continue
		}
		for _, local := range scope.locals(offset, vars) {
			if _, dup := seen[local.Name]; dup {
				continue
			}
			seen[local.Name] = struct{}{}
			out = append(out, local)
		}
		if scope.Kind == ScopeCallable {
			vars = false
		}
	}
	return out
}

// ScopeOpen is an open registered in a scope that contains some offset.
type ScopeOpen struct {
	Alias     string        `json:"alias"`
	Namespace namespaces.ID `json:"namespace"`
	Span      source.Span   `json:"span"`
}

// OpensAtOffset lists the opens of every scope strictly containing offset,
// innermost scope first. Within a scope opens are grouped by alias in
// registration order, so merged aliases come out together.
func (l *Locals) OpensAtOffset(offset uint32) []ScopeOpen {
	var out []ScopeOpen
	for i := len(l.data) - 1; i >= 1; i-- {
		scope := &l.data[i]
		if !scope.Span.StrictlyContains(offset) {
			continue
		}
		for _, alias := range scope.Aliases() {
			for _, open := range scope.OpensUnder(alias) {
				out = append(out, ScopeOpen{Alias: alias, Namespace: open.Namespace, Span: open.Span})
			}
		}
	}
	return out
}

package symbols

import "fmt"

// ScopeID identifies a scope in the Locals arena.
type ScopeID uint32

const (
	// NoScopeID marks the absence of a scope reference.
	NoScopeID ScopeID = 0
)

// IsValid reports whether the scope ID refers to an allocated scope.
func (id ScopeID) IsValid() bool { return id != NoScopeID }

// NameKind selects the type-level or term-level namespace of a name.
type NameKind uint8

const (
	NameTy NameKind = iota
	NameTerm
)

func (k NameKind) String() string {
	if k == NameTy {
		return "type"
	}
	return "term"
}

// ScopeKind classifies lexical scopes.
type ScopeKind uint8

const (
	ScopeNamespace ScopeKind = iota + 1
	ScopeCallable
	ScopeBlock
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeNamespace:
		return "namespace"
	case ScopeCallable:
		return "callable"
	case ScopeBlock:
		return "block"
	default:
		return fmt.Sprintf("ScopeKind(%d)", uint8(k))
	}
}

package trace

import "time"

// Kind represents the type of trace event.
type Kind uint8

const (
	KindSpanBegin Kind = iota + 1
	KindSpanEnd
	KindPoint
	// KindError is emitted for failures and is the only kind LevelError keeps.
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindSpanBegin:
		return "begin"
	case KindSpanEnd:
		return "end"
	case KindPoint:
		return "point"
	case KindError:
		return "error"
	default:
		return "unknown"
	}
}

// Scope is the granularity of an event; lower values are coarser.
type Scope uint8

const (
	// ScopeDriver covers a whole command or resolution run.
	ScopeDriver Scope = iota + 1
	// ScopePass covers a resolver sub-pass (bind-declarations, resolve-references).
	ScopePass
	// ScopeUnit covers one compilation unit.
	ScopeUnit
	// ScopeNode marks scope push/pop inside the resolver.
	ScopeNode
)

func (s Scope) String() string {
	switch s {
	case ScopeDriver:
		return "driver"
	case ScopePass:
		return "pass"
	case ScopeUnit:
		return "unit"
	case ScopeNode:
		return "node"
	default:
		return "unknown"
	}
}

// Attr is one key/value annotation. Attributes keep insertion order.
type Attr struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Event is a single trace record.
type Event struct {
	Time     time.Time
	Seq      uint64 // порядковый номер, монотонный на процесс
	Kind     Kind
	Scope    Scope
	SpanID   uint64
	ParentID uint64 // 0 у корневых событий
	GID      uint64
	Name     string // "resolve-units", "unit", "push-scope", ...
	Detail   string
	Attrs    []Attr
}

// Attr returns the value of key and whether it is set.
func (ev *Event) Attr(key string) (string, bool) {
	for _, a := range ev.Attrs {
		if a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}

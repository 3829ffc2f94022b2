package trace

import (
	"fmt"
	"strings"
)

// Level controls tracing verbosity.
type Level uint8

const (
	LevelOff    Level = iota
	LevelError        // only KindError events
	LevelPhase        // driver runs and resolver passes
	LevelDetail       // + compilation units
	LevelDebug        // + scope push/pop
)

var levelNames = [...]string{"off", "error", "phase", "detail", "debug"}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "unknown"
}

// ParseLevel converts a flag value to a Level. Case is ignored.
func ParseLevel(s string) (Level, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range levelNames {
		if n == name {
			return Level(i), nil
		}
	}
	return LevelOff, fmt.Errorf("invalid trace level: %q (expected: %s)", s, strings.Join(levelNames[:], "|"))
}

// Accepts reports whether an event of kind at scope passes this level.
// Errors pass every level except off.
func (l Level) Accepts(kind Kind, scope Scope) bool {
	switch {
	case l == LevelOff:
		return false
	case kind == KindError:
		return true
	case l == LevelError:
		return false
	case l == LevelPhase:
		return scope <= ScopePass
	case l == LevelDetail:
		return scope <= ScopeUnit
	default:
		return true
	}
}

// ShouldEmit reports whether non-error events at scope pass this level.
func (l Level) ShouldEmit(scope Scope) bool {
	return l.Accepts(KindPoint, scope)
}

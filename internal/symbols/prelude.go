package symbols

import "strings"

// Prelude lists the namespaces opened implicitly everywhere. They are
// searched only after every scope has been exhausted.
var Prelude = [][]string{
	{"Microsoft", "Quantum", "Canon"},
	{"Microsoft", "Quantum", "Core"},
	{"Microsoft", "Quantum", "Intrinsic"},
}

// CoreNamespace holds the primitive types.
var CoreNamespace = []string{"Microsoft", "Quantum", "Core"}

func preludeNamespaces(globals *GlobalScope) []nsOrigin[string] {
	out := make([]nsOrigin[string], 0, len(Prelude))
	for _, path := range Prelude {
		id, ok := globals.FindNamespace(path)
		if !ok {
			continue
		}
		out = append(out, nsOrigin[string]{ns: id, origin: strings.Join(path, ".")})
	}
	return out
}

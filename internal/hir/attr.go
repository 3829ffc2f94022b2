package hir

import "fmt"

// Attr is an attribute recognised by the compiler.
type Attr uint8

const (
	AttrEntryPoint Attr = iota + 1
	AttrUnimplemented
	AttrConfig
	AttrSimulatableIntrinsic
)

var attrNames = map[string]Attr{
	"EntryPoint":           AttrEntryPoint,
	"Unimplemented":        AttrUnimplemented,
	"Config":               AttrConfig,
	"SimulatableIntrinsic": AttrSimulatableIntrinsic,
}

// ParseAttr maps an attribute name to a known Attr.
func ParseAttr(name string) (Attr, error) {
	if a, ok := attrNames[name]; ok {
		return a, nil
	}
	return 0, fmt.Errorf("unknown attribute %q", name)
}

func (a Attr) String() string {
	for name, v := range attrNames {
		if v == a {
			return name
		}
	}
	return "unknown"
}

package ast

// Visibility описывает доступность элемента вне пакета.
type Visibility uint8

const (
	VisPublic Visibility = iota
	VisInternal
)

func (v Visibility) String() string {
	switch v {
	case VisInternal:
		return "internal"
	default:
		return "public"
	}
}

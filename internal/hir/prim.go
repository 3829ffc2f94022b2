package hir

// Prim is a built-in primitive type.
type Prim uint8

const (
	PrimBigInt Prim = iota + 1
	PrimBool
	PrimDouble
	PrimInt
	PrimPauli
	PrimQubit
	PrimRange
	PrimResult
	PrimString
)

func (p Prim) String() string {
	switch p {
	case PrimBigInt:
		return "BigInt"
	case PrimBool:
		return "Bool"
	case PrimDouble:
		return "Double"
	case PrimInt:
		return "Int"
	case PrimPauli:
		return "Pauli"
	case PrimQubit:
		return "Qubit"
	case PrimRange:
		return "Range"
	case PrimResult:
		return "Result"
	case PrimString:
		return "String"
	default:
		return "invalid"
	}
}

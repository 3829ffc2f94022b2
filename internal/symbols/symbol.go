package symbols

import (
	"fmt"
	"slices"

	"qres/internal/ast"
	"qres/internal/hir"
)

// ResKind tags a resolution.
type ResKind uint8

const (
	// ResItem is a global or local item.
	ResItem ResKind = iota + 1
	// ResLocal is a local variable or parameter.
	ResLocal
	// ResParam is a generic parameter of the enclosing callable.
	ResParam
	// ResPrimTy is a primitive type.
	ResPrimTy
	// ResUnitTy is the unit type.
	ResUnitTy
)

func (k ResKind) String() string {
	switch k {
	case ResItem:
		return "Item"
	case ResLocal:
		return "Local"
	case ResParam:
		return "Param"
	case ResPrimTy:
		return "PrimTy"
	case ResUnitTy:
		return "UnitTy"
	default:
		return "invalid"
	}
}

// Res is what a name refers to. Only the fields matching Kind are set, so
// values compare with == and can key maps.
type Res struct {
	Kind   ResKind        `json:"kind" msgpack:"kind"`
	Item   hir.ItemID     `json:"item,omitzero" msgpack:"item,omitempty"`
	Status hir.ItemStatus `json:"status,omitempty" msgpack:"status,omitempty"`
	Local  ast.NodeID     `json:"local,omitempty" msgpack:"local,omitempty"`
	Param  hir.ParamID    `json:"param,omitempty" msgpack:"param,omitempty"`
	Prim   hir.Prim       `json:"prim,omitempty" msgpack:"prim,omitempty"`
}

func ItemRes(id hir.ItemID, status hir.ItemStatus) Res {
	return Res{Kind: ResItem, Item: id, Status: status}
}

func LocalRes(id ast.NodeID) Res { return Res{Kind: ResLocal, Local: id} }

func ParamRes(id hir.ParamID) Res { return Res{Kind: ResParam, Param: id} }

func PrimRes(p hir.Prim) Res { return Res{Kind: ResPrimTy, Prim: p} }

func UnitRes() Res { return Res{Kind: ResUnitTy} }

// IsUnimplemented reports an item marked @Unimplemented.
func (r Res) IsUnimplemented() bool {
	return r.Kind == ResItem && r.Status == hir.StatusUnimplemented
}

func (r Res) String() string {
	switch r.Kind {
	case ResItem:
		return fmt.Sprintf("%s (%s)", r.Item, r.Status)
	case ResLocal:
		return fmt.Sprintf("Local %d", r.Local)
	case ResParam:
		return fmt.Sprintf("Param %d", r.Param)
	case ResPrimTy:
		return fmt.Sprintf("PrimTy %s", r.Prim)
	case ResUnitTy:
		return "UnitTy"
	default:
		return "invalid"
	}
}

// Names maps AST node identity to its resolution. Every resolved path node,
// every binding identifier and every declared item name has an entry.
type Names map[ast.NodeID]Res

// SortedIDs returns the keys in ascending order.
func (n Names) SortedIDs() []ast.NodeID {
	ids := make([]ast.NodeID, 0, len(n))
	for id := range n {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Get returns the resolution for id.
func (n Names) Get(id ast.NodeID) (Res, bool) {
	res, ok := n[id]
	return res, ok
}

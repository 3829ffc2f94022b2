// Package hir holds the identities shared between name resolution and the
// lowering phases: package and item IDs, item status, primitive types and the
// item ID assigner.
package hir

import "fmt"

// PackageID identifies a compiled package (a dependency or the current one).
type PackageID uint32

// LocalItemID identifies an item inside its own package.
type LocalItemID uint32

// ParamID is the index of a generic parameter in its callable's generics list.
type ParamID uint32

func (id PackageID) String() string   { return fmt.Sprintf("package %d", uint32(id)) }
func (id LocalItemID) String() string { return fmt.Sprintf("item %d", uint32(id)) }
func (id ParamID) String() string     { return fmt.Sprintf("param %d", uint32(id)) }

// LocalPackage is the PackageID of the package being compiled. Dependencies
// are numbered from 1.
const LocalPackage PackageID = 0

// ItemID is a globally unique item identity.
type ItemID struct {
	Package PackageID   `json:"package,omitempty" msgpack:"package,omitempty"`
	Item    LocalItemID `json:"item" msgpack:"item"`
}

// Intrapackage builds an ItemID for an item of the current package.
func Intrapackage(item LocalItemID) ItemID {
	return ItemID{Package: LocalPackage, Item: item}
}

// InPackage builds an ItemID for an item of a dependency.
func InPackage(pkg PackageID, item LocalItemID) ItemID {
	return ItemID{Package: pkg, Item: item}
}

// IsLocal reports whether the item belongs to the current package.
func (id ItemID) IsLocal() bool { return id.Package == LocalPackage }

func (id ItemID) String() string {
	if id.IsLocal() {
		return fmt.Sprintf("Item %d", uint32(id.Item))
	}
	return fmt.Sprintf("Item %d (Package %d)", uint32(id.Item), uint32(id.Package))
}

// ItemStatus tells whether an item may be used.
type ItemStatus uint8

const (
	// StatusAvailable is the default status.
	StatusAvailable ItemStatus = iota
	// StatusUnimplemented marks placeholder items that must not be used.
	StatusUnimplemented
)

func (s ItemStatus) String() string {
	switch s {
	case StatusUnimplemented:
		return "Unimplemented"
	default:
		return "Available"
	}
}

// StatusFromAttrs derives the item status from its recognised attributes.
func StatusFromAttrs(attrs []Attr) ItemStatus {
	for _, attr := range attrs {
		if attr == AttrUnimplemented {
			return StatusUnimplemented
		}
	}
	return StatusAvailable
}

// Visibility of an item outside its package.
type Visibility uint8

const (
	VisPublic Visibility = iota
	VisInternal
)

func (v Visibility) String() string {
	if v == VisInternal {
		return "internal"
	}
	return "public"
}

package symbols

import (
	"qres/internal/ast"
	"qres/internal/hir"
)

// itemStatus derives the status from the recognised attributes; unknown
// attribute names are ignored.
func itemStatus(attrs []*ast.Attr) hir.ItemStatus {
	known := make([]hir.Attr, 0, len(attrs))
	for _, attr := range attrs {
		if attr == nil || attr.Name == nil {
			continue
		}
		if a, err := hir.ParseAttr(attr.Name.Name); err == nil {
			known = append(known, a)
		}
	}
	return hir.StatusFromAttrs(known)
}

// isConfigAttr reports @Config, whose argument is not a name reference.
func isConfigAttr(attr *ast.Attr) bool {
	if attr == nil || attr.Name == nil {
		return false
	}
	a, err := hir.ParseAttr(attr.Name.Name)
	return err == nil && a == hir.AttrConfig
}

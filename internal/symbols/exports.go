package symbols

import (
	"iter"
	"slices"

	"qres/internal/ast"
	"qres/internal/hir"
)

// GlobalKind classifies an exported declaration.
type GlobalKind uint8

const (
	GlobalTy GlobalKind = iota + 1
	GlobalTerm
	GlobalNamespace
)

func (k GlobalKind) String() string {
	switch k {
	case GlobalTy:
		return "ty"
	case GlobalTerm:
		return "term"
	case GlobalNamespace:
		return "namespace"
	default:
		return "invalid"
	}
}

// Global is one declaration a compiled package makes visible to later
// compilations. A newtype yields two records, a type and its constructor
// term.
type Global struct {
	Kind       GlobalKind      `msgpack:"kind" json:"kind"`
	Namespace  []string        `msgpack:"namespace" json:"namespace"`
	Name       string          `msgpack:"name" json:"name"`
	Visibility hir.Visibility  `msgpack:"visibility" json:"visibility"`
	Status     hir.ItemStatus  `msgpack:"status" json:"status"`
	Item       hir.LocalItemID `msgpack:"item" json:"item"`
	Intrinsic  bool            `msgpack:"intrinsic,omitempty" json:"intrinsic,omitempty"`
}

// ExportPackage lists the globals of a resolved package in declaration
// order, including internal ones; AddExternalPackage applies visibility.
// names must hold the item resolutions bound for pkg.
func ExportPackage(pkg *ast.Package, names Names) []Global {
	var out []Global
	for _, node := range pkg.Nodes {
		if node == nil || node.Namespace == nil {
			continue
		}
		ns := node.Namespace
		path := ns.Name.Names()
		if res, ok := names[ns.ID]; ok && res.Kind == ResItem && len(path) > 0 {
			out = append(out, Global{
				Kind:       GlobalNamespace,
				Namespace:  path,
				Name:       path[len(path)-1],
				Visibility: hir.VisPublic,
				Status:     hir.StatusAvailable,
				Item:       res.Item.Item,
			})
		}
		for _, item := range ns.Items {
			out = appendItemGlobals(out, path, item, names)
		}
	}
	return out
}

func appendItemGlobals(out []Global, path []string, item *ast.Item, names Names) []Global {
	if item == nil {
		return out
	}
	vis := hir.VisPublic
	if item.Visibility == ast.VisInternal {
		vis = hir.VisInternal
	}
	switch item.Kind {
	case ast.ItemCallable:
		decl := item.Callable
		if decl == nil || decl.Name == nil {
			return out
		}
		res, ok := names[decl.Name.ID]
		if !ok || res.Kind != ResItem {
			return out
		}
		out = append(out, Global{
			Kind:       GlobalTerm,
			Namespace:  slices.Clone(path),
			Name:       decl.Name.Name,
			Visibility: vis,
			Status:     res.Status,
			Item:       res.Item.Item,
			Intrinsic:  decl.IsIntrinsic(),
		})
	case ast.ItemTy:
		if item.Ty == nil || item.Ty.Name == nil {
			return out
		}
		res, ok := names[item.Ty.Name.ID]
		if !ok || res.Kind != ResItem {
			return out
		}
		g := Global{
			Kind:       GlobalTy,
			Namespace:  slices.Clone(path),
			Name:       item.Ty.Name.Name,
			Visibility: vis,
			Status:     res.Status,
			Item:       res.Item.Item,
		}
		out = append(out, g)
		g.Kind = GlobalTerm
		g.Namespace = slices.Clone(path)
		out = append(out, g)
	}
	return out
}

// AddExternalPackage imports the globals of a previously compiled package.
// Only public declarations are bound, plus internal intrinsics, whose names
// must stay unique program-wide. The namespace of every global is declared
// even when the global itself is filtered out. Later entries overwrite
// earlier ones of the same name.
func (t *GlobalTable) AddExternalPackage(id hir.PackageID, globals iter.Seq[Global]) {
	scope := t.Scope
	for g := range globals {
		ns := scope.InsertOrFindNamespace(g.Namespace)
		public := g.Visibility == hir.VisPublic
		res := ItemRes(hir.InPackage(id, g.Item), g.Status)
		switch g.Kind {
		case GlobalTy:
			if public {
				scope.set(NameTy, ns, g.Name, res)
			}
		case GlobalTerm:
			if public {
				scope.set(NameTerm, ns, g.Name, res)
			}
			if g.Intrinsic {
				scope.intrinsics[g.Name] = struct{}{}
			}
		}
	}
}

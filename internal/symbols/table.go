package symbols

import (
	"qres/internal/ast"
	"qres/internal/hir"
	"qres/internal/namespaces"
	"qres/internal/source"
)

// GlobalScope holds namespace-level declarations of every package in the
// compilation, keyed by namespace and name, plus the namespace tree itself.
type GlobalScope struct {
	tys        map[namespaces.ID]map[string]Res
	terms      map[namespaces.ID]map[string]Res
	namespaces *namespaces.Tree
	intrinsics map[string]struct{}
}

// NewGlobalScope creates an empty scope with a fresh namespace tree.
func NewGlobalScope() *GlobalScope {
	return &GlobalScope{
		tys:        make(map[namespaces.ID]map[string]Res),
		terms:      make(map[namespaces.ID]map[string]Res),
		namespaces: namespaces.NewTree(),
		intrinsics: make(map[string]struct{}),
	}
}

// Namespaces exposes the namespace tree.
func (g *GlobalScope) Namespaces() *namespaces.Tree { return g.namespaces }

// FindNamespace looks a namespace up without creating it.
func (g *GlobalScope) FindNamespace(path []string) (namespaces.ID, bool) {
	return g.namespaces.Find(path)
}

// InsertOrFindNamespace declares a namespace. Namespaces are tracked apart
// from their contents.
func (g *GlobalScope) InsertOrFindNamespace(path []string) namespaces.ID {
	return g.namespaces.InsertOrFind(path)
}

func (g *GlobalScope) table(kind NameKind) map[namespaces.ID]map[string]Res {
	if kind == NameTy {
		return g.tys
	}
	return g.terms
}

// Get looks name up in one namespace.
func (g *GlobalScope) Get(kind NameKind, ns namespaces.ID, name string) (Res, bool) {
	items, ok := g.table(kind)[ns]
	if !ok {
		return Res{}, false
	}
	res, ok := items[name]
	return res, ok
}

func (g *GlobalScope) has(kind NameKind, ns namespaces.ID, name string) bool {
	_, ok := g.Get(kind, ns, name)
	return ok
}

func (g *GlobalScope) set(kind NameKind, ns namespaces.ID, name string, res Res) {
	t := g.table(kind)
	items, ok := t[ns]
	if !ok {
		items = make(map[string]Res)
		t[ns] = items
	}
	items[name] = res
}

// BindItem registers name in ns. An occupied entry is left untouched and a
// Duplicate error is returned.
func (g *GlobalScope) BindItem(kind NameKind, ns namespaces.ID, name string, res Res, span source.Span) *Error {
	if g.has(kind, ns, name) {
		return g.duplicate(ns, name, span)
	}
	g.set(kind, ns, name, res)
	return nil
}

// BindNewtype registers name as both a type and a term. If either entry is
// taken, neither is written.
func (g *GlobalScope) BindNewtype(ns namespaces.ID, name string, res Res, span source.Span) *Error {
	if g.has(NameTy, ns, name) || g.has(NameTerm, ns, name) {
		return g.duplicate(ns, name, span)
	}
	g.set(NameTy, ns, name, res)
	g.set(NameTerm, ns, name, res)
	return nil
}

// DeclareIntrinsic records an intrinsic callable. Intrinsic names are unique
// across the whole program, not per namespace.
func (g *GlobalScope) DeclareIntrinsic(name string, span source.Span) *Error {
	if _, dup := g.intrinsics[name]; dup {
		return &Error{Kind: ErrDuplicateIntrinsic, Name: name, Span: span}
	}
	g.intrinsics[name] = struct{}{}
	return nil
}

// IsIntrinsic reports whether name was declared intrinsic.
func (g *GlobalScope) IsIntrinsic(name string) bool {
	_, ok := g.intrinsics[name]
	return ok
}

func (g *GlobalScope) duplicate(ns namespaces.ID, name string, span source.Span) *Error {
	return &Error{Kind: ErrDuplicate, Name: name, Namespace: g.namespaces.Name(ns), Span: span}
}

// GlobalTable is the starting point of a compilation: the global scope plus
// the names bound while declaring global items.
type GlobalTable struct {
	Names Names
	Scope *GlobalScope
}

var builtins = []struct {
	name string
	res  Res
}{
	{"BigInt", PrimRes(hir.PrimBigInt)},
	{"Bool", PrimRes(hir.PrimBool)},
	{"Double", PrimRes(hir.PrimDouble)},
	{"Int", PrimRes(hir.PrimInt)},
	{"Pauli", PrimRes(hir.PrimPauli)},
	{"Qubit", PrimRes(hir.PrimQubit)},
	{"Range", PrimRes(hir.PrimRange)},
	{"Result", PrimRes(hir.PrimResult)},
	{"String", PrimRes(hir.PrimString)},
	{"Unit", UnitRes()},
}

// NewGlobalTable creates a table with the prelude namespaces declared and
// the primitive types bound in the core namespace.
func NewGlobalTable() *GlobalTable {
	scope := NewGlobalScope()
	for _, path := range Prelude {
		scope.InsertOrFindNamespace(path)
	}
	core := scope.InsertOrFindNamespace(CoreNamespace)
	for _, b := range builtins {
		scope.set(NameTy, core, b.name, b.res)
	}
	return &GlobalTable{Names: make(Names), Scope: scope}
}

// AddLocalPackage binds every namespace-level item of pkg. Top-level
// statements are left to Resolver.BindFragments.
func (t *GlobalTable) AddLocalPackage(assigner *hir.Assigner, pkg *ast.Package) []*Error {
	var errs []*Error
	for _, node := range pkg.Nodes {
		if node != nil && node.Namespace != nil {
			errs = bindGlobalItems(t.Names, t.Scope, node.Namespace, assigner, errs)
		}
	}
	return errs
}

// bindGlobalItems declares ns and binds its callables and newtypes. The
// namespace declaration itself gets an item ID.
func bindGlobalItems(names Names, scope *GlobalScope, ns *ast.Namespace, assigner *hir.Assigner, errs []*Error) []*Error {
	names[ns.ID] = ItemRes(hir.Intrapackage(assigner.NextItem()), hir.StatusAvailable)
	nsID := scope.InsertOrFindNamespace(ns.Name.Names())
	for _, item := range ns.Items {
		errs = bindGlobalItem(names, scope, nsID, assigner, item, errs)
	}
	return errs
}

func bindGlobalItem(names Names, scope *GlobalScope, ns namespaces.ID, assigner *hir.Assigner, item *ast.Item, errs []*Error) []*Error {
	if item == nil {
		return errs
	}
	switch item.Kind {
	case ast.ItemCallable:
		decl := item.Callable
		if decl == nil || decl.Name == nil {
			return errs
		}
		res := ItemRes(hir.Intrapackage(assigner.NextItem()), itemStatus(item.Attrs))
		names[decl.Name.ID] = res
		if err := scope.BindItem(NameTerm, ns, decl.Name.Name, res, decl.Name.Span); err != nil {
			errs = append(errs, err)
		}
		if decl.IsIntrinsic() {
			if err := scope.DeclareIntrinsic(decl.Name.Name, decl.Name.Span); err != nil {
				errs = append(errs, err)
			}
		}
	case ast.ItemTy:
		if item.Ty == nil || item.Ty.Name == nil {
			return errs
		}
		name := item.Ty.Name
		res := ItemRes(hir.Intrapackage(assigner.NextItem()), itemStatus(item.Attrs))
		names[name.ID] = res
		if err := scope.BindNewtype(ns, name.Name, res, name.Span); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

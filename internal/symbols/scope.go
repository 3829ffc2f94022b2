package symbols

import (
	"slices"

	"qres/internal/ast"
	"qres/internal/hir"
	"qres/internal/namespaces"
	"qres/internal/source"
)

// Open is one `open` of a namespace, or the implicit self-open of a
// namespace block. Span is the namespace path as written.
type Open struct {
	Namespace namespaces.ID
	Span      source.Span
}

// openGroup holds every open registered under one alias. Several opens may
// share an alias, which merges those namespaces behind one qualifier.
type openGroup struct {
	alias string
	opens []Open
}

type scopeVar struct {
	validAt uint32
	node    ast.NodeID
}

type scopeItem struct {
	id     hir.ItemID
	status hir.ItemStatus
}

// Scope is one lexical region. For callables and namespaces the span covers
// the whole declaration; for blocks it includes the braces.
type Scope struct {
	Span      source.Span
	Kind      ScopeKind
	Namespace namespaces.ID // only for ScopeNamespace

	opens     []openGroup
	openIndex map[string]int
	tys       map[string]scopeItem
	terms     map[string]scopeItem
	// Только последняя привязка имени: затенённая в той же области
	// переменная пропадает из запросов по смещению.
	vars   map[string]scopeVar
	tyVars map[string]hir.ParamID
}

func newScope(kind ScopeKind, span source.Span, ns namespaces.ID) Scope {
	return Scope{
		Span:      span,
		Kind:      kind,
		Namespace: ns,
		openIndex: make(map[string]int),
		tys:       make(map[string]scopeItem),
		terms:     make(map[string]scopeItem),
		vars:      make(map[string]scopeVar),
		tyVars:    make(map[string]hir.ParamID),
	}
}

// addOpen registers open under alias.
func (s *Scope) addOpen(alias string, open Open) {
	idx, ok := s.openIndex[alias]
	if !ok {
		idx = len(s.opens)
		s.opens = append(s.opens, openGroup{alias: alias})
		s.openIndex[alias] = idx
	}
	s.opens[idx].opens = append(s.opens[idx].opens, open)
}

// OpensUnder returns the opens registered under alias.
func (s *Scope) OpensUnder(alias string) []Open {
	idx, ok := s.openIndex[alias]
	if !ok {
		return nil
	}
	return slices.Clone(s.opens[idx].opens)
}

// Aliases returns every alias key in registration order.
func (s *Scope) Aliases() []string {
	out := make([]string, len(s.opens))
	for i, g := range s.opens {
		out[i] = g.alias
	}
	return out
}

func (s *Scope) item(kind NameKind, name string) (scopeItem, bool) {
	if kind == NameTy {
		it, ok := s.tys[name]
		return it, ok
	}
	it, ok := s.terms[name]
	return it, ok
}

func (s *Scope) declareVar(name string, validAt uint32, node ast.NodeID) {
	s.vars[name] = scopeVar{validAt: validAt, node: node}
}

func (s *Scope) declareTerm(name string, item scopeItem) { s.terms[name] = item }

func (s *Scope) declareTy(name string, item scopeItem) { s.tys[name] = item }

func (s *Scope) declareTyParam(name string, id hir.ParamID) { s.tyVars[name] = id }

// locals lists what the scope contributes to an offset query. Variables
// appear once offset reaches their valid-at point; type parameters and
// items are always listed. Newtypes are listed once, through terms.
func (s *Scope) locals(offset uint32, vars bool) []Local {
	var out []Local
	if vars {
		for _, name := range sortedKeys(s.vars) {
			v := s.vars[name]
			if offset >= v.validAt {
				out = append(out, Local{Name: name, Kind: LocalVar, Node: v.node})
			}
		}
		for _, name := range sortedKeys(s.tyVars) {
			out = append(out, Local{Name: name, Kind: LocalTyParam, Param: s.tyVars[name]})
		}
	}
	for _, name := range sortedKeys(s.terms) {
		out = append(out, Local{Name: name, Kind: LocalItem, Item: s.terms[name].id})
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

package symbols

import (
	"slices"

	"qres/internal/ast"
	"qres/internal/namespaces"
)

// nsOrigin pairs a namespace to search with whatever brought it into view:
// an Open for explicit opens, the namespace name for the prelude.
type nsOrigin[O any] struct {
	ns     namespaces.ID
	origin O
}

type candidate[O any] struct {
	res    Res
	origin O
}

// resolve looks name up with the shadowing rules, first match wins:
//
//  1. scopes from innermost outwards (locals, scope items, the enclosing
//     namespace, then that scope's opens);
//  2. the prelude, for unqualified names only;
//  3. the root namespace.
//
// scopes must be ordered innermost first. qualifier is nil for an
// unqualified name.
func resolve(kind NameKind, globals *GlobalScope, scopes []*Scope, name *ast.Ident, qualifier ast.Idents) (Res, *Error) {
	if res, err, ok := checkAllScopes(kind, globals, name, qualifier, scopes); ok {
		return res, err
	}

	if len(qualifier) == 0 {
		found := findSymbolInNamespaces(kind, globals, nil, name.Name, preludeNamespaces(globals), nil)
		if len(found) > 1 {
			names := make([]string, len(found))
			for i, c := range found {
				names[i] = c.origin
			}
			slices.Sort(names)
			return Res{}, &Error{
				Kind:   ErrAmbiguousPrelude,
				Name:   name.Name,
				Span:   name.Span,
				First:  names[0],
				Second: names[1],
			}
		}
		if len(found) == 1 {
			return found[0].res, nil
		}
	}

	// в корне дубликатов не бывает, так что неоднозначности здесь нет
	root := []nsOrigin[struct{}]{{ns: namespaces.Root}}
	if found := findSymbolInNamespaces(kind, globals, qualifier, name.Name, root, nil); len(found) == 1 {
		return found[0].res, nil
	}

	return Res{}, notFound(name.Name, name.Span)
}

// checkAllScopes walks the scope chain. ok reports that some scope decided
// the lookup, either with a resolution or with an ambiguity error.
func checkAllScopes(kind NameKind, globals *GlobalScope, name *ast.Ident, qualifier ast.Idents, scopes []*Scope) (Res, *Error, bool) {
	vars := true
	for _, scope := range scopes {
		if res, err, ok := checkScopedResolutions(kind, globals, name, qualifier, &vars, scope); ok {
			return res, err, true
		}
	}
	return Res{}, nil, false
}

func checkScopedResolutions(kind NameKind, globals *GlobalScope, name *ast.Ident, qualifier ast.Idents, vars *bool, scope *Scope) (Res, *Error, bool) {
	if len(qualifier) == 0 {
		if res, ok := resolveScopeLocals(kind, globals, scope, *vars, name.Name); ok {
			return res, nil, true
		}
	}

	aliases := make(map[string][]nsOrigin[Open], len(scope.opens))
	var all []nsOrigin[Open]
	for _, group := range scope.opens {
		for _, open := range group.opens {
			o := nsOrigin[Open]{ns: open.Namespace, origin: open}
			aliases[group.alias] = append(aliases[group.alias], o)
			all = append(all, o)
		}
	}

	found := findSymbolInNamespaces(kind, globals, qualifier, name.Name, all, aliases)
	switch {
	case len(found) == 1:
		return found[0].res, nil, true
	case len(found) > 1:
		return Res{}, ambiguousSymbolError(globals, name, found), true
	}

	if scope.Kind == ScopeCallable {
		// локальные callable не замыкания: переменные внешних областей не видны
		*vars = false
	}
	return Res{}, nil, false
}

// ambiguousSymbolError reports the two earliest opens by source position;
// any further candidates are not mentioned.
func ambiguousSymbolError(globals *GlobalScope, name *ast.Ident, found []candidate[Open]) *Error {
	opens := make([]Open, len(found))
	for i, c := range found {
		opens[i] = c.origin
	}
	slices.SortStableFunc(opens, func(a, b Open) int {
		switch {
		case a.Span.Less(b.Span):
			return -1
		case b.Span.Less(a.Span):
			return 1
		default:
			return 0
		}
	})
	tree := globals.Namespaces()
	return &Error{
		Kind:       ErrAmbiguous,
		Name:       name.Name,
		Span:       name.Span,
		First:      tree.Name(opens[0].Namespace),
		Second:     tree.Name(opens[1].Namespace),
		FirstSpan:  opens[0].Span,
		SecondSpan: opens[1].Span,
	}
}

// findSymbolInNamespaces collects the distinct resolutions of name across
// search. A qualifier that matches an alias restricts the search to that
// alias's opens when they yield anything; otherwise the qualifier is looked
// up as a namespace nested in each searched namespace. When several
// candidates remain, unimplemented items are dropped so that a newer
// implementation can supersede a stale placeholder.
func findSymbolInNamespaces[O any](
	kind NameKind,
	globals *GlobalScope,
	qualifier ast.Idents,
	name string,
	search []nsOrigin[O],
	aliases map[string][]nsOrigin[O],
) []candidate[O] {
	if len(qualifier) > 0 {
		if opens, ok := aliases[qualifier.String()]; ok {
			var out []candidate[O]
			for _, o := range opens {
				if res, ok := globals.Get(kind, o.ns, name); ok {
					out = addCandidate(out, res, o.origin)
				}
			}
			if len(out) > 0 {
				return out
			}
		}
	}

	tree := globals.Namespaces()
	var out []candidate[O]
	for _, o := range search {
		ns := o.ns
		if len(qualifier) > 0 {
			nested, ok := tree.FindFrom(o.ns, qualifier.Names())
			if !ok {
				continue
			}
			ns = nested
		}
		if res, ok := globals.Get(kind, ns, name); ok {
			out = addCandidate(out, res, o.origin)
		}
	}

	if len(out) > 1 {
		out = slices.DeleteFunc(out, func(c candidate[O]) bool { return c.res.IsUnimplemented() })
	}
	return out
}

// addCandidate keeps candidates distinct by resolution; the same item
// reached through two opens is not ambiguous.
func addCandidate[O any](out []candidate[O], res Res, origin O) []candidate[O] {
	for _, c := range out {
		if c.res == res {
			return out
		}
	}
	return append(out, candidate[O]{res: res, origin: origin})
}

// resolveScopeLocals applies the shadowing rules inside one scope: a local
// variable (or type parameter) beats an item of the same name declared in
// the same scope, which beats the enclosing namespace's declarations.
func resolveScopeLocals(kind NameKind, globals *GlobalScope, scope *Scope, vars bool, name string) (Res, bool) {
	if vars {
		switch kind {
		case NameTerm:
			if v, ok := scope.vars[name]; ok {
				return LocalRes(v.node), true
			}
		case NameTy:
			if id, ok := scope.tyVars[name]; ok {
				return ParamRes(id), true
			}
		}
	}

	if it, ok := scope.item(kind, name); ok {
		return ItemRes(it.id, it.status), true
	}

	if scope.Kind == ScopeNamespace {
		if res, ok := globals.Get(kind, scope.Namespace, name); ok {
			return res, true
		}
	}
	return Res{}, false
}

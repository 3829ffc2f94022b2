package symbols

import (
	"errors"
	"fmt"

	"qres/internal/namespaces"
)

// Validate checks that every namespace scope refers to a namespace issued
// by tree and that every open does too. It returns all violations joined.
func (l *Locals) Validate(tree *namespaces.Tree) error {
	var errs []error
	for i := 1; i < len(l.data); i++ {
		scope := &l.data[i]
		if scope.Kind == ScopeNamespace && !tree.Has(scope.Namespace) {
			errs = append(errs, fmt.Errorf("scope %d: namespace %d was never issued", i, scope.Namespace))
		}
		if scope.Span.Start > scope.Span.End {
			errs = append(errs, fmt.Errorf("scope %d: inverted span %s", i, scope.Span))
		}
		for _, group := range scope.opens {
			for _, open := range group.opens {
				if !tree.Has(open.Namespace) {
					errs = append(errs, fmt.Errorf("scope %d: open %q of unknown namespace %d", i, group.alias, open.Namespace))
				}
			}
		}
	}
	return errors.Join(errs...)
}

// Validate checks the namespace tree and that every declaration is keyed by
// an issued namespace.
func (g *GlobalScope) Validate() error {
	errs := []error{g.namespaces.Validate()}
	for _, kind := range []NameKind{NameTy, NameTerm} {
		for ns := range g.table(kind) {
			if !g.namespaces.Has(ns) {
				errs = append(errs, fmt.Errorf("%s table: namespace %d was never issued", kind, ns))
			}
		}
	}
	return errors.Join(errs...)
}

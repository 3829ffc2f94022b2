package driver

import (
	"errors"
	"fmt"
	"os"

	"fortio.org/safecast"

	"qres/internal/diag"
	"qres/internal/hir"
	"qres/internal/pkgcache"
	"qres/internal/project"
	"qres/internal/project/dag"
	"qres/internal/source"
	"qres/internal/symbols"
)

// Dependency is a loaded package interface and the package ID it is bound
// under.
type Dependency struct {
	Name      string
	Path      string
	ID        hir.PackageID
	Interface *pkgcache.Interface
}

// Dependencies holds the interfaces every unit imports, ordered so that a
// package follows the packages it requires.
type Dependencies struct {
	List  []Dependency
	Diags []diag.Diagnostic
}

// LoadDependencies reads the interface of every declared dependency. Load
// failures and graph defects become diagnostics; the affected packages are
// skipped.
func LoadDependencies(m *project.Manifest) *Dependencies {
	deps := &Dependencies{}
	if m == nil {
		return deps
	}
	loaded := make(map[string]Dependency, len(m.Config.Dependencies))
	nodes := make([]dag.Node, 0, len(m.Config.Dependencies))
	for _, cfg := range m.Config.Dependencies {
		path := m.InterfacePath(cfg)
		iface, err := pkgcache.Load(path)
		if err != nil {
			code := diag.ProjBadInterface
			if errors.Is(err, os.ErrNotExist) {
				code = diag.ProjMissingDependency
			}
			deps.report(code, fmt.Sprintf("dependency %q: %v", cfg.Name, err))
			continue
		}
		if iface.Name != cfg.Name {
			deps.report(diag.ProjBadInterface, fmt.Sprintf("dependency %q: interface %s describes package %q", cfg.Name, path, iface.Name))
			continue
		}
		loaded[cfg.Name] = Dependency{Name: cfg.Name, Path: path, Interface: iface}
		nodes = append(nodes, dag.Node{Name: cfg.Name, Requires: iface.Requires})
	}

	order, problems := dag.Sort(nodes)
	for _, p := range problems {
		code := diag.ProjMissingDependency
		if p.Kind == dag.ProblemCycle {
			code = diag.ProjDependencyCycle
		}
		deps.report(code, p.String())
	}
	for i, name := range order {
		dep, ok := loaded[name]
		if !ok {
			continue
		}
		id, err := safecast.Conv[hir.PackageID](i + 1)
		if err != nil {
			panic(fmt.Errorf("package id overflow: %w", err))
		}
		dep.ID = id
		deps.List = append(deps.List, dep)
	}
	return deps
}

// Names returns the dependency names in load order.
func (d *Dependencies) Names() []string {
	if d == nil {
		return nil
	}
	out := make([]string, 0, len(d.List))
	for _, dep := range d.List {
		out = append(out, dep.Name)
	}
	return out
}

// Apply binds every dependency into table.
func (d *Dependencies) Apply(table *symbols.GlobalTable) {
	if d == nil {
		return
	}
	for _, dep := range d.List {
		table.AddExternalPackage(dep.ID, dep.Interface.All())
	}
}

func (d *Dependencies) report(code diag.Code, msg string) {
	d.Diags = append(d.Diags, diag.Diagnostic{
		Severity: diag.SevError,
		Code:     code,
		Message:  msg,
		Primary:  source.Span{},
	})
}

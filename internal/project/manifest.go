package project

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"qres/internal/symbols"
)

const DefaultMaxDiagnostics = 100

// Manifest is a loaded qres.toml together with its location.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

type Config struct {
	Package      PackageConfig      `toml:"package"`
	Resolve      ResolveConfig      `toml:"resolve"`
	Dependencies []DependencyConfig `toml:"dependencies"`
	Dropped      []DroppedConfig    `toml:"dropped"`
}

type PackageConfig struct {
	Name    string   `toml:"name"`
	Sources []string `toml:"sources"`
}

type ResolveConfig struct {
	MaxDiagnostics int `toml:"max-diagnostics"`
}

// DependencyConfig names a package interface file produced by `qres export`.
type DependencyConfig struct {
	Name      string `toml:"name"`
	Interface string `toml:"interface"`
}

// DroppedConfig is a declaration removed from an earlier configuration of
// the program. Namespace is dotted.
type DroppedConfig struct {
	Namespace string `toml:"namespace"`
	Name      string `toml:"name"`
}

// LoadManifest finds qres.toml starting at startDir and parses it.
// ok is false when no manifest exists up the tree.
func LoadManifest(startDir string) (*Manifest, bool, error) {
	manifestPath, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := LoadConfig(manifestPath)
	if err != nil {
		return nil, true, err
	}
	return &Manifest{
		Path:   manifestPath,
		Root:   filepath.Dir(manifestPath),
		Config: cfg,
	}, true, nil
}

func LoadConfig(path string) (Config, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
	}
	if !meta.IsDefined("package") {
		return Config{}, fmt.Errorf("%s: missing [package]", path)
	}
	if !meta.IsDefined("package", "name") || strings.TrimSpace(cfg.Package.Name) == "" {
		return Config{}, fmt.Errorf("%s: missing [package].name", path)
	}
	if !meta.IsDefined("resolve", "max-diagnostics") {
		cfg.Resolve.MaxDiagnostics = DefaultMaxDiagnostics
	} else if cfg.Resolve.MaxDiagnostics <= 0 {
		return Config{}, fmt.Errorf("%s: [resolve].max-diagnostics must be positive", path)
	}
	seen := make(map[string]struct{}, len(cfg.Dependencies))
	for i, dep := range cfg.Dependencies {
		name := strings.TrimSpace(dep.Name)
		if name == "" {
			return Config{}, fmt.Errorf("%s: dependencies[%d]: missing name", path, i)
		}
		if strings.TrimSpace(dep.Interface) == "" {
			return Config{}, fmt.Errorf("%s: dependency %q: missing interface", path, name)
		}
		if _, dup := seen[name]; dup {
			return Config{}, fmt.Errorf("%s: duplicate dependency %q", path, name)
		}
		seen[name] = struct{}{}
	}
	for i, d := range cfg.Dropped {
		if strings.TrimSpace(d.Name) == "" {
			return Config{}, fmt.Errorf("%s: dropped[%d]: missing name", path, i)
		}
	}
	return cfg, nil
}

// SourceRoots returns the absolute source roots; "." when none are listed.
func (m *Manifest) SourceRoots() []string {
	sources := m.Config.Package.Sources
	if len(sources) == 0 {
		sources = []string{"."}
	}
	out := make([]string, 0, len(sources))
	for _, src := range sources {
		out = append(out, m.resolvePath(src))
	}
	return out
}

// InterfacePath returns the absolute interface path of a dependency.
func (m *Manifest) InterfacePath(dep DependencyConfig) string {
	return m.resolvePath(dep.Interface)
}

func (m *Manifest) resolvePath(rel string) string {
	p := filepath.FromSlash(strings.TrimSpace(rel))
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(m.Root, p)
}

// DroppedNames converts [[dropped]] entries for the resolver.
func (c Config) DroppedNames() []symbols.DroppedName {
	if len(c.Dropped) == 0 {
		return nil
	}
	out := make([]symbols.DroppedName, 0, len(c.Dropped))
	for _, d := range c.Dropped {
		var ns []string
		if trimmed := strings.TrimSpace(d.Namespace); trimmed != "" {
			ns = strings.Split(trimmed, ".")
		}
		out = append(out, symbols.DroppedName{Namespace: ns, Name: strings.TrimSpace(d.Name)})
	}
	return out
}

package project

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"qres/internal/symbols"
)

func writeManifest(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, ManifestName)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return path
}

func TestLoadManifestWalksUp(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, `
[package]
name = "app"
sources = ["src", "gen/ast"]

[resolve]
max-diagnostics = 20

[[dependencies]]
name = "std"
interface = "deps/std.qri"

[[dropped]]
namespace = "Microsoft.Quantum.Diagnostics"
name = "DumpMachine"
`)
	nested := filepath.Join(root, "src", "inner")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	m, ok, err := LoadManifest(nested)
	if err != nil || !ok {
		t.Fatalf("expected manifest, got ok=%v err=%v", ok, err)
	}
	if m.Root != root {
		t.Fatalf("expected root %q, got %q", root, m.Root)
	}
	if m.Config.Resolve.MaxDiagnostics != 20 {
		t.Fatalf("expected max-diagnostics 20, got %d", m.Config.Resolve.MaxDiagnostics)
	}
	wantRoots := []string{filepath.Join(root, "src"), filepath.Join(root, "gen", "ast")}
	if diff := cmp.Diff(wantRoots, m.SourceRoots()); diff != "" {
		t.Fatalf("unexpected source roots (-want +got):\n%s", diff)
	}
	if got := m.InterfacePath(m.Config.Dependencies[0]); got != filepath.Join(root, "deps", "std.qri") {
		t.Fatalf("unexpected interface path %q", got)
	}
	wantDropped := []symbols.DroppedName{{
		Namespace: []string{"Microsoft", "Quantum", "Diagnostics"},
		Name:      "DumpMachine",
	}}
	if diff := cmp.Diff(wantDropped, m.Config.DroppedNames()); diff != "" {
		t.Fatalf("unexpected dropped names (-want +got):\n%s", diff)
	}
}

func TestLoadManifestMissing(t *testing.T) {
	m, ok, err := LoadManifest(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// a stray qres.toml above the temp dir would break this; TempDir lives under os.TempDir
	if ok || m != nil {
		t.Fatalf("expected no manifest, got %+v", m)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeManifest(t, t.TempDir(), "[package]\nname = \"app\"\n")
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Resolve.MaxDiagnostics != DefaultMaxDiagnostics {
		t.Fatalf("expected default max-diagnostics, got %d", cfg.Resolve.MaxDiagnostics)
	}
	m := &Manifest{Root: "/proj", Config: cfg}
	if diff := cmp.Diff([]string{filepath.Clean("/proj")}, m.SourceRoots()); diff != "" {
		t.Fatalf("unexpected source roots (-want +got):\n%s", diff)
	}
	if cfg.DroppedNames() != nil {
		t.Fatalf("expected no dropped names")
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"syntax", "[package\n", "failed to parse TOML"},
		{"no package", "[resolve]\nmax-diagnostics = 3\n", "missing [package]"},
		{"no name", "[package]\nsources = []\n", "missing [package].name"},
		{"blank name", "[package]\nname = \"  \"\n", "missing [package].name"},
		{"unknown key", "[package]\nname = \"a\"\nmain = \"x\"\n", "unknown key \"package.main\""},
		{"bad limit", "[package]\nname = \"a\"\n[resolve]\nmax-diagnostics = 0\n", "must be positive"},
		{"dep without interface", "[package]\nname = \"a\"\n[[dependencies]]\nname = \"std\"\n", "missing interface"},
		{"duplicate dep", "[package]\nname = \"a\"\n[[dependencies]]\nname = \"std\"\ninterface = \"a.qri\"\n[[dependencies]]\nname = \"std\"\ninterface = \"b.qri\"\n", "duplicate dependency"},
		{"dropped without name", "[package]\nname = \"a\"\n[[dropped]]\nnamespace = \"A\"\n", "dropped[0]: missing name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeManifest(t, t.TempDir(), tt.body)
			_, err := LoadConfig(path)
			if err == nil {
				t.Fatalf("expected error containing %q", tt.want)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestCombineIsOrderSensitive(t *testing.T) {
	a := Sum([]byte("a"))
	b := Sum([]byte("b"))
	if Combine(a, b) == Combine(b, a) {
		t.Fatalf("expected different digests for different order")
	}
	if Combine(a, b) != Combine(a, b) {
		t.Fatalf("expected deterministic digest")
	}
	if !(Digest{}).IsZero() || a.IsZero() {
		t.Fatalf("unexpected IsZero result")
	}
	if len(a.String()) != 64 {
		t.Fatalf("expected 64 hex chars, got %q", a.String())
	}
}

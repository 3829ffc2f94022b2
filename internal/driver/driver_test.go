package driver

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"qres/internal/ast"
	"qres/internal/diag"
	"qres/internal/hir"
	"qres/internal/observ"
	"qres/internal/pkgcache"
	"qres/internal/project"
	"qres/internal/symbols"
	"qres/internal/testkit"
	"qres/internal/trace"
)

func writeDoc(t *testing.T, path string, pkg *ast.Package) {
	t.Helper()
	format, ok := ast.FormatForPath(path)
	if !ok {
		t.Fatalf("bad document path %q", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer f.Close()
	if err := ast.EncodeDocument(f, &ast.Document{Version: ast.DocumentVersion, Package: pkg}, format); err != nil {
		t.Fatalf("encode: %v", err)
	}
}

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
}

type recordingSink struct {
	mu     sync.Mutex
	events []Event
}

func (s *recordingSink) OnEvent(evt Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, evt)
}

func (s *recordingSink) count(stage Stage, status Status) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, evt := range s.events {
		if evt.Stage == stage && evt.Status == status {
			n++
		}
	}
	return n
}

func libPackage() *ast.Package {
	return ast.NewPackage(ast.NamespaceNode("Lib",
		ast.FunctionItem("Pub", ast.TuplePat()),
		ast.FunctionItem("Hidden", ast.TuplePat()).Internal(),
	))
}

func appPackage() *ast.Package {
	return ast.NewPackage(ast.NamespaceNode("App",
		ast.OpenItem("Lib", ""),
		ast.FunctionItem("Main", ast.TuplePat(), ast.SemiStmt(ast.CallExpr(ast.PathExpr("Pub")))),
	))
}

func TestDiscoverHonoursGitignore(t *testing.T) {
	root := t.TempDir()
	writeDoc(t, filepath.Join(root, "a.qast.json"), libPackage())
	writeDoc(t, filepath.Join(root, "sub", "b.qast"), libPackage())
	writeDoc(t, filepath.Join(root, "gen", "c.qast.json"), libPackage())
	writeDoc(t, filepath.Join(root, ".hidden", "d.qast.json"), libPackage())
	writeDoc(t, filepath.Join(root, "skip.qast.json"), libPackage())
	writeFile(t, filepath.Join(root, "notes.txt"), "not a document")
	writeFile(t, filepath.Join(root, ".gitignore"), "gen/\nskip.qast.json\n")

	got, err := Discover([]string{root, filepath.Join(root, "a.qast.json")})
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	want := []string{filepath.Join(root, "a.qast.json"), filepath.Join(root, "sub", "b.qast")}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected documents (-want +got):\n%s", diff)
	}
}

func TestDiscoverRejectsNonDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "main.qs")
	writeFile(t, path, "namespace A {}")
	if _, err := Discover([]string{path}); err == nil {
		t.Fatalf("expected error for non-document root")
	}
	if _, err := Discover([]string{filepath.Join(t.TempDir(), "missing")}); err == nil {
		t.Fatalf("expected error for missing root")
	}
}

func TestLoadUnitSynthesisesLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lib.qast")
	writeDoc(t, path, libPackage())

	unit, err := LoadUnit(path, nil)
	if err != nil {
		t.Fatalf("LoadUnit: %v", err)
	}
	res, err := ResolveUnits(context.Background(), Request{Paths: []string{path}})
	if err != nil {
		t.Fatalf("ResolveUnits: %v", err)
	}
	registered := res.Units[0].Unit
	if !registered.Synthetic || registered.File == 0 {
		t.Fatalf("expected synthetic layout in a registered file, got %+v", registered)
	}
	if err := testkit.CheckSpanInvariants(registered.Package, res.FileSet.Get(registered.File)); err != nil {
		t.Fatalf("synthetic layout breaks span invariants: %v", err)
	}
	if unit.Synthetic {
		t.Fatalf("LoadUnit alone must not lay the tree out")
	}
}

func TestResolveUnitsAgainstExportedDependency(t *testing.T) {
	root := t.TempDir()
	libPath := filepath.Join(root, "lib", "lib.qast.json")
	writeDoc(t, libPath, libPackage())

	libRes, err := ResolveUnits(context.Background(), Request{Paths: []string{libPath}})
	if err != nil {
		t.Fatalf("resolve lib: %v", err)
	}
	if libRes.HasErrors() {
		t.Fatalf("unexpected lib errors: %v", libRes.Diagnostics(10).Items())
	}
	ifacePath := filepath.Join(root, "deps", "lib"+pkgcache.Ext)
	sink := &recordingSink{}
	if err := ExportTo(&libRes.Units[0], "lib", nil, ifacePath, sink); err != nil {
		t.Fatalf("export: %v", err)
	}
	if sink.count(StageExport, StatusDone) != 1 {
		t.Fatalf("expected export done event, got %+v", sink.events)
	}

	writeFile(t, filepath.Join(root, project.ManifestName), `
[package]
name = "app"
sources = ["src"]

[[dependencies]]
name = "lib"
interface = "deps/lib.qri"
`)
	writeDoc(t, filepath.Join(root, "src", "main.qast.json"), appPackage())
	writeDoc(t, filepath.Join(root, "src", "other.qast"), appPackage())

	m, ok, err := project.LoadManifest(root)
	if err != nil || !ok {
		t.Fatalf("manifest: ok=%v err=%v", ok, err)
	}
	deps := LoadDependencies(m)
	if len(deps.Diags) != 0 {
		t.Fatalf("unexpected dependency diagnostics: %v", deps.Diags)
	}
	if diff := cmp.Diff([]string{"lib"}, deps.Names()); diff != "" {
		t.Fatalf("unexpected dependency order (-want +got):\n%s", diff)
	}

	paths, err := Discover(m.SourceRoots())
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	timer := observ.NewTimer()
	res, err := ResolveUnits(context.Background(), Request{
		Paths: paths,
		Deps:  deps,
		Jobs:  2,
		Sink:  sink,
		Timer: timer,
	})
	if err != nil {
		t.Fatalf("ResolveUnits: %v", err)
	}
	if res.HasErrors() {
		t.Fatalf("unexpected errors: %v", res.Diagnostics(10).Items())
	}
	want := symbols.ItemRes(hir.InPackage(1, 2), hir.StatusAvailable)
	for _, ur := range res.Units {
		found := false
		for _, r := range ur.Output.Names {
			if r == want {
				found = true
			}
		}
		if !found {
			t.Fatalf("%s: expected a reference to lib's Pub", ur.Path)
		}
	}
	if got := sink.count(StageResolve, StatusDone); got != 2 {
		t.Fatalf("expected 2 resolve done events, got %d", got)
	}
	if got := len(timer.Report().Phases); got != 2 {
		t.Fatalf("expected load and resolve phases, got %d", got)
	}
	if got := len(timer.Report().Slowest); got != 2 {
		t.Fatalf("expected both units in the slowest list, got %d", got)
	}

	bag := diag.NewBag(10)
	AppendTimings(bag, timer, len(res.Units))
	if bag.Len() != 1 || bag.Items()[0].Code != diag.ObsTimings {
		t.Fatalf("expected a timings diagnostic, got %v", bag.Items())
	}
}

func TestResolveUnitsReportsLoadAndResolutionErrors(t *testing.T) {
	root := t.TempDir()
	bad := filepath.Join(root, "bad.qast.json")
	writeFile(t, bad, `{"version": 1, "package": {"nodes": [], "extra": true}}`)
	app := filepath.Join(root, "app.qast.json")
	writeDoc(t, app, appPackage())
	missing := filepath.Join(root, "gone.qast.json")

	sink := &recordingSink{}
	ring := trace.NewRingTracer(64, trace.LevelError)
	ctx := trace.WithTracer(context.Background(), ring)
	res, err := ResolveUnits(ctx, Request{Paths: []string{bad, app, missing}, Sink: sink})
	if err != nil {
		t.Fatalf("ResolveUnits: %v", err)
	}
	if !res.HasErrors() {
		t.Fatalf("expected errors")
	}
	codes := func(ur UnitResult) []diag.Code {
		var out []diag.Code
		for _, d := range ur.Bag.Items() {
			out = append(out, d.Code)
		}
		return out
	}
	if diff := cmp.Diff([]diag.Code{diag.IODecodeError}, codes(res.Units[0])); diff != "" {
		t.Fatalf("bad unit (-want +got):\n%s", diff)
	}
	if res.Units[0].Package() != nil {
		t.Fatalf("expected no package for a unit that failed to load")
	}
	// Lib is not a dependency here, so both the open and the call fail.
	if diff := cmp.Diff([]diag.Code{diag.ResNotFound, diag.ResNotFound}, codes(res.Units[1])); diff != "" {
		t.Fatalf("app unit (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]diag.Code{diag.IOLoadFileError}, codes(res.Units[2])); diff != "" {
		t.Fatalf("missing unit (-want +got):\n%s", diff)
	}
	if got := sink.count(StageLoad, StatusError); got != 2 {
		t.Fatalf("expected 2 load errors, got %d", got)
	}
	if got := sink.count(StageResolve, StatusError); got != 1 {
		t.Fatalf("expected 1 resolve error, got %d", got)
	}
	events := ring.Snapshot()
	if len(events) != 2 {
		t.Fatalf("expected 2 traced load errors, got %+v", events)
	}
	for _, ev := range events {
		if ev.Kind != trace.KindError || ev.Name != "load" {
			t.Fatalf("unexpected trace event %+v", ev)
		}
	}

	limited := res.Diagnostics(2)
	if limited.Len() != 2 {
		t.Fatalf("expected diagnostics to be capped at 2, got %d", limited.Len())
	}
	if _, err := Export(&res.Units[1], "app", nil); err == nil {
		t.Fatalf("expected export of a unit with errors to fail")
	}
}

func TestResolveUnitsCancelled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lib.qast")
	writeDoc(t, path, libPackage())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := ResolveUnits(ctx, Request{Paths: []string{path}}); err == nil {
		t.Fatalf("expected context error")
	}
}

func TestLoadDependenciesProblems(t *testing.T) {
	root := t.TempDir()
	write := func(name, pkgName string, requires ...string) {
		iface, err := pkgcache.New(pkgName, requires, nil)
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		if err := pkgcache.Write(filepath.Join(root, name+pkgcache.Ext), iface); err != nil {
			t.Fatalf("Write: %v", err)
		}
	}
	write("a", "a", "b")
	write("b", "b", "a")
	write("c", "c")
	write("wrong", "other")
	write("d", "d", "c", "zzz")
	writeFile(t, filepath.Join(root, "junk"+pkgcache.Ext), "junk")

	m := &project.Manifest{Root: root, Config: project.Config{Dependencies: []project.DependencyConfig{
		{Name: "a", Interface: "a.qri"},
		{Name: "b", Interface: "b.qri"},
		{Name: "c", Interface: "c.qri"},
		{Name: "d", Interface: "d.qri"},
		{Name: "wrong", Interface: "wrong.qri"},
		{Name: "junk", Interface: "junk.qri"},
		{Name: "gone", Interface: "gone.qri"},
	}}}
	deps := LoadDependencies(m)

	var got []string
	for _, d := range deps.Diags {
		got = append(got, d.Code.ID())
	}
	slices.Sort(got)
	want := []string{"PRJ5002", "PRJ5002", "PRJ5003", "PRJ5003", "PRJ5004", "PRJ5004"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected diagnostics (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"c", "d"}, deps.Names()); diff != "" {
		t.Fatalf("unexpected loaded dependencies (-want +got):\n%s", diff)
	}
	for i, dep := range deps.List {
		if dep.ID != hir.PackageID(i+1) {
			t.Fatalf("expected %s to get package %d, got %d", dep.Name, i+1, dep.ID)
		}
	}
	joined := ""
	for _, d := range deps.Diags {
		joined += d.Message + "\n"
	}
	for _, fragment := range []string{`requires missing package "zzz"`, `describes package "other"`, "dependency cycle: a -> b"} {
		if !strings.Contains(joined, fragment) {
			t.Fatalf("expected diagnostics to mention %q, got:\n%s", fragment, joined)
		}
	}
}

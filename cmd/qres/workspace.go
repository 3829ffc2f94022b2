package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"qres/internal/ast"
	"qres/internal/diagfmt"
	"qres/internal/driver"
	"qres/internal/observ"
	"qres/internal/project"
	"qres/internal/symbols"
)

// workspace is everything a command needs to resolve units: the documents,
// the manifest they belong to (if any) and the loaded dependencies.
type workspace struct {
	manifest       *project.Manifest
	name           string
	paths          []string
	deps           *driver.Dependencies
	dropped        []symbols.DroppedName
	maxDiagnostics int
	jobs           int
}

// openWorkspace resolves target to a set of AST documents. A directory that
// holds qres.toml uses the manifest's source roots; any other directory is
// walked as is; a file is a single unit. The manifest is looked up from the
// target's directory upwards.
func openWorkspace(cmd *cobra.Command, target string) (*workspace, error) {
	if target == "" {
		target = "."
	}
	abs, err := filepath.Abs(target)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path %q: %w", target, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, err
	}
	startDir := abs
	if !info.IsDir() {
		startDir = filepath.Dir(abs)
	}

	manifest, _, err := project.LoadManifest(startDir)
	if err != nil {
		return nil, err
	}

	roots := []string{abs}
	if manifest != nil && info.IsDir() && manifest.Root == abs {
		roots = manifest.SourceRoots()
	}
	paths, err := driver.Discover(roots)
	if err != nil {
		return nil, err
	}

	ws := &workspace{
		manifest: manifest,
		name:     unitName(abs),
		paths:    paths,
		deps:     driver.LoadDependencies(manifest),
	}
	if manifest != nil {
		ws.name = manifest.Config.Package.Name
		ws.dropped = manifest.Config.DroppedNames()
	}
	if ws.maxDiagnostics, err = maxDiagnostics(cmd, manifest); err != nil {
		return nil, err
	}
	if ws.jobs, err = cmd.Root().PersistentFlags().GetInt("jobs"); err != nil {
		return nil, fmt.Errorf("failed to get jobs flag: %w", err)
	}
	return ws, nil
}

// maxDiagnostics prefers an explicit flag, then the manifest, then the
// flag's default.
func maxDiagnostics(cmd *cobra.Command, manifest *project.Manifest) (int, error) {
	flags := cmd.Root().PersistentFlags()
	value, err := flags.GetInt("max-diagnostics")
	if err != nil {
		return 0, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	if !flags.Changed("max-diagnostics") && manifest != nil && manifest.Config.Resolve.MaxDiagnostics > 0 {
		value = manifest.Config.Resolve.MaxDiagnostics
	}
	if value <= 0 {
		return 0, fmt.Errorf("--max-diagnostics must be positive, got %d", value)
	}
	return value, nil
}

func (ws *workspace) request(timer *observ.Timer) driver.Request {
	return driver.Request{
		Paths:          ws.paths,
		Deps:           ws.deps,
		Dropped:        ws.dropped,
		Jobs:           ws.jobs,
		MaxDiagnostics: ws.maxDiagnostics,
		Timer:          timer,
	}
}

// resolveSingle resolves one AST document and returns its result. Load and
// dependency problems are returned as errors since there is nothing to
// inspect without them.
func resolveSingle(cmd *cobra.Command, path string) (*workspace, *driver.Result, *driver.UnitResult, error) {
	if !ast.IsDocumentPath(path) {
		return nil, nil, nil, fmt.Errorf("%s: not an AST document (expected .qast.json or .qast)", path)
	}
	ws, err := openWorkspace(cmd, path)
	if err != nil {
		return nil, nil, nil, err
	}
	res, err := driver.ResolveUnits(cmd.Context(), ws.request(nil))
	if err != nil {
		return nil, nil, nil, err
	}
	if len(ws.deps.Diags) > 0 {
		return nil, nil, nil, fmt.Errorf("%s", ws.deps.Diags[0].Message)
	}
	ur := &res.Units[0]
	if ur.Unit == nil {
		return nil, nil, nil, fmt.Errorf("%s", ur.Bag.Items()[0].Message)
	}
	return ws, res, ur, nil
}

// unitName derives a package name from a document or directory path.
func unitName(path string) string {
	base := filepath.Base(path)
	for _, ext := range []string{".qast.json", ".qast"} {
		if trimmed, ok := strings.CutSuffix(base, ext); ok {
			return trimmed
		}
	}
	return base
}

// reportUnitErrors prints a unit's diagnostics to stderr and fails the
// command when any of them is an error.
func reportUnitErrors(cmd *cobra.Command, res *driver.Result) error {
	if !res.HasErrors() {
		return nil
	}
	out := cmd.ErrOrStderr()
	maxDiags, err := maxDiagnostics(cmd, nil)
	if err != nil {
		return err
	}
	diagfmt.Pretty(out, res.Diagnostics(maxDiags), res.FileSet, diagfmt.PrettyOpts{
		Color:    useColor(),
		Context:  1,
		PathMode: diagfmt.PathModeRelative,
	})
	return exitError{code: 1}
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"qres/internal/ast"
	"qres/internal/pkgcache"
	"qres/internal/project"
)

var watchCmd = &cobra.Command{
	Use:   "watch [flags] [path]",
	Short: "Re-run check whenever AST documents or the manifest change",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runWatch,
}

func init() {
	watchCmd.Flags().String("format", "pretty", "output format (pretty|json|sarif|short)")
	watchCmd.Flags().Bool("with-notes", false, "include notes of warnings and infos")
	watchCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
	watchCmd.Flags().Duration("debounce", 250*time.Millisecond, "quiet period before re-checking")
}

func runWatch(cmd *cobra.Command, args []string) error {
	target := "."
	if len(args) == 1 {
		target = args[0]
	}
	opts, err := readWatchOptions(cmd)
	if err != nil {
		return err
	}
	debounce, err := cmd.Flags().GetDuration("debounce")
	if err != nil {
		return fmt.Errorf("failed to get debounce flag: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	cmd.SetContext(ctx)

	check := func(changed []string) {
		if len(changed) > 0 && !opts.quiet {
			fmt.Fprintf(cmd.ErrOrStderr(), "changed: %s\n", strings.Join(changed, ", "))
		}
		if _, err := runCheck(cmd, target, opts); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "error: %v\n", err)
		}
	}
	check(nil)
	return watchWithFSNotify(ctx, target, debounce, check)
}

func readWatchOptions(cmd *cobra.Command) (checkOptions, error) {
	// у watch нет --ui: прогресс мешал бы выводу между прогонами
	opts := checkOptions{ui: uiModeOff}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return opts, fmt.Errorf("failed to get format flag: %w", err)
	}
	opts.format = strings.ToLower(strings.TrimSpace(format))
	switch opts.format {
	case "pretty", "json", "sarif", "short":
	default:
		return opts, fmt.Errorf("unknown format: %s", format)
	}
	if opts.withNotes, err = cmd.Flags().GetBool("with-notes"); err != nil {
		return opts, fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	if opts.fullPath, err = cmd.Flags().GetBool("fullpath"); err != nil {
		return opts, fmt.Errorf("failed to get fullpath flag: %w", err)
	}
	if opts.timings, err = cmd.Root().PersistentFlags().GetBool("timings"); err != nil {
		return opts, fmt.Errorf("failed to get timings flag: %w", err)
	}
	if opts.quiet, err = cmd.Root().PersistentFlags().GetBool("quiet"); err != nil {
		return opts, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	return opts, nil
}

func watchWithFSNotify(ctx context.Context, target string, debounce time.Duration, onChange func(changed []string)) error {
	root, err := watchRoot(target)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := addWatchRecursive(watcher, root); err != nil {
		return err
	}

	if debounce <= 0 {
		debounce = 250 * time.Millisecond
	}

	timer := time.NewTimer(time.Hour)
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
	pending := false
	pendingPaths := map[string]bool{}

	resetDebounce := func(path string) {
		pendingPaths[path] = true
		if pending && !timer.Stop() {
			select {
			case <-timer.C:
			default:
			}
		}
		timer.Reset(debounce)
		pending = true
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			eventPath := filepath.Clean(event.Name)
			if event.Op&fsnotify.Create != 0 {
				if info, statErr := os.Stat(eventPath); statErr == nil && info.IsDir() {
					if !skipWatchDir(root, eventPath) {
						_ = addWatchRecursive(watcher, eventPath)
					}
					continue
				}
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if !isWatchedPath(eventPath) {
				continue
			}
			resetDebounce(eventPath)
		case <-timer.C:
			if !pending {
				continue
			}
			pending = false
			changed := make([]string, 0, len(pendingPaths))
			for path := range pendingPaths {
				changed = append(changed, path)
			}
			sort.Strings(changed)
			pendingPaths = map[string]bool{}
			onChange(changed)
		case watchErr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return watchErr
		}
	}
}

// watchRoot is the directory to watch: the manifest root when target is
// inside a project, otherwise target itself (or its directory).
func watchRoot(target string) (string, error) {
	abs, err := filepath.Abs(target)
	if err != nil {
		return "", err
	}
	abs = filepath.Clean(abs)
	info, err := os.Stat(abs)
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		abs = filepath.Dir(abs)
	}
	if root, ok, err := project.FindProjectRoot(abs); err == nil && ok {
		return root, nil
	}
	return abs, nil
}

func addWatchRecursive(watcher *fsnotify.Watcher, root string) error {
	root = filepath.Clean(root)
	return filepath.WalkDir(root, func(path string, entry os.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if !entry.IsDir() {
			return nil
		}
		if skipWatchDir(root, path) {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}

func skipWatchDir(root, path string) bool {
	if path == root {
		return false
	}
	name := filepath.Base(path)
	switch name {
	case "node_modules", "target", "obj", "bin":
		return true
	}
	return strings.HasPrefix(name, ".")
}

// isWatchedPath reports files whose change can alter resolution results.
func isWatchedPath(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".#") || strings.HasSuffix(base, ".swp") {
		return false
	}
	switch {
	case ast.IsDocumentPath(path):
		return true
	case base == project.ManifestName, base == ".gitignore":
		return true
	case strings.HasSuffix(base, pkgcache.Ext):
		// Write пишет через tmp-*.qri и rename
		return !strings.HasPrefix(base, "tmp-")
	}
	return false
}

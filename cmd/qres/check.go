package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"qres/internal/diag"
	"qres/internal/diagfmt"
	"qres/internal/driver"
	"qres/internal/observ"
	"qres/internal/trace"
	"qres/internal/version"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] [path]",
	Short: "Resolve names and report diagnostics",
	Long: `Resolve every AST document under path (default: the current directory) and print
the resulting diagnostics. Exits with status 1 when any error is reported.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheckCmd,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "output format (pretty|json|sarif|short)")
	checkCmd.Flags().String("ui", "auto", "progress view (auto|on|off)")
	checkCmd.Flags().Bool("with-notes", false, "include notes of warnings and infos")
	checkCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
}

type checkOptions struct {
	format    string
	ui        uiMode
	withNotes bool
	fullPath  bool
	timings   bool
	quiet     bool
}

func readCheckOptions(cmd *cobra.Command) (checkOptions, error) {
	var opts checkOptions
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
	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return opts, fmt.Errorf("failed to get ui flag: %w", err)
	}
	if opts.ui, err = readUIMode(uiValue); err != nil {
		return opts, err
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

func runCheckCmd(cmd *cobra.Command, args []string) error {
	target := "."
	if len(args) == 1 {
		target = args[0]
	}
	opts, err := readCheckOptions(cmd)
	if err != nil {
		return err
	}
	failed, err := runCheck(cmd, target, opts)
	if err != nil {
		return err
	}
	if failed {
		return exitError{code: 1}
	}
	return nil
}

// runCheck resolves target and writes its diagnostics to the command's
// output. It reports whether any error was found.
func runCheck(cmd *cobra.Command, target string, opts checkOptions) (bool, error) {
	tracer := trace.FromContext(cmd.Context())
	span := trace.Begin(tracer, trace.ScopeDriver, "check", 0).With("target", target)
	defer span.End("")
	ctx := trace.WithSpanContext(cmd.Context(), trace.SpanContext{SpanID: span.ID()})

	ws, err := openWorkspace(cmd, target)
	if err != nil {
		return false, err
	}

	var timer *observ.Timer
	if opts.timings {
		timer = observ.NewTimer()
	}
	req := ws.request(timer)

	var res *driver.Result
	if shouldUseTUI(opts.ui, opts.format) && len(req.Paths) > 0 {
		res, err = runResolveWithUI(ctx, "qres check", req)
	} else {
		res, err = driver.ResolveUnits(ctx, req)
	}
	if err != nil {
		return false, err
	}
	if cwd, cwdErr := os.Getwd(); cwdErr == nil {
		res.FileSet.SetBaseDir(cwd)
	}

	bag := res.Diagnostics(ws.maxDiagnostics)
	out := cmd.OutOrStdout()
	if opts.timings && opts.format == "json" {
		driver.AppendTimings(bag, timer, len(req.Paths))
	}
	if err := writeDiagnostics(out, bag, res, opts); err != nil {
		return false, err
	}
	if opts.format == "pretty" && !opts.quiet && bag.Len() == 0 {
		fmt.Fprintf(out, "%d units resolved, no problems\n", len(req.Paths))
	}
	if opts.timings && opts.format != "json" {
		fmt.Fprint(cmd.ErrOrStderr(), timer.Summary())
	}
	return res.HasErrors(), nil
}

func writeDiagnostics(out io.Writer, bag *diag.Bag, res *driver.Result, opts checkOptions) error {
	pathMode := diagfmt.PathModeRelative
	if opts.fullPath {
		pathMode = diagfmt.PathModeAbsolute
	}
	switch opts.format {
	case "json":
		return diagfmt.JSON(out, bag, res.FileSet, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         pathMode,
			IncludeNotes:     true,
		})
	case "sarif":
		return diagfmt.Sarif(out, bag, res.FileSet, diagfmt.SarifRunMeta{
			ToolName:       "qres",
			ToolVersion:    version.Current().Version,
			InvocationArgs: os.Args,
		})
	case "short":
		return diagfmt.Short(out, bag, res.FileSet, diagfmt.ShortOpts{PathMode: pathMode, IncludeNotes: opts.withNotes})
	default:
		diagfmt.Pretty(out, bag, res.FileSet, diagfmt.PrettyOpts{
			Color:     useColor(),
			Context:   1,
			PathMode:  pathMode,
			ShowNotes: opts.withNotes,
		})
		return nil
	}
}

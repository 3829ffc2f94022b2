package driver

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"qres/internal/ast"
	"qres/internal/diag"
	"qres/internal/hir"
	"qres/internal/observ"
	"qres/internal/source"
	"qres/internal/symbols"
	"qres/internal/trace"
)

// Request describes one resolution run.
type Request struct {
	Paths          []string
	Deps           *Dependencies
	Dropped        []symbols.DroppedName
	Jobs           int
	MaxDiagnostics int
	Persistent     bool
	Sink           ProgressSink
	Timer          *observ.Timer
}

// UnitResult is the outcome for one compilation unit. Unit is nil when the
// document could not be loaded; the load error is then in Bag.
type UnitResult struct {
	Path    string
	Unit    *Unit
	Table   *symbols.GlobalTable
	Output  symbols.Output
	Bag     *diag.Bag
	Elapsed time.Duration
}

// Result collects every unit of a run in request order.
type Result struct {
	FileSet *source.FileSet
	Units   []UnitResult
	Deps    *Dependencies
}

// HasErrors reports whether any unit or dependency produced an error.
func (r *Result) HasErrors() bool {
	if r.Deps != nil && len(r.Deps.Diags) > 0 {
		return true
	}
	for i := range r.Units {
		if bag := r.Units[i].Bag; bag != nil && bag.HasErrors() {
			return true
		}
	}
	return false
}

// Diagnostics returns dependency diagnostics and every unit's diagnostics
// sorted by position, keeping at most limit of them.
func (r *Result) Diagnostics(limit int) *diag.Bag {
	all := diag.NewBag(math.MaxUint16)
	if r.Deps != nil {
		for _, d := range r.Deps.Diags {
			all.Add(d)
		}
	}
	for i := range r.Units {
		if bag := r.Units[i].Bag; bag != nil {
			for _, d := range bag.Items() {
				all.Add(d)
			}
		}
	}
	all.Sort()
	all.Dedup()
	if limit <= 0 || all.Len() <= limit {
		return all
	}
	out := diag.NewBag(limit)
	for _, d := range all.Items() {
		if !out.Add(d) {
			break
		}
	}
	return out
}

// ResolveUnits loads and resolves every unit of req. Units are independent:
// each gets its own global table seeded with the dependencies, so they run
// concurrently, at most req.Jobs at a time.
func ResolveUnits(ctx context.Context, req Request) (*Result, error) {
	tracer := trace.FromContext(ctx)
	run := trace.Begin(tracer, trace.ScopeDriver, "resolve-units", trace.CurrentSpan(ctx).SpanID)
	defer run.End(fmt.Sprintf("units=%d", len(req.Paths)))

	maxDiags := req.MaxDiagnostics
	if maxDiags <= 0 {
		maxDiags = 100
	}
	jobs := req.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	res := &Result{
		FileSet: source.NewFileSet(),
		Units:   make([]UnitResult, len(req.Paths)),
		Deps:    req.Deps,
	}
	if len(req.Paths) == 0 {
		return res, nil
	}
	for _, path := range req.Paths {
		emit(req.Sink, Event{Unit: path, Stage: StageLoad, Status: StatusQueued})
	}

	// Загрузка: у каждой горутины свой интернер, индексы уникальны.
	stopLoad := req.Timer.Start("load")
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(req.Paths)))
	for i, path := range req.Paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			started := time.Now()
			emit(req.Sink, Event{Unit: path, Stage: StageLoad, Status: StatusWorking})
			bag := diag.NewBag(maxDiags)
			unit, err := LoadUnit(path, source.NewInterner())
			res.Units[i] = UnitResult{Path: path, Unit: unit, Bag: bag}
			if err != nil {
				bag.Add(diag.Diagnostic{
					Severity: diag.SevError,
					Code:     loadErrorCode(err),
					Message:  "failed to load unit: " + err.Error(),
				})
				trace.Error(tracer, trace.ScopeUnit, "load", fmt.Errorf("%s: %w", path, err), run.ID())
				emit(req.Sink, Event{Unit: path, Stage: StageLoad, Status: StatusError, Err: err, Elapsed: time.Since(started)})
				return nil
			}
			emit(req.Sink, Event{Unit: path, Stage: StageLoad, Status: StatusDone, Elapsed: time.Since(started)})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return res, err
	}
	stopLoad(fmt.Sprintf("%d units", len(req.Paths)))

	// FileSet не потокобезопасен, регистрируем последовательно.
	for i := range res.Units {
		if u := res.Units[i].Unit; u != nil {
			u.Register(res.FileSet)
		}
	}

	stopResolve := req.Timer.Start("resolve")
	g, gctx = errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(req.Paths)))
	for i := range res.Units {
		ur := &res.Units[i]
		if ur.Unit == nil {
			continue
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			resolveUnit(ur, req, tracer, run.ID())
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return res, err
	}
	stopResolve(fmt.Sprintf("jobs=%d", jobs))
	return res, nil
}

func resolveUnit(ur *UnitResult, req Request, tracer trace.Tracer, parent uint64) {
	started := time.Now()
	emit(req.Sink, Event{Unit: ur.Path, Stage: StageResolve, Status: StatusWorking})
	span := trace.Begin(tracer, trace.ScopeUnit, "unit", parent).With("path", ur.Path)

	ur.Table = symbols.NewGlobalTable()
	req.Deps.Apply(ur.Table)
	ur.Output = symbols.ResolvePackage(ur.Table, ur.Unit.Package, hir.NewAssigner(), symbols.ResolverOptions{
		Dropped:     req.Dropped,
		Persistent:  req.Persistent,
		Tracer:      tracer,
		TraceParent: span.ID(),
	})
	symbols.Report(diag.NewDedupReporter(diag.BagReporter{Bag: ur.Bag}), ur.Output.Errors)
	ur.Elapsed = time.Since(started)
	req.Timer.RecordUnit(ur.Path, ur.Elapsed)
	span.End(fmt.Sprintf("errors=%d", len(ur.Output.Errors)))

	status := StatusDone
	var err error
	if ur.Bag.HasErrors() {
		status = StatusError
		err = fmt.Errorf("%d resolution errors", len(ur.Output.Errors))
	}
	emit(req.Sink, Event{Unit: ur.Path, Stage: StageResolve, Status: status, Err: err, Elapsed: ur.Elapsed})
}

func loadErrorCode(err error) diag.Code {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return diag.IOLoadFileError
	}
	return diag.IODecodeError
}

// Package returns the unit's AST, or nil when loading failed.
func (ur *UnitResult) Package() *ast.Package {
	if ur.Unit == nil {
		return nil
	}
	return ur.Unit.Package
}

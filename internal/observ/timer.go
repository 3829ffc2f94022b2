package observ

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"
)

// slowestUnits bounds Report.Slowest.
const slowestUnits = 5

// Timer records driver phases and per-unit resolve times. All methods are
// safe for concurrent use and do nothing on a nil *Timer.
type Timer struct {
	mu     sync.Mutex
	phases []phase
	units  []UnitReport
	now    func() time.Time
}

type phase struct {
	name  string
	start time.Time
	dur   time.Duration
	note  string
	done  bool
}

func NewTimer() *Timer { return &Timer{now: time.Now} }

// Start opens phase name. The returned func closes it with a note; calling
// it again has no effect.
func (t *Timer) Start(name string) func(note string) {
	if t == nil {
		return func(string) {}
	}
	t.mu.Lock()
	idx := len(t.phases)
	t.phases = append(t.phases, phase{name: name, start: t.now()})
	t.mu.Unlock()

	return func(note string) {
		t.mu.Lock()
		defer t.mu.Unlock()
		p := &t.phases[idx]
		if p.done {
			return
		}
		p.dur, p.note, p.done = t.now().Sub(p.start), note, true
	}
}

// RecordUnit stores how long one unit took to resolve.
func (t *Timer) RecordUnit(path string, d time.Duration) {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.units = append(t.units, UnitReport{Path: path, DurationMS: millis(d)})
}

type PhaseReport struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Note       string  `json:"note,omitempty"`
}

type UnitReport struct {
	Path       string  `json:"path"`
	DurationMS float64 `json:"duration_ms"`
}

// Report is a serialisable snapshot of a Timer. TotalMS sums the phases;
// Slowest lists at most five units, slowest first.
type Report struct {
	TotalMS float64       `json:"total_ms"`
	Phases  []PhaseReport `json:"phases"`
	Slowest []UnitReport  `json:"slowest,omitempty"`
}

func (t *Timer) Report() Report {
	if t == nil {
		return Report{}
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	var r Report
	var total time.Duration
	for _, p := range t.phases {
		total += p.dur
		r.Phases = append(r.Phases, PhaseReport{Name: p.name, DurationMS: millis(p.dur), Note: p.note})
	}
	r.TotalMS = millis(total)

	if len(t.units) > 0 {
		units := slices.Clone(t.units)
		slices.SortStableFunc(units, func(a, b UnitReport) int {
			return cmp.Or(cmp.Compare(b.DurationMS, a.DurationMS), cmp.Compare(a.Path, b.Path))
		})
		r.Slowest = units[:min(len(units), slowestUnits)]
	}
	return r
}

// Summary renders the report as an aligned table for stderr.
func (t *Timer) Summary() string {
	r := t.Report()
	var sb strings.Builder
	sb.WriteString("timings:\n")
	for _, p := range r.Phases {
		fmt.Fprintf(&sb, "  %-20s %8.2f ms", p.Name, p.DurationMS)
		if p.Note != "" {
			fmt.Fprintf(&sb, "  // %s", p.Note)
		}
		sb.WriteByte('\n')
	}
	fmt.Fprintf(&sb, "  %-20s %8.2f ms\n", "total", r.TotalMS)
	if len(r.Slowest) > 0 {
		sb.WriteString("slowest units:\n")
		for _, u := range r.Slowest {
			fmt.Fprintf(&sb, "  %8.2f ms  %s\n", u.DurationMS, u.Path)
		}
	}
	return sb.String()
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

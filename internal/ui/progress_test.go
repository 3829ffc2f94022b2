package ui

import (
	"errors"
	"strings"
	"testing"

	"qres/internal/driver"
)

func TestProgressModelTracksUnits(t *testing.T) {
	events := make(chan driver.Event)
	m := NewProgressModel("resolving", []string{"a.qast", "b.qast"}, events).(*progressModel)

	apply := func(ev driver.Event) {
		t.Helper()
		m.Update(eventMsg(ev))
	}
	apply(driver.Event{Unit: "a.qast", Stage: driver.StageLoad, Status: driver.StatusWorking})
	if got := m.items[0].status; got != "loading" {
		t.Fatalf("expected loading, got %q", got)
	}
	apply(driver.Event{Unit: "a.qast", Stage: driver.StageLoad, Status: driver.StatusDone})
	if m.items[0].finished {
		t.Fatalf("load alone must not finish a unit")
	}
	apply(driver.Event{Unit: "a.qast", Stage: driver.StageResolve, Status: driver.StatusDone})
	apply(driver.Event{Unit: "b.qast", Stage: driver.StageLoad, Status: driver.StatusError, Err: errors.New("boom")})
	apply(driver.Event{Unit: "b.qast", Stage: driver.StageResolve, Status: driver.StatusDone})
	apply(driver.Event{Unit: "unknown", Stage: driver.StageLoad, Status: driver.StatusDone})

	if m.items[1].status != "error" {
		t.Fatalf("expected finished unit to keep its error status, got %q", m.items[1].status)
	}
	if m.failed != 1 || m.finishedCount() != 2 {
		t.Fatalf("expected 2 finished and 1 failed, got %d/%d", m.finishedCount(), m.failed)
	}
	if got := m.fraction(); got != 1.0 {
		t.Fatalf("expected full progress, got %v", got)
	}

	view := m.View()
	for _, want := range []string{"resolving (2/2 units), 1 with errors", "a.qast", "b.qast", "done", "error"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected view to contain %q, got:\n%s", want, view)
		}
	}

	_, cmd := m.Update(doneMsg{})
	if !m.done || cmd == nil {
		t.Fatalf("expected model to finish and quit")
	}
	if !strings.Contains(m.View(), "done: resolving") {
		t.Fatalf("expected done header, got:\n%s", m.View())
	}
}

func TestProgressFraction(t *testing.T) {
	m := NewProgressModel("x", []string{"a", "b"}, nil).(*progressModel)
	if m.fraction() != 0 {
		t.Fatalf("expected zero progress, got %v", m.fraction())
	}
	m.applyEvent(driver.Event{Unit: "a", Stage: driver.StageResolve, Status: driver.StatusWorking})
	if got := m.fraction(); got != 0.3 {
		t.Fatalf("expected 0.3, got %v", got)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short", 10, "short"},
		{"averyverylongname", 8, "avery..."},
		{"abcdef", 2, "ab"},
		{"abc", 0, "abc"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.width); got != tt.want {
			t.Fatalf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}

func TestEmptyModelView(t *testing.T) {
	if got := NewProgressModel("x", nil, nil).View(); got != "" {
		t.Fatalf("expected empty view, got %q", got)
	}
}

package diag

import (
	"testing"

	"qres/internal/source"
)

func TestCodeID(t *testing.T) {
	cases := map[Code]string{
		ResAmbiguous:    "RES3001",
		IOLoadFileError: "IO4001",
		ProjBadManifest: "PRJ5001",
		ObsTimings:      "OBS6001",
		UnknownCode:     "E0000",
	}
	for code, want := range cases {
		if got := code.ID(); got != want {
			t.Fatalf("expected %s, got %s", want, got)
		}
	}
	if got := ResNotFound.String(); got != "[RES3006]: Name not found" {
		t.Fatalf("unexpected string %q", got)
	}
}

func TestBagLimitAndErrors(t *testing.T) {
	bag := NewBag(2)
	r := BagReporter{Bag: bag}
	ReportWarning(r, ResUnimplemented, source.Span{}, "w").Emit()
	if bag.HasErrors() {
		t.Fatalf("expected no errors yet")
	}
	ReportError(r, ResNotFound, source.Span{Start: 4, End: 5}, "a").Emit()
	ReportError(r, ResNotFound, source.Span{Start: 1, End: 2}, "b").Emit()
	if bag.Len() != 2 {
		t.Fatalf("expected limit of 2, got %d", bag.Len())
	}
	if !bag.HasErrors() {
		t.Fatalf("expected errors")
	}
}

func TestBagSortAndDedup(t *testing.T) {
	bag := NewBag(10)
	bag.Add(NewError(ResNotFound, source.Span{Start: 5, End: 6}, "x"))
	bag.Add(NewError(ResAmbiguous, source.Span{Start: 1, End: 2}, "y"))
	bag.Add(NewError(ResNotFound, source.Span{Start: 5, End: 6}, "x"))
	bag.Sort()
	bag.Dedup()
	items := bag.Items()
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].Code != ResAmbiguous {
		t.Fatalf("expected ambiguous first, got %s", items[0].Code)
	}
}

func TestReportBuilderEmitsOnce(t *testing.T) {
	bag := NewBag(10)
	b := ReportError(BagReporter{Bag: bag}, ResAmbiguous, source.Span{}, "ambiguous").
		WithNote(source.Span{Start: 1, End: 2}, "first")
	b.Emit()
	b.Emit()
	if bag.Len() != 1 {
		t.Fatalf("expected one diagnostic, got %d", bag.Len())
	}
	if len(bag.Items()[0].Notes) != 1 {
		t.Fatalf("expected note to be kept")
	}
}

func TestDedupReporter(t *testing.T) {
	bag := NewBag(10)
	r := NewDedupReporter(BagReporter{Bag: bag})
	for range 3 {
		r.Report(ResNotFound, SevError, source.Span{Start: 1, End: 3}, "missing", nil)
	}
	if bag.Len() != 1 {
		t.Fatalf("expected duplicates to be dropped, got %d", bag.Len())
	}
}

func TestBagMergeRaisesLimit(t *testing.T) {
	a, b := NewBag(1), NewBag(2)
	a.Add(NewError(ResNotFound, source.Span{}, "a"))
	b.Add(New(SevInfo, ObsTimings, source.Span{}, "timings"))
	b.Add(New(SevWarning, ResUnimplemented, source.Span{}, "w"))
	a.Merge(b)
	if a.Len() != 3 {
		t.Fatalf("expected 3 diagnostics after merge, got %d", a.Len())
	}
	if got := a.Items()[2].Severity.String(); got != "WARNING" {
		t.Fatalf("expected WARNING, got %s", got)
	}
	if NewBag(-1).Add(Diagnostic{}) {
		t.Fatalf("expected a bag with a negative limit to reject everything")
	}
}

func TestWithNoteDoesNotShareNotes(t *testing.T) {
	base := NewError(ResAmbiguous, source.Span{}, "x").WithNote(source.Span{Start: 1}, "first")
	left := base.WithNote(source.Span{Start: 2}, "left")
	right := base.WithNote(source.Span{Start: 3}, "right")
	if left.Notes[1].Msg != "left" || right.Notes[1].Msg != "right" || len(base.Notes) != 1 {
		t.Fatalf("notes leaked between copies: %+v %+v", left.Notes, right.Notes)
	}
}

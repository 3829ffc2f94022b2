package symbols

import (
	"strings"
	"testing"

	"qres/internal/diag"
	"qres/internal/source"
)

func TestReportAmbiguousAddsNotes(t *testing.T) {
	bag := diag.NewBag(10)
	err := &Error{
		Kind:       ErrAmbiguous,
		Name:       "F",
		Span:       source.Span{Start: 40, End: 41},
		First:      "B",
		Second:     "C",
		FirstSpan:  source.Span{Start: 10, End: 11},
		SecondSpan: source.Span{Start: 20, End: 21},
	}
	Report(diag.BagReporter{Bag: bag}, []*Error{err})

	items := bag.Items()
	if len(items) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", len(items))
	}
	d := items[0]
	if d.Code != diag.ResAmbiguous || d.Severity != diag.SevError {
		t.Fatalf("expected error %s, got %s %s", diag.ResAmbiguous, d.Severity, d.Code)
	}
	if len(d.Notes) != 2 || d.Notes[0].Span != err.FirstSpan || d.Notes[1].Span != err.SecondSpan {
		t.Fatalf("expected notes on both opens, got %+v", d.Notes)
	}
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		err      *Error
		code     diag.Code
		contains string
		help     string
	}{
		{&Error{Kind: ErrAmbiguousPrelude, Name: "H", First: "X", Second: "Y"}, diag.ResAmbiguousPrelude, "`H` could refer to the item in `X` or an item in `Y`", "prelude"},
		{&Error{Kind: ErrDuplicate, Name: "F", Namespace: "A.B"}, diag.ResDuplicate, "namespace `A.B`", ""},
		{&Error{Kind: ErrDuplicateBinding, Name: "x"}, diag.ResDuplicateBinding, "duplicate name `x`", "shadow"},
		{&Error{Kind: ErrDuplicateIntrinsic, Name: "M"}, diag.ResDuplicateIntrinsic, "duplicate intrinsic `M`", "globally unique"},
		{&Error{Kind: ErrNotFound, Name: "Q"}, diag.ResNotFound, "`Q` not found", ""},
		{&Error{Kind: ErrNotAvailable, Name: "D", Hint: "Old.D"}, diag.ResNotAvailable, "`D` not found", "`Old.D`"},
		{&Error{Kind: ErrUnimplemented, Name: "U"}, diag.ResUnimplemented, "unimplemented item `U`", "not implemented"},
	}
	for _, tt := range tests {
		t.Run(tt.err.Kind.String(), func(t *testing.T) {
			if got := tt.err.Code(); got != tt.code {
				t.Fatalf("expected code %s, got %s", tt.code, got)
			}
			if msg := tt.err.Error(); !strings.Contains(msg, tt.contains) {
				t.Fatalf("expected message to contain %q, got %q", tt.contains, msg)
			}
			help := tt.err.Help()
			if tt.help == "" && help != "" || !strings.Contains(help, tt.help) {
				t.Fatalf("expected help containing %q, got %q", tt.help, help)
			}
		})
	}
}

func TestReportUnimplementedIsWarning(t *testing.T) {
	bag := diag.NewBag(10)
	Report(diag.BagReporter{Bag: bag}, []*Error{{Kind: ErrUnimplemented, Name: "U", Span: source.Span{Start: 3, End: 4}}})

	if bag.HasErrors() {
		t.Fatalf("expected no errors, got %+v", bag.Items())
	}
	items := bag.Items()
	if len(items) != 1 || items[0].Severity != diag.SevWarning || items[0].Code != diag.ResUnimplemented {
		t.Fatalf("expected one %s warning, got %+v", diag.ResUnimplemented, items)
	}
}

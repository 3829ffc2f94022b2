package source

import "testing"

func TestFileSetResolve(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("main.qs", []byte("namespace A {\n    open B;\n}\n"))

	start, end := fs.Resolve(Span{File: id, Start: 18, End: 22})
	if start != (LineCol{Line: 2, Col: 5}) {
		t.Fatalf("expected 2:5, got %d:%d", start.Line, start.Col)
	}
	if end != (LineCol{Line: 2, Col: 9}) {
		t.Fatalf("expected 2:9, got %d:%d", end.Line, end.Col)
	}

	f := fs.Get(id)
	if got := f.GetLine(2); got != "    open B;" {
		t.Fatalf("unexpected line: %q", got)
	}
	if got := f.GetLine(4); got != "" {
		t.Fatalf("expected empty trailing line, got %q", got)
	}
	if got := f.GetLine(9); got != "" {
		t.Fatalf("expected empty string past EOF, got %q", got)
	}
}

func TestFileSetNormalizesCRLFAndBOM(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("x.qs", []byte("\xEF\xBB\xBFa\r\nb"))
	f := fs.Get(id)
	if string(f.Content) != "a\nb" {
		t.Fatalf("unexpected content %q", f.Content)
	}
	if f.Flags&FileHadBOM == 0 || f.Flags&FileNormalizedCRLF == 0 {
		t.Fatalf("expected BOM and CRLF flags, got %b", f.Flags)
	}
	if latest, ok := fs.GetLatest("x.qs"); !ok || latest != id {
		t.Fatalf("expected GetLatest to return %d", id)
	}
}

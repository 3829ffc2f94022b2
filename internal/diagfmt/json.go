package diagfmt

import (
	"encoding/json"
	"io"

	"qres/internal/diag"
	"qres/internal/source"
)

// JSONLocation is a span in machine-readable form. File is empty for
// diagnostics without a source location; line and column fields are set
// only with JSONOpts.IncludePositions.
type JSONLocation struct {
	File      string `json:"file,omitempty"`
	StartByte uint32 `json:"start_byte"`
	EndByte   uint32 `json:"end_byte"`
	StartLine uint32 `json:"start_line,omitempty"`
	StartCol  uint32 `json:"start_col,omitempty"`
	EndLine   uint32 `json:"end_line,omitempty"`
	EndCol    uint32 `json:"end_col,omitempty"`
}

type JSONNote struct {
	Message  string       `json:"message"`
	Location JSONLocation `json:"location"`
}

type JSONDiagnostic struct {
	Severity string       `json:"severity"`
	Code     string       `json:"code"`
	Title    string       `json:"title"`
	Message  string       `json:"message"`
	Location JSONLocation `json:"location"`
	Notes    []JSONNote   `json:"notes,omitempty"`
}

// JSONReport is the document written by JSON.
type JSONReport struct {
	Diagnostics []JSONDiagnostic `json:"diagnostics"`
	Count       int              `json:"count"`
}

type jsonEncoder struct {
	fs   *source.FileSet
	opts JSONOpts
}

func (e jsonEncoder) location(span source.Span) JSONLocation {
	loc := JSONLocation{StartByte: span.Start, EndByte: span.End}
	path, ok := displayPath(e.fs, span.File, e.opts.PathMode)
	if !ok {
		return loc
	}
	loc.File = path
	if e.opts.IncludePositions {
		start, end := e.fs.Resolve(span)
		loc.StartLine, loc.StartCol = start.Line, start.Col
		loc.EndLine, loc.EndCol = end.Line, end.Col
	}
	return loc
}

func (e jsonEncoder) diagnostic(d *diag.Diagnostic) JSONDiagnostic {
	out := JSONDiagnostic{
		Severity: d.Severity.String(),
		Code:     d.Code.ID(),
		Title:    d.Code.Title(),
		Message:  d.Message,
		Location: e.location(d.Primary),
	}
	// заметки таймингов несут сам payload, их показываем всегда
	if !e.opts.IncludeNotes && d.Code != diag.ObsTimings {
		return out
	}
	for _, n := range d.Notes {
		out.Notes = append(out.Notes, JSONNote{Message: n.Msg, Location: e.location(n.Span)})
	}
	return out
}

// BuildJSONReport converts the first opts.Max diagnostics of bag (all of
// them when Max is 0).
func BuildJSONReport(bag *diag.Bag, fs *source.FileSet, opts JSONOpts) JSONReport {
	items := bag.Items()
	if opts.Max > 0 && opts.Max < len(items) {
		items = items[:opts.Max]
	}
	enc := jsonEncoder{fs: fs, opts: opts}
	report := JSONReport{Diagnostics: make([]JSONDiagnostic, 0, len(items))}
	for i := range items {
		report.Diagnostics = append(report.Diagnostics, enc.diagnostic(&items[i]))
	}
	report.Count = len(report.Diagnostics)
	return report
}

// JSON writes an indented JSONReport.
func JSON(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildJSONReport(bag, fs, opts))
}

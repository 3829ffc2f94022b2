package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"qres/internal/diag"
	"qres/internal/source"
)

// Short writes one line per diagnostic:
//
//	<path>:<line>:<col>: <severity> <CODE> <message>
//
// Diagnostics without a location drop the position prefix. Notes follow
// their diagnostic as "note" lines when opts.IncludeNotes is set.
func Short(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts ShortOpts) error {
	if bag == nil {
		return nil
	}
	var b strings.Builder
	for _, d := range bag.Items() {
		writeShortLine(&b, fs, opts.PathMode, d.Primary, strings.ToLower(d.Severity.String()), d.Code, d.Message)
		if !opts.IncludeNotes {
			continue
		}
		for _, n := range d.Notes {
			writeShortLine(&b, fs, opts.PathMode, n.Span, "note", d.Code, n.Msg)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeShortLine(b *strings.Builder, fs *source.FileSet, mode PathMode, span source.Span, label string, code diag.Code, msg string) {
	if path, ok := displayPath(fs, span.File, mode); ok {
		start, _ := fs.Resolve(span)
		fmt.Fprintf(b, "%s:%d:%d: ", path, start.Line, start.Col)
	}
	fmt.Fprintf(b, "%s %s %s\n", label, code.ID(), oneLine(msg))
}

func oneLine(msg string) string {
	return strings.Join(strings.Fields(msg), " ")
}

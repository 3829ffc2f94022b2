package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"qres/internal/diag"
	"qres/internal/source"
)

const tabWidth = 4

type palette struct {
	err, warn, info, note, help, gutter, caret, code *color.Color
}

func newPalette(enabled bool) palette {
	mk := func(attrs ...color.Attribute) *color.Color {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c
	}
	return palette{
		err:    mk(color.FgRed, color.Bold),
		warn:   mk(color.FgYellow, color.Bold),
		info:   mk(color.FgCyan, color.Bold),
		note:   mk(color.FgBlue, color.Bold),
		help:   mk(color.FgGreen, color.Bold),
		gutter: mk(color.FgBlue),
		caret:  mk(color.FgRed, color.Bold),
		code:   mk(color.Bold),
	}
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	if bag == nil {
		return
	}
	p := newPalette(opts.Color)
	for i, d := range bag.Items() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		prettyOne(w, d, fs, opts, p)
	}
}

func prettyOne(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, p palette) {
	msg := d.Message
	if opts.Width > 0 {
		msg = runewidth.Truncate(msg, int(opts.Width), "...")
	}
	header := fmt.Sprintf("%s %s: %s", p.severity(d.Severity).Sprint(d.Severity.String()), p.code.Sprint(d.Code.ID()), msg)
	if loc, ok := location(fs, d.Primary, opts.PathMode); ok {
		header = loc + ": " + header
	}
	fmt.Fprintln(w, header)
	snippet(w, fs, d.Primary, int(opts.Context), p)

	showNotes := opts.ShowNotes || d.Severity == diag.SevError
	if !showNotes {
		return
	}
	for _, note := range d.Notes {
		// help-заметки печатаются без позиции
		if rest, ok := strings.CutPrefix(note.Msg, "help: "); ok {
			fmt.Fprintf(w, "  %s: %s\n", p.help.Sprint("help"), rest)
			continue
		}
		if loc, ok := location(fs, note.Span, opts.PathMode); ok {
			fmt.Fprintf(w, "  %s: %s: %s\n", p.note.Sprint("note"), loc, note.Msg)
			snippet(w, fs, note.Span, 0, p)
			continue
		}
		fmt.Fprintf(w, "  %s: %s\n", p.note.Sprint("note"), note.Msg)
	}
}

func location(fs *source.FileSet, span source.Span, mode PathMode) (string, bool) {
	path, ok := displayPath(fs, span.File, mode)
	if !ok {
		return "", false
	}
	start, _ := fs.Resolve(span)
	return fmt.Sprintf("%s:%d:%d", path, start.Line, start.Col), true
}

// snippet prints the line of span (plus up to context lines before it) with
// a caret underline. Nothing is printed for files without text.
func snippet(w io.Writer, fs *source.FileSet, span source.Span, context int, p palette) {
	if fs == nil || span.File == 0 {
		return
	}
	f := fs.Get(span.File)
	if f == nil || len(f.Content) == 0 {
		return
	}
	start, end := fs.Resolve(span)
	line := f.GetLine(start.Line)
	if line == "" && start.Col <= 1 {
		return
	}

	first := start.Line
	if context > 0 && uint32(context) < first {
		first -= uint32(context)
	} else if context > 0 {
		first = 1
	}
	gutterWidth := len(fmt.Sprint(start.Line))
	for n := first; n <= start.Line; n++ {
		fmt.Fprintf(w, "%s %s %s\n", p.gutter.Sprintf("%*d", gutterWidth, n), p.gutter.Sprint("|"), expandTabs(f.GetLine(n)))
	}

	col := min(int(start.Col)-1, len(line))
	lastCol := len(line)
	if end.Line == start.Line {
		lastCol = min(int(end.Col)-1, len(line))
	}
	pad := runewidth.StringWidth(expandTabs(line[:col]))
	width := runewidth.StringWidth(expandTabs(line[col:max(col, lastCol)]))
	marker := "^"
	if width > 1 {
		marker += strings.Repeat("~", width-1)
	}
	fmt.Fprintf(w, "%s %s %s%s\n", strings.Repeat(" ", gutterWidth), p.gutter.Sprint("|"), strings.Repeat(" ", pad), p.caret.Sprint(marker))
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
}

package diagfmt

import "qres/internal/source"

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	// PathModeAuto chooses relative or absolute path automatically.
	PathModeAuto PathMode = iota
	// PathModeAbsolute always uses absolute paths.
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
)

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color     bool
	Context   int8 // строк контекста перед строкой диагностики
	PathMode  PathMode
	Width     uint8 // максимальная ширина сообщения, 0 - не ограничено
	ShowNotes bool
}

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	IncludePositions bool // добавить line/col
	PathMode         PathMode
	Max              int // обрезка вывода, не Bag
	IncludeNotes     bool
}

// ShortOpts configures the one-line-per-diagnostic format.
type ShortOpts struct {
	PathMode     PathMode
	IncludeNotes bool
}

// SarifRunMeta provides metadata for SARIF output.
type SarifRunMeta struct {
	ToolName       string
	ToolVersion    string
	InvocationArgs []string
}

// displayPath renders the path of file id. ok is false for spans that carry
// no file (FileID 0) or an ID unknown to fs.
func displayPath(fs *source.FileSet, id source.FileID, mode PathMode) (path string, ok bool) {
	if fs == nil || id == 0 {
		return "", false
	}
	f := fs.Get(id)
	if f == nil {
		return "", false
	}
	switch mode {
	case PathModeAbsolute:
		return f.FormatPath("absolute", ""), true
	case PathModeRelative:
		return f.FormatPath("relative", fs.BaseDir()), true
	case PathModeBasename:
		return f.FormatPath("basename", ""), true
	default:
		return f.FormatPath("auto", ""), true
	}
}

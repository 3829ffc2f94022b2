package source

import (
	"bytes"
	"os"
	"path/filepath"
	"slices"
)

// FileID indexes a FileSet. ID 0 is reserved for spans without a file.
type FileID uint32

// FileFlags records how a file's content was normalised on the way in.
type FileFlags uint8

const (
	FileVirtual FileFlags = 1 << iota // not read from disk
	FileHadBOM
	FileNormalizedCRLF
)

// LineCol is a 1-based position.
type LineCol struct {
	Line uint32
	Col  uint32
}

// File is one unit's source text with a line index.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	Flags   FileFlags
	newline []uint32 // смещения всех '\n'
}

var bom = []byte{0xEF, 0xBB, 0xBF}

func newFile(id FileID, path string, content []byte, flags FileFlags) File {
	if rest, ok := bytes.CutPrefix(content, bom); ok {
		content, flags = rest, flags|FileHadBOM
	}
	if bytes.Contains(content, []byte("\r\n")) {
		content, flags = bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n")), flags|FileNormalizedCRLF
	}
	f := File{ID: id, Path: cleanPath(path), Content: content, Flags: flags}
	for i, b := range content {
		if b == '\n' {
			f.newline = append(f.newline, uint32(i))
		}
	}
	return f
}

func cleanPath(p string) string { return filepath.ToSlash(filepath.Clean(p)) }

// Position converts a byte offset to a line and column.
func (f *File) Position(off uint32) LineCol {
	// число '\n' левее off и есть 0-based номер строки
	line, _ := slices.BinarySearch(f.newline, off)
	var lineStart uint32
	if line > 0 {
		lineStart = f.newline[line-1] + 1
	}
	return LineCol{Line: uint32(line) + 1, Col: off - lineStart + 1}
}

// GetLine returns line n (1-based) without its newline, or "" when n is
// out of range.
func (f *File) GetLine(n uint32) string {
	if n == 0 || int(n) > len(f.newline)+1 {
		return ""
	}
	start := 0
	if n > 1 {
		start = int(f.newline[n-2]) + 1
	}
	end := len(f.Content)
	if int(n) <= len(f.newline) {
		end = int(f.newline[n-1])
	}
	return string(f.Content[start:end])
}

// FormatPath renders the path for display. mode is "absolute", "relative"
// (to baseDir, or the working directory when empty), "basename" or "auto";
// auto keeps short or relative paths and shortens long absolute ones.
func (f *File) FormatPath(mode, baseDir string) string {
	switch mode {
	case "absolute":
		if abs, err := filepath.Abs(f.Path); err == nil {
			return filepath.ToSlash(abs)
		}
	case "relative":
		if baseDir == "" {
			baseDir, _ = os.Getwd()
		}
		abs, err := filepath.Abs(f.Path)
		if err != nil {
			break
		}
		if rel, err := filepath.Rel(baseDir, abs); err == nil {
			return filepath.ToSlash(rel)
		}
	case "basename":
		return filepath.Base(f.Path)
	case "auto":
		if filepath.IsAbs(f.Path) && len(f.Path) >= 40 {
			return filepath.Base(f.Path)
		}
	}
	return f.Path
}

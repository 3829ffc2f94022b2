package source

import (
	"fmt"
	"os"

	"fortio.org/safecast"
)

// FileSet owns the sources of every loaded unit so spans can be printed
// as path:line:col. It is not safe for concurrent use; the driver
// registers units one at a time.
type FileSet struct {
	files   []File
	byPath  map[string]FileID
	baseDir string
}

func NewFileSet() *FileSet {
	return &FileSet{
		files:  []File{{Path: "<unknown>", Flags: FileVirtual}},
		byPath: make(map[string]FileID),
	}
}

// SetBaseDir sets the directory relative paths are computed against.
func (fs *FileSet) SetBaseDir(dir string) { fs.baseDir = dir }

// BaseDir returns the configured base directory, or the working
// directory when none was set.
func (fs *FileSet) BaseDir() string {
	if fs.baseDir != "" {
		return fs.baseDir
	}
	wd, _ := os.Getwd()
	return wd
}

// Add registers content under path. Adding a path twice yields a new ID;
// GetLatest returns the newest.
func (fs *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	n, err := safecast.Conv[uint32](len(fs.files))
	if err != nil {
		panic(fmt.Errorf("too many files: %w", err))
	}
	f := newFile(FileID(n), path, content, flags)
	fs.files = append(fs.files, f)
	fs.byPath[f.Path] = f.ID
	return f.ID
}

// AddVirtual registers text that did not come from a file on disk, such as
// the source embedded in an AST document.
func (fs *FileSet) AddVirtual(name string, content []byte) FileID {
	return fs.Add(name, content, FileVirtual)
}

// Get returns the file for id, nil when id is unknown.
func (fs *FileSet) Get(id FileID) *File {
	if int(id) >= len(fs.files) {
		return nil
	}
	return &fs.files[id]
}

func (fs *FileSet) GetLatest(path string) (FileID, bool) {
	id, ok := fs.byPath[cleanPath(path)]
	return id, ok
}

// Resolve converts span to start and end positions. Spans of unknown
// files resolve as if the text were a single line.
func (fs *FileSet) Resolve(span Span) (start, end LineCol) {
	f := fs.Get(span.File)
	if f == nil {
		return LineCol{Line: 1, Col: span.Start + 1}, LineCol{Line: 1, Col: span.End + 1}
	}
	return f.Position(span.Start), f.Position(span.End)
}

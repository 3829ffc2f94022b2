package driver

import (
	"fmt"
	"os"

	"qres/internal/ast"
	"qres/internal/source"
)

// Unit is one decoded compilation unit.
type Unit struct {
	Path    string
	Doc     *ast.Document
	Package *ast.Package
	File    source.FileID
	// Synthetic is set when the document carried no spans and the driver
	// laid the tree out itself.
	Synthetic bool
}

// LoadUnit reads and decodes the AST document at path. strs may be shared
// only between calls made from one goroutine.
func LoadUnit(path string, strs *source.Interner) (*Unit, error) {
	format, ok := ast.FormatForPath(path)
	if !ok {
		return nil, fmt.Errorf("%s: not an AST document (want .qast or .qast.json)", path)
	}
	// #nosec G304 -- path is provided by the caller
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	doc, err := ast.DecodeDocument(f, format, strs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &Unit{Path: path, Doc: doc, Package: doc.Package}, nil
}

// Register adds the unit's source to fileSet and stamps every span with the
// new file ID. Documents without spans get a synthetic layout so that scope
// offsets stay meaningful.
func (u *Unit) Register(fileSet *source.FileSet) {
	name := u.Doc.Path
	if name == "" {
		name = u.Path
	}
	u.File = fileSet.AddVirtual(name, []byte(u.Doc.Source))
	if u.Package.Span.Empty() && u.Package.Span.Start == 0 {
		ast.Layout(u.Package, u.File)
		u.Synthetic = true
		return
	}
	ast.SetFile(u.Package, u.File)
}

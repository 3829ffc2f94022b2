package ast

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/vmihailenco/msgpack/v5"

	"qres/internal/source"
)

// DocumentVersion is the AST document format understood by this package.
const DocumentVersion = 1

// Document is a parsed compilation unit as written by the parser front end.
// Source is optional and only used to render diagnostics.
type Document struct {
	Version int      `json:"version" msgpack:"version"`
	Path    string   `json:"path,omitempty" msgpack:"path,omitempty"`
	Source  string   `json:"source,omitempty" msgpack:"source,omitempty"`
	Package *Package `json:"package" msgpack:"package"`
}

// Format of an encoded document.
type Format uint8

const (
	FormatJSON Format = iota
	FormatMsgpack
)

// FormatForPath picks the encoding from the file name: `.qast` is msgpack,
// `.qast.json` (or any `.json`) is JSON.
func FormatForPath(path string) (Format, bool) {
	base := strings.ToLower(filepath.Base(path))
	switch {
	case strings.HasSuffix(base, ".qast.json"), strings.HasSuffix(base, ".json"):
		return FormatJSON, true
	case strings.HasSuffix(base, ".qast"):
		return FormatMsgpack, true
	default:
		return 0, false
	}
}

// IsDocumentPath reports whether path names an AST document.
func IsDocumentPath(path string) bool {
	base := strings.ToLower(filepath.Base(path))
	return strings.HasSuffix(base, ".qast") || strings.HasSuffix(base, ".qast.json")
}

// DecodeDocument reads a document and canonicalises it: identifier text is
// interned (NFC-normalised) and nodes without IDs get fresh ones.
func DecodeDocument(r io.Reader, format Format, strs *source.Interner) (*Document, error) {
	var doc Document
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode json document: %w", err)
		}
	case FormatMsgpack:
		if err := msgpack.NewDecoder(r).Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode msgpack document: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown document format %d", format)
	}
	if doc.Version != DocumentVersion {
		return nil, fmt.Errorf("unsupported document version %d (want %d)", doc.Version, DocumentVersion)
	}
	if doc.Package == nil {
		return nil, fmt.Errorf("document has no package")
	}
	if err := checkNamespaceNames(doc.Package); err != nil {
		return nil, err
	}
	Canonicalize(doc.Package, strs)
	AssignIDs(doc.Package)
	return &doc, nil
}

// checkNamespaceNames rejects namespaces whose name is missing or has an
// empty segment.
func checkNamespaceNames(pkg *Package) error {
	for i, node := range pkg.Nodes {
		if node == nil || node.Namespace == nil {
			continue
		}
		if len(node.Namespace.Name) == 0 {
			return fmt.Errorf("namespace at node %d has no name", i)
		}
		for _, id := range node.Namespace.Name {
			if id == nil || id.Name == "" {
				return fmt.Errorf("namespace at node %d has an empty name segment", i)
			}
		}
	}
	return nil
}

// EncodeDocument writes doc in the given format.
func EncodeDocument(w io.Writer, doc *Document, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case FormatMsgpack:
		enc := msgpack.NewEncoder(w)
		enc.UseCompactInts(true)
		return enc.Encode(doc)
	default:
		return fmt.Errorf("unknown document format %d", format)
	}
}

// DecodeBytes is DecodeDocument over an in-memory buffer.
func DecodeBytes(data []byte, format Format, strs *source.Interner) (*Document, error) {
	return DecodeDocument(bytes.NewReader(data), format, strs)
}

// Canonicalize rewrites identifier text to its interned form.
func Canonicalize(root Node, strs *source.Interner) {
	if strs == nil {
		strs = source.NewInterner()
	}
	Walk(root, VisitorFuncs{EnterFn: func(n Node) bool {
		if id, ok := n.(*Ident); ok {
			id.Name = strs.MustLookup(strs.Intern(id.Name))
		}
		return true
	}})
}

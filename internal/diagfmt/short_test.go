package diagfmt

import (
	"bytes"
	"testing"

	"qres/internal/diag"
	"qres/internal/source"
)

func TestShort(t *testing.T) {
	fs, id := sampleFile(t, "main.qs")
	span := fooSpan
	span.File = id
	bag := diag.NewBag(10)
	bag.Add(diag.New(diag.SevError, diag.ResAmbiguous, span, "`Foo` could refer to\nmore than one item").
		WithNote(source.Span{File: id, Start: 10, End: 13}, "found in this namespace"))
	bag.Add(diag.New(diag.SevError, diag.ProjMissingDependency, source.Span{}, "dependency \"std\": interface not found"))

	cases := []struct {
		name  string
		notes bool
		want  string
	}{
		{"without notes", false, "main.qs:2:5: error RES3001 `Foo` could refer to more than one item\n" +
			"error PRJ5002 dependency \"std\": interface not found\n"},
		{"with notes", true, "main.qs:2:5: error RES3001 `Foo` could refer to more than one item\n" +
			"main.qs:1:11: note RES3001 found in this namespace\n" +
			"error PRJ5002 dependency \"std\": interface not found\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := Short(&buf, bag, fs, ShortOpts{PathMode: PathModeBasename, IncludeNotes: tc.notes}); err != nil {
				t.Fatalf("Short: %v", err)
			}
			if buf.String() != tc.want {
				t.Fatalf("expected:\n%s\ngot:\n%s", tc.want, buf.String())
			}
		})
	}
}

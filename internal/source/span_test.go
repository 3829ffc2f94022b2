package source

import "testing"

func TestSpanCover(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Span
		expected Span
	}{
		{
			name:     "disjoint spans",
			a:        Span{File: 1, Start: 2, End: 4},
			b:        Span{File: 1, Start: 10, End: 12},
			expected: Span{File: 1, Start: 2, End: 12},
		},
		{
			name:     "nested span",
			a:        Span{File: 1, Start: 0, End: 20},
			b:        Span{File: 1, Start: 5, End: 6},
			expected: Span{File: 1, Start: 0, End: 20},
		},
		{
			name:     "different files keep receiver",
			a:        Span{File: 1, Start: 3, End: 4},
			b:        Span{File: 2, Start: 0, End: 100},
			expected: Span{File: 1, Start: 3, End: 4},
		},
		{
			name:     "zero receiver adopts other",
			a:        Span{},
			b:        Span{Start: 7, End: 9},
			expected: Span{Start: 7, End: 9},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Cover(tt.b); got != tt.expected {
				t.Fatalf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestSpanStrictlyContains(t *testing.T) {
	span := Span{Start: 10, End: 20}
	cases := map[uint32]bool{9: false, 10: false, 11: true, 19: true, 20: false}
	for off, want := range cases {
		if got := span.StrictlyContains(off); got != want {
			t.Fatalf("offset %d: expected %v, got %v", off, want, got)
		}
	}
}

func TestSpanLess(t *testing.T) {
	a := Span{File: 1, Start: 5, End: 6}
	b := Span{File: 1, Start: 5, End: 9}
	c := Span{File: 2, Start: 0, End: 1}
	if !a.Less(b) || b.Less(a) {
		t.Fatalf("expected %v < %v", a, b)
	}
	if !b.Less(c) {
		t.Fatalf("expected file order to win")
	}
}

package source

import "testing"

func TestInternerReusesIDs(t *testing.T) {
	in := NewInterner()
	a := in.Intern("Foo")
	b := in.Intern("Foo")
	c := in.Intern("foo")
	if a != b {
		t.Fatalf("expected same ID for repeated string, got %d and %d", a, b)
	}
	if a == c {
		t.Fatalf("interning must be case-sensitive")
	}
	if got := in.MustLookup(a); got != "Foo" {
		t.Fatalf("expected Foo, got %q", got)
	}
	if in.Len() != 3 {
		t.Fatalf("expected 3 entries including NoStringID, got %d", in.Len())
	}
}

func TestInternerNormalizesNFC(t *testing.T) {
	in := NewInterner()
	composed := in.Intern("caf\u00e9")
	decomposed := in.Intern("cafe\u0301")
	if composed != decomposed {
		t.Fatalf("expected NFC-equivalent identifiers to share an ID")
	}
}

func TestInternerLookupUnknown(t *testing.T) {
	in := NewInterner()
	if _, ok := in.Lookup(StringID(42)); ok {
		t.Fatalf("expected lookup of unknown ID to fail")
	}
	if s, ok := in.Lookup(NoStringID); !ok || s != "" {
		t.Fatalf("expected NoStringID to map to empty string")
	}
}

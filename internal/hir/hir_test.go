package hir

import "testing"

func TestAssignerStartsAtOne(t *testing.T) {
	a := NewAssigner()
	if got := a.Peek(); got != 1 {
		t.Fatalf("expected peek 1, got %d", got)
	}
	first, second := a.NextItem(), a.NextItem()
	if first != 1 || second != 2 {
		t.Fatalf("expected 1 and 2, got %d and %d", first, second)
	}
	var zero Assigner
	if got := zero.NextItem(); got != 1 {
		t.Fatalf("zero assigner should start at 1, got %d", got)
	}
}

func TestItemIDEquality(t *testing.T) {
	if InPackage(2, 5) != InPackage(2, 5) {
		t.Fatalf("expected equal IDs")
	}
	if InPackage(2, 5) == Intrapackage(5) {
		t.Fatalf("package must distinguish IDs")
	}
	if !Intrapackage(1).IsLocal() {
		t.Fatalf("expected local item")
	}
	if got := InPackage(3, 7).String(); got != "Item 7 (Package 3)" {
		t.Fatalf("unexpected string %q", got)
	}
}

func TestStatusFromAttrs(t *testing.T) {
	if StatusFromAttrs([]Attr{AttrEntryPoint}) != StatusAvailable {
		t.Fatalf("expected available")
	}
	if StatusFromAttrs([]Attr{AttrConfig, AttrUnimplemented}) != StatusUnimplemented {
		t.Fatalf("expected unimplemented")
	}
}

func TestParseAttr(t *testing.T) {
	a, err := ParseAttr("Config")
	if err != nil || a != AttrConfig {
		t.Fatalf("expected Config, got %v %v", a, err)
	}
	if _, err := ParseAttr("Inline"); err == nil {
		t.Fatalf("expected error for unknown attribute")
	}
	if AttrUnimplemented.String() != "Unimplemented" {
		t.Fatalf("unexpected name %q", AttrUnimplemented.String())
	}
}

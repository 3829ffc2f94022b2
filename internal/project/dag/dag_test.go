package dag

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBuildIndexIncludesRequires(t *testing.T) {
	nodes := []Node{
		{Name: "app", Requires: []string{"math", "std"}},
		{Name: "std"},
	}

	idx := BuildIndex(nodes)

	wantNames := []string{"app", "math", "std"}
	if diff := cmp.Diff(wantNames, idx.IDToName); diff != "" {
		t.Fatalf("unexpected names (-want +got):\n%s", diff)
	}
	for i, want := range wantNames {
		if id, ok := idx.NameToID[want]; !ok || int(id) != i {
			t.Fatalf("idx.NameToID[%q] = %v, want %d", want, id, i)
		}
	}
}

func TestSortPlacesDependenciesFirst(t *testing.T) {
	nodes := []Node{
		{Name: "app", Requires: []string{"canon", "core"}},
		{Name: "canon", Requires: []string{"core"}},
		{Name: "core"},
	}

	order, problems := Sort(nodes)
	if len(problems) != 0 {
		t.Fatalf("expected no problems, got %v", problems)
	}
	if diff := cmp.Diff([]string{"core", "canon", "app"}, order); diff != "" {
		t.Fatalf("unexpected order (-want +got):\n%s", diff)
	}
}

func TestToposortBatches(t *testing.T) {
	nodes := []Node{
		{Name: "a", Requires: []string{"c"}},
		{Name: "b", Requires: []string{"c"}},
		{Name: "c"},
	}
	idx := BuildIndex(nodes)
	g, problems := BuildGraph(idx, nodes)
	if len(problems) != 0 {
		t.Fatalf("expected no problems, got %v", problems)
	}
	topo := ToposortKahn(g)
	got := make([][]string, 0, len(topo.Batches))
	for _, batch := range topo.Batches {
		got = append(got, idx.Names(batch))
	}
	want := [][]string{{"c"}, {"a", "b"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected batches (-want +got):\n%s", diff)
	}
}

func TestBuildGraphReportsProblems(t *testing.T) {
	nodes := []Node{
		{Name: "app", Requires: []string{"app", "gone", "std", "std"}},
		{Name: "std"},
		{Name: "std"},
	}

	idx := BuildIndex(nodes)
	g, problems := BuildGraph(idx, nodes)

	want := []Problem{
		{Kind: ProblemDuplicate, Package: "std"},
		{Kind: ProblemSelfRequire, Package: "app"},
		{Kind: ProblemMissing, Package: "app", Target: "gone"},
	}
	if diff := cmp.Diff(want, problems); diff != "" {
		t.Fatalf("unexpected problems (-want +got):\n%s", diff)
	}
	if got := g.Indeg[int(idx.NameToID["app"])]; got != 1 {
		t.Fatalf("expected app to count a single edge from std, got %d", got)
	}
}

func TestSortReportsCycle(t *testing.T) {
	nodes := []Node{
		{Name: "a", Requires: []string{"b"}},
		{Name: "b", Requires: []string{"a"}},
		{Name: "c"},
	}

	order, problems := Sort(nodes)
	if diff := cmp.Diff([]string{"c"}, order); diff != "" {
		t.Fatalf("unexpected order (-want +got):\n%s", diff)
	}
	if len(problems) != 2 {
		t.Fatalf("expected 2 cycle problems, got %v", problems)
	}
	for _, p := range problems {
		if p.Kind != ProblemCycle {
			t.Fatalf("expected cycle problem, got %v", p)
		}
		if diff := cmp.Diff([]string{"a", "b"}, p.Cycle); diff != "" {
			t.Fatalf("unexpected cycle (-want +got):\n%s", diff)
		}
	}
	if got := problems[0].String(); got != `package "a" participates in a dependency cycle: a -> b` {
		t.Fatalf("unexpected message %q", got)
	}
}

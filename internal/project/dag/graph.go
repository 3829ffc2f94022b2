package dag

import (
	"fmt"
	"slices"
	"strings"
)

// Graph хранит рёбра "зависимость -> зависимый", так что Kahn выдаёт
// зависимости раньше пакетов, которые их требуют.
type Graph struct {
	Edges   [][]PackageID // Edges[dep] = []dependent
	Indeg   []int         // число присутствующих зависимостей
	Present []bool        // пакет реально загружен (а не только упомянут в requires)
}

type ProblemKind uint8

const (
	ProblemDuplicate ProblemKind = iota + 1
	ProblemMissing
	ProblemSelfRequire
	ProblemCycle
)

// Problem describes one defect found while building or sorting the graph.
type Problem struct {
	Kind    ProblemKind
	Package string
	Target  string   // requirement for ProblemMissing
	Cycle   []string // participants for ProblemCycle
}

func (p Problem) String() string {
	switch p.Kind {
	case ProblemDuplicate:
		return fmt.Sprintf("duplicate package %q", p.Package)
	case ProblemMissing:
		return fmt.Sprintf("package %q requires missing package %q", p.Package, p.Target)
	case ProblemSelfRequire:
		return fmt.Sprintf("package %q requires itself", p.Package)
	case ProblemCycle:
		return fmt.Sprintf("package %q participates in a dependency cycle: %s", p.Package, strings.Join(p.Cycle, " -> "))
	}
	return "unknown dependency problem"
}

func BuildGraph(idx PackageIndex, nodes []Node) (Graph, []Problem) {
	nodeCount := len(idx.IDToName)
	g := Graph{
		Edges:   make([][]PackageID, nodeCount),
		Indeg:   make([]int, nodeCount),
		Present: make([]bool, nodeCount),
	}
	requires := make([][]string, nodeCount)
	var problems []Problem

	for _, node := range nodes {
		if node.Name == "" {
			continue
		}
		id, ok := idx.NameToID[node.Name]
		if !ok {
			// не должно происходить, индекс строится на тех же узлах
			continue
		}
		if g.Present[int(id)] {
			problems = append(problems, Problem{Kind: ProblemDuplicate, Package: node.Name})
			continue
		}
		g.Present[int(id)] = true
		requires[int(id)] = node.Requires
	}

	for to, reqs := range requires {
		if !g.Present[to] {
			continue
		}
		name := idx.IDToName[to]
		seen := make(map[PackageID]struct{}, len(reqs))
		for _, req := range reqs {
			if req == "" {
				continue
			}
			from := idx.NameToID[req]
			if int(from) == to {
				problems = append(problems, Problem{Kind: ProblemSelfRequire, Package: name})
				continue
			}
			if _, dup := seen[from]; dup {
				continue
			}
			seen[from] = struct{}{}
			if !g.Present[int(from)] {
				problems = append(problems, Problem{Kind: ProblemMissing, Package: name, Target: req})
				continue
			}
			g.Edges[int(from)] = append(g.Edges[int(from)], PackageID(to))
			g.Indeg[to]++
		}
	}
	for from := range g.Edges {
		if len(g.Edges[from]) > 1 {
			slices.Sort(g.Edges[from])
		}
	}

	return g, problems
}

// CycleProblems returns one problem per package left in a cycle.
func CycleProblems(idx PackageIndex, topo *Topo) []Problem {
	if topo == nil || !topo.Cyclic || len(topo.Cycles) == 0 {
		return nil
	}
	names := idx.Names(topo.Cycles)
	out := make([]Problem, 0, len(names))
	for _, name := range names {
		out = append(out, Problem{Kind: ProblemCycle, Package: name, Cycle: names})
	}
	return out
}

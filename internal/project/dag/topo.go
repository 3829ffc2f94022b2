package dag

import (
	"fmt"
	"slices"

	"fortio.org/safecast"
)

// Topo is the result of sorting a Graph.
type Topo struct {
	Order   []PackageID   // зависимости идут раньше зависимых
	Batches [][]PackageID // Order, нарезанный на волны без взаимных рёбер
	Cyclic  bool
	Cycles  []PackageID // пакеты, до которых Kahn не дошёл
}

func packageID(i int) PackageID {
	id, err := safecast.Conv[PackageID](i)
	if err != nil {
		panic(fmt.Errorf("package id overflow: %w", err))
	}
	return id
}

// ToposortKahn sorts the present packages of g in waves: each batch holds
// the packages whose dependencies all appeared in earlier batches. IDs
// inside a batch are ascending so the order is deterministic.
func ToposortKahn(g Graph) *Topo {
	indeg := slices.Clone(g.Indeg)
	topo := &Topo{}

	var wave []PackageID
	present := 0
	for i, ok := range g.Present {
		if !ok {
			continue
		}
		present++
		if indeg[i] == 0 {
			wave = append(wave, packageID(i))
		}
	}

	for len(wave) > 0 {
		topo.Batches = append(topo.Batches, wave)
		topo.Order = append(topo.Order, wave...)
		var next []PackageID
		for _, id := range wave {
			for _, to := range g.Edges[id] {
				if !g.Present[to] {
					continue
				}
				if indeg[to]--; indeg[to] == 0 {
					next = append(next, to)
				}
			}
		}
		slices.Sort(next)
		wave = next
	}

	if len(topo.Order) == present {
		return topo
	}
	topo.Cyclic = true
	for i, ok := range g.Present {
		if ok && indeg[i] > 0 {
			topo.Cycles = append(topo.Cycles, packageID(i))
		}
	}
	return topo
}

// Sort orders packages so that every package follows the packages it
// requires. Packages stuck in a cycle are left out of order.
func Sort(nodes []Node) (order []string, problems []Problem) {
	idx := BuildIndex(nodes)
	g, problems := BuildGraph(idx, nodes)
	topo := ToposortKahn(g)
	problems = append(problems, CycleProblems(idx, topo)...)
	return idx.Names(topo.Order), problems
}

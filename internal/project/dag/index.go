package dag

import (
	"fmt"
	"sort"

	"fortio.org/safecast"
)

type PackageID uint32

// Node is one package interface and the package names it was built against.
type Node struct {
	Name     string
	Requires []string
}

type PackageIndex struct {
	NameToID map[string]PackageID
	IDToName []string
}

// собрать уникальные имена (включая требуемые), sort.Strings, раздать ID по порядку
func BuildIndex(nodes []Node) PackageIndex {
	uniq := make(map[string]struct{}, len(nodes))
	for _, node := range nodes {
		if node.Name != "" {
			uniq[node.Name] = struct{}{}
		}
		for _, req := range node.Requires {
			if req == "" {
				continue
			}
			uniq[req] = struct{}{}
		}
	}

	names := make([]string, 0, len(uniq))
	for name := range uniq {
		names = append(names, name)
	}
	sort.Strings(names)

	nameToID := make(map[string]PackageID, len(names))
	for i, name := range names {
		id, err := safecast.Conv[PackageID](i)
		if err != nil {
			panic(fmt.Errorf("package id overflow: %w", err))
		}
		nameToID[name] = id
	}

	return PackageIndex{
		NameToID: nameToID,
		IDToName: names,
	}
}

func (idx PackageIndex) Names(ids []PackageID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = idx.IDToName[int(id)]
	}
	return out
}

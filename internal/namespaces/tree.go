// Package namespaces maps dotted namespace paths to stable IDs.
package namespaces

import (
	"fmt"
	"slices"
	"strings"

	"fortio.org/safecast"
)

// ID identifies a namespace. Root is the global namespace.
type ID uint32

const Root ID = 0

func (id ID) String() string { return fmt.Sprintf("Namespace %d", uint32(id)) }

// Node is one namespace. Children are addressed by segment name.
type Node struct {
	ID       ID
	Parent   ID
	Name     string // сегмент пути; пустой у корня
	children map[string]ID
}

// Children returns the child segments in sorted order.
func (n *Node) Children() []string {
	out := make([]string, 0, len(n.children))
	for name := range n.children {
		out = append(out, name)
	}
	slices.Sort(out)
	return out
}

// Child returns the ID of the direct child named seg.
func (n *Node) Child(seg string) (ID, bool) {
	id, ok := n.children[seg]
	return id, ok
}

// Tree is an arena of namespace nodes indexed by ID. nodes[0] is the root.
type Tree struct {
	nodes []Node
}

// NewTree creates a tree holding only the root.
func NewTree() *Tree {
	return &Tree{nodes: []Node{{ID: Root, Parent: Root, children: map[string]ID{}}}}
}

// Len returns the number of issued IDs, root included.
func (t *Tree) Len() int { return len(t.nodes) }

// Root returns the root node.
func (t *Tree) Root() *Node { return &t.nodes[Root] }

// InsertOrFind returns the ID of path, creating missing nodes on the way.
// An empty path is the root.
func (t *Tree) InsertOrFind(path []string) ID {
	cur := Root
	for _, seg := range path {
		if next, ok := t.nodes[cur].children[seg]; ok {
			cur = next
			continue
		}
		cur = t.add(cur, seg)
	}
	return cur
}

func (t *Tree) add(parent ID, seg string) ID {
	raw, err := safecast.Conv[uint32](len(t.nodes))
	if err != nil {
		panic(fmt.Errorf("namespace ID overflow: %w", err))
	}
	id := ID(raw)
	t.nodes = append(t.nodes, Node{ID: id, Parent: parent, Name: seg, children: map[string]ID{}})
	t.nodes[parent].children[seg] = id
	return id
}

// Find looks path up from the root without creating anything.
func (t *Tree) Find(path []string) (ID, bool) {
	return t.FindFrom(Root, path)
}

// FindFrom looks path up relative to the namespace from.
func (t *Tree) FindFrom(from ID, path []string) (ID, bool) {
	if !t.Has(from) {
		return Root, false
	}
	cur := from
	for _, seg := range path {
		next, ok := t.nodes[cur].children[seg]
		if !ok {
			return Root, false
		}
		cur = next
	}
	return cur, true
}

// Has reports whether id was issued by this tree.
func (t *Tree) Has(id ID) bool {
	return int(id) < len(t.nodes)
}

// FindByID returns the full path of id and its node. Asking for an ID this
// tree never issued is a programming error.
func (t *Tree) FindByID(id ID) ([]string, *Node) {
	if !t.Has(id) {
		panic(fmt.Sprintf("namespace ID %d was not issued by this tree", id))
	}
	var path []string
	for cur := id; cur != Root; cur = t.nodes[cur].Parent {
		path = append(path, t.nodes[cur].Name)
	}
	slices.Reverse(path)
	return path, &t.nodes[id]
}

// Name returns the dotted name of id; the root is the empty string.
func (t *Tree) Name(id ID) string {
	path, _ := t.FindByID(id)
	return strings.Join(path, ".")
}

// Walk visits every node depth-first, children in sorted order.
func (t *Tree) Walk(fn func(path []string, n *Node) bool) {
	var visit func(id ID, path []string) bool
	visit = func(id ID, path []string) bool {
		n := &t.nodes[id]
		if !fn(path, n) {
			return false
		}
		for _, name := range n.Children() {
			child := n.children[name]
			if !visit(child, append(slices.Clip(path), name)) {
				return false
			}
		}
		return true
	}
	visit(Root, nil)
}

// Validate checks parent/child links.
func (t *Tree) Validate() error {
	for i := range t.nodes {
		n := &t.nodes[i]
		if int(n.ID) != i {
			return fmt.Errorf("node %d has ID %d", i, n.ID)
		}
		if i != int(Root) {
			if !t.Has(n.Parent) {
				return fmt.Errorf("node %d has unknown parent %d", i, n.Parent)
			}
			if got, ok := t.nodes[n.Parent].children[n.Name]; !ok || got != n.ID {
				return fmt.Errorf("node %d is not registered under its parent", i)
			}
		}
		for name, child := range n.children {
			if !t.Has(child) || t.nodes[child].Parent != n.ID || t.nodes[child].Name != name {
				return fmt.Errorf("child %q of node %d is inconsistent", name, i)
			}
		}
	}
	return nil
}

// Clone returns a deep copy.
func (t *Tree) Clone() *Tree {
	out := &Tree{nodes: make([]Node, len(t.nodes))}
	for i, n := range t.nodes {
		n.children = make(map[string]ID, len(t.nodes[i].children))
		for k, v := range t.nodes[i].children {
			n.children[k] = v
		}
		out.nodes[i] = n
	}
	return out
}

package ast

import (
	"fmt"

	"fortio.org/safecast"

	"qres/internal/source"
)

// AssignIDs gives every node without an ID a fresh one, continuing after the
// largest ID already present. It returns the number of IDs assigned.
func AssignIDs(root Node) int {
	var maxID NodeID
	Walk(root, VisitorFuncs{EnterFn: func(n Node) bool {
		if id := IDOf(n); id > maxID {
			maxID = id
		}
		return true
	}})
	assigned := 0
	Walk(root, VisitorFuncs{EnterFn: func(n Node) bool {
		m := n.meta()
		if !m.ID.IsValid() {
			maxID++
			m.ID = maxID
			assigned++
		}
		return true
	}})
	return assigned
}

// SetFile stamps every span below root with file.
func SetFile(root Node, file source.FileID) {
	Walk(root, VisitorFuncs{EnterFn: func(n Node) bool {
		n.meta().Span.File = file
		return true
	}})
}

// Layout assigns IDs in source order starting at 1 and synthetic spans to a
// tree built in memory. Identifiers occupy their text length; every other
// node opens one byte before its first child and closes one byte after its
// last, so parents strictly contain their children.
func Layout(root Node, file source.FileID) {
	LayoutAt(root, file, 1, 0)
}

// LayoutAt lays out a fragment that follows earlier ones: IDs start at
// firstID and offsets at pos. It returns the first free ID and offset, to be
// passed to the next fragment.
func LayoutAt(root Node, file source.FileID, firstID NodeID, pos uint32) (NodeID, uint32) {
	firstID = max(firstID, 1)
	l := layouter{file: file, next: firstID - 1, pos: uint64(pos)}
	Walk(root, &l)
	return l.next + 1, l.span(l.pos, l.pos).Start
}

type layouter struct {
	file   source.FileID
	next   NodeID
	pos    uint64
	starts []uint64
}

func (l *layouter) Enter(n Node) bool {
	l.next++
	m := n.meta()
	m.ID = l.next
	if id, ok := n.(*Ident); ok {
		end := l.pos + uint64(max(len(id.Name), 1))
		m.Span = l.span(l.pos, end)
		l.pos = end + 1
		return true
	}
	l.starts = append(l.starts, l.pos)
	l.pos++
	return true
}

func (l *layouter) Leave(n Node) {
	if _, ok := n.(*Ident); ok {
		return
	}
	start := l.starts[len(l.starts)-1]
	l.starts = l.starts[:len(l.starts)-1]
	l.pos++
	n.meta().Span = l.span(start, l.pos)
	l.pos++
}

func (l *layouter) span(start, end uint64) source.Span {
	s, err := safecast.Conv[uint32](start)
	if err != nil {
		panic(fmt.Errorf("layout offset overflow: %w", err))
	}
	e, err := safecast.Conv[uint32](end)
	if err != nil {
		panic(fmt.Errorf("layout offset overflow: %w", err))
	}
	return source.Span{File: l.file, Start: s, End: e}
}

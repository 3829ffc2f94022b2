package hir

import (
	"fmt"

	"fortio.org/safecast"
)

// Assigner hands out item IDs for one package. IDs start at 1 and are never reused.
type Assigner struct {
	next uint64
}

// NewAssigner returns an assigner whose first item is 1.
func NewAssigner() *Assigner {
	return &Assigner{next: 1}
}

// NextItem allocates a fresh item ID.
func (a *Assigner) NextItem() LocalItemID {
	if a.next == 0 {
		a.next = 1
	}
	v, err := safecast.Conv[uint32](a.next)
	if err != nil {
		panic(fmt.Errorf("item ID overflow: %w", err))
	}
	a.next++
	return LocalItemID(v)
}

// Peek returns the ID the next call to NextItem will produce.
func (a *Assigner) Peek() LocalItemID {
	if a.next == 0 {
		return 1
	}
	return LocalItemID(a.next)
}

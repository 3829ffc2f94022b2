package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"qres/internal/ast"
	"qres/internal/source"
)

// CheckSpanInvariants runs a minimal set of span invariants on a registered
// package:
// 1) the package span is non-empty and, when the file has content, within its bounds
// 2) every node span belongs to sf and lies inside its parent's span
// 3) node IDs are set and unique
func CheckSpanInvariants(pkg *ast.Package, sf *source.File) error {
	if pkg == nil || sf == nil {
		return fmt.Errorf("nil package or file")
	}

	if pkg.Span.End <= pkg.Span.Start {
		return fmt.Errorf("package span is empty: %v", pkg.Span)
	}
	if len(sf.Content) > 0 {
		lenContent, err := safecast.Conv[uint32](len(sf.Content))
		if err != nil {
			return fmt.Errorf("len content overflow: %w", err)
		}
		if pkg.Span.End > lenContent {
			return fmt.Errorf("package span end beyond content: %d > %d", pkg.Span.End, lenContent)
		}
	}

	var (
		firstErr error
		parents  []source.Span
		seen     = make(map[ast.NodeID]struct{})
	)
	fail := func(format string, args ...any) bool {
		if firstErr == nil {
			firstErr = fmt.Errorf(format, args...)
		}
		return false
	}
	ast.Walk(pkg, ast.VisitorFuncs{
		EnterFn: func(n ast.Node) bool {
			if firstErr != nil {
				return false
			}
			id, sp := ast.IDOf(n), ast.SpanOf(n)
			if !id.IsValid() {
				return fail("node %T at %v has no ID", n, sp)
			}
			if _, dup := seen[id]; dup {
				return fail("duplicate node ID %d", id)
			}
			seen[id] = struct{}{}
			if sp.File != sf.ID {
				return fail("node %d span file mismatch: got=%d want=%d", id, sp.File, sf.ID)
			}
			if sp.End < sp.Start {
				return fail("node %d span is inverted: %v", id, sp)
			}
			if len(parents) > 0 {
				parent := parents[len(parents)-1]
				if sp.Start < parent.Start || sp.End > parent.End {
					return fail("node %d span %v is outside parent span %v", id, sp, parent)
				}
			}
			parents = append(parents, sp)
			return true
		},
		LeaveFn: func(ast.Node) {
			// после первой ошибки стек больше не нужен
			if firstErr == nil {
				parents = parents[:len(parents)-1]
			}
		},
	})
	return firstErr
}

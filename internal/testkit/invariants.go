// Package testkit holds invariant checks shared by tests and fuzz
// harnesses.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"hdrscan/internal/decl"
	"hdrscan/internal/source"
)

// CheckTreeInvariants runs the structural invariants every scanned tree
// must satisfy:
// 1) every declaration span is non-empty, in-bounds, and names sf
// 2) every struct member's span is contained in the struct's span
// 3) enum entry ordinals are the source-order indices
// The root namespace is implicit and carries no span of its own.
func CheckTreeInvariants(tree *decl.Tree, sf *source.File) error {
	if tree == nil || sf == nil {
		return fmt.Errorf("nil tree or file")
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}

	checkSpan := func(what string, sp source.Span) error {
		if sp.End <= sp.Start {
			return fmt.Errorf("%s has empty span: %v", what, sp)
		}
		if sp.File != sf.ID {
			return fmt.Errorf("%s span names file %d, want %d", what, sp.File, sf.ID)
		}
		if sp.End > lenContent {
			return fmt.Errorf("%s span end beyond content: %d > %d", what, sp.End, lenContent)
		}
		return nil
	}
	contains := func(outer, inner source.Span) bool {
		return inner.Start >= outer.Start && inner.End <= outer.End
	}

	var walkErr error
	decl.Walk(tree.Root, func(n decl.Node) bool {
		if walkErr != nil {
			return false
		}
		switch v := n.(type) {
		case *decl.Namespace:
			if v != tree.Root {
				walkErr = checkSpan("namespace "+v.Name, v.Span)
			}
		case *decl.Struct:
			if walkErr = checkSpan("struct "+v.Name, v.Span); walkErr != nil {
				return false
			}
			for _, m := range v.Members {
				var sp source.Span
				var what string
				switch mem := m.(type) {
				case *decl.Field:
					sp, what = mem.Span, "field "+mem.Name
				case *decl.Method:
					sp, what = mem.Span, "method "+mem.Name
				case *decl.Struct:
					sp, what = mem.Span, "nested struct "+mem.Name
				case *decl.Enum:
					sp, what = mem.Span, "nested enum "+mem.Name
				}
				if walkErr = checkSpan(what, sp); walkErr != nil {
					return false
				}
				if !contains(v.Span, sp) {
					walkErr = fmt.Errorf("%s span %v escapes struct %s span %v", what, sp, v.Name, v.Span)
					return false
				}
			}
		case *decl.Enum:
			if walkErr = checkSpan("enum "+v.Name, v.Span); walkErr != nil {
				return false
			}
			for i, e := range v.Entries {
				if e.Ordinal != i {
					walkErr = fmt.Errorf("enum %s entry %s has ordinal %d, want %d", v.Name, e.Name, e.Ordinal, i)
					return false
				}
			}
		case *decl.Method:
			walkErr = checkSpan("function "+v.Name, v.Span)
		}
		return walkErr == nil
	})
	return walkErr
}

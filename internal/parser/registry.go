package parser

import (
	"strconv"

	"schema-generator/internal/ident"
	"schema-generator/node"
)

// registry is the dedup registry: inferred type name to all previously
// seen nodes that claimed it. Entries stay keyed by the original,
// pre-rename name so later candidates are compared against the full
// history for that inferred name.
type registry map[string][]*node.Node

// checkAndAdjust collapses the candidate onto a structurally equal
// earlier node, or renames it deterministically when the collision is
// real.
//
// Renaming prefixes the parent type onto the inferred name and
// re-normalizes through the class name rules; if even that name is
// taken, a numeric suffix equal to the current entry count is
// appended and the node is flagged for manual review.
func (r registry) checkAndAdjust(n *node.Node, parentType string) {
	inferred := n.Type()

	entries, seen := r[inferred]
	if !seen {
		// primitives never declare a class, nothing to track
		if !n.IsPrimitiveType() {
			r[inferred] = []*node.Node{n}
		}

		return
	}

	for _, existing := range entries {
		if n.SameShape(existing) {
			n.AdoptTypeOf(existing)
			return
		}
	}

	n.Rename(ident.ClassName(parentType + inferred))

	for _, existing := range entries {
		if existing.Type() == n.Type() {
			n.Rename(n.Type() + strconv.Itoa(len(entries)))
			n.NeedsAdjustment = true

			break
		}
	}

	r[inferred] = append(r[inferred], n)
}

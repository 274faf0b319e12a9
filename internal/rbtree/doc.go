// Package rbtree implements the augmented red-black tree that backs a
// piece tree: an in-order sequence of Nodes, each owning one Piece,
// whose in-order position is never stored as a key but reconstructed
// from two augmented per-node fields — left_len and
// left_line_feed_count — the running totals of the node's left
// subtree. This makes offset-keyed and line-keyed lookups logarithmic
// without needing to store an absolute position on every node (which
// would otherwise have to shift on every edit).
//
// Every rotation re-derives the pivot's new parent's augmented totals
// in O(1) from the two subtrees already involved in the rotation; as a
// belt-and-suspenders correctness check, every public mutation also
// ends with a single bottom-up RecomputeFrom pass that recomputes
// left_len/left_line_feed_count for the mutated node and each of its
// ancestors directly from their (by-then-correct) children. The second
// pass costs a little extra work but means a mistake in the O(1)
// rotation arithmetic can never leave the tree's augmented invariant
// broken — see DESIGN.md.
package rbtree

package rbtree

import "github.com/inkwell-editor/piecetree/internal/piece"

type color bool

const (
	red   color = true
	black color = false
)

// BufferKind tags which of the two buffers a Node's Piece is resolved
// against. rbtree never touches buffer content itself; it only carries
// the tag so callers (the piecetree façade) know which Buffer to hand
// to piece.Text/piece.Split.
type BufferKind uint8

const (
	Original BufferKind = iota
	Changed
)

// Node is one entry in the piece tree's in-order sequence. Piece and
// Buf are the only fields callers outside this package ever touch;
// the rest is red-black bookkeeping.
type Node struct {
	Piece piece.Piece
	Buf   BufferKind

	left, right, parent *Node
	col                  color

	// leftLen and leftLineFeedCount are the running totals (grapheme
	// length, line-feed count) of this node's entire left subtree.
	// They are the augmentation that makes offset/line search
	// logarithmic without storing an absolute position on any node.
	leftLen           uint32
	leftLineFeedCount uint32
}

func colorOf(n *Node) color {
	if n == nil {
		return black
	}
	return n.col
}

func setColor(n *Node, c color) {
	if n != nil {
		n.col = c
	}
}

func minimum(n *Node) *Node {
	for n.left != nil {
		n = n.left
	}
	return n
}

func maximum(n *Node) *Node {
	for n.right != nil {
		n = n.right
	}
	return n
}

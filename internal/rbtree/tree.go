package rbtree

// Tree is an augmented red-black tree of Nodes, ordered by implicit
// in-order document position (never stored explicitly — see doc.go).
type Tree struct {
	root  *Node
	count int
}

// IsEmpty reports whether the tree holds no nodes.
func (t *Tree) IsEmpty() bool {
	return t.root == nil
}

// NodeCount returns the number of nodes currently in the tree.
func (t *Tree) NodeCount() int {
	return t.count
}

// Clear empties the tree.
func (t *Tree) Clear() {
	t.root = nil
	t.count = 0
}

// subtreeTotal returns the (length, line-feed-count) totals of the
// subtree rooted at n, by walking n's right spine and summing each
// visited node's own left subtree total plus its own piece. Every
// node visited along the way already carries a correct leftLen /
// leftLineFeedCount, so this is O(height) rather than O(size).
func subtreeTotal(n *Node) (uint32, uint32) {
	var length, lfc uint32
	for n != nil {
		length += n.leftLen + n.Piece.Len
		lfc += n.leftLineFeedCount + n.Piece.LineFeedCount
		n = n.right
	}
	return length, lfc
}

// Length returns the total grapheme length of the whole tree.
func (t *Tree) Length() uint32 {
	l, _ := subtreeTotal(t.root)
	return l
}

// LineFeedCount returns the total number of line terminators in the
// whole tree.
func (t *Tree) LineFeedCount() uint32 {
	_, lfc := subtreeTotal(t.root)
	return lfc
}

// RecomputeFrom recomputes leftLen/leftLineFeedCount for n and every
// ancestor of n, each directly from its (by then correct) children.
// Call this after mutating a node's Piece in place, after splicing
// nodes in or out of the tree, or as a safety net after any sequence
// of rotations. It is idempotent: calling it when nothing actually
// changed just reconfirms the existing values.
func (t *Tree) RecomputeFrom(n *Node) {
	for n != nil {
		l, lfc := subtreeTotal(n.left)
		n.leftLen = l
		n.leftLineFeedCount = lfc
		n = n.parent
	}
}

// Predecessor returns n's in-order predecessor, or nil if n is first.
func (t *Tree) Predecessor(n *Node) *Node {
	if n == nil {
		return nil
	}
	if n.left != nil {
		return maximum(n.left)
	}
	p := n.parent
	for p != nil && n == p.left {
		n = p
		p = p.parent
	}
	return p
}

// Successor returns n's in-order successor, or nil if n is last.
func (t *Tree) Successor(n *Node) *Node {
	if n == nil {
		return nil
	}
	if n.right != nil {
		return minimum(n.right)
	}
	p := n.parent
	for p != nil && n == p.right {
		n = p
		p = p.parent
	}
	return p
}

// Maximum returns the last node in-order, or nil if the tree is empty.
func (t *Tree) Maximum() *Node {
	if t.root == nil {
		return nil
	}
	return maximum(t.root)
}

// Minimum returns the first node in-order, or nil if the tree is empty.
func (t *Tree) Minimum() *Node {
	if t.root == nil {
		return nil
	}
	return minimum(t.root)
}

// Walk visits every node in-order.
func (t *Tree) Walk(fn func(*Node)) {
	var visit func(*Node)
	visit = func(n *Node) {
		if n == nil {
			return
		}
		visit(n.left)
		fn(n)
		visit(n.right)
	}
	visit(t.root)
}

// NodeAt locates the node whose piece contains document offset
// (grapheme-indexed). It returns the node, the offset's remainder
// within that node's piece, and the node's own starting offset. If
// offset addresses the position one past the end of the document it
// returns (nil, 0, total length).
func (t *Tree) NodeAt(offset uint32) (node *Node, remainder uint32, nodeStart uint32) {
	n := t.root
	var acc uint32
	for n != nil {
		if offset < n.leftLen {
			n = n.left
			continue
		}
		if offset < n.leftLen+n.Piece.Len {
			return n, offset - n.leftLen, acc + n.leftLen
		}
		offset -= n.leftLen + n.Piece.Len
		acc += n.leftLen + n.Piece.Len
		n = n.right
	}
	return nil, 0, acc
}

// NodeAtLineFeed locates the node containing the lineFeedIndex'th line
// terminator (1-indexed: the first terminator in the document is
// index 1). It returns the node, the target terminator's 1-based
// position among the terminators of that node's own piece, the node's
// starting document offset,
// and the node's starting line-feed index (terminators strictly
// before this node). If lineFeedIndex exceeds the document's total
// terminator count it returns a nil node along with the accumulated
// totals.
func (t *Tree) NodeAtLineFeed(lineFeedIndex uint32) (node *Node, remainder uint32, nodeStart uint32, lfStart uint32) {
	n := t.root
	var accOffset, accLF uint32
	for n != nil {
		if lineFeedIndex <= n.leftLineFeedCount {
			n = n.left
			continue
		}
		if lineFeedIndex <= n.leftLineFeedCount+n.Piece.LineFeedCount {
			return n, lineFeedIndex - n.leftLineFeedCount, accOffset + n.leftLen, accLF + n.leftLineFeedCount
		}
		lineFeedIndex -= n.leftLineFeedCount + n.Piece.LineFeedCount
		accOffset += n.leftLen + n.Piece.Len
		accLF += n.leftLineFeedCount + n.Piece.LineFeedCount
		n = n.right
	}
	return nil, 0, accOffset, accLF
}

// rotateLeft and rotateRight keep the augmented fields correct in O(1)
// using only the subtree totals already involved in the rotation: only
// the node whose left subtree changes gets new totals. A RecomputeFrom
// call after the surrounding
// operation reconfirms these values regardless.

func (t *Tree) rotateLeft(x *Node) {
	y := x.right
	x.right = y.left
	if y.left != nil {
		y.left.parent = x
	}
	y.parent = x.parent
	if x.parent == nil {
		t.root = y
	} else if x == x.parent.left {
		x.parent.left = y
	} else {
		x.parent.right = y
	}

	y.leftLen = x.leftLen + x.Piece.Len + y.leftLen
	y.leftLineFeedCount = x.leftLineFeedCount + x.Piece.LineFeedCount + y.leftLineFeedCount

	y.left = x
	x.parent = y
}

func (t *Tree) rotateRight(x *Node) {
	y := x.left
	x.left = y.right
	if y.right != nil {
		y.right.parent = x
	}
	y.parent = x.parent
	if x.parent == nil {
		t.root = y
	} else if x == x.parent.right {
		x.parent.right = y
	} else {
		x.parent.left = y
	}

	x.leftLen = x.leftLen - y.leftLen - y.Piece.Len
	x.leftLineFeedCount = x.leftLineFeedCount - y.leftLineFeedCount - y.Piece.LineFeedCount

	y.right = x
	x.parent = y
}

// InsertRoot makes fresh the sole node of an empty tree.
func (t *Tree) InsertRoot(fresh *Node) {
	fresh.col = black
	fresh.parent, fresh.left, fresh.right = nil, nil, nil
	fresh.leftLen, fresh.leftLineFeedCount = 0, 0
	t.root = fresh
	t.count = 1
}

// InsertBefore attaches fresh immediately before n in-order: as the
// right child of n's in-order predecessor within n's own left
// subtree if n has one (that predecessor, being the rightmost node of
// that subtree, is guaranteed to have no right child), else directly
// as n's left child.
func (t *Tree) InsertBefore(n *Node, fresh *Node) {
	fresh.col = red
	fresh.left, fresh.right = nil, nil
	if n.left == nil {
		n.left = fresh
		fresh.parent = n
	} else {
		pred := maximum(n.left)
		pred.right = fresh
		fresh.parent = pred
	}
	t.afterAttach(fresh)
}

// InsertAfter attaches fresh immediately after n in-order, symmetric
// to InsertBefore.
func (t *Tree) InsertAfter(n *Node, fresh *Node) {
	fresh.col = red
	fresh.left, fresh.right = nil, nil
	if n.right == nil {
		n.right = fresh
		fresh.parent = n
	} else {
		succ := minimum(n.right)
		succ.left = fresh
		fresh.parent = succ
	}
	t.afterAttach(fresh)
}

func (t *Tree) afterAttach(fresh *Node) {
	t.fixupInsert(fresh)
	t.RecomputeFrom(fresh)
	t.count++
}

func (t *Tree) fixupInsert(z *Node) {
	for z.parent != nil && z.parent.col == red {
		gp := z.parent.parent
		if gp == nil {
			break
		}
		if z.parent == gp.left {
			y := gp.right
			if colorOf(y) == red {
				z.parent.col = black
				y.col = black
				gp.col = red
				z = gp
			} else {
				if z == z.parent.right {
					z = z.parent
					t.rotateLeft(z)
				}
				z.parent.col = black
				gp.col = red
				t.rotateRight(gp)
			}
		} else {
			y := gp.left
			if colorOf(y) == red {
				z.parent.col = black
				y.col = black
				gp.col = red
				z = gp
			} else {
				if z == z.parent.left {
					z = z.parent
					t.rotateRight(z)
				}
				z.parent.col = black
				gp.col = red
				t.rotateLeft(gp)
			}
		}
	}
	t.root.col = black
}

func (t *Tree) transplant(u, v *Node) {
	if u.parent == nil {
		t.root = v
	} else if u == u.parent.left {
		u.parent.left = v
	} else {
		u.parent.right = v
	}
	if v != nil {
		v.parent = u.parent
	}
}

// Remove deletes z from the tree entirely.
func (t *Tree) Remove(z *Node) {
	y := z
	yOriginalColor := y.col
	var x, xParent *Node

	switch {
	case z.left == nil:
		x = z.right
		xParent = z.parent
		t.transplant(z, z.right)
	case z.right == nil:
		x = z.left
		xParent = z.parent
		t.transplant(z, z.left)
	default:
		y = minimum(z.right)
		yOriginalColor = y.col
		x = y.right
		if y.parent == z {
			xParent = y
		} else {
			xParent = y.parent
			t.transplant(y, y.right)
			y.right = z.right
			y.right.parent = y
		}
		t.transplant(z, y)
		y.left = z.left
		y.left.parent = y
		y.col = z.col
	}

	if yOriginalColor == black {
		t.fixupDelete(x, xParent)
	}

	t.RecomputeFrom(xParent)
	t.count--
}

func (t *Tree) fixupDelete(x, parent *Node) {
	for x != t.root && colorOf(x) == black && parent != nil {
		if x == parent.left {
			w := parent.right
			if colorOf(w) == red {
				setColor(w, black)
				setColor(parent, red)
				t.rotateLeft(parent)
				w = parent.right
			}
			if colorOf(w.left) == black && colorOf(w.right) == black {
				setColor(w, red)
				x = parent
				parent = x.parent
			} else {
				if colorOf(w.right) == black {
					setColor(w.left, black)
					setColor(w, red)
					t.rotateRight(w)
					w = parent.right
				}
				setColor(w, colorOf(parent))
				setColor(parent, black)
				setColor(w.right, black)
				t.rotateLeft(parent)
				x = t.root
				parent = nil
			}
		} else {
			w := parent.left
			if colorOf(w) == red {
				setColor(w, black)
				setColor(parent, red)
				t.rotateRight(parent)
				w = parent.left
			}
			if colorOf(w.right) == black && colorOf(w.left) == black {
				setColor(w, red)
				x = parent
				parent = x.parent
			} else {
				if colorOf(w.left) == black {
					setColor(w.right, black)
					setColor(w, red)
					t.rotateLeft(w)
					w = parent.left
				}
				setColor(w, colorOf(parent))
				setColor(parent, black)
				setColor(w.left, black)
				t.rotateRight(parent)
				x = t.root
				parent = nil
			}
		}
	}
	setColor(x, black)
}

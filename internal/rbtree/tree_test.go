package rbtree

import (
	"testing"

	"github.com/inkwell-editor/piecetree/internal/linebuffer"
	"github.com/inkwell-editor/piecetree/internal/piece"
)

func newLeafPiece(buf *linebuffer.Buffer, s, e int) piece.Piece {
	return piece.New(buf, buf.CursorAt(s), buf.CursorAt(e))
}

// checkInvariants walks every root-to-leaf path and fails the test if they
// don't all carry the same number of black nodes, or if any red node
// has a red child, or if the root isn't black.
func checkInvariants(t *testing.T, tr *Tree) {
	t.Helper()
	if tr.root == nil {
		return
	}
	if tr.root.col != black {
		t.Fatalf("root is not black")
	}
	var walk func(n *Node) int
	walk = func(n *Node) int {
		if n == nil {
			return 1
		}
		if n.col == red {
			if colorOf(n.left) == red || colorOf(n.right) == red {
				t.Fatalf("red node %v has a red child", n.Piece)
			}
		}
		lh := walk(n.left)
		rh := walk(n.right)
		if lh != rh {
			t.Fatalf("black height mismatch at node %v: left=%d right=%d", n.Piece, lh, rh)
		}
		if n.col == black {
			return lh + 1
		}
		return lh
	}
	walk(tr.root)
}

// checkAugmented recomputes leftLen/leftLineFeedCount from scratch via
// a plain recursive walk and compares against the stored fields.
func checkAugmented(t *testing.T, tr *Tree) {
	t.Helper()
	var total func(n *Node) (uint32, uint32)
	total = func(n *Node) (uint32, uint32) {
		if n == nil {
			return 0, 0
		}
		ll, llfc := total(n.left)
		rl, rlfc := total(n.right)
		if ll != n.leftLen || llfc != n.leftLineFeedCount {
			t.Fatalf("node %v: leftLen=%d want %d, leftLineFeedCount=%d want %d",
				n.Piece, n.leftLen, ll, n.leftLineFeedCount, llfc)
		}
		return ll + n.Piece.Len + rl, llfc + n.Piece.LineFeedCount + rlfc
	}
	total(tr.root)
}

func inOrderText(tr *Tree, buf *linebuffer.Buffer) string {
	s := ""
	tr.Walk(func(n *Node) {
		s += piece.Text(buf, n.Piece)
	})
	return s
}

func TestInsertBuildsCorrectSequence(t *testing.T) {
	buf := linebuffer.New("abcdefghijklmnop")
	tr := &Tree{}

	root := &Node{Piece: newLeafPiece(buf, 0, 1), Buf: Original}
	tr.InsertRoot(root)

	for i := 1; i < 16; i++ {
		n := &Node{Piece: newLeafPiece(buf, i, i+1), Buf: Original}
		tr.InsertAfter(tr.Maximum(), n)
		checkInvariants(t, tr)
		checkAugmented(t, tr)
	}

	if got := inOrderText(tr, buf); got != "abcdefghijklmnop" {
		t.Fatalf("in-order text = %q", got)
	}
	if tr.Length() != 16 {
		t.Fatalf("Length() = %d, want 16", tr.Length())
	}
	if tr.NodeCount() != 16 {
		t.Fatalf("NodeCount() = %d, want 16", tr.NodeCount())
	}
}

func TestInsertBeforeBuildsReverseSequence(t *testing.T) {
	buf := linebuffer.New("abcdefgh")
	tr := &Tree{}

	root := &Node{Piece: newLeafPiece(buf, 7, 8), Buf: Original}
	tr.InsertRoot(root)

	for i := 6; i >= 0; i-- {
		n := &Node{Piece: newLeafPiece(buf, i, i+1), Buf: Original}
		tr.InsertBefore(tr.Minimum(), n)
		checkInvariants(t, tr)
		checkAugmented(t, tr)
	}

	if got := inOrderText(tr, buf); got != "abcdefgh" {
		t.Fatalf("in-order text = %q", got)
	}
}

func TestNodeAtFindsCorrectPieceAndRemainder(t *testing.T) {
	buf := linebuffer.New("abcdefghij")
	tr := &Tree{}
	root := &Node{Piece: newLeafPiece(buf, 0, 3), Buf: Original} // "abc"
	tr.InsertRoot(root)
	tr.InsertAfter(root, &Node{Piece: newLeafPiece(buf, 3, 6), Buf: Original})  // "def"
	tr.InsertAfter(tr.Maximum(), &Node{Piece: newLeafPiece(buf, 6, 10), Buf: Original}) // "ghij"

	cases := []struct {
		offset            uint32
		wantText          string
		wantRemainder     uint32
		wantNodeStart     uint32
	}{
		{0, "abc", 0, 0},
		{2, "abc", 2, 0},
		{3, "def", 0, 3},
		{5, "def", 2, 3},
		{6, "ghij", 0, 6},
		{9, "ghij", 3, 6},
	}
	for _, c := range cases {
		node, remainder, nodeStart := tr.NodeAt(c.offset)
		if node == nil {
			t.Fatalf("NodeAt(%d): nil node", c.offset)
		}
		if got := piece.Text(buf, node.Piece); got != c.wantText {
			t.Errorf("NodeAt(%d): piece text = %q, want %q", c.offset, got, c.wantText)
		}
		if remainder != c.wantRemainder {
			t.Errorf("NodeAt(%d): remainder = %d, want %d", c.offset, remainder, c.wantRemainder)
		}
		if nodeStart != c.wantNodeStart {
			t.Errorf("NodeAt(%d): nodeStart = %d, want %d", c.offset, nodeStart, c.wantNodeStart)
		}
	}

	if node, _, nodeStart := tr.NodeAt(10); node != nil || nodeStart != 10 {
		t.Errorf("NodeAt(len) = %v, %d; want nil, 10", node, nodeStart)
	}
}

func TestRemoveMaintainsInvariantsAndSequence(t *testing.T) {
	buf := linebuffer.New("0123456789")
	tr := &Tree{}
	nodes := make([]*Node, 10)
	root := &Node{Piece: newLeafPiece(buf, 0, 1), Buf: Original}
	tr.InsertRoot(root)
	nodes[0] = root
	for i := 1; i < 10; i++ {
		n := &Node{Piece: newLeafPiece(buf, i, i+1), Buf: Original}
		tr.InsertAfter(tr.Maximum(), n)
		nodes[i] = n
	}

	// Remove every other node: 1, 3, 5, 7, 9.
	for i := 1; i < 10; i += 2 {
		tr.Remove(nodes[i])
		checkInvariants(t, tr)
		checkAugmented(t, tr)
	}

	if got := inOrderText(tr, buf); got != "02468" {
		t.Fatalf("in-order text after removal = %q, want 02468", got)
	}
	if tr.NodeCount() != 5 {
		t.Fatalf("NodeCount() = %d, want 5", tr.NodeCount())
	}
	if tr.Length() != 5 {
		t.Fatalf("Length() = %d, want 5", tr.Length())
	}
}

func TestRemoveToEmpty(t *testing.T) {
	buf := linebuffer.New("ab")
	tr := &Tree{}
	root := &Node{Piece: newLeafPiece(buf, 0, 1), Buf: Original}
	tr.InsertRoot(root)
	second := &Node{Piece: newLeafPiece(buf, 1, 2), Buf: Original}
	tr.InsertAfter(root, second)

	tr.Remove(second)
	tr.Remove(root)

	if !tr.IsEmpty() {
		t.Fatalf("tree should be empty")
	}
	if tr.NodeCount() != 0 {
		t.Fatalf("NodeCount() = %d, want 0", tr.NodeCount())
	}
	if tr.Length() != 0 {
		t.Fatalf("Length() = %d, want 0", tr.Length())
	}
}

func TestNodeAtLineFeedLocatesLineBoundaries(t *testing.T) {
	buf := linebuffer.New("a\nb\nc\nd")
	tr := &Tree{}
	// Split into two pieces: "a\nb\n" and "c\nd".
	root := &Node{Piece: newLeafPiece(buf, 0, 4), Buf: Original}
	tr.InsertRoot(root)
	tr.InsertAfter(root, &Node{Piece: newLeafPiece(buf, 4, 7), Buf: Original})

	node, remainder, nodeStart, lfStart := tr.NodeAtLineFeed(1)
	if node == nil || piece.Text(buf, node.Piece) != "a\nb\n" {
		t.Fatalf("NodeAtLineFeed(1): got node text %v", node)
	}
	if remainder != 1 || nodeStart != 0 || lfStart != 0 {
		t.Fatalf("NodeAtLineFeed(1): remainder=%d nodeStart=%d lfStart=%d", remainder, nodeStart, lfStart)
	}

	node, remainder, nodeStart, lfStart = tr.NodeAtLineFeed(3)
	if node == nil || piece.Text(buf, node.Piece) != "c\nd" {
		t.Fatalf("NodeAtLineFeed(3): got node text %v", node)
	}
	if remainder != 1 || nodeStart != 4 || lfStart != 2 {
		t.Fatalf("NodeAtLineFeed(3): remainder=%d nodeStart=%d lfStart=%d", remainder, nodeStart, lfStart)
	}
}

func TestRecomputeFromAfterInPlacePieceEdit(t *testing.T) {
	buf := linebuffer.New("abcdef")
	tr := &Tree{}
	root := &Node{Piece: newLeafPiece(buf, 0, 3), Buf: Original}
	tr.InsertRoot(root)
	tail := &Node{Piece: newLeafPiece(buf, 3, 6), Buf: Original}
	tr.InsertAfter(root, tail)

	root.Piece = newLeafPiece(buf, 0, 1) // shrink "abc" down to "a"
	tr.RecomputeFrom(root)
	checkAugmented(t, tr)

	if tr.Length() != 4 { // "a" + "def"
		t.Fatalf("Length() = %d, want 4", tr.Length())
	}
	node, _, nodeStart := tr.NodeAt(1)
	if piece.Text(buf, node.Piece) != "def" || nodeStart != 1 {
		t.Fatalf("NodeAt(1) after shrink: text=%q nodeStart=%d", piece.Text(buf, node.Piece), nodeStart)
	}
}

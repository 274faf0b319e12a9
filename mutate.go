package piecetree

import (
	"strings"

	"github.com/inkwell-editor/piecetree/internal/linebuffer"
	"github.com/inkwell-editor/piecetree/internal/piece"
	"github.com/inkwell-editor/piecetree/internal/rbtree"
)

// Insert splices value into the document at the given grapheme offset.
// offset must be in [0, Length()]; inserting at Length() appends.
func (tb *TextBuffer) Insert(offset uint32, value string) error {
	if value == "" {
		return nil
	}
	tb.mu.Lock()
	defer tb.mu.Unlock()

	total := tb.tree.Length()
	if offset > total {
		return ErrOffsetOutOfRange
	}
	if strings.ContainsRune(value, '\r') {
		tb.info.SawCR = true
	}

	if tb.tree.IsEmpty() {
		p := tb.appendToChanged(value)
		tb.tree.InsertRoot(&rbtree.Node{Piece: p, Buf: rbtree.Changed})
		return nil
	}

	node, remainder, _ := tb.locate(offset)
	if node == nil {
		node = tb.tree.Maximum()
		remainder = node.Piece.Len
	}

	switch {
	case remainder == node.Piece.Len && tb.isAppendTarget(node):
		tb.insertAppend(node, value)
	case remainder == 0:
		tb.insertBeforeNode(node, value)
	case remainder == node.Piece.Len:
		tb.insertAfterNode(node, value)
	default:
		tb.insertMiddle(node, remainder, value)
	}

	tb.cache.InvalidateFrom(offset)
	return nil
}

// Delete removes count graphemes starting at offset.
func (tb *TextBuffer) Delete(offset, count uint32) error {
	if count == 0 {
		return nil
	}
	tb.mu.Lock()
	defer tb.mu.Unlock()

	total := tb.tree.Length()
	end := offset + count
	if offset > total || end > total {
		return ErrOffsetOutOfRange
	}

	type overlap struct {
		node  *rbtree.Node
		start uint32
	}
	var overlaps []overlap
	var acc uint32
	tb.tree.Walk(func(n *rbtree.Node) {
		pieceStart := acc
		pieceEnd := acc + n.Piece.Len
		acc = pieceEnd
		if pieceEnd <= offset || pieceStart >= end {
			return
		}
		overlaps = append(overlaps, overlap{n, pieceStart})
	})

	for _, ov := range overlaps {
		node := ov.node
		pieceEnd := ov.start + node.Piece.Len
		delStart := maxU32(offset, ov.start)
		delEnd := minU32(end, pieceEnd)
		localStart := delStart - ov.start
		localEnd := delEnd - ov.start
		buf := tb.bufferFor(node.Buf)

		switch {
		case localStart == 0 && localEnd == node.Piece.Len:
			tb.tree.Remove(node)
		case localStart == 0:
			_, right := piece.Split(buf, node.Piece, localEnd)
			node.Piece = right
			tb.tree.RecomputeFrom(node)
		case localEnd == node.Piece.Len:
			left, _ := piece.Split(buf, node.Piece, localStart)
			node.Piece = left
			tb.tree.RecomputeFrom(node)
		default:
			left, rest := piece.Split(buf, node.Piece, localStart)
			_, right := piece.Split(buf, rest, localEnd-localStart)
			node.Piece = left
			tb.tree.RecomputeFrom(node)
			if !right.IsEmpty() {
				tb.tree.InsertAfter(node, &rbtree.Node{Piece: right, Buf: node.Buf})
			}
		}
	}

	tb.cache.InvalidateFrom(offset)
	if !tb.info.SkipCRLFRepair() {
		tb.repairCRLFAroundOffset(offset)
	}
	return nil
}

// locate resolves offset to a node via the search cache, falling back
// to a tree descent and populating the cache on a miss.
func (tb *TextBuffer) locate(offset uint32) (*rbtree.Node, uint32, uint32) {
	if n, start, ok := tb.cache.Lookup(offset); ok {
		node := n.(*rbtree.Node)
		return node, offset - start, start
	}
	node, remainder, nodeStart := tb.tree.NodeAt(offset)
	if node != nil {
		tb.cache.Store(nodeStart, node, node.Piece.Len)
	}
	return node, remainder, nodeStart
}

// isAppendTarget reports whether node is the piece most recently
// extended by an insert, i.e. appending again can just grow it in
// place instead of allocating a new piece and tree node.
func (tb *TextBuffer) isAppendTarget(node *rbtree.Node) bool {
	return node.Buf == rbtree.Changed && node.Piece.End == tb.lastChange
}

// appendToChanged grows the Changed buffer by value and returns a
// fresh Piece over the bytes just appended.
func (tb *TextBuffer) appendToChanged(value string) piece.Piece {
	if tb.changed == nil {
		tb.changed = linebuffer.New("")
	}
	start := tb.changed.EndCursor()
	tb.changed.Append(value)
	end := tb.changed.EndCursor()
	tb.lastChange = end
	return piece.New(tb.changed, start, end)
}

// attachAfter inserts fresh immediately after pred's in-order
// position, or at the very start of the tree if pred is nil.
func (tb *TextBuffer) attachAfter(pred *rbtree.Node, fresh *rbtree.Node) {
	if pred == nil {
		if tb.tree.IsEmpty() {
			tb.tree.InsertRoot(fresh)
		} else {
			tb.tree.InsertBefore(tb.tree.Minimum(), fresh)
		}
		return
	}
	tb.tree.InsertAfter(pred, fresh)
}

// insertAppend grows node's own piece by value, the fast path for
// repeated typing at the same cursor position. Since node's piece
// already ends exactly at the Changed buffer's current end, the new
// bytes land contiguously and no new node is needed. A value starting
// with '\n' right after the piece's trailing '\r' goes through
// insertAfterNode instead, whose boundary repair moves that '\r' onto
// the new text.
func (tb *TextBuffer) insertAppend(node *rbtree.Node, value string) {
	if !tb.info.SkipCRLFRepair() && strings.HasPrefix(value, "\n") {
		if b, ok := tb.lastByte(node.Buf, node.Piece); ok && b == '\r' {
			tb.insertAfterNode(node, value)
			return
		}
	}
	p := tb.appendToChanged(value)
	node.Piece = piece.New(tb.changed, node.Piece.Start, p.End)
	tb.tree.RecomputeFrom(node)
}

// insertBeforeNode inserts value as a brand-new node immediately
// before node in document order.
func (tb *TextBuffer) insertBeforeNode(node *rbtree.Node, value string) {
	pred := tb.tree.Predecessor(node)
	succ := tb.tree.Successor(node)
	value = tb.repairLeftBoundary(pred, value)
	nodeLen := node.Piece.Len
	repaired := tb.repairRightBoundary(value, node)
	nodeRemoved := nodeLen <= 1 && len(repaired) != len(value)
	p := tb.appendToChanged(repaired)
	fresh := &rbtree.Node{Piece: p, Buf: rbtree.Changed}
	switch {
	case !nodeRemoved:
		tb.tree.InsertBefore(node, fresh)
	case succ != nil:
		tb.tree.InsertBefore(succ, fresh)
	default:
		tb.attachAfter(tb.tree.Maximum(), fresh)
	}
}

// insertAfterNode inserts value as a brand-new node immediately after
// node in document order.
func (tb *TextBuffer) insertAfterNode(node *rbtree.Node, value string) {
	succ := tb.tree.Successor(node)
	pred := tb.tree.Predecessor(node)
	nodeLen := node.Piece.Len
	repaired := tb.repairLeftBoundary(node, value)
	nodeRemoved := nodeLen <= 1 && len(repaired) != len(value)
	value = tb.repairRightBoundary(repaired, succ)
	p := tb.appendToChanged(value)
	fresh := &rbtree.Node{Piece: p, Buf: rbtree.Changed}
	if nodeRemoved {
		tb.attachAfter(pred, fresh)
		return
	}
	tb.tree.InsertAfter(node, fresh)
}

// insertMiddle splits node's piece at localOffset and inserts value
// between the two resulting fragments.
func (tb *TextBuffer) insertMiddle(node *rbtree.Node, localOffset uint32, value string) {
	buf := tb.bufferFor(node.Buf)
	left, right := piece.Split(buf, node.Piece, localOffset)

	skipRepair := tb.info.SkipCRLFRepair()
	leftEmptied := false
	if !skipRepair && strings.HasPrefix(value, "\n") {
		if b, ok := tb.lastByte(node.Buf, left); ok && b == '\r' {
			left, leftEmptied = trimPieceEnd(buf, left)
			value = "\r" + value
		}
	}
	rightEmptied := false
	if !skipRepair && strings.HasSuffix(value, "\r") {
		if b, ok := tb.firstByte(node.Buf, right); ok && b == '\n' {
			right, rightEmptied = trimPieceStart(buf, right)
			value = value + "\n"
		}
	}

	p := tb.appendToChanged(value)
	mid := &rbtree.Node{Piece: p, Buf: rbtree.Changed}

	if leftEmptied {
		pred := tb.tree.Predecessor(node)
		tb.tree.Remove(node)
		tb.attachAfter(pred, mid)
	} else {
		node.Piece = left
		tb.tree.RecomputeFrom(node)
		tb.tree.InsertAfter(node, mid)
	}
	if !rightEmptied && !right.IsEmpty() {
		tb.tree.InsertAfter(mid, &rbtree.Node{Piece: right, Buf: node.Buf})
	}
}

// repairLeftBoundary guards against a fresh '\n' landing right after
// a '\r' that pred's piece already claims, which would otherwise split
// one CRLF pair across two pieces (and two buffer regions written in
// separate Append calls). When that would happen, pred gives up its
// trailing '\r' and a fresh copy is prepended to value instead.
func (tb *TextBuffer) repairLeftBoundary(pred *rbtree.Node, value string) string {
	if pred == nil || tb.info.SkipCRLFRepair() || !strings.HasPrefix(value, "\n") {
		return value
	}
	if b, ok := tb.lastByte(pred.Buf, pred.Piece); ok && b == '\r' {
		tb.shrinkNodeFromEnd(pred)
		return "\r" + value
	}
	return value
}

// repairRightBoundary is the mirror of repairLeftBoundary: it guards
// against value ending in '\r' right before a '\n' that succ's piece
// already claims.
func (tb *TextBuffer) repairRightBoundary(value string, succ *rbtree.Node) string {
	if succ == nil || tb.info.SkipCRLFRepair() || !strings.HasSuffix(value, "\r") {
		return value
	}
	if b, ok := tb.firstByte(succ.Buf, succ.Piece); ok && b == '\n' {
		tb.shrinkNodeFromStart(succ)
		return value + "\n"
	}
	return value
}

// repairCRLFAroundOffset is repairLeftBoundary/repairRightBoundary's
// counterpart for delete: removing a range can bring a piece ending in
// '\r' directly against a piece starting with '\n' that were never
// adjacent before. When that happens the two bytes are merged into one
// fresh two-byte piece so line counting and future deletes see them as
// the single CRLF terminator they represent.
func (tb *TextBuffer) repairCRLFAroundOffset(at uint32) {
	if tb.tree.IsEmpty() {
		return
	}
	succ, remainder, succStart := tb.tree.NodeAt(at)
	if succ == nil || remainder != 0 || succStart != at {
		return
	}
	pred := tb.tree.Predecessor(succ)
	if pred == nil {
		return
	}
	lb, ok := tb.lastByte(pred.Buf, pred.Piece)
	if !ok || lb != '\r' {
		return
	}
	fb, ok := tb.firstByte(succ.Buf, succ.Piece)
	if !ok || fb != '\n' {
		return
	}

	predPred := tb.tree.Predecessor(pred)
	predRemoved := tb.shrinkNodeFromEnd(pred)
	tb.shrinkNodeFromStart(succ)

	p := tb.appendToChanged("\r\n")
	mid := &rbtree.Node{Piece: p, Buf: rbtree.Changed}
	if predRemoved {
		tb.attachAfter(predPred, mid)
	} else {
		tb.tree.InsertAfter(pred, mid)
	}
}

// lastByte and firstByte resolve a piece's boundary byte directly
// against its buffer's line-start table rather than materializing the
// whole piece text, since pieces can span an entire loaded file.
func (tb *TextBuffer) lastByte(bk rbtree.BufferKind, p piece.Piece) (byte, bool) {
	if p.IsEmpty() {
		return 0, false
	}
	buf := tb.bufferFor(bk)
	end := buf.Offset(p.End)
	return buf.Slice(end-1, end)[0], true
}

func (tb *TextBuffer) firstByte(bk rbtree.BufferKind, p piece.Piece) (byte, bool) {
	if p.IsEmpty() {
		return 0, false
	}
	buf := tb.bufferFor(bk)
	start := buf.Offset(p.Start)
	return buf.Slice(start, start+1)[0], true
}

// shrinkNodeFromEnd drops node's piece's trailing grapheme. If that
// was the piece's only grapheme, the node is removed from the tree
// entirely and true is returned; otherwise node.Piece is updated in
// place and false is returned.
func (tb *TextBuffer) shrinkNodeFromEnd(node *rbtree.Node) (removed bool) {
	if node.Piece.Len <= 1 {
		tb.tree.Remove(node)
		return true
	}
	buf := tb.bufferFor(node.Buf)
	newEnd := buf.Offset(node.Piece.End) - 1
	node.Piece = piece.New(buf, node.Piece.Start, buf.CursorAt(newEnd))
	tb.tree.RecomputeFrom(node)
	return false
}

// shrinkNodeFromStart is shrinkNodeFromEnd's mirror, dropping node's
// piece's leading grapheme instead.
func (tb *TextBuffer) shrinkNodeFromStart(node *rbtree.Node) (removed bool) {
	if node.Piece.Len <= 1 {
		tb.tree.Remove(node)
		return true
	}
	buf := tb.bufferFor(node.Buf)
	newStart := buf.Offset(node.Piece.Start) + 1
	node.Piece = piece.New(buf, buf.CursorAt(newStart), node.Piece.End)
	tb.tree.RecomputeFrom(node)
	return false
}

// trimPieceEnd and trimPieceStart are shrinkNodeFromEnd/Start's
// counterparts for a bare Piece fragment that has not yet been
// attached to a tree node (used while insertMiddle is still deciding
// the final shape of its split). The bool result reports whether p
// was trimmed down to nothing.
func trimPieceEnd(buf *linebuffer.Buffer, p piece.Piece) (piece.Piece, bool) {
	if p.Len <= 1 {
		return piece.Piece{}, true
	}
	end := buf.Offset(p.End) - 1
	return piece.New(buf, p.Start, buf.CursorAt(end)), false
}

func trimPieceStart(buf *linebuffer.Buffer, p piece.Piece) (piece.Piece, bool) {
	if p.Len <= 1 {
		return piece.Piece{}, true
	}
	start := buf.Offset(p.Start) + 1
	return piece.New(buf, buf.CursorAt(start), p.End), false
}

func maxU32(a, b uint32) uint32 {
	if a > b {
		return a
	}
	return b
}

func minU32(a, b uint32) uint32 {
	if a < b {
		return a
	}
	return b
}

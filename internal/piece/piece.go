package piece

import "github.com/inkwell-editor/piecetree/internal/linebuffer"

// Piece is an immutable view [Start, End) into one Buffer, annotated
// with its grapheme length and line-feed count. Pieces are replaced,
// never mutated, when their content or metadata changes.
type Piece struct {
	Start         linebuffer.Cursor
	End           linebuffer.Cursor
	Len           uint32
	LineFeedCount uint32
}

// New builds a Piece over [start, end) in buf, computing Len and
// LineFeedCount from buf.
func New(buf *linebuffer.Buffer, start, end linebuffer.Cursor) Piece {
	return Piece{
		Start:         start,
		End:           end,
		Len:           buf.GraphemeLen(start, end),
		LineFeedCount: buf.LineFeedCount(start, end),
	}
}

// IsEmpty reports whether the piece covers zero graphemes.
func (p Piece) IsEmpty() bool {
	return p.Len == 0
}

// Text returns the piece's text, resolved against buf.
func Text(buf *linebuffer.Buffer, p Piece) string {
	return buf.TextInCursorRange(p.Start, p.End)
}

// Split divides p at grapheme offset k (0 < k < p.Len), resolved
// against buf, into two new pieces that share buf as their owner.
// No bytes are copied; only cursors are recomputed.
func Split(buf *linebuffer.Buffer, p Piece, k uint32) (left, right Piece) {
	if k == 0 {
		return Piece{Start: p.Start, End: p.Start}, p
	}
	if k >= p.Len {
		return p, Piece{Start: p.End, End: p.End}
	}

	startOffset := buf.Offset(p.Start)
	endOffset := buf.Offset(p.End)
	text := buf.Slice(startOffset, endOffset)

	midOffset := startOffset + linebuffer.GraphemeOffsetToByte(text, int(k))
	mid := buf.CursorAt(midOffset)

	return New(buf, p.Start, mid), New(buf, mid, p.End)
}

// SliceGraphemes returns the substring of p's text between grapheme
// offsets [a, b), both relative to the start of p (0 <= a <= b <=
// p.Len). It is the general form Split's midpoint math is built on,
// used directly by range queries that need an arbitrary sub-span of a
// piece rather than a two-way split.
func SliceGraphemes(buf *linebuffer.Buffer, p Piece, a, b uint32) string {
	if a >= b {
		return ""
	}
	startOffset := buf.Offset(p.Start)
	endOffset := buf.Offset(p.End)
	text := buf.Slice(startOffset, endOffset)

	byteA := linebuffer.GraphemeOffsetToByte(text, int(a))
	byteB := linebuffer.GraphemeOffsetToByte(text, int(b))
	return text[byteA:byteB]
}

package linebuffer

import "github.com/rivo/uniseg"

// Buffer is an append-only store of UTF-8 text plus a sorted line-start
// table. line_starts[0] is always 0; each later entry is the byte
// offset of the first grapheme cluster after a line terminator.
//
// Buffer is not safe for concurrent use; the owning TextBuffer
// serializes all access.
type Buffer struct {
	value      string
	lineStarts []int
}

// New creates a Buffer from initial content. Used for both the
// Original buffer (loaded once) and the Changed buffer (appended to
// afterward, starting empty).
func New(initial string) *Buffer {
	b := &Buffer{}
	b.value = initial
	b.lineStarts = computeLineStarts(initial)
	return b
}

// computeLineStarts scans s grapheme cluster by grapheme cluster,
// recording the byte offset immediately after every line terminator.
func computeLineStarts(s string) []int {
	starts := make([]int, 1, 8)
	starts[0] = 0

	if s == "" {
		return starts
	}

	offset := 0
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		cluster := g.Str()
		offset += len(cluster)
		if isLineTerminatorCluster(cluster) {
			starts = append(starts, offset)
		}
	}
	return starts
}

// Value returns the full underlying byte content. Callers outside this
// package should prefer Slice/TextInCursorRange over reaching into
// this directly.
func (b *Buffer) Value() string {
	return b.value
}

// Len returns the byte length of the buffer's content.
func (b *Buffer) Len() int {
	return len(b.value)
}

// LineStartCount returns the number of recorded line starts (i.e. the
// number of lines in the buffer's own content).
func (b *Buffer) LineStartCount() int {
	return len(b.lineStarts)
}

// LineStartOffset returns the byte offset of the start of the given
// line index within this buffer's own content.
func (b *Buffer) LineStartOffset(line int) int {
	if line < 0 {
		return 0
	}
	if line >= len(b.lineStarts) {
		return len(b.value)
	}
	return b.lineStarts[line]
}

// Append grows the buffer by appending s, extending line_starts with
// any interior line starts introduced by s. This is the only mutation
// Buffer ever performs: it never rewrites or compacts existing bytes.
func (b *Buffer) Append(s string) {
	if s == "" {
		return
	}

	base := len(b.value)
	b.value += s

	offset := base
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		cluster := g.Str()
		offset += len(cluster)
		if isLineTerminatorCluster(cluster) {
			b.lineStarts = append(b.lineStarts, offset)
		}
	}
}

// Offset resolves a Cursor to an absolute byte offset within this
// buffer's value.
func (b *Buffer) Offset(c Cursor) int {
	lineStart := b.LineStartOffset(int(c.Line))
	lineEnd := b.LineStartOffset(int(c.Line) + 1)
	if lineEnd > len(b.value) {
		lineEnd = len(b.value)
	}
	return lineStart + byteOffsetForGraphemeIndex(b.value[lineStart:lineEnd], int(c.Column))
}

// CursorAt converts an absolute byte offset into this buffer's value
// into a Cursor. offset must be within [0, Len()].
func (b *Buffer) CursorAt(offset int) Cursor {
	if offset < 0 {
		offset = 0
	}
	if offset > len(b.value) {
		offset = len(b.value)
	}

	line := b.lineForOffset(offset)
	lineStart := b.lineStarts[line]
	column := graphemeIndexForByteOffset(b.value[lineStart:], offset-lineStart)

	return Cursor{Line: uint32(line), Column: uint32(column)}
}

// lineForOffset finds the largest line index i such that
// lineStarts[i] <= offset, via binary search over the sorted table.
func (b *Buffer) lineForOffset(offset int) int {
	lo, hi := 0, len(b.lineStarts)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if b.lineStarts[mid] <= offset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo
}

// Slice returns the substring of this buffer's value in the byte range
// [start, end).
func (b *Buffer) Slice(start, end int) string {
	if start < 0 {
		start = 0
	}
	if end > len(b.value) {
		end = len(b.value)
	}
	if start >= end {
		return ""
	}
	return b.value[start:end]
}

// TextInCursorRange returns the text between two cursors resolved
// against this buffer.
func (b *Buffer) TextInCursorRange(start, end Cursor) string {
	return b.Slice(b.Offset(start), b.Offset(end))
}

// GraphemeLen returns the number of grapheme clusters between two
// cursors resolved against this buffer.
func (b *Buffer) GraphemeLen(start, end Cursor) uint32 {
	return uint32(graphemeCount(b.TextInCursorRange(start, end)))
}

// LineFeedCount returns the number of line terminators wholly contained
// in [start, end), with the single boundary correction described for
// the piece-tree's Buffer.get_line_feed_count: when end sits immediately
// after a lone '\r' that is part of a '\r\n' pair split across a
// boundary, and no further terminator intervenes before the next
// recorded line start, that '\n' is attributed to the previous line.
func (b *Buffer) LineFeedCount(start, end Cursor) uint32 {
	if end.Column == 0 {
		return end.Line - start.Line
	}
	if int(end.Line) >= len(b.lineStarts)-1 {
		return end.Line - start.Line
	}

	endOffset := b.Offset(end)
	nextLineStart := b.lineStarts[end.Line+1]
	crlfSplitAtEnd := endOffset > 0 && endOffset < len(b.value) &&
		b.value[endOffset-1] == '\r' &&
		b.value[endOffset] == '\n' &&
		nextLineStart == endOffset+1
	if crlfSplitAtEnd {
		return end.Line - start.Line + 1
	}
	return end.Line - start.Line
}

// EndCursor returns the Cursor addressing the end of this buffer's
// current content.
func (b *Buffer) EndCursor() Cursor {
	return b.CursorAt(len(b.value))
}

// StartsWith reports whether this buffer's value begins with prefix.
func (b *Buffer) StartsWith(prefix byte) bool {
	return len(b.value) > 0 && b.value[0] == prefix
}

// EndsWith reports whether this buffer's value ends with suffix.
func (b *Buffer) EndsWith(suffix byte) bool {
	return len(b.value) > 0 && b.value[len(b.value)-1] == suffix
}

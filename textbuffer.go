package piecetree

import (
	"io"
	"strings"
	"sync"

	"github.com/inkwell-editor/piecetree/internal/linebuffer"
	"github.com/inkwell-editor/piecetree/internal/piece"
	"github.com/inkwell-editor/piecetree/internal/rbtree"
	"github.com/inkwell-editor/piecetree/internal/searchcache"
	"github.com/inkwell-editor/piecetree/internal/textinfo"
)

// TextBuffer is a piece-tree text buffer. See the package doc comment
// for its architecture. The zero value is not usable; construct one
// with New, FromString, or FromReader.
type TextBuffer struct {
	mu sync.RWMutex

	original *linebuffer.Buffer
	changed  *linebuffer.Buffer
	tree     rbtree.Tree
	cache    *searchcache.Cache
	info     textinfo.Info

	// lastChange is the Changed buffer's end cursor as of the most
	// recent insert. A node qualifies for the append fast path only
	// when its piece ends exactly here.
	lastChange linebuffer.Cursor

	cacheSize  int
	defaultEOL textinfo.EOL
}

// New creates an empty TextBuffer.
func New(opts ...Option) *TextBuffer {
	tb := newConfigured(opts...)
	tb.original = linebuffer.New("")
	tb.info, _ = textinfo.Detect(nil, tb.defaultEOL)
	return tb
}

// FromString creates a TextBuffer whose Original buffer holds text.
func FromString(text string, opts ...Option) *TextBuffer {
	tb := newConfigured(opts...)
	info, _ := textinfo.Detect([]byte(text), tb.defaultEOL)
	tb.info = info
	tb.original = linebuffer.New(text)
	tb.seedTreeFromOriginal()
	return tb
}

// FromReader creates a TextBuffer whose Original buffer holds the
// entirety of r, read eagerly: the piece tree's Original buffer is
// loaded once, in full, and never touched again.
func FromReader(r io.Reader, opts ...Option) (*TextBuffer, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	tb := newConfigured(opts...)
	info, _ := textinfo.Detect(data, tb.defaultEOL)
	tb.info = info
	tb.original = linebuffer.New(string(data))
	tb.seedTreeFromOriginal()
	return tb, nil
}

func newConfigured(opts ...Option) *TextBuffer {
	tb := &TextBuffer{
		cacheSize:  DefaultSearchCacheSize,
		defaultEOL: DefaultEOL,
	}
	for _, opt := range opts {
		opt(tb)
	}
	tb.cache = searchcache.New(tb.cacheSize)
	return tb
}

func (tb *TextBuffer) seedTreeFromOriginal() {
	if tb.original.Len() == 0 {
		return
	}
	p := piece.New(tb.original, linebuffer.Cursor{}, tb.original.EndCursor())
	root := &rbtree.Node{Piece: p, Buf: rbtree.Original}
	tb.tree.InsertRoot(root)
}

func (tb *TextBuffer) bufferFor(bk rbtree.BufferKind) *linebuffer.Buffer {
	if bk == rbtree.Changed {
		return tb.changed
	}
	return tb.original
}

// Info returns the detected encoding/EOL metadata recorded at load.
func (tb *TextBuffer) Info() textinfo.Info {
	tb.mu.RLock()
	defer tb.mu.RUnlock()
	return tb.info
}

// Length returns the document's total length in grapheme clusters.
func (tb *TextBuffer) Length() uint32 {
	tb.mu.RLock()
	defer tb.mu.RUnlock()
	return tb.tree.Length()
}

// LineCount returns the number of lines in the document. An empty
// document, and a document with no line terminators at all, both have
// exactly one line.
func (tb *TextBuffer) LineCount() uint32 {
	tb.mu.RLock()
	defer tb.mu.RUnlock()
	return tb.tree.LineFeedCount() + 1
}

// IsEmpty reports whether the document has zero length.
func (tb *TextBuffer) IsEmpty() bool {
	tb.mu.RLock()
	defer tb.mu.RUnlock()
	return tb.tree.Length() == 0
}

// String serializes the entire document by walking the tree in order.
func (tb *TextBuffer) String() string {
	tb.mu.RLock()
	defer tb.mu.RUnlock()
	var sb strings.Builder
	tb.tree.Walk(func(n *rbtree.Node) {
		sb.WriteString(piece.Text(tb.bufferFor(n.Buf), n.Piece))
	})
	return sb.String()
}

// TextInRange returns the grapheme-offset range [start, end) of the
// document's current content.
func (tb *TextBuffer) TextInRange(start, end uint32) (string, error) {
	tb.mu.RLock()
	defer tb.mu.RUnlock()
	return tb.textInRangeLocked(start, end)
}

func (tb *TextBuffer) textInRangeLocked(start, end uint32) (string, error) {
	total := tb.tree.Length()
	if start > end || end > total {
		return "", ErrOffsetOutOfRange
	}
	var sb strings.Builder
	var offset uint32
	tb.tree.Walk(func(n *rbtree.Node) {
		pieceStart := offset
		pieceEnd := offset + n.Piece.Len
		offset = pieceEnd
		if pieceEnd <= start || pieceStart >= end {
			return
		}
		a := uint32(0)
		if start > pieceStart {
			a = start - pieceStart
		}
		b := n.Piece.Len
		if end < pieceEnd {
			b = end - pieceStart
		}
		sb.WriteString(piece.SliceGraphemes(tb.bufferFor(n.Buf), n.Piece, a, b))
	})
	return sb.String(), nil
}

// LineStartOffset returns the grapheme offset of the start of line
// (0-indexed). Line 0 always starts at offset 0.
func (tb *TextBuffer) LineStartOffset(line uint32) (uint32, error) {
	tb.mu.RLock()
	defer tb.mu.RUnlock()
	if line >= tb.tree.LineFeedCount()+1 {
		return 0, ErrOffsetOutOfRange
	}
	return tb.lineBoundaryOffsetLocked(line)
}

// lineBoundaryOffsetLocked returns the grapheme offset of the start of
// line. Unlike the public LineStartOffset, line may equal the
// document's line count, in which case it resolves to the total
// document length (one past the end of the last line) — the boundary
// LineEndOffset needs for the final line.
func (tb *TextBuffer) lineBoundaryOffsetLocked(line uint32) (uint32, error) {
	if line == 0 {
		return 0, nil
	}
	lineCount := tb.tree.LineFeedCount() + 1
	if line > lineCount {
		return 0, ErrOffsetOutOfRange
	}
	if line == lineCount {
		return tb.tree.Length(), nil
	}
	node, remainder, nodeStart, _ := tb.tree.NodeAtLineFeed(line)
	if node == nil {
		return 0, ErrInvariantViolation
	}
	buf := tb.bufferFor(node.Buf)
	target := linebuffer.Cursor{Line: node.Piece.Start.Line + remainder, Column: 0}
	delta := buf.GraphemeLen(node.Piece.Start, target)
	return nodeStart + delta, nil
}

// LineEndOffset returns the grapheme offset immediately after line's
// content, including its line terminator if it has one. This is also
// the start offset of line+1.
func (tb *TextBuffer) LineEndOffset(line uint32) (uint32, error) {
	tb.mu.RLock()
	defer tb.mu.RUnlock()
	if line >= tb.tree.LineFeedCount()+1 {
		return 0, ErrOffsetOutOfRange
	}
	return tb.lineBoundaryOffsetLocked(line + 1)
}

// LineContent returns the text of line (0-indexed), excluding its
// trailing line terminator.
func (tb *TextBuffer) LineContent(line uint32) (string, error) {
	tb.mu.RLock()
	defer tb.mu.RUnlock()

	lineCount := tb.tree.LineFeedCount() + 1
	if line >= lineCount {
		return "", ErrOffsetOutOfRange
	}
	start, err := tb.lineBoundaryOffsetLocked(line)
	if err != nil {
		return "", err
	}
	end, err := tb.lineBoundaryOffsetLocked(line + 1)
	if err != nil {
		return "", err
	}
	text, err := tb.textInRangeLocked(start, end)
	if err != nil {
		return "", err
	}
	return trimLineTerminator(text), nil
}

func trimLineTerminator(s string) string {
	if strings.HasSuffix(s, "\r\n") {
		return s[:len(s)-2]
	}
	if strings.HasSuffix(s, "\n") || strings.HasSuffix(s, "\r") {
		return s[:len(s)-1]
	}
	return s
}

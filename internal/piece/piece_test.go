package piece

import (
	"testing"

	"github.com/inkwell-editor/piecetree/internal/linebuffer"
)

func TestNewPieceMeasuresBuffer(t *testing.T) {
	buf := linebuffer.New("abcdef")
	p := New(buf, linebuffer.Cursor{Line: 0, Column: 1}, linebuffer.Cursor{Line: 0, Column: 4})

	if p.Len != 3 {
		t.Fatalf("Len = %d, want 3", p.Len)
	}
	if got := Text(buf, p); got != "bcd" {
		t.Fatalf("Text = %q, want bcd", got)
	}
}

func TestSplitNoBytesCopied(t *testing.T) {
	buf := linebuffer.New("abcdef")
	whole := New(buf, linebuffer.Cursor{Line: 0, Column: 0}, buf.EndCursor())

	left, right := Split(buf, whole, 3)

	if got := Text(buf, left); got != "abc" {
		t.Errorf("left = %q, want abc", got)
	}
	if got := Text(buf, right); got != "def" {
		t.Errorf("right = %q, want def", got)
	}
	if left.Len+right.Len != whole.Len {
		t.Errorf("split lengths %d+%d != whole %d", left.Len, right.Len, whole.Len)
	}
}

func TestSplitAtBoundaries(t *testing.T) {
	buf := linebuffer.New("abc")
	whole := New(buf, linebuffer.Cursor{Line: 0, Column: 0}, buf.EndCursor())

	left, right := Split(buf, whole, 0)
	if !left.IsEmpty() {
		t.Errorf("split at 0: left should be empty, got len %d", left.Len)
	}
	if right.Len != whole.Len {
		t.Errorf("split at 0: right should be whole piece")
	}

	left, right = Split(buf, whole, whole.Len)
	if left.Len != whole.Len {
		t.Errorf("split at Len: left should be whole piece")
	}
	if !right.IsEmpty() {
		t.Errorf("split at Len: right should be empty, got len %d", right.Len)
	}
}

func TestSplitMultilinePiece(t *testing.T) {
	buf := linebuffer.New("ab\ncd\nef")
	whole := New(buf, linebuffer.Cursor{Line: 0, Column: 0}, buf.EndCursor())

	left, right := Split(buf, whole, 4)
	if got := Text(buf, left); got != "ab\nc" {
		t.Errorf("left = %q, want %q", got, "ab\nc")
	}
	if got := Text(buf, right); got != "d\nef" {
		t.Errorf("right = %q, want %q", got, "d\nef")
	}
}

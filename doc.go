// Package piecetree implements a piece-tree text buffer: the
// in-memory editable document representation used by a text editor's
// core, supporting logarithmic insert/delete/query over documents of
// arbitrary size without ever copying the whole text on an edit.
//
// # Architecture
//
// A TextBuffer holds two append-only byte stores — an Original buffer
// (the content it was loaded with, never mutated again) and a Changed
// buffer (everything typed into it since, growing only at the end) —
// plus an augmented red-black tree of Pieces, each a lightweight
// [start, end) view into one of the two buffers. Editing never copies
// document text: insert creates at most one or two new Pieces and
// splices them into the tree; delete shrinks, splits, or removes
// Pieces in place. Every offset- and line-addressed query walks the
// tree in O(log n) using two augmented per-node fields — the grapheme
// length and line-feed count of each node's left subtree — rather
// than an O(n) scan.
//
//   - internal/linebuffer: the two buffers, their line-start tables,
//     and all grapheme-cluster math (so CRLF pairs and combining
//     character sequences are never split mid-cluster).
//   - internal/piece: the immutable Piece view and its pure
//     split/slice functions.
//   - internal/rbtree: the augmented red-black tree itself.
//   - internal/searchcache: a bounded LRU that remembers recent
//     offset -> node lookups, invalidated on every mutation.
//   - internal/textinfo: BOM and end-of-line detection at load time.
//
// # Basic usage
//
//	tb := piecetree.FromString("hello\nworld", piecetree.WithDefaultEOL(textinfo.LF))
//	tb.Insert(5, ", there")
//	tb.Delete(0, 1)
//	text := tb.String() // "ello, there\nworld"
//
// # Thread safety
//
// TextBuffer is safe for concurrent use: a single RWMutex gives every
// mutation exclusive access while queries share a read lock. None of its internal collaborators are safe on
// their own — they are reached only while TextBuffer holds its lock.
package piecetree

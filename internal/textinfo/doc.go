// Package textinfo detects the encoding and line-ending style of a
// freshly loaded document: whether it carries a UTF-8 byte-order mark,
// which of LF/CRLF its terminators favor, and whether it is pure
// ASCII. None of this feeds back into how the piece tree stores or
// edits text — it is metadata for the loader and for deciding whether
// the more expensive CRLF boundary repair in an edit can be skipped.
package textinfo

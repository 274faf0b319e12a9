// Package linebuffer implements the append-only text buffers that back
// a piece tree: an Original buffer loaded once from the source document
// and a Changed buffer that only ever grows by appending inserted text.
//
// A Buffer stores raw UTF-8 bytes plus a line-start table, and resolves
// BufferCursor positions (a line index plus a grapheme-cluster column)
// to absolute byte offsets and back. All grapheme-cluster math is
// centralized here via github.com/rivo/uniseg so no other package needs
// to reach into a Buffer's bytes directly.
package linebuffer

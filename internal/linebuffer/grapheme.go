package linebuffer

import "github.com/rivo/uniseg"

// graphemeCount returns the number of grapheme clusters in s.
func graphemeCount(s string) int {
	return graphemeIndexForByteOffset(s, len(s))
}

// byteOffsetForGraphemeIndex returns the byte offset in s immediately
// after the nth grapheme cluster (n clamped to [0, cluster count]).
func byteOffsetForGraphemeIndex(s string, n int) int {
	if n <= 0 || len(s) == 0 {
		return 0
	}

	count := 0
	offset := 0
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		if count == n {
			return offset
		}
		offset += len(g.Str())
		count++
	}
	return len(s)
}

// graphemeIndexForByteOffset counts the grapheme clusters fully
// contained in s[:byteOff]. byteOff must land on a cluster boundary.
func graphemeIndexForByteOffset(s string, byteOff int) int {
	if byteOff <= 0 || len(s) == 0 {
		return 0
	}

	count := 0
	offset := 0
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		if offset >= byteOff {
			return count
		}
		offset += len(g.Str())
		count++
	}
	return count
}

// GraphemeOffsetToByte returns the byte offset within s immediately
// after the nth grapheme cluster. It is exported so callers that only
// have a raw substring (not a Cursor-addressable Buffer position) — for
// example a Piece splitting itself at a grapheme offset — can still
// centralize grapheme math through this package.
func GraphemeOffsetToByte(s string, n int) int {
	return byteOffsetForGraphemeIndex(s, n)
}

// isLineTerminatorCluster reports whether a grapheme cluster is one of
// the three recognized line terminators. CR+LF is always one cluster
// under the Unicode grapheme-breaking rules (GB3: never break between
// CR and LF), so it is inherently atomic here.
func isLineTerminatorCluster(cluster string) bool {
	return cluster == "\r\n" || cluster == "\n" || cluster == "\r"
}

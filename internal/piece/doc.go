// Package piece defines the immutable Piece view into a linebuffer.Buffer
// and the pure functions that create, split, and measure pieces.
//
// A Piece never holds a pointer to its owning Buffer (see the "Piece ↔
// Buffer back-reference" design note): every function here takes the
// Buffer it should be resolved against as an explicit argument, and the
// caller (internal/rbtree / the piecetree façade) is responsible for
// knowing which Buffer — Original or Changed — a given Piece belongs to.
package piece

package piecetree

import "errors"

// Errors returned by TextBuffer operations.
var (
	// ErrOffsetOutOfRange indicates an offset or range falls outside
	// [0, Length()]. This is a contract violation by the caller, kept
	// distinct from ErrInvariantViolation which signals a defect inside
	// the tree itself.
	ErrOffsetOutOfRange = errors.New("piecetree: offset out of range")

	// ErrEmptyTreeLookup indicates a position-based lookup was attempted
	// against a TextBuffer with no content.
	ErrEmptyTreeLookup = errors.New("piecetree: lookup against empty buffer")

	// ErrInvariantViolation indicates the augmented red-black tree's
	// internal bookkeeping disagreed with itself. It should never occur;
	// it exists so a corrupted tree fails loudly rather than silently
	// returning wrong text.
	ErrInvariantViolation = errors.New("piecetree: internal invariant violation")

	// ErrBufferNotInitialized indicates a TextBuffer was used via its
	// zero value instead of New/FromString/FromReader.
	ErrBufferNotInitialized = errors.New("piecetree: buffer not initialized")
)

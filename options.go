package piecetree

import "github.com/inkwell-editor/piecetree/internal/textinfo"

// Default configuration values.
const (
	DefaultSearchCacheSize = 64
	DefaultEOL             = textinfo.LF
)

// Option configures a TextBuffer during creation.
type Option func(*TextBuffer)

// WithSearchCacheSize bounds how many offset lookups the SearchCache
// remembers. Sizes <= 0 fall back to DefaultSearchCacheSize.
func WithSearchCacheSize(size int) Option {
	return func(tb *TextBuffer) {
		tb.cacheSize = size
	}
}

// WithDefaultEOL sets the line-ending style that Info records when the
// loaded content contains no terminators at all.
func WithDefaultEOL(eol textinfo.EOL) Option {
	return func(tb *TextBuffer) {
		tb.defaultEOL = eol
	}
}

// Command piecetreecat is a thin file-load demo collaborator for the
// piecetree module: it performs the "load bytes from a path" pre-step
// spec.md assigns to an external caller, hands the decoded text to
// piecetree.FromString, then exercises a few read-only queries against
// the resulting TextBuffer.
//
// It is not an editor. It has no keybindings, no UI, and no event
// loop; it exists to show the core being driven end to end the way a
// real embedding application would drive it.
package main

import (
	"flag"
	"fmt"
	"os"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/inkwell-editor/piecetree/internal/textinfo"

	"github.com/inkwell-editor/piecetree"
)

func main() {
	os.Exit(run())
}

func run() int {
	var line int
	var eolFlag string
	flag.IntVar(&line, "line", -1, "print only this 0-indexed line instead of the whole document")
	flag.StringVar(&eolFlag, "default-eol", "lf", "end-of-line style assumed for a document with no terminators (lf, crlf)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <path>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		return 2
	}

	defaultEOL, err := parseEOL(eolFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}

	tb, err := load(flag.Arg(0), defaultEOL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load %s: %v\n", flag.Arg(0), err)
		return 1
	}

	if line < 0 {
		fmt.Print(tb.String())
		return 0
	}

	content, err := tb.LineContent(uint32(line))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: line %d: %v\n", line, err)
		return 1
	}
	fmt.Println(content)
	return 0
}

// load reads path off disk and decodes it to UTF-8, stripping a leading
// byte-order mark via golang.org/x/text's BOM-aware decoder, then hands
// the decoded string to piecetree.FromString. This decode step is the
// "file load collaborator contract" of spec.md §6: the core never
// touches a filesystem or a raw encoding.
func load(path string, defaultEOL textinfo.EOL) (*piecetree.TextBuffer, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	decoded, _, err := transform.Bytes(decoder, raw)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	return piecetree.FromString(string(decoded), piecetree.WithDefaultEOL(defaultEOL)), nil
}

func parseEOL(s string) (textinfo.EOL, error) {
	switch s {
	case "lf", "LF":
		return textinfo.LF, nil
	case "crlf", "CRLF":
		return textinfo.CRLF, nil
	default:
		return 0, fmt.Errorf("unrecognized -default-eol %q (want lf or crlf)", s)
	}
}

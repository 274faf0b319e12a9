package textinfo

import "bytes"

// Encoding identifies the detected byte-order-mark state of a loaded
// document.
type Encoding int

const (
	UTF8 Encoding = iota
	UTF8BOM
)

// EOL identifies a line-ending style. Info.EOL records the effective
// style detected at load; line endings of loaded or inserted text are
// never rewritten to it.
type EOL int

const (
	LF EOL = iota
	CRLF
)

func (e EOL) String() string {
	if e == CRLF {
		return "\r\n"
	}
	return "\n"
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Info is the detected shape of a freshly loaded document: its BOM
// state, its effective end-of-line style, whether any CR has been
// observed at all (which gates whether CRLF boundary repair can be
// skipped on every edit), and whether every byte seen was ASCII.
type Info struct {
	Encoding Encoding
	EOL      EOL
	HasBOM   bool
	SawCR    bool
	IsASCII  bool
}

// SkipCRLFRepair reports whether insert/delete can skip the CRLF
// boundary-repair pass: safe only when the buffer is known
// EOL-normalized to LF and no CR has ever been observed in it.
func (i Info) SkipCRLFRepair() bool {
	return i.EOL == LF && !i.SawCR
}

// Detect inspects raw file bytes, records a leading BOM if present and
// returns the bytes after it as remainder (data itself is not
// modified), counts CR/LF/CRLF terminators, and selects an
// effective EOL style: the caller's defaultEOL if no terminators are
// present, CRLF if CR-bearing terminators are the majority, else LF.
func Detect(data []byte, defaultEOL EOL) (Info, []byte) {
	info := Info{EOL: defaultEOL, IsASCII: true}

	remainder := data
	if bytes.HasPrefix(data, utf8BOM) {
		info.Encoding = UTF8BOM
		info.HasBOM = true
		remainder = data[len(utf8BOM):]
	}

	var lfOnly, crBearing int
	for i := 0; i < len(remainder); i++ {
		b := remainder[i]
		if b >= 0x80 {
			info.IsASCII = false
		}
		switch b {
		case '\r':
			info.SawCR = true
			crBearing++
			if i+1 < len(remainder) && remainder[i+1] == '\n' {
				i++
			}
		case '\n':
			lfOnly++
		}
	}

	total := lfOnly + crBearing
	if total > 0 {
		if crBearing*2 > total {
			info.EOL = CRLF
		} else {
			info.EOL = LF
		}
	}

	return info, remainder
}

package token

// ASCII character lookup tables for fast classification, following the
// teacher's init()-populated byte tables rather than a switch per byte on
// the hot path.
var (
	isSpace      [128]bool
	isDigitByte  [128]bool
	isIdentStart [128]bool
	isIdentPart  [128]bool
	followsDiv   [128]bool // bytes after which a bare '/' is division, not a regex start
)

func init() {
	for i := 0; i < 128; i++ {
		b := byte(i)
		isSpace[i] = b == ' ' || b == '\t' || b == '\f' || b == '\v' || b == '\r' || b == '\n'
		isDigitByte[i] = '0' <= b && b <= '9'
		isIdentStart[i] = ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z') || b == '_' || b == '$'
		isIdentPart[i] = isIdentStart[i] || isDigitByte[i]
	}
	for _, b := range []byte(")]}%<") {
		followsDiv[b] = true
	}
	for i := 0; i < 128; i++ {
		b := byte(i)
		if isDigitByte[i] || isIdentStart[i] {
			followsDiv[b] = true
		}
	}
	followsDiv['.'] = true
}

// IsWhitespace reports whether b is HTML/JS-significant whitespace,
// including the bytes of a line terminator.
func IsWhitespace(b byte) bool {
	return b < 128 && isSpace[b]
}

// IsEOL reports whether b starts a line terminator ('\n' or '\r').
func IsEOL(b byte) bool {
	return b == '\n' || b == '\r'
}

// IsDigit reports whether b is an ASCII decimal digit.
func IsDigit(b byte) bool {
	return b < 128 && isDigitByte[b]
}

// IsIdentStart reports whether b can begin an identifier-like token (tag
// name, attribute name, variable name).
func IsIdentStart(b byte) bool {
	return b >= 128 || isIdentStart[b]
}

// IsIdentPart reports whether b can continue an identifier-like token.
// Bytes ≥ 0x80 (continuation/lead bytes of multi-byte UTF-8 sequences) are
// conservatively treated as identifier-part bytes per spec's Open Question
// 2: Unicode identifier characters are never individually classified, they
// simply ride along inside whatever token started in ASCII.
func IsIdentPart(b byte) bool {
	return b >= 128 || isIdentPart[b] || b == '-'
}

// CanBeFollowedByDivision reports whether, given that b was the last
// non-whitespace byte scanned, a following '/' should be treated as the
// division operator rather than the start of a regular expression literal.
func CanBeFollowedByDivision(b byte) bool {
	return b < 128 && followsDiv[b]
}

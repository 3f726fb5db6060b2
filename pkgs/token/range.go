// Package token holds the data model shared by every state in pkgs/htmlx:
// half-open byte ranges, the ASCII character classifier, and the error-code
// constants the parser reports through its onError handler.
package token

// Range is a half-open byte span [Start, End) into the source buffer the
// parser was given. Ranges are never copied out of; a host that wants the
// text slices source[r.Start:r.End] itself.
type Range struct {
	Start int
	End   int
}

// Len returns the number of bytes the range covers.
func (r Range) Len() int {
	return r.End - r.Start
}

// Empty reports whether the range covers zero bytes.
func (r Range) Empty() bool {
	return r.End <= r.Start
}

// Slice returns the bytes the range covers. The caller must keep source
// alive and unchanged for as long as it uses the result.
func (r Range) Slice(source []byte) []byte {
	return source[r.Start:r.End]
}

// ValueRange is a range whose outer delimiters differ from the region a
// handler actually cares about, e.g. an HTML comment where Range spans
// "<!--" through "-->" and Value spans the text between them, or an
// attribute argument where Range spans "(...)" and Value the interior.
type ValueRange struct {
	Range
	Value Range
}

package htmlx

import "github.com/aledsdavies/htmlx/pkgs/token"

// commentLineFrame is JS-COMMENT-LINE (spec.md §4.6): "//" to end of line.
// It is not an error to hit EOF or EOL while inside one; it simply ends.
type commentLineFrame struct {
	base

	mode   Mode
	opened int // bytes of "//" consumed so far

	// breakOnCloseTag is set for a line comment scanned directly inside a
	// parsed-text tag body (spec.md §4.6): "</" ends the comment early so
	// the enclosing close tag is still found on the same line.
	breakOnCloseTag bool
}

func newCommentLineFrame(mode Mode) *commentLineFrame {
	return &commentLineFrame{base: base{k: kCommentLine}, mode: mode}
}

func newBreakableCommentLineFrame(mode Mode) *commentLineFrame {
	return &commentLineFrame{base: base{k: kCommentLine}, mode: mode, breakOnCloseTag: true}
}

func (f *commentLineFrame) OnChar(p *Parser, b byte) {
	if f.opened < 2 {
		f.opened++
		p.skip(1)
		return
	}
	if f.breakOnCloseTag && b == '<' && p.peek(1) == '/' {
		p.exit()
		return
	}
	p.skip(1)
}

func (f *commentLineFrame) OnEOL(p *Parser) {
	p.exitAt(p.eolStart())
}

func (f *commentLineFrame) OnEOF(p *Parser) {}

// commentBlockFrame is JS-COMMENT-BLOCK (spec.md §4.6): "/* ... */",
// possibly spanning lines. In concise mode the rest of the line the
// closing "*/" appears on must be blank, since concise syntax reads tag
// structure from line starts.
type commentBlockFrame struct {
	base

	mode   Mode
	opened int // bytes of "/*" consumed so far
	star   bool
}

func newCommentBlockFrame(mode Mode) *commentBlockFrame {
	return &commentBlockFrame{base: base{k: kCommentBlock}, mode: mode}
}

func (f *commentBlockFrame) OnChar(p *Parser, b byte) {
	if f.opened < 2 {
		f.opened++
		p.skip(1)
		return
	}
	if f.star && b == '/' {
		p.skip(1)
		if f.mode == Concise {
			if bad, ok := restOfLineIsWhitespace(p); !ok {
				p.emitErrorAt(token.MalformedComment, "a block comment's closing \"*/\" must be followed only by whitespace on its line in concise mode", token.Range{Start: bad, End: bad + 1})
				return
			}
		}
		p.exit()
		return
	}
	f.star = b == '*'
	p.skip(1)
}

// restOfLineIsWhitespace reports whether every byte from p.pos up to (not
// including) the next line terminator or EOF is whitespace. When it isn't,
// it also returns the offset of the first offending byte.
func restOfLineIsWhitespace(p *Parser) (badPos int, ok bool) {
	for i := p.pos; i < p.maxPos; i++ {
		b := p.source[i]
		if token.IsEOL(b) {
			return 0, true
		}
		if !token.IsWhitespace(b) {
			return i, false
		}
	}
	return 0, true
}

func (f *commentBlockFrame) OnEOL(p *Parser) {
	f.star = false
}

func (f *commentBlockFrame) OnEOF(p *Parser) {}

// htmlCommentFrame is HTML-COMMENT (spec.md §4.5): "<!-- ... -->" in
// verbose mode, emitted as a single OnComment range on close.
type htmlCommentFrame struct {
	base

	opened int // bytes of "<!--" consumed so far
	dashes int // consecutive trailing '-' seen, looking for "-->"
}

func newHTMLCommentFrame() *htmlCommentFrame {
	return &htmlCommentFrame{base: base{k: kHTMLComment}}
}

func (f *htmlCommentFrame) OnChar(p *Parser, b byte) {
	if f.opened < 4 {
		f.opened++
		p.skip(1)
		return
	}
	switch {
	case b == '-':
		if f.dashes < 2 {
			f.dashes++
		}
		p.skip(1)
	case b == '>' && f.dashes == 2:
		p.skip(1)
		p.exit()
	default:
		f.dashes = 0
		p.skip(1)
	}
}

func (f *htmlCommentFrame) OnEOL(p *Parser) {
	f.dashes = 0
}

func (f *htmlCommentFrame) OnEOF(p *Parser) {
	p.emitErrorAt(token.MalformedComment, "unterminated HTML comment", token.Range{Start: f.start, End: p.maxPos})
}

func (f *htmlCommentFrame) OnExit(p *Parser) {
	if p.handlers.OnComment != nil {
		p.handlers.OnComment(token.ValueRange{
			Range: token.Range{Start: f.start, End: f.end},
			Value: token.Range{Start: f.start + 4, End: f.end - 3},
		})
	}
}

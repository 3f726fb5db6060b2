package htmlx

import "github.com/aledsdavies/htmlx/pkgs/token"

// contentFrame is TOP-LEVEL-HTML (spec.md §2/§4.5): verbose HTML content.
// The same definition serves the document root and every tag body whose
// bodyMode isn't concise-specific; isBody distinguishes the two so a
// matching close tag knows to cascade back out to the frame's parent.
type contentFrame struct {
	base

	bodyMode  BodyMode
	isBody    bool
	textStart int
}

func newTopLevelFrame(parent frame, start int) *contentFrame {
	f := &contentFrame{bodyMode: HTMLBody}
	f.base = newBase(kTopLevelHTML, parent, start)
	return f
}

func newTagBodyFrame(bodyMode BodyMode) *contentFrame {
	return &contentFrame{base: base{k: kTopLevelHTML}, bodyMode: bodyMode, isBody: true}
}

func (f *contentFrame) OnEnter(p *Parser) {
	f.textStart = p.pos
}

func (f *contentFrame) flush(p *Parser, end int) {
	if end > f.textStart && p.handlers.OnText != nil {
		p.handlers.OnText(token.Range{Start: f.textStart, End: end})
	}
	f.textStart = end
}

func (f *contentFrame) OnChar(p *Parser, b byte) {
	switch f.bodyMode {
	case StaticTextBody:
		if f.isBody && b == '<' && p.peek(1) == '/' {
			f.flush(p, p.pos)
			p.enter(newCloseTagFrame())
			return
		}
		p.skip(1)
	case ParsedTextBody:
		switch {
		case f.isBody && b == '<' && p.peek(1) == '/':
			f.flush(p, p.pos)
			p.enter(newCloseTagFrame())
		case b == '$' && f.isPlaceholderStart(p):
			f.flush(p, p.pos)
			p.enter(newPlaceholderFrame(Verbose))
		case b == '/' && p.peek(1) == '/':
			p.enter(newBreakableCommentLineFrame(Verbose))
		case b == '/' && p.peek(1) == '*':
			p.enter(newCommentBlockFrame(Verbose))
		default:
			p.skip(1)
		}
	default: // HTMLBody (CDATABody never reaches a contentFrame directly)
		switch b {
		case '$':
			if f.isPlaceholderStart(p) {
				f.flush(p, p.pos)
				p.enter(newPlaceholderFrame(Verbose))
				return
			}
			p.skip(1)
		case '<':
			f.dispatchLT(p)
		default:
			p.skip(1)
		}
	}
}

func (f *contentFrame) isPlaceholderStart(p *Parser) bool {
	next := p.peek(1)
	if next == '{' {
		return true
	}
	return next == '!' && p.peek(2) == '{'
}

func (f *contentFrame) dispatchLT(p *Parser) {
	next := p.peek(1)
	switch {
	case next == '/':
		f.flush(p, p.pos)
		p.enter(newCloseTagFrame())
	case p.hasPrefixAt("<!--"):
		f.flush(p, p.pos)
		p.enter(newHTMLCommentFrame())
	case p.hasPrefixAt("<![CDATA["):
		f.flush(p, p.pos)
		p.enter(newCDATAFrame())
	case hasPrefixFold(p, "<!doctype"):
		f.flush(p, p.pos)
		p.enter(newDoctypeFrame())
	case next == '!':
		f.flush(p, p.pos)
		p.enter(newDeclarationFrame())
	case next == '?':
		f.flush(p, p.pos)
		p.enter(newScriptletFrame())
	case isNameByte(next):
		f.flush(p, p.pos)
		p.enter(newOpenTagFrame(Verbose, false))
	default:
		p.skip(1)
	}
}

func (f *contentFrame) OnReturn(p *Parser, child frame) {
	f.textStart = p.pos
	switch c := child.(type) {
	case *openTagFrame:
		if c.ending == EndingTag {
			p.enter(newTagBodyFrame(c.bodyMode))
		}
	case *closeTagFrame:
		if f.isBody {
			p.exit()
		}
	}
}

func (f *contentFrame) OnEOF(p *Parser) {
	f.flush(p, p.maxPos)
}

func hasPrefixFold(p *Parser, s string) bool {
	end := p.pos + len(s)
	if end > p.maxPos {
		return false
	}
	for i := 0; i < len(s); i++ {
		a, b := p.source[p.pos+i], s[i]
		if a >= 'A' && a <= 'Z' {
			a += 'a' - 'A'
		}
		if a != b {
			return false
		}
	}
	return true
}

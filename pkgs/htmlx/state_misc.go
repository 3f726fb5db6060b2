package htmlx

import "github.com/aledsdavies/htmlx/pkgs/token"

// cdataFrame is CDATA (spec.md §4.5): "<![CDATA[ ... ]]>", raw content.
type cdataFrame struct {
	base

	opened    int // bytes of "<![CDATA[" consumed
	valueStart int
	closing   int // bytes of "]]>" matched so far
}

func newCDATAFrame() *cdataFrame {
	return &cdataFrame{base: base{k: kCDATA}}
}

const cdataPrefixLen = len("<![CDATA[")

func (f *cdataFrame) OnChar(p *Parser, b byte) {
	if f.opened < cdataPrefixLen {
		f.opened++
		p.skip(1)
		if f.opened == cdataPrefixLen {
			f.valueStart = p.pos
		}
		return
	}
	switch {
	case b == ']':
		if f.closing < 2 {
			f.closing++
		}
		p.skip(1)
	case b == '>' && f.closing == 2:
		end := p.pos - 2
		p.skip(1)
		f.emit(p, end)
		p.exit()
	default:
		f.closing = 0
		p.skip(1)
	}
}

func (f *cdataFrame) emit(p *Parser, valueEnd int) {
	if p.handlers.OnCDATA != nil {
		p.handlers.OnCDATA(token.ValueRange{
			Range: token.Range{Start: f.start, End: p.pos},
			Value: token.Range{Start: f.valueStart, End: valueEnd},
		})
	}
}

func (f *cdataFrame) OnEOF(p *Parser) {
	p.emitErrorAt(token.MalformedCDATA, "unterminated CDATA section", token.Range{Start: f.start, End: p.maxPos})
}

// doctypeFrame is DOCTYPE (spec.md §4.5): "<!DOCTYPE ... >", case-insensitive
// keyword, raw content up to the closing '>'.
type doctypeFrame struct {
	base

	opened     int
	valueStart int
}

const doctypePrefixLen = len("<!DOCTYPE")

func newDoctypeFrame() *doctypeFrame {
	return &doctypeFrame{base: base{k: kDoctype}}
}

func (f *doctypeFrame) OnChar(p *Parser, b byte) {
	if f.opened < doctypePrefixLen {
		f.opened++
		p.skip(1)
		if f.opened == doctypePrefixLen {
			f.valueStart = p.pos
		}
		return
	}
	if b == '>' {
		end := p.pos
		p.skip(1)
		if p.handlers.OnDoctype != nil {
			p.handlers.OnDoctype(token.ValueRange{
				Range: token.Range{Start: f.start, End: p.pos},
				Value: token.Range{Start: f.valueStart, End: end},
			})
		}
		p.exit()
		return
	}
	p.skip(1)
}

func (f *doctypeFrame) OnEOF(p *Parser) {
	p.emitErrorAt(token.MalformedDocumentType, "unterminated doctype", token.Range{Start: f.start, End: p.maxPos})
}

// declarationFrame is DECLARATION (spec.md §4.5): any other "<! ... >"
// markup declaration (e.g. "<!ENTITY ...>") not recognized as a comment,
// CDATA section, or doctype.
type declarationFrame struct {
	base

	opened     int
	valueStart int
}

func newDeclarationFrame() *declarationFrame {
	return &declarationFrame{base: base{k: kDeclaration}}
}

func (f *declarationFrame) OnChar(p *Parser, b byte) {
	if f.opened < 2 { // "<!"
		f.opened++
		p.skip(1)
		if f.opened == 2 {
			f.valueStart = p.pos
		}
		return
	}
	if b == '>' {
		end := p.pos
		p.skip(1)
		if p.handlers.OnDeclaration != nil {
			p.handlers.OnDeclaration(token.ValueRange{
				Range: token.Range{Start: f.start, End: p.pos},
				Value: token.Range{Start: f.valueStart, End: end},
			})
		}
		p.exit()
		return
	}
	p.skip(1)
}

func (f *declarationFrame) OnEOF(p *Parser) {
	p.emitErrorAt(token.MalformedDeclaration, "unterminated declaration", token.Range{Start: f.start, End: p.maxPos})
}

// scriptletFrame is SCRIPTLET (spec.md §4.5): "<? ... ?>" or the tag-like
// "<?xml ... >" shape that closes on a bare '>' instead.
type scriptletFrame struct {
	base

	opened     int
	valueStart int
	question   bool
}

func newScriptletFrame() *scriptletFrame {
	return &scriptletFrame{base: base{k: kScriptlet}}
}

func (f *scriptletFrame) OnChar(p *Parser, b byte) {
	if f.opened < 2 { // "<?"
		f.opened++
		p.skip(1)
		if f.opened == 2 {
			f.valueStart = p.pos
		}
		return
	}
	switch {
	case b == '?':
		f.question = true
		p.skip(1)
	case b == '>' && f.question:
		end := p.pos - 1
		p.skip(1)
		f.emit(p, end, true)
		p.exit()
	case b == '>':
		end := p.pos
		p.skip(1)
		f.emit(p, end, false)
		p.exit()
	default:
		f.question = false
		p.skip(1)
	}
}

func (f *scriptletFrame) emit(p *Parser, valueEnd int, block bool) {
	if p.handlers.OnScriptlet != nil {
		p.handlers.OnScriptlet(ScriptletEvent{
			Range: token.Range{Start: f.start, End: p.pos},
			Value: token.Range{Start: f.valueStart, End: valueEnd},
			Tag:   !block,
			Block: block,
		})
	}
}

func (f *scriptletFrame) OnEOF(p *Parser) {
	p.emitErrorAt(token.MalformedScriptlet, "unterminated scriptlet", token.Range{Start: f.start, End: p.maxPos})
}

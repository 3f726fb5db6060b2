package htmlx

import "github.com/aledsdavies/htmlx/pkgs/token"

type attrStage int

const (
	attrUnknown attrStage = iota
	attrName
	attrNamed // name resolved, waiting to see what follows
	attrArgument
	attrBlock
	attrValue
)

// attributeFrame is ATTRIBUTE (spec.md §4.3): one tag attribute, advancing
// through UNKNOWN -> NAME -> (ARGUMENT -> BLOCK)? -> VALUE. It is entered
// by OPEN-TAG on the first non-whitespace, non-terminator byte of each
// attribute slot; OPEN-TAG does not consume that byte first, so this
// frame's first OnChar call already sees it.
type attributeFrame struct {
	base

	mode Mode
	stage attrStage

	nameSet   bool
	name      token.Range
	isDefault bool

	argsOpenPos int
	argsSet     bool
	args        token.Range // outer span including '(' ')'
	argValue    token.Range // inner span

	bound, spread, method bool
	hasValue              bool
	value                 token.Range

	params token.Range
	body   token.Range
}

func newAttributeFrame(mode Mode) *attributeFrame {
	return &attributeFrame{base: base{k: kAttribute}, mode: mode}
}

func (f *attributeFrame) OnChar(p *Parser, b byte) {
	if f.stage == attrNamed && isPlainSpace(b) {
		p.skip(1)
		return
	}

	switch {
	case p.hasPrefixAt(":="):
		f.enterValue(p, true, false, 2)
	case p.hasPrefixAt("..."):
		f.enterValue(p, false, true, 3)
	case b == '=':
		f.enterValue(p, false, false, 1)
	case b == '(':
		if f.argsSet {
			p.emitError(token.IllegalAttributeArgument, "attribute already has an argument list")
			return
		}
		f.ensureName(p)
		f.argsOpenPos = p.pos
		f.stage = attrArgument
		p.skip(1)
		p.enter(newBracketExpressionFrame(f.mode, '(', false, token.MalformedOpenTag, "attribute argument"))
	case b == '{':
		if f.argsSet || !f.nameSet {
			f.ensureName(p)
			f.stage = attrBlock
			p.skip(1)
			p.enter(newBracketExpressionFrame(f.mode, '{', false, token.MalformedOpenTag, "attribute method body"))
			return
		}
		f.finish(p)
	default:
		if f.stage == attrUnknown && !isPlainSpace(b) && !token.IsEOL(b) {
			f.stage = attrName
			p.enter(newExpressionFrame(f.mode, nameTerminators(f.mode), true, conciseLineEnd(f.mode), true, token.MalformedOpenTag, "attribute name"))
			return
		}
		f.finish(p)
	}
}

func (f *attributeFrame) enterValue(p *Parser, bound, spread bool, opLen int) {
	f.ensureName(p)
	f.bound = bound
	f.spread = spread
	p.skip(opLen)
	p.consumeWhitespace()
	f.stage = attrValue
	p.enter(newExpressionFrame(f.mode, valueTerminators(f.mode), true, conciseLineEnd(f.mode), false, token.MalformedOpenTag, "attribute value"))
}

func (f *attributeFrame) ensureName(p *Parser) {
	if f.nameSet {
		return
	}
	f.name = token.Range{Start: f.start, End: f.start}
	f.nameSet = true
	f.isDefault = true
	if p.handlers.OnAttrName != nil {
		p.handlers.OnAttrName(f.name)
	}
}

// finish leaves the triggering byte unconsumed so OPEN-TAG decides what it
// starts (the next attribute, or the end of the tag).
func (f *attributeFrame) finish(p *Parser) {
	f.finishAt(p, p.pos)
}

func (f *attributeFrame) finishAt(p *Parser, end int) {
	f.ensureName(p)
	p.exitAt(end)
}

func (f *attributeFrame) OnReturn(p *Parser, child frame) {
	h := child.header()
	childRange := token.Range{Start: h.start, End: h.end}

	switch f.stage {
	case attrName:
		f.name = childRange
		f.nameSet = true
		f.stage = attrNamed
		if p.handlers.OnAttrName != nil {
			p.handlers.OnAttrName(f.name)
		}
		// In concise mode a name that ends exactly at EOL has no more
		// bytes coming on this line to decide "=value" vs. a bare
		// attribute; the line terminator itself settles it, so finish
		// now instead of waiting for (and misreading) the next line's
		// first byte as more of this attribute.
		if f.mode == Concise && p.inEOLUnwind {
			f.finishAt(p, p.eolStart())
		}
	case attrValue:
		f.hasValue = true
		f.value = childRange
		if f.value.Empty() {
			p.emitError(token.IllegalAttributeValue, "attribute value is empty")
			return
		}
		if f.spread {
			if p.handlers.OnAttrSpread != nil {
				p.handlers.OnAttrSpread(token.ValueRange{Range: f.value, Value: f.value})
			}
		} else if p.handlers.OnAttrValue != nil {
			p.handlers.OnAttrValue(AttrValueEvent{Range: f.value, Value: f.value, Bound: f.bound})
		}
		f.stage = attrNamed
		p.exit()
	case attrArgument:
		f.args = token.Range{Start: f.argsOpenPos, End: p.pos}
		f.argValue = childRange
		f.argsSet = true
		n := p.consumeWhitespace()
		if p.read() == '{' {
			f.stage = attrNamed
			return
		}
		p.rewind(n)
		if p.handlers.OnAttrArgs != nil {
			p.handlers.OnAttrArgs(token.ValueRange{Range: f.args, Value: f.argValue})
		}
		f.stage = attrNamed
	case attrBlock:
		f.method = true
		f.params = f.args
		// The body is the brace interior without surrounding whitespace.
		for childRange.Start < childRange.End && token.IsWhitespace(p.source[childRange.Start]) {
			childRange.Start++
		}
		for childRange.End > childRange.Start && token.IsWhitespace(p.source[childRange.End-1]) {
			childRange.End--
		}
		f.body = childRange
		if p.handlers.OnAttrMethod != nil {
			p.handlers.OnAttrMethod(AttrMethodEvent{
				Range:  token.Range{Start: f.start, End: p.pos},
				Params: f.params,
				Body:   f.body,
			})
		}
		p.exit()
	}
}

func (f *attributeFrame) OnEOL(p *Parser) {
	if f.mode == Concise {
		f.finishAt(p, p.eolStart())
	}
}

func nameTerminators(mode Mode) terminatorSpec {
	if mode == Concise {
		return terminatorSpec{bytes: []byte{']', ';', '=', ',', '('}, seqs: []string{":="}}
	}
	return terminatorSpec{bytes: []byte{'>', ',', '=', '('}, seqs: []string{":=", "/>"}}
}

func valueTerminators(mode Mode) terminatorSpec {
	if mode == Concise {
		return terminatorSpec{bytes: []byte{']', ';', ','}}
	}
	return terminatorSpec{bytes: []byte{'>', ','}, seqs: []string{"/>"}}
}

func conciseLineEnd(mode Mode) bool {
	return mode == Concise
}

package htmlx

import "github.com/aledsdavies/htmlx/pkgs/token"

// placeholderFrame is PLACEHOLDER (spec.md §4.7): "${expr}" (HTML-escaped)
// or "$!{expr}" (raw), entered by a content/attribute-value frame on
// seeing '$' followed by '{' or "!{". It consumes its own leading bytes,
// then hands off to a bracket-seeded EXPRESSION for the body.
type placeholderFrame struct {
	base

	mode   Mode
	escape bool
	stage  int // 0: '$' pending, 1: optional '!' pending, 2: '{' pending, 3: body entered
	value  token.Range
}

func newPlaceholderFrame(mode Mode) *placeholderFrame {
	return &placeholderFrame{base: base{k: kPlaceholder}, mode: mode, escape: true}
}

func (f *placeholderFrame) OnChar(p *Parser, b byte) {
	switch f.stage {
	case 0: // '$'
		f.stage = 1
		p.skip(1)
	case 1: // '!' or '{'
		if b == '!' {
			f.escape = false
			p.skip(1)
			return
		}
		f.stage = 2
		// b is '{', fall through without consuming yet.
		fallthrough
	case 2:
		// b must be '{' (caller only entered this frame on "${" or "$!{").
		p.skip(1)
		f.stage = 3
		p.enter(newBracketExpressionFrame(f.mode, '{', false, token.MalformedPlaceholder, "placeholder"))
	default:
		// Should be unreachable: the child EXPRESSION owns every byte once
		// the body has been entered, until it exits.
		p.skip(1)
	}
}

func (f *placeholderFrame) OnReturn(p *Parser, child frame) {
	h := child.header()
	f.value = token.Range{Start: h.start, End: h.end}
	p.exit()
}

func (f *placeholderFrame) OnEOF(p *Parser) {
	if f.stage < 3 {
		p.emitErrorAt(token.MalformedPlaceholder, "unterminated placeholder", token.Range{Start: f.start, End: p.maxPos})
	}
}

func (f *placeholderFrame) OnExit(p *Parser) {
	if p.handlers.OnPlaceholder != nil {
		p.handlers.OnPlaceholder(PlaceholderEvent{
			Range:  token.Range{Start: f.start, End: f.end},
			Value:  f.value,
			Escape: f.escape,
		})
	}
}

package htmlx

import "github.com/aledsdavies/htmlx/pkgs/token"

// terminatorSpec is spec.md §4.2's EXPRESSION `terminator` config: either a
// single byte or a list whose elements are a single byte or a multi-byte
// literal, checked only once the group stack is empty.
type terminatorSpec struct {
	bytes []byte
	seqs  []string
}

func byteTerm(bs ...byte) terminatorSpec { return terminatorSpec{bytes: bs} }

func (t terminatorSpec) matchesAt(p *Parser) (int, bool) {
	b := p.read()
	for _, want := range t.bytes {
		if b == want {
			return 1, true
		}
	}
	for _, seq := range t.seqs {
		if p.hasPrefixAt(seq) {
			return len(seq), true
		}
	}
	return 0, false
}

// expressionFrame is EXPRESSION (spec.md §4.2): a maximal embedded-language
// fragment, tracking nested brackets and dispatching to the string/
// template-string/regex/comment sub-lexers.
type expressionFrame struct {
	base

	mode            Mode
	groupStack      []byte
	seedCount       int // 1 when the frame was entered via a bracket (ARGUMENT/BLOCK/PLACEHOLDER): groupStack's bottom entry is that bracket's close byte, not a nested group
	term            terminatorSpec
	terminatedByWS  bool
	terminatedByEOL bool
	skipOperators   bool

	lastSig byte // last significant (non-whitespace) byte seen, at any group depth

	eofCode token.Code
	eofCtx  string
}

func newExpressionFrame(mode Mode, term terminatorSpec, terminatedByWS, terminatedByEOL, skipOperators bool, eofCode token.Code, eofCtx string) *expressionFrame {
	return &expressionFrame{
		base:            base{k: kExpression},
		mode:            mode,
		term:            term,
		terminatedByWS:  terminatedByWS,
		terminatedByEOL: terminatedByEOL,
		skipOperators:   skipOperators,
		eofCode:         eofCode,
		eofCtx:          eofCtx,
	}
}

// newBracketExpressionFrame builds an EXPRESSION whose own boundary is a
// bracket the caller already consumed (attribute ARGUMENT's '(', BLOCK's
// and PLACEHOLDER's '{'): the group stack is seeded with that bracket's
// close byte, so the frame exits the moment a close-bracket pop empties
// the stack back down to the seed, per spec.md §4.2/§4.7.
func newBracketExpressionFrame(mode Mode, openByte byte, skipOperators bool, eofCode token.Code, eofCtx string) *expressionFrame {
	return &expressionFrame{
		base:          base{k: kExpression},
		mode:          mode,
		groupStack:    []byte{closeFor(openByte)},
		seedCount:     1,
		skipOperators: skipOperators,
		eofCode:       eofCode,
		eofCtx:        eofCtx,
	}
}

func (f *expressionFrame) OnChar(p *Parser, b byte) {
	if len(f.groupStack) == f.seedCount {
		if f.term.bytes != nil || f.term.seqs != nil {
			if n, ok := f.term.matchesAt(p); ok {
				_ = n
				p.exit()
				return
			}
		}
		if b == ' ' || b == '\t' || b == '\f' || b == '\v' {
			if !f.skipOperators {
				if adv, cont := matchOperatorContinuation(p, f.mode); cont {
					p.skip(adv)
					return
				}
			}
			if f.terminatedByWS {
				p.exit()
				return
			}
			p.skip(1)
			return
		}
	}

	switch b {
	case '(', '[', '{':
		f.groupStack = append(f.groupStack, closeFor(b))
		p.skip(1)
		f.lastSig = b
	case ')', ']', '}':
		if len(f.groupStack) == 0 {
			p.emitError(token.InvalidExpression, "unexpected closing bracket")
			return
		}
		top := f.groupStack[len(f.groupStack)-1]
		if b != top {
			p.emitError(token.InvalidExpression, "mismatched closing bracket")
			return
		}
		f.groupStack = f.groupStack[:len(f.groupStack)-1]
		p.skip(1)
		f.lastSig = b
		if f.seedCount == 1 && len(f.groupStack) == 0 {
			// The seed bracket is consumed but not part of the range.
			p.exitAt(p.pos - 1)
			return
		}
	case '"':
		p.enter(newStringFrame(f.mode, '"'))
	case '\'':
		p.enter(newStringFrame(f.mode, '\''))
	case '`':
		p.enter(newTemplateStringFrame(f.mode))
	case '/':
		next := p.peek(1)
		switch {
		case next == '/':
			p.enter(newCommentLineFrame(f.mode))
		case next == '*':
			p.enter(newCommentBlockFrame(f.mode))
		case token.CanBeFollowedByDivision(f.lastSig):
			p.skip(1)
			f.lastSig = '/'
		default:
			p.enter(newRegexFrame(f.mode))
		}
	default:
		p.skip(1)
		f.lastSig = b
	}
}

func (f *expressionFrame) OnReturn(p *Parser, child frame) {
	// A nested string/template/regex/comment just closed; its closing
	// delimiter isn't in the canBeFollowedByDivision set, so a following
	// bare '/' defaults to starting a regex rather than dividing.
	f.lastSig = 0
}

func (f *expressionFrame) OnEOL(p *Parser) {
	if len(f.groupStack) == f.seedCount && f.terminatedByEOL {
		p.exitAt(p.eolStart())
	}
}

func (f *expressionFrame) OnEOF(p *Parser) {
	p.emitErrorAt(f.eofCode, "unterminated expression in "+f.eofCtx, token.Range{Start: f.start, End: p.maxPos})
}

func closeFor(open byte) byte {
	switch open {
	case '(':
		return ')'
	case '[':
		return ']'
	default:
		return '}'
	}
}

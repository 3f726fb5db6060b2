package htmlx

import (
	"bytes"

	"github.com/aledsdavies/htmlx/pkgs/token"
)

// conciseOpenItem tracks one still-open concise tag purely by its line
// indentation (spec.md §4.4); there is no explicit close-tag syntax in
// concise mode, so closing is entirely indentation-driven.
type conciseOpenItem struct {
	indentLen    int
	tagName      token.Range
	ending       TagEnding
	bodyMode     BodyMode
	hasNested    bool
	nestedIndent token.Range // exact indentation bytes of this parent's first nested line (spec.md Invariant 6: byte-exact prefix equality, not just matching length)
}

// conciseContentFrame is CONCISE-HTML-CONTENT (spec.md §4.4). Unlike
// verbose bodies, which get one contentFrame per nesting level, concise
// mode uses a single long-lived frame for the whole indentation region
// and keeps its own stack of open items rather than pushing/popping a
// frame per nested tag — indentation, not the frame stack, defines
// nesting here.
type conciseContentFrame struct {
	base

	openItems []conciseOpenItem

	atLineStart     bool
	pendingIndentLen int
}

func newConciseContentFrame(parent frame, start int) *conciseContentFrame {
	f := &conciseContentFrame{atLineStart: true}
	f.base = newBase(kConciseContent, parent, start)
	return f
}

func (f *conciseContentFrame) OnEnter(p *Parser) {
	f.atLineStart = true
}

func (f *conciseContentFrame) OnChar(p *Parser, b byte) {
	if f.atLineStart {
		f.atLineStart = false
		indentStart := p.pos
		if isPlainSpace(b) {
			p.consumeWhitespace()
		}
		indentRange := token.Range{Start: indentStart, End: p.pos}
		if p.atEOF() {
			return
		}
		if !f.processLineStart(p, indentRange) {
			return
		}
		b = p.read()
	}

	switch {
	case b == '<':
		switch {
		case p.hasPrefixAt("<!--"):
			p.enter(newHTMLCommentFrame())
		case p.hasPrefixAt("<![CDATA["):
			p.enter(newCDATAFrame())
		case hasPrefixFold(p, "<!doctype"):
			p.enter(newDoctypeFrame())
		case p.peek(1) == '!':
			p.enter(newDeclarationFrame())
		case p.peek(1) == '?':
			p.enter(newScriptletFrame())
		default:
			p.enter(newOpenTagFrame(Verbose, false))
		}
	case b == '$' && isPlainSpace(p.peek(1)):
		p.enter(newInlineScriptFrame())
	case p.hasPrefixAt("--"):
		f.pendingIndentLen = f.currentIndentLen(p)
		p.enter(newDelimitedBlockFrame(f.pendingIndentLen))
	case p.hasPrefixAt("//"):
		p.enter(newCommentLineFrame(Concise))
	case p.hasPrefixAt("/*"):
		p.enter(newCommentBlockFrame(Concise))
	case b == '-':
		p.emitError(token.IllegalLineStart, "a line cannot start with a single '-'")
	default:
		f.pendingIndentLen = f.currentIndentLen(p)
		p.enter(newOpenTagFrame(Concise, true))
	}
}

// currentIndentLen recovers the indentation just consumed for the line
// currently being dispatched, by walking back from pos to the last
// non-whitespace-preceded line start. Recomputed rather than stored across
// the indent-consuming step above because processLineStart may itself
// advance pos (it does not, but keeping this self-contained avoids a second
// mutable field threaded through two methods).
func (f *conciseContentFrame) currentIndentLen(p *Parser) int {
	i := p.pos
	for i > 0 && p.source[i-1] != '\n' && p.source[i-1] != '\r' {
		i--
	}
	return p.pos - i
}

// processLineStart applies spec.md §4.4 steps 1-5 for the line whose first
// non-whitespace byte is now at p.pos, given its indentRange. Returns false
// if an error was raised and the caller should stop processing this byte.
func (f *conciseContentFrame) processLineStart(p *Parser, indentRange token.Range) bool {
	indentLen := indentRange.Len()
	for len(f.openItems) > 0 {
		top := f.openItems[len(f.openItems)-1]
		if top.indentLen < indentLen {
			break
		}
		f.openItems = f.openItems[:len(f.openItems)-1]
		if top.ending == EndingTag && p.handlers.OnCloseTag != nil {
			p.handlers.OnCloseTag(CloseTagEvent{Range: token.Range{Start: p.pos, End: p.pos}, TagName: top.tagName})
		}
	}

	if len(f.openItems) == 0 {
		if indentLen > 0 {
			p.emitError(token.BadIndentation, "unexpected indentation at root level")
			return false
		}
		return true
	}

	parent := &f.openItems[len(f.openItems)-1]
	if parent.ending != EndingTag {
		p.emitError(token.InvalidBody, "tag does not accept nested content")
		return false
	}
	if parent.bodyMode == ParsedTextBody && p.read() != '-' {
		p.emitError(token.IllegalLineStart, "parsed-text body requires lines to start with '-'")
		return false
	}
	if !parent.hasNested {
		parent.hasNested = true
		parent.nestedIndent = indentRange
	} else if !bytes.Equal(parent.nestedIndent.Slice(p.source), indentRange.Slice(p.source)) {
		p.emitError(token.BadIndentation, "nested lines must share the same indentation")
		return false
	}
	return true
}

func (f *conciseContentFrame) OnReturn(p *Parser, child frame) {
	c, ok := child.(*openTagFrame)
	if !ok {
		// A mixed verbose "<...>" subtree (its contentFrame/tagBodyFrame)
		// has fully unwound back to us via its own close tag or EOF, or a
		// "<!--", "<![CDATA[", "<!doctype", "<!" or "<?" construct has
		// closed: resume concise line tracking.
		f.atLineStart = true
		return
	}
	if !c.concise {
		// Mixed verbose tag at a concise line start (spec.md §4.4): a
		// body-accepting one is read by an ordinary verbose contentFrame,
		// the same way a verbose document reads any tag's body, and that
		// frame returns here itself once its close tag (or EOF) unwinds
		// it — concise line tracking must not resume mid-tag. A
		// void/self-closed verbose tag has no body, so resume now.
		if c.ending == EndingTag {
			p.enter(newTagBodyFrame(c.bodyMode))
			return
		}
		f.atLineStart = true
		return
	}
	f.atLineStart = true
	f.openItems = append(f.openItems, conciseOpenItem{
		indentLen: f.pendingIndentLen,
		tagName:   c.tagName,
		ending:    c.ending,
		bodyMode:  c.bodyMode,
	})
}

// OnEOL fires only when this frame itself is directly on top of the stack
// at a line terminator: a blank line, or the line terminator right after a
// void/self-closed mixed verbose tag with nothing else on its line. Either
// way the next byte starts a fresh line.
func (f *conciseContentFrame) OnEOL(p *Parser) {
	f.atLineStart = true
}

func (f *conciseContentFrame) OnEOF(p *Parser) {
	for i := len(f.openItems) - 1; i >= 0; i-- {
		top := f.openItems[i]
		if top.ending == EndingTag && p.handlers.OnCloseTag != nil {
			p.handlers.OnCloseTag(CloseTagEvent{Range: token.Range{Start: p.maxPos, End: p.maxPos}, TagName: top.tagName})
		}
	}
	f.openItems = nil
}

// inlineScriptFrame is INLINE-SCRIPT (spec.md §4.4): a "$ ..." line in
// concise mode, reported verbatim as a single text span; the embedded
// language inside it is not otherwise tokenized here.
type inlineScriptFrame struct {
	base
}

func newInlineScriptFrame() *inlineScriptFrame {
	return &inlineScriptFrame{base: base{k: kInlineScript}}
}

func (f *inlineScriptFrame) OnChar(p *Parser, b byte) {
	p.skip(1)
}

func (f *inlineScriptFrame) OnEOL(p *Parser) {
	f.emit(p, p.eolStart())
	p.exitAt(p.eolStart())
}

func (f *inlineScriptFrame) OnEOF(p *Parser) {
	f.emit(p, p.maxPos)
}

func (f *inlineScriptFrame) emit(p *Parser, end int) {
	if p.handlers.OnText != nil && end > f.start {
		p.handlers.OnText(token.Range{Start: f.start, End: end})
	}
}

// delimitedBlockFrame is BEGIN-DELIMITED-HTML-BLOCK (spec.md §4.4): a
// "--" marked block of literal text that continues across every
// subsequent line indented more than the line the "--" appeared on, and
// ends (without consuming the dedented line) the moment one doesn't.
type delimitedBlockFrame struct {
	base

	markerIndentLen int
	opened          int // bytes of "--" consumed so far
	textStart       int
}

func newDelimitedBlockFrame(markerIndentLen int) *delimitedBlockFrame {
	return &delimitedBlockFrame{base: base{k: kDelimitedBlock}, markerIndentLen: markerIndentLen}
}

func (f *delimitedBlockFrame) OnChar(p *Parser, b byte) {
	if f.opened < 2 {
		f.opened++
		p.skip(1)
		if f.opened == 2 {
			f.textStart = p.pos
		}
		return
	}
	p.skip(1)
}

func (f *delimitedBlockFrame) OnEOL(p *Parser) {
	n := 0
	for p.pos+n < p.maxPos && isPlainSpace(p.source[p.pos+n]) {
		n++
	}
	if p.pos+n >= p.maxPos || token.IsEOL(p.source[p.pos+n]) {
		return // blank line: stays part of the block's text
	}
	if n > f.markerIndentLen {
		return // still indented under the block
	}
	end := p.eolStart()
	if p.handlers.OnText != nil && end > f.textStart {
		p.handlers.OnText(token.Range{Start: f.textStart, End: end})
	}
	p.exitAt(end)
}

func (f *delimitedBlockFrame) OnEOF(p *Parser) {
	if p.handlers.OnText != nil && p.maxPos > f.textStart {
		p.handlers.OnText(token.Range{Start: f.textStart, End: p.maxPos})
	}
}

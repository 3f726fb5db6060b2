package htmlx

import "github.com/aledsdavies/htmlx/pkgs/token"

func isNameByte(b byte) bool {
	return token.IsIdentPart(b) || b == '-' || b == ':'
}

// openTagFrame is OPEN-TAG merged with TAG-NAME (spec.md §2/§4.1): it reads
// the tag name and any "#id"/".class" shorthand inline (stage 1), emits
// OnOpenTagName, then reads the attribute list (stage 2) until it decides
// how the tag ends.
type openTagFrame struct {
	base

	mode    Mode
	concise bool
	stage   int // 0: consume '<' (verbose only); 1: name+shorthand; 2: attributes

	nameStart int
	segStart  int
	segKind   byte // 0, '#', or '.'

	tagName             token.Range
	shorthandID         *token.Range
	shorthandClassNames []token.Range

	bodyMode   BodyMode
	ending     TagEnding
	attributes []Attr
}

func newOpenTagFrame(mode Mode, concise bool) *openTagFrame {
	stage := 1
	if !concise {
		stage = 0
	}
	return &openTagFrame{
		base:    base{k: kOpenTag},
		mode:    mode,
		concise: concise,
		stage:   stage,
		bodyMode: HTMLBody,
		ending:   EndingTag,
	}
}

func (f *openTagFrame) OnEnter(p *Parser) {
	if f.concise {
		f.nameStart = f.start
		f.segStart = f.start
	}
}

func (f *openTagFrame) OnChar(p *Parser, b byte) {
	switch f.stage {
	case 0:
		p.skip(1) // the '<'
		f.stage = 1
		f.nameStart = p.pos
		f.segStart = p.pos
	case 1:
		f.scanNameAndShorthand(p, b)
	case 2:
		f.scanAttributesOrEnd(p, b)
	}
}

func (f *openTagFrame) scanNameAndShorthand(p *Parser, b byte) {
	if isNameByte(b) {
		p.skip(1)
		return
	}
	f.closeRun(p.pos)
	switch b {
	case '#':
		f.segKind = '#'
		p.skip(1)
		f.segStart = p.pos
	case '.':
		f.segKind = '.'
		p.skip(1)
		f.segStart = p.pos
	default:
		f.finishNameStage(p, p.pos)
	}
}

func (f *openTagFrame) closeRun(end int) {
	if f.segStart == end {
		return
	}
	r := token.Range{Start: f.segStart, End: end}
	switch f.segKind {
	case 0:
		f.tagName = r
	case '#':
		f.shorthandID = &r
	case '.':
		f.shorthandClassNames = append(f.shorthandClassNames, r)
	}
}

func (f *openTagFrame) finishNameStage(p *Parser, end int) {
	if p.handlers.OnOpenTagName != nil {
		p.handlers.OnOpenTagName(OpenTagNameEvent{
			Range:               token.Range{Start: f.start, End: end},
			TagName:             f.tagName,
			ShorthandID:         f.shorthandID,
			ShorthandClassNames: f.shorthandClassNames,
			Concise:             f.concise,
			tag:                 f,
		})
	}
	f.stage = 2
}

func (f *openTagFrame) scanAttributesOrEnd(p *Parser, b byte) {
	if isPlainSpace(b) {
		p.skip(1)
		return
	}
	switch {
	case b == '/' && p.peek(1) == '>':
		p.skip(2)
		f.finishTag(p, EndingSelfClosed, p.pos)
	case b == '>':
		p.skip(1)
		f.finishTag(p, EndingTag, p.pos)
	case f.concise && (b == ']' || b == ';'):
		p.skip(1)
		f.finishTag(p, EndingTag, p.pos)
	case b == ',':
		p.skip(1)
	default:
		p.enter(newAttributeFrame(f.mode))
	}
}

// finishTag closes the tag, recording end as its final range end. end is
// p.pos for an explicit in-line terminator ('>' , '/>', concise ']'/';')
// and eolStart() when EOL itself ends the tag, so the tag's range never
// includes a line terminator it never explicitly consumed.
func (f *openTagFrame) finishTag(p *Parser, ending TagEnding, end int) {
	if f.stage == 1 {
		f.closeRun(end)
		f.finishNameStage(p, end)
	}
	f.ending = ending
	if ending == EndingTag && isVoidElement(string(f.tagName.Slice(p.source))) {
		f.ending = EndingOpenOnly
	}
	p.exitAt(end)
}

func (f *openTagFrame) OnEOL(p *Parser) {
	if !f.concise {
		return
	}
	if f.stage == 1 {
		f.closeRun(p.eolStart())
		f.finishNameStage(p, p.eolStart())
	}
	if f.stage == 2 {
		f.finishTag(p, EndingTag, p.eolStart())
	}
}

func (f *openTagFrame) OnEOF(p *Parser) {
	p.emitErrorAt(token.MalformedOpenTag, "unterminated open tag", token.Range{Start: f.start, End: p.maxPos})
}

func (f *openTagFrame) OnReturn(p *Parser, child frame) {
	af, ok := child.(*attributeFrame)
	if !ok {
		return
	}
	attr := Attr{
		Name:     af.name,
		HasValue: af.hasValue,
		Value:    af.value,
		Spread:   af.spread,
		Bound:    af.bound,
		Default:  af.isDefault,
		Method:   af.method,
		Params:   af.params,
		Body:     af.body,
	}
	if af.argsSet {
		r := af.args
		attr.Args = &r
	}
	f.attributes = append(f.attributes, attr)
	// A concise attribute that finished as part of this EOL's unwind
	// cascade (state_attribute.go's own inEOLUnwind check) means the line
	// just ended: the tag ends here too, rather than treating the next
	// line's bytes as more attributes of it.
	if f.concise && p.inEOLUnwind {
		f.finishTag(p, EndingTag, p.eolStart())
	}
}

func (f *openTagFrame) OnExit(p *Parser) {
	if p.handlers.OnOpenTag == nil {
		return
	}
	p.handlers.OnOpenTag(OpenTagEvent{
		Range:               token.Range{Start: f.start, End: f.end},
		TagName:             f.tagName,
		Attributes:          f.attributes,
		Concise:             f.concise,
		OpenTagOnly:          f.ending == EndingOpenOnly,
		SelfClosed:           f.ending == EndingSelfClosed,
		ShorthandID:         f.shorthandID,
		ShorthandClassNames: f.shorthandClassNames,
	})
}

// closeTagFrame is CLOSE-TAG (spec.md §4.5): "</name>" in verbose mode.
// Concise mode never has this frame; closes are derived purely from
// indentation (§4.4).
type closeTagFrame struct {
	base

	opened    int // bytes of "</" consumed so far
	nameStart int
	tagName   token.Range
	nameSet   bool
}

func newCloseTagFrame() *closeTagFrame {
	return &closeTagFrame{base: base{k: kCloseTag}}
}

func (f *closeTagFrame) OnChar(p *Parser, b byte) {
	if f.opened < 2 {
		f.opened++
		p.skip(1)
		if f.opened == 2 {
			f.nameStart = p.pos
		}
		return
	}
	if !f.nameSet && isNameByte(b) {
		p.skip(1)
		return
	}
	if !f.nameSet {
		f.tagName = token.Range{Start: f.nameStart, End: p.pos}
		f.nameSet = true
	}
	switch {
	case isPlainSpace(b):
		p.skip(1)
	case b == '>':
		p.skip(1)
		p.exit()
	default:
		p.emitError(token.MalformedOpenTag, "malformed close tag")
	}
}

func (f *closeTagFrame) OnEOL(p *Parser) {
	p.emitError(token.MalformedOpenTag, "unterminated close tag")
}

func (f *closeTagFrame) OnEOF(p *Parser) {
	p.emitErrorAt(token.MalformedOpenTag, "unterminated close tag", token.Range{Start: f.start, End: p.maxPos})
}

func (f *closeTagFrame) OnExit(p *Parser) {
	if p.handlers.OnCloseTag != nil {
		p.handlers.OnCloseTag(CloseTagEvent{Range: token.Range{Start: f.start, End: f.end}, TagName: f.tagName})
	}
}

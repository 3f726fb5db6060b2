package htmlx

import "github.com/aledsdavies/htmlx/pkgs/token"

// PlaceholderEvent is the payload of OnPlaceholder: a "${...}" or "$!{...}"
// fragment found in text or an attribute value.
type PlaceholderEvent struct {
	token.Range
	Value  token.Range // the expression inside the braces
	Escape bool        // true for "${...}", false for "$!{...}"
}

// OpenTagNameEvent is the payload of OnOpenTagName, fired as soon as the
// tag name (and any shorthand id/class) has been read, before attributes
// are scanned. SetParseOptions lets a handler narrow the tag's body mode
// for the remainder of this tag, per spec.md §6.
type OpenTagNameEvent struct {
	token.Range
	TagName             token.Range
	ShorthandID         *token.Range
	ShorthandClassNames []token.Range
	Concise             bool

	tag *openTagFrame
}

// SetParseOptions narrows how this tag's body will be lexed. The body mode
// is read when the open tag finishes, so a call made after the tag's
// OnOpenTag handler has returned has no effect.
func (e OpenTagNameEvent) SetParseOptions(opt ParseOption) {
	e.tag.bodyMode = opt.bodyMode()
}

// Attr is one fully-parsed attribute, reported as part of OnOpenTag's
// attribute list.
type Attr struct {
	Name     token.Range
	HasValue bool
	Value    token.Range
	Args     *token.Range
	Spread   bool
	Bound    bool
	Default  bool
	Method   bool
	Params   token.Range
	Body     token.Range
}

// OpenTagEvent is the payload of OnOpenTag, fired once the tag's full
// attribute list (and, for open-only/self-closed tags, the whole tag) has
// been read.
type OpenTagEvent struct {
	token.Range
	TagName             token.Range
	Var                 *token.Range
	Argument             *token.ValueRange
	Params              *token.Range
	Attributes          []Attr
	Concise             bool
	OpenTagOnly         bool
	SelfClosed          bool
	ShorthandID         *token.Range
	ShorthandClassNames []token.Range
}

// CloseTagEvent is the payload of OnCloseTag.
type CloseTagEvent struct {
	token.Range
	TagName token.Range
}

// AttrValueEvent is the payload of OnAttrValue.
type AttrValueEvent struct {
	token.Range
	Value token.Range
	Bound bool
}

// AttrMethodEvent is the payload of OnAttrMethod (the "name(args) { body }"
// shorthand).
type AttrMethodEvent struct {
	token.Range
	Params token.Range
	Body   token.Range
}

// ScriptletEvent is the payload of OnScriptlet ("<?...?>" regions).
type ScriptletEvent struct {
	token.Range
	Value token.Range
	Tag   bool // true if written with the tag-like "<?xml ... >" shape, closed by a bare '>'
	Block bool
}

// Handlers is the set of callbacks the tokenizer invokes during a parse.
// Every field is optional; a nil handler is simply skipped. Handlers are
// invoked synchronously, in strict source order, and never after the
// first OnError call except OnFinish (spec.md §7/§8 invariant 4).
type Handlers struct {
	OnText        func(token.Range)
	OnPlaceholder func(PlaceholderEvent)
	OnOpenTagName func(OpenTagNameEvent)
	OnOpenTag     func(OpenTagEvent)
	OnCloseTag    func(CloseTagEvent)
	OnAttrName    func(token.Range)
	OnAttrArgs    func(token.ValueRange)
	OnAttrValue   func(AttrValueEvent)
	OnAttrSpread  func(token.ValueRange)
	OnAttrMethod  func(AttrMethodEvent)
	OnComment     func(token.ValueRange)
	OnCDATA       func(token.ValueRange)
	OnDoctype     func(token.ValueRange)
	OnDeclaration func(token.ValueRange)
	OnScriptlet   func(ScriptletEvent)
	OnError       func(token.Error)
	OnFinish      func()
}

package htmlx

// kind discriminates frame types without relying on Go's dynamic type
// identity, so EOF-error messages and return(child) dispatch can name the
// parent cheaply (§9 design note: "store the parent's discriminator in
// each frame rather than traversing by identity").
type kind int

const (
	kTopLevelHTML kind = iota
	kConciseContent
	kOpenTag
	kTagName
	kCloseTag
	kAttribute
	kExpression
	kString
	kTemplateString
	kRegularExpression
	kCommentLine
	kCommentBlock
	kPlaceholder
	kCDATA
	kDeclaration
	kDoctype
	kHTMLComment
	kScriptlet
	kInlineScript
	kDelimitedBlock
)

func (k kind) String() string {
	names := [...]string{
		"TOP-LEVEL-HTML", "CONCISE-HTML-CONTENT", "OPEN-TAG", "TAG-NAME",
		"CLOSE-TAG", "ATTRIBUTE", "EXPRESSION", "STRING", "TEMPLATE-STRING",
		"REGULAR-EXPRESSION", "JS-COMMENT-LINE", "JS-COMMENT-BLOCK",
		"PLACEHOLDER", "CDATA", "DECLARATION", "DOCTYPE", "HTML-COMMENT",
		"SCRIPTLET", "INLINE-SCRIPT", "BEGIN-DELIMITED-HTML-BLOCK",
	}
	if int(k) < len(names) {
		return names[k]
	}
	return "UNKNOWN-STATE"
}

// frame is the interface every state definition implements. Hooks match
// spec.md §2/§4.1 exactly: enter/exit/char/eol/eof/return(child). Each
// concrete frame type embeds base, which supplies header bookkeeping and
// no-op defaults for every hook except OnChar (which every state must
// define — there is no sensible default for "a byte arrived").
type frame interface {
	header() *base
	OnEnter(p *Parser)
	OnChar(p *Parser, b byte)
	OnEOL(p *Parser)
	OnEOF(p *Parser)
	OnExit(p *Parser)
	OnReturn(p *Parser, child frame)
}

// base is the common header every frame embeds: its kind, its parent
// frame, and its range as it grows while bytes are consumed. Invariant 2
// (spec.md §3): start ≤ end ≤ pos ≤ len(source) holds for every frame for
// as long as it is live.
type base struct {
	k      kind
	parent frame
	start  int
	end    int
}

func (b *base) header() *base           { return b }
func (*base) OnEnter(p *Parser)         {}
func (*base) OnEOL(p *Parser)           {}
func (*base) OnEOF(p *Parser)           {}
func (*base) OnExit(p *Parser)          {}
func (*base) OnReturn(p *Parser, _ frame) {}

func newBase(k kind, parent frame, start int) base {
	return base{k: k, parent: parent, start: start, end: start}
}

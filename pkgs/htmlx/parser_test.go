package htmlx

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/aledsdavies/htmlx/pkgs/token"
)

// recorder collects every handler invocation as a comparable string,
// following the teacher's assertTokens style (pkgs/lexer/lexer_test.go):
// cmp.Diff against a position-stripped-where-irrelevant projection rather
// than asserting on raw byte offsets everywhere.
type recorder struct {
	events []string
	src    []byte
}

func newRecorder(src []byte) *recorder { return &recorder{src: src} }

func (r *recorder) s(rng token.Range) string { return string(rng.Slice(r.src)) }

func (r *recorder) handlers() Handlers {
	return Handlers{
		OnText: func(rng token.Range) {
			r.events = append(r.events, fmt.Sprintf("text(%q)", r.s(rng)))
		},
		OnPlaceholder: func(e PlaceholderEvent) {
			r.events = append(r.events, fmt.Sprintf("placeholder(%q escape=%v)", r.s(e.Value), e.Escape))
		},
		OnOpenTagName: func(e OpenTagNameEvent) {
			r.events = append(r.events, fmt.Sprintf("tagname(%q)", r.s(e.TagName)))
		},
		OnOpenTag: func(e OpenTagEvent) {
			names := make([]string, len(e.Attributes))
			for i, a := range e.Attributes {
				names[i] = r.s(a.Name)
			}
			r.events = append(r.events, fmt.Sprintf("opentag(%q void=%v self=%v attrs=%v)", r.s(e.TagName), e.OpenTagOnly, e.SelfClosed, names))
		},
		OnCloseTag: func(e CloseTagEvent) {
			r.events = append(r.events, fmt.Sprintf("closetag(%q)", r.s(e.TagName)))
		},
		OnAttrValue: func(e AttrValueEvent) {
			r.events = append(r.events, fmt.Sprintf("attrvalue(%q bound=%v)", r.s(e.Value), e.Bound))
		},
		OnAttrArgs: func(v token.ValueRange) {
			r.events = append(r.events, fmt.Sprintf("attrargs(%q)", r.s(v.Value)))
		},
		OnAttrMethod: func(e AttrMethodEvent) {
			r.events = append(r.events, fmt.Sprintf("attrmethod(params=%q body=%q)", r.s(e.Params), r.s(e.Body)))
		},
		OnComment: func(v token.ValueRange) {
			r.events = append(r.events, fmt.Sprintf("comment(%q)", r.s(v.Value)))
		},
		OnCDATA: func(v token.ValueRange) {
			r.events = append(r.events, fmt.Sprintf("cdata(%q)", r.s(v.Value)))
		},
		OnDoctype: func(v token.ValueRange) {
			r.events = append(r.events, fmt.Sprintf("doctype(%q)", r.s(v.Value)))
		},
		OnDeclaration: func(v token.ValueRange) {
			r.events = append(r.events, fmt.Sprintf("declaration(%q)", r.s(v.Value)))
		},
		OnScriptlet: func(e ScriptletEvent) {
			r.events = append(r.events, fmt.Sprintf("scriptlet(%q tag=%v block=%v)", r.s(e.Value), e.Tag, e.Block))
		},
		OnError: func(e token.Error) {
			r.events = append(r.events, fmt.Sprintf("error(%s)", e.Code))
		},
		OnFinish: func() {
			r.events = append(r.events, "finish")
		},
	}
}

func parseAll(t *testing.T, src string, opts ...Option) []string {
	t.Helper()
	r := newRecorder([]byte(src))
	Parse([]byte(src), r.handlers(), opts...)
	return r.events
}

func assertEvents(t *testing.T, src string, want []string, opts ...Option) {
	t.Helper()
	got := parseAll(t, src, opts...)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("events mismatch for %q (-want +got):\n%s", src, diff)
	}
}

func TestVerboseOpenCloseTag(t *testing.T) {
	assertEvents(t, `<div>hi</div>`, []string{
		`tagname("div")`,
		`opentag("div" void=false self=false attrs=[])`,
		`text("hi")`,
		`closetag("div")`,
		"finish",
	})
}

func TestVoidElementNeedsNoSlash(t *testing.T) {
	got := parseAll(t, `<br>after`)
	require.Contains(t, got, `opentag("br" void=true self=false attrs=[])`)
	require.Contains(t, got, `text("after")`)
}

func TestSelfClosedTag(t *testing.T) {
	got := parseAll(t, `<foo/>`)
	require.Contains(t, got, `opentag("foo" void=false self=true attrs=[])`)
}

func TestAttributeNameOnly(t *testing.T) {
	got := parseAll(t, `<input disabled>`)
	require.Contains(t, got, `opentag("input" void=true self=false attrs=[disabled])`)
}

func TestAttributeValue(t *testing.T) {
	got := parseAll(t, `<a href="/x">`)
	require.Contains(t, got, `attrvalue("\"/x\"" bound=false)`)
	require.Contains(t, got, `opentag("a" void=false self=false attrs=[href])`)
}

func TestAttributeBoundValue(t *testing.T) {
	got := parseAll(t, `<input value:=user.name>`)
	require.Contains(t, got, `attrvalue("user.name" bound=true)`)
}

func TestAttributeArgumentAndMethod(t *testing.T) {
	got := parseAll(t, `<my-widget on-click(event) { doThing(event); }>`)
	require.Contains(t, got, `attrmethod(params="(event)" body="doThing(event);")`)
}

func TestShorthandIDAndClass(t *testing.T) {
	r := newRecorder([]byte(`<div#main.a.b>`))
	var ev *OpenTagNameEvent
	h := r.handlers()
	h.OnOpenTagName = func(e OpenTagNameEvent) { ev = &e }
	Parse([]byte(`<div#main.a.b>`), h)
	require.NotNil(t, ev)
	require.Equal(t, "main", string(ev.ShorthandID.Slice(r.src)))
	require.Len(t, ev.ShorthandClassNames, 2)
}

func TestPlaceholderInText(t *testing.T) {
	got := parseAll(t, `<p>hi ${name} bye</p>`)
	require.Contains(t, got, `placeholder("name" escape=true)`)
}

func TestPlaceholderUnescaped(t *testing.T) {
	got := parseAll(t, `<p>$!{raw}</p>`)
	require.Contains(t, got, `placeholder("raw" escape=false)`)
}

func TestHTMLComment(t *testing.T) {
	got := parseAll(t, `<!-- hello --><div></div>`)
	require.Contains(t, got, `comment(" hello ")`)
}

func TestCDATA(t *testing.T) {
	got := parseAll(t, `<![CDATA[ raw <stuff> ]]>`)
	require.Contains(t, got, `cdata(" raw <stuff> ")`)
}

func TestDoctype(t *testing.T) {
	got := parseAll(t, `<!DOCTYPE html>`)
	require.Contains(t, got, `doctype(" html")`)
}

func TestScriptletBlock(t *testing.T) {
	got := parseAll(t, `<?php echo 1; ?>`)
	require.Contains(t, got, `scriptlet("php echo 1; " tag=false block=true)`)
}

func TestJSStringAndRegexInsideAttrValue(t *testing.T) {
	got := parseAll(t, `<a onclick="x = /foo/ + 'bar'">`)
	require.Contains(t, got, `attrvalue("\"x = /foo/ + 'bar'\"" bound=false)`)
}

func TestUnterminatedAttributeValueAttributesToOpenTag(t *testing.T) {
	got := parseAll(t, `<a b="hi`)
	require.Contains(t, got, `error(MALFORMED_OPEN_TAG)`)
	for _, ev := range got {
		require.NotEqual(t, "error(INVALID_EXPRESSION)", ev)
	}
	require.Equal(t, "finish", got[len(got)-1])
}

func TestConciseBasicNesting(t *testing.T) {
	src := "div\n  span\n    text\n  p\n"
	got := parseAll(t, src, WithConciseRoot())
	require.Contains(t, got, `opentag("div" void=false self=false attrs=[])`)
	require.Contains(t, got, `opentag("span" void=false self=false attrs=[])`)
	require.Contains(t, got, `closetag("span")`)
	require.Contains(t, got, `opentag("p" void=false self=false attrs=[])`)
	require.Equal(t, "finish", got[len(got)-1])
}

func TestConciseInlineScriptRangeExcludesNewline(t *testing.T) {
	got := parseAll(t, "div\n  $ x + 1\n", WithConciseRoot())
	require.Contains(t, got, `text("$ x + 1")`)
}

func TestConciseDelimitedBlockRangeExcludesTrailingLine(t *testing.T) {
	src := "div\n  --\n    raw <stuff>\n    more raw\n  p\n"
	got := parseAll(t, src, WithConciseRoot())
	// textStart lands right after the marker's "--", so the captured text
	// begins with that line's own trailing newline.
	require.Contains(t, got, "text(\"\\n    raw <stuff>\\n    more raw\")")
	require.Contains(t, got, `opentag("p" void=false self=false attrs=[])`)
}

func TestConciseBadIndentationAtRoot(t *testing.T) {
	src := "  div\n"
	got := parseAll(t, src, WithConciseRoot())
	require.Contains(t, got, `error(BAD_INDENTATION)`)
}

func TestConciseVoidTagRejectsNestedLine(t *testing.T) {
	src := "br\n  span\n"
	got := parseAll(t, src, WithConciseRoot())
	require.Contains(t, got, `error(INVALID_BODY)`)
}

func TestConciseMixedVerboseSubtreeBodyIsRead(t *testing.T) {
	src := "div\n  <span>hi</span>\n  p\n"
	got := parseAll(t, src, WithConciseRoot())
	require.Contains(t, got, `opentag("div" void=false self=false attrs=[])`)
	require.Contains(t, got, `opentag("span" void=false self=false attrs=[])`)
	require.Contains(t, got, `text("hi")`)
	require.Contains(t, got, `closetag("span")`)
	require.Contains(t, got, `opentag("p" void=false self=false attrs=[])`)
	require.Contains(t, got, `closetag("p")`)
	require.Contains(t, got, `closetag("div")`)
	for _, e := range got {
		require.NotEqual(t, "error(BAD_INDENTATION)", e)
	}
	require.Equal(t, "finish", got[len(got)-1])
}

func TestConciseMixedVerboseVoidSubtreeResumesLineTracking(t *testing.T) {
	src := "div\n  <br>\n  p\n"
	got := parseAll(t, src, WithConciseRoot())
	require.Contains(t, got, `opentag("br" void=true self=false attrs=[])`)
	require.Contains(t, got, `opentag("p" void=false self=false attrs=[])`)
	require.Contains(t, got, `closetag("div")`)
	for _, e := range got {
		require.NotEqual(t, "error(BAD_INDENTATION)", e)
	}
}

func TestAttributeWhitespaceSeparatesBareNames(t *testing.T) {
	got := parseAll(t, `<input disabled readonly>`)
	require.Contains(t, got, `opentag("input" void=true self=false attrs=[disabled readonly])`)
}

func TestConciseTagEndingAtEOLExcludesNewline(t *testing.T) {
	r := newRecorder([]byte("div\n  p\n"))
	var divRange, pRange token.Range
	h := r.handlers()
	h.OnOpenTag = func(e OpenTagEvent) {
		if r.s(e.TagName) == "div" {
			divRange = e.Range
		} else if r.s(e.TagName) == "p" {
			pRange = e.Range
		}
	}
	Parse([]byte("div\n  p\n"), h, WithConciseRoot())
	require.Equal(t, "div", string(divRange.Slice(r.src)))
	require.Equal(t, "p", string(pRange.Slice(r.src)))
}

func TestFinishAlwaysCalledOnce(t *testing.T) {
	for _, src := range []string{``, `<div>`, `<a b="`, "div\n  span\n"} {
		got := parseAll(t, src)
		n := 0
		for _, e := range got {
			if e == "finish" {
				n++
			}
		}
		require.Equalf(t, 1, n, "source %q", src)
	}
}

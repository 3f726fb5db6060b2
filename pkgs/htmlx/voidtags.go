package htmlx

// voidElements are HTML void elements: they never have a body and are
// always open-tag-only, even without an explicit "/>". This is a
// supplement to spec.md, which does not enumerate HTML's void-element set
// but requires (§3, OpenTag.ending) that the parser decide "openOnly" vs
// "tag" somehow; we ground the table in the HTML Standard's list.
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"param": true, "source": true, "track": true, "wbr": true,
}

func isVoidElement(name string) bool {
	return voidElements[name]
}

package render

import "github.com/microcosm-cc/bluemonday"

var basicElements = []string{
	"a", "abbr", "b", "blockquote", "br", "cite", "code", "dd", "dfn", "dl",
	"dt", "em", "i", "kbd", "li", "mark", "ol", "p", "pre", "q", "s", "samp",
	"small", "strike", "strong", "sub", "sup", "time", "u", "ul",
}

var headingElements = []string{"h1", "h2", "h3", "h4", "h5", "h6", "hgroup"}

// newPolicy allows basic text formatting plus headings. Links get
// rel="nofollow" and may only point at http, https, ftp, mailto or
// relative URLs.
func newPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements(basicElements...)
	p.AllowElements(headingElements...)

	p.AllowAttrs("href").OnElements("a")
	p.AllowURLSchemes("ftp", "http", "https", "mailto")
	p.AllowRelativeURLs(true)
	p.RequireNoFollowOnLinks(true)

	p.AllowAttrs("title").OnElements("abbr", "dfn")
	p.AllowAttrs("cite").OnElements("blockquote", "q")
	p.AllowAttrs("datetime", "pubdate").OnElements("time")
	return p
}

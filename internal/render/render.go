// Package render turns stored page bytes into something safe to serve.
//
// Plain text (.txt) is passed through untouched and served as text/plain.
// Markdown (.md, .markdown) is converted with goldmark. Everything that is
// not plain text is then run through an allow-list sanitizer, so raw HTML
// pages and inline HTML inside Markdown only keep basic formatting tags.
package render

import (
	"bytes"
	"fmt"
	"path"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/renderer/html"
)

const (
	ContentTypeHTML  = "text/html; charset=utf-8"
	ContentTypePlain = "text/plain; charset=utf-8"
)

var tagPattern = regexp.MustCompile(`<.*?>`)

type Document struct {
	Body        string
	ContentType string
}

// Plain reports whether the body must be served verbatim.
func (d *Document) Plain() bool {
	return d.ContentType == ContentTypePlain
}

type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

func New() *Renderer {
	return &Renderer{
		// raw HTML is kept here and stripped by the sanitizer afterwards
		md:     goldmark.New(goldmark.WithRendererOptions(html.WithUnsafe())),
		policy: newPolicy(),
	}
}

func (r *Renderer) Render(name string, content []byte) (*Document, error) {
	// extensions match case-sensitively, so page.MD is sanitized as HTML
	switch path.Ext(name) {
	case ".txt":
		return &Document{Body: string(content), ContentType: ContentTypePlain}, nil
	case ".md", ".markdown":
		var buf bytes.Buffer
		if err := r.md.Convert(content, &buf); err != nil {
			return nil, fmt.Errorf("convert markdown: %w", err)
		}
		content = buf.Bytes()
	}
	return &Document{Body: string(r.policy.SanitizeBytes(content)), ContentType: ContentTypeHTML}, nil
}

// Title takes the first whitespace separated token of a rendered body and
// drops anything that looks like a tag.
func Title(body string) string {
	fields := strings.Fields(body)
	if len(fields) == 0 {
		return ""
	}
	return tagPattern.ReplaceAllString(fields[0], "")
}

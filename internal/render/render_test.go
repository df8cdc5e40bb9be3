package render

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRender_MarkdownHeading(t *testing.T) {
	doc, err := New().Render("page.md", []byte("# Hi"))
	require.NoError(t, err)
	require.Equal(t, ContentTypeHTML, doc.ContentType)
	require.False(t, doc.Plain())
	require.Contains(t, doc.Body, "<h1>Hi</h1>")
}

func TestRender_MarkdownConstructs(t *testing.T) {
	src := "## Sub\n\n- one\n- two\n\n*em* and **strong** [link](https://example.com)\n\n```\ncode\n```\n"
	doc, err := New().Render("notes.markdown", []byte(src))
	require.NoError(t, err)
	require.Contains(t, doc.Body, "<h2>Sub</h2>")
	require.Contains(t, doc.Body, "<li>one</li>")
	require.Contains(t, doc.Body, "<em>em</em>")
	require.Contains(t, doc.Body, "<strong>strong</strong>")
	require.Contains(t, doc.Body, `href="https://example.com"`)
	require.Contains(t, doc.Body, `rel="nofollow"`)
	require.Contains(t, doc.Body, "<pre><code>code\n</code></pre>")
}

func TestRender_StripsScript(t *testing.T) {
	src := "# Title\n\n<script>alert(1)</script>\n\n<p onclick=\"x()\">text</p>\n"
	doc, err := New().Render("page.md", []byte(src))
	require.NoError(t, err)
	require.NotContains(t, doc.Body, "<script")
	require.NotContains(t, doc.Body, "alert(1)")
	require.NotContains(t, doc.Body, "onclick")
	require.Contains(t, doc.Body, "<p>text</p>")
}

func TestRender_StripsDisallowedTagsKeepingText(t *testing.T) {
	doc, err := New().Render("index.html", []byte(`<div class="x"><hgroup><h3>Head</h3></hgroup><img src="a.png">kept</div>`))
	require.NoError(t, err)
	require.Contains(t, doc.Body, "<hgroup><h3>Head</h3></hgroup>")
	require.Contains(t, doc.Body, "kept")
	require.NotContains(t, doc.Body, "<div")
	require.NotContains(t, doc.Body, "<img")
}

func TestRender_JavascriptLinkDropped(t *testing.T) {
	doc, err := New().Render("page.md", []byte("[x](javascript:alert(1))"))
	require.NoError(t, err)
	require.NotContains(t, doc.Body, "javascript")
}

func TestRender_PlainTextPassthrough(t *testing.T) {
	raw := "<b>not html</b>\n# not markdown"
	doc, err := New().Render("notes.txt", []byte(raw))
	require.NoError(t, err)
	require.True(t, doc.Plain())
	require.Equal(t, raw, doc.Body)
}

func TestTitle(t *testing.T) {
	require.Equal(t, "Hello", Title("<h1>Hello</h1> world"))
	require.Equal(t, "Hi", Title("<h1>Hi</h1>\n"))
	require.Equal(t, "plain", Title("  plain words"))
	require.Equal(t, "", Title(""))
	require.Equal(t, "", Title("   \n"))
	require.Equal(t, "My", Title("<h1>My Page</h1>"))
}

func TestRender_ExtensionIsCaseSensitive(t *testing.T) {
	doc, err := New().Render("page.MD", []byte("# Hi\n\n<script>alert(1)</script>"))
	require.NoError(t, err)
	require.Equal(t, ContentTypeHTML, doc.ContentType)
	require.NotContains(t, doc.Body, "<h1>")
	require.Contains(t, doc.Body, "# Hi")
	require.NotContains(t, doc.Body, "alert(1)")

	doc, err = New().Render("NOTES.TXT", []byte("<b>bold</b><i onclick=\"x()\">it</i>"))
	require.NoError(t, err)
	require.False(t, doc.Plain())
	require.Contains(t, doc.Body, "<b>bold</b>")
	require.NotContains(t, doc.Body, "onclick")
}

package views

import (
	"bytes"
	"context"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	return buf.String()
}

func TestWriterEscapes(t *testing.T) {
	out := render(t, component(func(h *writer) {
		h.el("p", `<b>"hi"</b>`, "title", `a"b`, "hidden?", "", "required?", "1")
	}))
	assert.Equal(t, `<p title="a&#34;b" required>&lt;b&gt;&#34;hi&#34;&lt;/b&gt;</p>`, out)
}

func TestLinkSanitisesURL(t *testing.T) {
	out := render(t, Link("x", "javascript:alert(1)", ""))
	assert.NotContains(t, out, "javascript:")
	assert.Contains(t, render(t, Link("Agencies", "/admin/agencies?page=2", "nav")), `href="/admin/agencies?page=2"`)
}

func TestJoinAndText(t *testing.T) {
	assert.Equal(t, "a&amp;b", render(t, Join(Text("a"), Text("&"), Text("b"))))
}

// Package views renders the console screens as templ components. Components
// are plain Go built on templ.ComponentFunc; handlers serve them through
// templ.Handler-compatible rendering.
package views

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// writer is an HTML writer that keeps the first error so components can be
// written without checking each call.
type writer struct {
	ctx context.Context
	w   io.Writer
	err error
}

func component(fn func(h *writer)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &writer{ctx: ctx, w: w}
		fn(h)
		return h.err
	})
}

func (h *writer) raw(s string) {
	if h.err == nil {
		_, h.err = io.WriteString(h.w, s)
	}
}

func (h *writer) text(s string) {
	h.raw(templ.EscapeString(s))
}

// open writes a start tag. attrs are name/value pairs. A name ending in "?"
// is a boolean attribute written only when its value is non-empty.
func (h *writer) open(tag string, attrs ...string) {
	var b strings.Builder
	b.WriteByte('<')
	b.WriteString(tag)
	for i := 0; i+1 < len(attrs); i += 2 {
		name, value := attrs[i], attrs[i+1]
		if strings.HasSuffix(name, "?") {
			if value != "" {
				b.WriteByte(' ')
				b.WriteString(strings.TrimSuffix(name, "?"))
			}
			continue
		}
		b.WriteByte(' ')
		b.WriteString(name)
		b.WriteString(`="`)
		b.WriteString(templ.EscapeString(value))
		b.WriteByte('"')
	}
	b.WriteByte('>')
	h.raw(b.String())
}

func (h *writer) close(tag string) {
	h.raw("</" + tag + ">")
}

// el writes a complete element with escaped text content.
func (h *writer) el(tag, content string, attrs ...string) {
	h.open(tag, attrs...)
	h.text(content)
	h.close(tag)
}

func (h *writer) render(c templ.Component) {
	if h.err == nil && c != nil {
		h.err = c.Render(h.ctx, h.w)
	}
}

// children renders the component passed with templ.WithChildren.
func (h *writer) children() {
	if c := templ.GetChildren(h.ctx); h.err == nil && c != nil {
		h.err = c.Render(templ.ClearChildren(h.ctx), h.w)
	}
}

// href sanitises a URL for an href or action attribute.
func href(u string) string {
	return string(templ.URL(u))
}

func flag(b bool) string {
	if b {
		return "1"
	}
	return ""
}

// Text renders escaped text.
func Text(s string) templ.Component {
	return component(func(h *writer) { h.text(s) })
}

// Link renders an anchor.
func Link(label, url string, class string) templ.Component {
	return component(func(h *writer) { h.el("a", label, "href", href(url), "class", class) })
}

// Join renders components one after the other.
func Join(cs ...templ.Component) templ.Component {
	return component(func(h *writer) {
		for _, c := range cs {
			h.render(c)
		}
	})
}

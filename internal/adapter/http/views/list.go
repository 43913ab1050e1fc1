package views

import (
	"github.com/a-h/templ"

	"mesa-console/internal/i18n"
)

// List is a table screen: heading, filters, table and pager.
type List struct {
	Title   string
	Toolbar templ.Component
	Table   templ.Component
	Pager   templ.Component
}

func ListPage(l List) templ.Component {
	return component(func(h *writer) {
		h.open("section", "class", "list")
		h.el("h1", l.Title)
		h.render(l.Toolbar)
		h.render(l.Table)
		h.render(l.Pager)
		h.close("section")
	})
}

// ActionForm is a one-button POST form, used for row actions such as
// marking a notification read.
func ActionForm(action, label string, fields ...string) templ.Component {
	return component(func(h *writer) {
		h.open("form", "method", "post", "action", href(action), "class", "inline")
		for i := 0; i+1 < len(fields); i += 2 {
			h.open("input", "type", "hidden", "name", fields[i], "value", fields[i+1])
		}
		h.el("button", label, "type", "submit")
		h.close("form")
	})
}

// StatusForm is an inline select posting a new status for one row.
func StatusForm(action, label string, current string, choices []Choice) templ.Component {
	return component(func(h *writer) {
		h.open("form", "method", "post", "action", href(action), "class", "inline")
		h.open("select", "name", "status", "aria-label", label)
		for _, c := range choices {
			h.el("option", c.Label, "value", c.Value, "selected?", flag(c.Value == current))
		}
		h.close("select")
		h.el("button", label, "type", "submit")
		h.close("form")
	})
}

// ProductFilters is the toolbar of the product table: a seller select, a
// category box and the free-text search.
func ProductFilters(loc *i18n.Localizer, action, search string, sellers []Choice, seller, category string, actions ...templ.Component) templ.Component {
	return component(func(h *writer) {
		h.open("div", "class", "toolbar")
		h.open("form", "method", "get", "action", href(action), "role", "search")
		h.open("input", "type", "search", "name", "search", "value", search, "placeholder", loc.T("table.search"))
		h.open("select", "name", "seller", "aria-label", loc.T("field.seller"))
		h.el("option", loc.T("product.all_sellers"), "value", "")
		for _, c := range sellers {
			h.el("option", c.Label, "value", c.Value, "selected?", flag(c.Value == seller))
		}
		h.close("select")
		h.open("input", "type", "text", "name", "category", "value", category, "placeholder", loc.T("field.category"))
		h.el("button", loc.T("table.filter"), "type", "submit")
		h.close("form")
		for _, a := range actions {
			h.render(a)
		}
		h.close("div")
	})
}

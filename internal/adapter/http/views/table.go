package views

import (
	"github.com/a-h/templ"

	"mesa-console/internal/core/pagination"
	"mesa-console/internal/i18n"
)

// Column describes one table column.
type Column[T any] struct {
	Header string
	Cell   func(T) templ.Component
}

// TextColumn is a column whose cell is escaped text.
func TextColumn[T any](header string, value func(T) string) Column[T] {
	return Column[T]{Header: header, Cell: func(row T) templ.Component { return Text(value(row)) }}
}

// Table renders rows. An empty slice renders the empty message instead.
func Table[T any](cols []Column[T], rows []T, empty string) templ.Component {
	return component(func(h *writer) {
		if len(rows) == 0 {
			h.el("p", empty, "class", "empty")
			return
		}
		h.open("table", "class", "data")
		h.open("thead")
		h.open("tr")
		for _, c := range cols {
			h.el("th", c.Header, "scope", "col")
		}
		h.close("tr")
		h.close("thead")
		h.open("tbody")
		for _, row := range rows {
			h.open("tr")
			for _, c := range cols {
				h.open("td")
				h.render(c.Cell(row))
				h.close("td")
			}
			h.close("tr")
		}
		h.close("tbody")
		h.close("table")
	})
}

// Pager renders the range summary and page links. link returns the URL of
// a page. Controls at a boundary render disabled without an href.
func Pager(loc *i18n.Localizer, r pagination.Range, link func(page int) string) templ.Component {
	return component(func(h *writer) {
		h.open("nav", "class", "pager", "aria-label", loc.T("pager.label"))
		if r.Empty {
			h.el("span", loc.T("table.no_items"), "class", "range")
			h.close("nav")
			return
		}
		h.el("span", loc.T("table.range", i18n.Params{
			"start": r.StartItem,
			"end":   r.EndItem,
			"total": r.TotalItems,
		}), "class", "range")

		step := func(label string, page int, enabled bool) {
			if enabled {
				h.el("a", label, "href", href(link(page)))
				return
			}
			h.el("span", label, "class", "disabled", "aria-disabled", "true")
		}
		step(loc.T("pager.first"), 1, r.HasPrevious)
		step(loc.T("pager.previous"), r.CurrentPage-1, r.HasPrevious)
		for _, it := range pagination.Window(r.CurrentPage, r.TotalPages) {
			switch {
			case it.Ellipsis:
				h.el("span", "…", "class", "ellipsis")
			case it.Current:
				h.el("span", loc.Number(it.Number), "class", "current", "aria-current", "page")
			default:
				h.el("a", loc.Number(it.Number), "href", href(link(it.Number)))
			}
		}
		step(loc.T("pager.next"), r.CurrentPage+1, r.HasNext)
		step(loc.T("pager.last"), r.TotalPages, r.HasNext)
		h.close("nav")
	})
}

// Toolbar renders the search/status filter form above a table together
// with optional actions such as create and export links.
func Toolbar(loc *i18n.Localizer, action, search string, statuses []Choice, status string, actions ...templ.Component) templ.Component {
	return component(func(h *writer) {
		h.open("div", "class", "toolbar")
		h.open("form", "method", "get", "action", href(action), "role", "search")
		h.open("input", "type", "search", "name", "search", "value", search, "placeholder", loc.T("table.search"))
		if len(statuses) > 0 {
			h.open("select", "name", "status")
			h.el("option", loc.T("table.all_statuses"), "value", "")
			for _, c := range statuses {
				h.el("option", c.Label, "value", c.Value, "selected?", flag(c.Value == status))
			}
			h.close("select")
		}
		h.el("button", loc.T("table.filter"), "type", "submit")
		h.close("form")
		for _, a := range actions {
			h.render(a)
		}
		h.close("div")
	})
}

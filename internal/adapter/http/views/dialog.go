package views

import (
	"github.com/a-h/templ"

	"mesa-console/internal/core/confirm"
	"mesa-console/internal/i18n"
)

// ConfirmDialog renders a delete confirmation in state st posting to
// action. Cancel posts the same form with cancel=1. While a delete is in
// flight both buttons are disabled; a failed attempt shows an inline error
// and leaves the dialog open for another try.
func ConfirmDialog(loc *i18n.Localizer, c confirm.Copy, st confirm.State, action string) templ.Component {
	return component(func(h *writer) {
		busy := st == confirm.Pending
		h.open("dialog", "open?", "1", "class", "confirm", "aria-labelledby", "confirm-title", "aria-busy?", flag(busy))
		h.el("h2", c.Title, "id", "confirm-title")
		h.el("p", c.Message)
		if st == confirm.Failed {
			h.el("p", loc.T("confirm.failed"), "class", "error", "role", "alert")
		}
		h.open("form", "method", "post", "action", href(action))
		h.el("button", c.CancelLabel, "type", "submit", "name", "cancel", "value", "1",
			"class", "secondary", "formnovalidate?", "1", "disabled?", flag(busy))
		if busy {
			h.el("button", loc.T("confirm.deleting"), "type", "submit", "disabled?", "1")
		} else {
			h.el("button", c.ConfirmLabel, "type", "submit", "class", "danger")
		}
		h.close("form")
		h.close("dialog")
	})
}

// DeleteCopy builds the dialog text for an entity of kind (a catalog key
// such as "entity.agency") named name.
func DeleteCopy(loc *i18n.Localizer, kind, name string) confirm.Copy {
	entity := loc.T(kind)
	return confirm.Copy{
		Title:        loc.T("confirm.title", i18n.Params{"entity": entity}),
		Message:      loc.T("confirm.message", i18n.Params{"entity": entity, "name": name}),
		ConfirmLabel: loc.T("confirm.delete"),
		CancelLabel:  loc.T("confirm.cancel"),
	}
}

// DeleteLink renders the per-row link that opens the dialog.
func DeleteLink(loc *i18n.Localizer, url string) templ.Component {
	return Link(loc.T("action.delete"), url, "danger")
}

// EditLink renders the per-row edit link.
func EditLink(loc *i18n.Localizer, url string) templ.Component {
	return Link(loc.T("action.edit"), url, "")
}

// Actions renders row action links side by side.
func Actions(cs ...templ.Component) templ.Component {
	return component(func(h *writer) {
		h.open("span", "class", "row-actions")
		for _, c := range cs {
			h.render(c)
		}
		h.close("span")
	})
}

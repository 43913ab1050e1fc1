package views

import (
	"strconv"

	"github.com/a-h/templ"

	"mesa-console/internal/core/combobox"
	"mesa-console/internal/i18n"
)

// Choice is one entry of a select.
type Choice struct {
	Value string
	Label string
}

// FieldErrors maps form field names to translated messages.
type FieldErrors map[string]string

// Form describes a create/edit form.
type Form struct {
	Title  string
	Action string
	Cancel string
	Submit string
	// Error is shown above the fields, e.g. when the upstream save failed.
	Error  string
	Fields []templ.Component
}

// FormPage renders f.
func FormPage(loc *i18n.Localizer, f Form) templ.Component {
	return component(func(h *writer) {
		h.open("section", "class", "form")
		h.el("h1", f.Title)
		if f.Error != "" {
			h.el("p", f.Error, "class", "error", "role", "alert")
		}
		h.open("form", "method", "post", "action", href(f.Action), "novalidate?", "1")
		for _, field := range f.Fields {
			h.render(field)
		}
		h.open("div", "class", "actions")
		h.el("a", loc.T("form.cancel"), "href", href(f.Cancel), "class", "button secondary")
		h.el("button", f.Submit, "type", "submit")
		h.close("div")
		h.close("form")
		h.close("section")
	})
}

// Input is a labelled input with its inline error.
type Input struct {
	Name     string
	Label    string
	Type     string
	Value    string
	Required bool
	Error    string
}

func (in Input) Render() templ.Component {
	return component(func(h *writer) {
		typ := in.Type
		if typ == "" {
			typ = "text"
		}
		h.open("label", "class", "field")
		h.el("span", in.Label)
		h.open("input",
			"type", typ,
			"name", in.Name,
			"value", in.Value,
			"required?", flag(in.Required),
			"aria-invalid?", flag(in.Error != ""),
		)
		fieldError(h, in.Error)
		h.close("label")
	})
}

// TextArea is a labelled multi-line input.
type TextArea struct {
	Name  string
	Label string
	Value string
	Error string
}

func (ta TextArea) Render() templ.Component {
	return component(func(h *writer) {
		h.open("label", "class", "field")
		h.el("span", ta.Label)
		h.el("textarea", ta.Value, "name", ta.Name, "rows", "4")
		fieldError(h, ta.Error)
		h.close("label")
	})
}

// Select is a labelled select.
type Select struct {
	Name    string
	Label   string
	Value   string
	Choices []Choice
	Error   string
}

func (s Select) Render() templ.Component {
	return component(func(h *writer) {
		h.open("label", "class", "field")
		h.el("span", s.Label)
		h.open("select", "name", s.Name)
		for _, c := range s.Choices {
			h.el("option", c.Label, "value", c.Value, "selected?", flag(c.Value == s.Value))
		}
		h.close("select")
		fieldError(h, s.Error)
		h.close("label")
	})
}

// Combobox renders a searchable select over already fetched options. The
// visible list follows the box's current query. Without script the search
// box narrows the list on submit; with script the list is refreshed from
// OptionsURL.
type Combobox struct {
	Name       string
	Label      string
	Box        *combobox.Combobox
	OptionsURL string
	Error      string
}

func (c Combobox) Render(loc *i18n.Localizer) templ.Component {
	return component(func(h *writer) {
		selected, ok := c.Box.Selected()
		value := ""
		if ok {
			value = strconv.FormatInt(selected, 10)
		}
		h.open("fieldset", "class", "combobox", "data-options", c.OptionsURL, "data-name", c.Name)
		h.el("legend", c.Label)
		h.open("input",
			"type", "search",
			"name", c.Name+"_query",
			"value", c.Box.Query(),
			"placeholder", loc.T("combobox.search"),
			"autocomplete", "off",
		)
		h.open("select", "name", c.Name, "size", "5", "aria-invalid?", flag(c.Error != ""))
		visible := c.Box.Visible()
		if len(visible) == 0 {
			h.el("option", loc.T("combobox.no_results"), "value", "", "disabled?", "1")
		}
		for _, o := range visible {
			v := strconv.FormatInt(o.Value, 10)
			h.el("option", o.Label, "value", v, "selected?", flag(v == value))
		}
		h.close("select")
		if label := c.Box.SelectedLabel(); label != "" {
			h.el("small", loc.T("combobox.selected", i18n.Params{"label": label}), "class", "selected")
		}
		fieldError(h, c.Error)
		h.close("fieldset")
	})
}

func fieldError(h *writer, msg string) {
	if msg != "" {
		h.el("small", msg, "class", "error", "role", "alert")
	}
}

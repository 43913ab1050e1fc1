package views

import (
	"strconv"

	"github.com/a-h/templ"

	"mesa-console/internal/core/domain"
	"mesa-console/internal/i18n"
)

// Viewer is what the layout knows about the current visitor.
type Viewer struct {
	User  *domain.User
	Theme domain.Theme
	Loc   *i18n.Localizer
	Path  string
	// Languages are the selectable locales as BCP 47 strings.
	Languages []string
}

type navItem struct {
	key  string
	path string
}

var navByRole = map[domain.Role][]navItem{
	domain.RoleAdmin: {
		{"nav.agencies", "/admin/agencies"},
		{"nav.users", "/admin/users"},
		{"nav.campaigns", "/admin/campaigns"},
	},
	domain.RoleAgencyManager: {
		{"nav.advertisers", "/agency/advertisers"},
		{"nav.campaigns", "/agency/campaigns"},
	},
	domain.RoleAdvertiser: {
		{"nav.campaigns", "/advertiser/campaigns"},
		{"nav.products", "/advertiser/products"},
	},
}

// HomePath is the landing page for role.
func HomePath(role domain.Role) string {
	if items := navByRole[role]; len(items) > 0 {
		return items[0].path
	}
	return "/notifications"
}

// Layout wraps the children in the console shell. refresh > 0 adds a meta
// refresh, used by the loading page.
func Layout(title string, v Viewer, refresh int) templ.Component {
	return component(func(h *writer) {
		loc := v.Loc
		h.raw("<!DOCTYPE html>")
		h.open("html", "lang", loc.Lang(), "data-theme", string(v.Theme))
		h.open("head")
		h.open("meta", "charset", "utf-8")
		h.open("meta", "name", "viewport", "content", "width=device-width, initial-scale=1")
		if refresh > 0 {
			h.open("meta", "http-equiv", "refresh", "content", strconv.Itoa(refresh))
		}
		h.el("title", title+" · "+loc.T("app.name"))
		h.close("head")

		h.open("body", "class", "theme-"+string(v.Theme))
		h.open("header", "class", "topbar")
		h.el("a", loc.T("app.name"), "href", "/", "class", "brand")
		if v.User != nil {
			h.open("nav", "aria-label", loc.T("nav.label"))
			for _, it := range navByRole[v.User.Role] {
				h.el("a", loc.T(it.key), "href", it.path, "aria-current?", flag(it.path == v.Path))
			}
			h.el("a", loc.T("nav.notifications"), "href", "/notifications", "aria-current?", flag(v.Path == "/notifications"))
			h.close("nav")
		}
		h.render(preferenceForms(v))
		if v.User != nil {
			h.open("form", "method", "post", "action", "/logout", "class", "logout")
			h.el("span", v.User.FullName()+" ("+loc.T("role."+string(v.User.Role))+")", "class", "who")
			h.el("button", loc.T("auth.logout"), "type", "submit")
			h.close("form")
		}
		h.close("header")

		h.open("main")
		h.children()
		h.close("main")
		h.close("body")
		h.close("html")
	})
}

func preferenceForms(v Viewer) templ.Component {
	return component(func(h *writer) {
		loc := v.Loc
		h.open("form", "method", "post", "action", "/preferences/theme", "class", "theme")
		h.open("input", "type", "hidden", "name", "redirect", "value", v.Path)
		h.el("button", loc.T("theme.toggle."+string(v.Theme.Toggle())), "type", "submit", "name", "theme", "value", string(v.Theme.Toggle()))
		h.close("form")

		h.open("form", "method", "post", "action", "/preferences/language", "class", "language")
		h.open("input", "type", "hidden", "name", "redirect", "value", v.Path)
		h.open("select", "name", "language", "aria-label", loc.T("language.label"))
		for _, lang := range v.Languages {
			h.el("option", loc.T("language."+lang), "value", lang, "selected?", flag(loc.Lang() == lang))
		}
		h.close("select")
		h.el("button", loc.T("language.apply"), "type", "submit")
		h.close("form")
	})
}

// Loading is shown while the viewer's identity cannot be resolved yet. The
// page refreshes itself.
func Loading(loc *i18n.Localizer) templ.Component {
	return component(func(h *writer) {
		h.open("section", "class", "loading", "aria-busy", "true")
		h.el("p", loc.T("auth.loading"))
		h.close("section")
	})
}

// Unauthorized explains that the viewer lacks the role for a page.
func Unauthorized(v Viewer) templ.Component {
	return component(func(h *writer) {
		loc := v.Loc
		h.open("section", "class", "unauthorized")
		h.el("h1", loc.T("unauthorized.title"))
		h.el("p", loc.T("unauthorized.message"))
		if v.User != nil {
			h.el("a", loc.T("unauthorized.home"), "href", HomePath(v.User.Role))
		} else {
			h.el("a", loc.T("auth.login"), "href", "/login")
		}
		h.close("section")
	})
}

// Message renders a titled notice, used for errors.
func Message(title, message string) templ.Component {
	return component(func(h *writer) {
		h.open("section", "class", "notice")
		h.el("h1", title)
		h.el("p", message)
		h.close("section")
	})
}

// LoginForm is the sign in screen.
func LoginForm(loc *i18n.Localizer, email string, errMsg string) templ.Component {
	return component(func(h *writer) {
		h.open("section", "class", "login")
		h.el("h1", loc.T("auth.title"))
		if errMsg != "" {
			h.el("p", errMsg, "class", "error", "role", "alert")
		}
		h.open("form", "method", "post", "action", "/login")
		h.open("label")
		h.text(loc.T("field.email"))
		h.open("input", "type", "email", "name", "email", "value", email, "required?", "1", "autocomplete", "username")
		h.close("label")
		h.open("label")
		h.text(loc.T("field.password"))
		h.open("input", "type", "password", "name", "password", "required?", "1", "autocomplete", "current-password")
		h.close("label")
		h.el("button", loc.T("auth.login"), "type", "submit")
		h.close("form")
		h.close("section")
	})
}

package httpadapter

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"

	"mesa-console/internal/adapter/http/views"
	"mesa-console/internal/core/port"
)

const htmxHeader = "HX-Request"

func isHTMX(r *http.Request) bool {
	return r.Header.Get(htmxHeader) == "true"
}

func (h *Handler) viewer(r *http.Request) views.Viewer {
	st := stateFrom(r.Context())
	return views.Viewer{
		User:      st.auth.User(),
		Theme:     st.theme,
		Loc:       st.loc,
		Path:      r.URL.Path,
		Languages: h.deps.Languages,
	}
}

// page writes body inside the console layout, or alone for HTMX requests.
// The response is rendered into a buffer first so a render error can still
// become a 500.
func (h *Handler) page(w http.ResponseWriter, r *http.Request, status int, title string, body templ.Component) {
	h.write(w, r, status, title, body, 0)
}

func (h *Handler) write(w http.ResponseWriter, r *http.Request, status int, title string, body templ.Component, refresh int) {
	ctx := templ.WithChildren(r.Context(), body)
	var c templ.Component = views.Layout(title, h.viewer(r), refresh)
	if isHTMX(r) {
		c = body
	}
	var buf bytes.Buffer
	if err := c.Render(ctx, &buf); err != nil {
		h.logger.ErrorContext(r.Context(), "render page", slog.String("path", r.URL.Path), slog.Any("error", err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

func (h *Handler) renderLoading(w http.ResponseWriter, r *http.Request) {
	loc := stateFrom(r.Context()).loc
	w.Header().Set("Cache-Control", "no-store")
	h.write(w, r, http.StatusOK, loc.T("auth.loading"), views.Loading(loc), 2)
}

// fail renders an upstream error from a single read or a mutation. Missing
// entities become 404, rejected tokens send the viewer back to sign in and
// anything else is a 502 with a generic message.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	loc := stateFrom(r.Context()).loc
	switch {
	case errors.Is(err, port.ErrNotFound):
		h.page(w, r, http.StatusNotFound, loc.T("error.not_found.title"),
			views.Message(loc.T("error.not_found.title"), loc.T("error.not_found.message")))
	case errors.Is(err, port.ErrUnauthorized):
		h.logger.InfoContext(r.Context(), op+" rejected upstream", slog.Any("error", err))
		redirect(w, r, "/login", http.StatusFound)
	default:
		h.logger.ErrorContext(r.Context(), op, slog.Any("error", err))
		h.page(w, r, http.StatusBadGateway, loc.T("error.upstream.title"),
			views.Message(loc.T("error.upstream.title"), loc.T("error.upstream.message")))
	}
}

func (h *Handler) notFound(w http.ResponseWriter, r *http.Request) {
	h.fail(w, r, "lookup", port.ErrNotFound)
}

// redirect is HTMX aware: partial requests get an HX-Redirect header
// instead of a 3xx the browser would follow inside the swap target.
func redirect(w http.ResponseWriter, r *http.Request, location string, code int) {
	if isHTMX(r) {
		w.Header().Set("HX-Redirect", location)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, location, code)
}

// seeOther redirects after a successful POST.
func seeOther(w http.ResponseWriter, r *http.Request, location string) {
	redirect(w, r, location, http.StatusSeeOther)
}

// localPath returns target when it is a path on this site and fallback
// otherwise.
func localPath(target, fallback string) string {
	if !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") || strings.HasPrefix(target, "/\\") {
		return fallback
	}
	return target
}

func idParam(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

package httpadapter

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"mesa-console/internal/adapter/http/views"
	"mesa-console/internal/core/confirm"
	"mesa-console/internal/core/domain"
	"mesa-console/internal/core/pagination"
	"mesa-console/internal/i18n"
)

// pageLink returns the pager link builder for base, keeping q's filters and
// any extra parameters.
func pageLink(base string, q domain.ListQuery, extra url.Values) func(int) string {
	return func(page int) string {
		s := base + "?" + pagination.Encode(q, page)
		if len(extra) > 0 {
			s += "&" + extra.Encode()
		}
		return s
	}
}

func pageRange[T any](p domain.Page[T]) pagination.Range {
	return pagination.Compute(p.Page, p.Total, p.PageSize)
}

// paginate applies q to a collection that the upstream returns whole:
// the search text is matched against the fields returned by text, then the
// requested page is cut out.
func paginate[T any](items []T, q domain.ListQuery, text func(T) []string) ([]T, pagination.Range) {
	if search := strings.ToLower(q.Search); search != "" {
		kept := make([]T, 0, len(items))
		for _, it := range items {
			for _, s := range text(it) {
				if strings.Contains(strings.ToLower(s), search) {
					kept = append(kept, it)
					break
				}
			}
		}
		items = kept
	}
	r := pagination.Compute(q.Page, len(items), q.PageSize)
	if r.Empty {
		return []T{}, r
	}
	return items[r.StartItem-1 : r.EndItem], r
}

// enumChoices builds select entries for an integer enumeration.
func enumChoices[E interface {
	~int
	LabelKey() string
}](loc *i18n.Localizer, values []E) []views.Choice {
	out := make([]views.Choice, len(values))
	for i, v := range values {
		out[i] = views.Choice{Value: strconv.Itoa(int(v)), Label: loc.T(v.LabelKey())}
	}
	return out
}

// deleteTarget describes one entity behind a delete dialog.
type deleteTarget struct {
	resource string
	id       string
	// kind is the catalog key naming the entity type.
	kind   string
	name   string
	action string
	back   string
	del    confirm.DeleteFunc
}

func (h *Handler) showDelete(w http.ResponseWriter, r *http.Request, status int, t deleteTarget) {
	h.renderDelete(w, r, status, t, h.deps.Deletions.Dialog(t.resource, t.id))
}

// renderDelete renders the dialog in st with copy in the viewer's language.
func (h *Handler) renderDelete(w http.ResponseWriter, r *http.Request, status int, t deleteTarget, st confirm.State) {
	loc := stateFrom(r.Context()).loc
	c := views.DeleteCopy(loc, t.kind, t.name)
	h.page(w, r, status, c.Title, views.ConfirmDialog(loc, c, st, t.action))
}

// submitDelete handles the dialog form. A cancel closes the dialog unless
// the delete is already running. A confirm runs the delete detached from
// the browser connection, so navigating away does not abort it.
func (h *Handler) submitDelete(w http.ResponseWriter, r *http.Request, t deleteTarget) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	if r.PostForm.Get("cancel") != "" {
		if h.deps.Deletions.Cancel(t.resource, t.id) {
			seeOther(w, r, t.back)
			return
		}
		h.renderDelete(w, r, http.StatusConflict, t, confirm.Pending)
		return
	}

	ctx := context.WithoutCancel(r.Context())
	_, err := h.deps.Deletions.Confirm(ctx, t.resource, t.id, t.del)
	switch {
	case err == nil:
		seeOther(w, r, t.back)
	case errors.Is(err, confirm.ErrPending):
		h.renderDelete(w, r, http.StatusConflict, t, confirm.Pending)
	default:
		h.renderDelete(w, r, http.StatusBadGateway, t, confirm.Failed)
	}
}

package httpadapter

import (
	"net/http"
	"strconv"

	"github.com/a-h/templ"

	"mesa-console/internal/adapter/http/views"
	"mesa-console/internal/core/domain"
	"mesa-console/internal/core/pagination"
)

const notificationsPath = "/notifications"

// handleNotifications shows the viewer's inbox, unread first.
func (h *Handler) handleNotifications(w http.ResponseWriter, r *http.Request) {
	st := stateFrom(r.Context())
	loc := st.loc
	q := pagination.ParseQuery(r.URL.Query(), pagination.DefaultTable)
	all := h.deps.Notifications.GetByUser(r.Context(), st.auth.User().ID)
	inbox := make([]domain.Notification, 0, len(all))
	for _, n := range all {
		if !n.Read {
			inbox = append(inbox, n)
		}
	}
	for _, n := range all {
		if n.Read {
			inbox = append(inbox, n)
		}
	}
	rows, rng := paginate(inbox, q, func(n domain.Notification) []string { return []string{n.Title, n.Message} })

	cols := []views.Column[domain.Notification]{
		views.TextColumn(loc.T("field.title"), func(n domain.Notification) string { return n.Title }),
		views.TextColumn(loc.T("field.message"), func(n domain.Notification) string { return n.Message }),
		views.TextColumn(loc.T("field.created"), func(n domain.Notification) string { return formatDate(n.CreatedAt) }),
		{Header: loc.T("field.actions"), Cell: func(n domain.Notification) templ.Component {
			if n.Read {
				return views.Text(loc.T("notification.read"))
			}
			return views.ActionForm(notificationsPath+"/"+strconv.FormatInt(n.ID, 10)+"/read", loc.T("notification.mark_read"),
				"redirect", pageLink(notificationsPath, q, nil)(rng.CurrentPage))
		}},
	}
	h.page(w, r, http.StatusOK, loc.T("nav.notifications"), views.ListPage(views.List{
		Title:   loc.T("nav.notifications"),
		Toolbar: views.Toolbar(loc, notificationsPath, q.Search, nil, ""),
		Table:   views.Table(cols, rows, loc.T("notification.empty")),
		Pager:   views.Pager(loc, rng, pageLink(notificationsPath, q, nil)),
	}))
}

func (h *Handler) handleNotificationRead(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		h.notFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	if err := h.deps.Notifications.MarkRead(r.Context(), id); err != nil {
		h.fail(w, r, "mark notification read", err)
		return
	}
	seeOther(w, r, localPath(r.PostForm.Get("redirect"), notificationsPath))
}

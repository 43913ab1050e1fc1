package httpadapter

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"

	"mesa-console/internal/adapter/http/views"
	"mesa-console/internal/core/combobox"
	"mesa-console/internal/core/domain"
	"mesa-console/internal/core/pagination"
	"mesa-console/internal/i18n"
)

const usersPath = "/admin/users"

var allRoles = []domain.Role{domain.RoleAdmin, domain.RoleAgencyManager, domain.RoleAdvertiser}

func userPath(id int64, action string) string {
	return usersPath + "/" + strconv.FormatInt(id, 10) + "/" + action
}

func (h *Handler) userRoutes(r chi.Router) {
	r.Get("/", h.handleUsers)
	r.Get("/new", h.handleUserNew)
	r.Post("/new", h.handleUserCreate)
	r.Get("/{id}/edit", h.handleUserEdit)
	r.Post("/{id}/edit", h.handleUserUpdate)
	r.Get("/{id}/delete", h.handleUserDeleteDialog)
	r.Post("/{id}/delete", h.handleUserDelete)
}

func roleChoices(loc *i18n.Localizer) []views.Choice {
	out := make([]views.Choice, len(allRoles))
	for i, r := range allRoles {
		out[i] = views.Choice{Value: string(r), Label: loc.T("role." + string(r))}
	}
	return out
}

func yesNo(loc *i18n.Localizer, b bool) string {
	if b {
		return loc.T("common.yes")
	}
	return loc.T("common.no")
}

func (h *Handler) handleUsers(w http.ResponseWriter, r *http.Request) {
	loc := stateFrom(r.Context()).loc
	q := pagination.ParseQuery(r.URL.Query(), pagination.DefaultTable)
	p := h.deps.Users.List(r.Context(), q)

	agencyNames := map[int64]string{}
	for _, o := range h.agencyOptions(r.Context()) {
		agencyNames[o.Value] = o.Label
	}
	cols := []views.Column[domain.User]{
		views.TextColumn(loc.T("field.name"), func(u domain.User) string { return u.FullName() }),
		views.TextColumn(loc.T("field.email"), func(u domain.User) string { return u.Email }),
		views.TextColumn(loc.T("field.role"), func(u domain.User) string { return loc.T("role." + string(u.Role)) }),
		views.TextColumn(loc.T("field.agency"), func(u domain.User) string {
			if u.AgencyID == nil {
				return ""
			}
			if name, ok := agencyNames[*u.AgencyID]; ok {
				return name
			}
			return strconv.FormatInt(*u.AgencyID, 10)
		}),
		views.TextColumn(loc.T("field.active"), func(u domain.User) string { return yesNo(loc, u.Active) }),
		{Header: loc.T("field.actions"), Cell: func(u domain.User) templ.Component {
			return views.Actions(
				views.EditLink(loc, userPath(u.ID, "edit")),
				views.DeleteLink(loc, userPath(u.ID, "delete")),
			)
		}},
	}
	toolbar := views.Toolbar(loc, usersPath, q.Search, nil, "",
		views.Link(loc.T("action.new"), usersPath+"/new", "button"),
	)
	h.page(w, r, http.StatusOK, loc.T("nav.users"), views.ListPage(views.List{
		Title:   loc.T("nav.users"),
		Toolbar: toolbar,
		Table:   views.Table(cols, p.Items, loc.T("table.no_items")),
		Pager:   views.Pager(loc, pageRange(p), pageLink(usersPath, q, nil)),
	}))
}

func (h *Handler) userForm(r *http.Request, title, action string, in domain.UserInput, errs views.FieldErrors, formErr string) templ.Component {
	loc := stateFrom(r.Context()).loc
	var agencyID int64
	if in.AgencyID != nil {
		agencyID = *in.AgencyID
	}
	box := combobox.New(h.agencyOptions(r.Context()), agencyID)
	box.Type(r.PostForm.Get("agencyId_query"))
	return views.FormPage(loc, views.Form{
		Title:  title,
		Action: action,
		Cancel: usersPath,
		Submit: loc.T("form.save"),
		Error:  formErr,
		Fields: []templ.Component{
			views.Input{Name: "firstName", Label: loc.T("field.first_name"), Value: in.FirstName, Required: true, Error: errs["firstName"]}.Render(),
			views.Input{Name: "lastName", Label: loc.T("field.last_name"), Value: in.LastName, Required: true, Error: errs["lastName"]}.Render(),
			views.Input{Name: "email", Label: loc.T("field.email"), Type: "email", Value: in.Email, Required: true, Error: errs["email"]}.Render(),
			views.Select{Name: "role", Label: loc.T("field.role"), Value: string(in.Role), Choices: roleChoices(loc), Error: errs["role"]}.Render(),
			views.Combobox{Name: "agencyId", Label: loc.T("field.agency"), Box: box, OptionsURL: "/options/agencies", Error: errs["agencyId"]}.Render(loc),
			views.Input{Name: "password", Label: loc.T("field.password"), Type: "password", Error: errs["password"]}.Render(),
		},
	})
}

func readUser(f *formReader) domain.UserInput {
	return domain.UserInput{
		FirstName: f.str("firstName"),
		LastName:  f.str("lastName"),
		Email:     f.str("email"),
		Role:      domain.ParseRole(f.str("role")),
		AgencyID:  f.optionalID("agencyId"),
		Password:  f.r.PostForm.Get("password"),
	}
}

func (h *Handler) handleUserNew(w http.ResponseWriter, r *http.Request) {
	loc := stateFrom(r.Context()).loc
	title := loc.T("user.new")
	in := domain.UserInput{Role: domain.RoleAdvertiser}
	h.page(w, r, http.StatusOK, title, h.userForm(r, title, usersPath+"/new", in, nil, ""))
}

func (h *Handler) handleUserCreate(w http.ResponseWriter, r *http.Request) {
	loc := stateFrom(r.Context()).loc
	title := loc.T("user.new")
	f, err := newFormReader(r)
	if err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	in := readUser(f)
	if errs := h.check(f, in); errs != nil {
		h.page(w, r, http.StatusUnprocessableEntity, title, h.userForm(r, title, usersPath+"/new", in, errs, ""))
		return
	}
	if _, err = h.deps.Users.Create(r.Context(), in); err != nil {
		h.logger.ErrorContext(r.Context(), "create user", slog.Any("error", err))
		h.page(w, r, http.StatusBadGateway, title, h.userForm(r, title, usersPath+"/new", in, nil, loc.T("form.save_failed")))
		return
	}
	seeOther(w, r, usersPath)
}

func (h *Handler) handleUserEdit(w http.ResponseWriter, r *http.Request) {
	loc := stateFrom(r.Context()).loc
	id, ok := idParam(r, "id")
	if !ok {
		h.notFound(w, r)
		return
	}
	u, err := h.deps.Users.GetByID(r.Context(), id)
	if err != nil {
		h.fail(w, r, "get user", err)
		return
	}
	in := domain.UserInput{FirstName: u.FirstName, LastName: u.LastName, Email: u.Email, Role: u.Role, AgencyID: u.AgencyID}
	title := loc.T("user.edit", i18n.Params{"name": u.FullName()})
	h.page(w, r, http.StatusOK, title, h.userForm(r, title, userPath(id, "edit"), in, nil, ""))
}

func (h *Handler) handleUserUpdate(w http.ResponseWriter, r *http.Request) {
	loc := stateFrom(r.Context()).loc
	id, ok := idParam(r, "id")
	if !ok {
		h.notFound(w, r)
		return
	}
	f, err := newFormReader(r)
	if err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	in := readUser(f)
	title := loc.T("user.edit", i18n.Params{"name": in.FirstName + " " + in.LastName})
	if errs := h.check(f, in); errs != nil {
		h.page(w, r, http.StatusUnprocessableEntity, title, h.userForm(r, title, userPath(id, "edit"), in, errs, ""))
		return
	}
	if _, err = h.deps.Users.Update(r.Context(), id, in); err != nil {
		h.logger.ErrorContext(r.Context(), "update user", slog.Int64("id", id), slog.Any("error", err))
		h.page(w, r, http.StatusBadGateway, title, h.userForm(r, title, userPath(id, "edit"), in, nil, loc.T("form.save_failed")))
		return
	}
	seeOther(w, r, usersPath)
}

func (h *Handler) userDeleteTarget(w http.ResponseWriter, r *http.Request) (deleteTarget, bool) {
	id, ok := idParam(r, "id")
	if !ok {
		h.notFound(w, r)
		return deleteTarget{}, false
	}
	u, err := h.deps.Users.GetByID(r.Context(), id)
	if err != nil {
		h.fail(w, r, "get user", err)
		return deleteTarget{}, false
	}
	users := h.deps.Users
	return deleteTarget{
		resource: "users",
		id:       strconv.FormatInt(id, 10),
		kind:     "entity.user",
		name:     u.FullName(),
		action:   userPath(id, "delete"),
		back:     usersPath,
		del:      func(ctx context.Context) error { return users.Delete(ctx, id) },
	}, true
}

func (h *Handler) handleUserDeleteDialog(w http.ResponseWriter, r *http.Request) {
	if t, ok := h.userDeleteTarget(w, r); ok {
		h.showDelete(w, r, http.StatusOK, t)
	}
}

func (h *Handler) handleUserDelete(w http.ResponseWriter, r *http.Request) {
	if t, ok := h.userDeleteTarget(w, r); ok {
		h.submitDelete(w, r, t)
	}
}

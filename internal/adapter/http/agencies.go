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
	"mesa-console/internal/export"
	"mesa-console/internal/i18n"
)

const (
	agenciesPath = "/admin/agencies"
	// maxExportPages bounds how many upstream pages one export reads.
	maxExportPages = 50
)

func agencyPath(id int64, action string) string {
	return agenciesPath + "/" + strconv.FormatInt(id, 10) + "/" + action
}

func (h *Handler) agencyRoutes(r chi.Router) {
	r.Get("/", h.handleAgencies)
	r.Get("/export.csv", h.handleAgenciesExport)
	r.Get("/new", h.handleAgencyNew)
	r.Post("/new", h.handleAgencyCreate)
	r.Get("/{id}/edit", h.handleAgencyEdit)
	r.Post("/{id}/edit", h.handleAgencyUpdate)
	r.Post("/{id}/status", h.handleAgencyStatus)
	r.Get("/{id}/delete", h.handleAgencyDeleteDialog)
	r.Post("/{id}/delete", h.handleAgencyDelete)
}

func (h *Handler) handleAgencies(w http.ResponseWriter, r *http.Request) {
	loc := stateFrom(r.Context()).loc
	q := pagination.ParseQuery(r.URL.Query(), pagination.DefaultTable)
	p := h.deps.Agencies.List(r.Context(), q)
	statuses := enumChoices(loc, domain.AgencyStatuses())

	cols := []views.Column[domain.Agency]{
		views.TextColumn(loc.T("field.name"), func(a domain.Agency) string { return a.Name }),
		views.TextColumn(loc.T("field.email"), func(a domain.Agency) string { return a.Email }),
		views.TextColumn(loc.T("field.phone"), func(a domain.Agency) string { return a.Phone }),
		{Header: loc.T("field.status"), Cell: func(a domain.Agency) templ.Component {
			return views.StatusForm(agencyPath(a.ID, "status"), loc.T("action.set_status"), strconv.Itoa(int(a.Status)), statuses)
		}},
		views.TextColumn(loc.T("field.created"), func(a domain.Agency) string { return formatDate(a.CreatedAt) }),
		{Header: loc.T("field.actions"), Cell: func(a domain.Agency) templ.Component {
			return views.Actions(
				views.EditLink(loc, agencyPath(a.ID, "edit")),
				views.DeleteLink(loc, agencyPath(a.ID, "delete")),
			)
		}},
	}
	toolbar := views.Toolbar(loc, agenciesPath, q.Search, statuses, q.Status,
		views.Link(loc.T("action.new"), agenciesPath+"/new", "button"),
		views.Link(loc.T("action.export"), agenciesPath+"/export.csv?"+pagination.Encode(q, 1), "button secondary"),
	)
	h.page(w, r, http.StatusOK, loc.T("nav.agencies"), views.ListPage(views.List{
		Title:   loc.T("nav.agencies"),
		Toolbar: toolbar,
		Table:   views.Table(cols, p.Items, loc.T("table.no_items")),
		Pager:   views.Pager(loc, pageRange(p), pageLink(agenciesPath, q, nil)),
	}))
}

// handleAgenciesExport downloads every agency matching the current filters.
func (h *Handler) handleAgenciesExport(w http.ResponseWriter, r *http.Request) {
	loc := stateFrom(r.Context()).loc
	q := pagination.ParseQuery(r.URL.Query(), pagination.DefaultTable)
	q.Page, q.PageSize = 1, pagination.DefaultTable.MaxPageSize

	var rows []map[string]string
	for {
		p := h.deps.Agencies.List(r.Context(), q)
		for _, a := range p.Items {
			rows = append(rows, map[string]string{
				"id":      strconv.FormatInt(a.ID, 10),
				"name":    a.Name,
				"email":   a.Email,
				"phone":   a.Phone,
				"address": a.Address,
				"status":  loc.T(a.Status.LabelKey()),
				"created": formatDate(a.CreatedAt),
			})
		}
		if !p.HasNext || q.Page >= maxExportPages {
			break
		}
		q.Page++
	}

	sheet := export.Sheet{
		Title:    loc.T("nav.agencies"),
		Filename: "agencies",
		Columns: []export.Column{
			{Key: "id", Header: "ID"},
			{Key: "name", Header: loc.T("field.name")},
			{Key: "email", Header: loc.T("field.email")},
			{Key: "phone", Header: loc.T("field.phone")},
			{Key: "address", Header: loc.T("field.address")},
			{Key: "status", Header: loc.T("field.status")},
			{Key: "created", Header: loc.T("field.created")},
		},
		Rows: rows,
	}
	if err := export.ServeCSV(w, sheet); err != nil {
		h.logger.ErrorContext(r.Context(), "export agencies", slog.Any("error", err))
	}
}

func (h *Handler) agencyForm(r *http.Request, title, action string, in domain.AgencyInput, errs views.FieldErrors, formErr string) templ.Component {
	loc := stateFrom(r.Context()).loc
	box := combobox.New(h.managerOptions(r.Context()), in.ManagerID)
	box.Type(r.PostForm.Get("managerId_query"))
	return views.FormPage(loc, views.Form{
		Title:  title,
		Action: action,
		Cancel: agenciesPath,
		Submit: loc.T("form.save"),
		Error:  formErr,
		Fields: []templ.Component{
			views.Input{Name: "name", Label: loc.T("field.name"), Value: in.Name, Required: true, Error: errs["name"]}.Render(),
			views.Input{Name: "email", Label: loc.T("field.email"), Type: "email", Value: in.Email, Required: true, Error: errs["email"]}.Render(),
			views.Input{Name: "phone", Label: loc.T("field.phone"), Type: "tel", Value: in.Phone, Error: errs["phone"]}.Render(),
			views.TextArea{Name: "address", Label: loc.T("field.address"), Value: in.Address, Error: errs["address"]}.Render(),
			views.Select{
				Name: "status", Label: loc.T("field.status"), Value: strconv.Itoa(int(in.Status)),
				Choices: enumChoices(loc, domain.AgencyStatuses()), Error: errs["status"],
			}.Render(),
			views.Combobox{
				Name: "managerId", Label: loc.T("field.manager"), Box: box,
				OptionsURL: "/options/managers", Error: errs["managerId"],
			}.Render(loc),
		},
	})
}

func readAgency(f *formReader) domain.AgencyInput {
	return domain.AgencyInput{
		Name:      f.str("name"),
		Email:     f.str("email"),
		Phone:     f.str("phone"),
		Address:   f.str("address"),
		Status:    domain.AgencyStatus(f.integer("status")),
		ManagerID: f.integer("managerId"),
	}
}

func (h *Handler) handleAgencyNew(w http.ResponseWriter, r *http.Request) {
	loc := stateFrom(r.Context()).loc
	title := loc.T("agency.new")
	h.page(w, r, http.StatusOK, title, h.agencyForm(r, title, agenciesPath+"/new", domain.AgencyInput{}, nil, ""))
}

func (h *Handler) handleAgencyCreate(w http.ResponseWriter, r *http.Request) {
	loc := stateFrom(r.Context()).loc
	title := loc.T("agency.new")
	f, err := newFormReader(r)
	if err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	in := readAgency(f)
	if errs := h.check(f, in); errs != nil {
		h.page(w, r, http.StatusUnprocessableEntity, title, h.agencyForm(r, title, agenciesPath+"/new", in, errs, ""))
		return
	}
	if _, err = h.deps.Agencies.Create(r.Context(), in); err != nil {
		h.logger.ErrorContext(r.Context(), "create agency", slog.Any("error", err))
		h.page(w, r, http.StatusBadGateway, title, h.agencyForm(r, title, agenciesPath+"/new", in, nil, loc.T("form.save_failed")))
		return
	}
	seeOther(w, r, agenciesPath)
}

func (h *Handler) handleAgencyEdit(w http.ResponseWriter, r *http.Request) {
	loc := stateFrom(r.Context()).loc
	id, ok := idParam(r, "id")
	if !ok {
		h.notFound(w, r)
		return
	}
	a, err := h.deps.Agencies.GetByID(r.Context(), id)
	if err != nil {
		h.fail(w, r, "get agency", err)
		return
	}
	in := domain.AgencyInput{
		Name: a.Name, Email: a.Email, Phone: a.Phone, Address: a.Address,
		Status: a.Status, ManagerID: a.ManagerID,
	}
	title := loc.T("agency.edit", i18n.Params{"name": a.Name})
	h.page(w, r, http.StatusOK, title, h.agencyForm(r, title, agencyPath(id, "edit"), in, nil, ""))
}

func (h *Handler) handleAgencyUpdate(w http.ResponseWriter, r *http.Request) {
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
	in := readAgency(f)
	title := loc.T("agency.edit", i18n.Params{"name": in.Name})
	if errs := h.check(f, in); errs != nil {
		h.page(w, r, http.StatusUnprocessableEntity, title, h.agencyForm(r, title, agencyPath(id, "edit"), in, errs, ""))
		return
	}
	if _, err = h.deps.Agencies.Update(r.Context(), id, in); err != nil {
		h.logger.ErrorContext(r.Context(), "update agency", slog.Int64("id", id), slog.Any("error", err))
		h.page(w, r, http.StatusBadGateway, title, h.agencyForm(r, title, agencyPath(id, "edit"), in, nil, loc.T("form.save_failed")))
		return
	}
	seeOther(w, r, agenciesPath)
}

func (h *Handler) handleAgencyStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		h.notFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	v, err := strconv.Atoi(r.PostForm.Get("status"))
	if err != nil || v < int(domain.AgencyStatusPending) || v > int(domain.AgencyStatusSuspended) {
		http.Error(w, "invalid status", http.StatusBadRequest)
		return
	}
	if err = h.deps.Agencies.SetStatus(r.Context(), id, domain.AgencyStatus(v)); err != nil {
		h.fail(w, r, "set agency status", err)
		return
	}
	seeOther(w, r, agenciesPath)
}

func (h *Handler) agencyDeleteTarget(w http.ResponseWriter, r *http.Request) (deleteTarget, bool) {
	id, ok := idParam(r, "id")
	if !ok {
		h.notFound(w, r)
		return deleteTarget{}, false
	}
	a, err := h.deps.Agencies.GetByID(r.Context(), id)
	if err != nil {
		h.fail(w, r, "get agency", err)
		return deleteTarget{}, false
	}
	agencies := h.deps.Agencies
	return deleteTarget{
		resource: "agencies",
		id:       strconv.FormatInt(id, 10),
		kind:     "entity.agency",
		name:     a.Name,
		action:   agencyPath(id, "delete"),
		back:     agenciesPath,
		del:      func(ctx context.Context) error { return agencies.Delete(ctx, id) },
	}, true
}

func (h *Handler) handleAgencyDeleteDialog(w http.ResponseWriter, r *http.Request) {
	if t, ok := h.agencyDeleteTarget(w, r); ok {
		h.showDelete(w, r, http.StatusOK, t)
	}
}

func (h *Handler) handleAgencyDelete(w http.ResponseWriter, r *http.Request) {
	if t, ok := h.agencyDeleteTarget(w, r); ok {
		h.submitDelete(w, r, t)
	}
}

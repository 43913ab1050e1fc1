package httpadapter

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"

	"mesa-console/internal/adapter/http/views"
	"mesa-console/internal/core/domain"
	"mesa-console/internal/core/guard"
	"mesa-console/internal/core/pagination"
	"mesa-console/internal/i18n"
)

const (
	adminCampaignsPath      = "/admin/campaigns"
	agencyCampaignsPath     = "/agency/campaigns"
	agencyAdvertisersPath   = "/agency/advertisers"
	advertiserCampaignsPath = "/advertiser/campaigns"
)

func campaignPath(base string, id int64, action string) string {
	return base + "/" + strconv.FormatInt(id, 10) + "/" + action
}

// campaignColumns are shared by every campaign table. actions may be nil
// for read-only tables.
func campaignColumns(loc *i18n.Localizer, actions func(domain.Campaign) templ.Component) []views.Column[domain.Campaign] {
	cols := []views.Column[domain.Campaign]{
		views.TextColumn(loc.T("field.name"), func(c domain.Campaign) string { return c.Name }),
		views.TextColumn(loc.T("field.type"), func(c domain.Campaign) string { return loc.T(c.Type.LabelKey()) }),
		views.TextColumn(loc.T("field.bid_strategy"), func(c domain.Campaign) string { return loc.T(c.BidStrategy.LabelKey()) }),
		views.TextColumn(loc.T("field.daily_budget"), func(c domain.Campaign) string { return loc.Number(c.DailyBudget) }),
		views.TextColumn(loc.T("field.total_budget"), func(c domain.Campaign) string { return loc.Number(c.TotalBudget) }),
		views.TextColumn(loc.T("field.schedule"), func(c domain.Campaign) string {
			return formatDate(c.StartDate) + " – " + formatDate(c.EndDate)
		}),
		views.TextColumn(loc.T("field.state"), func(c domain.Campaign) string { return loc.T(c.State.LabelKey()) }),
		views.TextColumn(loc.T("field.review"), func(c domain.Campaign) string { return loc.T(c.Review.LabelKey()) }),
	}
	if actions != nil {
		cols = append(cols, views.Column[domain.Campaign]{Header: loc.T("field.actions"), Cell: actions})
	}
	return cols
}

func campaignText(c domain.Campaign) []string { return []string{c.Name} }

// handleAdminCampaigns lists every campaign, paginated upstream.
func (h *Handler) handleAdminCampaigns(w http.ResponseWriter, r *http.Request) {
	loc := stateFrom(r.Context()).loc
	q := pagination.ParseQuery(r.URL.Query(), pagination.DefaultTable)
	p := h.deps.Campaigns.List(r.Context(), q)
	cols := campaignColumns(loc, func(c domain.Campaign) templ.Component {
		return views.DeleteLink(loc, campaignPath(adminCampaignsPath, c.ID, "delete"))
	})
	h.page(w, r, http.StatusOK, loc.T("nav.campaigns"), views.ListPage(views.List{
		Title:   loc.T("nav.campaigns"),
		Toolbar: views.Toolbar(loc, adminCampaignsPath, q.Search, nil, ""),
		Table:   views.Table(cols, p.Items, loc.T("table.no_items")),
		Pager:   views.Pager(loc, pageRange(p), pageLink(adminCampaignsPath, q, nil)),
	}))
}

func (h *Handler) campaignDeleteTarget(c *domain.Campaign, base string) deleteTarget {
	campaigns := h.deps.Campaigns
	id := c.ID
	return deleteTarget{
		resource: "campaigns",
		id:       strconv.FormatInt(id, 10),
		kind:     "entity.campaign",
		name:     c.Name,
		action:   campaignPath(base, id, "delete"),
		back:     base,
		del:      func(ctx context.Context) error { return campaigns.Delete(ctx, id) },
	}
}

func (h *Handler) loadCampaign(w http.ResponseWriter, r *http.Request) (*domain.Campaign, bool) {
	id, ok := idParam(r, "id")
	if !ok {
		h.notFound(w, r)
		return nil, false
	}
	c, err := h.deps.Campaigns.GetByID(r.Context(), id)
	if err != nil {
		h.fail(w, r, "get campaign", err)
		return nil, false
	}
	return c, true
}

func (h *Handler) handleCampaignDeleteDialog(w http.ResponseWriter, r *http.Request) {
	if c, ok := h.loadCampaign(w, r); ok {
		h.showDelete(w, r, http.StatusOK, h.campaignDeleteTarget(c, adminCampaignsPath))
	}
}

func (h *Handler) handleCampaignDelete(w http.ResponseWriter, r *http.Request) {
	if c, ok := h.loadCampaign(w, r); ok {
		h.submitDelete(w, r, h.campaignDeleteTarget(c, adminCampaignsPath))
	}
}

// managedAdvertisers returns the advertisers of every agency run by
// managerID.
func (h *Handler) managedAdvertisers(ctx context.Context, managerID int64) []domain.User {
	var out []domain.User
	for _, a := range h.deps.Agencies.GetByManager(ctx, managerID) {
		for _, u := range h.deps.Users.GetByAgency(ctx, a.ID) {
			if u.Role == domain.RoleAdvertiser {
				out = append(out, u)
			}
		}
	}
	return out
}

func (h *Handler) handleAgencyAdvertisers(w http.ResponseWriter, r *http.Request) {
	st := stateFrom(r.Context())
	loc := st.loc
	q := pagination.ParseQuery(r.URL.Query(), pagination.DefaultTable)
	rows, rng := paginate(h.managedAdvertisers(r.Context(), st.auth.User().ID), q, func(u domain.User) []string {
		return []string{u.FullName(), u.Email}
	})
	cols := []views.Column[domain.User]{
		views.TextColumn(loc.T("field.name"), func(u domain.User) string { return u.FullName() }),
		views.TextColumn(loc.T("field.email"), func(u domain.User) string { return u.Email }),
		views.TextColumn(loc.T("field.active"), func(u domain.User) string { return yesNo(loc, u.Active) }),
		views.TextColumn(loc.T("field.created"), func(u domain.User) string { return formatDate(u.CreatedAt) }),
	}
	h.page(w, r, http.StatusOK, loc.T("nav.advertisers"), views.ListPage(views.List{
		Title:   loc.T("nav.advertisers"),
		Toolbar: views.Toolbar(loc, agencyAdvertisersPath, q.Search, nil, ""),
		Table:   views.Table(cols, rows, loc.T("table.no_items")),
		Pager:   views.Pager(loc, rng, pageLink(agencyAdvertisersPath, q, nil)),
	}))
}

// handleAgencyCampaigns lists the campaigns of the manager's advertisers.
func (h *Handler) handleAgencyCampaigns(w http.ResponseWriter, r *http.Request) {
	st := stateFrom(r.Context())
	loc := st.loc
	q := pagination.ParseQuery(r.URL.Query(), pagination.DefaultTable)
	var all []domain.Campaign
	for _, u := range h.managedAdvertisers(r.Context(), st.auth.User().ID) {
		all = append(all, h.deps.Campaigns.GetByAdvertiser(r.Context(), u.ID)...)
	}
	rows, rng := paginate(all, q, campaignText)
	h.page(w, r, http.StatusOK, loc.T("nav.campaigns"), views.ListPage(views.List{
		Title:   loc.T("nav.campaigns"),
		Toolbar: views.Toolbar(loc, agencyCampaignsPath, q.Search, nil, ""),
		Table:   views.Table(campaignColumns(loc, nil), rows, loc.T("table.no_items")),
		Pager:   views.Pager(loc, rng, pageLink(agencyCampaignsPath, q, nil)),
	}))
}

func (h *Handler) advertiserCampaignRoutes(r chi.Router) {
	r.Get("/", h.handleAdvertiserCampaigns)
	r.Get("/new", h.handleCampaignNew)
	r.Post("/new", h.handleCampaignCreate)
	r.Get("/{id}/edit", h.handleCampaignEdit)
	r.Post("/{id}/edit", h.handleCampaignUpdate)
	r.Get("/{id}/delete", h.handleOwnCampaignDeleteDialog)
	r.Post("/{id}/delete", h.handleOwnCampaignDelete)
	r.Route("/{id}/ads", h.adRoutes)
}

func (h *Handler) handleAdvertiserCampaigns(w http.ResponseWriter, r *http.Request) {
	st := stateFrom(r.Context())
	loc := st.loc
	q := pagination.ParseQuery(r.URL.Query(), pagination.DefaultTable)
	rows, rng := paginate(h.deps.Campaigns.GetByAdvertiser(r.Context(), st.auth.User().ID), q, campaignText)
	cols := campaignColumns(loc, func(c domain.Campaign) templ.Component {
		return views.Actions(
			views.Link(loc.T("nav.ads"), campaignPath(advertiserCampaignsPath, c.ID, "ads"), ""),
			views.EditLink(loc, campaignPath(advertiserCampaignsPath, c.ID, "edit")),
			views.DeleteLink(loc, campaignPath(advertiserCampaignsPath, c.ID, "delete")),
		)
	})
	toolbar := views.Toolbar(loc, advertiserCampaignsPath, q.Search, nil, "",
		views.Link(loc.T("action.new"), advertiserCampaignsPath+"/new", "button"),
	)
	h.page(w, r, http.StatusOK, loc.T("nav.campaigns"), views.ListPage(views.List{
		Title:   loc.T("nav.campaigns"),
		Toolbar: toolbar,
		Table:   views.Table(cols, rows, loc.T("table.no_items")),
		Pager:   views.Pager(loc, rng, pageLink(advertiserCampaignsPath, q, nil)),
	}))
}

// ownCampaign loads the campaign named by the {id} parameter and checks
// that the viewer owns it. Campaigns of other advertisers are treated as
// unauthorized.
func (h *Handler) ownCampaign(w http.ResponseWriter, r *http.Request) (*domain.Campaign, bool) {
	c, ok := h.loadCampaign(w, r)
	if !ok {
		return nil, false
	}
	if c.AdvertiserID != stateFrom(r.Context()).auth.User().ID {
		redirect(w, r, guard.UnauthorizedPath, http.StatusFound)
		return nil, false
	}
	return c, true
}

func (h *Handler) campaignForm(r *http.Request, title, action string, in domain.CampaignInput, errs views.FieldErrors, formErr string) templ.Component {
	loc := stateFrom(r.Context()).loc
	return views.FormPage(loc, views.Form{
		Title:  title,
		Action: action,
		Cancel: advertiserCampaignsPath,
		Submit: loc.T("form.save"),
		Error:  formErr,
		Fields: []templ.Component{
			views.Input{Name: "name", Label: loc.T("field.name"), Value: in.Name, Required: true, Error: errs["name"]}.Render(),
			views.Select{
				Name: "type", Label: loc.T("field.type"), Value: strconv.Itoa(int(in.Type)),
				Choices: enumChoices(loc, domain.CampaignTypes()), Error: errs["type"],
			}.Render(),
			views.Select{
				Name: "bidStrategy", Label: loc.T("field.bid_strategy"), Value: strconv.Itoa(int(in.BidStrategy)),
				Choices: enumChoices(loc, domain.BidStrategies()), Error: errs["bidStrategy"],
			}.Render(),
			views.Input{Name: "dailyBudget", Label: loc.T("field.daily_budget"), Type: "number", Value: strconv.FormatInt(in.DailyBudget, 10), Error: errs["dailyBudget"]}.Render(),
			views.Input{Name: "totalBudget", Label: loc.T("field.total_budget"), Type: "number", Value: strconv.FormatInt(in.TotalBudget, 10), Error: errs["totalBudget"]}.Render(),
			views.Input{Name: "startDate", Label: loc.T("field.start_date"), Type: "date", Value: formatDate(in.StartDate), Required: true, Error: errs["startDate"]}.Render(),
			views.Input{Name: "endDate", Label: loc.T("field.end_date"), Type: "date", Value: formatDate(in.EndDate), Required: true, Error: errs["endDate"]}.Render(),
		},
	})
}

// readCampaign reads the form; the advertiser is always the viewer.
func readCampaign(f *formReader, advertiserID int64) domain.CampaignInput {
	return domain.CampaignInput{
		Name:         f.str("name"),
		AdvertiserID: advertiserID,
		Type:         domain.CampaignType(f.integer("type")),
		BidStrategy:  domain.BidStrategy(f.integer("bidStrategy")),
		DailyBudget:  f.integer("dailyBudget"),
		TotalBudget:  f.integer("totalBudget"),
		StartDate:    f.date("startDate"),
		EndDate:      f.date("endDate"),
	}
}

func (h *Handler) handleCampaignNew(w http.ResponseWriter, r *http.Request) {
	loc := stateFrom(r.Context()).loc
	title := loc.T("campaign.new")
	h.page(w, r, http.StatusOK, title, h.campaignForm(r, title, advertiserCampaignsPath+"/new", domain.CampaignInput{}, nil, ""))
}

func (h *Handler) handleCampaignCreate(w http.ResponseWriter, r *http.Request) {
	st := stateFrom(r.Context())
	title := st.loc.T("campaign.new")
	f, err := newFormReader(r)
	if err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	in := readCampaign(f, st.auth.User().ID)
	if errs := h.check(f, in); errs != nil {
		h.page(w, r, http.StatusUnprocessableEntity, title, h.campaignForm(r, title, advertiserCampaignsPath+"/new", in, errs, ""))
		return
	}
	if _, err = h.deps.Campaigns.Create(r.Context(), in); err != nil {
		h.logger.ErrorContext(r.Context(), "create campaign", slog.Any("error", err))
		h.page(w, r, http.StatusBadGateway, title, h.campaignForm(r, title, advertiserCampaignsPath+"/new", in, nil, st.loc.T("form.save_failed")))
		return
	}
	seeOther(w, r, advertiserCampaignsPath)
}

func (h *Handler) handleCampaignEdit(w http.ResponseWriter, r *http.Request) {
	loc := stateFrom(r.Context()).loc
	c, ok := h.ownCampaign(w, r)
	if !ok {
		return
	}
	in := domain.CampaignInput{
		Name: c.Name, AdvertiserID: c.AdvertiserID, Type: c.Type, BidStrategy: c.BidStrategy,
		DailyBudget: c.DailyBudget, TotalBudget: c.TotalBudget, StartDate: c.StartDate, EndDate: c.EndDate,
	}
	title := loc.T("campaign.edit", i18n.Params{"name": c.Name})
	h.page(w, r, http.StatusOK, title, h.campaignForm(r, title, campaignPath(advertiserCampaignsPath, c.ID, "edit"), in, nil, ""))
}

func (h *Handler) handleCampaignUpdate(w http.ResponseWriter, r *http.Request) {
	st := stateFrom(r.Context())
	c, ok := h.ownCampaign(w, r)
	if !ok {
		return
	}
	f, err := newFormReader(r)
	if err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	in := readCampaign(f, c.AdvertiserID)
	action := campaignPath(advertiserCampaignsPath, c.ID, "edit")
	title := st.loc.T("campaign.edit", i18n.Params{"name": c.Name})
	if errs := h.check(f, in); errs != nil {
		h.page(w, r, http.StatusUnprocessableEntity, title, h.campaignForm(r, title, action, in, errs, ""))
		return
	}
	if _, err = h.deps.Campaigns.Update(r.Context(), c.ID, in); err != nil {
		h.logger.ErrorContext(r.Context(), "update campaign", slog.Int64("id", c.ID), slog.Any("error", err))
		h.page(w, r, http.StatusBadGateway, title, h.campaignForm(r, title, action, in, nil, st.loc.T("form.save_failed")))
		return
	}
	seeOther(w, r, advertiserCampaignsPath)
}

func (h *Handler) handleOwnCampaignDeleteDialog(w http.ResponseWriter, r *http.Request) {
	if c, ok := h.ownCampaign(w, r); ok {
		h.showDelete(w, r, http.StatusOK, h.campaignDeleteTarget(c, advertiserCampaignsPath))
	}
}

func (h *Handler) handleOwnCampaignDelete(w http.ResponseWriter, r *http.Request) {
	if c, ok := h.ownCampaign(w, r); ok {
		h.submitDelete(w, r, h.campaignDeleteTarget(c, advertiserCampaignsPath))
	}
}

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
	"mesa-console/internal/core/pagination"
	"mesa-console/internal/i18n"
)

func adsPath(campaignID int64) string {
	return campaignPath(advertiserCampaignsPath, campaignID, "ads")
}

func adPath(campaignID, adID int64, action string) string {
	return adsPath(campaignID) + "/" + strconv.FormatInt(adID, 10) + "/" + action
}

// adRoutes are mounted under /advertiser/campaigns/{id}/ads. Every handler
// first checks that the viewer owns the campaign.
func (h *Handler) adRoutes(r chi.Router) {
	r.Get("/", h.handleAds)
	r.Get("/new", h.handleAdNew)
	r.Post("/new", h.handleAdCreate)
	r.Get("/{adID}/edit", h.handleAdEdit)
	r.Post("/{adID}/edit", h.handleAdUpdate)
	r.Get("/{adID}/delete", h.handleAdDeleteDialog)
	r.Post("/{adID}/delete", h.handleAdDelete)
}

func (h *Handler) handleAds(w http.ResponseWriter, r *http.Request) {
	loc := stateFrom(r.Context()).loc
	c, ok := h.ownCampaign(w, r)
	if !ok {
		return
	}
	q := pagination.ParseQuery(r.URL.Query(), pagination.DefaultTable)
	rows, rng := paginate(h.deps.Ads.GetByCampaign(r.Context(), c.ID), q, func(a domain.Ad) []string {
		return []string{a.Title, a.Description}
	})
	cols := []views.Column[domain.Ad]{
		views.TextColumn(loc.T("field.title"), func(a domain.Ad) string { return a.Title }),
		{Header: loc.T("field.destination_url"), Cell: func(a domain.Ad) templ.Component {
			return views.Link(a.DestinationURL, a.DestinationURL, "external")
		}},
		views.TextColumn(loc.T("field.bid_type"), func(a domain.Ad) string { return loc.T(a.BidType.LabelKey()) }),
		views.TextColumn(loc.T("field.bid_amount"), func(a domain.Ad) string { return loc.Number(a.BidAmount) }),
		views.TextColumn(loc.T("field.state"), func(a domain.Ad) string { return loc.T(a.State.LabelKey()) }),
		views.TextColumn(loc.T("field.review"), func(a domain.Ad) string { return loc.T(a.Review.LabelKey()) }),
		{Header: loc.T("field.actions"), Cell: func(a domain.Ad) templ.Component {
			return views.Actions(
				views.EditLink(loc, adPath(c.ID, a.ID, "edit")),
				views.DeleteLink(loc, adPath(c.ID, a.ID, "delete")),
			)
		}},
	}
	title := loc.T("ad.list", i18n.Params{"campaign": c.Name})
	toolbar := views.Toolbar(loc, adsPath(c.ID), q.Search, nil, "",
		views.Link(loc.T("action.new"), adsPath(c.ID)+"/new", "button"),
		views.Link(loc.T("action.back"), advertiserCampaignsPath, "button secondary"),
	)
	h.page(w, r, http.StatusOK, title, views.ListPage(views.List{
		Title:   title,
		Toolbar: toolbar,
		Table:   views.Table(cols, rows, loc.T("table.no_items")),
		Pager:   views.Pager(loc, rng, pageLink(adsPath(c.ID), q, nil)),
	}))
}

// ownAd loads the campaign and the ad named by the path and checks that
// the ad belongs to the campaign.
func (h *Handler) ownAd(w http.ResponseWriter, r *http.Request) (*domain.Campaign, *domain.Ad, bool) {
	c, ok := h.ownCampaign(w, r)
	if !ok {
		return nil, nil, false
	}
	adID, ok := idParam(r, "adID")
	if !ok {
		h.notFound(w, r)
		return nil, nil, false
	}
	a, err := h.deps.Ads.GetByID(r.Context(), adID)
	if err != nil {
		h.fail(w, r, "get ad", err)
		return nil, nil, false
	}
	if a.CampaignID != c.ID {
		h.notFound(w, r)
		return nil, nil, false
	}
	return c, a, true
}

func (h *Handler) adForm(r *http.Request, title, action string, c *domain.Campaign, in domain.AdInput, errs views.FieldErrors, formErr string) templ.Component {
	loc := stateFrom(r.Context()).loc
	return views.FormPage(loc, views.Form{
		Title:  title,
		Action: action,
		Cancel: adsPath(c.ID),
		Submit: loc.T("form.save"),
		Error:  formErr,
		Fields: []templ.Component{
			views.Input{Name: "title", Label: loc.T("field.title"), Value: in.Title, Required: true, Error: errs["title"]}.Render(),
			views.TextArea{Name: "description", Label: loc.T("field.description"), Value: in.Description, Error: errs["description"]}.Render(),
			views.Input{Name: "destinationUrl", Label: loc.T("field.destination_url"), Type: "url", Value: in.DestinationURL, Required: true, Error: errs["destinationUrl"]}.Render(),
			views.Input{Name: "imageUrl", Label: loc.T("field.image_url"), Type: "url", Value: in.ImageURL, Error: errs["imageUrl"]}.Render(),
			views.Select{
				Name: "bidType", Label: loc.T("field.bid_type"), Value: strconv.Itoa(int(in.BidType)),
				Choices: enumChoices(loc, domain.BidTypes()), Error: errs["bidType"],
			}.Render(),
			views.Input{Name: "bidAmount", Label: loc.T("field.bid_amount"), Type: "number", Value: strconv.FormatInt(in.BidAmount, 10), Error: errs["bidAmount"]}.Render(),
		},
	})
}

func readAd(f *formReader, campaignID int64) domain.AdInput {
	return domain.AdInput{
		CampaignID:     campaignID,
		Title:          f.str("title"),
		Description:    f.str("description"),
		DestinationURL: f.str("destinationUrl"),
		ImageURL:       f.str("imageUrl"),
		BidType:        domain.BidType(f.integer("bidType")),
		BidAmount:      f.integer("bidAmount"),
	}
}

func (h *Handler) handleAdNew(w http.ResponseWriter, r *http.Request) {
	loc := stateFrom(r.Context()).loc
	c, ok := h.ownCampaign(w, r)
	if !ok {
		return
	}
	title := loc.T("ad.new")
	h.page(w, r, http.StatusOK, title, h.adForm(r, title, adsPath(c.ID)+"/new", c, domain.AdInput{CampaignID: c.ID}, nil, ""))
}

func (h *Handler) handleAdCreate(w http.ResponseWriter, r *http.Request) {
	loc := stateFrom(r.Context()).loc
	c, ok := h.ownCampaign(w, r)
	if !ok {
		return
	}
	f, err := newFormReader(r)
	if err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	title := loc.T("ad.new")
	action := adsPath(c.ID) + "/new"
	in := readAd(f, c.ID)
	if errs := h.check(f, in); errs != nil {
		h.page(w, r, http.StatusUnprocessableEntity, title, h.adForm(r, title, action, c, in, errs, ""))
		return
	}
	if _, err = h.deps.Ads.Create(r.Context(), in); err != nil {
		h.logger.ErrorContext(r.Context(), "create ad", slog.Int64("campaign", c.ID), slog.Any("error", err))
		h.page(w, r, http.StatusBadGateway, title, h.adForm(r, title, action, c, in, nil, loc.T("form.save_failed")))
		return
	}
	seeOther(w, r, adsPath(c.ID))
}

func (h *Handler) handleAdEdit(w http.ResponseWriter, r *http.Request) {
	loc := stateFrom(r.Context()).loc
	c, a, ok := h.ownAd(w, r)
	if !ok {
		return
	}
	in := domain.AdInput{
		CampaignID: a.CampaignID, Title: a.Title, Description: a.Description,
		DestinationURL: a.DestinationURL, ImageURL: a.ImageURL, BidType: a.BidType, BidAmount: a.BidAmount,
	}
	title := loc.T("ad.edit", i18n.Params{"name": a.Title})
	h.page(w, r, http.StatusOK, title, h.adForm(r, title, adPath(c.ID, a.ID, "edit"), c, in, nil, ""))
}

func (h *Handler) handleAdUpdate(w http.ResponseWriter, r *http.Request) {
	loc := stateFrom(r.Context()).loc
	c, a, ok := h.ownAd(w, r)
	if !ok {
		return
	}
	f, err := newFormReader(r)
	if err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	title := loc.T("ad.edit", i18n.Params{"name": a.Title})
	action := adPath(c.ID, a.ID, "edit")
	in := readAd(f, c.ID)
	if errs := h.check(f, in); errs != nil {
		h.page(w, r, http.StatusUnprocessableEntity, title, h.adForm(r, title, action, c, in, errs, ""))
		return
	}
	if _, err = h.deps.Ads.Update(r.Context(), a.ID, in); err != nil {
		h.logger.ErrorContext(r.Context(), "update ad", slog.Int64("id", a.ID), slog.Any("error", err))
		h.page(w, r, http.StatusBadGateway, title, h.adForm(r, title, action, c, in, nil, loc.T("form.save_failed")))
		return
	}
	seeOther(w, r, adsPath(c.ID))
}

func (h *Handler) adDeleteTarget(c *domain.Campaign, a *domain.Ad) deleteTarget {
	ads := h.deps.Ads
	id := a.ID
	return deleteTarget{
		resource: "ads",
		id:       strconv.FormatInt(id, 10),
		kind:     "entity.ad",
		name:     a.Title,
		action:   adPath(c.ID, id, "delete"),
		back:     adsPath(c.ID),
		del:      func(ctx context.Context) error { return ads.Delete(ctx, id) },
	}
}

func (h *Handler) handleAdDeleteDialog(w http.ResponseWriter, r *http.Request) {
	if c, a, ok := h.ownAd(w, r); ok {
		h.showDelete(w, r, http.StatusOK, h.adDeleteTarget(c, a))
	}
}

func (h *Handler) handleAdDelete(w http.ResponseWriter, r *http.Request) {
	if c, a, ok := h.ownAd(w, r); ok {
		h.submitDelete(w, r, h.adDeleteTarget(c, a))
	}
}

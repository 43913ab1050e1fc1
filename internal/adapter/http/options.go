package httpadapter

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"mesa-console/internal/core/combobox"
	"mesa-console/internal/core/domain"
	"mesa-console/internal/core/pagination"
)

// optionSources are the combobox feeds served under /options, with the
// roles allowed to read each.
var optionSources = map[string][]domain.Role{
	"agencies":    {domain.RoleAdmin},
	"managers":    {domain.RoleAdmin},
	"advertisers": {domain.RoleAdmin, domain.RoleAgencyManager},
	"campaigns":   {domain.RoleAdvertiser},
	"sellers":     {domain.RoleAdvertiser},
}

// handleOptions serves combobox options as JSON, narrowed by ?q=.
func (h *Handler) handleOptions(w http.ResponseWriter, r *http.Request) {
	st := stateFrom(r.Context())
	resource := chi.URLParam(r, "resource")
	roles, ok := optionSources[resource]
	if !ok {
		http.NotFound(w, r)
		return
	}
	if !st.auth.IsAuthorized(roles...) {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	ctx := r.Context()
	var opts []combobox.Option
	switch resource {
	case "agencies":
		opts = h.agencyOptions(ctx)
	case "managers":
		opts = h.managerOptions(ctx)
	case "advertisers":
		opts = h.advertiserOptions(ctx, st.auth.User())
	case "campaigns":
		opts = h.campaignOptions(ctx, st.auth.User().ID)
	case "sellers":
		opts = h.sellerOptions(ctx)
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(combobox.Filter(opts, r.URL.Query().Get("q"))); err != nil {
		h.logger.ErrorContext(ctx, "encode options", slog.String("resource", resource), slog.Any("error", err))
	}
}

func (h *Handler) agencyOptions(ctx context.Context) []combobox.Option {
	p := h.deps.Agencies.List(ctx, domain.ListQuery{Page: 1, PageSize: pagination.DefaultTable.MaxPageSize})
	out := make([]combobox.Option, 0, len(p.Items))
	for _, a := range p.Items {
		out = append(out, combobox.Option{Value: a.ID, Label: a.Name})
	}
	return out
}

func (h *Handler) usersWithRole(ctx context.Context, role domain.Role) []combobox.Option {
	p := h.deps.Users.List(ctx, domain.ListQuery{Page: 1, PageSize: pagination.DefaultTable.MaxPageSize})
	out := make([]combobox.Option, 0, len(p.Items))
	for _, u := range p.Items {
		if u.Role == role {
			out = append(out, combobox.Option{Value: u.ID, Label: u.FullName()})
		}
	}
	return out
}

// managerOptions lists the agency managers an agency can be assigned to.
func (h *Handler) managerOptions(ctx context.Context) []combobox.Option {
	return h.usersWithRole(ctx, domain.RoleAgencyManager)
}

// advertiserOptions lists every advertiser for admins and the advertisers
// of the viewer's agencies for agency managers.
func (h *Handler) advertiserOptions(ctx context.Context, viewer *domain.User) []combobox.Option {
	if viewer.Role == domain.RoleAdmin {
		return h.usersWithRole(ctx, domain.RoleAdvertiser)
	}
	users := h.managedAdvertisers(ctx, viewer.ID)
	out := make([]combobox.Option, 0, len(users))
	for _, u := range users {
		out = append(out, combobox.Option{Value: u.ID, Label: u.FullName()})
	}
	return out
}

func (h *Handler) campaignOptions(ctx context.Context, advertiserID int64) []combobox.Option {
	campaigns := h.deps.Campaigns.GetByAdvertiser(ctx, advertiserID)
	out := make([]combobox.Option, 0, len(campaigns))
	for _, c := range campaigns {
		out = append(out, combobox.Option{Value: c.ID, Label: c.Name})
	}
	return out
}

// sellerOptions lists sellers. Seller IDs are numeric strings upstream;
// any that are not are left out.
func (h *Handler) sellerOptions(ctx context.Context) []combobox.Option {
	sellers := h.deps.Sellers.GetAll(ctx)
	out := make([]combobox.Option, 0, len(sellers))
	for _, s := range sellers {
		id, err := strconv.ParseInt(s.ID, 10, 64)
		if err != nil {
			continue
		}
		out = append(out, combobox.Option{Value: id, Label: s.Name})
	}
	return out
}

package httpadapter

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mesa-console/internal/core/domain"
	"mesa-console/internal/core/port"
)

func ptr[T any](v T) *T { return &v }

type fakeCampaigns struct {
	port.CampaignAPI
	mu      sync.Mutex
	items   []domain.Campaign
	created []domain.CampaignInput
	deleted []int64
}

func (f *fakeCampaigns) List(_ context.Context, q domain.ListQuery) domain.Page[domain.Campaign] {
	f.mu.Lock()
	defer f.mu.Unlock()
	return domain.Page[domain.Campaign]{Items: f.items, Page: q.Page, PageSize: q.PageSize, Total: len(f.items), TotalPages: 1}
}

func (f *fakeCampaigns) GetByID(_ context.Context, id int64) (*domain.Campaign, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.items {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, port.ErrNotFound
}

func (f *fakeCampaigns) GetByAdvertiser(_ context.Context, advertiserID int64) []domain.Campaign {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []domain.Campaign{}
	for _, c := range f.items {
		if c.AdvertiserID == advertiserID {
			out = append(out, c)
		}
	}
	return out
}

func (f *fakeCampaigns) Create(_ context.Context, in domain.CampaignInput) (*domain.Campaign, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, in)
	return &domain.Campaign{ID: 200, Name: in.Name, AdvertiserID: in.AdvertiserID}, nil
}

func (f *fakeCampaigns) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeAds struct {
	port.AdAPI
	mu      sync.Mutex
	items   []domain.Ad
	deleted []int64
}

func (f *fakeAds) GetByID(_ context.Context, id int64) (*domain.Ad, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.items {
		if a.ID == id {
			return &a, nil
		}
	}
	return nil, port.ErrNotFound
}

func (f *fakeAds) GetByCampaign(_ context.Context, campaignID int64) []domain.Ad {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []domain.Ad{}
	for _, a := range f.items {
		if a.CampaignID == campaignID {
			out = append(out, a)
		}
	}
	return out
}

func (f *fakeAds) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, id)
	return nil
}

// fakeProducts records which catalog read served each request.
type fakeProducts struct {
	port.ProductAPI
	mu      sync.Mutex
	items   []domain.Product
	reads   []string
	created []domain.ProductInput
	updated []string
	deleted []string
}

func (f *fakeProducts) filter(keep func(domain.Product) bool) []domain.Product {
	out := []domain.Product{}
	for _, p := range f.items {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}

func (f *fakeProducts) GetAll(context.Context) []domain.Product {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reads = append(f.reads, "all")
	return f.filter(func(domain.Product) bool { return true })
}

func (f *fakeProducts) GetBySeller(_ context.Context, sellerID string) []domain.Product {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reads = append(f.reads, "seller:"+sellerID)
	return f.filter(func(p domain.Product) bool { return p.SellerID == sellerID })
}

func (f *fakeProducts) GetByCategory(_ context.Context, category string) []domain.Product {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reads = append(f.reads, "category:"+category)
	return f.filter(func(p domain.Product) bool { return p.Category == category })
}

func (f *fakeProducts) GetByID(_ context.Context, id string) (*domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.items {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, port.ErrNotFound
}

func (f *fakeProducts) Create(_ context.Context, in domain.ProductInput) (*domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, in)
	return &domain.Product{ID: "p-new", Name: in.Name}, nil
}

func (f *fakeProducts) Update(_ context.Context, id string, in domain.ProductInput) (*domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updated = append(f.updated, id)
	return &domain.Product{ID: id, Name: in.Name}, nil
}

func (f *fakeProducts) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeSellers struct {
	port.SellerAPI
	items []domain.Seller
}

func (f *fakeSellers) GetAll(context.Context) []domain.Seller { return f.items }

func TestAdminUsers(t *testing.T) {
	h := newHarness(t)
	admin := h.signIn(t, 1, domain.RoleAdmin)

	rec := h.do(httptest.NewRequest(http.MethodGet, "/admin/users", nil), admin)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Ana Lopez")
	assert.Contains(t, body, "Cy Diaz")
	assert.Contains(t, body, "Beta Reach")
	assert.Contains(t, body, "/admin/users/11/delete")

	rec = h.do(postForm("/admin/users/new", url.Values{"firstName": {"Dee"}, "email": {"dee@example.com"}}), admin)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Empty(t, h.users.created)

	rec = h.do(postForm("/admin/users/new", url.Values{
		"firstName": {"Dee"},
		"lastName":  {"Evans"},
		"email":     {"dee@example.com"},
		"role":      {"ADVERTISER"},
		"agencyId":  {"2"},
	}), admin)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin/users", rec.Header().Get("Location"))
	require.Len(t, h.users.created, 1)
	assert.Equal(t, domain.RoleAdvertiser, h.users.created[0].Role)
	require.NotNil(t, h.users.created[0].AgencyID)
	assert.Equal(t, int64(2), *h.users.created[0].AgencyID)

	rec = h.do(httptest.NewRequest(http.MethodGet, "/admin/users/11/delete", nil), admin)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Bo Chen")

	rec = h.do(postForm("/admin/users/11/delete", url.Values{}), admin)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, []int64{11}, h.users.deleted)
}

func TestAdminCampaigns(t *testing.T) {
	h := newHarness(t)
	admin := h.signIn(t, 1, domain.RoleAdmin)

	rec := h.do(httptest.NewRequest(http.MethodGet, "/admin/campaigns", nil), admin)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Spring Sale")
	assert.Contains(t, body, "Winter Promo")
	assert.Contains(t, body, "/admin/campaigns/101/delete")

	rec = h.do(postForm("/admin/campaigns/101/delete", url.Values{}), admin)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin/campaigns", rec.Header().Get("Location"))
	assert.Equal(t, []int64{101}, h.campaigns.deleted)
}

func TestAgencyManagerScreens(t *testing.T) {
	h := newHarness(t)
	manager := h.signIn(t, 20, domain.RoleAgencyManager)

	rec := h.do(httptest.NewRequest(http.MethodGet, "/agency/advertisers", nil), manager)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Bo Chen")
	assert.NotContains(t, body, "Ana Lopez", "managers are not advertisers")
	assert.NotContains(t, body, "Cy Diaz", "advertiser of another agency")

	rec = h.do(httptest.NewRequest(http.MethodGet, "/agency/campaigns", nil), manager)
	require.Equal(t, http.StatusOK, rec.Code)
	body = rec.Body.String()
	assert.Contains(t, body, "Spring Sale")
	assert.NotContains(t, body, "Winter Promo")

	rec = h.do(httptest.NewRequest(http.MethodGet, "/agency/campaigns", nil), h.signIn(t, 11, domain.RoleAdvertiser))
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/unauthorized", rec.Header().Get("Location"))
}

func TestAdvertiserCampaigns(t *testing.T) {
	h := newHarness(t)
	advertiser := h.signIn(t, 11, domain.RoleAdvertiser)

	rec := h.do(httptest.NewRequest(http.MethodGet, "/advertiser/campaigns", nil), advertiser)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Spring Sale")
	assert.NotContains(t, body, "Winter Promo")
	assert.Contains(t, body, "/advertiser/campaigns/100/ads")
}

func TestAdvertiserCampaignCreate(t *testing.T) {
	h := newHarness(t)
	advertiser := h.signIn(t, 11, domain.RoleAdvertiser)
	form := url.Values{
		"name":         {"Autumn Push"},
		"advertiserId": {"12"},
		"type":         {"0"},
		"bidStrategy":  {"0"},
		"dailyBudget":  {"10"},
		"totalBudget":  {"100"},
		"startDate":    {"2026-01-01"},
		"endDate":      {"2025-12-01"},
	}

	rec := h.do(postForm("/advertiser/campaigns/new", form), advertiser)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Empty(t, h.campaigns.created)

	form.Set("endDate", "2026-02-01")
	rec = h.do(postForm("/advertiser/campaigns/new", form), advertiser)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/advertiser/campaigns", rec.Header().Get("Location"))
	require.Len(t, h.campaigns.created, 1)
	got := h.campaigns.created[0]
	assert.Equal(t, "Autumn Push", got.Name)
	assert.Equal(t, int64(11), got.AdvertiserID, "owner is always the viewer")
	assert.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), got.EndDate)
}

func TestForeignCampaignIsUnauthorized(t *testing.T) {
	h := newHarness(t)
	advertiser := h.signIn(t, 11, domain.RoleAdvertiser)

	tests := []struct {
		name string
		req  *http.Request
	}{
		{name: "edit form", req: httptest.NewRequest(http.MethodGet, "/advertiser/campaigns/101/edit", nil)},
		{name: "update", req: postForm("/advertiser/campaigns/101/edit", url.Values{"name": {"Hijack"}})},
		{name: "delete dialog", req: httptest.NewRequest(http.MethodGet, "/advertiser/campaigns/101/delete", nil)},
		{name: "delete", req: postForm("/advertiser/campaigns/101/delete", url.Values{})},
		{name: "ads", req: httptest.NewRequest(http.MethodGet, "/advertiser/campaigns/101/ads", nil)},
		{name: "ad delete", req: postForm("/advertiser/campaigns/101/ads/501/delete", url.Values{})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := h.do(tt.req, advertiser)
			assert.Equal(t, http.StatusFound, rec.Code)
			assert.Equal(t, "/unauthorized", rec.Header().Get("Location"))
		})
	}
	assert.Empty(t, h.campaigns.deleted)
	assert.Empty(t, h.ads.deleted)
}

func TestCampaignAds(t *testing.T) {
	h := newHarness(t)
	advertiser := h.signIn(t, 11, domain.RoleAdvertiser)

	rec := h.do(httptest.NewRequest(http.MethodGet, "/advertiser/campaigns/100/ads", nil), advertiser)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Spring Sale")
	assert.Contains(t, body, "Banner Spring")
	assert.NotContains(t, body, "Banner Winter")

	rec = h.do(httptest.NewRequest(http.MethodGet, "/advertiser/campaigns/100/ads/501/delete", nil), advertiser)
	assert.Equal(t, http.StatusNotFound, rec.Code, "ad of another campaign")

	rec = h.do(postForm("/advertiser/campaigns/100/ads/500/delete", url.Values{}), advertiser)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/advertiser/campaigns/100/ads", rec.Header().Get("Location"))
	assert.Equal(t, []int64{500}, h.ads.deleted)
}

func TestProductFilters(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		read    string
		shown   []string
		omitted []string
	}{
		{name: "unfiltered", query: "", read: "all", shown: []string{"Trail Shoe", "Desk Lamp", "Yoga Mat"}},
		{name: "seller", query: "?seller=1", read: "seller:1", shown: []string{"Trail Shoe", "Desk Lamp"}, omitted: []string{"Yoga Mat"}},
		{name: "category", query: "?category=Sports", read: "category:Sports", shown: []string{"Trail Shoe", "Yoga Mat"}, omitted: []string{"Desk Lamp"}},
		{name: "seller and category", query: "?seller=1&category=sports", read: "seller:1", shown: []string{"Trail Shoe"}, omitted: []string{"Desk Lamp", "Yoga Mat"}},
		{name: "search", query: "?search=lamp", read: "all", shown: []string{"Desk Lamp"}, omitted: []string{"Trail Shoe", "Yoga Mat"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			rec := h.do(httptest.NewRequest(http.MethodGet, "/advertiser/products"+tt.query, nil), h.signIn(t, 11, domain.RoleAdvertiser))
			require.Equal(t, http.StatusOK, rec.Code)
			body := rec.Body.String()
			for _, name := range tt.shown {
				assert.Contains(t, body, name)
			}
			for _, name := range tt.omitted {
				assert.NotContains(t, body, name)
			}
			assert.Equal(t, []string{tt.read}, h.products.reads)
			assert.Contains(t, body, "North Supply")
		})
	}
}

func TestProductMutations(t *testing.T) {
	h := newHarness(t)
	advertiser := h.signIn(t, 11, domain.RoleAdvertiser)
	form := url.Values{
		"name":     {"Water Bottle"},
		"price":    {"12.50"},
		"quantity": {"3"},
		"category": {"Sports"},
	}

	rec := h.do(postForm("/advertiser/products/new", form), advertiser)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code, "seller is required")
	assert.Empty(t, h.products.created)

	form.Set("sellerId", "2")
	rec = h.do(postForm("/advertiser/products/new", form), advertiser)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/advertiser/products", rec.Header().Get("Location"))
	require.Len(t, h.products.created, 1)
	assert.Equal(t, "2", h.products.created[0].SellerID)
	assert.InDelta(t, 12.5, h.products.created[0].Price, 0.001)

	rec = h.do(httptest.NewRequest(http.MethodGet, "/advertiser/products/p-2/edit", nil), advertiser)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Desk Lamp")

	rec = h.do(postForm("/advertiser/products/p-2/edit", form), advertiser)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, []string{"p-2"}, h.products.updated)

	rec = h.do(httptest.NewRequest(http.MethodGet, "/advertiser/products/p-2/delete", nil), advertiser)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Desk Lamp")

	rec = h.do(postForm("/advertiser/products/p-2/delete", url.Values{}), advertiser)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, []string{"p-2"}, h.products.deleted)

	rec = h.do(httptest.NewRequest(http.MethodGet, "/advertiser/products/p-9/delete", nil), advertiser)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = h.do(httptest.NewRequest(http.MethodGet, "/advertiser/products", nil), h.signIn(t, 20, domain.RoleAgencyManager))
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/unauthorized", rec.Header().Get("Location"))
}

func TestDeleteDialogCopyBelongsToViewer(t *testing.T) {
	h := newHarness(t)
	h.agencies.delErr = errors.New("upstream 500")

	spanish := postForm("/admin/agencies/1/delete", url.Values{})
	spanish.Header.Set("Accept-Language", "es")
	rec := h.do(spanish, h.signIn(t, 1, domain.RoleAdmin))
	require.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "Eliminar la agencia")
	assert.Contains(t, rec.Body.String(), `role="alert"`)

	english := httptest.NewRequest(http.MethodGet, "/admin/agencies/1/delete", nil)
	english.Header.Set("Accept-Language", "en")
	rec = h.do(english, h.signIn(t, 2, domain.RoleAdmin))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Delete agency")
	assert.NotContains(t, body, "Eliminar", "copy comes from the viewer's request")
	assert.NotContains(t, body, `role="alert"`, "another session's failure is not shown")
}

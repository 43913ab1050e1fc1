package restapi

import (
	"context"
	"net/http"
	"strconv"

	"mesa-console/internal/core/domain"
)

const adsResource = "ads"

// AdClient implements port.AdAPI.
type AdClient struct{ c *Client }

func NewAdClient(c *Client) *AdClient { return &AdClient{c: c} }

func (a *AdClient) List(ctx context.Context, q domain.ListQuery) domain.Page[domain.Ad] {
	var p pageDTO[adDTO]
	err := a.c.do(ctx, request{method: http.MethodGet, resource: adsResource, query: listQuery(q)}, &p)
	if err != nil {
		_ = a.c.resolve(ctx, DegradeToEmpty, adsResource, "List", err)
		return domain.EmptyPage[domain.Ad](q.Page, q.PageSize)
	}
	return toPage(p, q, toAd)
}

func (a *AdClient) GetByID(ctx context.Context, id int64) (*domain.Ad, error) {
	var d adDTO
	err := a.c.do(ctx, request{method: http.MethodGet, resource: adsResource, path: []string{strconv.FormatInt(id, 10)}}, &d)
	if err = a.c.resolve(ctx, Propagate, adsResource, "GetByID", err); err != nil {
		return nil, err
	}
	out := toAd(d)
	return &out, nil
}

func (a *AdClient) GetByCampaign(ctx context.Context, campaignID int64) []domain.Ad {
	return listOf(ctx, a.c, adsResource, "GetByCampaign", func() ([]domain.Ad, error) {
		var ds []adDTO
		r := request{method: http.MethodGet, resource: adsResource, path: []string{"campaign", strconv.FormatInt(campaignID, 10)}}
		if err := a.c.do(ctx, r, &ds); err != nil {
			return nil, err
		}
		return mapAll(ds, toAd), nil
	})
}

func (a *AdClient) Create(ctx context.Context, in domain.AdInput) (*domain.Ad, error) {
	var d adDTO
	err := a.c.do(ctx, request{method: http.MethodPost, resource: adsResource, body: fromAdInput(in)}, &d)
	if err = a.c.resolve(ctx, Propagate, adsResource, "Create", err); err != nil {
		return nil, err
	}
	out := toAd(d)
	return &out, nil
}

func (a *AdClient) Update(ctx context.Context, id int64, in domain.AdInput) (*domain.Ad, error) {
	var d adDTO
	r := request{method: http.MethodPut, resource: adsResource, path: []string{strconv.FormatInt(id, 10)}, body: fromAdInput(in)}
	err := a.c.do(ctx, r, &d)
	if err = a.c.resolve(ctx, Propagate, adsResource, "Update", err); err != nil {
		return nil, err
	}
	out := toAd(d)
	return &out, nil
}

func (a *AdClient) Delete(ctx context.Context, id int64) error {
	r := request{method: http.MethodDelete, resource: adsResource, path: []string{strconv.FormatInt(id, 10)}}
	return a.c.resolve(ctx, Propagate, adsResource, "Delete", a.c.do(ctx, r, nil))
}

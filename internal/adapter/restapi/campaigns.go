package restapi

import (
	"context"
	"net/http"
	"strconv"

	"mesa-console/internal/core/domain"
)

const campaignsResource = "campaigns"

// CampaignClient implements port.CampaignAPI.
type CampaignClient struct{ c *Client }

func NewCampaignClient(c *Client) *CampaignClient { return &CampaignClient{c: c} }

func (cc *CampaignClient) List(ctx context.Context, q domain.ListQuery) domain.Page[domain.Campaign] {
	var p pageDTO[campaignDTO]
	err := cc.c.do(ctx, request{method: http.MethodGet, resource: campaignsResource, query: listQuery(q)}, &p)
	if err != nil {
		_ = cc.c.resolve(ctx, DegradeToEmpty, campaignsResource, "List", err)
		return domain.EmptyPage[domain.Campaign](q.Page, q.PageSize)
	}
	return toPage(p, q, toCampaign)
}

func (cc *CampaignClient) GetByID(ctx context.Context, id int64) (*domain.Campaign, error) {
	var d campaignDTO
	err := cc.c.do(ctx, request{method: http.MethodGet, resource: campaignsResource, path: []string{strconv.FormatInt(id, 10)}}, &d)
	if err = cc.c.resolve(ctx, Propagate, campaignsResource, "GetByID", err); err != nil {
		return nil, err
	}
	out := toCampaign(d)
	return &out, nil
}

func (cc *CampaignClient) GetByAdvertiser(ctx context.Context, advertiserID int64) []domain.Campaign {
	return listOf(ctx, cc.c, campaignsResource, "GetByAdvertiser", func() ([]domain.Campaign, error) {
		var ds []campaignDTO
		r := request{method: http.MethodGet, resource: campaignsResource, path: []string{"advertiser", strconv.FormatInt(advertiserID, 10)}}
		if err := cc.c.do(ctx, r, &ds); err != nil {
			return nil, err
		}
		return mapAll(ds, toCampaign), nil
	})
}

func (cc *CampaignClient) Create(ctx context.Context, in domain.CampaignInput) (*domain.Campaign, error) {
	var d campaignDTO
	err := cc.c.do(ctx, request{method: http.MethodPost, resource: campaignsResource, body: fromCampaignInput(in)}, &d)
	if err = cc.c.resolve(ctx, Propagate, campaignsResource, "Create", err); err != nil {
		return nil, err
	}
	out := toCampaign(d)
	return &out, nil
}

func (cc *CampaignClient) Update(ctx context.Context, id int64, in domain.CampaignInput) (*domain.Campaign, error) {
	var d campaignDTO
	r := request{method: http.MethodPut, resource: campaignsResource, path: []string{strconv.FormatInt(id, 10)}, body: fromCampaignInput(in)}
	err := cc.c.do(ctx, r, &d)
	if err = cc.c.resolve(ctx, Propagate, campaignsResource, "Update", err); err != nil {
		return nil, err
	}
	out := toCampaign(d)
	return &out, nil
}

func (cc *CampaignClient) Delete(ctx context.Context, id int64) error {
	r := request{method: http.MethodDelete, resource: campaignsResource, path: []string{strconv.FormatInt(id, 10)}}
	return cc.c.resolve(ctx, Propagate, campaignsResource, "Delete", cc.c.do(ctx, r, nil))
}

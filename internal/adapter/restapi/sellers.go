package restapi

import (
	"context"
	"net/http"

	"mesa-console/internal/core/domain"
)

const sellersResource = "sellers"

// SellerClient implements port.SellerAPI.
type SellerClient struct{ c *Client }

func NewSellerClient(c *Client) *SellerClient { return &SellerClient{c: c} }

func (s *SellerClient) GetAll(ctx context.Context) []domain.Seller {
	return listOf(ctx, s.c, sellersResource, "GetAll", func() ([]domain.Seller, error) {
		var ds []sellerDTO
		if err := s.c.do(ctx, request{method: http.MethodGet, resource: sellersResource}, &ds); err != nil {
			return nil, err
		}
		return mapAll(ds, toSeller), nil
	})
}

func (s *SellerClient) GetByID(ctx context.Context, id string) (*domain.Seller, error) {
	var d sellerDTO
	err := s.c.do(ctx, request{method: http.MethodGet, resource: sellersResource, path: []string{id}}, &d)
	if err = s.c.resolve(ctx, Propagate, sellersResource, "GetByID", err); err != nil {
		return nil, err
	}
	out := toSeller(d)
	return &out, nil
}

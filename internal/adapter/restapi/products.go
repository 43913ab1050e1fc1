package restapi

import (
	"context"
	"net/http"

	"mesa-console/internal/core/domain"
)

const productsResource = "products"

// ProductClient implements port.ProductAPI.
type ProductClient struct{ c *Client }

func NewProductClient(c *Client) *ProductClient { return &ProductClient{c: c} }

func (p *ProductClient) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	var d productDTO
	err := p.c.do(ctx, request{method: http.MethodGet, resource: productsResource, path: []string{id}}, &d)
	if err = p.c.resolve(ctx, Propagate, productsResource, "GetByID", err); err != nil {
		return nil, err
	}
	out := toProduct(d)
	return &out, nil
}

func (p *ProductClient) GetBySeller(ctx context.Context, sellerID string) []domain.Product {
	return p.list(ctx, "GetBySeller", "seller", sellerID)
}

func (p *ProductClient) GetByCategory(ctx context.Context, category string) []domain.Product {
	return p.list(ctx, "GetByCategory", "category", category)
}

func (p *ProductClient) GetAll(ctx context.Context) []domain.Product {
	return p.list(ctx, "GetAll")
}

func (p *ProductClient) list(ctx context.Context, op string, path ...string) []domain.Product {
	return listOf(ctx, p.c, productsResource, op, func() ([]domain.Product, error) {
		var ds []productDTO
		if err := p.c.do(ctx, request{method: http.MethodGet, resource: productsResource, path: path}, &ds); err != nil {
			return nil, err
		}
		return mapAll(ds, toProduct), nil
	})
}

func (p *ProductClient) Create(ctx context.Context, in domain.ProductInput) (*domain.Product, error) {
	var d productDTO
	err := p.c.do(ctx, request{method: http.MethodPost, resource: productsResource, body: fromProductInput(in)}, &d)
	if err = p.c.resolve(ctx, Propagate, productsResource, "Create", err); err != nil {
		return nil, err
	}
	out := toProduct(d)
	return &out, nil
}

func (p *ProductClient) Update(ctx context.Context, id string, in domain.ProductInput) (*domain.Product, error) {
	var d productDTO
	err := p.c.do(ctx, request{method: http.MethodPut, resource: productsResource, path: []string{id}, body: fromProductInput(in)}, &d)
	if err = p.c.resolve(ctx, Propagate, productsResource, "Update", err); err != nil {
		return nil, err
	}
	out := toProduct(d)
	return &out, nil
}

func (p *ProductClient) Delete(ctx context.Context, id string) error {
	err := p.c.do(ctx, request{method: http.MethodDelete, resource: productsResource, path: []string{id}}, nil)
	return p.c.resolve(ctx, Propagate, productsResource, "Delete", err)
}

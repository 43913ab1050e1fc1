package restapi

import (
	"context"
	"net/http"
	"strconv"

	"mesa-console/internal/core/domain"
)

const agenciesResource = "agencies"

// AgencyClient implements port.AgencyAPI.
type AgencyClient struct{ c *Client }

func NewAgencyClient(c *Client) *AgencyClient { return &AgencyClient{c: c} }

func (a *AgencyClient) List(ctx context.Context, q domain.ListQuery) domain.Page[domain.Agency] {
	var p pageDTO[agencyDTO]
	err := a.c.do(ctx, request{method: http.MethodGet, resource: agenciesResource, query: listQuery(q)}, &p)
	if err != nil {
		_ = a.c.resolve(ctx, DegradeToEmpty, agenciesResource, "List", err)
		return domain.EmptyPage[domain.Agency](q.Page, q.PageSize)
	}
	return toPage(p, q, toAgency)
}

func (a *AgencyClient) GetByID(ctx context.Context, id int64) (*domain.Agency, error) {
	var d agencyDTO
	err := a.c.do(ctx, request{method: http.MethodGet, resource: agenciesResource, path: []string{strconv.FormatInt(id, 10)}}, &d)
	if err = a.c.resolve(ctx, Propagate, agenciesResource, "GetByID", err); err != nil {
		return nil, err
	}
	out := toAgency(d)
	return &out, nil
}

func (a *AgencyClient) GetByManager(ctx context.Context, managerID int64) []domain.Agency {
	return listOf(ctx, a.c, agenciesResource, "GetByManager", func() ([]domain.Agency, error) {
		var ds []agencyDTO
		r := request{method: http.MethodGet, resource: agenciesResource, path: []string{"manager", strconv.FormatInt(managerID, 10)}}
		if err := a.c.do(ctx, r, &ds); err != nil {
			return nil, err
		}
		return mapAll(ds, toAgency), nil
	})
}

func (a *AgencyClient) Create(ctx context.Context, in domain.AgencyInput) (*domain.Agency, error) {
	var d agencyDTO
	err := a.c.do(ctx, request{method: http.MethodPost, resource: agenciesResource, body: fromAgencyInput(in)}, &d)
	if err = a.c.resolve(ctx, Propagate, agenciesResource, "Create", err); err != nil {
		return nil, err
	}
	out := toAgency(d)
	return &out, nil
}

func (a *AgencyClient) Update(ctx context.Context, id int64, in domain.AgencyInput) (*domain.Agency, error) {
	var d agencyDTO
	r := request{method: http.MethodPut, resource: agenciesResource, path: []string{strconv.FormatInt(id, 10)}, body: fromAgencyInput(in)}
	err := a.c.do(ctx, r, &d)
	if err = a.c.resolve(ctx, Propagate, agenciesResource, "Update", err); err != nil {
		return nil, err
	}
	out := toAgency(d)
	return &out, nil
}

func (a *AgencyClient) SetStatus(ctx context.Context, id int64, status domain.AgencyStatus) error {
	r := request{
		method:   http.MethodPatch,
		resource: agenciesResource,
		path:     []string{strconv.FormatInt(id, 10), "status"},
		body:     map[string]int{"status": int(status)},
	}
	return a.c.resolve(ctx, Propagate, agenciesResource, "SetStatus", a.c.do(ctx, r, nil))
}

func (a *AgencyClient) Delete(ctx context.Context, id int64) error {
	r := request{method: http.MethodDelete, resource: agenciesResource, path: []string{strconv.FormatInt(id, 10)}}
	return a.c.resolve(ctx, Propagate, agenciesResource, "Delete", a.c.do(ctx, r, nil))
}

package restapi

import (
	"context"
	"net/http"
	"strconv"

	"mesa-console/internal/core/domain"
)

const usersResource = "users"

// UserClient implements port.UserAPI.
type UserClient struct{ c *Client }

func NewUserClient(c *Client) *UserClient { return &UserClient{c: c} }

func (u *UserClient) List(ctx context.Context, q domain.ListQuery) domain.Page[domain.User] {
	var p pageDTO[userDTO]
	err := u.c.do(ctx, request{method: http.MethodGet, resource: usersResource, query: listQuery(q)}, &p)
	if err != nil {
		_ = u.c.resolve(ctx, DegradeToEmpty, usersResource, "List", err)
		return domain.EmptyPage[domain.User](q.Page, q.PageSize)
	}
	return toPage(p, q, toUser)
}

func (u *UserClient) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return u.one(ctx, "GetByID", strconv.FormatInt(id, 10))
}

// Me returns the user the bearer token belongs to.
func (u *UserClient) Me(ctx context.Context) (*domain.User, error) {
	return u.one(ctx, "Me", "me")
}

func (u *UserClient) one(ctx context.Context, op string, path ...string) (*domain.User, error) {
	var d userDTO
	err := u.c.do(ctx, request{method: http.MethodGet, resource: usersResource, path: path}, &d)
	if err = u.c.resolve(ctx, Propagate, usersResource, op, err); err != nil {
		return nil, err
	}
	out := toUser(d)
	return &out, nil
}

func (u *UserClient) GetByAgency(ctx context.Context, agencyID int64) []domain.User {
	return listOf(ctx, u.c, usersResource, "GetByAgency", func() ([]domain.User, error) {
		var ds []userDTO
		r := request{method: http.MethodGet, resource: usersResource, path: []string{"agency", strconv.FormatInt(agencyID, 10)}}
		if err := u.c.do(ctx, r, &ds); err != nil {
			return nil, err
		}
		return mapAll(ds, toUser), nil
	})
}

func (u *UserClient) Create(ctx context.Context, in domain.UserInput) (*domain.User, error) {
	var d userDTO
	err := u.c.do(ctx, request{method: http.MethodPost, resource: usersResource, body: fromUserInput(in)}, &d)
	if err = u.c.resolve(ctx, Propagate, usersResource, "Create", err); err != nil {
		return nil, err
	}
	out := toUser(d)
	return &out, nil
}

func (u *UserClient) Update(ctx context.Context, id int64, in domain.UserInput) (*domain.User, error) {
	var d userDTO
	r := request{method: http.MethodPut, resource: usersResource, path: []string{strconv.FormatInt(id, 10)}, body: fromUserInput(in)}
	err := u.c.do(ctx, r, &d)
	if err = u.c.resolve(ctx, Propagate, usersResource, "Update", err); err != nil {
		return nil, err
	}
	out := toUser(d)
	return &out, nil
}

func (u *UserClient) Delete(ctx context.Context, id int64) error {
	r := request{method: http.MethodDelete, resource: usersResource, path: []string{strconv.FormatInt(id, 10)}}
	return u.c.resolve(ctx, Propagate, usersResource, "Delete", u.c.do(ctx, r, nil))
}

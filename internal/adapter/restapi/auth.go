package restapi

import (
	"context"
	"errors"
	"net/http"
)

const authResource = "auth"

var errEmptyToken = errors.New("login response carried no token")

// AuthClient implements port.AuthAPI.
type AuthClient struct{ c *Client }

func NewAuthClient(c *Client) *AuthClient { return &AuthClient{c: c} }

// Login exchanges credentials for a bearer token.
func (a *AuthClient) Login(ctx context.Context, email, password string) (string, error) {
	var resp struct {
		Token       string `json:"token"`
		AccessToken string `json:"accessToken"`
	}
	r := request{
		method:   http.MethodPost,
		resource: authResource,
		path:     []string{"login"},
		body:     map[string]string{"email": email, "password": password},
	}
	err := a.c.do(ctx, r, &resp)
	if err == nil && resp.Token == "" && resp.AccessToken == "" {
		err = errEmptyToken
	}
	if err = a.c.resolve(ctx, Propagate, authResource, "Login", err); err != nil {
		return "", err
	}
	if resp.Token != "" {
		return resp.Token, nil
	}
	return resp.AccessToken, nil
}

// Package guard decides what a gated route does for the current viewer.
package guard

import "mesa-console/internal/core/domain"

const (
	LoginPath        = "/login"
	UnauthorizedPath = "/unauthorized"
)

// Auth is the contract exposed by the auth provider.
type Auth interface {
	IsLoading() bool
	IsAuthenticated() bool
	IsAuthorized(roles ...domain.Role) bool
}

// Decision is the outcome of evaluating a route guard.
type Decision int

const (
	Loading Decision = iota
	RedirectLogin
	RedirectUnauthorized
	Allow
)

func (d Decision) String() string {
	switch d {
	case Loading:
		return "loading"
	case RedirectLogin:
		return "redirect_login"
	case RedirectUnauthorized:
		return "redirect_unauthorized"
	case Allow:
		return "allow"
	default:
		return "unknown"
	}
}

// Location returns the redirect target, or "" for non-redirect decisions.
func (d Decision) Location() string {
	switch d {
	case RedirectLogin:
		return LoginPath
	case RedirectUnauthorized:
		return UnauthorizedPath
	default:
		return ""
	}
}

// Decide evaluates auth against the permitted roles. States are checked in
// order: loading, unauthenticated, unauthorized. An empty roles list only
// requires authentication. A nil auth behaves as unauthenticated.
func Decide(auth Auth, roles []domain.Role) Decision {
	if auth == nil {
		return RedirectLogin
	}
	if auth.IsLoading() {
		return Loading
	}
	if !auth.IsAuthenticated() {
		return RedirectLogin
	}
	if len(roles) > 0 && !auth.IsAuthorized(roles...) {
		return RedirectUnauthorized
	}
	return Allow
}

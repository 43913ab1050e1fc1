package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"mesa-console/internal/core/domain"
	"mesa-console/internal/core/guard"
	"mesa-console/internal/core/port"
)

// AuthState is the resolved auth context of one request. It implements
// guard.Auth. The zero value is an anonymous viewer.
type AuthState struct {
	loading bool
	user    *domain.User
	token   string
}

var _ guard.Auth = (*AuthState)(nil)

// Anonymous is the state of a viewer without a usable token.
func Anonymous() *AuthState { return &AuthState{} }

func (s *AuthState) IsLoading() bool {
	return s != nil && s.loading
}

func (s *AuthState) IsAuthenticated() bool {
	return s != nil && !s.loading && s.user != nil && s.token != ""
}

// IsAuthorized reports whether the user holds any of roles.
func (s *AuthState) IsAuthorized(roles ...domain.Role) bool {
	if !s.IsAuthenticated() {
		return false
	}
	return slices.Contains(roles, s.user.Role)
}

// User returns the signed in user, or nil.
func (s *AuthState) User() *domain.User {
	if s == nil {
		return nil
	}
	return s.user
}

// Token returns the bearer token, or "".
func (s *AuthState) Token() string {
	if s == nil {
		return ""
	}
	return s.token
}

// AuthProvider owns the token preference.
type AuthProvider struct {
	prefs    port.PreferenceRepository
	auth     port.AuthAPI
	profiles port.ProfileAPI
	verifier *TokenVerifier
	logger   *slog.Logger
}

func NewAuthProvider(
	prefs port.PreferenceRepository,
	auth port.AuthAPI,
	profiles port.ProfileAPI,
	verifier *TokenVerifier,
	logger *slog.Logger,
) *AuthProvider {
	return &AuthProvider{prefs: prefs, auth: auth, profiles: profiles, verifier: verifier, logger: logger}
}

// Resolve builds the auth state from the stored token. A token without a
// role claim is completed from the profile endpoint; while that lookup
// cannot be answered the state is loading. Tokens that fail verification
// or are rejected upstream are cleared.
func (p *AuthProvider) Resolve(ctx context.Context, s *Session) *AuthState {
	token := s.Get(domain.PrefToken)
	if token == "" {
		return Anonymous()
	}

	user, err := p.verifier.Verify(token)
	if err != nil {
		p.logger.InfoContext(ctx, "discarding stored token", slog.Any("error", err))
		p.clear(ctx, s)
		return Anonymous()
	}
	if user.Role != "" {
		return &AuthState{user: user, token: token}
	}

	profile, err := p.profiles.Me(port.WithToken(ctx, token))
	switch {
	case errors.Is(err, port.ErrUnauthorized):
		p.clear(ctx, s)
		return Anonymous()
	case err != nil:
		p.logger.WarnContext(ctx, "profile lookup pending", slog.Any("error", err))
		return &AuthState{loading: true, token: token}
	}
	return &AuthState{user: profile, token: token}
}

// Login exchanges credentials for a token, resolves the user and persists
// the token. Nothing is stored when any step fails.
func (p *AuthProvider) Login(ctx context.Context, s *Session, email, password string) (*AuthState, error) {
	token, err := p.auth.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	user, err := p.verifier.Verify(token)
	if err != nil {
		return nil, err
	}
	if user.Role == "" {
		if user, err = p.profiles.Me(port.WithToken(ctx, token)); err != nil {
			return nil, fmt.Errorf("load profile: %w", err)
		}
	}
	if err = p.prefs.Set(ctx, s.ID, domain.PrefToken, token); err != nil {
		return nil, fmt.Errorf("persist token: %w", err)
	}
	s.set(domain.PrefToken, token)
	return &AuthState{user: user, token: token}, nil
}

// Logout forgets the stored token.
func (p *AuthProvider) Logout(ctx context.Context, s *Session) error {
	if err := p.prefs.Delete(ctx, s.ID, domain.PrefToken); err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	s.unset(domain.PrefToken)
	return nil
}

func (p *AuthProvider) clear(ctx context.Context, s *Session) {
	if err := p.Logout(ctx, s); err != nil {
		p.logger.ErrorContext(ctx, "clear token", slog.Any("error", err))
	}
}

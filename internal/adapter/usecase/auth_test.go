package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"mesa-console/internal/config/configs"
	"mesa-console/internal/core/domain"
	"mesa-console/internal/core/guard"
	"mesa-console/internal/core/port"
	"mesa-console/internal/core/port/mocks"
)

type authFixture struct {
	prefs    *mocks.MockPreferenceRepository
	auth     *mocks.MockAuthAPI
	profiles *mocks.MockProfileAPI
	provider *AuthProvider
}

func newAuthFixture(t *testing.T) authFixture {
	f := authFixture{
		prefs:    mocks.NewMockPreferenceRepository(t),
		auth:     mocks.NewMockAuthAPI(t),
		profiles: mocks.NewMockProfileAPI(t),
	}
	verifier := NewTokenVerifier(configs.Auth{Secret: testSecret})
	f.provider = NewAuthProvider(f.prefs, f.auth, f.profiles, verifier, discardLogger())
	return f
}

func TestResolveAnonymous(t *testing.T) {
	f := newAuthFixture(t)

	state := f.provider.Resolve(context.Background(), &Session{ID: "s"})
	assert.False(t, state.IsLoading())
	assert.False(t, state.IsAuthenticated())
	assert.Equal(t, guard.RedirectLogin, guard.Decide(state, nil))
}

func TestResolveFromRoleClaim(t *testing.T) {
	f := newAuthFixture(t)
	tok := signToken(t, jwt.MapClaims{"sub": "5", "role": "ADMIN"})

	state := f.provider.Resolve(context.Background(), &Session{ID: "s", Values: map[string]string{domain.PrefToken: tok}})
	require.True(t, state.IsAuthenticated())
	assert.True(t, state.IsAuthorized(domain.RoleAdmin))
	assert.False(t, state.IsAuthorized(domain.RoleAdvertiser))
	assert.Equal(t, tok, state.Token())
	assert.Equal(t, int64(5), state.User().ID)
}

func TestResolveClearsInvalidToken(t *testing.T) {
	f := newAuthFixture(t)
	f.prefs.EXPECT().Delete(mock.Anything, "s", domain.PrefToken).Return(nil).Once()

	s := &Session{ID: "s", Values: map[string]string{domain.PrefToken: "garbage"}}
	state := f.provider.Resolve(context.Background(), s)
	assert.False(t, state.IsAuthenticated())
	assert.Empty(t, s.Get(domain.PrefToken))
}

func TestResolveCompletesFromProfile(t *testing.T) {
	f := newAuthFixture(t)
	tok := signToken(t, jwt.MapClaims{"sub": "5"})
	f.profiles.EXPECT().Me(mock.Anything).RunAndReturn(func(ctx context.Context) (*domain.User, error) {
		assert.Equal(t, tok, port.TokenFromContext(ctx))
		return &domain.User{ID: 5, Role: domain.RoleAgencyManager}, nil
	}).Once()

	state := f.provider.Resolve(context.Background(), &Session{ID: "s", Values: map[string]string{domain.PrefToken: tok}})
	assert.True(t, state.IsAuthorized(domain.RoleAgencyManager))
}

func TestResolveLoadingWhileProfileUnavailable(t *testing.T) {
	f := newAuthFixture(t)
	tok := signToken(t, jwt.MapClaims{"sub": "5"})
	f.profiles.EXPECT().Me(mock.Anything).Return(nil, context.DeadlineExceeded).Once()

	state := f.provider.Resolve(context.Background(), &Session{ID: "s", Values: map[string]string{domain.PrefToken: tok}})
	assert.True(t, state.IsLoading())
	assert.False(t, state.IsAuthenticated())
	assert.Equal(t, guard.Loading, guard.Decide(state, []domain.Role{domain.RoleAdmin}))
}

func TestResolveProfileRejected(t *testing.T) {
	f := newAuthFixture(t)
	tok := signToken(t, jwt.MapClaims{"sub": "5"})
	f.profiles.EXPECT().Me(mock.Anything).Return(nil, port.ErrUnauthorized).Once()
	f.prefs.EXPECT().Delete(mock.Anything, "s", domain.PrefToken).Return(nil).Once()

	state := f.provider.Resolve(context.Background(), &Session{ID: "s", Values: map[string]string{domain.PrefToken: tok}})
	assert.False(t, state.IsAuthenticated())
	assert.False(t, state.IsLoading())
}

func TestLoginPersistsToken(t *testing.T) {
	f := newAuthFixture(t)
	tok := signToken(t, jwt.MapClaims{"sub": "9", "role": "ADVERTISER"})
	f.auth.EXPECT().Login(mock.Anything, "a@b.c", "pw").Return(tok, nil).Once()
	f.prefs.EXPECT().Set(mock.Anything, "s", domain.PrefToken, tok).Return(nil).Once()

	s := &Session{ID: "s"}
	state, err := f.provider.Login(context.Background(), s, "a@b.c", "pw")
	require.NoError(t, err)
	assert.True(t, state.IsAuthorized(domain.RoleAdvertiser))
	assert.Equal(t, tok, s.Get(domain.PrefToken))
}

func TestLoginFailureStoresNothing(t *testing.T) {
	f := newAuthFixture(t)
	f.auth.EXPECT().Login(mock.Anything, "a@b.c", "bad").Return("", port.ErrUnauthorized).Once()

	s := &Session{ID: "s"}
	_, err := f.provider.Login(context.Background(), s, "a@b.c", "bad")
	assert.ErrorIs(t, err, port.ErrUnauthorized)
	assert.Empty(t, s.Get(domain.PrefToken))
}

func TestLoginPersistFailure(t *testing.T) {
	f := newAuthFixture(t)
	tok := signToken(t, jwt.MapClaims{"sub": "9", "role": "ADMIN"})
	boom := errors.New("db down")
	f.auth.EXPECT().Login(mock.Anything, "a@b.c", "pw").Return(tok, nil).Once()
	f.prefs.EXPECT().Set(mock.Anything, "s", domain.PrefToken, tok).Return(boom).Once()

	_, err := f.provider.Login(context.Background(), &Session{ID: "s"}, "a@b.c", "pw")
	assert.ErrorIs(t, err, boom)
}

func TestLogout(t *testing.T) {
	f := newAuthFixture(t)
	f.prefs.EXPECT().Delete(mock.Anything, "s", domain.PrefToken).Return(nil).Once()

	s := &Session{ID: "s", Values: map[string]string{domain.PrefToken: "x", domain.PrefTheme: "dark"}}
	require.NoError(t, f.provider.Logout(context.Background(), s))
	assert.Empty(t, s.Get(domain.PrefToken))
	assert.Equal(t, "dark", s.Get(domain.PrefTheme))
}

func TestNilAuthState(t *testing.T) {
	var s *AuthState
	assert.False(t, s.IsLoading())
	assert.False(t, s.IsAuthenticated())
	assert.False(t, s.IsAuthorized(domain.RoleAdmin))
	assert.Nil(t, s.User())
	assert.Empty(t, s.Token())
}

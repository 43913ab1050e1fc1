package usecase

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mesa-console/internal/config/configs"
	"mesa-console/internal/core/domain"
)

func TestVerifySignedToken(t *testing.T) {
	v := NewTokenVerifier(configs.Auth{Secret: testSecret, Issuer: "mesa", RoleClaim: "role"})

	tok := signToken(t, jwt.MapClaims{
		"sub":         "42",
		"iss":         "mesa",
		"email":       "ana@example.com",
		"given_name":  "Ana",
		"family_name": "Ruiz",
		"role":        "advertiser",
		"agencyId":    float64(7),
	})
	u, err := v.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, int64(42), u.ID)
	assert.Equal(t, domain.RoleAdvertiser, u.Role)
	assert.Equal(t, "Ana Ruiz", u.FullName())
	require.NotNil(t, u.AgencyID)
	assert.Equal(t, int64(7), *u.AgencyID)
}

func TestVerifyRejects(t *testing.T) {
	v := NewTokenVerifier(configs.Auth{Secret: testSecret, Issuer: "mesa"})

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-jwt"},
		{"expired", signToken(t, jwt.MapClaims{"iss": "mesa", "exp": time.Now().Add(-time.Minute).Unix()})},
		{"wrong issuer", signToken(t, jwt.MapClaims{"iss": "other"})},
		{"wrong secret", func() string {
			s, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"iss": "mesa", "exp": time.Now().Add(time.Hour).Unix()}).SignedString([]byte("nope"))
			return s
		}()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.Verify(tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestVerifyUnsignedModeChecksExpiry(t *testing.T) {
	v := NewTokenVerifier(configs.Auth{})

	ok := signToken(t, jwt.MapClaims{"sub": "1", "role": []any{"ADMIN", "ADVERTISER"}})
	u, err := v.Verify(ok)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, u.Role)

	expired := signToken(t, jwt.MapClaims{"exp": time.Now().Add(-time.Hour).Unix()})
	_, err = v.Verify(expired)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyCustomRoleClaim(t *testing.T) {
	const claim = "http://schemas.microsoft.com/ws/2008/06/identity/claims/role"
	v := NewTokenVerifier(configs.Auth{Secret: testSecret, RoleClaim: claim})

	u, err := v.Verify(signToken(t, jwt.MapClaims{claim: "AGENCY_MANAGER", "name": "Bo"}))
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAgencyManager, u.Role)
	assert.Equal(t, "Bo", u.FullName())
}

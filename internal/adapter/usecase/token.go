package usecase

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"mesa-console/internal/config/configs"
	"mesa-console/internal/core/domain"
)

var ErrInvalidToken = errors.New("invalid token")

// TokenVerifier reads the identity claims out of a bearer token. With a
// configured secret the HS256 signature and issuer are checked; without one
// only the expiry is.
type TokenVerifier struct {
	secret    []byte
	issuer    string
	roleClaim string
	now       func() time.Time
}

func NewTokenVerifier(cfg configs.Auth) *TokenVerifier {
	v := &TokenVerifier{issuer: cfg.Issuer, roleClaim: cfg.RoleClaim, now: time.Now}
	if cfg.Secret != "" {
		v.secret = []byte(cfg.Secret)
	}
	if v.roleClaim == "" {
		v.roleClaim = "role"
	}
	return v
}

// Verify returns the user described by token. The Role is empty when the
// token carries no role claim.
func (v *TokenVerifier) Verify(token string) (*domain.User, error) {
	claims := jwt.MapClaims{}
	if v.secret == nil {
		if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
		}
		exp, err := claims.GetExpirationTime()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
		}
		if exp != nil && !v.now().Before(exp.Time) {
			return nil, fmt.Errorf("%w: %w", ErrInvalidToken, jwt.ErrTokenExpired)
		}
	} else {
		opts := []jwt.ParserOption{
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
			jwt.WithTimeFunc(v.now),
		}
		if v.issuer != "" {
			opts = append(opts, jwt.WithIssuer(v.issuer))
		}
		_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return v.secret, nil
		}, opts...)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
		}
	}
	return v.userFromClaims(claims), nil
}

func (v *TokenVerifier) userFromClaims(c jwt.MapClaims) *domain.User {
	u := &domain.User{
		Email:     claimString(c, "email"),
		FirstName: claimString(c, "given_name"),
		LastName:  claimString(c, "family_name"),
		TenantID:  claimString(c, "tenantId"),
		Role:      domain.ParseRole(claimString(c, v.roleClaim)),
		Active:    true,
	}
	if sub, err := c.GetSubject(); err == nil {
		u.ID, _ = strconv.ParseInt(sub, 10, 64)
	}
	if u.FirstName == "" && u.LastName == "" {
		u.FirstName = claimString(c, "name")
	}
	if s := claimString(c, "agencyId"); s != "" {
		if id, err := strconv.ParseInt(s, 10, 64); err == nil {
			u.AgencyID = &id
		}
	}
	return u
}

// claimString stringifies a claim. Arrays yield their first element, which
// is how role claims arrive from identity services that allow many roles.
func claimString(c jwt.MapClaims, name string) string {
	switch v := c[name].(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatInt(int64(v), 10)
	case []any:
		if len(v) > 0 {
			if s, ok := v[0].(string); ok {
				return strings.TrimSpace(s)
			}
		}
	}
	return ""
}

package usecase

import (
	"context"
	"fmt"

	"mesa-console/internal/core/domain"
	"mesa-console/internal/core/port"
)

// ThemeProvider owns the theme preference.
type ThemeProvider struct {
	prefs port.PreferenceRepository
}

func NewThemeProvider(prefs port.PreferenceRepository) *ThemeProvider {
	return &ThemeProvider{prefs: prefs}
}

// Current returns the stored theme, light by default.
func (p *ThemeProvider) Current(s *Session) domain.Theme {
	return domain.ParseTheme(s.Get(domain.PrefTheme))
}

// Set persists t.
func (p *ThemeProvider) Set(ctx context.Context, s *Session, t domain.Theme) error {
	t = domain.ParseTheme(string(t))
	if err := p.prefs.Set(ctx, s.ID, domain.PrefTheme, string(t)); err != nil {
		return fmt.Errorf("persist theme: %w", err)
	}
	s.set(domain.PrefTheme, string(t))
	return nil
}

// Toggle switches between light and dark and returns the new theme.
func (p *ThemeProvider) Toggle(ctx context.Context, s *Session) (domain.Theme, error) {
	next := p.Current(s).Toggle()
	if err := p.Set(ctx, s, next); err != nil {
		return p.Current(s), err
	}
	return next, nil
}

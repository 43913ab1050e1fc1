package usecase

import (
	"context"
	"fmt"

	"golang.org/x/text/language"

	"mesa-console/internal/core/domain"
	"mesa-console/internal/core/port"
	"mesa-console/internal/i18n"
)

// LanguageProvider owns the language preference.
type LanguageProvider struct {
	prefs  port.PreferenceRepository
	bundle *i18n.Bundle
}

func NewLanguageProvider(prefs port.PreferenceRepository, bundle *i18n.Bundle) *LanguageProvider {
	return &LanguageProvider{prefs: prefs, bundle: bundle}
}

// Resolve picks the stored language, then the Accept-Language header, then
// the base locale.
func (p *LanguageProvider) Resolve(s *Session, acceptLanguage string) language.Tag {
	return p.bundle.Match(s.Get(domain.PrefLanguage), acceptLanguage)
}

// Localizer returns the translator for the resolved language.
func (p *LanguageProvider) Localizer(s *Session, acceptLanguage string) *i18n.Localizer {
	return p.bundle.Localizer(p.Resolve(s, acceptLanguage))
}

// Set persists the supported language closest to lang and returns it.
func (p *LanguageProvider) Set(ctx context.Context, s *Session, lang string) (language.Tag, error) {
	tag := p.bundle.Match(lang)
	if err := p.prefs.Set(ctx, s.ID, domain.PrefLanguage, tag.String()); err != nil {
		return tag, fmt.Errorf("persist language: %w", err)
	}
	s.set(domain.PrefLanguage, tag.String())
	return tag, nil
}

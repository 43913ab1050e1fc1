package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"mesa-console/internal/adapter/memory"
	"mesa-console/internal/core/domain"
	"mesa-console/internal/core/port/mocks"
	"mesa-console/internal/i18n"
)

func TestSessionsLoad(t *testing.T) {
	repo := memory.NewPreferenceRepository()
	require.NoError(t, repo.Set(context.Background(), "s", domain.PrefTheme, "dark"))

	s := NewSessions(repo, discardLogger()).Load(context.Background(), "s")
	assert.Equal(t, "s", s.ID)
	assert.Equal(t, "dark", s.Get(domain.PrefTheme))
}

func TestSessionsLoadFailureYieldsEmpty(t *testing.T) {
	repo := mocks.NewMockPreferenceRepository(t)
	repo.EXPECT().Load(mock.Anything, "s").Return(nil, errors.New("down")).Once()

	s := NewSessions(repo, discardLogger()).Load(context.Background(), "s")
	assert.NotNil(t, s.Values)
	assert.Empty(t, s.Get(domain.PrefToken))
}

func TestThemeProvider(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewPreferenceRepository()
	p := NewThemeProvider(repo)
	s := &Session{ID: "s"}

	assert.Equal(t, domain.ThemeLight, p.Current(s))

	next, err := p.Toggle(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, domain.ThemeDark, next)
	stored, err := repo.Get(ctx, "s", domain.PrefTheme)
	require.NoError(t, err)
	assert.Equal(t, "dark", stored)

	require.NoError(t, p.Set(ctx, s, "neon"))
	assert.Equal(t, domain.ThemeLight, p.Current(s))
}

func TestThemeProviderPersistFailureKeepsState(t *testing.T) {
	repo := mocks.NewMockPreferenceRepository(t)
	repo.EXPECT().Set(mock.Anything, "s", domain.PrefTheme, "dark").Return(errors.New("down")).Once()
	p := NewThemeProvider(repo)
	s := &Session{ID: "s"}

	got, err := p.Toggle(context.Background(), s)
	assert.Error(t, err)
	assert.Equal(t, domain.ThemeLight, got)
	assert.Equal(t, domain.ThemeLight, p.Current(s))
}

func TestLanguageProvider(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewPreferenceRepository()
	p := NewLanguageProvider(repo, i18n.MustLoad())
	s := &Session{ID: "s"}

	assert.Equal(t, language.English, p.Resolve(s, ""))
	base, _ := p.Resolve(s, "es-ES,es;q=0.8").Base()
	assert.Equal(t, "es", base.String())

	tag, err := p.Set(ctx, s, "es")
	require.NoError(t, err)
	assert.Equal(t, language.Spanish, tag)
	stored, err := repo.Get(ctx, "s", domain.PrefLanguage)
	require.NoError(t, err)
	assert.Equal(t, "es", stored)

	// The stored choice beats the browser header.
	assert.Equal(t, language.Spanish, p.Resolve(s, "en-US"))
	assert.Equal(t, "Agencias", p.Localizer(s, "en-US").T("nav.agencies"))
}

package i18n

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestEmbeddedCatalogsLoad(t *testing.T) {
	b, err := Load()
	require.NoError(t, err)
	assert.Equal(t, language.English, b.Supported()[0])
	assert.Contains(t, b.Supported(), language.Spanish)
}

func TestEmbeddedLocalesDefineSameKeys(t *testing.T) {
	b := MustLoad()
	base := b.messages[BaseLocale]
	for tag, msgs := range b.messages {
		for key := range base {
			assert.Contains(t, msgs, key, "%s missing %q", tag, key)
		}
	}
}

func TestTranslate(t *testing.T) {
	b := MustLoad()
	en := b.Localizer(language.English)
	es := b.Localizer(language.Spanish)

	assert.Equal(t, "Agencies", en.T("nav.agencies"))
	assert.Equal(t, "Agencias", es.T("nav.agencies"))
	assert.Equal(t, "no.such.key", es.T("no.such.key"))
	assert.Equal(t, "Showing 11 to 20 of 1,234 items",
		en.T("table.range", Params{"start": 11, "end": 20, "total": 1234}))

	var nilLoc *Localizer
	assert.Equal(t, "nav.agencies", nilLoc.T("nav.agencies"))
	assert.Equal(t, "en", nilLoc.Lang())
}

func TestFallbackToBaseLocale(t *testing.T) {
	fsys := fstest.MapFS{
		"locales/en.yaml": {Data: []byte("locale: en\nmessages:\n  hello: Hello\n  bye: Bye\n")},
		"locales/es.yaml": {Data: []byte("locale: es\nmessages:\n  hello: Hola\n")},
	}
	b, err := LoadFS(fsys)
	require.NoError(t, err)

	es := b.Localizer(language.Spanish)
	assert.Equal(t, "Hola", es.T("hello"))
	assert.Equal(t, "Bye", es.T("bye"))
	assert.True(t, es.Has("bye"))
	assert.False(t, es.Has("missing"))
}

func TestLoadRequiresBaseLocale(t *testing.T) {
	_, err := LoadFS(fstest.MapFS{
		"locales/es.yaml": {Data: []byte("locale: es\nmessages:\n  hello: Hola\n")},
	})
	assert.Error(t, err)
}

func TestMatch(t *testing.T) {
	b := MustLoad()
	tests := []struct {
		name  string
		prefs []string
		want  language.Tag
	}{
		{"stored preference wins", []string{"es", "en-US,en;q=0.9"}, language.Spanish},
		{"accept-language", []string{"", "es-MX,es;q=0.9,en;q=0.5"}, language.Spanish},
		{"unsupported falls back", []string{"ja"}, language.English},
		{"garbage skipped", []string{"%%%", "es"}, language.Spanish},
		{"nothing", nil, language.English},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := b.Match(tt.prefs...)
			base, _ := got.Base()
			wantBase, _ := tt.want.Base()
			assert.Equal(t, wantBase, base)
		})
	}
}

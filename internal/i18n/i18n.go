// Package i18n loads the console message catalogs and resolves the viewer's
// language. Messages use {name} placeholders; parameter values are printed
// with the locale's number formatting.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var embedded embed.FS

// BaseLocale is the catalog every other locale falls back to.
var BaseLocale = language.English

type catalogFile struct {
	Locale   string            `yaml:"locale"`
	Messages map[string]string `yaml:"messages"`
}

// Bundle holds the parsed catalogs.
type Bundle struct {
	tags     []language.Tag
	matcher  language.Matcher
	messages map[language.Tag]map[string]string
}

// Load parses the embedded catalogs.
func Load() (*Bundle, error) {
	return LoadFS(embedded)
}

// LoadFS parses every locales/*.yaml file in fsys. The base locale must be
// present.
func LoadFS(fsys fs.FS) (*Bundle, error) {
	paths, err := fs.Glob(fsys, "locales/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob catalogs: %w", err)
	}
	sort.Strings(paths)

	b := &Bundle{messages: map[language.Tag]map[string]string{}}
	for _, path := range paths {
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", path, err)
		}
		var f catalogFile
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("parse catalog %s: %w", path, err)
		}
		tag, err := language.Parse(strings.TrimSpace(f.Locale))
		if err != nil {
			return nil, fmt.Errorf("catalog %s: locale %q: %w", path, f.Locale, err)
		}
		if _, dup := b.messages[tag]; dup {
			return nil, fmt.Errorf("catalog %s: locale %s defined twice", path, tag)
		}
		b.messages[tag] = f.Messages
	}
	if _, ok := b.messages[BaseLocale]; !ok {
		return nil, fmt.Errorf("base locale %s is not defined in catalogs", BaseLocale)
	}

	// The base locale goes first so the matcher falls back to it.
	b.tags = append(b.tags, BaseLocale)
	for tag := range b.messages {
		if tag != BaseLocale {
			b.tags = append(b.tags, tag)
		}
	}
	sort.Slice(b.tags[1:], func(i, j int) bool { return b.tags[i+1].String() < b.tags[j+1].String() })
	b.matcher = language.NewMatcher(b.tags)
	return b, nil
}

// MustLoad is Load that panics on error. Catalogs are embedded, so a
// failure is a build defect.
func MustLoad() *Bundle {
	b, err := Load()
	if err != nil {
		panic(err)
	}
	return b
}

// Supported returns the available locales, base first.
func (b *Bundle) Supported() []language.Tag {
	out := make([]language.Tag, len(b.tags))
	copy(out, b.tags)
	return out
}

// Match picks the best supported locale. Each preference is either a
// single tag such as a stored language choice, or an Accept-Language
// header value. Earlier preferences win; empty ones are skipped.
func (b *Bundle) Match(prefs ...string) language.Tag {
	for _, p := range prefs {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		tags, _, err := language.ParseAcceptLanguage(p)
		if err != nil || len(tags) == 0 {
			continue
		}
		if _, idx, conf := b.matcher.Match(tags...); conf != language.No {
			return b.tags[idx]
		}
	}
	return BaseLocale
}

// Localizer returns a translator for tag.
func (b *Bundle) Localizer(tag language.Tag) *Localizer {
	_, idx, _ := b.matcher.Match(tag)
	tag = b.tags[idx]
	return &Localizer{
		tag:      tag,
		messages: b.messages[tag],
		fallback: b.messages[BaseLocale],
		printer:  message.NewPrinter(tag),
	}
}

// Params are the named values substituted into {name} placeholders.
type Params map[string]any

// Localizer translates keys for one locale.
type Localizer struct {
	tag      language.Tag
	messages map[string]string
	fallback map[string]string
	printer  *message.Printer
}

// Tag returns the locale the localizer translates to.
func (l *Localizer) Tag() language.Tag {
	if l == nil {
		return BaseLocale
	}
	return l.tag
}

// Lang returns the locale as a BCP 47 string, for the html lang attribute.
func (l *Localizer) Lang() string {
	return l.Tag().String()
}

// Has reports whether key is defined in this locale or the base locale.
func (l *Localizer) Has(key string) bool {
	if l == nil {
		return false
	}
	if _, ok := l.messages[key]; ok {
		return true
	}
	_, ok := l.fallback[key]
	return ok
}

// T returns the message for key with params substituted. A missing key
// returns the key itself. A nil localizer also returns the key.
func (l *Localizer) T(key string, params ...Params) string {
	if l == nil {
		return key
	}
	msg, ok := l.messages[key]
	if !ok {
		if msg, ok = l.fallback[key]; !ok {
			return key
		}
	}
	if len(params) == 0 || !strings.Contains(msg, "{") {
		return msg
	}
	var pairs []string
	for _, p := range params {
		for name, v := range p {
			pairs = append(pairs, "{"+name+"}", l.printer.Sprint(v))
		}
	}
	return strings.NewReplacer(pairs...).Replace(msg)
}

// Number formats n with the locale's digit grouping.
func (l *Localizer) Number(n any) string {
	if l == nil {
		return fmt.Sprint(n)
	}
	return l.printer.Sprint(n)
}

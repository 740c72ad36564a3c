// Package i18n provides translations of widget texts.
//
// Catalogs are yaml files embedded in the binary, one file per locale:
//
//	locale: es
//	direction: ltr
//	messages:
//	  contributors: "Colaboradores:"
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

// BaseLocale is the locale used when no better match exists. Its catalog must contain every key.
const BaseLocale = "en"

//go:embed locales/*.yaml
var embeddedLocales embed.FS

type localeFile struct {
	Locale    string            `yaml:"locale"`
	Direction string            `yaml:"direction"`
	Messages  map[string]string `yaml:"messages"`
}

// Catalog holds localizers for all supported locales.
type Catalog struct {
	tags       []language.Tag
	localizers []*Localizer
	matcher    language.Matcher
}

// LoadEmbedded loads catalog from locale files embedded in this package.
func LoadEmbedded() (*Catalog, error) {
	return LoadFromFS(embeddedLocales)
}

// LoadFromFS loads catalog from locales/*.yaml files of given filesystem.
func LoadFromFS(fsys fs.FS) (*Catalog, error) {
	paths, err := fs.Glob(fsys, "locales/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob locale files: %w", err)
	}
	sort.Strings(paths)

	files := make(map[string]localeFile, len(paths))
	for _, path := range paths {
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		var f localeFile
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		f.Locale = strings.TrimSpace(f.Locale)
		if f.Locale == "" {
			return nil, fmt.Errorf("%s: locale is required", path)
		}
		if _, exists := files[f.Locale]; exists {
			return nil, fmt.Errorf("%s: locale %q defined twice", path, f.Locale)
		}
		switch f.Direction {
		case "":
			f.Direction = "ltr"
		case "ltr", "rtl":
		default:
			return nil, fmt.Errorf("%s: invalid direction %q", path, f.Direction)
		}
		files[f.Locale] = f
	}

	base, ok := files[BaseLocale]
	if !ok {
		return nil, fmt.Errorf("base locale %s is not defined", BaseLocale)
	}

	// Base locale goes first, it's the matcher's default.
	locales := []string{BaseLocale}
	for locale := range files {
		if locale != BaseLocale {
			locales = append(locales, locale)
		}
	}
	sort.Strings(locales[1:])

	c := Catalog{}
	for _, locale := range locales {
		tag, err := language.Parse(locale)
		if err != nil {
			return nil, fmt.Errorf("parsing locale tag %q: %w", locale, err)
		}
		f := files[locale]
		c.tags = append(c.tags, tag)
		c.localizers = append(c.localizers, &Localizer{
			tag:       tag,
			direction: f.Direction,
			messages:  f.Messages,
			fallback:  base.Messages,
			printer:   message.NewPrinter(tag),
		})
	}
	c.matcher = language.NewMatcher(c.tags)

	return &c, nil
}

// Locales returns supported locales, base locale first.
func (c *Catalog) Locales() []string {
	out := make([]string, 0, len(c.tags))
	for _, tag := range c.tags {
		out = append(out, tag.String())
	}
	return out
}

// Localizer returns localizer best matching given preferences.
// Every preference is a language tag or Accept-Language header value, the first ones are most important.
// Invalid and empty preferences are skipped; without any valid preference base locale is used.
func (c *Catalog) Localizer(preferred ...string) *Localizer {
	var tags []language.Tag
	for _, p := range preferred {
		if strings.TrimSpace(p) == "" {
			continue
		}
		parsed, _, err := language.ParseAcceptLanguage(p)
		if err != nil {
			continue
		}
		tags = append(tags, parsed...)
	}

	_, idx, _ := c.matcher.Match(tags...)
	return c.localizers[idx]
}

// Localizer translates texts to single language.
type Localizer struct {
	tag       language.Tag
	direction string
	messages  map[string]string
	fallback  map[string]string
	printer   *message.Printer
}

// Lang returns BCP 47 tag of localizer's language.
func (l *Localizer) Lang() string {
	return l.tag.String()
}

// Direction returns text direction, "ltr" or "rtl".
func (l *Localizer) Direction() string {
	return l.direction
}

// T returns translated message for given key formatted with args.
// Missing keys fall back to base locale, then to the key itself.
func (l *Localizer) T(key string, args ...interface{}) string {
	msg, ok := l.messages[key]
	if !ok {
		msg, ok = l.fallback[key]
	}
	if !ok {
		return key
	}
	if len(args) == 0 {
		return msg
	}

	return l.printer.Sprintf(msg, args...)
}

// Number formats integer using language's conventions.
func (l *Localizer) Number(n int) string {
	return l.printer.Sprintf("%d", n)
}

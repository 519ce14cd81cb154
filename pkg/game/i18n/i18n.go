// Package i18n holds the user-facing strings of the CLI and viewer.
package i18n

import (
	"embed"
	"errors"
	"fmt"
	"strings"

	"github.com/leonelquinteros/gotext"
)

//go:embed locales/*.po
var locales embed.FS

// DefaultLanguage is used when no language is requested.
const DefaultLanguage = "en"

// ErrUnknownLanguage is returned for a language without a catalogue.
var ErrUnknownLanguage = errors.New("unknown language")

// Catalog translates message ids for one language.
type Catalog struct {
	lang string
	po   *gotext.Po
}

// Load returns the catalogue for lang, e.g. "ja" or "ja_JP.UTF-8". An
// empty lang selects DefaultLanguage.
func Load(lang string) (*Catalog, error) {
	base := normalize(lang)
	data, err := locales.ReadFile("locales/" + base + ".po")
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLanguage, lang)
	}
	po := gotext.NewPo()
	po.Parse(data)
	return &Catalog{lang: base, po: po}, nil
}

// MustLoad is Load for the built-in languages.
func MustLoad(lang string) *Catalog {
	c, err := Load(lang)
	if err != nil {
		panic(err)
	}
	return c
}

// Languages lists the available catalogues.
func Languages() []string {
	entries, err := locales.ReadDir("locales")
	if err != nil {
		return nil
	}
	var out []string
	for _, e := range entries {
		out = append(out, strings.TrimSuffix(e.Name(), ".po"))
	}
	return out
}

func normalize(lang string) string {
	if lang == "" {
		return DefaultLanguage
	}
	lang = strings.ToLower(lang)
	if i := strings.IndexAny(lang, "_-."); i > 0 {
		lang = lang[:i]
	}
	return lang
}

// Lang returns the catalogue's language code.
func (c *Catalog) Lang() string {
	return c.lang
}

// T translates msgid and formats it with vars. Untranslated ids are
// formatted as they are.
func (c *Catalog) T(msgid string, vars ...any) string {
	return c.po.Get(msgid, vars...)
}

// Package i18n holds the message catalogue for USSD prompts and SMS texts.
//
// Messages are addressed by Key. Each locale is a fixed-size array indexed by
// Key, so a key can never be looked up in a table that does not know about it.
// Entries a locale leaves empty fall back to English; a key missing from
// English as well renders as its own name.
package i18n

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Lang is a supported locale.
type Lang string

const (
	English Lang = "en"
	Luganda Lang = "lg"
	Swahili Lang = "sw"
)

// Default is used when a session has no language set.
const Default = English

// Supported lists the locales in menu order.
var Supported = []Lang{English, Luganda, Swahili}

var catalogues = map[Lang]*[keyCount]string{
	English: &english,
	Luganda: &luganda,
	Swahili: &swahili,
}

var matcher = language.NewMatcher([]language.Tag{
	language.English,
	language.MustParse("lg"),
	language.Swahili,
})

// Parse maps a BCP 47 tag or Accept-Language style list to a supported locale.
// Unknown or empty input yields Default.
func Parse(s string) Lang {
	s = strings.TrimSpace(s)
	if s == "" {
		return Default
	}
	tags, _, err := language.ParseAcceptLanguage(s)
	if err != nil || len(tags) == 0 {
		return Default
	}
	_, idx, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return Default
	}
	return Supported[idx]
}

// Name is the display name of a locale in its own language.
func (l Lang) Name() string {
	switch l {
	case Luganda:
		return "Luganda"
	case Swahili:
		return "Kiswahili"
	default:
		return "English"
	}
}

// Lookup returns the raw template for key in lang, applying the fallback policy.
func Lookup(lang Lang, key Key) string {
	if key < 0 || key >= keyCount {
		return fmt.Sprintf("Key(%d)", int(key))
	}
	if cat, ok := catalogues[lang]; ok && cat[key] != "" {
		return cat[key]
	}
	if english[key] != "" {
		return english[key]
	}
	return key.String()
}

// T renders key in lang, formatting args into the template when present.
func T(lang Lang, key Key, args ...any) string {
	tmpl := Lookup(lang, key)
	if len(args) == 0 {
		return tmpl
	}
	return fmt.Sprintf(tmpl, args...)
}

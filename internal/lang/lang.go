// Package lang resolves localization keys to display text.
package lang

import (
	_ "embed"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed defaults/strings.yaml
var defaultStringsYAML []byte

// supported lists the languages with a table in strings.yaml; the first is the fallback.
var supported = []language.Tag{
	language.English,
	language.Italian,
}

// Localizer maps string keys to text in one language. Missing keys fall back
// to English, then to the key itself.
type Localizer struct {
	tag      language.Tag
	strings  map[string]string
	fallback map[string]string
	upper    cases.Caser
}

// New returns a localizer for the best supported match of preferred, which
// may be a BCP 47 tag ("it-IT") or an Accept-Language style list.
func New(preferred string) (*Localizer, error) {
	var tables map[string]map[string]string
	if err := yaml.Unmarshal(defaultStringsYAML, &tables); err != nil {
		return nil, fmt.Errorf("lang: failed to parse strings: %w", err)
	}
	return NewWithTables(preferred, tables), nil
}

// NewWithTables builds a localizer from explicit tables keyed by language.
func NewWithTables(preferred string, tables map[string]map[string]string) *Localizer {
	tag := Match(preferred)
	base, _ := tag.Base()

	return &Localizer{
		tag:      tag,
		strings:  tables[base.String()],
		fallback: tables[language.English.String()],
		upper:    cases.Upper(tag),
	}
}

// Match picks the supported language closest to preferred.
func Match(preferred string) language.Tag {
	desired, _, err := language.ParseAcceptLanguage(preferred)
	if err != nil || len(desired) == 0 {
		return supported[0]
	}
	matcher := language.NewMatcher(supported)
	_, index, _ := matcher.Match(desired...)
	return supported[index]
}

// Tag returns the language in use.
func (l *Localizer) Tag() language.Tag {
	return l.tag
}

// Get returns the text for key.
func (l *Localizer) Get(key string) string {
	if text, ok := l.strings[key]; ok {
		return text
	}
	if text, ok := l.fallback[key]; ok {
		return text
	}
	return key
}

// Format returns the text for key with each %s placeholder replaced, in
// order, by the matching argument.
func (l *Localizer) Format(key string, args ...string) string {
	text := l.Get(key)
	for _, arg := range args {
		text = strings.Replace(text, "%s", arg, 1)
	}
	return text
}

// Upper upper-cases text with the rules of the localizer's language.
func (l *Localizer) Upper(text string) string {
	return l.upper.String(text)
}

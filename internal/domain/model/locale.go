package model

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// ErrUnknownLocale is returned when a locale is outside the supported set.
var ErrUnknownLocale = errors.New("unknown locale")

// Locale selects the content language and the text direction.
type Locale string

const (
	LocaleEnglish Locale = "en"
	LocaleHindi   Locale = "hi"
	LocaleArabic  Locale = "ar"
	LocaleUrdu    Locale = "ur"
)

// Direction is the text direction a locale is rendered in.
type Direction string

const (
	DirectionLTR Direction = "ltr"
	DirectionRTL Direction = "rtl"
)

// Locales lists the supported locales in display order.
var Locales = []Locale{LocaleEnglish, LocaleHindi, LocaleArabic, LocaleUrdu}

var (
	localeTags    = []language.Tag{language.English, language.Hindi, language.Arabic, language.Urdu}
	localeMatcher = language.NewMatcher(localeTags)
)

var languageNames = map[Locale]string{
	LocaleEnglish: "English",
	LocaleHindi:   "Hindi",
	LocaleArabic:  "Arabic",
	LocaleUrdu:    "Urdu",
}

var nativeNames = map[Locale]string{
	LocaleEnglish: "English",
	LocaleHindi:   "हिन्दी",
	LocaleArabic:  "العربية",
	LocaleUrdu:    "اردو",
}

// Valid reports whether l is one of the supported locales.
func (l Locale) Valid() bool {
	_, ok := languageNames[l]
	return ok
}

// LanguageName returns the English name of the locale's language.
func (l Locale) LanguageName() string {
	return languageNames[l]
}

// NativeName returns the language's name written in that language.
func (l Locale) NativeName() string {
	return nativeNames[l]
}

// Direction returns rtl for Arabic and Urdu, ltr otherwise.
func (l Locale) Direction() Direction {
	switch l {
	case LocaleArabic, LocaleUrdu:
		return DirectionRTL
	default:
		return DirectionLTR
	}
}

// ParseLocale accepts a locale code ("ar"), a BCP 47 tag ("ar-EG") or an
// Accept-Language header value and maps it onto a supported locale.
func ParseLocale(raw string) (Locale, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("%w: empty value", ErrUnknownLocale)
	}

	if l := Locale(strings.ToLower(raw)); l.Valid() {
		return l, nil
	}

	tags, _, err := language.ParseAcceptLanguage(raw)
	if err != nil || len(tags) == 0 {
		return "", fmt.Errorf("%w: %q", ErrUnknownLocale, raw)
	}

	_, idx, confidence := localeMatcher.Match(tags...)
	if confidence == language.No {
		return "", fmt.Errorf("%w: %q", ErrUnknownLocale, raw)
	}
	return Locales[idx], nil
}

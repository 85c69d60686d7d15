package models

import (
	"strings"

	"golang.org/x/text/language"
)

// Language is a supported UI and catalog language.
type Language string

const (
	LanguageKorean  Language = "ko-KR"
	LanguageEnglish Language = "en-US"
)

// Region is a supported watch region.
type Region string

const (
	RegionKR Region = "KR"
	RegionUS Region = "US"
)

// Entry screens a client lands on at startup.
const (
	EntryScreenSettings = "settings"
	EntryScreenMood     = "mood"
)

// The first supported tag is the matcher's fallback.
var languageMatcher = language.NewMatcher([]language.Tag{
	language.MustParse(string(LanguageKorean)),
	language.MustParse(string(LanguageEnglish)),
})

// ParseLanguage maps a BCP 47 tag onto a supported language by its base
// language, so "en", "en-GB" and "en-US" all become en-US.
func ParseLanguage(s string) (Language, bool) {
	tag, err := language.Parse(strings.TrimSpace(s))
	if err != nil {
		return "", false
	}
	base, _ := tag.Base()
	switch base.String() {
	case "ko":
		return LanguageKorean, true
	case "en":
		return LanguageEnglish, true
	}
	return "", false
}

// ParseRegion validates a watch region code.
func ParseRegion(s string) (Region, bool) {
	switch r := Region(strings.ToUpper(strings.TrimSpace(s))); r {
	case RegionKR, RegionUS:
		return r, true
	}
	return "", false
}

// IsEnglish reports whether l is the English UI language.
func (l Language) IsEnglish() bool {
	return l == LanguageEnglish
}

// DefaultRegion is the region paired with a language when none is known.
func (l Language) DefaultRegion() Region {
	if l == LanguageEnglish {
		return RegionUS
	}
	return RegionKR
}

// DefaultLanguage is the language a region switches to when picked in settings.
func (r Region) DefaultLanguage() Language {
	if r == RegionUS {
		return LanguageEnglish
	}
	return LanguageKorean
}

// Preferences are the persisted user settings.
type Preferences struct {
	Language           Language `json:"language"`
	Region             Region   `json:"region"`
	OnboardingComplete bool     `json:"onboarding_complete"`
}

// EntryScreen is "settings" until onboarding completes, then "mood".
func (p Preferences) EntryScreen() string {
	if p.OnboardingComplete {
		return EntryScreenMood
	}
	return EntryScreenSettings
}

// PreferencesPatch carries the fields a save should change.
type PreferencesPatch struct {
	Language           *string `json:"language,omitempty"`
	Region             *string `json:"region,omitempty"`
	OnboardingComplete *bool   `json:"onboarding_complete,omitempty"`
}

// PreferencesResponse is the preferences payload returned to clients.
type PreferencesResponse struct {
	Preferences
	EntryScreen string `json:"entry_screen"`
}

// DefaultPreferences is the baseline used when no device locale is available.
func DefaultPreferences() Preferences {
	return Preferences{Language: LanguageKorean, Region: RegionKR}
}

// PreferencesFromLocale derives first-run preferences from an
// Accept-Language style locale list. The language is matched against the
// supported set; the region comes from the top locale when supported,
// otherwise from the matched language.
func PreferencesFromLocale(acceptLanguage string) Preferences {
	if strings.TrimSpace(acceptLanguage) == "" {
		return DefaultPreferences()
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return DefaultPreferences()
	}

	matched, _, _ := languageMatcher.Match(tags...)
	lang := LanguageKorean
	if base, _ := matched.Base(); base.String() == "en" {
		lang = LanguageEnglish
	}

	prefs := Preferences{Language: lang, Region: lang.DefaultRegion()}
	if r, conf := tags[0].Region(); conf != language.No {
		if region, ok := ParseRegion(r.String()); ok {
			prefs.Region = region
		}
	}
	return prefs
}

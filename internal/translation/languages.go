package translation

import (
	"sort"
	"strings"

	"mova.dev/relay/internal/language"
)

type LanguageOption struct {
	Code   string `json:"code"`
	Label  string `json:"label"`
	Native string `json:"native,omitempty"`
}

type languageLabel struct {
	english string
	native  string
}

var translationLanguageLabels = map[string]languageLabel{
	"cs": {english: "Czech", native: "čeština"},
	"de": {english: "German", native: "Deutsch"},
	"en": {english: "English", native: "English"},
	"es": {english: "Spanish", native: "español"},
	"fr": {english: "French", native: "français"},
	"it": {english: "Italian", native: "italiano"},
	"ja": {english: "Japanese", native: "日本語"},
	"ko": {english: "Korean", native: "한국어"},
	"nl": {english: "Dutch", native: "Nederlands"},
	"pl": {english: "Polish", native: "polski"},
	"pt": {english: "Portuguese", native: "português"},
	"ro": {english: "Romanian", native: "română"},
	"sk": {english: "Slovak", native: "slovenčina"},
	"tr": {english: "Turkish", native: "Türkçe"},
	"uk": {english: "Ukrainian", native: "українська"},
	"zh": {english: "Chinese", native: "中文"},
}

func SupportedLanguageCodes() []string {
	codes := make([]string, 0, len(translationLanguageLabels))
	for code := range translationLanguageLabels {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// LanguageOptions lists the supported language catalog for UI pickers.
func LanguageOptions() []LanguageOption {
	codes := SupportedLanguageCodes()
	options := make([]LanguageOption, 0, len(codes))
	for _, code := range codes {
		normalized := language.NormalizeCode(code)
		if normalized == "" {
			continue
		}
		labels, hasLabels := translationLanguageLabels[normalized]
		if hasLabels {
			options = append(options, LanguageOption{
				Code:   normalized,
				Label:  labels.english,
				Native: labels.native,
			})
			continue
		}
		options = append(options, LanguageOption{
			Code:  normalized,
			Label: strings.ToUpper(normalized),
		})
	}
	return options
}

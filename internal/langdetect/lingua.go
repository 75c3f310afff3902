package langdetect

import (
	"strings"
	"sync"
	"unicode"

	lingua "github.com/pemistahl/lingua-go"
)

var (
	detectorOnce sync.Once
	detector     lingua.LanguageDetector
)

// DetectISO6391 guesses the ISO 639-1 code of a text sample, or returns ""
// when the sample is too short for a confident guess.
func DetectISO6391(text string) string {
	sample := strings.TrimSpace(text)
	if sample == "" {
		return ""
	}

	letterCount := 0
	for _, r := range sample {
		if unicode.IsLetter(r) {
			letterCount++
		}
	}
	if letterCount < 6 {
		return ""
	}

	language, exists := getDetector().DetectLanguageOf(sample)
	if !exists {
		return ""
	}

	code := strings.ToLower(language.IsoCode639_1().String())
	if len(code) != 2 {
		return ""
	}
	return code
}

func getDetector() lingua.LanguageDetector {
	detectorOnce.Do(func() {
		// Restricting the model set keeps startup memory reasonable; the
		// catalog matches the languages the providers are asked for.
		detector = lingua.NewLanguageDetectorBuilder().
			FromLanguages(
				lingua.Czech,
				lingua.Dutch,
				lingua.English,
				lingua.French,
				lingua.German,
				lingua.Italian,
				lingua.Japanese,
				lingua.Korean,
				lingua.Polish,
				lingua.Portuguese,
				lingua.Romanian,
				lingua.Slovak,
				lingua.Spanish,
				lingua.Turkish,
				lingua.Ukrainian,
				lingua.Chinese,
			).
			WithPreloadedLanguageModels().
			Build()
	})
	return detector
}

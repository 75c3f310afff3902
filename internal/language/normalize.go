package language

import "strings"

// NormalizeCode reduces a language tag to its lowercase primary subtag
// ("en" from "en-US" or "en_us"). Returns an empty string for blank or
// malformed values.
func NormalizeCode(raw string) string {
	trimmed := strings.ToLower(strings.TrimSpace(raw))
	if trimmed == "" {
		return ""
	}

	trimmed = strings.ReplaceAll(trimmed, "_", "-")
	primary, _, _ := strings.Cut(trimmed, "-")
	primary = strings.TrimSpace(primary)
	if primary == "" || !isAlphaLower(primary) {
		return ""
	}
	return primary
}

// NormalizePair normalizes both sides of a language pair at once. Either
// side may come back empty when malformed.
func NormalizePair(source, target string) (string, string) {
	return NormalizeCode(source), NormalizeCode(target)
}

func isAlphaLower(value string) bool {
	for _, r := range value {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

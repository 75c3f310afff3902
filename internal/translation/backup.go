package translation

import (
	"regexp"
	"strings"
)

const (
	// BackupProviderName identifies fallback results to callers.
	BackupProviderName = "BackupDictionary"
	// BackupPrefix marks fallback output so the UI can tell it apart from a
	// real provider translation.
	BackupPrefix = "[Backup translation] "
)

// backupWords maps common English words to Ukrainian equivalents, applied in
// declaration order. Multi-word phrases come first so single-word entries
// never fire inside them. New entries must not overlap an existing key at
// the same position.
var backupWords = []struct {
	Word        string
	Replacement string
}{
	{"thank you", "дякую"},
	{"good morning", "доброго ранку"},
	{"good night", "надобраніч"},
	{"hello", "привіт"},
	{"hi", "привіт"},
	{"world", "світ"},
	{"good", "добре"},
	{"bad", "погано"},
	{"morning", "ранок"},
	{"evening", "вечір"},
	{"night", "ніч"},
	{"day", "день"},
	{"yes", "так"},
	{"no", "ні"},
	{"please", "будь ласка"},
	{"thanks", "дякую"},
	{"sorry", "вибачте"},
	{"welcome", "ласкаво просимо"},
	{"friend", "друг"},
	{"love", "любов"},
	{"peace", "мир"},
	{"water", "вода"},
	{"food", "їжа"},
	{"house", "будинок"},
	{"home", "дім"},
	{"cat", "кіт"},
	{"dog", "пес"},
	{"time", "час"},
	{"work", "робота"},
	{"big", "великий"},
	{"small", "малий"},
	{"new", "новий"},
	{"old", "старий"},
	{"test", "тест"},
	{"and", "і"},
	{"or", "або"},
	{"not", "не"},
	{"is", "є"},
}

type backupEntry struct {
	replacement string
	pattern     *regexp.Regexp
}

// BackupDictionary is the deterministic word-substitution fallback used when
// every remote provider fails. It is stateless and cannot itself fail.
type BackupDictionary struct {
	entries []backupEntry
}

func NewBackupDictionary() *BackupDictionary {
	entries := make([]backupEntry, 0, len(backupWords))
	for _, pair := range backupWords {
		entries = append(entries, backupEntry{
			replacement: pair.Replacement,
			pattern:     regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(strings.ToLower(pair.Word)) + `\b`),
		})
	}
	return &BackupDictionary{entries: entries}
}

// Translate replaces every case-insensitive whole-word match of each
// dictionary key, leaving punctuation and unmatched text verbatim, and
// prefixes the result with BackupPrefix.
func (d *BackupDictionary) Translate(text string) *Result {
	out := text
	for _, entry := range d.entries {
		out = entry.pattern.ReplaceAllString(out, entry.replacement)
	}
	return &Result{
		Succeeded: true,
		Text:      BackupPrefix + out,
		Provider:  BackupProviderName,
	}
}

// Size returns the number of dictionary entries.
func (d *BackupDictionary) Size() int {
	if d == nil {
		return 0
	}
	return len(d.entries)
}

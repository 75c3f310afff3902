package translation

import (
	"strings"
	"testing"
)

func TestBackupDictionary_WholeWordOnly(t *testing.T) {
	t.Parallel()

	dict := NewBackupDictionary()
	result := dict.Translate("this is a test")
	if !result.Succeeded || result.Provider != BackupProviderName {
		t.Fatalf("unexpected result: %+v", result)
	}

	body := strings.TrimPrefix(result.Text, BackupPrefix)
	if !strings.HasPrefix(result.Text, BackupPrefix) {
		t.Fatalf("missing prefix: %q", result.Text)
	}
	// "is" inside "this" must survive; the standalone "is" must not.
	if !strings.Contains(body, "this") {
		t.Fatalf("substring match altered 'this': %q", body)
	}
	if !strings.Contains(body, "є") {
		t.Fatalf("standalone 'is' was not replaced: %q", body)
	}
	if body != "this є a тест" {
		t.Fatalf("unexpected substitution: %q", body)
	}
}

func TestBackupDictionary_CaseInsensitive(t *testing.T) {
	t.Parallel()

	dict := NewBackupDictionary()
	result := dict.Translate("Hello WORLD")
	if !strings.Contains(result.Text, "привіт світ") {
		t.Fatalf("expected case-insensitive substitution, got %q", result.Text)
	}
}

func TestBackupDictionary_PhrasesBeforeWords(t *testing.T) {
	t.Parallel()

	dict := NewBackupDictionary()
	result := dict.Translate("good morning friend")
	body := strings.TrimPrefix(result.Text, BackupPrefix)
	if body != "доброго ранку друг" {
		t.Fatalf("unexpected substitution: %q", body)
	}
}

func TestBackupDictionary_IdempotentOnForeignText(t *testing.T) {
	t.Parallel()

	dict := NewBackupDictionary()
	input := "привіт, світе! як справи?"
	result := dict.Translate(input)
	if result.Text != BackupPrefix+input {
		t.Fatalf("expected input preserved verbatim, got %q", result.Text)
	}
}

func TestBackupDictionary_PreservesPunctuation(t *testing.T) {
	t.Parallel()

	dict := NewBackupDictionary()
	result := dict.Translate("hello, world!")
	body := strings.TrimPrefix(result.Text, BackupPrefix)
	if body != "привіт, світ!" {
		t.Fatalf("unexpected substitution: %q", body)
	}
}

func TestBackupDictionary_Size(t *testing.T) {
	t.Parallel()

	dict := NewBackupDictionary()
	if dict.Size() != len(backupWords) {
		t.Fatalf("unexpected dictionary size: %d", dict.Size())
	}
}

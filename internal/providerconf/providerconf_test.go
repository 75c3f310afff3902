package providerconf

import (
	"strings"
	"testing"
)

func TestParse_ValidDocument(t *testing.T) {
	t.Parallel()

	const doc = `{
  "providers": [
    {"name": "mymemory", "priority": 2},
    {"name": "google-web", "enabled": false, "endpoint": "https://example.com/translate"}
  ]
}`

	file, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(file.Providers) != 2 {
		t.Fatalf("expected two overrides, got %d", len(file.Providers))
	}

	byName := file.ByName()
	mymemory, ok := byName["mymemory"]
	if !ok || mymemory.Priority == nil || *mymemory.Priority != 2 {
		t.Fatalf("unexpected mymemory override: %+v", mymemory)
	}
	if mymemory.Enabled != nil {
		t.Fatalf("unset enabled flag must stay nil")
	}

	google, ok := byName["google-web"]
	if !ok || google.Enabled == nil || *google.Enabled {
		t.Fatalf("unexpected google-web override: %+v", google)
	}
	if google.Endpoint != "https://example.com/translate" {
		t.Fatalf("unexpected endpoint: %q", google.Endpoint)
	}
}

func TestParse_UnknownProviderRejected(t *testing.T) {
	t.Parallel()

	const doc = `{"providers": [{"name": "deepl"}]}`
	if _, err := Parse([]byte(doc)); err == nil {
		t.Fatalf("expected schema rejection for unknown provider name")
	}
}

func TestParse_DuplicateProviderRejected(t *testing.T) {
	t.Parallel()

	const doc = `{"providers": [{"name": "mymemory"}, {"name": "mymemory"}]}`
	_, err := Parse([]byte(doc))
	if err == nil || !strings.Contains(err.Error(), "duplicate provider") {
		t.Fatalf("expected duplicate rejection, got %v", err)
	}
}

func TestParse_NegativePriorityRejected(t *testing.T) {
	t.Parallel()

	const doc = `{"providers": [{"name": "mymemory", "priority": -1}]}`
	if _, err := Parse([]byte(doc)); err == nil {
		t.Fatalf("expected schema rejection for negative priority")
	}
}

func TestParse_TrailingContentRejected(t *testing.T) {
	t.Parallel()

	const doc = `{"providers": [{"name": "mymemory"}]} garbage`
	if _, err := Parse([]byte(doc)); err == nil {
		t.Fatalf("expected rejection of trailing content")
	}
}

func TestParse_EmptyDocumentRejected(t *testing.T) {
	t.Parallel()

	if _, err := Parse([]byte("   ")); err == nil {
		t.Fatalf("expected rejection of empty document")
	}
}

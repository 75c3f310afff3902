package translation

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestMyMemoryProvider_Success(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("unexpected method: %s", r.Method)
		}
		if got := r.URL.Query().Get("q"); got != "hello" {
			t.Errorf("unexpected q: %q", got)
		}
		if got := r.URL.Query().Get("langpair"); got != "en|uk" {
			t.Errorf("unexpected langpair: %q", got)
		}
		_, _ = w.Write([]byte(`{"responseStatus":200,"responseData":{"translatedText":"привіт"}}`))
	}))
	defer server.Close()

	provider := NewMyMemoryProvider(server.URL, time.Second)
	result, err := provider.Translate(context.Background(), Request{Text: "hello", SourceLang: "en", TargetLang: "uk"})
	if err != nil {
		t.Fatalf("translate: %v", err)
	}
	if !result.Succeeded || result.Text != "привіт" || result.Provider != "mymemory" {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestMyMemoryProvider_EnvelopeStatusRejected(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"responseStatus":"403","responseData":{"translatedText":"ignored"}}`))
	}))
	defer server.Close()

	provider := NewMyMemoryProvider(server.URL, time.Second)
	if _, err := provider.Translate(context.Background(), Request{Text: "hello", SourceLang: "en", TargetLang: "uk"}); err == nil {
		t.Fatalf("expected error for non-200 envelope status")
	}
}

func TestMyMemoryProvider_RateLimit(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	provider := NewMyMemoryProvider(server.URL, time.Second)
	_, err := provider.Translate(context.Background(), Request{Text: "hello", SourceLang: "en", TargetLang: "uk"})
	if err == nil {
		t.Fatalf("expected rate-limit error")
	}
	if !IsRateLimit(err) {
		t.Fatalf("expected IsRateLimit to recognize the error: %v", err)
	}
	if !strings.Contains(err.Error(), "429") {
		t.Fatalf("expected the literal 429 marker, got %q", err.Error())
	}

	var providerErr *ProviderError
	if !errors.As(err, &providerErr) || providerErr.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("expected typed provider error with status 429, got %v", err)
	}
}

func TestLibreTranslateProvider_Success(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method: %s", r.Method)
		}
		var payload map[string]any
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode request body: %v", err)
		}
		if payload["q"] != "hello" || payload["source"] != "en" || payload["target"] != "uk" || payload["format"] != "text" {
			t.Errorf("unexpected request body: %v", payload)
		}
		_, _ = w.Write([]byte(`{"translatedText":"привіт"}`))
	}))
	defer server.Close()

	provider := NewLibreTranslateProvider(server.URL, "", time.Second)
	result, err := provider.Translate(context.Background(), Request{Text: "hello", SourceLang: "en", TargetLang: "uk"})
	if err != nil {
		t.Fatalf("translate: %v", err)
	}
	if result.Text != "привіт" || result.Provider != "libretranslate" {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestLibreTranslateProvider_MissingField(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"detail":"something else"}`))
	}))
	defer server.Close()

	provider := NewLibreTranslateProvider(server.URL, "", time.Second)
	_, err := provider.Translate(context.Background(), Request{Text: "hello", SourceLang: "en", TargetLang: "uk"})
	if err == nil || !strings.Contains(err.Error(), "no translation received") {
		t.Fatalf("expected missing-field error, got %v", err)
	}
}

func TestTranslatedProvider_SuccessWithoutEnvelopeStatus(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("langpair"); got != "en|uk" {
			t.Errorf("unexpected langpair: %q", got)
		}
		// The mirror responds without a responseStatus field.
		_, _ = w.Write([]byte(`{"responseData":{"translatedText":"світ"}}`))
	}))
	defer server.Close()

	provider := NewTranslatedProvider(server.URL, time.Second)
	result, err := provider.Translate(context.Background(), Request{Text: "world", SourceLang: "en", TargetLang: "uk"})
	if err != nil {
		t.Fatalf("translate: %v", err)
	}
	if result.Text != "світ" || result.Provider != "translated" {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestGoogleWebProvider_Success(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		if query.Get("client") != "gtx" || query.Get("sl") != "en" || query.Get("tl") != "uk" || query.Get("dt") != "t" {
			t.Errorf("unexpected query: %v", query)
		}
		if query.Get("q") != "hello" {
			t.Errorf("unexpected q: %q", query.Get("q"))
		}
		_, _ = w.Write([]byte(`[[["привіт","hello",null,null,10]],null,"en"]`))
	}))
	defer server.Close()

	provider := NewGoogleWebProvider(server.URL, time.Second)
	result, err := provider.Translate(context.Background(), Request{Text: "hello", SourceLang: "en", TargetLang: "uk"})
	if err != nil {
		t.Fatalf("translate: %v", err)
	}
	if result.Text != "привіт" || result.Provider != "google-web" {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestGoogleWebProvider_MalformedPayload(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[null,null,"en"]`))
	}))
	defer server.Close()

	provider := NewGoogleWebProvider(server.URL, time.Second)
	_, err := provider.Translate(context.Background(), Request{Text: "hello", SourceLang: "en", TargetLang: "uk"})
	if err == nil || !strings.Contains(err.Error(), "no translation received") {
		t.Fatalf("expected missing-field error, got %v", err)
	}
}

func TestStatusError_NonSuccessStatus(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	provider := NewTranslatedProvider(server.URL, time.Second)
	_, err := provider.Translate(context.Background(), Request{Text: "hello", SourceLang: "en", TargetLang: "uk"})
	if err == nil || !strings.Contains(err.Error(), "503") {
		t.Fatalf("expected status error naming 503, got %v", err)
	}
	if IsRateLimit(err) {
		t.Fatalf("503 must not be classified as rate limit: %v", err)
	}
}

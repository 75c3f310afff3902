package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"mova.dev/relay/internal/auth"
	"mova.dev/relay/internal/translation"
)

type stubProvider struct {
	name string
	text string
	err  error
}

func (p *stubProvider) Name() string { return p.name }

func (p *stubProvider) Translate(_ context.Context, _ translation.Request) (*translation.Result, error) {
	if p.err != nil {
		return nil, p.err
	}
	return &translation.Result{Succeeded: true, Text: p.text, Provider: p.name}, nil
}

func newTestServer(t *testing.T, providers ...*stubProvider) *Server {
	t.Helper()

	registry := translation.NewRegistry()
	for i, p := range providers {
		if err := registry.Register(p, i, true); err != nil {
			t.Fatalf("register %s: %v", p.name, err)
		}
	}

	svc := translation.NewService(translation.Options{
		Registry: registry,
		Logger:   zerolog.New(io.Discard),
	})
	return NewServer(svc, nil, zerolog.New(io.Discard), Options{})
}

func invoke(t *testing.T, handler echo.HandlerFunc, method, target, body string, header http.Header) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for key, values := range header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}

	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)
	if err := handler(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) jsendResponse {
	t.Helper()

	var envelope jsendResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return envelope
}

func TestHandleTranslate_Success(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, &stubProvider{name: "mymemory", text: "привіт"})
	rec := invoke(t, server.handleTranslate, http.MethodPost, "/api/v1/translate",
		`{"text":"hello","source_lang":"en","target_lang":"uk"}`, nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	envelope := decodeEnvelope(t, rec)
	if envelope.Status != "success" {
		t.Fatalf("unexpected status %q", envelope.Status)
	}

	payload, err := json.Marshal(envelope.Data)
	if err != nil {
		t.Fatalf("re-marshal data: %v", err)
	}
	var result translation.Result
	if err := json.Unmarshal(payload, &result); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if !result.Succeeded || result.Text != "привіт" || result.Provider != "mymemory" {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestHandleTranslate_MissingTextRejected(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, &stubProvider{name: "mymemory", text: "привіт"})
	rec := invoke(t, server.handleTranslate, http.MethodPost, "/api/v1/translate",
		`{"text":"   "}`, nil)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if envelope := decodeEnvelope(t, rec); envelope.Status != "fail" {
		t.Fatalf("unexpected status %q", envelope.Status)
	}
}

func TestHandleTranslate_AllProvidersDownFallsBack(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, &stubProvider{name: "mymemory", err: fmt.Errorf("mymemory: status 503: unexpected status")})
	rec := invoke(t, server.handleTranslate, http.MethodPost, "/api/v1/translate",
		`{"text":"hello world"}`, nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	envelope := decodeEnvelope(t, rec)
	payload, _ := json.Marshal(envelope.Data)
	var result translation.Result
	if err := json.Unmarshal(payload, &result); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if result.Provider != translation.BackupProviderName {
		t.Fatalf("expected dictionary fallback, got provider %q", result.Provider)
	}
	if !strings.Contains(result.Text, "привіт") {
		t.Fatalf("expected dictionary output, got %q", result.Text)
	}
}

func TestHandleTranslateURL_UsesExtractedText(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, &stubProvider{name: "mymemory", text: "привіт світ"})

	var fetchedURL string
	server.fetchText = func(_ context.Context, pageURL string) (string, error) {
		fetchedURL = pageURL
		return "hello world", nil
	}

	rec := invoke(t, server.handleTranslateURL, http.MethodPost, "/api/v1/translate-url",
		`{"url":"https://example.com/post"}`, nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if fetchedURL != "https://example.com/post" {
		t.Fatalf("unexpected fetched URL %q", fetchedURL)
	}

	envelope := decodeEnvelope(t, rec)
	data, ok := envelope.Data.(map[string]any)
	if !ok {
		t.Fatalf("unexpected data shape: %T", envelope.Data)
	}
	if data["extracted"] != "hello world" {
		t.Fatalf("unexpected extracted text: %v", data["extracted"])
	}
}

func TestHandleTranslateURL_FetchFailure(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, &stubProvider{name: "mymemory", text: "привіт"})
	server.fetchText = func(_ context.Context, _ string) (string, error) {
		return "", fmt.Errorf("fetch page: connection refused")
	}

	rec := invoke(t, server.handleTranslateURL, http.MethodPost, "/api/v1/translate-url",
		`{"url":"https://example.com/post"}`, nil)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
}

func TestHandleProviders_ListsAll(t *testing.T) {
	t.Parallel()

	server := newTestServer(t,
		&stubProvider{name: "mymemory", text: "a"},
		&stubProvider{name: "libretranslate", text: "b"},
	)
	rec := invoke(t, server.handleProviders, http.MethodGet, "/api/v1/providers", "", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"mymemory"`) || !strings.Contains(rec.Body.String(), `"libretranslate"`) {
		t.Fatalf("provider listing incomplete: %s", rec.Body.String())
	}
}

func TestHandleSetProviderEnabled(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, &stubProvider{name: "mymemory", text: "a"})

	req := httptest.NewRequest(http.MethodPut, "/api/v1/providers/mymemory/enabled", strings.NewReader(`{"enabled":false}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)
	c.SetParamNames("name")
	c.SetParamValues("mymemory")

	if err := server.handleSetProviderEnabled(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	statuses := server.svc.ProviderStatus()
	if len(statuses) != 1 || statuses[0].Enabled {
		t.Fatalf("provider should be disabled: %+v", statuses)
	}
}

func TestHandleSetProviderEnabled_UnknownProvider(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, &stubProvider{name: "mymemory", text: "a"})

	req := httptest.NewRequest(http.MethodPut, "/api/v1/providers/deepl/enabled", strings.NewReader(`{"enabled":true}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)
	c.SetParamNames("name")
	c.SetParamValues("deepl")

	if err := server.handleSetProviderEnabled(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestHandleLog_SnapshotAndClear(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, &stubProvider{name: "mymemory", text: "привіт"})
	server.svc.Translate(context.Background(), "hello", "en", "uk")

	rec := invoke(t, server.handleLogSnapshot, http.MethodGet, "/api/v1/log", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "translation requested") {
		t.Fatalf("expected request record in snapshot: %s", rec.Body.String())
	}

	rec = invoke(t, server.handleClearLog, http.MethodDelete, "/api/v1/log", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := len(server.svc.LogSnapshot()); got != 0 {
		t.Fatalf("log should be empty after clear, got %d records", got)
	}
}

func TestHandleHistory_NotConfigured(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, &stubProvider{name: "mymemory", text: "a"})
	rec := invoke(t, server.handleHistory, http.MethodGet, "/api/v1/history", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestRequireAdminKey(t *testing.T) {
	t.Parallel()

	hash, err := auth.HashAPIKey("relay-admin-secret")
	if err != nil {
		t.Fatalf("hash key: %v", err)
	}

	server := newTestServer(t, &stubProvider{name: "mymemory", text: "a"})
	server.opts.AdminKeyHash = hash
	guarded := server.requireAdminKey(server.handleResetFailures)

	rec := invoke(t, guarded, http.MethodPost, "/api/v1/providers/reset", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("missing key should be rejected, got %d", rec.Code)
	}

	wrong := http.Header{}
	wrong.Set("X-API-Key", "not-the-key")
	rec = invoke(t, guarded, http.MethodPost, "/api/v1/providers/reset", "", wrong)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("wrong key should be rejected, got %d", rec.Code)
	}

	valid := http.Header{}
	valid.Set("X-API-Key", "relay-admin-secret")
	rec = invoke(t, guarded, http.MethodPost, "/api/v1/providers/reset", "", valid)
	if rec.Code != http.StatusOK {
		t.Fatalf("valid key should pass, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestRequireAdminKey_OpenWhenUnset(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, &stubProvider{name: "mymemory", text: "a"})
	guarded := server.requireAdminKey(server.handleResetFailures)

	rec := invoke(t, guarded, http.MethodPost, "/api/v1/providers/reset", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected open access without configured hash, got %d", rec.Code)
	}
}

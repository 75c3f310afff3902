package translation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultLibreTranslateEndpoint is the hosted LibreTranslate endpoint.
const DefaultLibreTranslateEndpoint = "https://libretranslate.com/translate"

// LibreTranslateProvider calls a LibreTranslate-compatible JSON endpoint.
type LibreTranslateProvider struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

func NewLibreTranslateProvider(endpoint, apiKey string, timeout time.Duration) *LibreTranslateProvider {
	resolved := strings.TrimSpace(endpoint)
	if resolved == "" {
		resolved = DefaultLibreTranslateEndpoint
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &LibreTranslateProvider{
		endpoint: resolved,
		apiKey:   strings.TrimSpace(apiKey),
		client:   &http.Client{Timeout: timeout},
	}
}

func (p *LibreTranslateProvider) Name() string {
	return "libretranslate"
}

func (p *LibreTranslateProvider) Translate(ctx context.Context, req Request) (*Result, error) {
	if p == nil {
		return nil, fmt.Errorf("libretranslate provider is nil")
	}

	payload := libreTranslateRequest{
		Q:      req.Text,
		Source: req.SourceLang,
		Target: req.TargetLang,
		Format: "text",
		APIKey: p.apiKey,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal libretranslate request: %w", err)
	}

	started := time.Now()
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build libretranslate request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("send libretranslate request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read libretranslate response: %w", err)
	}
	if providerErr := statusError(p.Name(), resp.StatusCode); providerErr != nil {
		return nil, providerErr
	}

	var parsed libreTranslateResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("decode libretranslate response: %w", err)
	}

	translated := strings.TrimSpace(parsed.TranslatedText)
	if translated == "" {
		return nil, &ProviderError{Provider: p.Name(), Message: "no translation received"}
	}

	return &Result{
		Succeeded: true,
		Text:      translated,
		Provider:  p.Name(),
		LatencyMs: time.Since(started).Milliseconds(),
	}, nil
}

type libreTranslateRequest struct {
	Q      string `json:"q"`
	Source string `json:"source"`
	Target string `json:"target"`
	Format string `json:"format"`
	APIKey string `json:"api_key,omitempty"`
}

type libreTranslateResponse struct {
	TranslatedText string `json:"translatedText"`
}

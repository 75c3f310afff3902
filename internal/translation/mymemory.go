package translation

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultMyMemoryEndpoint is the public MyMemory API endpoint.
const DefaultMyMemoryEndpoint = "https://api.mymemory.translated.net/get"

// MyMemoryProvider calls the MyMemory translation API. MyMemory wraps its
// payload in an envelope whose responseStatus must be 200 even when the HTTP
// status already was.
type MyMemoryProvider struct {
	endpoint string
	client   *http.Client
}

func NewMyMemoryProvider(endpoint string, timeout time.Duration) *MyMemoryProvider {
	resolved := strings.TrimSpace(endpoint)
	if resolved == "" {
		resolved = DefaultMyMemoryEndpoint
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &MyMemoryProvider{
		endpoint: resolved,
		client:   &http.Client{Timeout: timeout},
	}
}

func (p *MyMemoryProvider) Name() string {
	return "mymemory"
}

func (p *MyMemoryProvider) Translate(ctx context.Context, req Request) (*Result, error) {
	if p == nil {
		return nil, fmt.Errorf("mymemory provider is nil")
	}

	query := url.Values{}
	query.Set("q", req.Text)
	query.Set("langpair", req.SourceLang+"|"+req.TargetLang)

	started := time.Now()
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, p.endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build mymemory request: %w", err)
	}

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("send mymemory request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read mymemory response: %w", err)
	}
	if providerErr := statusError(p.Name(), resp.StatusCode); providerErr != nil {
		return nil, providerErr
	}

	var parsed myMemoryResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode mymemory response: %w", err)
	}
	if !envelopeStatusOK(parsed.ResponseStatus) {
		return nil, &ProviderError{
			Provider: p.Name(),
			Message:  fmt.Sprintf("unexpected response status %v", parsed.ResponseStatus),
		}
	}

	translated := strings.TrimSpace(parsed.ResponseData.TranslatedText)
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

type myMemoryResponse struct {
	ResponseStatus any `json:"responseStatus"`
	ResponseData   struct {
		TranslatedText string `json:"translatedText"`
	} `json:"responseData"`
}

// envelopeStatusOK accepts the numeric and string forms MyMemory uses for
// its in-body status field.
func envelopeStatusOK(value any) bool {
	switch v := value.(type) {
	case float64:
		return int(v) == http.StatusOK
	case json.Number:
		return v.String() == "200"
	case string:
		return strings.TrimSpace(v) == "200"
	default:
		return false
	}
}

// statusError maps a non-success HTTP status to a ProviderError. 429 keeps
// its status code so the orchestrator can recognize rate limiting.
func statusError(provider string, statusCode int) *ProviderError {
	if statusCode >= 200 && statusCode < 300 {
		return nil
	}
	if statusCode == http.StatusTooManyRequests {
		return &ProviderError{Provider: provider, StatusCode: statusCode, Message: "rate limited"}
	}
	return &ProviderError{Provider: provider, StatusCode: statusCode, Message: "unexpected status"}
}

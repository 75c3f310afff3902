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

// DefaultGoogleWebEndpoint is the unofficial web-client translate endpoint.
const DefaultGoogleWebEndpoint = "https://translate.googleapis.com/translate_a/single"

// GoogleWebProvider calls the unofficial Google web-client endpoint. The
// response is a nested JSON array; the translated text sits at [0][0][0].
type GoogleWebProvider struct {
	endpoint string
	client   *http.Client
}

func NewGoogleWebProvider(endpoint string, timeout time.Duration) *GoogleWebProvider {
	resolved := strings.TrimSpace(endpoint)
	if resolved == "" {
		resolved = DefaultGoogleWebEndpoint
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &GoogleWebProvider{
		endpoint: resolved,
		client:   &http.Client{Timeout: timeout},
	}
}

func (p *GoogleWebProvider) Name() string {
	return "google-web"
}

func (p *GoogleWebProvider) Translate(ctx context.Context, req Request) (*Result, error) {
	if p == nil {
		return nil, fmt.Errorf("google-web provider is nil")
	}

	query := url.Values{}
	query.Set("client", "gtx")
	query.Set("sl", req.SourceLang)
	query.Set("tl", req.TargetLang)
	query.Set("dt", "t")
	query.Set("q", req.Text)

	started := time.Now()
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, p.endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build google-web request: %w", err)
	}

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("send google-web request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read google-web response: %w", err)
	}
	if providerErr := statusError(p.Name(), resp.StatusCode); providerErr != nil {
		return nil, providerErr
	}

	var parsed []any
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode google-web response: %w", err)
	}

	translated := strings.TrimSpace(nestedString(parsed, 0, 0, 0))
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

// nestedString walks a decoded JSON array along the given indices and
// returns the string found there, or "" when the path does not exist.
func nestedString(value any, indices ...int) string {
	current := value
	for _, idx := range indices {
		list, ok := current.([]any)
		if !ok || idx < 0 || idx >= len(list) {
			return ""
		}
		current = list[idx]
	}
	text, _ := current.(string)
	return text
}

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

// DefaultTranslatedEndpoint is the legacy mymemory.translated.net mirror.
const DefaultTranslatedEndpoint = "https://mymemory.translated.net/api/get"

// TranslatedProvider calls the legacy translated.net mirror. The wire shape
// matches MyMemory except the mirror omits a reliable responseStatus field,
// so only the translated text is checked.
type TranslatedProvider struct {
	endpoint string
	client   *http.Client
}

func NewTranslatedProvider(endpoint string, timeout time.Duration) *TranslatedProvider {
	resolved := strings.TrimSpace(endpoint)
	if resolved == "" {
		resolved = DefaultTranslatedEndpoint
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &TranslatedProvider{
		endpoint: resolved,
		client:   &http.Client{Timeout: timeout},
	}
}

func (p *TranslatedProvider) Name() string {
	return "translated"
}

func (p *TranslatedProvider) Translate(ctx context.Context, req Request) (*Result, error) {
	if p == nil {
		return nil, fmt.Errorf("translated provider is nil")
	}

	query := url.Values{}
	query.Set("q", req.Text)
	query.Set("langpair", req.SourceLang+"|"+req.TargetLang)

	started := time.Now()
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, p.endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build translated request: %w", err)
	}

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("send translated request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read translated response: %w", err)
	}
	if providerErr := statusError(p.Name(), resp.StatusCode); providerErr != nil {
		return nil, providerErr
	}

	var parsed translatedResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode translated response: %w", err)
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

type translatedResponse struct {
	ResponseData struct {
		TranslatedText string `json:"translatedText"`
	} `json:"responseData"`
}

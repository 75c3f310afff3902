package translation

import "context"

// Provider translates free-form text between languages.
type Provider interface {
	Translate(ctx context.Context, req Request) (*Result, error)
	Name() string
}

// Request describes one translation request.
type Request struct {
	Text       string
	SourceLang string // ISO 639-1 (for example: "en", "uk")
	TargetLang string
}

// Result contains translated text and the provider that produced it.
type Result struct {
	Succeeded bool   `json:"succeeded"`
	Text      string `json:"text"`
	Provider  string `json:"provider"`
	LatencyMs int64  `json:"latency_ms,omitempty"`
}

package translation

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ProviderError describes one failed provider call.
type ProviderError struct {
	Provider   string
	StatusCode int
	Message    string
}

func (e *ProviderError) Error() string {
	if e == nil {
		return ""
	}
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s: status %d: %s", e.Provider, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Provider, e.Message)
}

// IsRateLimit reports whether an adapter error signals provider rate limiting.
// HTTP 429 is the canonical signal; the message markers cover providers that
// report limits inside an otherwise generic error body.
func IsRateLimit(err error) bool {
	if err == nil {
		return false
	}

	var providerErr *ProviderError
	if errors.As(err, &providerErr) && providerErr.StatusCode == http.StatusTooManyRequests {
		return true
	}

	message := strings.ToLower(err.Error())
	return strings.Contains(message, "429") || strings.Contains(message, "limit")
}

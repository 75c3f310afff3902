package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"mova.dev/relay/internal/config"
	"mova.dev/relay/internal/db"
	"mova.dev/relay/internal/langdetect"
	"mova.dev/relay/internal/providerconf"
	"mova.dev/relay/internal/translation"
)

// providerDefault is the built-in routing policy for one provider. The
// defaults give MyMemory the first attempt and the Google web endpoint the
// last.
type providerDefault struct {
	name     string
	priority int
}

var providerDefaults = []providerDefault{
	{name: "mymemory", priority: 0},
	{name: "libretranslate", priority: 1},
	{name: "translated", priority: 2},
	{name: "google-web", priority: 3},
}

// buildRegistry assembles the provider registry from built-in defaults, the
// environment, and the optional providers.json overrides. File overrides win
// over environment endpoints.
func buildRegistry(cfg *config.Config) (*translation.Registry, error) {
	overrides := map[string]providerconf.Override{}
	if path := strings.TrimSpace(cfg.ProvidersFile); path != "" {
		file, err := providerconf.Load(path)
		if err != nil {
			return nil, err
		}
		overrides = file.ByName()
	}

	timeout := cfg.ProviderTimeout()
	registry := translation.NewRegistry()

	for _, def := range providerDefaults {
		priority := def.priority
		enabled := true
		endpoint := envEndpoint(cfg, def.name)

		if override, ok := overrides[def.name]; ok {
			if override.Priority != nil {
				priority = *override.Priority
			}
			if override.Enabled != nil {
				enabled = *override.Enabled
			}
			if strings.TrimSpace(override.Endpoint) != "" {
				endpoint = override.Endpoint
			}
		}

		provider, err := newProvider(cfg, def.name, endpoint, timeout)
		if err != nil {
			return nil, err
		}
		if err := registry.Register(provider, priority, enabled); err != nil {
			return nil, fmt.Errorf("register %s: %w", def.name, err)
		}
	}
	return registry, nil
}

func envEndpoint(cfg *config.Config, name string) string {
	switch name {
	case "mymemory":
		return cfg.MyMemoryEndpoint
	case "libretranslate":
		return cfg.LibreTranslateEndpoint
	case "translated":
		return cfg.TranslatedEndpoint
	case "google-web":
		return cfg.GoogleWebEndpoint
	}
	return ""
}

func newProvider(cfg *config.Config, name, endpoint string, timeout time.Duration) (translation.Provider, error) {
	switch name {
	case "mymemory":
		return translation.NewMyMemoryProvider(endpoint, timeout), nil
	case "libretranslate":
		return translation.NewLibreTranslateProvider(endpoint, cfg.LibreTranslateAPIKey, timeout), nil
	case "translated":
		return translation.NewTranslatedProvider(endpoint, timeout), nil
	case "google-web":
		return translation.NewGoogleWebProvider(endpoint, timeout), nil
	}
	return nil, fmt.Errorf("unknown provider %q", name)
}

// buildService wires the translation service with all configured options.
// The returned cleanup closes the database pool when history is enabled and
// is safe to call unconditionally.
func buildService(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*translation.Service, *db.HistoryStore, func(), error) {
	registry, err := buildRegistry(cfg)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("build provider registry: %w", err)
	}

	var (
		history *db.HistoryStore
		cleanup = func() {}
	)
	if cfg.HistoryEnabled() {
		pool, err := db.NewPool(ctx, cfg)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("connect translation history database: %w", err)
		}
		history = db.NewHistoryStore(pool)
		cleanup = func() { _ = pool.Close() }
	}

	opts := translation.Options{
		Registry:          registry,
		Logger:            logger,
		EventLogCapacity:  cfg.EventLogCapacity,
		DefaultSourceLang: cfg.SourceLang,
		DefaultTargetLang: cfg.TargetLang,
		DetectSourceLang:  langdetect.DetectISO6391,
	}
	if history != nil {
		opts.History = history
	}

	return translation.NewService(opts), history, cleanup, nil
}

package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"

	"mova.dev/relay/internal/language"
)

type Config struct {
	Environment string `envconfig:"ENVIRONMENT" default:"local"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`

	SourceLang string `envconfig:"RELAY_SOURCE_LANG" default:"en"`
	TargetLang string `envconfig:"RELAY_TARGET_LANG" default:"uk"`

	EventLogCapacity       int `envconfig:"RELAY_EVENT_LOG_CAPACITY" default:"1000"`
	ProviderTimeoutSeconds int `envconfig:"RELAY_PROVIDER_TIMEOUT_SECONDS" default:"15"`

	// ProvidersFile points to an optional providers.json overriding provider
	// priorities, enabled flags, and endpoints.
	ProvidersFile string `envconfig:"RELAY_PROVIDERS_FILE" default:""`

	MyMemoryEndpoint       string `envconfig:"RELAY_MYMEMORY_ENDPOINT" default:""`
	LibreTranslateEndpoint string `envconfig:"RELAY_LIBRETRANSLATE_ENDPOINT" default:""`
	LibreTranslateAPIKey   string `envconfig:"RELAY_LIBRETRANSLATE_API_KEY" default:""`
	TranslatedEndpoint     string `envconfig:"RELAY_TRANSLATED_ENDPOINT" default:""`
	GoogleWebEndpoint      string `envconfig:"RELAY_GOOGLE_WEB_ENDPOINT" default:""`

	// DatabaseURL is optional; translation history is disabled when empty.
	DatabaseURL string `envconfig:"DATABASE_URL" default:""`
	DBMaxConns  int32  `envconfig:"RELAY_DB_MAX_CONNS" default:"4"`

	// AdminKeyHash is a bcrypt hash guarding maintenance endpoints. Empty
	// leaves them open, which is only sensible in a local environment.
	AdminKeyHash string `envconfig:"RELAY_ADMIN_KEY_HASH" default:""`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if language.NormalizeCode(c.SourceLang) == "" {
		return fmt.Errorf("RELAY_SOURCE_LANG must be a valid language code")
	}
	if language.NormalizeCode(c.TargetLang) == "" {
		return fmt.Errorf("RELAY_TARGET_LANG must be a valid language code")
	}
	if c.EventLogCapacity < 1 {
		return fmt.Errorf("RELAY_EVENT_LOG_CAPACITY must be >= 1")
	}
	if c.ProviderTimeoutSeconds < 1 {
		return fmt.Errorf("RELAY_PROVIDER_TIMEOUT_SECONDS must be >= 1")
	}
	if c.DBMaxConns < 1 {
		return fmt.Errorf("RELAY_DB_MAX_CONNS must be >= 1")
	}
	return nil
}

// HistoryEnabled reports whether the persistent translation history is
// configured.
func (c *Config) HistoryEnabled() bool {
	return c != nil && strings.TrimSpace(c.DatabaseURL) != ""
}

func (c *Config) ProviderTimeout() time.Duration {
	if c == nil || c.ProviderTimeoutSeconds < 1 {
		return 15 * time.Second
	}
	return time.Duration(c.ProviderTimeoutSeconds) * time.Second
}

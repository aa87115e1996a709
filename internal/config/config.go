package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	envPort                  = "PORT"
	envServerReadTimeout     = "SERVER_READ_TIMEOUT"
	envServerWriteTimeout    = "SERVER_WRITE_TIMEOUT"
	envServerShutdownTimeout = "SERVER_SHUTDOWN_TIMEOUT"
	envUpstreamBaseURL       = "UPSTREAM_BASE_URL"
	envUpstreamAPIKey        = "UPSTREAM_API_KEY"
	envUpstreamTimeout       = "UPSTREAM_TIMEOUT"
	envDebugGeneration       = "DEBUG_GENERATION"
	envDeckCompilerEnabled   = "DECK_COMPILER_ENABLED"
	envVerboseDiagnostics    = "VERBOSE_DIAGNOSTICS"
	envBulkGenerateDelay     = "BULK_GENERATE_DELAY"
	envContentCacheTTL       = "CONTENT_CACHE_TTL"
)

const (
	defaultServerPort         = "8080"
	defaultServerReadTimeout  = 10 * time.Second
	defaultServerWriteTimeout = 30 * time.Second
	defaultServerShutdown     = 10 * time.Second
	defaultUpstreamTimeout    = 120 * time.Second
	defaultBulkGenerateDelay  = 2 * time.Second
	defaultContentCacheTTL    = 5 * time.Minute

	errUpstreamURLRequiredFmt  = "UPSTREAM_BASE_URL must be set"
	errInvalidConfigurationFmt = "invalid configuration: %w"
)

type Config struct {
	Server   ServerConfig
	Upstream UpstreamConfig
	App      AppConfig
}

type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

type UpstreamConfig struct {
	BaseURL         string
	APIKey          string
	Timeout         time.Duration
	DebugGeneration bool
}

type AppConfig struct {
	// DeckCompilerEnabled selects the full slide presentation for
	// PRESENTATION_DECK assets; when off they render as markdown.
	DeckCompilerEnabled bool
	// VerboseDiagnostics copies raw fault detail into error panels.
	VerboseDiagnostics bool
	BulkGenerateDelay  time.Duration
	ContentCacheTTL    time.Duration
}

// LoadConfig reads configuration from environment variables, applying
// defaults for everything except the upstream base URL.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv(envPort, defaultServerPort),
			ReadTimeout:     getDuration(envServerReadTimeout, defaultServerReadTimeout),
			WriteTimeout:    getDuration(envServerWriteTimeout, defaultServerWriteTimeout),
			ShutdownTimeout: getDuration(envServerShutdownTimeout, defaultServerShutdown),
		},
		Upstream: UpstreamConfig{
			BaseURL:         os.Getenv(envUpstreamBaseURL),
			APIKey:          os.Getenv(envUpstreamAPIKey),
			Timeout:         getDuration(envUpstreamTimeout, defaultUpstreamTimeout),
			DebugGeneration: getBool(envDebugGeneration, false),
		},
		App: AppConfig{
			DeckCompilerEnabled: getBool(envDeckCompilerEnabled, true),
			VerboseDiagnostics:  getBool(envVerboseDiagnostics, false),
			BulkGenerateDelay:   getDuration(envBulkGenerateDelay, defaultBulkGenerateDelay),
			ContentCacheTTL:     getDuration(envContentCacheTTL, defaultContentCacheTTL),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf(errInvalidConfigurationFmt, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Upstream.BaseURL == "" {
		return fmt.Errorf(errUpstreamURLRequiredFmt)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func getBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

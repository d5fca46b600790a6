// Package config loads framelai settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	OpenAIAPIKey  string  `env:"OPENAI_API_KEY"`
	OpenAIBaseURL string  `env:"OPENAI_BASE_URL"`
	Model         string  `env:"FRAMELAI_MODEL" envDefault:"gpt-4o-mini"`
	Temperature   float32 `env:"FRAMELAI_TEMPERATURE" envDefault:"0.3"`

	RedisURL string `env:"FRAMELAI_REDIS_URL"`
	CacheTTL int    `env:"FRAMELAI_CACHE_TTL" envDefault:"3600"` // Seconds, 0 disables caching

	CacheMaxEntries int `env:"FRAMELAI_CACHE_MAX_ENTRIES" envDefault:"10000"` // In-memory cache bound, 0 = unbounded

	RequestsPerMinute int `env:"FRAMELAI_RPM" envDefault:"0"`             // 0 = no rate limit
	MaxConcurrency    int `env:"FRAMELAI_MAX_CONCURRENCY" envDefault:"0"` // 0 = unlimited

	TranslateTimeout time.Duration `env:"FRAMELAI_TRANSLATE_TIMEOUT" envDefault:"2m"` // Per translate call

	Addr       string `env:"FRAMELAI_ADDR" envDefault:":8080"`
	FramesFile string `env:"FRAMELAI_FRAMES"` // Empty = built-in demo frames
	LogEnv     string `env:"LOG_ENV" envDefault:"development"`
}

// Load reads the given .env files (default ".env"), then parses the
// environment into a Config. Missing .env files are not an error; variables
// already set in the environment win over .env values.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}

	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("loading %s: %w", f, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges that struct tags cannot express.
func (c *Config) Validate() error {
	switch {
	case c.CacheTTL < 0:
		return fmt.Errorf("FRAMELAI_CACHE_TTL must not be negative, got %d", c.CacheTTL)
	case c.RequestsPerMinute < 0:
		return fmt.Errorf("FRAMELAI_RPM must not be negative, got %d", c.RequestsPerMinute)
	case c.CacheMaxEntries < 0:
		return fmt.Errorf("FRAMELAI_CACHE_MAX_ENTRIES must not be negative, got %d", c.CacheMaxEntries)
	case c.TranslateTimeout <= 0:
		return fmt.Errorf("FRAMELAI_TRANSLATE_TIMEOUT must be positive, got %v", c.TranslateTimeout)
	case c.MaxConcurrency < 0:
		return fmt.Errorf("FRAMELAI_MAX_CONCURRENCY must not be negative, got %d", c.MaxConcurrency)
	case c.Temperature < 0 || c.Temperature > 2:
		return fmt.Errorf("FRAMELAI_TEMPERATURE must be between 0 and 2, got %v", c.Temperature)
	}
	return nil
}

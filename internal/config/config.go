// internal/config/config.go
//
// Process configuration.
//
// Sources, lowest to highest precedence:
//   1. Compiled defaults (Default()).
//   2. PALABREO_* environment variables (a .env file loaded at entry
//      feeds these in development).
//
// Key mapping: PALABREO_PROVIDER_BASE_URL → provider.base_url; the first
// underscore segment selects the section, the rest is the field.
//
// Validation runs on every Load. The CheckLength/CheckAttempts helpers are
// the boundary guards front ends call before game dimensions reach the
// core; the state machine itself never re-validates.

package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "PALABREO_"

// ProviderConfig points at the Datamuse-compatible word API.
type ProviderConfig struct {
	BaseURL    string        `koanf:"base_url" validate:"required,url"`
	Timeout    time.Duration `koanf:"timeout" validate:"required,gt=0"`
	MaxResults int           `koanf:"max_results" validate:"gt=0,lte=1000"`
}

// WordsConfig bounds the word length a player may request.
type WordsConfig struct {
	MinLength int `koanf:"min_length" validate:"gte=1"`
	MaxLength int `koanf:"max_length" validate:"gtefield=MinLength"`
}

// AttemptsConfig bounds the guess budget a player may request.
type AttemptsConfig struct {
	Min int `koanf:"min" validate:"gte=1"`
	Max int `koanf:"max" validate:"gtefield=Min"`
}

// ServerConfig tunes the HTTP front end.
type ServerConfig struct {
	Addr           string        `koanf:"addr" validate:"required"`
	RateRPS        float64       `koanf:"rate_rps" validate:"gt=0"`
	RateBurst      int           `koanf:"rate_burst" validate:"gte=1"`
	AllowedOrigins []string      `koanf:"allowed_origins" validate:"min=1"`
	SessionTTL     time.Duration `koanf:"session_ttl" validate:"gt=0"`
}

// CacheConfig controls the optional sqlite word-pool cache.
// An empty Path disables caching entirely.
type CacheConfig struct {
	Path string        `koanf:"path"`
	TTL  time.Duration `koanf:"ttl" validate:"gte=0"`
}

// DailyConfig seeds the deterministic word-of-the-day sequence.
type DailyConfig struct {
	Salt string `koanf:"salt"`
}

// LogConfig selects the zerolog level.
type LogConfig struct {
	Level string `koanf:"level" validate:"oneof=trace debug info warn error fatal panic disabled"`
}

// Config is the full runtime configuration.
type Config struct {
	Language string         `koanf:"language" validate:"required,alpha,lowercase"`
	Provider ProviderConfig `koanf:"provider"`
	Words    WordsConfig    `koanf:"words"`
	Attempts AttemptsConfig `koanf:"attempts"`
	Server   ServerConfig   `koanf:"server"`
	Cache    CacheConfig    `koanf:"cache"`
	Daily    DailyConfig    `koanf:"daily"`
	Log      LogConfig      `koanf:"log"`
}

// Default returns the compiled-in configuration.
func Default() Config {
	return Config{
		Language: "es",
		Provider: ProviderConfig{
			BaseURL:    "https://api.datamuse.com",
			Timeout:    10 * time.Second,
			MaxResults: 1000,
		},
		Words:    WordsConfig{MinLength: 5, MaxLength: 10},
		Attempts: AttemptsConfig{Min: 1, Max: 20},
		Server: ServerConfig{
			Addr:           ":8080",
			RateRPS:        5,
			RateBurst:      10,
			AllowedOrigins: []string{"*"},
			SessionTTL:     30 * time.Minute,
		},
		Cache: CacheConfig{Path: "", TTL: 24 * time.Hour},
		Daily: DailyConfig{Salt: "palabreo"},
		Log:   LogConfig{Level: "info"},
	}
}

// Load assembles the configuration from defaults and the environment,
// then validates it.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("config: loading defaults: %w", err)
	}

	if err := k.Load(env.Provider(".", env.Opt{
		Prefix: envPrefix,
		TransformFunc: func(key, value string) (string, any) {
			return transformEnvKey(strings.TrimPrefix(key, envPrefix)), value
		},
	}), nil); err != nil {
		return nil, fmt.Errorf("config: loading environment: %w", err)
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			WeaklyTypedInput: true,
			Result:           &cfg,
			TagName:          "koanf",
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}); err != nil {
		return nil, fmt.Errorf("config: unmarshaling: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config: validating: %w", err)
	}
	return &cfg, nil
}

// transformEnvKey converts an environment variable name (prefix already
// stripped) to a koanf path. The first underscore segment is the section,
// the remainder keeps its underscores:
//
//	PROVIDER_BASE_URL → provider.base_url
//	LANGUAGE          → language
func transformEnvKey(s string) string {
	s = strings.ToLower(s)
	parts := strings.FieldsFunc(s, func(r rune) bool { return r == '_' })
	if len(parts) == 0 {
		return ""
	}
	if len(parts) == 1 {
		return parts[0]
	}
	return parts[0] + "." + strings.Join(parts[1:], "_")
}

// CheckLength validates a requested word length against the configured
// inclusive bounds.
func (c *Config) CheckLength(n int) error {
	if n < c.Words.MinLength || n > c.Words.MaxLength {
		return fmt.Errorf("word length must be between %d and %d, got %d",
			c.Words.MinLength, c.Words.MaxLength, n)
	}
	return nil
}

// CheckAttempts validates a requested guess budget against the configured
// inclusive bounds.
func (c *Config) CheckAttempts(n int) error {
	if n < c.Attempts.Min || n > c.Attempts.Max {
		return fmt.Errorf("attempts must be between %d and %d, got %d",
			c.Attempts.Min, c.Attempts.Max, n)
	}
	return nil
}

package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const minSecretKeyLength = 32

var insecureSecretKeys = map[string]struct{}{
	"change_me_in_production":                    {},
	"your-secret-key":                            {},
	"replace_with_at_least_32_random_characters": {},
}

var (
	ErrSecretKeyMissing  = errors.New("SECRET_KEY is required")
	ErrSecretKeyInsecure = errors.New("SECRET_KEY uses a placeholder value")
	ErrSecretKeyTooShort = fmt.Errorf("SECRET_KEY must be at least %d characters", minSecretKeyLength)
	ErrPortInvalid       = errors.New("PORT must be between 1 and 65535")
	ErrSessionTTLInvalid = errors.New("SESSION_TTL must be positive")
)

// Config contains server configuration parameters.
type Config struct {
	SecretKey    string        `env:"SECRET_KEY"`
	DBPath       string        `env:"DB_PATH" envDefault:"data/healthsome.db"`
	Port         int           `env:"PORT" envDefault:"8080"`
	Timezone     string        `env:"TZ" envDefault:"UTC"`
	CookieSecure bool          `env:"COOKIE_SECURE" envDefault:"false"`
	SessionTTL   time.Duration `env:"SESSION_TTL" envDefault:"168h"`
}

// Load reads an optional .env file, then the process environment, and
// validates the result. Variables already set in the environment win over the file.
func Load(envFiles ...string) (*Config, error) {
	cfg, err := Parse(envFiles...)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse is Load without validation. Operator commands that only touch the
// database use it so they run without a SECRET_KEY.
func Parse(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, path := range envFiles {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
	}

	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

func (cfg *Config) Validate() error {
	secret := strings.TrimSpace(cfg.SecretKey)
	if secret == "" {
		return ErrSecretKeyMissing
	}
	if _, insecure := insecureSecretKeys[secret]; insecure {
		return ErrSecretKeyInsecure
	}
	if len(secret) < minSecretKeyLength {
		return ErrSecretKeyTooShort
	}
	if cfg.Port < 1 || cfg.Port > 65535 {
		return ErrPortInvalid
	}
	if cfg.SessionTTL <= 0 {
		return ErrSessionTTLInvalid
	}
	cfg.SecretKey = secret
	return nil
}

func (cfg *Config) ListenAddress() string {
	return fmt.Sprintf(":%d", cfg.Port)
}

// Location resolves Timezone, falling back to UTC for unknown names.
func (cfg *Config) Location() (*time.Location, error) {
	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return time.UTC, fmt.Errorf("invalid TZ %q: %w", cfg.Timezone, err)
	}
	return location, nil
}

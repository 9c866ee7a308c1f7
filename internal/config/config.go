// Package config loads the campuscare configuration from .campuscare/config.json,
// an optional .env file and CAMPUSCARE_* environment variables.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Store backends.
const (
	StoreSQLite = "sqlite"
	StoreRedis  = "redis"
	StoreMemory = "memory"
)

const (
	// DirName is the per-project configuration directory.
	DirName = ".campuscare"

	// EnvPrefix prefixes every environment override.
	EnvPrefix = "campuscare"

	currentVersion = "1"
)

// Duration is a time.Duration that reads and writes as "8s" in JSON and the environment.
type Duration struct {
	time.Duration
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	d.Duration = parsed
	return nil
}

// Config represents the campuscare configuration
type Config struct {
	Version           string   `json:"version" ignored:"true"`
	Store             string   `json:"store" envconfig:"STORE"`                           // "sqlite", "redis" or "memory"
	SQLitePath        string   `json:"sqlite_path,omitempty" envconfig:"SQLITE_PATH"`     // defaults under DirName
	RedisAddr         string   `json:"redis_addr,omitempty" envconfig:"REDIS_ADDR"`       // host:port
	RedisPassword     string   `json:"redis_password,omitempty" envconfig:"REDIS_PASSWORD"`
	RedisDB           int      `json:"redis_db,omitempty" envconfig:"REDIS_DB"`
	RedisKeyPrefix    string   `json:"redis_key_prefix,omitempty" envconfig:"REDIS_KEY_PREFIX"`
	ClassifierTimeout Duration `json:"classifier_timeout" envconfig:"CLASSIFIER_TIMEOUT"`
	GeminiModel       string   `json:"gemini_model,omitempty" envconfig:"GEMINI_MODEL"`
	LogLevel          string   `json:"log_level" envconfig:"LOG_LEVEL"`
	LogFormat         string   `json:"log_format" envconfig:"LOG_FORMAT"` // "console" or "json"
	SessionTTL        Duration `json:"session_ttl" envconfig:"SESSION_TTL"`
	SessionSecret     string   `json:"session_secret,omitempty" envconfig:"SESSION_SECRET"`

	// Environment only; never written to disk.
	GeminiAPIKey string `json:"-" envconfig:"GEMINI_API_KEY"`

	root string
}

// Default returns the configuration used when no config file exists.
func Default(dir string) *Config {
	return &Config{
		Version:           currentVersion,
		Store:             StoreSQLite,
		ClassifierTimeout: Duration{8 * time.Second},
		LogLevel:          "warn",
		LogFormat:         "console",
		SessionTTL:        Duration{12 * time.Hour},
		root:              dir,
	}
}

// LoadConfig reads .campuscare/config.json from the specified directory,
// then applies .env and environment overrides.
// A missing config file is not an error; defaults apply.
func LoadConfig(dir string) (*Config, error) {
	if err := godotenv.Load(filepath.Join(dir, ".env")); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := Default(dir)
	data, err := os.ReadFile(Path(dir))
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to apply environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SaveConfig writes config.json to directory
func SaveConfig(dir string, cfg *Config) error {
	ccDir := filepath.Join(dir, DirName)
	if err := os.MkdirAll(ccDir, 0755); err != nil {
		return fmt.Errorf("failed to create %s dir: %w", DirName, err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// The file may carry the session secret.
	if err := os.WriteFile(Path(dir), data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Path returns the config file location for dir.
func Path(dir string) string {
	return filepath.Join(dir, DirName, "config.json")
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch c.Store {
	case StoreSQLite, StoreMemory:
	case StoreRedis:
		if c.RedisAddr == "" {
			return errors.New("invalid config: redis store requires redis_addr")
		}
	default:
		return fmt.Errorf("invalid config: unknown store %q", c.Store)
	}
	if c.ClassifierTimeout.Duration <= 0 {
		return errors.New("invalid config: classifier_timeout must be positive")
	}
	if c.SessionTTL.Duration < 0 {
		return errors.New("invalid config: session_ttl must not be negative")
	}
	if c.LogFormat != "console" && c.LogFormat != "json" {
		return fmt.Errorf("invalid config: unknown log_format %q", c.LogFormat)
	}
	return nil
}

// DatabasePath returns the sqlite file, defaulting to .campuscare/campuscare.db.
func (c *Config) DatabasePath() string {
	if c.SQLitePath != "" {
		return c.SQLitePath
	}
	return filepath.Join(c.root, DirName, "campuscare.db")
}

// SessionPath returns where the signed-in token is kept.
func (c *Config) SessionPath() string {
	return filepath.Join(c.root, DirName, "session")
}

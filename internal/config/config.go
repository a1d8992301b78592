// Package config loads the solver configuration: a YAML file, then environment
// overrides (optionally seeded from a .env file), then command-line flags applied
// by the caller.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Cache backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Config is the full configuration.
type Config struct {
	WordsFile   string `yaml:"words_file"` // empty selects the embedded list
	WordLength  int    `yaml:"word_length"`
	Alphabet    string `yaml:"alphabet"`
	MaxAttempts int    `yaml:"max_attempts"`
	TopN        int    `yaml:"top_n"`
	LogLevel    string `yaml:"log_level"`

	Cache    CacheConfig    `yaml:"cache"`
	Server   ServerConfig   `yaml:"server"`
	Evaluate EvaluateConfig `yaml:"evaluate"`
}

// CacheConfig selects where vocabulary, index, coverage and evaluation entries live.
type CacheConfig struct {
	Dir     string `yaml:"dir"`
	Backend string `yaml:"backend"` // "file" or "sqlite"
	DSN     string `yaml:"dsn"`     // sqlite path; <dir>/cache.db when empty
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port      string  `yaml:"port"`
	JWTSecret string  `yaml:"jwt_secret"`
	DailySalt string  `yaml:"daily_salt"`
	RateLimit float64 `yaml:"rate_limit"` // requests per second
	RateBurst int     `yaml:"rate_burst"`
}

// EvaluateConfig configures the self-play harness.
type EvaluateConfig struct {
	Workers int `yaml:"workers"`
}

// Default returns the configuration of a classic game.
func Default() *Config {
	return &Config{
		WordLength:  5,
		Alphabet:    "abcdefghijklmnopqrstuvwxyz",
		MaxAttempts: 6,
		TopN:        10,
		LogLevel:    "info",
		Cache: CacheConfig{
			Dir:     "cache",
			Backend: BackendFile,
		},
		Server: ServerConfig{
			Port:      "8080",
			JWTSecret: "dev_secret_change_me",
			DailySalt: "local_dev_salt",
			RateLimit: 20,
			RateBurst: 40,
		},
		Evaluate: EvaluateConfig{Workers: 1},
	}
}

// LoadDotEnv loads KEY=VALUE pairs from the given files (".env" when none) into the
// process environment without overriding variables that are already set. Missing
// files are ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// Load reads the YAML file at path over the defaults and applies environment
// overrides. A missing file yields the defaults (plus overrides).
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() error {
	str := map[string]*string{
		"WORDS_FILE":    &c.WordsFile,
		"ALPHABET":      &c.Alphabet,
		"LOG_LEVEL":     &c.LogLevel,
		"CACHE_DIR":     &c.Cache.Dir,
		"CACHE_BACKEND": &c.Cache.Backend,
		"CACHE_DSN":     &c.Cache.DSN,
		"PORT":          &c.Server.Port,
		"JWT_SECRET":    &c.Server.JWTSecret,
		"DAILY_SALT":    &c.Server.DailySalt,
	}
	for key, dst := range str {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}

	ints := map[string]*int{
		"WORD_LENGTH":  &c.WordLength,
		"MAX_ATTEMPTS": &c.MaxAttempts,
		"TOP_N":        &c.TopN,
		"EVAL_WORKERS": &c.Evaluate.Workers,
	}
	for key, dst := range ints {
		v := os.Getenv(key)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s=%q: %w", key, v, err)
		}
		*dst = n
	}
	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	switch {
	case c.WordLength <= 0:
		return fmt.Errorf("word_length must be positive, got %d", c.WordLength)
	case c.Alphabet == "":
		return errors.New("alphabet must not be empty")
	case c.MaxAttempts <= 0:
		return fmt.Errorf("max_attempts must be positive, got %d", c.MaxAttempts)
	case c.TopN <= 0:
		return fmt.Errorf("top_n must be positive, got %d", c.TopN)
	case c.Evaluate.Workers <= 0:
		return fmt.Errorf("evaluate.workers must be positive, got %d", c.Evaluate.Workers)
	case c.Cache.Backend != BackendFile && c.Cache.Backend != BackendSQLite:
		return fmt.Errorf("invalid cache backend: %s (valid: %s, %s)", c.Cache.Backend, BackendFile, BackendSQLite)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level: %w", err)
	}
	return nil
}

// CacheDir is the cache directory for the configured word length, so lists of
// different lengths never share entries.
func (c *Config) CacheDir() string {
	return filepath.Join(c.Cache.Dir, strconv.Itoa(c.WordLength))
}

// SQLiteDSN is the sqlite database path for the configured word length.
func (c *Config) SQLiteDSN() string {
	if c.Cache.DSN != "" {
		return c.Cache.DSN
	}
	return filepath.Join(c.CacheDir(), "cache.db")
}

// Package config loads the service configuration.
//
// Configuration comes from a single YAML file given by the --config flag or
// the REALTY_CONFIG environment variable. Without either, Default() is used
// as is, which runs everything in memory and is meant for local development.
//
// String values may reference environment variables as ${VAR} or
// ${VAR:-default}; secrets such as the admin password hash are expected to
// be supplied that way rather than committed to the file.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Log       LogConfig       `yaml:"log"`
	Storage   StorageConfig   `yaml:"storage"`
	Cache     CacheConfig     `yaml:"cache"`
	Blob      BlobConfig      `yaml:"blob"`
	Auth      AuthConfig      `yaml:"auth"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Advisor   AdvisorConfig   `yaml:"advisor"`
	Limits    LimitsConfig    `yaml:"limits"`
}

type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level"`
	// Format is "json" or "text".
	Format string `yaml:"format"`
}

// StorageConfig selects the record store.
// Backend is "memory" or "sqlite:<path>".
type StorageConfig struct {
	Backend string `yaml:"backend"`
}

// CacheConfig selects the calculation and session cache.
// Backend is "memory" or "redis:<host:port>".
type CacheConfig struct {
	Backend  string        `yaml:"backend"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	TTL      time.Duration `yaml:"ttl"`
}

type BlobConfig struct {
	// Dir is where uploaded images are written, one subdirectory per bucket.
	Dir string `yaml:"dir"`
	// PublicBaseURL prefixes every returned image URL.
	PublicBaseURL string `yaml:"public_base_url"`
}

type AuthConfig struct {
	AdminEmail string `yaml:"admin_email"`
	// PasswordHash is a bcrypt hash of the admin password.
	PasswordHash string        `yaml:"password_hash"`
	SessionTTL   time.Duration `yaml:"session_ttl"`
}

type RateLimitConfig struct {
	Capacity int           `yaml:"capacity"`
	Refill   time.Duration `yaml:"refill"`
}

type AdvisorConfig struct {
	Enabled bool          `yaml:"enabled"`
	// APIKey falls back to OPENAI_API_KEY when empty.
	APIKey  string        `yaml:"api_key"`
	Model   string        `yaml:"model"`
	APIURL  string        `yaml:"api_url"`
	Timeout time.Duration `yaml:"timeout"`
}

// LimitsConfig bounds what the public calculators accept.
type LimitsConfig struct {
	MaxPropertyPrice    float64 `yaml:"max_property_price"`
	MaxInterestRate     float64 `yaml:"max_interest_rate"`
	MaxTermYears        int     `yaml:"max_term_years"`
	MaxMonthlyAmount    float64 `yaml:"max_monthly_amount"`
	MaxClosingCosts     float64 `yaml:"max_closing_costs"`
	MaxAppreciationRate float64 `yaml:"max_appreciation_rate"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Storage: StorageConfig{Backend: "memory"},
		Cache: CacheConfig{
			Backend: "memory",
			TTL:     10 * time.Minute,
		},
		Blob: BlobConfig{
			Dir:           "./data/media",
			PublicBaseURL: "http://localhost:8080/media",
		},
		Auth: AuthConfig{
			AdminEmail: "admin@localhost",
			SessionTTL: 12 * time.Hour,
		},
		RateLimit: RateLimitConfig{
			Capacity: 60,
			Refill:   time.Minute,
		},
		Advisor: AdvisorConfig{
			Enabled: false,
			Model:   "gpt-4o-mini",
			APIURL:  "https://api.openai.com/v1/chat/completions",
			Timeout: 30 * time.Second,
		},
		Limits: LimitsConfig{
			MaxPropertyPrice:    1_000_000_000,
			MaxInterestRate:     100,
			MaxTermYears:        50,
			MaxMonthlyAmount:    100_000_000,
			MaxClosingCosts:     100,
			MaxAppreciationRate: 100,
		},
	}
}

// Load reads the file named by path, or by REALTY_CONFIG when path is
// empty. With neither set it returns Default().
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv("REALTY_CONFIG")
	}
	if path == "" {
		cfg := Default()
		return cfg, cfg.Validate()
	}
	return LoadFile(path)
}

// LoadFile loads configuration from a specific file path on top of Default().
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes YAML configuration on top of Default() and validates it.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.expandVariables()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) expandVariables() {
	c.Storage.Backend = expandVars(c.Storage.Backend)
	c.Cache.Backend = expandVars(c.Cache.Backend)
	c.Cache.Password = expandVars(c.Cache.Password)
	c.Blob.Dir = expandVars(c.Blob.Dir)
	c.Blob.PublicBaseURL = expandVars(c.Blob.PublicBaseURL)
	c.Auth.AdminEmail = expandVars(c.Auth.AdminEmail)
	c.Auth.PasswordHash = expandVars(c.Auth.PasswordHash)
	c.Advisor.APIURL = expandVars(c.Advisor.APIURL)
	c.Advisor.APIKey = expandVars(c.Advisor.APIKey)
}

// AdvisorKey returns the configured API key or OPENAI_API_KEY.
func (a AdvisorConfig) AdvisorKey() string {
	if a.APIKey != "" {
		return a.APIKey
	}
	return os.Getenv("OPENAI_API_KEY")
}

// expandVars expands ${VAR} and ${VAR:-default} patterns from the environment.
var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if value := os.Getenv(parts[1]); value != "" {
			return value
		}
		return parts[2]
	})
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Addr == "" {
		errs = append(errs, errors.New("server.addr is required"))
	}
	if _, err := c.Log.level(); err != nil {
		errs = append(errs, err)
	}
	if c.Log.Format != "json" && c.Log.Format != "text" {
		errs = append(errs, fmt.Errorf("invalid log.format: %s", c.Log.Format))
	}
	if !hasBackend(c.Storage.Backend, "memory", "sqlite") {
		errs = append(errs, fmt.Errorf("invalid storage.backend: %s", c.Storage.Backend))
	}
	if !hasBackend(c.Cache.Backend, "memory", "redis") {
		errs = append(errs, fmt.Errorf("invalid cache.backend: %s", c.Cache.Backend))
	}
	if c.Blob.Dir == "" {
		errs = append(errs, errors.New("blob.dir is required"))
	}
	if c.Auth.SessionTTL <= 0 {
		errs = append(errs, errors.New("auth.session_ttl must be positive"))
	}
	if c.RateLimit.Capacity <= 0 || c.RateLimit.Refill <= 0 {
		errs = append(errs, errors.New("rate_limit.capacity and rate_limit.refill must be positive"))
	}
	if c.Limits.MaxTermYears <= 0 {
		errs = append(errs, errors.New("limits.max_term_years must be positive"))
	}

	return errors.Join(errs...)
}

func hasBackend(spec string, backends ...string) bool {
	name, _, _ := strings.Cut(spec, ":")
	for _, b := range backends {
		if strings.EqualFold(name, b) {
			return true
		}
	}
	return false
}

func (l LogConfig) level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("invalid log.level: %s", l.Level)
	}
	return level, nil
}

// NewLogger builds the process logger described by the log section.
func (l LogConfig) NewLogger(w io.Writer) *slog.Logger {
	level, err := l.level()
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if l.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

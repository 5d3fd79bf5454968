package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/alvmarrod/wiki-hops/internal/version"
)

// ErrInvalidStart is returned when a starting URL lies outside the site's article namespace
var ErrInvalidStart = errors.New("start URL is not an article on the configured site")

// Config holds all runtime configuration parameters
type Config struct {
	SiteName         string   `json:"site_name"`
	Origin           string   `json:"origin"`
	ArticlePrefix    string   `json:"article_prefix"`
	TargetURL        string   `json:"target_url"`
	MaxHops          int      `json:"max_hops"`
	RequestTimeoutMs int      `json:"request_timeout_ms"`
	RetryAttempts    int      `json:"retry_attempts"`
	RetryDelayMs     int      `json:"retry_delay_ms"`
	RetryMaxDelayMs  int      `json:"retry_max_delay_ms"`
	AcceptEmptyBody  bool     `json:"accept_empty_body"`
	UserAgent        string   `json:"user_agent"`
	ExcludePatterns  []string `json:"exclude_patterns"`
	DBPath           string   `json:"db_path"`
	MetricsPath      string   `json:"metrics_path"`
	LogLevel         string   `json:"log_level"`

	exclusions []*regexp.Regexp
}

// LoadConfig reads and validates configuration from a JSON file
func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	var cfg Config
	decoder := json.NewDecoder(file)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Default returns the built-in configuration: English Wikipedia, Philosophy as target
func Default() *Config {
	cfg := &Config{}
	if err := cfg.Validate(); err != nil {
		// defaults are constants, this cannot fail
		panic(err)
	}
	return cfg
}

// Validate fills unspecified fields with defaults and checks the result.
// It must be called again after fields are overridden.
func (c *Config) Validate() error {
	applyDefaults(c)
	if err := validate(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// applyDefaults sets default values for unspecified fields
func applyDefaults(cfg *Config) {
	if cfg.SiteName == "" {
		cfg.SiteName = "Wikipedia"
	}
	if cfg.Origin == "" {
		cfg.Origin = "https://en.wikipedia.org"
	}
	cfg.Origin = strings.TrimSuffix(cfg.Origin, "/")
	if cfg.ArticlePrefix == "" {
		cfg.ArticlePrefix = "/wiki"
	}
	if cfg.TargetURL == "" {
		cfg.TargetURL = cfg.Origin + cfg.ArticlePrefix + "/Philosophy"
	}
	if cfg.MaxHops == 0 {
		cfg.MaxHops = 100
	}
	if cfg.RequestTimeoutMs == 0 {
		cfg.RequestTimeoutMs = 10000
	}
	if cfg.RetryDelayMs == 0 {
		cfg.RetryDelayMs = 250
	}
	if cfg.RetryMaxDelayMs == 0 {
		cfg.RetryMaxDelayMs = 10000
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = fmt.Sprintf("wikihops/%s (+https://github.com/alvmarrod/wiki-hops)", version.Version)
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
}

// validate checks that required fields are present and values are sensible
func validate(cfg *Config) error {
	if !strings.HasPrefix(cfg.Origin, "http://") && !strings.HasPrefix(cfg.Origin, "https://") {
		return fmt.Errorf("origin must be an http(s) URL, got %q", cfg.Origin)
	}
	if !strings.HasPrefix(cfg.ArticlePrefix, "/") {
		return fmt.Errorf("article_prefix must start with '/', got %q", cfg.ArticlePrefix)
	}
	if !strings.HasPrefix(cfg.TargetURL, cfg.StartPrefix()) {
		return fmt.Errorf("target_url %q is outside %s", cfg.TargetURL, cfg.StartPrefix())
	}
	if cfg.MaxHops < 1 {
		return fmt.Errorf("max_hops must be >= 1")
	}
	if cfg.RequestTimeoutMs < 100 {
		return fmt.Errorf("request_timeout_ms must be >= 100")
	}
	if cfg.RetryAttempts < 0 {
		return fmt.Errorf("retry_attempts must be >= 0 (0 retries forever)")
	}
	if cfg.RetryDelayMs < 0 || cfg.RetryMaxDelayMs < 0 {
		return fmt.Errorf("retry delays must be >= 0")
	}
	if cfg.RetryMaxDelayMs < cfg.RetryDelayMs {
		return fmt.Errorf("retry_max_delay_ms must be >= retry_delay_ms")
	}

	cfg.exclusions = cfg.exclusions[:0]
	for _, pattern := range cfg.ExcludePatterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return fmt.Errorf("bad exclude pattern %q: %w", pattern, err)
		}
		cfg.exclusions = append(cfg.exclusions, re)
	}
	return nil
}

// StartPrefix is the origin joined with the article path marker
func (c *Config) StartPrefix() string {
	return c.Origin + c.ArticlePrefix
}

// ValidateStart reports whether startURL may seed a search
func (c *Config) ValidateStart(startURL string) error {
	if !strings.HasPrefix(startURL, c.StartPrefix()) {
		return fmt.Errorf("%w: %s", ErrInvalidStart, startURL)
	}
	return nil
}

// Exclusions returns the compiled exclude_patterns
func (c *Config) Exclusions() []*regexp.Regexp {
	return c.exclusions
}

// RequestTimeout returns the per-attempt HTTP timeout
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutMs) * time.Millisecond
}

// RetryDelay returns the initial backoff between fetch attempts
func (c *Config) RetryDelay() time.Duration {
	return time.Duration(c.RetryDelayMs) * time.Millisecond
}

// RetryMaxDelay returns the backoff ceiling
func (c *Config) RetryMaxDelay() time.Duration {
	return time.Duration(c.RetryMaxDelayMs) * time.Millisecond
}

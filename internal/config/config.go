// Package config handles loading and validating the application configuration
// from YAML files with environment variable substitution.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/infinitidrive/infiniti-drive/pkg/logger"
)

// Config is the top-level application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	CMS       CMSConfig       `yaml:"cms"`
	Enquiry   EnquiryConfig   `yaml:"enquiry"`
	Catalogue CatalogueConfig `yaml:"catalogue"`
	Site      SiteConfig      `yaml:"site"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// ServerConfig defines the Echo HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// Addr returns the listen address.
func (s *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// CMSConfig defines where listings are read from and how often.
type CMSConfig struct {
	BaseURL         string          `yaml:"base_url"`
	ListingsPath    string          `yaml:"listings_path"`
	APIToken        string          `yaml:"api_token"`
	PageSize        int             `yaml:"page_size"`
	MaxPages        int             `yaml:"max_pages"`
	RefreshInterval time.Duration   `yaml:"refresh_interval"`
	FetchTimeout    time.Duration   `yaml:"fetch_timeout"`
	RateLimit       RateLimitConfig `yaml:"rate_limit"`
}

// RateLimitConfig defines CMS request rate limiting settings.
type RateLimitConfig struct {
	PerSecond float64 `yaml:"per_second"`
	Burst     int     `yaml:"burst"`
}

// EnquiryConfig defines contact form delivery.
type EnquiryConfig struct {
	Backend     string        `yaml:"backend"` // webhook, discord, noop
	WebhookURL  string        `yaml:"webhook_url"`
	ListingURL  string        `yaml:"listing_url"` // discord only, e.g. https://infinitidrive.com/bikes/%s
	Token       string        `yaml:"token"`
	QueueSize   int           `yaml:"queue_size"`
	Workers     int           `yaml:"workers"`
	Timeout     time.Duration `yaml:"timeout"`
	MaxAttempts int           `yaml:"max_attempts"`
	RetryDelay  time.Duration `yaml:"retry_delay"`
}

// CatalogueConfig defines catalogue presentation settings.
type CatalogueConfig struct {
	FeaturedCount int `yaml:"featured_count"`
}

// SiteConfig holds the dealership details shown on the about and contact pages.
type SiteConfig struct {
	Name    string            `yaml:"name"    json:"name"`
	Tagline string            `yaml:"tagline" json:"tagline,omitempty"`
	Phones  []string          `yaml:"phones"  json:"phones"`
	Emails  []string          `yaml:"emails"  json:"emails"`
	Address string            `yaml:"address" json:"address,omitempty"`
	Hours   []string          `yaml:"hours"   json:"hours"`
	Social  map[string]string `yaml:"social"  json:"social,omitempty"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// Load reads and parses a YAML config file, performing environment variable
// substitution and validation. A .env file next to the config file, if
// present, is loaded first; variables already set in the environment win.
func Load(path string) (*Config, error) {
	if err := loadDotEnv(filepath.Join(filepath.Dir(path), ".env")); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables in the YAML content.
	expanded := os.ExpandEnv(string(data))

	cfg := &Config{}
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func loadDotEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

func applyDefaults(cfg *Config) {
	applyServerDefaults(&cfg.Server)
	applyCMSDefaults(&cfg.CMS)
	applyEnquiryDefaults(&cfg.Enquiry)
	applyCatalogueDefaults(&cfg.Catalogue)
	applySiteDefaults(&cfg.Site)
	applyLoggingDefaults(&cfg.Logging)
}

func applyServerDefaults(s *ServerConfig) {
	if s.Host == "" {
		s.Host = "0.0.0.0"
	}
	if s.Port == 0 {
		s.Port = 8080
	}
	if s.ReadTimeout == 0 {
		s.ReadTimeout = 30 * time.Second
	}
	if s.WriteTimeout == 0 {
		s.WriteTimeout = 30 * time.Second
	}
	if s.ShutdownTimeout == 0 {
		s.ShutdownTimeout = 15 * time.Second
	}
}

func applyCMSDefaults(c *CMSConfig) {
	if c.ListingsPath == "" {
		c.ListingsPath = "/api/bikes"
	}
	if c.PageSize == 0 {
		c.PageSize = 100
	}
	if c.MaxPages == 0 {
		c.MaxPages = 20
	}
	if c.RefreshInterval == 0 {
		c.RefreshInterval = 5 * time.Minute
	}
	if c.FetchTimeout == 0 {
		c.FetchTimeout = 30 * time.Second
	}
	applyRateLimitDefaults(&c.RateLimit)
}

func applyRateLimitDefaults(r *RateLimitConfig) {
	if r.PerSecond == 0 {
		r.PerSecond = 5.0
	}
	if r.Burst == 0 {
		r.Burst = 5
	}
}

func applyEnquiryDefaults(e *EnquiryConfig) {
	if e.Backend == "" {
		if e.WebhookURL != "" {
			e.Backend = "webhook"
		} else {
			e.Backend = "noop"
		}
	}
	if e.QueueSize == 0 {
		e.QueueSize = 64
	}
	if e.Workers == 0 {
		e.Workers = 1
	}
	if e.Timeout == 0 {
		e.Timeout = 15 * time.Second
	}
	if e.MaxAttempts == 0 {
		e.MaxAttempts = 3
	}
	if e.RetryDelay == 0 {
		e.RetryDelay = 2 * time.Second
	}
}

func applyCatalogueDefaults(c *CatalogueConfig) {
	if c.FeaturedCount == 0 {
		c.FeaturedCount = 3
	}
}

func applySiteDefaults(s *SiteConfig) {
	if s.Name == "" {
		s.Name = "Infiniti Drive"
	}
	if s.Phones == nil {
		s.Phones = []string{}
	}
	if s.Emails == nil {
		s.Emails = []string{}
	}
	if s.Hours == nil {
		s.Hours = []string{}
	}
}

func applyLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = "info"
	}
	if l.Format == "" {
		l.Format = "text"
	}
}

func validate(cfg *Config) error {
	var errs []error

	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port must be between 1 and 65535 (got %d)", cfg.Server.Port))
	}

	if cfg.CMS.BaseURL == "" {
		errs = append(errs, fmt.Errorf("cms.base_url is required"))
	} else if !isHTTPURL(cfg.CMS.BaseURL) {
		errs = append(errs, fmt.Errorf("cms.base_url must be an absolute http(s) URL (got %q)", cfg.CMS.BaseURL))
	}
	if cfg.CMS.PageSize < 0 {
		errs = append(errs, fmt.Errorf("cms.page_size must not be negative"))
	}
	if cfg.CMS.RefreshInterval < time.Second {
		errs = append(errs, fmt.Errorf("cms.refresh_interval must be at least 1s (got %s)", cfg.CMS.RefreshInterval))
	}

	switch cfg.Enquiry.Backend {
	case "webhook", "discord":
		if cfg.Enquiry.WebhookURL == "" {
			errs = append(
				errs,
				fmt.Errorf("enquiry.webhook_url is required when backend is %s", cfg.Enquiry.Backend),
			)
		} else if !isHTTPURL(cfg.Enquiry.WebhookURL) {
			errs = append(
				errs,
				fmt.Errorf("enquiry.webhook_url must be an absolute http(s) URL (got %q)", cfg.Enquiry.WebhookURL),
			)
		}
	case "noop":
	default:
		errs = append(
			errs,
			fmt.Errorf("enquiry.backend must be one of: webhook, discord, noop (got %q)", cfg.Enquiry.Backend),
		)
	}

	if cfg.Catalogue.FeaturedCount < 0 {
		errs = append(errs, fmt.Errorf("catalogue.featured_count must not be negative"))
	}

	if !logger.ValidLevel(cfg.Logging.Level) {
		errs = append(errs, fmt.Errorf("logging.level must be one of: debug, info, warn, error (got %q)", cfg.Logging.Level))
	}
	if !logger.ValidFormat(cfg.Logging.Format) {
		errs = append(errs, fmt.Errorf("logging.format must be one of: text, json (got %q)", cfg.Logging.Format))
	}

	return errors.Join(errs...)
}

func isHTTPURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

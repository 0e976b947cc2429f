// Package config loads the portal's settings from an optional YAML file,
// a .env file and the process environment, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	yaml "gopkg.in/yaml.v3"
)

const (
	defaultServerAddr     = ":3000"
	defaultAuthBaseURL    = "http://localhost:8001"
	defaultRequestTimeout = 10 * time.Second
	defaultRateLimit      = 10
	defaultFlowIdleTTL    = 30 * time.Minute
	defaultLanguage       = "pt-BR"
	devSessionSecret      = "insecure-development-session-secret"
)

// Provider exposes configuration to the rest of the application.
type Provider interface {
	GetServerAddr() string
	GetAuthBaseURL() string
	GetRequestTimeout() time.Duration
	GetConfirmPrecheck() bool
	GetRateLimit() int
	GetFlowIdleTTL() time.Duration
	GetSessionSecret() string
	GetLanguage() string
}

// Config holds all configuration for the application.
type Config struct {
	ServerAddr      string        `yaml:"server_addr"`
	AuthBaseURL     string        `yaml:"auth_base_url"`
	RequestTimeout  time.Duration `yaml:"request_timeout"`
	ConfirmPrecheck bool          `yaml:"confirm_precheck"`
	RateLimit       int           `yaml:"rate_limit"`
	FlowIdleTTL     time.Duration `yaml:"flow_idle_ttl"`
	SessionSecret   string        `yaml:"session_secret"`
	Language        string        `yaml:"language"`
}

func defaults() *Config {
	return &Config{
		ServerAddr:     defaultServerAddr,
		AuthBaseURL:    defaultAuthBaseURL,
		RequestTimeout: defaultRequestTimeout,
		RateLimit:      defaultRateLimit,
		FlowIdleTTL:    defaultFlowIdleTTL,
		Language:       defaultLanguage,
	}
}

// New loads configuration. A missing .env file is not an error; a missing
// CONFIG_FILE is.
func New() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file found, relying on environment variables")
	}

	cfg := defaults()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.loadEnv(); err != nil {
		return nil, err
	}
	if cfg.SessionSecret == "" {
		slog.Warn("SESSION_SECRET is not set, using an insecure development secret")
		cfg.SessionSecret = devSessionSecret
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("open config file: %w", err)
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(c); err != nil {
		return fmt.Errorf("decode config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) loadEnv() error {
	if v := os.Getenv("SERVER_ADDR"); v != "" {
		c.ServerAddr = v
	}
	if v := os.Getenv("AUTH_BASE_URL"); v != "" {
		c.AuthBaseURL = v
	}
	if v := os.Getenv("SESSION_SECRET"); v != "" {
		c.SessionSecret = v
	}
	if v := os.Getenv("APP_LANGUAGE"); v != "" {
		c.Language = v
	}

	var err error
	if v := os.Getenv("AUTH_REQUEST_TIMEOUT"); v != "" {
		if c.RequestTimeout, err = time.ParseDuration(v); err != nil {
			return fmt.Errorf("AUTH_REQUEST_TIMEOUT: %w", err)
		}
	}
	if v := os.Getenv("FLOW_IDLE_TTL"); v != "" {
		if c.FlowIdleTTL, err = time.ParseDuration(v); err != nil {
			return fmt.Errorf("FLOW_IDLE_TTL: %w", err)
		}
	}
	if v := os.Getenv("AUTH_CONFIRM_PRECHECK"); v != "" {
		if c.ConfirmPrecheck, err = strconv.ParseBool(v); err != nil {
			return fmt.Errorf("AUTH_CONFIRM_PRECHECK: %w", err)
		}
	}
	if v := os.Getenv("AUTH_RATE_LIMIT"); v != "" {
		if c.RateLimit, err = strconv.Atoi(v); err != nil {
			return fmt.Errorf("AUTH_RATE_LIMIT: %w", err)
		}
	}
	return nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	u, err := url.Parse(c.AuthBaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("auth base url %q must be an absolute http(s) url", c.AuthBaseURL)
	}
	if c.RequestTimeout <= 0 {
		return errors.New("request timeout must be positive")
	}
	if c.FlowIdleTTL <= 0 {
		return errors.New("flow idle ttl must be positive")
	}
	if c.RateLimit <= 0 {
		return errors.New("rate limit must be positive")
	}
	if c.ServerAddr == "" {
		return errors.New("server address is required")
	}
	return nil
}

func (c *Config) GetServerAddr() string            { return c.ServerAddr }
func (c *Config) GetAuthBaseURL() string           { return c.AuthBaseURL }
func (c *Config) GetRequestTimeout() time.Duration { return c.RequestTimeout }
func (c *Config) GetConfirmPrecheck() bool         { return c.ConfirmPrecheck }
func (c *Config) GetRateLimit() int                { return c.RateLimit }
func (c *Config) GetFlowIdleTTL() time.Duration    { return c.FlowIdleTTL }
func (c *Config) GetSessionSecret() string         { return c.SessionSecret }
func (c *Config) GetLanguage() string              { return c.Language }

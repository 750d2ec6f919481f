// Package config provides configuration loading and validation for the CLI and backend service.
package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/jonathan/resume-studio/internal/types"
)

// Defaults applied by MergeWithDefaults when a field is unset.
const (
	DefaultAPIURL         = "http://localhost:8000/api"
	DefaultPort           = 8000
	DefaultRequestTimeout = 30
)

// Config represents the configuration that can be loaded from a JSON file.
// All fields are optional; environment variables override file values.
type Config struct {
	// Client
	APIURL string `json:"api_url,omitempty"` // Base URL of the backend collaborator
	Token  string `json:"token,omitempty"`   // Bearer token attached to every backend call
	UserID string `json:"user_id,omitempty"` // Owner UUID used when listing résumés

	// Behavior
	RequestTimeoutSeconds int                `json:"request_timeout_seconds,omitempty"` // Per-request timeout for backend calls
	DefaultTemplate       types.TemplateName `json:"default_template,omitempty"`        // Template for new documents

	// Backend service
	Port        int    `json:"port,omitempty"`         // Port for `serve`
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL
	APIKey      string `json:"api_key,omitempty"`      // Gemini API key
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Load reads the optional config file, overlays environment variables and fills defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	cfg.ApplyEnv()
	merged := cfg.MergeWithDefaults(Config{})
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return &merged, nil
}

// ApplyEnv overrides fields with any non-empty environment variables.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("RESUME_STUDIO_API_URL"); v != "" {
		c.APIURL = v
	}
	if v := os.Getenv("RESUME_STUDIO_TOKEN"); v != "" {
		c.Token = v
	}
	if v := os.Getenv("RESUME_STUDIO_USER_ID"); v != "" {
		c.UserID = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.DatabaseURL = v
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		c.APIKey = v
	}
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Port = port
		}
	}
	if v := os.Getenv("RESUME_STUDIO_REQUEST_TIMEOUT"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil {
			c.RequestTimeoutSeconds = secs
		}
	}
}

// Validate checks that the configuration has valid values.
// Required fields are checked by the command that needs them.
func (c *Config) Validate() error {
	if c.RequestTimeoutSeconds < 0 {
		return fmt.Errorf("config error: 'request_timeout_seconds' must be non-negative")
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' out of range: %d", c.Port)
	}
	if c.APIURL != "" {
		u, err := url.Parse(c.APIURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("config error: 'api_url' is not an absolute URL: %s", c.APIURL)
		}
	}
	switch c.DefaultTemplate {
	case "", types.TemplateModern, types.TemplateClassic, types.TemplateMinimal, types.TemplateProfessional:
	default:
		return fmt.Errorf("config error: unknown 'default_template': %s", c.DefaultTemplate)
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults,
// then from the package defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.APIURL == "" {
		result.APIURL = defaults.APIURL
	}
	if result.Token == "" {
		result.Token = defaults.Token
	}
	if result.UserID == "" {
		result.UserID = defaults.UserID
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.DefaultTemplate == "" {
		result.DefaultTemplate = defaults.DefaultTemplate
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.RequestTimeoutSeconds == 0 {
		result.RequestTimeoutSeconds = defaults.RequestTimeoutSeconds
	}

	if result.APIURL == "" {
		result.APIURL = DefaultAPIURL
	}
	if result.Port == 0 {
		result.Port = DefaultPort
	}
	if result.RequestTimeoutSeconds == 0 {
		result.RequestTimeoutSeconds = DefaultRequestTimeout
	}
	result.DefaultTemplate = result.DefaultTemplate.OrDefault()

	return result
}

// RequestTimeout returns the per-request timeout as a duration.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

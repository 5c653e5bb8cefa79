// Package config loads sitekit settings from a YAML file and SITEKIT_*
// environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file read when --config is not given.
const DefaultPath = "sitekit.yaml"

// EnvPrefix prefixes every environment override.
const EnvPrefix = "SITEKIT_"

// Supabase configures the hosted database REST check.
type Supabase struct {
	URL   string `yaml:"url"`
	Key   string `yaml:"key"`
	Table string `yaml:"table"`
	Limit int    `yaml:"limit"`
}

// OTP configures the serverless OTP endpoint check.
type OTP struct {
	URL   string `yaml:"url"`
	Email string `yaml:"email"`
}

// Inject configures script tag injection.
type Inject struct {
	Marker  string   `yaml:"marker"`
	Scripts []string `yaml:"scripts"`
}

// HTTP configures outbound requests.
type HTTP struct {
	Timeout time.Duration `yaml:"timeout"`
}

// Config is the full sitekit configuration.
type Config struct {
	Supabase Supabase `yaml:"supabase"`
	OTP      OTP      `yaml:"otp"`
	Inject   Inject   `yaml:"inject"`
	HTTP     HTTP     `yaml:"http"`
}

// Default returns the built-in configuration. Endpoint URLs and keys have no
// defaults and must come from the file or environment.
func Default() Config {
	return Config{
		Supabase: Supabase{
			Table: "verification_codes",
			Limit: 5,
		},
		OTP: OTP{
			Email: "test_verification@example.com",
		},
		Inject: Inject{
			Marker:  "pwa-install.js",
			Scripts: []string{"/pwa-install.js", "/pwa-update.js"},
		},
		HTTP: HTTP{
			Timeout: 10 * time.Second,
		},
	}
}

// Load reads the YAML file at path on top of Default, then applies
// environment overrides. A missing file is only an error when required is
// true, so the default path can be optional.
func Load(path string, required bool) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path) // #nosec G304 - User-specified config path
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
			}
		case errors.Is(err, fs.ErrNotExist) && !required:
		default:
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// applyEnv overrides fields from SITEKIT_* variables.
func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	strs := map[string]*string{
		"SUPABASE_URL":   &c.Supabase.URL,
		"SUPABASE_KEY":   &c.Supabase.Key,
		"SUPABASE_TABLE": &c.Supabase.Table,
		"OTP_URL":        &c.OTP.URL,
		"OTP_EMAIL":      &c.OTP.Email,
		"INJECT_MARKER":  &c.Inject.Marker,
	}
	for name, dst := range strs {
		if v, ok := lookup(EnvPrefix + name); ok {
			*dst = v
		}
	}

	if v, ok := lookup(EnvPrefix + "SUPABASE_LIMIT"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %sSUPABASE_LIMIT %q: %w", EnvPrefix, v, err)
		}
		c.Supabase.Limit = n
	}
	if v, ok := lookup(EnvPrefix + "HTTP_TIMEOUT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %sHTTP_TIMEOUT %q: %w", EnvPrefix, v, err)
		}
		c.HTTP.Timeout = d
	}
	if v, ok := lookup(EnvPrefix + "INJECT_SCRIPTS"); ok {
		c.Inject.Scripts = splitList(v)
	}
	return nil
}

// Validate checks values that have no sensible fallback. Endpoint URLs are
// checked by the commands that need them.
func (c *Config) Validate() error {
	if c.Supabase.Limit < 1 {
		return fmt.Errorf("supabase.limit must be at least 1, got %d", c.Supabase.Limit)
	}
	if c.HTTP.Timeout <= 0 {
		return fmt.Errorf("http.timeout must be positive, got %s", c.HTTP.Timeout)
	}
	if strings.TrimSpace(c.Inject.Marker) == "" {
		return fmt.Errorf("inject.marker cannot be empty")
	}
	if len(c.Inject.Scripts) == 0 {
		return fmt.Errorf("inject.scripts cannot be empty")
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

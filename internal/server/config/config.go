// Package config handles configuration for the preview server, including
// defaults, environment, JSON overlay, and command-line flags.
package config

import (
	"fmt"
	"net/url"
	"os"
	"time"
)

// Config holds runtime settings for the folio preview server.
//
// Fields:
//   - ListenAddr: bind address for the HTTP listener.
//   - APIBaseURL: portfolio service the pages are fetched from.
//   - RequestTimeout: per-request timeout towards the portfolio service.
//   - ShutdownTimeout: how long in-flight requests may finish on shutdown.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	ListenAddr      string
	APIBaseURL      string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
	LogLevel        string
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.ListenAddr = ":8081"
	c.APIBaseURL = "http://127.0.0.1:8080/api"
	c.RequestTimeout = 10 * time.Second
	c.ShutdownTimeout = 15 * time.Second
	c.LogLevel = "info"
}

func (c *Config) Validate() error {
	if c.ListenAddr == "" {
		return fmt.Errorf("listen address is required")
	}
	u, err := url.Parse(c.APIBaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid api base url %q", c.APIBaseURL)
	}
	return nil
}

// LoadConfig builds a Config by applying defaults, then the environment,
// then an optional JSON file and finally command-line flags.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseEnv(cfg, os.LookupEnv); err != nil {
		return nil, err
	}
	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

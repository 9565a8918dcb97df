package config

import (
	"fmt"
	"net/url"
	"os"
	"time"
)

// Upload backends.
const (
	UploadNone = "none"
	UploadHTTP = "http"
	UploadS3   = "s3"
)

// UploadConfig selects and configures the image host.
type UploadConfig struct {
	Backend       string `json:"backend"`
	Endpoint      string `json:"endpoint"`
	Preset        string `json:"preset"`
	S3Bucket      string `json:"s3_bucket"`
	S3Region      string `json:"s3_region"`
	S3Endpoint    string `json:"s3_endpoint"`
	S3AccessKey   string `json:"s3_access_key"`
	S3SecretKey   string `json:"s3_secret_key"`
	PublicBaseURL string `json:"public_base_url"`
}

// Config holds runtime settings for the folio CLI.
//
// Units: intervals and timeouts are time.Duration; flags take whole seconds.
type Config struct {
	APIBaseURL          string
	PortfolioID         string
	Admin               bool
	DatabasePath        string
	OnlineCheckInterval time.Duration
	RequestTimeout      time.Duration
	RequestsPerSecond   float64
	RequestBurst        int
	LogLevel            string
	Upload              UploadConfig
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://127.0.0.1:8080/api"
	c.DatabasePath = "folio.db"
	c.OnlineCheckInterval = 5 * time.Second
	c.RequestTimeout = 10 * time.Second
	c.RequestsPerSecond = 5
	c.RequestBurst = 5
	c.LogLevel = "warn"
	c.Upload = UploadConfig{Backend: UploadNone, S3Region: "us-east-1"}
}

// Validate checks the settings that cannot be fixed later at runtime. The
// portfolio id is not checked here: a missing id is reported on the page.
func (c *Config) Validate() error {
	u, err := url.Parse(c.APIBaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid api base url %q", c.APIBaseURL)
	}
	if c.OnlineCheckInterval <= 0 {
		return fmt.Errorf("online check interval must be positive")
	}
	switch c.Upload.Backend {
	case UploadNone:
	case UploadHTTP:
		if c.Upload.Endpoint == "" {
			return fmt.Errorf("upload backend %q requires an endpoint", c.Upload.Backend)
		}
	case UploadS3:
		if c.Upload.S3Bucket == "" || c.Upload.PublicBaseURL == "" {
			return fmt.Errorf("upload backend %q requires a bucket and a public base url", c.Upload.Backend)
		}
	default:
		return fmt.Errorf("unknown upload backend %q", c.Upload.Backend)
	}
	return nil
}

// LoadConfig constructs a Config from defaults, then the environment (after
// loading .env), then the JSON file given with -c/-config, then flags. Later
// sources take precedence over earlier ones.
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

package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/folio/internal/flagx"
	"github.com/dmitrijs2005/folio/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Absent fields
// keep the values from earlier sources. Intervals may be strings like "3s"
// or integer nanoseconds (see timex.Duration).
type JsonConfig struct {
	APIBaseURL          *string         `json:"api_base_url"`
	PortfolioID         *string         `json:"portfolio_id"`
	Admin               *bool           `json:"admin"`
	DatabasePath        *string         `json:"database_path"`
	OnlineCheckInterval *timex.Duration `json:"online_check_interval"`
	RequestTimeout      *timex.Duration `json:"request_timeout"`
	RequestsPerSecond   *float64        `json:"requests_per_second"`
	RequestBurst        *int            `json:"request_burst"`
	LogLevel            *string         `json:"log_level"`
	Upload              *UploadConfig   `json:"upload"`
}

// parseJson overlays cfg with the JSON file named by -c or -config. Without
// either flag nothing is loaded.
func parseJson(cfg *Config, args []string) error {
	path := flagx.JsonConfigFlags(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	set(&cfg.APIBaseURL, jc.APIBaseURL)
	set(&cfg.PortfolioID, jc.PortfolioID)
	set(&cfg.Admin, jc.Admin)
	set(&cfg.DatabasePath, jc.DatabasePath)
	if jc.OnlineCheckInterval != nil {
		cfg.OnlineCheckInterval = jc.OnlineCheckInterval.Duration
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	set(&cfg.RequestsPerSecond, jc.RequestsPerSecond)
	set(&cfg.RequestBurst, jc.RequestBurst)
	set(&cfg.LogLevel, jc.LogLevel)
	if jc.Upload != nil {
		cfg.Upload = *jc.Upload
	}
	return nil
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

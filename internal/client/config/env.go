package config

import (
	"github.com/dmitrijs2005/folio/internal/envx"
)

// parseEnv overlays cfg with FOLIO_* variables. A .env file in the working
// directory is loaded first and never overrides the real environment.
func parseEnv(cfg *Config, lookup envx.LookupFunc) error {
	if err := envx.LoadDotEnv(); err != nil {
		return err
	}

	r := envx.NewReader(lookup)
	r.String("FOLIO_API_URL", &cfg.APIBaseURL)
	r.String("FOLIO_PORTFOLIO_ID", &cfg.PortfolioID)
	r.Bool("FOLIO_ADMIN", &cfg.Admin)
	r.String("FOLIO_DB", &cfg.DatabasePath)
	r.Duration("FOLIO_ONLINE_CHECK_INTERVAL", &cfg.OnlineCheckInterval)
	r.Duration("FOLIO_REQUEST_TIMEOUT", &cfg.RequestTimeout)
	r.Float("FOLIO_RPS", &cfg.RequestsPerSecond)
	r.Int("FOLIO_BURST", &cfg.RequestBurst)
	r.String("FOLIO_LOG_LEVEL", &cfg.LogLevel)

	r.String("FOLIO_UPLOAD_BACKEND", &cfg.Upload.Backend)
	r.String("FOLIO_UPLOAD_ENDPOINT", &cfg.Upload.Endpoint)
	r.String("FOLIO_UPLOAD_PRESET", &cfg.Upload.Preset)
	r.String("FOLIO_S3_BUCKET", &cfg.Upload.S3Bucket)
	r.String("FOLIO_S3_REGION", &cfg.Upload.S3Region)
	r.String("FOLIO_S3_ENDPOINT", &cfg.Upload.S3Endpoint)
	r.String("FOLIO_S3_ACCESS_KEY", &cfg.Upload.S3AccessKey)
	r.String("FOLIO_S3_SECRET_KEY", &cfg.Upload.S3SecretKey)
	r.String("FOLIO_S3_PUBLIC_URL", &cfg.Upload.PublicBaseURL)

	return r.Err()
}

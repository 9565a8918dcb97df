package config

import "github.com/dmitrijs2005/folio/internal/envx"

func parseEnv(cfg *Config, lookup envx.LookupFunc) error {
	if err := envx.LoadDotEnv(); err != nil {
		return err
	}

	r := envx.NewReader(lookup)
	r.String("FOLIO_SERVER_ADDR", &cfg.ListenAddr)
	r.String("FOLIO_API_URL", &cfg.APIBaseURL)
	r.Duration("FOLIO_REQUEST_TIMEOUT", &cfg.RequestTimeout)
	r.Duration("FOLIO_SHUTDOWN_TIMEOUT", &cfg.ShutdownTimeout)
	r.String("FOLIO_LOG_LEVEL", &cfg.LogLevel)
	return r.Err()
}

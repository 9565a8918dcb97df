package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/folio/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-a string    portfolio service base URL
//	-id string   portfolio id
//	-admin       request the admin session; accepts -admin=true|yes|1|on|false|no|0|off
//	-db string   path of the local SQLite database
//	-i int       online check interval (seconds)
//	-t int       request timeout (seconds)
//	-l string    log level (debug, info, warn, error)
//	-u string    upload backend (none, http, s3)
//
// Only these flags are seen by the flag set; everything else in args is
// filtered out with flagx.FilterArgs.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-id", "-db", "-i", "-t", "-l", "-u"}, "-admin")

	fs := flag.NewFlagSet("folio", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "portfolio service base URL")
	fs.StringVar(&cfg.PortfolioID, "id", cfg.PortfolioID, "portfolio id")
	fs.Var(flagx.BoolValue{Target: &cfg.Admin}, "admin", "request admin access")
	fs.StringVar(&cfg.DatabasePath, "db", cfg.DatabasePath, "local database path")
	interval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.Upload.Backend, "u", cfg.Upload.Backend, "upload backend")

	if err := fs.Parse(args); err != nil {
		return err
	}

	// Durations set elsewhere keep their precision unless the flag was given.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "i":
			cfg.OnlineCheckInterval = time.Duration(*interval) * time.Second
		case "t":
			cfg.RequestTimeout = time.Duration(*timeout) * time.Second
		}
	})
	return nil
}

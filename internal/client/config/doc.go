// Package config loads runtime configuration for the folio CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment: a .env file in the working directory is loaded first, then
//     FOLIO_* variables are read (see parseEnv).
//  3. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   portfolio service base URL
//	-id string  portfolio id
//	-admin      request the admin session
//	-db string  local SQLite database path
//	-i int      online status check interval (seconds)
//	-t int      request timeout (seconds)
//	-l string   log level
//	-u string   upload backend (none, http, s3)
//
// # JSON schema
//
// Intervals can be strings like "3s" or integer nanoseconds:
//
//	{
//	  "api_base_url": "https://folio.example/api",
//	  "portfolio_id": "abc123",
//	  "admin": true,
//	  "online_check_interval": "5s",
//	  "request_timeout": "10s",
//	  "upload": {"backend": "s3", "s3_bucket": "folio", "public_base_url": "https://cdn.example"}
//	}
package config

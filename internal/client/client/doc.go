// Package client talks to the portfolio service and bootstraps the local
// client database.
//
// # Overview
//
// The package provides:
//  1. The transport-agnostic API contract (see Client): FetchPortfolio,
//     UpdatePortfolio, AuthenticateAdmin and Ping.
//  2. An HTTP/JSON implementation (see HTTPClient) that throttles outgoing
//     requests, attaches the admin bearer token to updates, and maps transport
//     failures and HTTP status codes to sentinel errors.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations): an SQLite
//     database with embedded goose migrations, used by the token store.
//
// # Error Handling
//
// Conditions are exposed as sentinel errors matched with errors.Is:
// ErrUnavailable, ErrUnauthorized, ErrNotFound. Server-reported failures are
// returned as *APIError, which carries the server message verbatim; use
// Message to pick the text shown to the user.
//
// All operations accept a context.Context and honor cancellation.
package client

// Package common contains constants and errors shared by the folio client
// packages.
package common

const (
	// AuthorizationHeader carries the admin bearer token on update calls.
	AuthorizationHeader = "Authorization"
	// BearerScheme prefixes the token in AuthorizationHeader.
	BearerScheme = "Bearer "
)

// Keys of the local metadata table.
const (
	MetadataTokenKey       = "admin_token"
	MetadataPortfolioIDKey = "admin_portfolio_id"
	MetadataSavedAtKey     = "admin_token_saved_at"
)

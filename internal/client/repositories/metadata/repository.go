// Package metadata is the key/value table of the local client database. The
// token store keeps the admin session in it.
package metadata

import "context"

type Repository interface {
	Set(ctx context.Context, key, value string) error
	// Delete removes the given keys; absent keys are ignored.
	Delete(ctx context.Context, keys ...string) error
	List(ctx context.Context) (map[string]string, error)
}

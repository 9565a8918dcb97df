// Package tokens persists the admin edit token between runs.
//
// The store holds at most one token. It is written after a successful
// credential exchange and removed only on logout or when the server rejects
// it; it is never refreshed or checked for expiry here.
package tokens

import (
	"context"
	"time"
)

// Info is the stored admin session. An empty Token means no session.
type Info struct {
	Token       string
	PortfolioID string
	SavedAt     time.Time
}

func (i Info) Present() bool { return i.Token != "" }

type Store interface {
	Load(ctx context.Context) (Info, error)
	Save(ctx context.Context, token, portfolioID string) error
	Clear(ctx context.Context) error
}

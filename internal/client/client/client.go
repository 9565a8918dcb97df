package client

import (
	"context"

	"github.com/dmitrijs2005/folio/internal/client/models"
)

// Client is the portfolio service API.
type Client interface {
	// FetchPortfolio reads a record; it sends no credentials.
	FetchPortfolio(ctx context.Context, id string) (*models.Portfolio, error)
	// UpdatePortfolio sends only the fields present in update.
	UpdatePortfolio(ctx context.Context, id string, update models.PortfolioUpdate, token string) (*models.Portfolio, error)
	// AuthenticateAdmin exchanges an admin password for an edit token. The
	// returned envelope is the server's verdict; callers decide whether it
	// grants access.
	AuthenticateAdmin(ctx context.Context, id, password string) (*models.Response[models.AdminAuthData], error)
	Ping(ctx context.Context) error
}

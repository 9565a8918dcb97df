package services

import (
	"context"

	"github.com/dmitrijs2005/folio/internal/client/client"
	"github.com/dmitrijs2005/folio/internal/client/models"
)

// fakeClient implements client.Client for the service tests.
type fakeClient struct {
	AuthResp *models.Response[models.AdminAuthData]
	AuthErr  error
	AuthCall int

	LastID       string
	LastPassword string
	LastUpdate   models.PortfolioUpdate
	LastToken    string

	Portfolio *models.Portfolio
	FetchErr  error
	UpdateErr error

	PingErr error
}

var _ client.Client = (*fakeClient)(nil)

func (f *fakeClient) FetchPortfolio(_ context.Context, id string) (*models.Portfolio, error) {
	f.LastID = id
	return f.Portfolio, f.FetchErr
}

func (f *fakeClient) UpdatePortfolio(_ context.Context, id string, u models.PortfolioUpdate, token string) (*models.Portfolio, error) {
	f.LastID, f.LastUpdate, f.LastToken = id, u, token
	return f.Portfolio, f.UpdateErr
}

func (f *fakeClient) AuthenticateAdmin(_ context.Context, id, password string) (*models.Response[models.AdminAuthData], error) {
	f.AuthCall++
	f.LastID, f.LastPassword = id, password
	return f.AuthResp, f.AuthErr
}

func (f *fakeClient) Ping(context.Context) error { return f.PingErr }

func strPtr(s string) *string { return &s }

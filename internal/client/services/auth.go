// Package services contains the application services of the folio client.
// This file defines the admin authentication service: the credential exchange
// and persisting the resulting edit token.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/folio/internal/client/client"
	"github.com/dmitrijs2005/folio/internal/client/tokens"
	"github.com/dmitrijs2005/folio/internal/logging"
)

const (
	MsgPasswordRequired = "Password is required"
	MsgAuthFailed       = "Authentication failed"
)

var ErrPasswordRequired = errors.New(MsgPasswordRequired)

// AuthResult is the outcome of a credential exchange. Message is set when
// access was not granted and is meant to be shown as is.
type AuthResult struct {
	Authorized bool
	Token      string
	Message    string
}

// AuthService exchanges the admin password for an edit token.
//
// Contract:
//   - Authenticate: an empty or whitespace password fails with
//     ErrPasswordRequired before any network call. Access is granted only when
//     the server answers success with edit_access and a token; the token is then
//     saved to the token store. A refusal is not an error: it is reported
//     through AuthResult.Message. Transport failures are returned as errors.
//   - Ping: check server liveness.
type AuthService interface {
	Authenticate(ctx context.Context, portfolioID, password string) (AuthResult, error)
	Ping(ctx context.Context) error
}

type authService struct {
	client client.Client
	store  tokens.Store
	log    logging.Logger
}

func NewAuthService(c client.Client, store tokens.Store, log logging.Logger) AuthService {
	if log == nil {
		log = logging.Nop()
	}
	return &authService{client: c, store: store, log: log}
}

func (a *authService) Authenticate(ctx context.Context, portfolioID, password string) (AuthResult, error) {
	password = strings.TrimSpace(password)
	if password == "" {
		return AuthResult{Message: MsgPasswordRequired}, ErrPasswordRequired
	}

	resp, err := a.client.AuthenticateAdmin(ctx, portfolioID, password)
	if err != nil {
		a.log.Warn(ctx, "admin authentication request failed", "id", portfolioID, "error", err)
		return AuthResult{Message: client.Message(err, MsgAuthFailed)}, fmt.Errorf("authenticate: %w", err)
	}

	if !resp.Success || !resp.Data.EditAccess || resp.Data.Token == nil || *resp.Data.Token == "" {
		msg := resp.Message
		if msg == "" {
			msg = MsgAuthFailed
		}
		a.log.Info(ctx, "admin access refused", "id", portfolioID)
		return AuthResult{Message: msg}, nil
	}

	token := *resp.Data.Token
	if err := a.store.Save(ctx, token, portfolioID); err != nil {
		return AuthResult{Message: MsgAuthFailed}, fmt.Errorf("save token: %w", err)
	}

	a.log.Info(ctx, "admin access granted", "id", portfolioID)
	return AuthResult{Authorized: true, Token: token}, nil
}

func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

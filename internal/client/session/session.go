// Package session holds the admin session state of the client: the stored
// edit token (Session) and the state machine that decides what the user may
// see and do (Controller).
package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/folio/internal/client/tokens"
)

var ErrNoToken = errors.New("Authentication token not found")

// Session is the admin session backed by the token store. Components that
// need the token receive the Session instead of reading the store.
type Session struct {
	store tokens.Store
}

func New(store tokens.Store) *Session {
	return &Session{store: store}
}

// Token returns the stored token or ErrNoToken.
func (s *Session) Token(ctx context.Context) (string, error) {
	info, err := s.store.Load(ctx)
	if err != nil {
		return "", fmt.Errorf("load session: %w", err)
	}
	if !info.Present() {
		return "", ErrNoToken
	}
	return info.Token, nil
}

func (s *Session) Authenticated(ctx context.Context) (bool, error) {
	info, err := s.store.Load(ctx)
	if err != nil {
		return false, fmt.Errorf("load session: %w", err)
	}
	return info.Present(), nil
}

func (s *Session) Info(ctx context.Context) (tokens.Info, error) {
	return s.store.Load(ctx)
}

// Invalidate forgets the token.
func (s *Session) Invalidate(ctx context.Context) error {
	if err := s.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

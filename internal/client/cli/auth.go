package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/folio/internal/client/services"
	"github.com/dmitrijs2005/folio/internal/client/session"
)

// getPassword is an indirection used to facilitate testing.
var getPassword = GetPassword

// Login prompts for the admin password and exchanges it for an edit token.
//
// A refusal or a validation failure is printed inline and the prompt stays
// available; it is not returned as an error. On success the page is shown.
func (a *App) Login(ctx context.Context) error {
	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}

	a.println("Verifying...")
	res, err := a.ctrl.Login(ctx, password)
	switch {
	case errors.Is(err, session.ErrBusy):
		a.println("Verification already in progress.")
		return nil
	case errors.Is(err, services.ErrPasswordRequired):
		a.println(res.Message)
		return nil
	case err != nil && res.Message != "":
		a.println(res.Message)
		return nil
	case err != nil:
		return err
	case !res.Authorized:
		a.println(res.Message)
		return nil
	}

	return a.Show(ctx)
}

// Logout forgets the admin token; the admin session is locked again.
func (a *App) Logout(ctx context.Context) error {
	return a.ctrl.Logout(ctx)
}

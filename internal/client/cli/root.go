package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/folio/internal/client/session"
)

// ErrLoadAborted is returned when the portfolio could not be loaded and the
// user declined to retry.
var ErrLoadAborted = errors.New("portfolio not loaded")

func (a *App) state() session.State { return a.ctrl.State() }

func (a *App) getStatus() string {
	s := a.ctrl.PortfolioID()
	if s == "" {
		s = "-"
	}
	s += " " + a.ctrl.State().String()
	if m := a.Mode(); m != "" {
		s += " " + string(m)
	}
	return fmt.Sprintf("(%s)", s)
}

// Root loads the portfolio, offers a retry on load errors, asks for the admin
// password when the admin session is locked, then runs the REPL until exit.
func (a *App) Root(ctx context.Context) error {
	a.println("Welcome to folio CLI (type 'help' for commands)")

	if err := a.load(ctx); err != nil {
		return err
	}

	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	switch a.ctrl.State() {
	case session.AdminUnauthenticated:
		a.println("Admin access required.")
		if err := a.Login(ctx); err != nil {
			a.println("error:", err)
		}
	default:
		_ = a.Show(ctx)
	}

	runREPL(ctx, a, a.getStatus, a.reader, a.out)
	return nil
}

// load starts the controller and keeps offering a reload while loading fails.
func (a *App) load(ctx context.Context) error {
	err := a.ctrl.Start(ctx)
	for err != nil {
		var le *session.LoadError
		if !errors.As(err, &le) {
			return err
		}
		a.printf("Oops! %s\n", le.Message)
		if !Confirm(a.reader, "Try again?", a.out) {
			return fmt.Errorf("%w: %s", ErrLoadAborted, le.Message)
		}
		err = a.ctrl.Reload(ctx)
	}
	return nil
}

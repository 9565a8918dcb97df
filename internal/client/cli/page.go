package cli

import (
	"context"
	"os"

	"github.com/dmitrijs2005/folio/internal/filex"
	"github.com/dmitrijs2005/folio/internal/render"
)

func (a *App) year() int { return a.clock.Now().Year() }

// Show prints the canonical portfolio.
func (a *App) Show(ctx context.Context) error {
	if !a.ctrl.PageVisible() {
		if le := a.ctrl.LoadErr(); le != nil {
			a.printf("Oops! %s\nType 'reload' to try again.\n", le.Message)
			return nil
		}
		a.println("Portfolio not loaded.")
		return nil
	}
	if err := render.Text(a.out, a.ctrl.Record(), a.year()); err != nil {
		return err
	}
	if a.ctrl.CanEdit() {
		a.println("\n(type 'edit' to edit the portfolio)")
	}
	return nil
}

// Export writes the HTML page to path.
func (a *App) Export(ctx context.Context, path string) error {
	if !a.ctrl.PageVisible() {
		a.println("Portfolio not loaded.")
		return nil
	}

	if err := filex.EnsureParentDir(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := render.HTML(f, a.ctrl.Record(), render.Options{Year: a.year(), Editable: a.ctrl.CanEdit()}); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	a.printf("Written %s\n", path)
	return nil
}

// Reload fetches the portfolio again and shows it.
func (a *App) Reload(ctx context.Context) error {
	a.println("Loading portfolio...")
	if err := a.ctrl.Reload(ctx); err != nil {
		a.printf("Oops! %s\n", err)
		return nil
	}
	return a.Show(ctx)
}

func (a *App) Notifications(ctx context.Context) error {
	list := a.queue.List()
	if len(list) == 0 {
		a.println("No notifications.")
		return nil
	}
	for _, n := range list {
		a.printf("%s  %-7s  %s\n", n.ID, n.Severity, n.Message)
	}
	return nil
}

// Dismiss removes a notification; unknown ids are ignored.
func (a *App) Dismiss(ctx context.Context, id string) error {
	a.queue.Remove(id)
	return nil
}

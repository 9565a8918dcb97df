package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/folio/internal/client/client"
	"github.com/dmitrijs2005/folio/internal/client/editor"
	"github.com/dmitrijs2005/folio/internal/client/models"
	"github.com/dmitrijs2005/folio/internal/client/services"
	"github.com/dmitrijs2005/folio/internal/client/upload"
	"github.com/dmitrijs2005/folio/internal/common"
	"github.com/dmitrijs2005/folio/internal/logging"
	"github.com/jonboulle/clockwork"
)

type State int

const (
	Anonymous State = iota
	AdminUnauthenticated
	AdminAuthenticated
)

func (s State) String() string {
	switch s {
	case Anonymous:
		return "anonymous"
	case AdminUnauthenticated:
		return "admin-locked"
	case AdminAuthenticated:
		return "admin"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

const (
	MsgAccessGranted  = "Admin access granted"
	MsgSessionExpired = "Session expired. Please log in again."
	MsgLoggedOut      = "Logged out"
)

var (
	ErrBusy         = common.ErrBusy
	ErrInvalidState = errors.New("action not available in the current state")
	ErrNotLoaded    = errors.New("portfolio not loaded")
)

// LoadError is a failure to obtain the record. Message is shown on the error
// page as is.
type LoadError struct {
	Message string
	Err     error
}

func (e *LoadError) Error() string { return e.Message }
func (e *LoadError) Unwrap() error { return e.Err }

// Params are the page parameters. Admin is true when the admin flag was given
// with a true-like value or without a value.
type Params struct {
	PortfolioID string
	Admin       bool
}

type Notifier = editor.Notifier

type Deps struct {
	Portfolios services.PortfolioService
	Auth       services.AuthService
	Session    *Session
	Notifier   Notifier
	Uploader   upload.Uploader
	Clock      clockwork.Clock
	Log        logging.Logger
}

// Controller is the admin session state machine. The only backward
// transitions are Logout and the rejection of the token by the server.
type Controller struct {
	params Params
	deps   Deps

	mu      sync.Mutex
	state   State
	record  *models.Portfolio
	loadErr *LoadError
	busy    map[string]bool
}

func NewController(p Params, d Deps) *Controller {
	if d.Clock == nil {
		d.Clock = clockwork.NewRealClock()
	}
	if d.Log == nil {
		d.Log = logging.Nop()
	}
	p.PortfolioID = strings.TrimSpace(p.PortfolioID)
	return &Controller{params: p, deps: d, busy: make(map[string]bool)}
}

func (c *Controller) begin(action string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.busy[action] {
		return ErrBusy
	}
	c.busy[action] = true
	return nil
}

func (c *Controller) end(action string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.busy, action)
}

// Busy reports whether action (load, login, logout) is in flight.
func (c *Controller) Busy(action string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.busy[action]
}

func (c *Controller) PortfolioID() string { return c.params.PortfolioID }

// Start resolves the initial state from the parameters and the token store,
// then loads the record. A missing id is a terminal load error whatever the
// admin state.
func (c *Controller) Start(ctx context.Context) error {
	state := Anonymous
	if c.params.Admin {
		state = AdminUnauthenticated
		ok, err := c.deps.Session.Authenticated(ctx)
		if err != nil {
			c.deps.Log.Warn(ctx, "token store unavailable", "error", err)
		}
		if ok {
			state = AdminAuthenticated
		}
	}

	c.mu.Lock()
	c.state = state
	c.mu.Unlock()

	c.deps.Log.Debug(ctx, "session started", "id", c.params.PortfolioID, "state", state.String())
	return c.Load(ctx)
}

// Load fetches the canonical record. On failure the previous record is
// dropped and the error is kept for LoadErr.
func (c *Controller) Load(ctx context.Context) error {
	if err := c.begin("load"); err != nil {
		return err
	}
	defer c.end("load")

	p, err := c.deps.Portfolios.Fetch(ctx, c.params.PortfolioID)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		msg := client.Message(err, client.MsgFetchFailed)
		if errors.Is(err, services.ErrMissingID) {
			msg = services.MsgIDRequired
		}
		c.record = nil
		c.loadErr = &LoadError{Message: msg, Err: err}
		return c.loadErr
	}
	c.record = p
	c.loadErr = nil
	return nil
}

// Reload is the manual retry after a load error.
func (c *Controller) Reload(ctx context.Context) error { return c.Load(ctx) }

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Record returns a copy of the canonical record, nil when not loaded.
func (c *Controller) Record() *models.Portfolio {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.record.Clone()
}

func (c *Controller) LoadErr() *LoadError {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loadErr
}

// PageVisible reports whether the public page may be shown. While a locked
// admin session waits for the password only the prompt is offered.
func (c *Controller) PageVisible() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.record != nil && c.state != AdminUnauthenticated
}

func (c *Controller) CanEdit() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.record != nil && c.state == AdminAuthenticated
}

// Login exchanges the password for a token. A refusal leaves the state
// unchanged and is reported through AuthResult.Message.
func (c *Controller) Login(ctx context.Context, password string) (services.AuthResult, error) {
	if c.State() != AdminUnauthenticated {
		return services.AuthResult{}, ErrInvalidState
	}
	if err := c.begin("login"); err != nil {
		return services.AuthResult{}, err
	}
	defer c.end("login")

	res, err := c.deps.Auth.Authenticate(ctx, c.params.PortfolioID, password)
	if err != nil || !res.Authorized {
		return res, err
	}

	c.mu.Lock()
	c.state = AdminAuthenticated
	c.mu.Unlock()

	c.notify(func(n Notifier) { n.Success(MsgAccessGranted) })
	return res, nil
}

// Logout forgets the token and locks the admin session again.
func (c *Controller) Logout(ctx context.Context) error {
	if c.State() != AdminAuthenticated {
		return ErrInvalidState
	}
	if err := c.begin("logout"); err != nil {
		return err
	}
	defer c.end("logout")

	if err := c.deps.Session.Invalidate(ctx); err != nil {
		return err
	}
	c.mu.Lock()
	c.state = AdminUnauthenticated
	c.mu.Unlock()

	c.notify(func(n Notifier) { n.Success(MsgLoggedOut) })
	return nil
}

// OpenEditor starts an edit session over the canonical record. The state is
// not changed.
func (c *Controller) OpenEditor() (*editor.Editor, error) {
	c.mu.Lock()
	record, state := c.record, c.state
	c.mu.Unlock()

	if state != AdminAuthenticated {
		return nil, ErrInvalidState
	}
	if record == nil {
		return nil, ErrNotLoaded
	}

	return editor.Open(record, editor.Deps{
		Updater:  updaterFunc(c.update),
		Tokens:   c.deps.Session,
		Uploader: c.deps.Uploader,
		Notifier: c.deps.Notifier,
		Clock:    c.deps.Clock,
		Log:      c.deps.Log,
		OnSaved:  c.saved,
	}), nil
}

type updaterFunc func(ctx context.Context, id string, u models.PortfolioUpdate, token string) (*models.Portfolio, error)

func (f updaterFunc) Update(ctx context.Context, id string, u models.PortfolioUpdate, token string) (*models.Portfolio, error) {
	return f(ctx, id, u, token)
}

// update sends the partial update. A rejected token ends the admin session;
// the user has to log in again explicitly.
func (c *Controller) update(ctx context.Context, id string, u models.PortfolioUpdate, token string) (*models.Portfolio, error) {
	p, err := c.deps.Portfolios.Update(ctx, id, u, token)
	if errors.Is(err, client.ErrUnauthorized) {
		c.invalidate(ctx)
	}
	return p, err
}

func (c *Controller) invalidate(ctx context.Context) {
	if err := c.deps.Session.Invalidate(ctx); err != nil {
		c.deps.Log.Error(ctx, "failed to clear rejected token", "error", err)
	}
	c.mu.Lock()
	c.state = AdminUnauthenticated
	c.mu.Unlock()

	c.deps.Log.Info(ctx, "admin token rejected, session locked", "id", c.params.PortfolioID)
	c.notify(func(n Notifier) { n.Warning(MsgSessionExpired) })
}

// saved refreshes the canonical record from the server after a confirmed
// update instead of trusting the draft.
func (c *Controller) saved(ctx context.Context, p *models.Portfolio) {
	if err := c.Load(ctx); err != nil {
		c.deps.Log.Warn(ctx, "refresh after save failed", "error", err)
		if p != nil && !errors.Is(err, ErrBusy) {
			c.mu.Lock()
			c.record = p.Clone()
			c.loadErr = nil
			c.mu.Unlock()
		}
	}
}

func (c *Controller) notify(fn func(Notifier)) {
	if c.deps.Notifier != nil {
		fn(c.deps.Notifier)
	}
}

package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/folio/internal/client/client"
	"github.com/dmitrijs2005/folio/internal/client/config"
	"github.com/dmitrijs2005/folio/internal/client/models"
	"github.com/dmitrijs2005/folio/internal/client/notify"
	"github.com/dmitrijs2005/folio/internal/client/services"
	"github.com/dmitrijs2005/folio/internal/client/session"
	"github.com/dmitrijs2005/folio/internal/client/tokens"
	"github.com/dmitrijs2005/folio/internal/client/upload"
	"github.com/dmitrijs2005/folio/internal/logging"
	"github.com/jonboulle/clockwork"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type App struct {
	config      *config.Config
	db          *sql.DB
	authService services.AuthService
	session     *session.Session
	ctrl        *session.Controller
	queue       *notify.Queue
	log         logging.Logger
	clock       clockwork.Clock

	reader *bufio.Reader
	out    io.Writer

	mu   sync.Mutex
	mode Mode
}

type Option func(*App)

// WithIO replaces stdin/stdout.
func WithIO(in io.Reader, out io.Writer) Option {
	return func(a *App) {
		a.reader = bufio.NewReader(in)
		a.out = out
	}
}

func WithLogger(l logging.Logger) Option {
	return func(a *App) { a.log = l }
}

func WithClock(c clockwork.Clock) Option {
	return func(a *App) { a.clock = c }
}

// NewApp opens the local database and wires the API client, services and the
// session controller for cfg.
func NewApp(ctx context.Context, c *config.Config, opts ...Option) (*App, error) {
	a := &App{
		config: c,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
		log:    logging.Nop(),
		clock:  clockwork.NewRealClock(),
		mode:   ModeOnline,
	}
	for _, opt := range opts {
		opt(a)
	}

	db, err := client.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		a.log.Error(ctx, "error initializing database", "path", c.DatabasePath, "error", err)
		return nil, err
	}
	a.db = db

	apiClient, err := client.NewHTTPClient(c.APIBaseURL,
		client.WithTimeout(c.RequestTimeout),
		client.WithRateLimit(c.RequestsPerSecond, c.RequestBurst),
		client.WithLogger(a.log),
	)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	uploader, err := newUploader(ctx, c, a.clock)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	a.queue = notify.NewQueue(a.clock)
	a.queue.OnAdd(a.printNotification)

	store := tokens.NewSQLiteStore(db, a.clock)
	a.session = session.New(store)
	a.authService = services.NewAuthService(apiClient, store, a.log)
	a.ctrl = session.NewController(
		session.Params{PortfolioID: c.PortfolioID, Admin: c.Admin},
		session.Deps{
			Portfolios: services.NewPortfolioService(apiClient, a.log),
			Auth:       a.authService,
			Session:    a.session,
			Notifier:   a.queue,
			Uploader:   uploader,
			Clock:      a.clock,
			Log:        a.log,
		},
	)
	return a, nil
}

func newUploader(ctx context.Context, c *config.Config, clock clockwork.Clock) (upload.Uploader, error) {
	httpClient := &http.Client{Timeout: c.RequestTimeout}

	switch c.Upload.Backend {
	case config.UploadHTTP:
		return &upload.HTTPUploader{Endpoint: c.Upload.Endpoint, Preset: c.Upload.Preset, Client: httpClient}, nil
	case config.UploadS3:
		s3cfg := upload.S3Config{
			Bucket:        c.Upload.S3Bucket,
			Region:        c.Upload.S3Region,
			Endpoint:      c.Upload.S3Endpoint,
			AccessKey:     c.Upload.S3AccessKey,
			SecretKey:     c.Upload.S3SecretKey,
			PublicBaseURL: c.Upload.PublicBaseURL,
		}
		pc, err := upload.NewPresignClient(ctx, s3cfg)
		if err != nil {
			return nil, err
		}
		return upload.NewS3Uploader(pc, s3cfg, httpClient, clock), nil
	}
	return nil, nil
}

// Close releases the local database.
func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

func (a *App) Run(ctx context.Context) error {
	defer a.Close()
	return a.Root(ctx)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) printNotification(n models.Notification) {
	a.printf("[%s] %s\n", n.Severity, n.Message)
}

func (a *App) Mode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mode
}

func (a *App) setMode(ctx context.Context, mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed {
		a.log.Info(ctx, "connectivity changed", "mode", string(mode))
	}
}

// StartOnlineStatusWatcher pings the service every interval and switches the
// prompt's online/offline marker until ctx is done.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := a.clock.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.Chan():
			pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
			err := a.authService.Ping(pingCtx)
			cancel()

			if err != nil {
				a.setMode(ctx, ModeOffline)
			} else {
				a.setMode(ctx, ModeOnline)
			}

		case <-ctx.Done():
			return
		}
	}
}

// Package server wires and runs the read-only portfolio preview server.
package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/folio/internal/client/client"
	"github.com/dmitrijs2005/folio/internal/client/services"
	"github.com/dmitrijs2005/folio/internal/logging"
	"github.com/dmitrijs2005/folio/internal/server/config"
	"github.com/dmitrijs2005/folio/internal/server/web"
	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
)

type App struct {
	config *config.Config
	logger logging.Logger
	server *web.HTTPServer
}

func NewApp(c *config.Config, logger logging.Logger) (*App, error) {
	gin.SetMode(gin.ReleaseMode)

	api, err := client.NewHTTPClient(c.APIBaseURL,
		client.WithTimeout(c.RequestTimeout),
		client.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}

	h := web.NewHandler(services.NewPortfolioService(api, logger), logger, clockwork.NewRealClock())
	s := web.NewHTTPServer(c.ListenAddr, logger, h, c.ShutdownTimeout)

	return &App{config: c, logger: logger, server: s}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run serves until ctx is cancelled or SIGINT/SIGTERM arrives.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "api", app.config.APIBaseURL)
	app.initSignalHandler(cancelFunc)

	return app.server.Run(ctx)
}

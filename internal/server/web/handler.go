package web

import (
	"bytes"
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/folio/internal/client/client"
	"github.com/dmitrijs2005/folio/internal/client/models"
	"github.com/dmitrijs2005/folio/internal/client/services"
	"github.com/dmitrijs2005/folio/internal/logging"
	"github.com/dmitrijs2005/folio/internal/render"
	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
)

// Fetcher loads the portfolio shown on a page.
type Fetcher interface {
	Fetch(ctx context.Context, id string) (*models.Portfolio, error)
}

// Handler serves the read-only portfolio page.
type Handler struct {
	portfolios Fetcher
	logger     logging.Logger
	clock      clockwork.Clock
}

func NewHandler(f Fetcher, l logging.Logger, clock clockwork.Clock) *Handler {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Handler{portfolios: f, logger: l, clock: clock}
}

func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.GET("/", h.page)
	r.GET("/healthz", h.health)
}

func (h *Handler) health(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

// page renders GET /?id=<id>. The admin parameter is accepted and ignored:
// the preview never offers editing.
func (h *Handler) page(c *gin.Context) {
	id := strings.TrimSpace(c.Query("id"))
	if id == "" {
		h.errorPage(c, http.StatusBadRequest, services.MsgIDRequired)
		return
	}

	p, err := h.portfolios.Fetch(c.Request.Context(), id)
	if err != nil {
		h.logger.Warn(c.Request.Context(), "portfolio page failed", "id", id, "error", err)
		h.errorPage(c, http.StatusBadGateway, client.Message(err, client.MsgFetchFailed))
		return
	}

	var buf bytes.Buffer
	if err := render.HTML(&buf, p, render.Options{Year: h.clock.Now().Year()}); err != nil {
		h.logger.Error(c.Request.Context(), "render page", "id", id, "error", err)
		c.String(http.StatusInternalServerError, "internal error")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

func (h *Handler) errorPage(c *gin.Context, status int, message string) {
	retry := "/?" + url.Values{"id": {c.Query("id")}}.Encode()

	var buf bytes.Buffer
	if err := render.ErrorPage(&buf, message, retry); err != nil {
		c.String(http.StatusInternalServerError, message)
		return
	}
	c.Data(status, "text/html; charset=utf-8", buf.Bytes())
}

// requestLogger logs each request with its status and latency.
func requestLogger(l logging.Logger, clock clockwork.Clock) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := clock.Now()
		c.Next()
		l.Info(c.Request.Context(), "request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", clock.Since(start).Round(time.Microsecond).String(),
		)
	}
}

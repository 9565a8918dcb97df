package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/folio/internal/client/client"
	"github.com/dmitrijs2005/folio/internal/client/models"
	"github.com/dmitrijs2005/folio/internal/logging"
)

const MsgIDRequired = "Portfolio ID is required"

var ErrMissingID = errors.New(MsgIDRequired)

// PortfolioService reads and updates portfolio records.
type PortfolioService interface {
	Fetch(ctx context.Context, id string) (*models.Portfolio, error)
	Update(ctx context.Context, id string, update models.PortfolioUpdate, token string) (*models.Portfolio, error)
}

type portfolioService struct {
	client client.Client
	log    logging.Logger
}

func NewPortfolioService(c client.Client, log logging.Logger) PortfolioService {
	if log == nil {
		log = logging.Nop()
	}
	return &portfolioService{client: c, log: log}
}

func (s *portfolioService) Fetch(ctx context.Context, id string) (*models.Portfolio, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrMissingID
	}

	p, err := s.client.FetchPortfolio(ctx, id)
	if err != nil {
		s.log.Warn(ctx, "fetch portfolio failed", "id", id, "error", err)
		return nil, fmt.Errorf("fetch portfolio %s: %w", id, err)
	}
	s.log.Debug(ctx, "portfolio fetched", "id", id)
	return p, nil
}

func (s *portfolioService) Update(ctx context.Context, id string, update models.PortfolioUpdate, token string) (*models.Portfolio, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrMissingID
	}

	p, err := s.client.UpdatePortfolio(ctx, id, update, token)
	if err != nil {
		s.log.Warn(ctx, "update portfolio failed", "id", id, "fields", update.Fields(), "error", err)
		return nil, fmt.Errorf("update portfolio %s: %w", id, err)
	}
	s.log.Info(ctx, "portfolio updated", "id", id, "fields", update.Fields())
	return p, nil
}

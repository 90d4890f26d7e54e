package service

import (
	"context"
	"fmt"
	"time"

	"storefront/internal/model"
	"storefront/internal/repository"

	"github.com/rs/zerolog"
)

// visitorService implements the VisitorService interface.
type visitorService struct {
	visitors repository.VisitorRepository
	logger   zerolog.Logger
}

// NewVisitorService creates a new visitor service.
func NewVisitorService(visitors repository.VisitorRepository, logger zerolog.Logger) VisitorService {
	return &visitorService{
		visitors: visitors,
		logger:   logger.With().Str("service", "visitor").Logger(),
	}
}

// Track records a page visit. Tracking failures are logged and swallowed so
// a full visits table never takes the storefront down.
func (s *visitorService) Track(ctx context.Context, ip, userAgent, page string) error {
	visit := &model.Visit{
		IPAddress: ip,
		Page:      page,
		VisitDate: time.Now().UTC(),
	}
	if userAgent != "" {
		visit.UserAgent = &userAgent
	}

	if err := s.visitors.Record(ctx, visit); err != nil {
		s.logger.Warn().Err(err).Str("page", page).Msg("failed to record visit")
	}
	return nil
}

// Stats summarises unique visitors for the dashboard.
func (s *visitorService) Stats(ctx context.Context) (*model.VisitorStats, error) {
	stats, err := s.visitors.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get visitor stats: %w", err)
	}
	return stats, nil
}

package repository

import (
	"context"
	"fmt"

	"storefront/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// visitorRepository implements the VisitorRepository interface using PostgreSQL.
type visitorRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewVisitorRepository creates a new PostgreSQL-backed visitor repository.
func NewVisitorRepository(pool *pgxpool.Pool, logger zerolog.Logger) VisitorRepository {
	return &visitorRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "visitor").Logger(),
	}
}

// Record stores a single page visit.
func (r *visitorRepository) Record(ctx context.Context, visit *model.Visit) error {
	query := `
		INSERT INTO visits (ip_address, user_agent, page, visit_date)
		VALUES ($1, $2, $3, now())
	`

	_, err := r.pool.Exec(ctx, query, visit.IPAddress, visit.UserAgent, visit.Page)
	if err != nil {
		r.logger.Error().Err(err).Str("page", visit.Page).Msg("failed to record visit")
		return fmt.Errorf("failed to record visit: %w", err)
	}

	return nil
}

// Stats counts distinct visitor IPs overall and for the current day.
func (r *visitorRepository) Stats(ctx context.Context) (*model.VisitorStats, error) {
	query := `
		SELECT
			COUNT(DISTINCT ip_address),
			COUNT(DISTINCT ip_address) FILTER (WHERE visit_date::date = CURRENT_DATE)
		FROM visits
	`

	var stats model.VisitorStats
	err := r.pool.QueryRow(ctx, query).Scan(&stats.TotalVisitors, &stats.TodayVisitors)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query visitor stats")
		return nil, fmt.Errorf("failed to query visitor stats: %w", err)
	}

	return &stats, nil
}

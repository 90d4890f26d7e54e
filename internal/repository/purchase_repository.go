package repository

import (
	"context"
	"fmt"

	"storefront/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// purchaseRepository implements the PurchaseRepository interface using PostgreSQL.
type purchaseRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewPurchaseRepository creates a new PostgreSQL-backed purchase repository.
func NewPurchaseRepository(pool *pgxpool.Pool, logger zerolog.Logger) PurchaseRepository {
	return &purchaseRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "purchase").Logger(),
	}
}

// Record stores a completed sale.
func (r *purchaseRepository) Record(ctx context.Context, purchase *model.Purchase) error {
	query := `
		INSERT INTO purchase_history (id, product_id, user_id, session_key, quantity, purchase_date)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.pool.Exec(ctx, query,
		purchase.ID, purchase.ProductID, purchase.UserID,
		purchase.SessionKey, purchase.Quantity, purchase.PurchaseDate,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", purchase.ProductID).Msg("failed to record purchase")
		return fmt.Errorf("failed to record purchase: %w", err)
	}

	return nil
}

// ListRecent retrieves the most recent purchases.
func (r *purchaseRepository) ListRecent(ctx context.Context, limit int) ([]model.Purchase, error) {
	query := `
		SELECT id, product_id, user_id, session_key, quantity, purchase_date
		FROM purchase_history
		ORDER BY purchase_date DESC
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query purchases")
		return nil, fmt.Errorf("failed to query purchases: %w", err)
	}
	defer rows.Close()

	var purchases []model.Purchase
	for rows.Next() {
		var p model.Purchase
		err := rows.Scan(&p.ID, &p.ProductID, &p.UserID, &p.SessionKey, &p.Quantity, &p.PurchaseDate)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan purchase row")
			return nil, fmt.Errorf("failed to scan purchase: %w", err)
		}
		purchases = append(purchases, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating purchases: %w", err)
	}

	return purchases, nil
}

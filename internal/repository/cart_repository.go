package repository

import (
	"context"
	"fmt"

	"storefront/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// cartRepository implements the CartRepository interface using PostgreSQL.
type cartRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCartRepository creates a new PostgreSQL-backed durable cart repository.
func NewCartRepository(pool *pgxpool.Pool, logger zerolog.Logger) CartRepository {
	return &cartRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "cart").Logger(),
	}
}

// GetOrCreate returns the user's durable cart, creating an empty one on
// first use. The user_id unique constraint guarantees at most one cart per
// user even under concurrent first syncs.
func (r *cartRepository) GetOrCreate(ctx context.Context, userID uuid.UUID) (*model.Cart, error) {
	query := `
		INSERT INTO carts (id, user_id, created_at, updated_at)
		VALUES ($1, $2, now(), now())
		ON CONFLICT (user_id) DO UPDATE SET updated_at = now()
		RETURNING id, user_id, created_at, updated_at
	`

	var cart model.Cart
	err := r.pool.QueryRow(ctx, query, uuid.New(), userID).Scan(
		&cart.ID, &cart.UserID, &cart.CreatedAt, &cart.UpdatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to get or create cart")
		return nil, fmt.Errorf("failed to get or create cart: %w", err)
	}

	return &cart, nil
}

// GetByUser retrieves the user's durable cart with its items.
func (r *cartRepository) GetByUser(ctx context.Context, userID uuid.UUID) (*model.Cart, error) {
	cartQuery := `
		SELECT id, user_id, created_at, updated_at
		FROM carts
		WHERE user_id = $1
	`

	var cart model.Cart
	err := r.pool.QueryRow(ctx, cartQuery, userID).Scan(
		&cart.ID, &cart.UserID, &cart.CreatedAt, &cart.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("user_id", userID.String()).Msg("no durable cart for user")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to query cart")
		return nil, fmt.Errorf("failed to query cart: %w", err)
	}

	itemsQuery := `
		SELECT id, cart_id, product_id, quantity
		FROM cart_items
		WHERE cart_id = $1
		ORDER BY product_id
	`

	rows, err := r.pool.Query(ctx, itemsQuery, cart.ID)
	if err != nil {
		r.logger.Error().Err(err).Str("cart_id", cart.ID.String()).Msg("failed to query cart items")
		return nil, fmt.Errorf("failed to query cart items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item model.CartItem
		if err := rows.Scan(&item.ID, &item.CartID, &item.ProductID, &item.Quantity); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan cart item row")
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}
		cart.Items = append(cart.Items, item)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating cart item rows")
		return nil, fmt.Errorf("error iterating cart items: %w", err)
	}

	return &cart, nil
}

// ReplaceItems atomically deletes all items of a cart and inserts the given
// ones. A single transaction covers both steps so a concurrent reader never
// observes an empty cart mid-sync.
func (r *cartRepository) ReplaceItems(ctx context.Context, cartID uuid.UUID, items []model.CartItem) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if _, err := tx.Exec(ctx, "DELETE FROM cart_items WHERE cart_id = $1", cartID); err != nil {
		r.logger.Error().Err(err).Str("cart_id", cartID.String()).Msg("failed to delete cart items")
		return fmt.Errorf("failed to delete cart items: %w", err)
	}

	if len(items) > 0 {
		query := `
			INSERT INTO cart_items (id, cart_id, product_id, quantity)
			VALUES ($1, $2, $3, $4)
		`

		batch := &pgx.Batch{}
		for _, item := range items {
			batch.Queue(query, item.ID, item.CartID, item.ProductID, item.Quantity)
		}

		results := tx.SendBatch(ctx, batch)
		for i := 0; i < len(items); i++ {
			if _, err := results.Exec(); err != nil {
				_ = results.Close()
				r.logger.Error().
					Err(err).
					Str("cart_id", cartID.String()).
					Str("product_id", items[i].ProductID).
					Msg("failed to insert cart item")
				return fmt.Errorf("failed to insert cart item: %w", err)
			}
		}
		if err := results.Close(); err != nil {
			return fmt.Errorf("failed to close batch: %w", err)
		}

		if _, err := tx.Exec(ctx, "UPDATE carts SET updated_at = now() WHERE id = $1", cartID); err != nil {
			return fmt.Errorf("failed to touch cart: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		r.logger.Error().Err(err).Str("cart_id", cartID.String()).Msg("failed to commit cart replace")
		return fmt.Errorf("failed to commit cart replace: %w", err)
	}

	r.logger.Debug().
		Str("cart_id", cartID.String()).
		Int("count", len(items)).
		Msg("cart items replaced")

	return nil
}

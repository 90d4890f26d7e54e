package repository

import (
	"context"
	"fmt"

	"storefront/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// reviewRepository implements the ReviewRepository interface using PostgreSQL.
type reviewRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewReviewRepository creates a new PostgreSQL-backed review repository.
func NewReviewRepository(pool *pgxpool.Pool, logger zerolog.Logger) ReviewRepository {
	return &reviewRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "review").Logger(),
	}
}

// CreateProductReview inserts a new product review.
func (r *reviewRepository) CreateProductReview(ctx context.Context, review *model.Review) error {
	query := `
		INSERT INTO reviews (id, product_id, reviewer_name, rating, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.pool.Exec(ctx, query,
		review.ID, review.ProductID, review.ReviewerName, review.Rating,
		review.Comment, review.CreatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", review.ProductID).Msg("failed to create review")
		return fmt.Errorf("failed to create review: %w", err)
	}

	return nil
}

// ListByProduct retrieves all reviews for a product, newest first.
func (r *reviewRepository) ListByProduct(ctx context.Context, productID string) ([]model.Review, error) {
	query := `
		SELECT id, product_id, reviewer_name, rating, comment, created_at
		FROM reviews
		WHERE product_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, productID)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", productID).Msg("failed to query reviews")
		return nil, fmt.Errorf("failed to query reviews: %w", err)
	}
	defer rows.Close()

	var reviews []model.Review
	for rows.Next() {
		var review model.Review
		err := rows.Scan(&review.ID, &review.ProductID, &review.ReviewerName,
			&review.Rating, &review.Comment, &review.CreatedAt)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan review row")
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, review)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reviews: %w", err)
	}

	return reviews, nil
}

// Summary aggregates ratings for a product.
func (r *reviewRepository) Summary(ctx context.Context, productID string) (*model.ReviewSummary, error) {
	query := `
		SELECT COALESCE(AVG(rating), 0), COUNT(*)
		FROM reviews
		WHERE product_id = $1
	`

	var summary model.ReviewSummary
	err := r.pool.QueryRow(ctx, query, productID).Scan(&summary.AverageRating, &summary.Count)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", productID).Msg("failed to query review summary")
		return nil, fmt.Errorf("failed to query review summary: %w", err)
	}

	return &summary, nil
}

// CreateSiteReview inserts a new site review.
func (r *reviewRepository) CreateSiteReview(ctx context.Context, review *model.SiteReview) error {
	query := `
		INSERT INTO site_reviews (id, reviewer_name, rating, comment, email, is_approved, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.pool.Exec(ctx, query,
		review.ID, review.ReviewerName, review.Rating, review.Comment,
		review.Email, review.IsApproved, review.CreatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to create site review")
		return fmt.Errorf("failed to create site review: %w", err)
	}

	return nil
}

// ListApprovedSiteReviews retrieves approved site reviews, newest first.
func (r *reviewRepository) ListApprovedSiteReviews(ctx context.Context) ([]model.SiteReview, error) {
	query := `
		SELECT id, reviewer_name, rating, comment, email, is_approved, created_at
		FROM site_reviews
		WHERE is_approved
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query site reviews")
		return nil, fmt.Errorf("failed to query site reviews: %w", err)
	}
	defer rows.Close()

	var reviews []model.SiteReview
	for rows.Next() {
		var review model.SiteReview
		err := rows.Scan(&review.ID, &review.ReviewerName, &review.Rating,
			&review.Comment, &review.Email, &review.IsApproved, &review.CreatedAt)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan site review row")
			return nil, fmt.Errorf("failed to scan site review: %w", err)
		}
		reviews = append(reviews, review)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating site reviews: %w", err)
	}

	return reviews, nil
}

package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"storefront/internal/model"
	"storefront/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// anonymousReviewer is used when a review is posted without a name.
const anonymousReviewer = "Anonymous"

// reviewService implements the ReviewService interface.
type reviewService struct {
	reviews  repository.ReviewRepository
	products repository.ProductRepository
	logger   zerolog.Logger
}

// NewReviewService creates a new review service.
func NewReviewService(
	reviews repository.ReviewRepository,
	products repository.ProductRepository,
	logger zerolog.Logger,
) ReviewService {
	return &reviewService{
		reviews:  reviews,
		products: products,
		logger:   logger.With().Str("service", "review").Logger(),
	}
}

// validateReviewRequest checks the shared review payload rules.
func validateReviewRequest(req *model.ReviewRequest) error {
	if req.Rating < 1 || req.Rating > 5 {
		return model.ErrInvalidRating
	}
	if strings.TrimSpace(req.Comment) == "" {
		return model.NewDomainError(model.ErrCodeMissingField, "Comment is required")
	}
	return nil
}

// AddProductReview stores a review for an existing product.
func (s *reviewService) AddProductReview(ctx context.Context, productID string, req *model.ReviewRequest) (*model.Review, error) {
	if err := validateReviewRequest(req); err != nil {
		return nil, err
	}

	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}

	name := strings.TrimSpace(req.ReviewerName)
	if name == "" {
		name = anonymousReviewer
	}

	review := &model.Review{
		ID:           uuid.New(),
		ProductID:    productID,
		ReviewerName: name,
		Rating:       req.Rating,
		Comment:      strings.TrimSpace(req.Comment),
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.reviews.CreateProductReview(ctx, review); err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	s.logger.Info().
		Str("product_id", productID).
		Int("rating", review.Rating).
		Msg("product review created")

	return review, nil
}

// ListProductReviews lists reviews for an existing product, newest first.
func (s *reviewService) ListProductReviews(ctx context.Context, productID string) ([]model.Review, error) {
	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}

	reviews, err := s.reviews.ListByProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, nil
}

// AddSiteReview stores a review of the site itself. New reviews are approved
// immediately; the flag exists as a moderation hook.
func (s *reviewService) AddSiteReview(ctx context.Context, req *model.ReviewRequest) (*model.SiteReview, error) {
	if err := validateReviewRequest(req); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.ReviewerName)
	if name == "" {
		name = anonymousReviewer
	}

	review := &model.SiteReview{
		ID:           uuid.New(),
		ReviewerName: name,
		Rating:       req.Rating,
		Comment:      strings.TrimSpace(req.Comment),
		Email:        req.Email,
		IsApproved:   true,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.reviews.CreateSiteReview(ctx, review); err != nil {
		return nil, fmt.Errorf("failed to create site review: %w", err)
	}

	s.logger.Info().Int("rating", review.Rating).Msg("site review created")
	return review, nil
}

// ListSiteReviews lists approved site reviews, newest first.
func (s *reviewService) ListSiteReviews(ctx context.Context) ([]model.SiteReview, error) {
	reviews, err := s.reviews.ListApprovedSiteReviews(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list site reviews: %w", err)
	}
	return reviews, nil
}

package service

import (
	"context"
	"fmt"
	"time"

	"storefront/internal/model"
	"storefront/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const defaultPurchaseLimit = 50

// purchaseService implements the PurchaseService interface.
type purchaseService struct {
	purchases repository.PurchaseRepository
	logger    zerolog.Logger
}

// NewPurchaseService creates a new purchase service.
func NewPurchaseService(purchases repository.PurchaseRepository, logger zerolog.Logger) PurchaseService {
	return &purchaseService{
		purchases: purchases,
		logger:    logger.With().Str("service", "purchase").Logger(),
	}
}

// Record stores a completed sale.
func (s *purchaseService) Record(ctx context.Context, productID string, userID *uuid.UUID, sessionKey *string, quantity int) error {
	if quantity < 1 {
		return model.ErrInvalidQuantity
	}

	purchase := &model.Purchase{
		ID:           uuid.New(),
		ProductID:    productID,
		UserID:       userID,
		SessionKey:   sessionKey,
		Quantity:     quantity,
		PurchaseDate: time.Now().UTC(),
	}

	if err := s.purchases.Record(ctx, purchase); err != nil {
		return fmt.Errorf("failed to record purchase: %w", err)
	}

	s.logger.Info().Str("product_id", productID).Int("quantity", quantity).Msg("purchase recorded")
	return nil
}

// ListRecent retrieves the most recent purchases for the dashboard.
func (s *purchaseService) ListRecent(ctx context.Context, limit int) ([]model.Purchase, error) {
	if limit < 1 || limit > 200 {
		limit = defaultPurchaseLimit
	}

	purchases, err := s.purchases.ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list purchases: %w", err)
	}
	return purchases, nil
}

package service

import (
	"context"
	"fmt"

	"storefront/internal/cart"
	"storefront/internal/model"
	"storefront/internal/repository"
	"storefront/internal/session"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// cartService implements the CartService interface on top of the cart engine.
type cartService struct {
	products repository.ProductRepository
	carts    repository.CartRepository
	logger   zerolog.Logger
}

// NewCartService creates a new cart service.
func NewCartService(
	products repository.ProductRepository,
	carts repository.CartRepository,
	logger zerolog.Logger,
) CartService {
	return &cartService{
		products: products,
		carts:    carts,
		logger:   logger.With().Str("service", "cart").Logger(),
	}
}

// engine builds a cart engine for the session, bound to the session's user
// when one is logged in.
func (s *cartService) engine(sess *session.Session) (*cart.Cart, error) {
	return cart.New(sess, session.UserID(sess), s.logger)
}

// totals summarises the cart after a mutation.
func totals(c *cart.Cart) *CartTotals {
	return &CartTotals{
		TotalItems: c.TotalItems(),
		TotalPrice: c.TotalPrice(),
	}
}

// getProduct resolves a product or returns ErrProductNotFound.
func (s *cartService) getProduct(ctx context.Context, productID string) (*model.Product, error) {
	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}
	return product, nil
}

// Add puts a product into the session cart. Quantity must be at least one;
// the engine itself does not enforce a lower bound.
func (s *cartService) Add(ctx context.Context, sess *session.Session, productID string, quantity int, override bool) (*CartTotals, error) {
	if quantity < 1 {
		return nil, model.ErrInvalidQuantity
	}

	product, err := s.getProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	c, err := s.engine(sess)
	if err != nil {
		return nil, err
	}

	c.Add(product, quantity, override)
	return totals(c), nil
}

// Remove deletes a product's line from the session cart. The product must
// still exist in the catalogue; removing one that is not in the cart is a
// no-op.
func (s *cartService) Remove(ctx context.Context, sess *session.Session, productID string) (*CartTotals, error) {
	product, err := s.getProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	c, err := s.engine(sess)
	if err != nil {
		return nil, err
	}

	c.Remove(product)
	return totals(c), nil
}

// UpdateQuantity sets a line's quantity; zero or less removes the line.
func (s *cartService) UpdateQuantity(ctx context.Context, sess *session.Session, productID string, quantity int) (*CartTotals, error) {
	product, err := s.getProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	c, err := s.engine(sess)
	if err != nil {
		return nil, err
	}

	c.UpdateQuantity(product, quantity)
	return totals(c), nil
}

// View resolves the session cart against the catalogue for display.
func (s *cartService) View(ctx context.Context, sess *session.Session) (*CartView, error) {
	c, err := s.engine(sess)
	if err != nil {
		return nil, err
	}

	items, err := c.Items(ctx, s.products)
	if err != nil {
		return nil, err
	}

	return &CartView{
		Items:      items,
		TotalItems: c.TotalItems(),
		TotalPrice: c.TotalPrice(),
	}, nil
}

// Login binds a user to the session and reconciles carts: an existing durable
// cart wins and replaces the session cart; otherwise the session cart is
// persisted as the user's durable cart.
func (s *cartService) Login(ctx context.Context, sess *session.Session, userID uuid.UUID) error {
	if err := session.SetUserID(sess, &userID); err != nil {
		return fmt.Errorf("failed to bind user to session: %w", err)
	}

	c, err := cart.New(sess, &userID, s.logger)
	if err != nil {
		return err
	}

	durable, err := s.carts.GetByUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to check durable cart: %w", err)
	}

	if durable != nil {
		if err := c.Load(ctx, s.carts, s.products); err != nil {
			return err
		}
	} else if c.Len() > 0 {
		if err := c.Sync(ctx, s.carts, s.products); err != nil {
			return err
		}
	}

	s.logger.Info().Str("user_id", userID.String()).Msg("user logged in")
	return nil
}

// Logout persists the session cart to the user's durable cart, then unbinds
// the user and drops the session cart. Logging out without a bound user only
// clears the cart.
func (s *cartService) Logout(ctx context.Context, sess *session.Session) error {
	userID := session.UserID(sess)

	c, err := cart.New(sess, userID, s.logger)
	if err != nil {
		return err
	}

	if userID != nil {
		if err := c.Sync(ctx, s.carts, s.products); err != nil {
			return err
		}
		s.logger.Info().Str("user_id", userID.String()).Msg("user logged out")
	}

	c.Clear()
	if err := session.SetUserID(sess, nil); err != nil {
		return fmt.Errorf("failed to unbind user from session: %w", err)
	}
	return nil
}

package repository

import (
	"context"

	"storefront/internal/model"

	"github.com/google/uuid"
)

// ProductRepository defines the interface for product data access operations.
type ProductRepository interface {
	// List retrieves products matching the filter along with the total
	// match count before pagination.
	List(ctx context.Context, filter model.ProductFilter) ([]model.Product, int, error)

	// GetByID retrieves a single product by its ID. Returns nil when absent.
	GetByID(ctx context.Context, id string) (*model.Product, error)

	// GetByIDs retrieves multiple products by their IDs.
	GetByIDs(ctx context.Context, ids []string) ([]model.Product, error)

	// Create inserts a new product.
	Create(ctx context.Context, p *model.Product) error

	// Update replaces all mutable fields of a product. Reports whether the
	// product existed.
	Update(ctx context.Context, p *model.Product) (bool, error)

	// Patch updates only the non-nil fields of the patch. Reports whether
	// the product existed.
	Patch(ctx context.Context, id string, patch model.ProductPatch) (bool, error)

	// Delete removes a product. Reports whether the product existed.
	Delete(ctx context.Context, id string) (bool, error)

	// ToggleAvailability flips is_available and returns the new value, or
	// nil when the product does not exist.
	ToggleAvailability(ctx context.Context, id string) (*bool, error)

	// SetImageURL stores the product's uploaded image location.
	SetImageURL(ctx context.Context, id, url string) (bool, error)

	// Categories returns the distinct product categories, ordered.
	Categories(ctx context.Context) ([]string, error)

	// Stats summarises stock levels for the dashboard.
	Stats(ctx context.Context) (*model.ProductStats, error)
}

// CartRepository defines the interface for durable cart data access.
type CartRepository interface {
	// GetOrCreate returns the user's durable cart, creating an empty one on
	// first use.
	GetOrCreate(ctx context.Context, userID uuid.UUID) (*model.Cart, error)

	// GetByUser retrieves the user's durable cart with its items. Returns
	// nil when the user has none.
	GetByUser(ctx context.Context, userID uuid.UUID) (*model.Cart, error)

	// ReplaceItems atomically deletes all items of a cart and inserts the
	// given ones in a single transaction.
	ReplaceItems(ctx context.Context, cartID uuid.UUID, items []model.CartItem) error
}

// ReviewRepository defines the interface for product and site reviews.
type ReviewRepository interface {
	CreateProductReview(ctx context.Context, review *model.Review) error
	ListByProduct(ctx context.Context, productID string) ([]model.Review, error)
	Summary(ctx context.Context, productID string) (*model.ReviewSummary, error)
	CreateSiteReview(ctx context.Context, review *model.SiteReview) error
	ListApprovedSiteReviews(ctx context.Context) ([]model.SiteReview, error)
}

// VisitorRepository records page visits and aggregates visitor stats.
type VisitorRepository interface {
	Record(ctx context.Context, visit *model.Visit) error
	Stats(ctx context.Context) (*model.VisitorStats, error)
}

// PurchaseRepository stores completed sales. Recording is invoked by the
// checkout flow; this service reads them for the dashboard.
type PurchaseRepository interface {
	Record(ctx context.Context, purchase *model.Purchase) error
	ListRecent(ctx context.Context, limit int) ([]model.Purchase, error)
}

package service

import (
	"context"
	"io"

	"storefront/internal/cart"
	"storefront/internal/model"
	"storefront/internal/session"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SearchOptions holds catalogue search and filter parameters.
type SearchOptions struct {
	Query        string
	Category     string
	Availability *bool
	Page         int
	PageSize     int
}

// CatalogPage is one page of catalogue results.
type CatalogPage struct {
	Products     []model.Product `json:"products"`
	Categories   []string        `json:"categories"`
	TotalResults int             `json:"total_results"`
	Page         int             `json:"page"`
	TotalPages   int             `json:"total_pages"`
}

// ProductDetail is a product joined with its review summary.
type ProductDetail struct {
	model.Product
	DiscountedPrice decimal.Decimal     `json:"discountedPrice"`
	Reviews         model.ReviewSummary `json:"reviews"`
}

// ProductService defines operations for catalogue and dashboard product management.
type ProductService interface {
	// Search retrieves a page of products. Storefront callers pass
	// Availability pinned to true; the dashboard passes it through.
	Search(ctx context.Context, opts SearchOptions) (*CatalogPage, error)

	// GetDetail retrieves a single product with its review summary.
	GetDetail(ctx context.Context, id string) (*ProductDetail, error)

	// Create adds a new product to the catalogue.
	Create(ctx context.Context, req *model.ProductRequest) (*model.Product, error)

	// Update replaces all mutable fields of a product.
	Update(ctx context.Context, id string, req *model.ProductRequest) (*model.Product, error)

	// Patch applies a partial update and returns the names of the updated fields.
	Patch(ctx context.Context, id string, patch model.ProductPatch) ([]string, error)

	// Delete removes a product and returns its name for the confirmation message.
	Delete(ctx context.Context, id string) (string, error)

	// ToggleAvailability flips a product's availability and returns the new state.
	ToggleAvailability(ctx context.Context, id string) (bool, error)

	// AttachImage stores an uploaded product image and records its URL.
	AttachImage(ctx context.Context, id, filename, contentType string, body io.Reader) (string, error)

	// Stats summarises stock levels for the dashboard.
	Stats(ctx context.Context) (*model.ProductStats, error)
}

// CartTotals is the summary returned by every cart mutation.
type CartTotals struct {
	TotalItems int
	TotalPrice decimal.Decimal
}

// CartView is the full cart representation for the cart page.
type CartView struct {
	Items      []cart.Item     `json:"cart_items"`
	TotalItems int             `json:"cart_total_items"`
	TotalPrice decimal.Decimal `json:"cart_total_price"`
}

// CartService defines the session cart operations. Mutations mark the
// session dirty; the handler flushes it to the session store afterwards.
type CartService interface {
	// Add puts a product into the session cart.
	Add(ctx context.Context, sess *session.Session, productID string, quantity int, override bool) (*CartTotals, error)

	// Remove deletes a product's line from the session cart.
	Remove(ctx context.Context, sess *session.Session, productID string) (*CartTotals, error)

	// UpdateQuantity sets a line's quantity; zero or less removes the line.
	UpdateQuantity(ctx context.Context, sess *session.Session, productID string, quantity int) (*CartTotals, error)

	// View resolves the session cart against the catalogue.
	View(ctx context.Context, sess *session.Session) (*CartView, error)

	// Login binds a user to the session and reconciles the session cart
	// with the durable cart.
	Login(ctx context.Context, sess *session.Session, userID uuid.UUID) error

	// Logout persists the session cart durably and unbinds the user.
	Logout(ctx context.Context, sess *session.Session) error
}

// ReviewService defines product and site review operations.
type ReviewService interface {
	AddProductReview(ctx context.Context, productID string, req *model.ReviewRequest) (*model.Review, error)
	ListProductReviews(ctx context.Context, productID string) ([]model.Review, error)
	AddSiteReview(ctx context.Context, req *model.ReviewRequest) (*model.SiteReview, error)
	ListSiteReviews(ctx context.Context) ([]model.SiteReview, error)
}

// VisitorService records page visits and reports visitor statistics.
type VisitorService interface {
	Track(ctx context.Context, ip, userAgent, page string) error
	Stats(ctx context.Context) (*model.VisitorStats, error)
}

// PurchaseService reads purchase history for the dashboard. Recording is
// the checkout flow's extension point.
type PurchaseService interface {
	Record(ctx context.Context, productID string, userID *uuid.UUID, sessionKey *string, quantity int) error
	ListRecent(ctx context.Context, limit int) ([]model.Purchase, error)
}

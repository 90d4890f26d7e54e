package service

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"storefront/internal/media"
	"storefront/internal/model"
	"storefront/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// newProductID mints a catalogue ID. Seeded products carry human-readable
// IDs; products created through the dashboard get generated ones.
func newProductID() string {
	return uuid.New().String()
}

const (
	defaultPageSize = 12
	maxPageSize     = 100
)

var oneHundred = decimal.NewFromInt(100)

// productService implements the ProductService interface.
type productService struct {
	products repository.ProductRepository
	reviews  repository.ReviewRepository
	media    media.Store
	logger   zerolog.Logger
}

// NewProductService creates a new product service.
func NewProductService(
	products repository.ProductRepository,
	reviews repository.ReviewRepository,
	mediaStore media.Store,
	logger zerolog.Logger,
) ProductService {
	return &productService{
		products: products,
		reviews:  reviews,
		media:    mediaStore,
		logger:   logger.With().Str("service", "product").Logger(),
	}
}

// Search retrieves a page of products matching the options.
func (s *productService) Search(ctx context.Context, opts SearchOptions) (*CatalogPage, error) {
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.PageSize < 1 {
		opts.PageSize = defaultPageSize
	}
	if opts.PageSize > maxPageSize {
		opts.PageSize = maxPageSize
	}

	filter := model.ProductFilter{
		Query:        strings.TrimSpace(opts.Query),
		Category:     strings.TrimSpace(opts.Category),
		Availability: opts.Availability,
		Limit:        opts.PageSize,
		Offset:       (opts.Page - 1) * opts.PageSize,
	}

	products, total, err := s.products.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}

	categories, err := s.products.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	totalPages := (total + opts.PageSize - 1) / opts.PageSize
	if totalPages < 1 {
		totalPages = 1
	}

	return &CatalogPage{
		Products:     products,
		Categories:   categories,
		TotalResults: total,
		Page:         opts.Page,
		TotalPages:   totalPages,
	}, nil
}

// GetDetail retrieves a single product with its review summary.
func (s *productService) GetDetail(ctx context.Context, id string) (*ProductDetail, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}

	summary, err := s.reviews.Summary(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get review summary: %w", err)
	}

	return &ProductDetail{
		Product:         *product,
		DiscountedPrice: product.DiscountedPrice(),
		Reviews:         *summary,
	}, nil
}

// Create adds a new product to the catalogue.
func (s *productService) Create(ctx context.Context, req *model.ProductRequest) (*model.Product, error) {
	if err := validateProductRequest(req); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	product := &model.Product{
		ID:          newProductID(),
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		Category:    strings.TrimSpace(req.Category),
		Price:       req.Price,
		Discount:    req.Discount,
		Stock:       req.Stock,
		IsAvailable: req.IsAvailable,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.products.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.logger.Info().Str("product_id", product.ID).Str("name", product.Name).Msg("product created")
	return product, nil
}

// Update replaces all mutable fields of a product.
func (s *productService) Update(ctx context.Context, id string, req *model.ProductRequest) (*model.Product, error) {
	if err := validateProductRequest(req); err != nil {
		return nil, err
	}

	product := &model.Product{
		ID:          id,
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		Category:    strings.TrimSpace(req.Category),
		Price:       req.Price,
		Discount:    req.Discount,
		Stock:       req.Stock,
		IsAvailable: req.IsAvailable,
	}

	found, err := s.products.Update(ctx, product)
	if err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	if !found {
		return nil, model.ErrProductNotFound
	}

	updated, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload product: %w", err)
	}
	if updated == nil {
		return nil, model.ErrProductNotFound
	}

	s.logger.Info().Str("product_id", id).Msg("product updated")
	return updated, nil
}

// Patch applies a partial update and returns the names of the updated fields.
func (s *productService) Patch(ctx context.Context, id string, patch model.ProductPatch) ([]string, error) {
	var fields []string

	if patch.Name != nil {
		if strings.TrimSpace(*patch.Name) == "" {
			return nil, model.NewDomainError(model.ErrCodeValidationFailed, "Name cannot be empty")
		}
		fields = append(fields, "name")
	}
	if patch.Category != nil {
		if strings.TrimSpace(*patch.Category) == "" {
			return nil, model.NewDomainError(model.ErrCodeValidationFailed, "Category cannot be empty")
		}
		fields = append(fields, "category")
	}
	if patch.Price != nil {
		if patch.Price.IsNegative() {
			return nil, model.NewDomainError(model.ErrCodeValidationFailed, "Price cannot be negative")
		}
		fields = append(fields, "price")
	}
	if patch.Stock != nil {
		if *patch.Stock < 0 {
			return nil, model.NewDomainError(model.ErrCodeValidationFailed, "Stock cannot be negative")
		}
		fields = append(fields, "stock")
	}
	if patch.Discount != nil {
		if patch.Discount.IsNegative() || patch.Discount.GreaterThan(oneHundred) {
			return nil, model.NewDomainError(model.ErrCodeValidationFailed, "Discount must be between 0 and 100")
		}
		fields = append(fields, "discount")
	}
	if patch.Description != nil {
		fields = append(fields, "description")
	}
	if patch.IsAvailable != nil {
		fields = append(fields, "isAvailable")
	}

	if len(fields) == 0 {
		return nil, model.NewDomainError(model.ErrCodeValidationFailed, "No fields to update")
	}

	found, err := s.products.Patch(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("failed to patch product: %w", err)
	}
	if !found {
		return nil, model.ErrProductNotFound
	}

	s.logger.Info().Str("product_id", id).Strs("fields", fields).Msg("product patched")
	return fields, nil
}

// Delete removes a product and returns its name for the confirmation message.
func (s *productService) Delete(ctx context.Context, id string) (string, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return "", fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil {
		return "", model.ErrProductNotFound
	}

	found, err := s.products.Delete(ctx, id)
	if err != nil {
		return "", fmt.Errorf("failed to delete product: %w", err)
	}
	if !found {
		return "", model.ErrProductNotFound
	}

	s.logger.Info().Str("product_id", id).Str("name", product.Name).Msg("product deleted")
	return product.Name, nil
}

// ToggleAvailability flips a product's availability and returns the new state.
func (s *productService) ToggleAvailability(ctx context.Context, id string) (bool, error) {
	available, err := s.products.ToggleAvailability(ctx, id)
	if err != nil {
		return false, fmt.Errorf("failed to toggle availability: %w", err)
	}
	if available == nil {
		return false, model.ErrProductNotFound
	}

	s.logger.Info().Str("product_id", id).Bool("is_available", *available).Msg("availability toggled")
	return *available, nil
}

// AttachImage stores an uploaded product image and records its URL.
func (s *productService) AttachImage(ctx context.Context, id, filename, contentType string, body io.Reader) (string, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return "", fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil {
		return "", model.ErrProductNotFound
	}

	ext := strings.ToLower(path.Ext(filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp":
	default:
		return "", model.NewDomainError(model.ErrCodeValidationFailed, "Unsupported image type")
	}

	key := fmt.Sprintf("products/%s%s", id, ext)
	url, err := s.media.Put(ctx, key, contentType, body)
	if err != nil {
		return "", fmt.Errorf("failed to store product image: %w", err)
	}

	found, err := s.products.SetImageURL(ctx, id, url)
	if err != nil {
		return "", fmt.Errorf("failed to record image URL: %w", err)
	}
	if !found {
		return "", model.ErrProductNotFound
	}

	s.logger.Info().Str("product_id", id).Str("url", url).Msg("product image attached")
	return url, nil
}

// Stats summarises stock levels for the dashboard.
func (s *productService) Stats(ctx context.Context) (*model.ProductStats, error) {
	stats, err := s.products.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get product stats: %w", err)
	}
	return stats, nil
}

// validateProductRequest checks the create/update payload.
func validateProductRequest(req *model.ProductRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return model.NewDomainError(model.ErrCodeMissingField, "Name is required")
	}
	if strings.TrimSpace(req.Category) == "" {
		return model.NewDomainError(model.ErrCodeMissingField, "Category is required")
	}
	if req.Price.IsNegative() {
		return model.NewDomainError(model.ErrCodeValidationFailed, "Price cannot be negative")
	}
	if req.Stock < 0 {
		return model.NewDomainError(model.ErrCodeValidationFailed, "Stock cannot be negative")
	}
	if req.Discount != nil && (req.Discount.IsNegative() || req.Discount.GreaterThan(oneHundred)) {
		return model.NewDomainError(model.ErrCodeValidationFailed, "Discount must be between 0 and 100")
	}
	return nil
}

package repository

import (
	"context"
	"fmt"
	"strings"

	"storefront/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

const productColumns = "id, name, description, category, price, discount, stock, is_available, image_url, created_at, updated_at"

// productRepository implements the ProductRepository interface using PostgreSQL.
type productRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool *pgxpool.Pool, logger zerolog.Logger) ProductRepository {
	return &productRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "product").Logger(),
	}
}

func scanProduct(row pgx.Row, p *model.Product) error {
	var discount decimal.NullDecimal
	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.Category, &p.Price,
		&discount, &p.Stock, &p.IsAvailable, &p.ImageURL,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if discount.Valid {
		p.Discount = &discount.Decimal
	}
	return nil
}

// buildFilter translates a ProductFilter into a WHERE clause and arguments.
func buildFilter(filter model.ProductFilter) (string, []any) {
	var conditions []string
	var args []any

	if filter.Query != "" {
		args = append(args, "%"+filter.Query+"%")
		n := len(args)
		conditions = append(conditions, fmt.Sprintf(
			"(name ILIKE $%d OR category ILIKE $%d OR description ILIKE $%d)", n, n, n))
	}

	if filter.Category != "" {
		args = append(args, "%"+filter.Category+"%")
		conditions = append(conditions, fmt.Sprintf("category ILIKE $%d", len(args)))
	}

	if filter.Availability != nil {
		args = append(args, *filter.Availability)
		conditions = append(conditions, fmt.Sprintf("is_available = $%d", len(args)))
	}

	if len(conditions) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

// List retrieves products matching the filter, newest first, along with the
// total match count before pagination.
func (r *productRepository) List(ctx context.Context, filter model.ProductFilter) ([]model.Product, int, error) {
	where, args := buildFilter(filter)

	var total int
	countQuery := "SELECT COUNT(*) FROM products" + where
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		r.logger.Error().Err(err).Msg("failed to count products")
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	query := fmt.Sprintf(
		"SELECT %s FROM products%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		productColumns, where, len(args)+1, len(args)+2,
	)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).
			Str("query", filter.Query).
			Str("category", filter.Category).
			Msg("failed to query products")
		return nil, 0, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		var p model.Product
		if err := scanProduct(rows, &p); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan product row")
			return nil, 0, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating product rows")
		return nil, 0, fmt.Errorf("error iterating products: %w", err)
	}

	return products, total, nil
}

// GetByID retrieves a single product by its ID.
func (r *productRepository) GetByID(ctx context.Context, id string) (*model.Product, error) {
	query := fmt.Sprintf("SELECT %s FROM products WHERE id = $1", productColumns)

	var p model.Product
	err := scanProduct(r.pool.QueryRow(ctx, query, id), &p)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("product_id", id).Msg("product not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("product_id", id).Msg("failed to query product")
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	return &p, nil
}

// GetByIDs retrieves multiple products by their IDs.
func (r *productRepository) GetByIDs(ctx context.Context, ids []string) ([]model.Product, error) {
	if len(ids) == 0 {
		return []model.Product{}, nil
	}

	query := fmt.Sprintf("SELECT %s FROM products WHERE id = ANY($1) ORDER BY name", productColumns)

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		r.logger.Error().Err(err).Int("count", len(ids)).Msg("failed to query products by IDs")
		return nil, fmt.Errorf("failed to query products by IDs: %w", err)
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		var p model.Product
		if err := scanProduct(rows, &p); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan product row")
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating product rows")
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// Create inserts a new product.
func (r *productRepository) Create(ctx context.Context, p *model.Product) error {
	query := `
		INSERT INTO products (id, name, description, category, price, discount, stock, is_available, image_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.pool.Exec(ctx, query,
		p.ID, p.Name, p.Description, p.Category, p.Price, p.Discount,
		p.Stock, p.IsAvailable, p.ImageURL, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", p.ID).Msg("failed to create product")
		return fmt.Errorf("failed to create product: %w", err)
	}

	r.logger.Debug().Str("product_id", p.ID).Msg("product created")
	return nil
}

// Update replaces all mutable fields of a product.
func (r *productRepository) Update(ctx context.Context, p *model.Product) (bool, error) {
	query := `
		UPDATE products
		SET name = $2, description = $3, category = $4, price = $5,
		    discount = $6, stock = $7, is_available = $8, updated_at = now()
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		p.ID, p.Name, p.Description, p.Category, p.Price,
		p.Discount, p.Stock, p.IsAvailable,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", p.ID).Msg("failed to update product")
		return false, fmt.Errorf("failed to update product: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// Patch updates only the non-nil fields of the patch.
func (r *productRepository) Patch(ctx context.Context, id string, patch model.ProductPatch) (bool, error) {
	sets := []string{"updated_at = now()"}
	args := []any{id}

	addSet := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Name != nil {
		addSet("name", *patch.Name)
	}
	if patch.Category != nil {
		addSet("category", *patch.Category)
	}
	if patch.Price != nil {
		addSet("price", *patch.Price)
	}
	if patch.Stock != nil {
		addSet("stock", *patch.Stock)
	}
	if patch.Discount != nil {
		addSet("discount", *patch.Discount)
	}
	if patch.Description != nil {
		addSet("description", *patch.Description)
	}
	if patch.IsAvailable != nil {
		addSet("is_available", *patch.IsAvailable)
	}

	query := fmt.Sprintf("UPDATE products SET %s WHERE id = $1", strings.Join(sets, ", "))

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", id).Msg("failed to patch product")
		return false, fmt.Errorf("failed to patch product: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// Delete removes a product.
func (r *productRepository) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := r.pool.Exec(ctx, "DELETE FROM products WHERE id = $1", id)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", id).Msg("failed to delete product")
		return false, fmt.Errorf("failed to delete product: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// ToggleAvailability flips is_available and returns the new value.
func (r *productRepository) ToggleAvailability(ctx context.Context, id string) (*bool, error) {
	query := `
		UPDATE products
		SET is_available = NOT is_available, updated_at = now()
		WHERE id = $1
		RETURNING is_available
	`

	var available bool
	err := r.pool.QueryRow(ctx, query, id).Scan(&available)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("product_id", id).Msg("failed to toggle availability")
		return nil, fmt.Errorf("failed to toggle availability: %w", err)
	}

	return &available, nil
}

// SetImageURL stores the product's uploaded image location.
func (r *productRepository) SetImageURL(ctx context.Context, id, url string) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		"UPDATE products SET image_url = $2, updated_at = now() WHERE id = $1", id, url)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", id).Msg("failed to set image URL")
		return false, fmt.Errorf("failed to set image URL: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// Categories returns the distinct product categories, ordered.
func (r *productRepository) Categories(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, "SELECT DISTINCT category FROM products ORDER BY category")
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query categories")
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var category string
		if err := rows.Scan(&category); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, category)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	return categories, nil
}

// Stats summarises stock levels for the dashboard.
func (r *productRepository) Stats(ctx context.Context) (*model.ProductStats, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE stock > 10),
			COUNT(*) FILTER (WHERE stock > 0 AND stock <= 10),
			COUNT(*) FILTER (WHERE stock = 0)
		FROM products
	`

	var stats model.ProductStats
	err := r.pool.QueryRow(ctx, query).Scan(
		&stats.Total, &stats.InStock, &stats.LowStock, &stats.OutOfStock,
	)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query product stats")
		return nil, fmt.Errorf("failed to query product stats: %w", err)
	}

	return &stats, nil
}

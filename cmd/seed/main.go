// Command seed populates the catalogue with sample products for local
// development.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/model"
	"storefront/internal/repository"

	"github.com/shopspring/decimal"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func ptr(d decimal.Decimal) *decimal.Decimal {
	return &d
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := config.NewLogger(cfg.Logger)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := database.Migrate(cfg.Database, logger); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	products := repository.NewProductRepository(pool, logger)
	now := time.Now().UTC()

	samples := []model.Product{
		{ID: "desk-walnut", Name: "Walnut Standing Desk", Description: "Solid walnut desk with dual motors", Category: "furniture", Price: dec("499.00"), Stock: 12, IsAvailable: true},
		{ID: "chair-mesh", Name: "Mesh Task Chair", Description: "Breathable mesh back with lumbar support", Category: "furniture", Price: dec("189.00"), Discount: ptr(dec("10")), Stock: 30, IsAvailable: true},
		{ID: "lamp-brass", Name: "Brass Desk Lamp", Description: "Adjustable arm, warm LED", Category: "lighting", Price: dec("89.50"), Stock: 18, IsAvailable: true},
		{ID: "lamp-floor", Name: "Arc Floor Lamp", Description: "Marble base arc lamp", Category: "lighting", Price: dec("120.00"), Discount: ptr(dec("25")), Stock: 7, IsAvailable: true},
		{ID: "rug-wool", Name: "Hand-Woven Wool Rug", Description: "160x230cm, natural dyes", Category: "textiles", Price: dec("349.00"), Stock: 4, IsAvailable: true},
		{ID: "shelf-oak", Name: "Oak Wall Shelf", Description: "Floating shelf, 90cm", Category: "furniture", Price: dec("59.00"), Stock: 0, IsAvailable: false},
	}

	seeded := 0
	for i := range samples {
		p := &samples[i]
		p.CreatedAt = now
		p.UpdatedAt = now

		existing, err := products.GetByID(ctx, p.ID)
		if err != nil {
			return fmt.Errorf("failed to check product %s: %w", p.ID, err)
		}
		if existing != nil {
			continue
		}

		if err := products.Create(ctx, p); err != nil {
			return fmt.Errorf("failed to seed product %s: %w", p.ID, err)
		}
		seeded++
	}

	logger.Info().Int("seeded", seeded).Int("total", len(samples)).Msg("sample products ready")
	return nil
}

package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a product in the catalogue.
type Product struct {
	ID          string           `json:"id" db:"id"`
	Name        string           `json:"name" db:"name"`
	Description string           `json:"description" db:"description"`
	Category    string           `json:"category" db:"category"`
	Price       decimal.Decimal  `json:"price" db:"price"`
	Discount    *decimal.Decimal `json:"discount,omitempty" db:"discount"`
	Stock       int              `json:"stock" db:"stock"`
	IsAvailable bool             `json:"isAvailable" db:"is_available"`
	ImageURL    *string          `json:"imageUrl,omitempty" db:"image_url"`
	CreatedAt   time.Time        `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time        `json:"updatedAt" db:"updated_at"`
}

// DiscountedPrice returns the unit price after applying the percentage
// discount. A nil or non-positive discount leaves the price unchanged.
func (p *Product) DiscountedPrice() decimal.Decimal {
	if p.Discount != nil && p.Discount.IsPositive() {
		amount := p.Price.Mul(*p.Discount).Div(decimal.NewFromInt(100))
		return p.Price.Sub(amount)
	}
	return p.Price
}

// DiscountPercentage returns the discount for display purposes, zero when unset.
func (p *Product) DiscountPercentage() decimal.Decimal {
	if p.Discount != nil {
		return *p.Discount
	}
	return decimal.Zero
}

// ProductFilter holds search and filter criteria for catalogue queries.
type ProductFilter struct {
	Query        string
	Category     string
	Availability *bool
	Limit        int
	Offset       int
}

// ProductPatch holds the fields allowed in a partial product update.
// Nil fields are left untouched.
type ProductPatch struct {
	Name        *string          `json:"name,omitempty"`
	Category    *string          `json:"category,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Stock       *int             `json:"stock,omitempty"`
	Discount    *decimal.Decimal `json:"discount,omitempty"`
	Description *string          `json:"description,omitempty"`
	IsAvailable *bool            `json:"isAvailable,omitempty"`
}

// ProductStats summarises stock levels across the catalogue for the dashboard.
type ProductStats struct {
	Total      int `json:"total"`
	InStock    int `json:"inStock"`
	LowStock   int `json:"lowStock"`
	OutOfStock int `json:"outOfStock"`
}

// ProductRequest represents the payload for creating or fully updating a product.
type ProductRequest struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Category    string           `json:"category"`
	Price       decimal.Decimal  `json:"price"`
	Discount    *decimal.Decimal `json:"discount,omitempty"`
	Stock       int              `json:"stock"`
	IsAvailable bool             `json:"isAvailable"`
}

package model

import (
	"time"

	"github.com/google/uuid"
)

// Cart represents a durable per-user cart. At most one exists per user;
// its items are overwritten wholesale on every sync from the session.
type Cart struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	UserID    uuid.UUID  `json:"userId" db:"user_id"`
	Items     []CartItem `json:"items"`
	CreatedAt time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time  `json:"updatedAt" db:"updated_at"`
}

// CartItem represents a durable cart line. Durable lines carry no price
// snapshot; the current product price is authoritative on reload.
type CartItem struct {
	ID        uuid.UUID `json:"-" db:"id"`
	CartID    uuid.UUID `json:"-" db:"cart_id"`
	ProductID string    `json:"productId" db:"product_id"`
	Quantity  int       `json:"quantity" db:"quantity"`
}

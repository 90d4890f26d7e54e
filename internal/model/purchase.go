package model

import (
	"time"

	"github.com/google/uuid"
)

// Purchase records a completed sale of a product. Purchases are written by
// the checkout flow, which is an extension point; this service only reads
// them for the dashboard.
type Purchase struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	ProductID    string     `json:"productId" db:"product_id"`
	UserID       *uuid.UUID `json:"userId,omitempty" db:"user_id"`
	SessionKey   *string    `json:"sessionKey,omitempty" db:"session_key"`
	Quantity     int        `json:"quantity" db:"quantity"`
	PurchaseDate time.Time  `json:"purchaseDate" db:"purchase_date"`
}

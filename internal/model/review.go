package model

import (
	"time"

	"github.com/google/uuid"
)

// Review represents a customer review of a single product.
type Review struct {
	ID           uuid.UUID `json:"id" db:"id"`
	ProductID    string    `json:"productId" db:"product_id"`
	ReviewerName string    `json:"reviewerName" db:"reviewer_name"`
	Rating       int       `json:"rating" db:"rating"`
	Comment      string    `json:"comment" db:"comment"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

// SiteReview represents a review of the site itself. Listings only
// surface approved reviews; approval defaults to true and exists as a
// moderation hook.
type SiteReview struct {
	ID           uuid.UUID `json:"id" db:"id"`
	ReviewerName string    `json:"reviewerName" db:"reviewer_name"`
	Rating       int       `json:"rating" db:"rating"`
	Comment      string    `json:"comment" db:"comment"`
	Email        *string   `json:"email,omitempty" db:"email"`
	IsApproved   bool      `json:"isApproved" db:"is_approved"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

// ReviewSummary aggregates ratings for a product detail page.
type ReviewSummary struct {
	AverageRating float64 `json:"averageRating"`
	Count         int     `json:"count"`
}

// ReviewRequest represents the payload for posting a review.
type ReviewRequest struct {
	ReviewerName string  `json:"reviewerName"`
	Rating       int     `json:"rating"`
	Comment      string  `json:"comment"`
	Email        *string `json:"email,omitempty"`
}

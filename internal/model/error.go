package model

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON      = "INVALID_JSON"
	ErrCodeMissingField     = "MISSING_FIELD"
	ErrCodeProductNotFound  = "PRODUCT_NOT_FOUND"
	ErrCodeReviewNotFound   = "REVIEW_NOT_FOUND"
	ErrCodeCartNotFound     = "CART_NOT_FOUND"
	ErrCodeInvalidQuantity  = "INVALID_QUANTITY"
	ErrCodeInvalidRating    = "INVALID_RATING"
	ErrCodeValidationFailed = "VALIDATION_FAILED"
	ErrCodeUnauthorised     = "UNAUTHORIZED"
	ErrCodeForbidden        = "FORBIDDEN"
	ErrCodeInternalError    = "INTERNAL_ERROR"
)

// DomainError is a business-rule violation with a stable code that
// handlers map onto an HTTP status deterministically.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrProductNotFound = NewDomainError(ErrCodeProductNotFound, "Product not found")
	ErrCartNotFound    = NewDomainError(ErrCodeCartNotFound, "No cart exists for this user")
	ErrInvalidQuantity = NewDomainError(ErrCodeInvalidQuantity, "Quantity must be greater than zero")
	ErrInvalidRating   = NewDomainError(ErrCodeInvalidRating, "Rating must be between 1 and 5")
)

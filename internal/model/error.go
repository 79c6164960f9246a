package model

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error         string `json:"error"`
	Message       string `json:"message"`
	CorrelationID string `json:"correlationId,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON        = "INVALID_JSON"
	ErrCodeMissingField       = "MISSING_FIELD"
	ErrCodeSizeRequired       = "SIZE_REQUIRED"
	ErrCodeNotAuthenticated   = "NOT_AUTHENTICATED"
	ErrCodeEmptyCart          = "EMPTY_CART"
	ErrCodeIncompleteProfile  = "INCOMPLETE_PROFILE"
	ErrCodeInvalidCartItem    = "INVALID_CART_ITEM"
	ErrCodePromoNotFound      = "PROMO_NOT_FOUND"
	ErrCodePromoExpired       = "PROMO_EXPIRED"
	ErrCodePromoUsageLimit    = "PROMO_USAGE_LIMIT_REACHED"
	ErrCodeProductNotFound    = "PRODUCT_NOT_FOUND"
	ErrCodeInvalidQuantity    = "INVALID_QUANTITY"
	ErrCodeInsufficientStock  = "INSUFFICIENT_STOCK"
	ErrCodeOrderPlacement     = "ORDER_PLACEMENT_FAILED"
	ErrCodeCheckoutInProgress = "CHECKOUT_IN_PROGRESS"
	ErrCodeUnauthorised       = "UNAUTHORIZED"
	ErrCodeForbidden          = "FORBIDDEN"
	ErrCodeInternalError      = "INTERNAL_ERROR"
)

// Domain errors for business logic
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
	ErrSizeRequired       = NewDomainError(ErrCodeSizeRequired, "Please select a size first")
	ErrNotAuthenticated   = NewDomainError(ErrCodeNotAuthenticated, "Please log in to continue")
	ErrEmptyCart          = NewDomainError(ErrCodeEmptyCart, "Your cart is empty")
	ErrIncompleteProfile  = NewDomainError(ErrCodeIncompleteProfile, "Full name, phone and address are required for delivery")
	ErrInvalidCartItem    = NewDomainError(ErrCodeInvalidCartItem, "One or more cart items are invalid")
	ErrPromoNotFound      = NewDomainError(ErrCodePromoNotFound, "Promo code not found")
	ErrPromoExpired       = NewDomainError(ErrCodePromoExpired, "Promo code has expired")
	ErrPromoUsageLimit    = NewDomainError(ErrCodePromoUsageLimit, "Promo code usage limit reached")
	ErrProductNotFound    = NewDomainError(ErrCodeProductNotFound, "One or more products not found")
	ErrInvalidQuantity    = NewDomainError(ErrCodeInvalidQuantity, "Quantity must be greater than zero")
	ErrInsufficientStock  = NewDomainError(ErrCodeInsufficientStock, "Not enough stock for one or more items")
	ErrCheckoutInProgress = NewDomainError(ErrCodeCheckoutInProgress, "A checkout is already in progress")
)

package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
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
	ErrNotFound           = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists      = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput       = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrUnauthorized       = NewDomainError("UNAUTHORIZED", "Not authorized to perform this action")
	ErrForbidden          = NewDomainError("FORBIDDEN", "Access to this resource is forbidden")
	ErrInvalidState       = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
	ErrInvalidStock       = NewDomainError("INVALID_STOCK", "Stock level cannot be negative")
	ErrInvalidQuantity    = NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	ErrStockLimit         = NewDomainError("STOCK_LIMIT", "Requested quantity exceeds available stock")
	ErrEmptyCart          = NewDomainError("EMPTY_CART", "Cart is empty")
	ErrPaymentExpired     = NewDomainError("PAYMENT_EXPIRED", "Payment window has expired")
	ErrInvalidCredentials = NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	ErrInvalidToken       = NewDomainError("INVALID_TOKEN", "Token is invalid or expired")
)

package dto

import "net/http"

// Error codes used by the HTTP layer itself
const (
	ErrCodeInternal   = "INTERNAL"
	ErrCodeBadRequest = "BAD_REQUEST"
	ErrCodeValidation = "VALIDATION_ERROR"
)

// ErrorCodeHTTPStatus maps domain error codes to HTTP status codes.
// Codes missing from the map fall back to 500.
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:   http.StatusInternalServerError,
	ErrCodeBadRequest: http.StatusBadRequest,
	ErrCodeValidation: http.StatusBadRequest,

	"NOT_FOUND":      http.StatusNotFound,
	"ALREADY_EXISTS": http.StatusConflict,

	"UNAUTHORIZED":        http.StatusUnauthorized,
	"INVALID_CREDENTIALS": http.StatusUnauthorized,
	"INVALID_TOKEN":       http.StatusUnauthorized,
	"TOKEN_EXPIRED":       http.StatusUnauthorized,
	"FORBIDDEN":           http.StatusForbidden,

	"INVALID_INPUT":    http.StatusBadRequest,
	"INVALID_NAME":     http.StatusBadRequest,
	"INVALID_EMAIL":    http.StatusBadRequest,
	"INVALID_PRICE":    http.StatusBadRequest,
	"INVALID_CATEGORY": http.StatusBadRequest,
	"INVALID_RATING":   http.StatusBadRequest,
	"INVALID_STATUS":   http.StatusBadRequest,
	"WEAK_PASSWORD":    http.StatusBadRequest,

	"INVALID_STATE":    http.StatusUnprocessableEntity,
	"INVALID_STOCK":    http.StatusUnprocessableEntity,
	"INVALID_QUANTITY": http.StatusUnprocessableEntity,
	"STOCK_LIMIT":      http.StatusUnprocessableEntity,
	"EMPTY_CART":       http.StatusUnprocessableEntity,
	"PAYMENT_EXPIRED":  http.StatusUnprocessableEntity,
	"EMPTY_ORDER":      http.StatusUnprocessableEntity,
}

// GetHTTPStatus returns the HTTP status code for an error code
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

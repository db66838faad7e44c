package errorx

import (
	"fmt"
	"net/http"
)

// ErrorCategory represents different categories of errors
type ErrorCategory string

const (
	CategoryValidation       ErrorCategory = "validation"
	CategoryAuthentication   ErrorCategory = "authentication"
	CategoryAuthorization    ErrorCategory = "authorization"
	CategoryNotFound         ErrorCategory = "not_found"
	CategoryConflict         ErrorCategory = "conflict"
	CategoryInternal         ErrorCategory = "internal"
	CategoryStoreUnavailable ErrorCategory = "store_unavailable"
)

// APIError represents a structured API error
type APIError struct {
	Code       string         `json:"code"`
	Message    string         `json:"message"`
	Category   ErrorCategory  `json:"category"`
	HTTPStatus int            `json:"-"`
	Details    map[string]any `json:"details,omitempty"`
	TraceID    string         `json:"trace_id,omitempty"`
	Timestamp  string         `json:"timestamp,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Category, e.Message)
}

// WithDetail returns a copy of the error with an extra detail attached.
// Predefined errors are shared values and must not be mutated.
func (e *APIError) WithDetail(key string, value any) *APIError {
	clone := *e
	clone.Details = make(map[string]any, len(e.Details)+1)
	for k, v := range e.Details {
		clone.Details[k] = v
	}
	clone.Details[key] = value
	return &clone
}

// New creates an APIError with an explicit category and HTTP status
func New(code, message string, category ErrorCategory, status int) *APIError {
	return &APIError{
		Code:       code,
		Message:    message,
		Category:   category,
		HTTPStatus: status,
	}
}

// NewValidation creates a request-validation error
func NewValidation(code, message string) *APIError {
	return New(code, message, CategoryValidation, http.StatusBadRequest)
}

// NewNotFound creates a missing-resource error
func NewNotFound(code, message string) *APIError {
	return New(code, message, CategoryNotFound, http.StatusNotFound)
}

// NewConflict creates a uniqueness-violation error
func NewConflict(code, message string) *APIError {
	return New(code, message, CategoryConflict, http.StatusConflict)
}

// NewStoreUnavailable wraps an underlying persistence failure as a retryable error
func NewStoreUnavailable(err error) *APIError {
	e := New("E5031", "Storage backend unavailable", CategoryStoreUnavailable, http.StatusServiceUnavailable)
	if err != nil {
		return e.WithDetail("cause", err.Error())
	}
	return e
}

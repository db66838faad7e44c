package errorx

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrorHandler provides unified error handling for gin handlers
type ErrorHandler struct {
	logger *zap.Logger
}

// NewErrorHandler creates a new error handler
func NewErrorHandler(logger *zap.Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// Handle converts any error to an APIError and writes the JSON response
func (h *ErrorHandler) Handle(c *gin.Context, err error) {
	if err == nil {
		return
	}

	apiErr := ConvertToAPIError(err)
	apiErr.TraceID = uuid.New().String()
	apiErr.Timestamp = time.Now().UTC().Format(time.RFC3339)

	h.logError(c, apiErr, err)

	c.AbortWithStatusJSON(apiErr.HTTPStatus, gin.H{"error": apiErr})
}

// ConvertToAPIError maps arbitrary errors onto the API error taxonomy
func ConvertToAPIError(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		clone := *apiErr
		return &clone
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NewNotFound("E4000", "Resource not found")
	}

	// Anything else reaching this point is a persistence failure; surface it
	// as retryable rather than masking it as empty data.
	return NewStoreUnavailable(err)
}

func (h *ErrorHandler) logError(c *gin.Context, apiErr *APIError, originalErr error) {
	fields := []zap.Field{
		zap.String("trace_id", apiErr.TraceID),
		zap.String("error_code", apiErr.Code),
		zap.String("category", string(apiErr.Category)),
		zap.Int("http_status", apiErr.HTTPStatus),
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method),
		zap.String("client_ip", c.ClientIP()),
	}
	if originalErr != nil && originalErr.Error() != apiErr.Message {
		fields = append(fields, zap.Error(originalErr))
	}

	switch apiErr.Category {
	case CategoryInternal, CategoryStoreUnavailable:
		h.logger.Error("request failed", fields...)
	default:
		h.logger.Warn("request rejected", fields...)
	}
}

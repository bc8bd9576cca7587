package apierror

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ContentTypeProblemJSON is the MIME type for RFC 9457 Problem Details.
const ContentTypeProblemJSON = "application/problem+json"

// WriteProblem writes a ProblemDetails response to the gin context.
// It sets the correct Content-Type header and, if RetryAfter is set,
// also sets the Retry-After header.
func WriteProblem(c *gin.Context, problem *ProblemDetails) {
	c.Header("Content-Type", ContentTypeProblemJSON)

	if problem.RetryAfter != nil {
		c.Header("Retry-After", strconv.Itoa(*problem.RetryAfter))
	}
	if problem.Instance == "" && c.Request != nil {
		problem.Instance = c.Request.URL.Path
	}

	c.JSON(problem.Status, problem)
}

// GetRequestID extracts the request ID from the gin context.
// Returns empty string if not found.
func GetRequestID(c *gin.Context) string {
	if requestID, exists := c.Get("request_id"); exists {
		if id, ok := requestID.(string); ok {
			return id
		}
	}
	return c.GetHeader("X-Request-ID")
}

// NewValidationError creates a 400 Bad Request response for validation failures.
// Multiple field errors can be included to report all validation issues at once.
func NewValidationError(requestID string, errors []FieldError) *ProblemDetails {
	return &ProblemDetails{
		Type:        TypeValidation,
		Title:       TitleValidation,
		Status:      http.StatusBadRequest,
		Detail:      "One or more fields failed validation",
		RequestID:   requestID,
		UserMessage: "Please check your input and try again",
		Errors:      errors,
	}
}

// NewNotFoundError creates a 404 Not Found response.
func NewNotFoundError(requestID, path string) *ProblemDetails {
	return &ProblemDetails{
		Type:        TypeNotFound,
		Title:       TitleNotFound,
		Status:      http.StatusNotFound,
		Detail:      fmt.Sprintf("No route matches '%s'", path),
		RequestID:   requestID,
		UserMessage: "The requested resource could not be found",
	}
}

// NewRateLimitError creates a 429 Too Many Requests response.
// retryAfter specifies seconds until the client should retry.
func NewRateLimitError(requestID string, retryAfter int) *ProblemDetails {
	return &ProblemDetails{
		Type:        TypeRateLimit,
		Title:       TitleRateLimit,
		Status:      http.StatusTooManyRequests,
		Detail:      fmt.Sprintf("Rate limit exceeded. Please retry after %d seconds", retryAfter),
		RequestID:   requestID,
		UserMessage: "Too many requests. Please wait before trying again.",
		RetryAfter:  &retryAfter,
	}
}

// NewInternalError creates a 500 Internal Server Error response.
// Internal error details are not exposed; log them server-side.
func NewInternalError(requestID string) *ProblemDetails {
	return &ProblemDetails{
		Type:        TypeInternal,
		Title:       TitleInternal,
		Status:      http.StatusInternalServerError,
		Detail:      "An unexpected error occurred",
		RequestID:   requestID,
		UserMessage: "Something went wrong. Please try again later.",
	}
}

// NewBadRequestError creates a 400 Bad Request response for malformed requests.
func NewBadRequestError(requestID, detail, userMessage string) *ProblemDetails {
	return &ProblemDetails{
		Type:        TypeBadRequest,
		Title:       TitleBadRequest,
		Status:      http.StatusBadRequest,
		Detail:      detail,
		RequestID:   requestID,
		UserMessage: userMessage,
	}
}

// NewInvalidCategoryError creates a 400 response for an unknown activity category.
func NewInvalidCategoryError(requestID, category string) *ProblemDetails {
	return &ProblemDetails{
		Type:        TypeInvalidCategory,
		Title:       TitleInvalidCategory,
		Status:      http.StatusBadRequest,
		Detail:      fmt.Sprintf("'%s' is not a known activity category", category),
		RequestID:   requestID,
		UserMessage: "That activity type is not supported",
		Errors: []FieldError{
			{Field: "category", Message: "must be one of the supported activity categories", Code: "invalid_category"},
		},
	}
}

// NewInvalidWindowError creates a 400 response for a days parameter outside 1..maxDays.
func NewInvalidWindowError(requestID, value string, maxDays int) *ProblemDetails {
	return &ProblemDetails{
		Type:        TypeInvalidWindow,
		Title:       TitleInvalidWindow,
		Status:      http.StatusBadRequest,
		Detail:      fmt.Sprintf("days must be an integer between 1 and %d, got '%s'", maxDays, value),
		RequestID:   requestID,
		UserMessage: "Please choose a valid time range",
		Errors: []FieldError{
			{Field: "days", Message: fmt.Sprintf("must be between 1 and %d", maxDays), Code: "invalid_window"},
		},
	}
}

// NewInvalidRecordIDError creates a 400 Bad Request response for a record ID that is not a UUIDv7.
func NewInvalidRecordIDError(requestID, value string) *ProblemDetails {
	return &ProblemDetails{
		Type:        TypeInvalidRecordID,
		Title:       TitleInvalidRecordID,
		Status:      http.StatusBadRequest,
		Detail:      fmt.Sprintf("Invalid record ID '%s'", value),
		RequestID:   requestID,
		UserMessage: "Invalid identifier format",
		Errors: []FieldError{
			{Field: "id", Message: "must be a UUIDv7", Code: "invalid_record_id"},
		},
	}
}

// NewFutureTimestampError creates a 400 Bad Request response for IDs minted too far in the future.
func NewFutureTimestampError(requestID, field string) *ProblemDetails {
	return &ProblemDetails{
		Type:        TypeFutureTimestamp,
		Title:       TitleFutureTimestamp,
		Status:      http.StatusBadRequest,
		Detail:      fmt.Sprintf("Field '%s' contains a timestamp more than 1 minute in the future", field),
		RequestID:   requestID,
		UserMessage: "The timestamp is too far in the future",
		Errors: []FieldError{
			{Field: field, Message: "timestamp cannot be more than 1 minute in the future", Code: "future_timestamp"},
		},
	}
}

// NewStorageUnavailableError creates a 503 Service Unavailable response for
// a failing record store. retryAfter specifies seconds until the client should retry.
func NewStorageUnavailableError(requestID string, retryAfter int) *ProblemDetails {
	return &ProblemDetails{
		Type:        TypeStorageUnavailable,
		Title:       TitleStorageUnavailable,
		Status:      http.StatusServiceUnavailable,
		Detail:      "Activity storage is temporarily unavailable",
		RequestID:   requestID,
		UserMessage: "Your data can't be reached right now. Please try again shortly.",
		RetryAfter:  &retryAfter,
	}
}

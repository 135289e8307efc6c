// Package responses shapes every success and failure body the API emits.
// Success bodies carry a message plus endpoint-specific extras; failures use
// RFC 7807 problem documents from pkg/errors.
package responses

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pomi-ng/StatusCodesApi/pkg/errors"
)

// StandardResponse represents a plain success body
type StandardResponse struct {
	Message string `json:"message"`
	TraceID string `json:"trace_id,omitempty"`
}

// ResourceResponse represents a creation body echoing the resource
type ResourceResponse struct {
	StandardResponse
	ID       int    `json:"id"`
	Resource string `json:"resource,omitempty"`
}

// CountResponse represents a success body echoing a request count
type CountResponse struct {
	StandardResponse
	Requests int `json:"requests"`
}

// OK sends a 200 response with the given message
func OK(c *gin.Context, message string) {
	c.JSON(http.StatusOK, StandardResponse{
		Message: message,
		TraceID: getTraceID(c),
	})
}

// Created sends a 201 response echoing the created resource
func Created(c *gin.Context, message string, id int, resource string) {
	c.JSON(http.StatusCreated, ResourceResponse{
		StandardResponse: StandardResponse{
			Message: message,
			TraceID: getTraceID(c),
		},
		ID:       id,
		Resource: resource,
	})
}

// CountOK sends a 200 response echoing the observed request count
func CountOK(c *gin.Context, message string, requests int) {
	c.JSON(http.StatusOK, CountResponse{
		StandardResponse: StandardResponse{
			Message: message,
			TraceID: getTraceID(c),
		},
		Requests: requests,
	})
}

// NoContent sends a 204 No Content response
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error sends an error response using RFC 7807 format
func Error(c *gin.Context, problemDetails *errors.ProblemDetails) {
	if problemDetails.TraceID == "" {
		if traceID := getTraceID(c); traceID != "" {
			problemDetails.WithTraceID(traceID)
		}
	}

	c.Header("Content-Type", "application/problem+json")
	c.JSON(problemDetails.Status, problemDetails)
}

// BadRequest sends a 400 Bad Request response
func BadRequest(c *gin.Context, detail string, validationErrors ...errors.ValidationError) {
	problemDetails := errors.NewValidationError(detail, c.Request.URL.Path)
	if len(validationErrors) > 0 {
		problemDetails.WithValidationErrors(validationErrors)
	}
	Error(c, problemDetails)
}

// Unauthorized sends a 401 Unauthorized response
func Unauthorized(c *gin.Context, detail string) {
	Error(c, errors.NewUnauthorizedError(detail, c.Request.URL.Path))
}

// Forbidden sends a 403 Forbidden response
func Forbidden(c *gin.Context, detail string) {
	Error(c, errors.NewForbiddenError(detail, c.Request.URL.Path))
}

// NotFound sends a 404 Not Found response
func NotFound(c *gin.Context, detail string) {
	Error(c, errors.NewNotFoundError(detail, c.Request.URL.Path))
}

// MethodNotAllowed sends a 405 Method Not Allowed response
func MethodNotAllowed(c *gin.Context, detail string) {
	Error(c, errors.NewMethodNotAllowedError(detail, c.Request.URL.Path))
}

// NotAcceptable sends a 406 Not Acceptable response
func NotAcceptable(c *gin.Context, detail string) {
	Error(c, errors.NewNotAcceptableError(detail, c.Request.URL.Path))
}

// Conflict sends a 409 Conflict response
func Conflict(c *gin.Context, detail string) {
	Error(c, errors.NewConflictError(detail, c.Request.URL.Path))
}

// UnsupportedMediaType sends a 415 Unsupported Media Type response
func UnsupportedMediaType(c *gin.Context, detail string) {
	Error(c, errors.NewUnsupportedMediaTypeError(detail, c.Request.URL.Path))
}

// UnprocessableEntity sends a 422 Unprocessable Entity response
func UnprocessableEntity(c *gin.Context, detail string, validationErrors ...errors.ValidationError) {
	problemDetails := errors.NewUnprocessableEntityError(detail, c.Request.URL.Path)
	if len(validationErrors) > 0 {
		problemDetails.WithValidationErrors(validationErrors)
	}
	Error(c, problemDetails)
}

// TooManyRequests sends a 429 Too Many Requests response
func TooManyRequests(c *gin.Context, detail string) {
	Error(c, errors.NewRateLimitError(detail, c.Request.URL.Path))
}

// InternalServerError sends a 500 Internal Server Error response
func InternalServerError(c *gin.Context, detail string) {
	Error(c, errors.NewInternalError(detail, c.Request.URL.Path))
}

// BadGateway sends a 502 Bad Gateway response
func BadGateway(c *gin.Context, detail string) {
	Error(c, errors.NewBadGatewayError(detail, c.Request.URL.Path))
}

// ServiceUnavailable sends a 503 Service Unavailable response
func ServiceUnavailable(c *gin.Context, detail string) {
	Error(c, errors.NewServiceUnavailableError(detail, c.Request.URL.Path))
}

// GatewayTimeout sends a 504 Gateway Timeout response
func GatewayTimeout(c *gin.Context, detail string) {
	Error(c, errors.NewGatewayTimeoutError(detail, c.Request.URL.Path))
}

// getTraceID extracts trace ID from context
func getTraceID(c *gin.Context) string {
	if traceID, exists := c.Get("trace_id"); exists {
		if id, ok := traceID.(string); ok {
			return id
		}
	}

	return c.GetHeader("X-Trace-ID")
}

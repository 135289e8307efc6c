// Package errors provides error responses using the RFC 7807 Problem Details standard
package errors

import (
	"encoding/json"
	"errors"
	"net/http"
)

// Standard error functions
var (
	Is     = errors.Is
	As     = errors.As
	Join   = errors.Join
	Unwrap = errors.Unwrap
)

// Problem type URIs
const (
	TypeValidationError     = "https://api.statuscodes.dev/problems/validation-error"
	TypeUnauthorized        = "https://api.statuscodes.dev/problems/unauthorized"
	TypeForbidden           = "https://api.statuscodes.dev/problems/forbidden"
	TypeNotFound            = "https://api.statuscodes.dev/problems/not-found"
	TypeMethodNotAllowed    = "https://api.statuscodes.dev/problems/method-not-allowed"
	TypeNotAcceptable       = "https://api.statuscodes.dev/problems/not-acceptable"
	TypeConflict            = "https://api.statuscodes.dev/problems/conflict"
	TypeUnsupportedMedia    = "https://api.statuscodes.dev/problems/unsupported-media-type"
	TypeUnprocessableEntity = "https://api.statuscodes.dev/problems/unprocessable-entity"
	TypeRateLimit           = "https://api.statuscodes.dev/problems/rate-limit"
	TypeInternalError       = "https://api.statuscodes.dev/problems/internal-error"
	TypeBadGateway          = "https://api.statuscodes.dev/problems/bad-gateway"
	TypeServiceUnavailable  = "https://api.statuscodes.dev/problems/service-unavailable"
	TypeGatewayTimeout      = "https://api.statuscodes.dev/problems/gateway-timeout"
)

// Problem titles
const (
	TitleValidationError     = "Validation Error"
	TitleUnauthorized        = "Unauthorized"
	TitleForbidden           = "Forbidden"
	TitleNotFound            = "Not Found"
	TitleMethodNotAllowed    = "Method Not Allowed"
	TitleNotAcceptable       = "Not Acceptable"
	TitleConflict            = "Conflict"
	TitleUnsupportedMedia    = "Unsupported Media Type"
	TitleUnprocessableEntity = "Unprocessable Entity"
	TitleRateLimit           = "Rate Limit Exceeded"
	TitleInternalError       = "Internal Server Error"
	TitleBadGateway          = "Bad Gateway"
	TitleServiceUnavailable  = "Service Unavailable"
	TitleGatewayTimeout      = "Gateway Timeout"
)

// ValidationError represents a validation error for RFC 7807
type ValidationError struct {
	Field   string      `json:"field"`
	Value   interface{} `json:"value,omitempty"`
	Message string      `json:"message"`
	Code    string      `json:"code,omitempty"`
}

// ProblemDetails represents an RFC 7807 Problem Details response
type ProblemDetails struct {
	Type     string                 `json:"type"`
	Title    string                 `json:"title"`
	Status   int                    `json:"status"`
	Detail   string                 `json:"detail,omitempty"`
	Instance string                 `json:"instance,omitempty"`
	TraceID  string                 `json:"trace_id,omitempty"`
	Errors   []ValidationError      `json:"errors,omitempty"`
	Extra    map[string]interface{} `json:"-"`
}

// Error implements the error interface
func (p *ProblemDetails) Error() string {
	return p.Detail
}

// WithTraceID adds a trace ID to the problem details
func (p *ProblemDetails) WithTraceID(traceID string) *ProblemDetails {
	p.TraceID = traceID
	return p
}

// WithValidationErrors adds validation errors to the problem details
func (p *ProblemDetails) WithValidationErrors(errors []ValidationError) *ProblemDetails {
	p.Errors = errors
	return p
}

// WithExtra adds extra fields to the problem details (they will be serialized at the top level)
func (p *ProblemDetails) WithExtra(key string, value interface{}) *ProblemDetails {
	if p.Extra == nil {
		p.Extra = make(map[string]interface{})
	}
	p.Extra[key] = value
	return p
}

// MarshalJSON implements custom JSON marshaling to include extra fields at the top level
func (p *ProblemDetails) MarshalJSON() ([]byte, error) {
	result := make(map[string]interface{})
	result["type"] = p.Type
	result["title"] = p.Title
	result["status"] = p.Status
	if p.Detail != "" {
		result["detail"] = p.Detail
	}
	if p.Instance != "" {
		result["instance"] = p.Instance
	}
	if p.TraceID != "" {
		result["trace_id"] = p.TraceID
	}
	if len(p.Errors) > 0 {
		result["errors"] = p.Errors
	}

	for k, v := range p.Extra {
		result[k] = v
	}

	return json.Marshal(result)
}

// Constructors for the problem types this API returns

// NewValidationError creates a validation error problem
func NewValidationError(detail, instance string) *ProblemDetails {
	return &ProblemDetails{
		Type:     TypeValidationError,
		Title:    TitleValidationError,
		Status:   http.StatusBadRequest,
		Detail:   detail,
		Instance: instance,
	}
}

// NewUnauthorizedError creates an unauthorized error problem
func NewUnauthorizedError(detail, instance string) *ProblemDetails {
	return &ProblemDetails{
		Type:     TypeUnauthorized,
		Title:    TitleUnauthorized,
		Status:   http.StatusUnauthorized,
		Detail:   detail,
		Instance: instance,
	}
}

// NewForbiddenError creates a forbidden error problem
func NewForbiddenError(detail, instance string) *ProblemDetails {
	return &ProblemDetails{
		Type:     TypeForbidden,
		Title:    TitleForbidden,
		Status:   http.StatusForbidden,
		Detail:   detail,
		Instance: instance,
	}
}

// NewNotFoundError creates a not found error problem
func NewNotFoundError(detail, instance string) *ProblemDetails {
	return &ProblemDetails{
		Type:     TypeNotFound,
		Title:    TitleNotFound,
		Status:   http.StatusNotFound,
		Detail:   detail,
		Instance: instance,
	}
}

// NewMethodNotAllowedError creates a method not allowed error problem
func NewMethodNotAllowedError(detail, instance string) *ProblemDetails {
	return &ProblemDetails{
		Type:     TypeMethodNotAllowed,
		Title:    TitleMethodNotAllowed,
		Status:   http.StatusMethodNotAllowed,
		Detail:   detail,
		Instance: instance,
	}
}

// NewNotAcceptableError creates a not acceptable error problem
func NewNotAcceptableError(detail, instance string) *ProblemDetails {
	return &ProblemDetails{
		Type:     TypeNotAcceptable,
		Title:    TitleNotAcceptable,
		Status:   http.StatusNotAcceptable,
		Detail:   detail,
		Instance: instance,
	}
}

// NewConflictError creates a conflict error problem
func NewConflictError(detail, instance string) *ProblemDetails {
	return &ProblemDetails{
		Type:     TypeConflict,
		Title:    TitleConflict,
		Status:   http.StatusConflict,
		Detail:   detail,
		Instance: instance,
	}
}

// NewUnsupportedMediaTypeError creates an unsupported media type error problem
func NewUnsupportedMediaTypeError(detail, instance string) *ProblemDetails {
	return &ProblemDetails{
		Type:     TypeUnsupportedMedia,
		Title:    TitleUnsupportedMedia,
		Status:   http.StatusUnsupportedMediaType,
		Detail:   detail,
		Instance: instance,
	}
}

// NewUnprocessableEntityError creates an unprocessable entity error problem
func NewUnprocessableEntityError(detail, instance string) *ProblemDetails {
	return &ProblemDetails{
		Type:     TypeUnprocessableEntity,
		Title:    TitleUnprocessableEntity,
		Status:   http.StatusUnprocessableEntity,
		Detail:   detail,
		Instance: instance,
	}
}

// NewRateLimitError creates a rate limit error problem
func NewRateLimitError(detail, instance string) *ProblemDetails {
	return &ProblemDetails{
		Type:     TypeRateLimit,
		Title:    TitleRateLimit,
		Status:   http.StatusTooManyRequests,
		Detail:   detail,
		Instance: instance,
	}
}

// NewInternalError creates an internal server error problem
func NewInternalError(detail, instance string) *ProblemDetails {
	return &ProblemDetails{
		Type:     TypeInternalError,
		Title:    TitleInternalError,
		Status:   http.StatusInternalServerError,
		Detail:   detail,
		Instance: instance,
	}
}

// NewBadGatewayError creates a bad gateway error problem
func NewBadGatewayError(detail, instance string) *ProblemDetails {
	return &ProblemDetails{
		Type:     TypeBadGateway,
		Title:    TitleBadGateway,
		Status:   http.StatusBadGateway,
		Detail:   detail,
		Instance: instance,
	}
}

// NewServiceUnavailableError creates a service unavailable error problem
func NewServiceUnavailableError(detail, instance string) *ProblemDetails {
	return &ProblemDetails{
		Type:     TypeServiceUnavailable,
		Title:    TitleServiceUnavailable,
		Status:   http.StatusServiceUnavailable,
		Detail:   detail,
		Instance: instance,
	}
}

// NewGatewayTimeoutError creates a gateway timeout error problem
func NewGatewayTimeoutError(detail, instance string) *ProblemDetails {
	return &ProblemDetails{
		Type:     TypeGatewayTimeout,
		Title:    TitleGatewayTimeout,
		Status:   http.StatusGatewayTimeout,
		Detail:   detail,
		Instance: instance,
	}
}

// NewProblemDetails creates a generic problem details with all fields
func NewProblemDetails(problemType, title string, status int, detail, instance string) *ProblemDetails {
	return &ProblemDetails{
		Type:     problemType,
		Title:    title,
		Status:   status,
		Detail:   detail,
		Instance: instance,
	}
}

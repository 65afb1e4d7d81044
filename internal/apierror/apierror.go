// Package apierror provides the standardized error envelope for the API.
// All errors returned to clients go through this package to ensure consistency
// and to prevent leaking internal details (stack traces, DB errors, etc.).
package apierror

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses:
// {error, code?, details?}.
type APIError struct {
	Error   string      `json:"error"`
	Code    string      `json:"code,omitempty"`
	Details interface{} `json:"details,omitempty"`
}

// Error codes used across handlers. DatabaseError responses stay opaque —
// the driver error is logged server-side only.
const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeNotFound     = "NOT_FOUND"
	CodeDatabase     = "DATABASE_ERROR"
	CodeUpstreamAI   = "UPSTREAM_AI_ERROR"
)

func New(msg string) *APIError {
	return &APIError{Error: msg}
}

func WithCode(msg, code string) *APIError {
	return &APIError{Error: msg, Code: code}
}

// Unauthorized is the fixed 401 body.
func Unauthorized() *APIError {
	return &APIError{Error: "Unauthorized", Code: CodeUnauthorized}
}

// NewValidation wraps field-level validation messages.
func NewValidation(fields map[string]string) *APIError {
	return &APIError{Error: "Validation failed", Code: CodeValidation, Details: fields}
}

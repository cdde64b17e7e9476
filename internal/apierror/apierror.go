// Package apierror holds the JSON error envelope of the register API. Every
// 4xx/5xx body carries a stable code the back-office client can branch on,
// plus a human-readable detail that never includes storage internals.
package apierror

// Stable codes. Clients match on these, so treat them as part of the API.
const (
	CodeInvalidRequest    = "invalid_request"
	CodeValidation        = "validation_failed"
	CodeUnauthorized      = "unauthorized"
	CodeForbidden         = "forbidden"
	CodeProfileMissing    = "profile_missing"
	CodeNotFound          = "not_found"
	CodeAlreadyClosed     = "already_closed"
	CodeInvalidTransition = "invalid_status_transition"
	CodeDuplicateSupplier = "duplicate_supplier"
	CodeRateLimited       = "rate_limited"
	CodeInternal          = "internal_error"
)

// APIError is the envelope for every non-validation error response.
type APIError struct {
	Code   string `json:"code"`
	Detail string `json:"detail"`
}

func New(code, msg string) *APIError {
	return &APIError{Code: code, Detail: msg}
}

// Internal is the only body a 500 ever gets.
func Internal() *APIError {
	return New(CodeInternal, "Internal server error")
}

// ValidationError carries one message per offending JSON field.
type ValidationError struct {
	Code   string            `json:"code"`
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Code: CodeValidation, Detail: "Validation failed", Fields: fields}
}

package model

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error         string `json:"error"`
	Message       string `json:"message"`
	CorrelationID string `json:"correlationId,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON         = "INVALID_JSON"
	ErrCodeCerealNotFound      = "CEREAL_NOT_FOUND"
	ErrCodeInvalidSortColumn   = "INVALID_SORT_COLUMN"
	ErrCodeInvalidFilterColumn = "INVALID_FILTER_COLUMN"
	ErrCodeForbiddenUser       = "FORBIDDEN_USER"
	ErrCodePasswordTooShort    = "PASSWORD_TOO_SHORT"
	ErrCodeUserExists          = "USER_EXISTS"
	ErrCodeInternalError       = "INTERNAL_ERROR"
)

// DomainError carries a stable code alongside a human-readable message.
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
	ErrCerealNotFound      = NewDomainError(ErrCodeCerealNotFound, "Cereal not found")
	ErrInvalidSortColumn   = NewDomainError(ErrCodeInvalidSortColumn, "Invalid sort_by parameter")
	ErrInvalidFilterColumn = NewDomainError(ErrCodeInvalidFilterColumn, "Invalid filter column")
	ErrForbiddenUser       = NewDomainError(ErrCodeForbiddenUser, "Unauthorized access")
	ErrPasswordTooShort    = NewDomainError(ErrCodePasswordTooShort, "Password must be at least 8 characters long")
	ErrUserExists          = NewDomainError(ErrCodeUserExists, "Username already exists")
)

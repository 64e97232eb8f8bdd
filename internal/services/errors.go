// internal/services/errors.go
package services

// ServiceError carries a classification the handler layer maps onto an HTTP
// status, a user-facing message, and the envelope's error detail list.
type ServiceError struct {
	Kind    ErrorKind
	Message string
	Details []string
	cause   error
}

type ErrorKind int

const (
	ErrorKindValidation ErrorKind = iota
	ErrorKindUnauthorized
	ErrorKindForbidden
	ErrorKindNotFound
	ErrorKindConflict
	ErrorKindInternal
)

func (e *ServiceError) Error() string {
	return e.Message
}

func (e *ServiceError) Unwrap() error {
	return e.cause
}

func NewValidationError(message string, details ...string) *ServiceError {
	return &ServiceError{Kind: ErrorKindValidation, Message: message, Details: details}
}

func NewUnauthorizedError(message string, details ...string) *ServiceError {
	return &ServiceError{Kind: ErrorKindUnauthorized, Message: message, Details: details}
}

func NewNotFoundError(message string, details ...string) *ServiceError {
	return &ServiceError{Kind: ErrorKindNotFound, Message: message, Details: details}
}

func NewConflictError(message string, details ...string) *ServiceError {
	return &ServiceError{Kind: ErrorKindConflict, Message: message, Details: details}
}

// NewInternalError hides the underlying storage fault from the caller while
// keeping it reachable through Unwrap for logging.
func NewInternalError(cause error, details ...string) *ServiceError {
	return &ServiceError{Kind: ErrorKindInternal, Message: "Internal server error", Details: details, cause: cause}
}

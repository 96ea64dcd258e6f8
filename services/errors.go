package services

// ValidationError is returned when client input fails a precondition.
// It is never retried and maps to HTTP 400.
type ValidationError struct {
	Code    string
	Message string
	Details string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NotFoundError is returned when a lookup by identifier matches no row
type NotFoundError struct {
	Code    string
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

// BackendError wraps a failure reported by the database or object storage.
// Message is what callers are shown; Err keeps the underlying cause.
type BackendError struct {
	Code    string
	Message string
	Err     error
}

func (e *BackendError) Error() string {
	return e.Message
}

func (e *BackendError) Unwrap() error {
	return e.Err
}

func newValidationError(code, message string) *ValidationError {
	return &ValidationError{Code: code, Message: message}
}

func newDatabaseError(err error) *BackendError {
	return &BackendError{Code: "DATABASE_ERROR", Message: err.Error(), Err: err}
}

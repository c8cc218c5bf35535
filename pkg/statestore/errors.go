package statestore

// Domain error types raised by mocked endpoints. Each carries a stable
// exception-type name so normalized error documents stay recognizable to
// harnesses regardless of the Go types involved.

// NotFoundError reports a lookup that matched nothing.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

// ExceptionType identifies this error in normalized documents.
func (e *NotFoundError) ExceptionType() string { return "NotFoundError" }

// ValidationError reports input that failed an endpoint's schema or value
// checks.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// ExceptionType identifies this error in normalized documents.
func (e *ValidationError) ExceptionType() string { return "ValidationError" }

// ConflictError reports a create that collided with an existing record.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// ExceptionType identifies this error in normalized documents.
func (e *ConflictError) ExceptionType() string { return "ConflictError" }

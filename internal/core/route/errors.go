package route

import (
	"errors"
	"fmt"
)

// ErrInvalidRoute is returned when a route definition cannot be registered.
var ErrInvalidRoute = errors.New("route: invalid route")

// InvocationError reports a handler fault. Cause carries the original error,
// or a synthesized one when the handler panicked.
type InvocationError struct {
	Method Method
	Path   string
	Cause  error
}

// Error implements the error interface.
func (e *InvocationError) Error() string {
	return fmt.Sprintf("route: invoke %s %s: %v", e.Method, e.Path, e.Cause)
}

// Unwrap returns the underlying handler error.
func (e *InvocationError) Unwrap() error {
	return e.Cause
}

// IsInvocationError reports whether err is (or wraps) an InvocationError.
func IsInvocationError(err error) bool {
	var ie *InvocationError
	return errors.As(err, &ie)
}

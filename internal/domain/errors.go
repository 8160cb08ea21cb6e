package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by services. The transport layer maps them
// to HTTP status codes; nothing below the handler knows about HTTP.
var (
	// ErrUnauthenticated means the credential was absent, malformed, or
	// failed verification.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrForbidden means the principal is valid but does not own the
	// target resource.
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound means the resource id does not resolve.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput means the request body failed field-presence
	// validation before reaching any decision logic.
	ErrInvalidInput = errors.New("invalid input")
)

// StoreError wraps a failure of the underlying document store. Its
// message is surfaced to the client; nothing beyond the store's own
// error text leaks.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store operation %s failed: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// NewStoreError wraps err as a StoreError for operation op.
func NewStoreError(op string, err error) *StoreError {
	return &StoreError{Op: op, Err: err}
}

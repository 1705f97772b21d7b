package openlibrary

import (
	"errors"
	"fmt"
)

// Sentinel errors for Open Library API operations.
var (
	ErrNotFound    = errors.New("openlibrary: not found")
	ErrRateLimited = errors.New("openlibrary: rate limited by server")
	ErrBadRequest  = errors.New("openlibrary: bad request")
	ErrServer      = errors.New("openlibrary: server error")
)

// Error wraps an underlying error with operation context.
type Error struct {
	Op    string // Operation: "search", "searchByAuthor"
	Query string
	Err   error
}

func (e *Error) Error() string {
	if e.Query != "" {
		return fmt.Sprintf("openlibrary %s [%s]: %v", e.Op, e.Query, e.Err)
	}
	return fmt.Sprintf("openlibrary %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// wrapError creates an Error with context.
func wrapError(op, query string, err error) error {
	return &Error{
		Op:    op,
		Query: query,
		Err:   err,
	}
}

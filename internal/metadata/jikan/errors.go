package jikan

import (
	"errors"
	"fmt"
)

// Sentinel errors for Jikan API operations.
var (
	ErrNotFound    = errors.New("jikan: not found")
	ErrRateLimited = errors.New("jikan: rate limited by server")
	ErrBadRequest  = errors.New("jikan: bad request")
	ErrServer      = errors.New("jikan: server error")
)

// Error wraps an underlying error with operation context.
type Error struct {
	Op      string // Operation: "search", "recommendations"
	AnimeID string // If applicable
	Err     error
}

func (e *Error) Error() string {
	if e.AnimeID != "" {
		return fmt.Sprintf("jikan %s [%s]: %v", e.Op, e.AnimeID, e.Err)
	}
	return fmt.Sprintf("jikan %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// wrapError creates an Error with context.
func wrapError(op, animeID string, err error) error {
	return &Error{
		Op:      op,
		AnimeID: animeID,
		Err:     err,
	}
}

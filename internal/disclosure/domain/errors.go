package domain

import (
	"github.com/allisson/cardvault/internal/errors"
)

// Disclosure session errors.
var (
	// ErrNoActiveSession indicates there is no disclosure session to operate on.
	ErrNoActiveSession = errors.Wrap(errors.ErrNotFound, "no active disclosure session")

	// ErrDataNotShown indicates the session exists but sensitive data is not
	// currently disclosed, so actions like copy are not available.
	ErrDataNotShown = errors.Wrap(errors.ErrConflict, "card data is not currently shown")

	// ErrSessionConsumed indicates an open attempt on a session instance that
	// already ran one. A session is bound to one token and one attempt; a new
	// disclosure requires a fresh session with a freshly issued token.
	ErrSessionConsumed = errors.Wrap(errors.ErrConflict, "disclosure session already consumed")
)

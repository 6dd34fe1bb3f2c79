package domain

import (
	"github.com/allisson/cardvault/internal/errors"
)

var (
	// ErrCardDataNotFound indicates no sensitive record exists for the card.
	// Distinct from an authorization failure: the token validated, the data
	// simply isn't there.
	ErrCardDataNotFound = errors.Wrap(errors.ErrNotFound, "card data not found")
)

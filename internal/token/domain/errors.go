package domain

import (
	"github.com/allisson/cardvault/internal/errors"
)

// Token validation errors.
//
// Signature mismatch, undecodable payload, and scope mismatch all surface as
// ErrInvalidToken. ErrExpiredToken is only reachable once structure,
// signature, and scope have all checked out.
var (
	// ErrMalformedToken indicates a token string that does not have the
	// "<payload>.<signature>" shape or carries an undecodable payload.
	ErrMalformedToken = errors.Wrap(errors.ErrInvalidInput, "malformed token")

	// ErrInvalidToken indicates a token that failed signature, structure, or
	// scope-binding checks.
	ErrInvalidToken = errors.Wrap(errors.ErrUnauthorized, "invalid token")

	// ErrExpiredToken indicates a well-formed, correctly signed, correctly
	// scoped token past its deadline.
	ErrExpiredToken = errors.Wrap(errors.ErrExpired, "expired token")
)

// Wire codes surfaced to the requesting layer on validation failure.
const (
	CodeInvalidToken = "TOKEN_INVALID"
	CodeExpiredToken = "TOKEN_EXPIRED"
	CodeNoData       = "NO_DATA"
)

// CodeForError maps a validation error to its wire code and human message.
func CodeForError(err error) (code string, message string) {
	switch {
	case errors.Is(err, ErrExpiredToken):
		return CodeExpiredToken, "the disclosure token has expired"
	default:
		return CodeInvalidToken, "the disclosure token is invalid"
	}
}

// Package usecase implements the token authority: issuance on the requesting
// side and validation on the disclosure side of the trust boundary.
package usecase

import (
	"time"

	tokenDomain "github.com/allisson/cardvault/internal/token/domain"
)

// Authority issues and validates disclosure tokens and owns the expiry policy
// and scope-binding checks. Issuance and validation are synchronous, pure
// computations with no I/O.
type Authority interface {
	// Issue mints a token scoped to cardID with the given time-to-live.
	// Returns the transport string "<encoded-payload>.<signature>" along with
	// the payload it carries.
	Issue(cardID string, ttl time.Duration) (string, tokenDomain.Payload, error)

	// Validate checks a transport string against the card the disclosure was
	// opened for. Returns ErrInvalidToken for structural, signature, or scope
	// failures and ErrExpiredToken for a token past its deadline. A token
	// whose deadline equals the current instant is still valid.
	Validate(token string, expectedCardID string) (tokenDomain.Payload, error)

	// RemainingSeconds decodes the token (no signature or scope check) and
	// returns the seconds left until expiry at the given instant, floored at
	// zero. Undecodable tokens yield zero. Used purely for countdown
	// scheduling.
	RemainingSeconds(token string, now time.Time) float64
}

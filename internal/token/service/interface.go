// Package service provides the signing and encoding primitives used by the
// token authority. Both sides of the trust boundary (issuer and validator)
// must run the exact same implementations.
package service

import (
	tokenDomain "github.com/allisson/cardvault/internal/token/domain"
)

// Signer produces a deterministic keyed signature over a string. Any input
// produces a signature; repeated calls with the same input produce the same
// output.
type Signer interface {
	Sign(material string) string
}

// Codec converts token payloads to and from their transport-safe string form.
type Codec interface {
	// Encode serializes the payload into a transport-safe string.
	Encode(payload tokenDomain.Payload) (string, error)

	// Decode is the inverse of Encode. Returns ErrMalformedToken when the
	// input is not percent-decodable or not valid structured data.
	Decode(encoded string) (tokenDomain.Payload, error)
}

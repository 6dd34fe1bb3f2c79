package service

import (
	"encoding/json"
	"net/url"

	apperrors "github.com/allisson/cardvault/internal/errors"
	tokenDomain "github.com/allisson/cardvault/internal/token/domain"
)

// urlJSONCodec implements Codec using JSON serialization wrapped in
// percent-encoding, so the encoded payload is safe to embed in the
// "<payload>.<signature>" transport string.
type urlJSONCodec struct{}

// NewURLJSONCodec creates the Codec used for disclosure token payloads.
func NewURLJSONCodec() Codec {
	return &urlJSONCodec{}
}

// Encode serializes the payload to JSON and percent-encodes the result.
func (c *urlJSONCodec) Encode(payload tokenDomain.Payload) (string, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return "", apperrors.Wrap(err, "failed to encode token payload")
	}
	return url.QueryEscape(string(raw)), nil
}

// Decode percent-decodes the input and deserializes the JSON payload.
// Returns ErrMalformedToken for input that fails either step.
func (c *urlJSONCodec) Decode(encoded string) (tokenDomain.Payload, error) {
	var payload tokenDomain.Payload

	raw, err := url.QueryUnescape(encoded)
	if err != nil {
		return payload, apperrors.Wrap(tokenDomain.ErrMalformedToken, "payload is not percent-decodable")
	}

	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return payload, apperrors.Wrap(tokenDomain.ErrMalformedToken, "payload is not valid JSON")
	}

	return payload, nil
}

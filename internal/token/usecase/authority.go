package usecase

import (
	"crypto/hmac"
	"strings"
	"time"

	"github.com/google/uuid"

	tokenDomain "github.com/allisson/cardvault/internal/token/domain"
	tokenService "github.com/allisson/cardvault/internal/token/service"
)

// authority implements Authority on top of a Signer and Codec pair. The
// issuing and validating instances must be built from the same shared secret.
type authority struct {
	signer tokenService.Signer
	codec  tokenService.Codec
	nowFn  func() time.Time
}

// NewAuthority creates an Authority using the provided signer and codec.
func NewAuthority(signer tokenService.Signer, codec tokenService.Codec) Authority {
	return &authority{
		signer: signer,
		codec:  codec,
		nowFn:  time.Now,
	}
}

// Issue mints a fresh token: iat = now, exp = now + ttl, random nonce, encoded
// payload signed and joined with the detached signature.
func (a *authority) Issue(cardID string, ttl time.Duration) (string, tokenDomain.Payload, error) {
	now := a.nowFn()

	payload := tokenDomain.Payload{
		CardID:    cardID,
		IssuedAt:  now.UnixMilli(),
		ExpiresAt: now.Add(ttl).UnixMilli(),
		Nonce:     uuid.NewString(),
	}

	encoded, err := a.codec.Encode(payload)
	if err != nil {
		return "", tokenDomain.Payload{}, err
	}

	signature := a.signer.Sign(encoded)

	return encoded + tokenDomain.Separator + signature, payload, nil
}

// Validate runs the checks in a fixed order: shape, signature, payload,
// scope, expiry. The ordering matters for error-reporting precision, not for
// security; any failure blocks disclosure identically.
func (a *authority) Validate(token string, expectedCardID string) (tokenDomain.Payload, error) {
	parts := strings.Split(token, tokenDomain.Separator)
	if len(parts) != 2 {
		return tokenDomain.Payload{}, tokenDomain.ErrInvalidToken
	}

	encoded, signature := parts[0], parts[1]

	expected := a.signer.Sign(encoded)
	if !hmac.Equal([]byte(signature), []byte(expected)) {
		return tokenDomain.Payload{}, tokenDomain.ErrInvalidToken
	}

	payload, err := a.codec.Decode(encoded)
	if err != nil {
		return tokenDomain.Payload{}, tokenDomain.ErrInvalidToken
	}

	if payload.CardID != expectedCardID {
		return tokenDomain.Payload{}, tokenDomain.ErrInvalidToken
	}

	// Equality with the deadline is still valid; only strictly after it fails.
	if a.nowFn().UnixMilli() > payload.ExpiresAt {
		return tokenDomain.Payload{}, tokenDomain.ErrExpiredToken
	}

	return payload, nil
}

// RemainingSeconds decodes the payload without any signature or scope check
// and reports the validity left at the given instant.
func (a *authority) RemainingSeconds(token string, now time.Time) float64 {
	parts := strings.Split(token, tokenDomain.Separator)
	if len(parts) != 2 {
		return 0
	}

	payload, err := a.codec.Decode(parts[0])
	if err != nil {
		return 0
	}

	return payload.Remaining(now).Seconds()
}

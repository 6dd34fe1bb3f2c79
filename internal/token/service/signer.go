package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"io"

	"golang.org/x/crypto/hkdf"

	apperrors "github.com/allisson/cardvault/internal/errors"
)

// signingKeyInfo versions the key derivation so the algorithm can change
// without reusing key material.
const signingKeyInfo = "disclosure-token-signing-v1"

// hmacSigner implements Signer using HMAC-SHA256 with a key derived from the
// shared disclosure secret via HKDF-SHA256. Issuer and validator are handed
// the same secret at startup, so both sides derive the same key.
type hmacSigner struct {
	key []byte
}

// NewHMACSigner derives a 32-byte signing key from the shared secret and
// returns a Signer backed by HMAC-SHA256. The secret must be non-empty.
func NewHMACSigner(secret string) (Signer, error) {
	if secret == "" {
		return nil, apperrors.New("disclosure secret must not be empty")
	}

	kdf := hkdf.New(sha256.New, []byte(secret), nil, []byte(signingKeyInfo))
	key := make([]byte, 32)
	if _, err := io.ReadFull(kdf, key); err != nil {
		return nil, apperrors.Wrap(err, "failed to derive signing key")
	}

	return &hmacSigner{key: key}, nil
}

// Sign computes the HMAC-SHA256 signature of material and returns it as a
// hexadecimal string.
func (s *hmacSigner) Sign(material string) string {
	mac := hmac.New(sha256.New, s.key)
	mac.Write([]byte(material))
	return hex.EncodeToString(mac.Sum(nil))
}

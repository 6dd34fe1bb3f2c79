// Package domain defines the core types for disclosure tokens: short-lived,
// card-scoped authorization artifacts permitting exactly one disclosure attempt.
package domain

import "time"

// Separator joins the encoded payload and its detached signature in the
// transport form "<encoded-payload>.<signature>".
const Separator = "."

// Payload is the signed body of a disclosure token. Timestamps are Unix
// milliseconds to match the wire contract.
type Payload struct {
	CardID    string `json:"cardId"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
	Nonce     string `json:"nonce"`
}

// ExpiresAtTime returns the expiry deadline as a time.Time.
func (p Payload) ExpiresAtTime() time.Time {
	return time.UnixMilli(p.ExpiresAt)
}

// Remaining returns the validity left at the given instant, floored at zero.
func (p Payload) Remaining(now time.Time) time.Duration {
	remaining := time.Duration(p.ExpiresAt-now.UnixMilli()) * time.Millisecond
	if remaining < 0 {
		return 0
	}
	return remaining
}

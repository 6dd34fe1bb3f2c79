// Package domain defines sensitive card records and the leak-resistant types
// that guard them. Records are read-only snapshot data keyed by card
// identifier and only reachable through an authorized lookup.
package domain

// CardSensitiveData holds the full sensitive fields for a card. PAN and CVV
// are SecureStrings: they render masked everywhere except an explicit Reveal.
type CardSensitiveData struct {
	CardID string       `json:"cardId"`
	Alias  string       `json:"alias"`
	PAN    SecureString `json:"pan"`
	CVV    SecureString `json:"cvv"`
	Expiry string       `json:"expiry"`
	Holder string       `json:"holder"`
}

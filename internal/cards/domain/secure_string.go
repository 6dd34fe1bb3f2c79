package domain

import (
	"encoding/json"
	"log/slog"
)

// SecureString is a leak-resistant wrapper around a sensitive field. Every
// general-purpose rendering path (fmt, JSON marshaling, slog) produces a
// masked form; the raw backing value is only reachable through an explicit
// Reveal call.
type SecureString struct {
	value string
}

// NewSecureString wraps a sensitive value.
func NewSecureString(value string) SecureString {
	return SecureString{value: value}
}

// Reveal returns the raw backing value. Callers own the responsibility of
// only invoking this after a disclosure session has authorized it.
func (s SecureString) Reveal() string {
	return s.value
}

// Masked returns a redacted form: the last four characters preceded by
// asterisks, or a fixed mask when the value is too short to keep a suffix.
func (s SecureString) Masked() string {
	if len(s.value) <= 4 {
		return "****"
	}
	masked := make([]byte, len(s.value))
	for i := range masked {
		masked[i] = '*'
	}
	copy(masked[len(masked)-4:], s.value[len(s.value)-4:])
	return string(masked)
}

// String implements fmt.Stringer with the masked form.
func (s SecureString) String() string {
	return s.Masked()
}

// MarshalJSON serializes the masked form so sensitive values never leave
// through generic serialization.
func (s SecureString) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Masked())
}

// UnmarshalJSON reads the raw value, allowing seed snapshots to be loaded
// from JSON files.
func (s *SecureString) UnmarshalJSON(data []byte) error {
	var value string
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	s.value = value
	return nil
}

// LogValue implements slog.LogValuer so structured logging always emits the
// masked form.
func (s SecureString) LogValue() slog.Value {
	return slog.StringValue(s.Masked())
}

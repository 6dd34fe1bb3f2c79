// Package domain defines the disclosure session lifecycle: states, close
// reasons, lifecycle events, and the view handed to the requesting layer once
// a disclosure is authorized.
package domain

// State is a disclosure session lifecycle phase. Sessions move
// opening → shown → closed on the success path and opening → error → closed on
// failure; closed is terminal and a session is never reused after reaching it.
type State string

const (
	// StateIdle is the orchestrator's resting state before any open attempt.
	StateIdle State = "idle"
	// StateOpening is the transient phase between an open request and the
	// outcome of token validation.
	StateOpening State = "opening"
	// StateShown means sensitive data is currently disclosed and the
	// countdown is running.
	StateShown State = "shown"
	// StateError is the transient phase after a failed validation, before the
	// session closes.
	StateError State = "error"
	// StateClosed is terminal.
	StateClosed State = "closed"
)

// CloseReason explains why a session closed.
type CloseReason string

const (
	// CloseReasonUserDismiss is an explicit close action by the user.
	CloseReasonUserDismiss CloseReason = "USER_DISMISS"
	// CloseReasonTimeout is the countdown firing.
	CloseReasonTimeout CloseReason = "TIMEOUT"
)

// CardView is the disclosure surface built once a token validates: the PAN is
// already grouped for display, and this grouped string is the only value the
// explicit copy action may return.
type CardView struct {
	CardID string `json:"cardId"`
	Alias  string `json:"alias"`
	Holder string `json:"holder"`
	PAN    string `json:"pan"`
	CVV    string `json:"cvv"`
	Expiry string `json:"expiry"`
}

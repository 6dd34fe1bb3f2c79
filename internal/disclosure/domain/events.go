package domain

// EventKind discriminates lifecycle events on the event channel.
type EventKind string

const (
	// EventOpened fires when an open request enters the session.
	EventOpened EventKind = "opened"
	// EventShown fires once sensitive data is disclosed.
	EventShown EventKind = "shown"
	// EventValidationError fires when token validation fails or no sensitive
	// record exists for the card.
	EventValidationError EventKind = "validation_error"
	// EventClosed fires when the session reaches its terminal state.
	EventClosed EventKind = "closed"
)

// Event is a session lifecycle notification. Kind and CardID are present on
// every event; Code and Message only on validation_error; Reason only on
// closed events that end a shown disclosure (user dismissal or timeout).
type Event struct {
	Kind    EventKind   `json:"kind"`
	CardID  string      `json:"cardId"`
	Code    string      `json:"code,omitempty"`
	Message string      `json:"message,omitempty"`
	Reason  CloseReason `json:"reason,omitempty"`
}

// Package usecase implements the disclosure orchestrator: the single entry
// point that sequences token issuance, session lifecycle, and the folded
// status view exposed to transports.
package usecase

import (
	"context"
	"time"

	disclosureDomain "github.com/allisson/cardvault/internal/disclosure/domain"
	tokenDomain "github.com/allisson/cardvault/internal/token/domain"
)

// StatusError is the last validation failure observed on the current
// disclosure, kept for display after the session closes.
type StatusError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Status is the folded view of the current disclosure, updated from the
// session's lifecycle events.
type Status struct {
	State     disclosureDomain.State       `json:"state"`
	CardID    string                       `json:"card_id,omitempty"`
	Reason    disclosureDomain.CloseReason `json:"reason,omitempty"`
	LastError *StatusError                 `json:"last_error,omitempty"`
}

// TokenIssuer is the issuing side of the token authority.
type TokenIssuer interface {
	Issue(cardID string, ttl time.Duration) (string, tokenDomain.Payload, error)
}

// DisclosureSession is the lifecycle surface the orchestrator drives. It is
// satisfied by session.Session.
type DisclosureSession interface {
	Open(cardID, token string) error
	Dismiss()
	Teardown()
	State() disclosureDomain.State
	View() (*disclosureDomain.CardView, error)
	CopyPAN() (string, error)
}

// SessionFactory builds a fresh session that publishes its lifecycle events
// through the given publisher.
type SessionFactory func(events EventPublisher) DisclosureSession

// EventPublisher is the producing end of the event channel.
type EventPublisher interface {
	Publish(disclosureDomain.Event)
}

// Orchestrator owns the at-most-one active disclosure and every operation a
// transport can perform on it.
type Orchestrator interface {
	// Open starts a disclosure for cardID, superseding any active one. The
	// returned status reflects the outcome of the synchronous open attempt:
	// shown on success, closed with a last error on validation failure.
	Open(ctx context.Context, cardID string) (Status, error)

	// Status returns the folded view of the current disclosure.
	Status(ctx context.Context) (Status, error)

	// CurrentView returns the disclosed card data while it is shown.
	CurrentView(ctx context.Context) (*disclosureDomain.CardView, error)

	// CopyPAN returns the grouped card number while data is shown.
	CopyPAN(ctx context.Context) (string, error)

	// Dismiss closes the active disclosure on user request.
	Dismiss(ctx context.Context) error

	// Close tears down any active disclosure without emitting events.
	Close()
}

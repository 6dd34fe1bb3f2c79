package usecase

import (
	"context"
	"log/slog"
	"sync"
	"time"

	disclosureDomain "github.com/allisson/cardvault/internal/disclosure/domain"
)

type orchestrator struct {
	issuer       TokenIssuer
	newSession   SessionFactory
	events       EventPublisher
	tokenTTL     time.Duration
	ttlFloor     time.Duration
	logger       *slog.Logger

	// opMu serializes open and dismiss operations; stateMu guards the folded
	// status and is safe to take from Publish while a session transition is
	// in flight.
	opMu    sync.Mutex
	stateMu sync.Mutex
	current DisclosureSession
	status  Status
}

// NewOrchestrator creates the orchestrator. Sessions built by the factory
// publish through the orchestrator itself, which folds each event into the
// status view before forwarding it to events.
func NewOrchestrator(
	issuer TokenIssuer,
	newSession SessionFactory,
	events EventPublisher,
	tokenTTL time.Duration,
	ttlFloor time.Duration,
	logger *slog.Logger,
) Orchestrator {
	return &orchestrator{
		issuer:     issuer,
		newSession: newSession,
		events:     events,
		tokenTTL:   tokenTTL,
		ttlFloor:   ttlFloor,
		logger:     logger,
		status:     Status{State: disclosureDomain.StateIdle},
	}
}

func (o *orchestrator) Open(ctx context.Context, cardID string) (Status, error) {
	o.opMu.Lock()
	defer o.opMu.Unlock()

	o.stateMu.Lock()
	prior := o.current
	o.stateMu.Unlock()

	if prior != nil && prior.State() != disclosureDomain.StateClosed {
		o.logger.Info("superseding active disclosure", slog.String("card_id", cardID))
		prior.Dismiss()
	}

	ttl := o.tokenTTL
	if ttl < o.ttlFloor {
		ttl = o.ttlFloor
	}

	token, _, err := o.issuer.Issue(cardID, ttl)
	if err != nil {
		return Status{}, err
	}

	sess := o.newSession(o)

	o.stateMu.Lock()
	o.current = sess
	o.status = Status{State: disclosureDomain.StateOpening, CardID: cardID}
	o.stateMu.Unlock()

	// Validation failures surface through the folded status rather than the
	// error return; the disclosure ran, it just ended in a closed state.
	_ = sess.Open(cardID, token)

	return o.snapshot(), nil
}

func (o *orchestrator) Status(ctx context.Context) (Status, error) {
	return o.snapshot(), nil
}

func (o *orchestrator) CurrentView(ctx context.Context) (*disclosureDomain.CardView, error) {
	sess := o.session()
	if sess == nil {
		return nil, disclosureDomain.ErrNoActiveSession
	}
	return sess.View()
}

func (o *orchestrator) CopyPAN(ctx context.Context) (string, error) {
	sess := o.session()
	if sess == nil {
		return "", disclosureDomain.ErrNoActiveSession
	}
	return sess.CopyPAN()
}

func (o *orchestrator) Dismiss(ctx context.Context) error {
	o.opMu.Lock()
	defer o.opMu.Unlock()

	sess := o.session()
	if sess == nil || sess.State() == disclosureDomain.StateClosed {
		return disclosureDomain.ErrNoActiveSession
	}

	sess.Dismiss()
	return nil
}

func (o *orchestrator) Close() {
	o.opMu.Lock()
	defer o.opMu.Unlock()

	sess := o.session()
	if sess != nil {
		sess.Teardown()
	}
}

// Publish folds a session event into the status view and forwards it. Fold
// happens synchronously on the session's publishing path so a caller that
// just drove a transition observes it in the next Status call.
func (o *orchestrator) Publish(e disclosureDomain.Event) {
	o.stateMu.Lock()
	switch e.Kind {
	case disclosureDomain.EventOpened:
		o.status = Status{State: disclosureDomain.StateOpening, CardID: e.CardID}
	case disclosureDomain.EventShown:
		o.status.State = disclosureDomain.StateShown
	case disclosureDomain.EventValidationError:
		o.status.State = disclosureDomain.StateError
		o.status.LastError = &StatusError{Code: e.Code, Message: e.Message}
	case disclosureDomain.EventClosed:
		o.status.State = disclosureDomain.StateClosed
		o.status.Reason = e.Reason
	}
	o.stateMu.Unlock()

	o.events.Publish(e)
}

func (o *orchestrator) session() DisclosureSession {
	o.stateMu.Lock()
	defer o.stateMu.Unlock()
	return o.current
}

func (o *orchestrator) snapshot() Status {
	o.stateMu.Lock()
	defer o.stateMu.Unlock()
	return o.status
}

// Package session implements the disclosure session state machine: a
// bounded-lifetime, single-card, single-token construct that mediates every
// lifecycle transition and owns the auto-close countdown.
package session

import (
	"log/slog"
	"sync"
	"time"

	cardsDomain "github.com/allisson/cardvault/internal/cards/domain"
	cardsService "github.com/allisson/cardvault/internal/cards/service"
	disclosureDomain "github.com/allisson/cardvault/internal/disclosure/domain"
	tokenDomain "github.com/allisson/cardvault/internal/token/domain"
)

// TokenAuthority is the validating side of the token authority.
type TokenAuthority interface {
	Validate(token string, expectedCardID string) (tokenDomain.Payload, error)
	RemainingSeconds(token string, now time.Time) float64
}

// CardDataStore is the sensitive data lookup, reachable only after validation.
type CardDataStore interface {
	Fetch(cardID string) (*cardsDomain.CardSensitiveData, error)
}

// EventPublisher is the producing end of the event channel.
type EventPublisher interface {
	Publish(disclosureDomain.Event)
}

// Session is a disclosure session bound to one card identifier and one token.
// All state transitions are serialized by a mutex; the countdown timer is the
// only asynchronous element and is cancelled on every exit path.
type Session struct {
	authority  TokenAuthority
	store      CardDataStore
	events     EventPublisher
	maxSession time.Duration
	logger     *slog.Logger
	nowFn      func() time.Time

	mu     sync.Mutex
	state  disclosureDomain.State
	cardID string
	token  string
	view   *disclosureDomain.CardView
	rawPAN string
	timer  *time.Timer
}

// New creates an unopened session. A session runs at most one open attempt;
// a new disclosure requires a new session with a freshly issued token.
func New(
	authority TokenAuthority,
	store CardDataStore,
	events EventPublisher,
	maxSession time.Duration,
	logger *slog.Logger,
) *Session {
	return &Session{
		authority:  authority,
		store:      store,
		events:     events,
		maxSession: maxSession,
		logger:     logger,
		nowFn:      time.Now,
		state:      disclosureDomain.StateIdle,
	}
}

// Open runs the disclosure attempt: emits opened, validates the token against
// the card it was opened for, fetches and formats the sensitive data, emits
// shown, and starts the countdown. Validation failure and absent data both
// emit validation_error followed by closed and leave the session terminal.
func (s *Session) Open(cardID, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != disclosureDomain.StateIdle {
		return disclosureDomain.ErrSessionConsumed
	}

	s.state = disclosureDomain.StateOpening
	s.cardID = cardID
	s.token = token
	s.events.Publish(disclosureDomain.Event{
		Kind:   disclosureDomain.EventOpened,
		CardID: cardID,
	})

	if _, err := s.authority.Validate(token, cardID); err != nil {
		code, message := tokenDomain.CodeForError(err)
		s.logger.Warn("disclosure token rejected",
			slog.String("card_id", cardID),
			slog.String("code", code),
		)
		s.failLocked(code, message)
		return err
	}

	card, err := s.store.Fetch(cardID)
	if err != nil {
		s.logger.Warn("no sensitive record for validated card",
			slog.String("card_id", cardID),
		)
		s.failLocked(tokenDomain.CodeNoData, "no sensitive data exists for this card")
		return err
	}

	s.rawPAN = card.PAN.Reveal()
	s.view = &disclosureDomain.CardView{
		CardID: card.CardID,
		Alias:  card.Alias,
		Holder: card.Holder,
		PAN:    cardsService.FormatPAN(s.rawPAN),
		CVV:    card.CVV.Reveal(),
		Expiry: card.Expiry,
	}

	s.state = disclosureDomain.StateShown
	s.events.Publish(disclosureDomain.Event{
		Kind:   disclosureDomain.EventShown,
		CardID: cardID,
	})
	s.logger.Info("card data shown", slog.String("card_id", cardID))

	s.startCountdownLocked()

	return nil
}

// Dismiss closes the session on explicit user action, cancelling the pending
// countdown first. Invoking it after the session is already closed is a no-op.
func (s *Session) Dismiss() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == disclosureDomain.StateClosed {
		return
	}

	s.closeLocked(disclosureDomain.CloseReasonUserDismiss)
}

// Teardown is the cleanup guarantee for abrupt termination: it cancels any
// pending countdown and closes the session without emitting an event when no
// disclosure is active anymore.
func (s *Session) Teardown() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancelCountdownLocked()
	if s.state != disclosureDomain.StateClosed {
		s.discardLocked()
		s.state = disclosureDomain.StateClosed
	}
}

// State returns the current lifecycle phase.
func (s *Session) State() disclosureDomain.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// CardID returns the card this session is bound to.
func (s *Session) CardID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cardID
}

// View returns the disclosure surface while sensitive data is shown.
func (s *Session) View() (*disclosureDomain.CardView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != disclosureDomain.StateShown {
		return nil, disclosureDomain.ErrDataNotShown
	}
	view := *s.view
	return &view, nil
}

// CopyPAN is the explicit copy action: it returns the grouped display string,
// never the raw backing value, and only while data is shown.
func (s *Session) CopyPAN() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != disclosureDomain.StateShown {
		return "", disclosureDomain.ErrDataNotShown
	}
	return s.view.PAN, nil
}

// failLocked emits validation_error then closed and leaves the session
// terminal. Caller holds the mutex.
func (s *Session) failLocked(code, message string) {
	s.state = disclosureDomain.StateError
	s.events.Publish(disclosureDomain.Event{
		Kind:    disclosureDomain.EventValidationError,
		CardID:  s.cardID,
		Code:    code,
		Message: message,
	})

	s.state = disclosureDomain.StateClosed
	s.events.Publish(disclosureDomain.Event{
		Kind:   disclosureDomain.EventClosed,
		CardID: s.cardID,
	})
}

// startCountdownLocked schedules the fire-once auto-close. The interval is
// the token's remaining validity clamped to the configured session ceiling;
// a non-positive interval times out immediately. Any previously scheduled
// countdown for this instance is cancelled first so at most one timer is
// ever live. Caller holds the mutex.
func (s *Session) startCountdownLocked() {
	s.cancelCountdownLocked()

	remaining := s.authority.RemainingSeconds(s.token, s.nowFn())
	interval := time.Duration(remaining * float64(time.Second))
	if interval > s.maxSession {
		interval = s.maxSession
	}

	if interval <= 0 {
		s.closeLocked(disclosureDomain.CloseReasonTimeout)
		return
	}

	s.timer = time.AfterFunc(interval, s.timeout)
}

// timeout fires once from the countdown timer.
func (s *Session) timeout() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == disclosureDomain.StateClosed {
		return
	}

	s.closeLocked(disclosureDomain.CloseReasonTimeout)
}

// closeLocked cancels the countdown, discards the disclosed data, and emits
// the terminal closed event. Caller holds the mutex.
func (s *Session) closeLocked(reason disclosureDomain.CloseReason) {
	s.cancelCountdownLocked()
	s.discardLocked()
	s.state = disclosureDomain.StateClosed
	s.events.Publish(disclosureDomain.Event{
		Kind:   disclosureDomain.EventClosed,
		CardID: s.cardID,
		Reason: reason,
	})
	s.logger.Info("disclosure session closed",
		slog.String("card_id", s.cardID),
		slog.String("reason", string(reason)),
	)
}

// cancelCountdownLocked stops any pending timer. Caller holds the mutex.
func (s *Session) cancelCountdownLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// discardLocked drops the disclosed values from the session. Caller holds the
// mutex.
func (s *Session) discardLocked() {
	s.view = nil
	s.rawPAN = ""
}

package usecase

import (
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	disclosureDomain "github.com/allisson/cardvault/internal/disclosure/domain"
	tokenDomain "github.com/allisson/cardvault/internal/token/domain"
)

type mockTokenIssuer struct {
	mock.Mock
}

func (m *mockTokenIssuer) Issue(cardID string, ttl time.Duration) (string, tokenDomain.Payload, error) {
	args := m.Called(cardID, ttl)
	return args.String(0), args.Get(1).(tokenDomain.Payload), args.Error(2)
}

// scriptedSession plays back a fixed open outcome through the publisher it
// was built with, mirroring the event sequence a real session emits.
type scriptedSession struct {
	events    EventPublisher
	openErr   error
	errorCode string

	mu        sync.Mutex
	state     disclosureDomain.State
	cardID    string
	view      *disclosureDomain.CardView
	dismissed int
	teardowns int
}

func (s *scriptedSession) Open(cardID, token string) error {
	s.mu.Lock()
	s.cardID = cardID
	s.state = disclosureDomain.StateOpening
	s.mu.Unlock()

	s.events.Publish(disclosureDomain.Event{Kind: disclosureDomain.EventOpened, CardID: cardID})

	if s.openErr != nil {
		s.events.Publish(disclosureDomain.Event{
			Kind:    disclosureDomain.EventValidationError,
			CardID:  cardID,
			Code:    s.errorCode,
			Message: "rejected",
		})
		s.events.Publish(disclosureDomain.Event{Kind: disclosureDomain.EventClosed, CardID: cardID})
		s.mu.Lock()
		s.state = disclosureDomain.StateClosed
		s.mu.Unlock()
		return s.openErr
	}

	s.mu.Lock()
	s.state = disclosureDomain.StateShown
	s.view = &disclosureDomain.CardView{CardID: cardID, PAN: "4557  1681  9241  1234"}
	s.mu.Unlock()
	s.events.Publish(disclosureDomain.Event{Kind: disclosureDomain.EventShown, CardID: cardID})
	return nil
}

func (s *scriptedSession) Dismiss() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == disclosureDomain.StateClosed {
		return
	}
	s.state = disclosureDomain.StateClosed
	s.dismissed++
	s.events.Publish(disclosureDomain.Event{
		Kind:   disclosureDomain.EventClosed,
		CardID: s.cardID,
		Reason: disclosureDomain.CloseReasonUserDismiss,
	})
}

func (s *scriptedSession) Teardown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = disclosureDomain.StateClosed
	s.teardowns++
}

func (s *scriptedSession) State() disclosureDomain.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *scriptedSession) View() (*disclosureDomain.CardView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != disclosureDomain.StateShown {
		return nil, disclosureDomain.ErrDataNotShown
	}
	return s.view, nil
}

func (s *scriptedSession) CopyPAN() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != disclosureDomain.StateShown {
		return "", disclosureDomain.ErrDataNotShown
	}
	return s.view.PAN, nil
}

type publishRecorder struct {
	mu     sync.Mutex
	events []disclosureDomain.Event
}

func (r *publishRecorder) Publish(e disclosureDomain.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *publishRecorder) snapshot() []disclosureDomain.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]disclosureDomain.Event, len(r.events))
	copy(out, r.events)
	return out
}

type orchestratorFixture struct {
	orchestrator Orchestrator
	issuer       *mockTokenIssuer
	recorder     *publishRecorder
	sessions     []*scriptedSession
}

func newOrchestratorFixture(t *testing.T, openErr error, errorCode string) *orchestratorFixture {
	t.Helper()

	f := &orchestratorFixture{
		issuer:   &mockTokenIssuer{},
		recorder: &publishRecorder{},
	}
	factory := func(events EventPublisher) DisclosureSession {
		sess := &scriptedSession{events: events, openErr: openErr, errorCode: errorCode}
		f.sessions = append(f.sessions, sess)
		return sess
	}
	f.orchestrator = NewOrchestrator(
		f.issuer, factory, f.recorder, 25*time.Second, 5*time.Second, slog.Default(),
	)
	return f
}

func TestOrchestratorOpen(t *testing.T) {
	ctx := context.Background()

	t.Run("successful open folds to shown", func(t *testing.T) {
		f := newOrchestratorFixture(t, nil, "")
		f.issuer.On("Issue", "card_001", 25*time.Second).
			Return("payload.sig", tokenDomain.Payload{CardID: "card_001"}, nil)

		status, err := f.orchestrator.Open(ctx, "card_001")
		require.NoError(t, err)
		assert.Equal(t, disclosureDomain.StateShown, status.State)
		assert.Equal(t, "card_001", status.CardID)
		assert.Nil(t, status.LastError)

		events := f.recorder.snapshot()
		require.Len(t, events, 2)
		assert.Equal(t, disclosureDomain.EventOpened, events[0].Kind)
		assert.Equal(t, disclosureDomain.EventShown, events[1].Kind)

		f.issuer.AssertExpectations(t)
	})

	t.Run("validation failure folds to closed with last error", func(t *testing.T) {
		f := newOrchestratorFixture(t, tokenDomain.ErrExpiredToken, tokenDomain.CodeExpiredToken)
		f.issuer.On("Issue", "card_003", 25*time.Second).
			Return("payload.sig", tokenDomain.Payload{CardID: "card_003"}, nil)

		status, err := f.orchestrator.Open(ctx, "card_003")
		require.NoError(t, err)
		assert.Equal(t, disclosureDomain.StateClosed, status.State)
		require.NotNil(t, status.LastError)
		assert.Equal(t, tokenDomain.CodeExpiredToken, status.LastError.Code)
		assert.Empty(t, status.Reason)
	})

	t.Run("issuance failure returns the error", func(t *testing.T) {
		f := newOrchestratorFixture(t, nil, "")
		f.issuer.On("Issue", "card_001", 25*time.Second).
			Return("", tokenDomain.Payload{}, assert.AnError)

		_, err := f.orchestrator.Open(ctx, "card_001")
		assert.ErrorIs(t, err, assert.AnError)
		assert.Empty(t, f.sessions)
	})

	t.Run("open supersedes the active disclosure", func(t *testing.T) {
		f := newOrchestratorFixture(t, nil, "")
		f.issuer.On("Issue", mock.Anything, 25*time.Second).
			Return("payload.sig", tokenDomain.Payload{}, nil)

		_, err := f.orchestrator.Open(ctx, "card_001")
		require.NoError(t, err)
		_, err = f.orchestrator.Open(ctx, "card_004")
		require.NoError(t, err)

		require.Len(t, f.sessions, 2)
		assert.Equal(t, 1, f.sessions[0].dismissed)

		status, _ := f.orchestrator.Status(ctx)
		assert.Equal(t, disclosureDomain.StateShown, status.State)
		assert.Equal(t, "card_004", status.CardID)
	})
}

func TestOrchestratorTTLFloor(t *testing.T) {
	f := &orchestratorFixture{issuer: &mockTokenIssuer{}, recorder: &publishRecorder{}}
	factory := func(events EventPublisher) DisclosureSession {
		return &scriptedSession{events: events}
	}
	// Configured TTL below the floor gets raised to it.
	orchestrator := NewOrchestrator(
		f.issuer, factory, f.recorder, 2*time.Second, 5*time.Second, slog.Default(),
	)
	f.issuer.On("Issue", "card_001", 5*time.Second).
		Return("payload.sig", tokenDomain.Payload{}, nil)

	_, err := orchestrator.Open(context.Background(), "card_001")
	require.NoError(t, err)
	f.issuer.AssertExpectations(t)
}

func TestOrchestratorStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("idle before any open", func(t *testing.T) {
		f := newOrchestratorFixture(t, nil, "")
		status, err := f.orchestrator.Status(ctx)
		require.NoError(t, err)
		assert.Equal(t, disclosureDomain.StateIdle, status.State)
	})

	t.Run("closed with reason after dismiss", func(t *testing.T) {
		f := newOrchestratorFixture(t, nil, "")
		f.issuer.On("Issue", mock.Anything, mock.Anything).
			Return("payload.sig", tokenDomain.Payload{}, nil)

		_, err := f.orchestrator.Open(ctx, "card_001")
		require.NoError(t, err)
		require.NoError(t, f.orchestrator.Dismiss(ctx))

		status, _ := f.orchestrator.Status(ctx)
		assert.Equal(t, disclosureDomain.StateClosed, status.State)
		assert.Equal(t, disclosureDomain.CloseReasonUserDismiss, status.Reason)
	})
}

func TestOrchestratorDismiss(t *testing.T) {
	ctx := context.Background()

	t.Run("no active session", func(t *testing.T) {
		f := newOrchestratorFixture(t, nil, "")
		err := f.orchestrator.Dismiss(ctx)
		assert.ErrorIs(t, err, disclosureDomain.ErrNoActiveSession)
	})

	t.Run("already closed", func(t *testing.T) {
		f := newOrchestratorFixture(t, nil, "")
		f.issuer.On("Issue", mock.Anything, mock.Anything).
			Return("payload.sig", tokenDomain.Payload{}, nil)

		_, err := f.orchestrator.Open(ctx, "card_001")
		require.NoError(t, err)
		require.NoError(t, f.orchestrator.Dismiss(ctx))

		err = f.orchestrator.Dismiss(ctx)
		assert.ErrorIs(t, err, disclosureDomain.ErrNoActiveSession)
	})
}

func TestOrchestratorViewAndCopy(t *testing.T) {
	ctx := context.Background()

	t.Run("no session", func(t *testing.T) {
		f := newOrchestratorFixture(t, nil, "")
		_, err := f.orchestrator.CurrentView(ctx)
		assert.ErrorIs(t, err, disclosureDomain.ErrNoActiveSession)
		_, err = f.orchestrator.CopyPAN(ctx)
		assert.ErrorIs(t, err, disclosureDomain.ErrNoActiveSession)
	})

	t.Run("shown session exposes view and grouped number", func(t *testing.T) {
		f := newOrchestratorFixture(t, nil, "")
		f.issuer.On("Issue", mock.Anything, mock.Anything).
			Return("payload.sig", tokenDomain.Payload{}, nil)

		_, err := f.orchestrator.Open(ctx, "card_001")
		require.NoError(t, err)

		view, err := f.orchestrator.CurrentView(ctx)
		require.NoError(t, err)
		assert.Equal(t, "card_001", view.CardID)

		pan, err := f.orchestrator.CopyPAN(ctx)
		require.NoError(t, err)
		assert.Equal(t, "4557  1681  9241  1234", pan)
	})
}

func TestOrchestratorClose(t *testing.T) {
	f := newOrchestratorFixture(t, nil, "")
	f.issuer.On("Issue", mock.Anything, mock.Anything).
		Return("payload.sig", tokenDomain.Payload{}, nil)

	_, err := f.orchestrator.Open(context.Background(), "card_001")
	require.NoError(t, err)

	f.orchestrator.Close()
	require.Len(t, f.sessions, 1)
	assert.Equal(t, 1, f.sessions[0].teardowns)
}

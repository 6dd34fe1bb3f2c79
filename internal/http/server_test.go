package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cardsRepository "github.com/allisson/cardvault/internal/cards/repository"
	"github.com/allisson/cardvault/internal/config"
	"github.com/allisson/cardvault/internal/disclosure/event"
	disclosureHTTP "github.com/allisson/cardvault/internal/disclosure/http"
	"github.com/allisson/cardvault/internal/disclosure/http/dto"
	"github.com/allisson/cardvault/internal/disclosure/session"
	disclosureUseCase "github.com/allisson/cardvault/internal/disclosure/usecase"
	tokenService "github.com/allisson/cardvault/internal/token/service"
	tokenUseCase "github.com/allisson/cardvault/internal/token/usecase"
)

// TestMain sets Gin to test mode for all tests in this package.
func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// newTestRouter wires a real stack end to end: token authority, card store,
// session factory, orchestrator, and handlers.
func newTestRouter(t *testing.T, ctx context.Context) (*gin.Engine, *event.Bus) {
	t.Helper()

	cfg := &config.Config{
		ServerHost:         "localhost",
		ServerPort:         8080,
		TokenTTL:           25 * time.Second,
		TokenTTLFloor:      5 * time.Second,
		MaxSessionDuration: 60 * time.Second,
		MetricsNamespace:   "cardvault",
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	signer, err := tokenService.NewHMACSigner("server-test-secret")
	require.NoError(t, err)
	authority := tokenUseCase.NewAuthority(signer, tokenService.NewURLJSONCodec())

	store := cardsRepository.NewMemoryCardRepository(cardsRepository.DefaultCardSnapshot())
	bus := event.NewBus()
	t.Cleanup(bus.Close)

	factory := func(events disclosureUseCase.EventPublisher) disclosureUseCase.DisclosureSession {
		return session.New(authority, store, events, cfg.MaxSessionDuration, logger)
	}
	orchestrator := disclosureUseCase.NewOrchestrator(
		authority, factory, bus, cfg.TokenTTL, cfg.TokenTTLFloor, logger,
	)
	t.Cleanup(orchestrator.Close)

	server := NewServer(
		cfg,
		logger,
		nil,
		disclosureHTTP.NewDisclosureHandler(orchestrator, logger),
		disclosureHTTP.NewEventsHandler(bus, logger),
	)
	return server.Router(ctx), bus
}

func doJSON(router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	}
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	router, _ := newTestRouter(t, context.Background())

	w := doJSON(router, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "healthy", response["status"])
}

func TestReadinessEndpoint(t *testing.T) {
	t.Run("ReadyWhileRunning", func(t *testing.T) {
		router, _ := newTestRouter(t, context.Background())

		w := doJSON(router, http.MethodGet, "/ready", nil)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("NotReadyAfterShutdownBegins", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		router, _ := newTestRouter(t, ctx)
		cancel()

		w := doJSON(router, http.MethodGet, "/ready", nil)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}

func TestDisclosureFlow(t *testing.T) {
	router, _ := newTestRouter(t, context.Background())

	t.Run("NothingActiveInitially", func(t *testing.T) {
		w := doJSON(router, http.MethodGet, "/v1/disclosures/current", nil)

		assert.Equal(t, http.StatusOK, w.Code)

		var status dto.DisclosureStatusResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
		assert.Equal(t, "idle", status.State)
	})

	t.Run("OpenShowsCardData", func(t *testing.T) {
		w := doJSON(router, http.MethodPost, "/v1/disclosures",
			dto.OpenDisclosureRequest{CardID: "card_001"})

		assert.Equal(t, http.StatusCreated, w.Code)

		var status dto.DisclosureStatusResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
		assert.Equal(t, "shown", status.State)
		require.NotNil(t, status.Card)
		assert.Equal(t, "4557  1681  9241  1234", status.Card.PAN)
		assert.Equal(t, "JUAN PEREZ", status.Card.Holder)
	})

	t.Run("CopyReturnsGroupedNumber", func(t *testing.T) {
		w := doJSON(router, http.MethodPost, "/v1/disclosures/current/copy", nil)

		assert.Equal(t, http.StatusOK, w.Code)

		var response dto.CopyResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "4557  1681  9241  1234", response.PAN)
	})

	t.Run("DismissClosesDisclosure", func(t *testing.T) {
		w := doJSON(router, http.MethodDelete, "/v1/disclosures/current", nil)
		assert.Equal(t, http.StatusNoContent, w.Code)

		w = doJSON(router, http.MethodGet, "/v1/disclosures/current", nil)
		assert.Equal(t, http.StatusOK, w.Code)

		var status dto.DisclosureStatusResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
		assert.Equal(t, "closed", status.State)
		assert.Equal(t, "USER_DISMISS", status.Reason)
		assert.Nil(t, status.Card)
	})

	t.Run("DismissAgainReturnsNotFound", func(t *testing.T) {
		w := doJSON(router, http.MethodDelete, "/v1/disclosures/current", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("UnknownCardFoldsNoDataError", func(t *testing.T) {
		w := doJSON(router, http.MethodPost, "/v1/disclosures",
			dto.OpenDisclosureRequest{CardID: "card_999"})

		assert.Equal(t, http.StatusCreated, w.Code)

		var status dto.DisclosureStatusResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
		assert.Equal(t, "closed", status.State)
		require.NotNil(t, status.LastError)
		assert.Equal(t, "NO_DATA", status.LastError.Code)
		assert.Nil(t, status.Card)
	})
}

func TestCustomLoggerMiddleware(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	router := gin.New()
	router.Use(CustomLoggerMiddleware(logger))
	router.GET("/test", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, buf.String(), `"method":"GET"`)
	assert.Contains(t, buf.String(), `"path":"/test"`)
}

func TestMetricsServerHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	server := NewMetricsServer("localhost", 8081, logger, nil)
	handler := server.GetHandler()

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	// No provider registered; the route is absent.
	assert.Equal(t, http.StatusNotFound, w.Code)
}

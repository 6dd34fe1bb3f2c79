package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/metric"

	"github.com/allisson/cardvault/internal/config"
	disclosureHTTP "github.com/allisson/cardvault/internal/disclosure/http"
	"github.com/allisson/cardvault/internal/metrics"
)

// Server is the API HTTP server.
type Server struct {
	server            *http.Server
	cfg               *config.Config
	logger            *slog.Logger
	meterProvider     metric.MeterProvider
	disclosureHandler *disclosureHTTP.DisclosureHandler
	eventsHandler     *disclosureHTTP.EventsHandler
}

// NewServer creates the API server. meterProvider may be nil when metrics are
// disabled.
func NewServer(
	cfg *config.Config,
	logger *slog.Logger,
	meterProvider metric.MeterProvider,
	disclosureHandler *disclosureHTTP.DisclosureHandler,
	eventsHandler *disclosureHTTP.EventsHandler,
) *Server {
	return &Server{
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", cfg.ServerHost, cfg.ServerPort),
			ReadTimeout:  15 * time.Second,
			// The event stream stays open well past a normal request; write
			// timeouts would sever it.
			WriteTimeout: 0,
			IdleTimeout:  60 * time.Second,
		},
		cfg:               cfg,
		logger:            logger,
		meterProvider:     meterProvider,
		disclosureHandler: disclosureHandler,
		eventsHandler:     eventsHandler,
	}
}

// Router builds the gin engine with all middleware and routes. The context
// drives the readiness endpoint during shutdown.
func (s *Server) Router(ctx context.Context) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New())
	router.Use(CustomLoggerMiddleware(s.logger))

	if s.meterProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(s.meterProvider, s.cfg.MetricsNamespace))
	}

	if corsMiddleware := createCORSMiddleware(
		s.cfg.CORSEnabled, s.cfg.CORSAllowOrigins, s.logger,
	); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	router.GET("/health", HealthHandler())
	router.GET("/ready", ReadinessHandler(ctx))

	v1 := router.Group("/v1")
	if s.cfg.RateLimitEnabled {
		v1.Use(disclosureHTTP.RateLimitMiddleware(
			s.cfg.RateLimitRequestsPerSec, s.cfg.RateLimitBurst, s.logger,
		))
	}

	v1.POST("/disclosures", s.disclosureHandler.OpenDisclosureHandler)
	v1.GET("/disclosures/current", s.disclosureHandler.StatusHandler)
	v1.POST("/disclosures/current/copy", s.disclosureHandler.CopyHandler)
	v1.DELETE("/disclosures/current", s.disclosureHandler.DismissHandler)
	v1.GET("/disclosures/events", s.eventsHandler.StreamHandler)

	return router
}

// Start starts the API HTTP server.
func (s *Server) Start(ctx context.Context) error {
	s.server.Handler = s.Router(ctx)

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the API HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}

package http

import (
	"io"
	"log/slog"

	"github.com/gin-gonic/gin"

	disclosureDomain "github.com/allisson/cardvault/internal/disclosure/domain"
	"github.com/allisson/cardvault/internal/disclosure/event"
)

// EventsHandler streams disclosure lifecycle events to clients over
// server-sent events.
type EventsHandler struct {
	bus    *event.Bus
	logger *slog.Logger
}

// NewEventsHandler creates a new events handler with required dependencies.
func NewEventsHandler(bus *event.Bus, logger *slog.Logger) *EventsHandler {
	return &EventsHandler{
		bus:    bus,
		logger: logger,
	}
}

// StreamHandler subscribes the client to the event channel and streams each
// lifecycle event as an SSE message until the client disconnects.
// GET /v1/disclosures/events
func (h *EventsHandler) StreamHandler(c *gin.Context) {
	clientCtx := c.Request.Context()

	// The bus handler runs on the subscription's goroutine; forwarding
	// through a channel keeps per-subscriber ordering while letting delivery
	// stop as soon as the client goes away.
	stream := make(chan disclosureDomain.Event)
	sub := h.bus.Subscribe(func(e disclosureDomain.Event) {
		select {
		case stream <- e:
		case <-clientCtx.Done():
		}
	})
	defer sub.Unsubscribe()

	h.logger.Debug("event stream client connected")

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	// Flush the headers right away so clients that attach before the first
	// event complete the handshake instead of blocking on it.
	c.Writer.WriteHeaderNow()
	c.Writer.Flush()

	c.Stream(func(w io.Writer) bool {
		select {
		case e := <-stream:
			c.SSEvent(string(e.Kind), e)
			return true
		case <-clientCtx.Done():
			return false
		}
	})

	h.logger.Debug("event stream client disconnected")
}

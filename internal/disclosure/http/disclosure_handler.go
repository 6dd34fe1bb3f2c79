// Package http provides HTTP handlers for disclosure lifecycle operations.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	disclosureDomain "github.com/allisson/cardvault/internal/disclosure/domain"
	"github.com/allisson/cardvault/internal/disclosure/http/dto"
	disclosureUseCase "github.com/allisson/cardvault/internal/disclosure/usecase"
	"github.com/allisson/cardvault/internal/httputil"
	customValidation "github.com/allisson/cardvault/internal/validation"
)

// DisclosureHandler handles HTTP requests for the disclosure lifecycle.
// It coordinates with the Orchestrator, which owns the at-most-one active
// disclosure.
type DisclosureHandler struct {
	orchestrator disclosureUseCase.Orchestrator
	logger       *slog.Logger
}

// NewDisclosureHandler creates a new disclosure handler with required dependencies.
func NewDisclosureHandler(
	orchestrator disclosureUseCase.Orchestrator,
	logger *slog.Logger,
) *DisclosureHandler {
	return &DisclosureHandler{
		orchestrator: orchestrator,
		logger:       logger,
	}
}

// OpenDisclosureHandler starts a disclosure for a card.
// POST /v1/disclosures
// Returns 201 Created with the resulting status; a disclosure that ran but
// ended on a validation failure still returns 201 with the failure folded
// into last_error.
func (h *DisclosureHandler) OpenDisclosureHandler(c *gin.Context) {
	var req dto.OpenDisclosureRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	status, err := h.orchestrator.Open(c.Request.Context(), req.CardID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	response := dto.ToStatusResponse(status)
	if status.State == disclosureDomain.StateShown {
		if view, err := h.orchestrator.CurrentView(c.Request.Context()); err == nil {
			response.Card = dto.ToCardViewResponse(view)
		}
	}

	c.JSON(http.StatusCreated, response)
}

// StatusHandler returns the folded status of the current disclosure,
// including the disclosed data while it is shown.
// GET /v1/disclosures/current
func (h *DisclosureHandler) StatusHandler(c *gin.Context) {
	status, err := h.orchestrator.Status(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	response := dto.ToStatusResponse(status)
	if status.State == disclosureDomain.StateShown {
		if view, err := h.orchestrator.CurrentView(c.Request.Context()); err == nil {
			response.Card = dto.ToCardViewResponse(view)
		}
	}

	c.JSON(http.StatusOK, response)
}

// CopyHandler returns the grouped card number for the clipboard while the
// data is shown.
// POST /v1/disclosures/current/copy
func (h *DisclosureHandler) CopyHandler(c *gin.Context) {
	pan, err := h.orchestrator.CopyPAN(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.CopyResponse{PAN: pan})
}

// DismissHandler closes the current disclosure on user request.
// DELETE /v1/disclosures/current
// Returns 204 No Content on success, 404 when no disclosure is active.
func (h *DisclosureHandler) DismissHandler(c *gin.Context) {
	if err := h.orchestrator.Dismiss(c.Request.Context()); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

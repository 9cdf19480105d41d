package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/LasseVKP/LDCBots/internal/api/shared"
	"github.com/LasseVKP/LDCBots/internal/domain"
	"github.com/LasseVKP/LDCBots/internal/domain/blackjack"
	"github.com/LasseVKP/LDCBots/internal/service"
)

// BlackjackHandler handles blackjack HTTP requests: dealing a session and
// the hit and stand actions.
type BlackjackHandler struct {
	blackjackService service.BlackjackService
	validator        *validator.Validate
}

// NewBlackjackHandler creates a new BlackjackHandler.
func NewBlackjackHandler(blackjackService service.BlackjackService) *BlackjackHandler {
	return &BlackjackHandler{
		blackjackService: blackjackService,
		validator:        validator.New(),
	}
}

// Start handles POST /api/blackjack requests.
func (h *BlackjackHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req StartBlackjackRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	view, err := h.blackjackService.Start(r.Context(), req.Actor, req.Wager)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, view)
}

// Hit handles POST /api/blackjack/{sessionID}/hit requests.
func (h *BlackjackHandler) Hit(w http.ResponseWriter, r *http.Request) {
	h.action(w, r, h.blackjackService.Hit)
}

// Stand handles POST /api/blackjack/{sessionID}/stand requests.
func (h *BlackjackHandler) Stand(w http.ResponseWriter, r *http.Request) {
	h.action(w, r, h.blackjackService.Stand)
}

func (h *BlackjackHandler) action(
	w http.ResponseWriter,
	r *http.Request,
	act func(ctx context.Context, sessionID uuid.UUID, actor domain.Actor) (blackjack.View, error),
) {
	sessionID, err := uuid.Parse(chi.URLParam(r, "sessionID"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid session ID")
		return
	}

	var req BlackjackActionRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	view, err := act(r.Context(), sessionID, req.Actor)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, view)
}

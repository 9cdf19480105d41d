package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/LasseVKP/LDCBots/internal/api/shared"
	"github.com/LasseVKP/LDCBots/internal/service"
)

// TokenHandler handles token-related HTTP requests: purchases, token
// balances, the token leaderboard, and the pool size.
type TokenHandler struct {
	tokenService service.TokenService
	validator    *validator.Validate
}

// NewTokenHandler creates a new TokenHandler.
func NewTokenHandler(tokenService service.TokenService) *TokenHandler {
	return &TokenHandler{
		tokenService: tokenService,
		validator:    validator.New(),
	}
}

// Buy handles POST /api/tokens/buy requests.
func (h *TokenHandler) Buy(w http.ResponseWriter, r *http.Request) {
	var req BuyTokensRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	entry, err := h.tokenService.Buy(r.Context(), req.Actor, req.Count)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, BuyTokensResponse{
		Tokens:  entry.Tokens,
		Balance: entry.Balance.Float(),
	})
}

// Balance handles GET /api/tokens/balance/{actorID} requests.
func (h *TokenHandler) Balance(w http.ResponseWriter, r *http.Request) {
	actorID := chi.URLParam(r, "actorID")
	if actorID == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Actor ID is required")
		return
	}

	tokens, err := h.tokenService.Balance(r.Context(), actorID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to read token balance")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, TokenBalanceResponse{
		ActorID: actorID,
		Tokens:  tokens,
	})
}

// Leaderboard handles GET /api/tokens/leaderboard requests.
func (h *TokenHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	entries, err := h.tokenService.Leaderboard(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to read token leaderboard")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ledgerEntriesToLeaderboard(entries))
}

// Pool handles GET /api/tokens/pool requests.
func (h *TokenHandler) Pool(w http.ResponseWriter, r *http.Request) {
	pool, err := h.tokenService.Pool(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to read pool")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, PoolResponse{Pool: pool})
}

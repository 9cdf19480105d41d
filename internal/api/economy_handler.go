package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/LasseVKP/LDCBots/internal/api/shared"
	"github.com/LasseVKP/LDCBots/internal/domain"
	"github.com/LasseVKP/LDCBots/internal/service"
)

// EconomyHandler handles currency-related HTTP requests: payments, balances,
// the leaderboard, greeting rewards, and transfer history.
type EconomyHandler struct {
	economyService service.EconomyService
	validator      *validator.Validate
}

// NewEconomyHandler creates a new EconomyHandler.
func NewEconomyHandler(economyService service.EconomyService) *EconomyHandler {
	return &EconomyHandler{
		economyService: economyService,
		validator:      validator.New(),
	}
}

// Pay handles POST /api/pay requests.
func (h *EconomyHandler) Pay(w http.ResponseWriter, r *http.Request) {
	var req PayRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	amount := domain.CentsFromFloat(req.Amount)
	payerBalance, payeeBalance, err := h.economyService.Pay(r.Context(), req.Payer, req.Payee, amount)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, PayResponse{
		PayerBalance: payerBalance.Float(),
		PayeeBalance: payeeBalance.Float(),
	})
}

// Balance handles GET /api/balance/{actorID} requests.
func (h *EconomyHandler) Balance(w http.ResponseWriter, r *http.Request) {
	actorID := chi.URLParam(r, "actorID")
	if actorID == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Actor ID is required")
		return
	}

	balance, err := h.economyService.Balance(r.Context(), actorID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to read balance")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, BalanceResponse{
		ActorID: actorID,
		Balance: balance.Float(),
	})
}

// Leaderboard handles GET /api/leaderboard requests.
func (h *EconomyHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	entries, err := h.economyService.Leaderboard(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to read leaderboard")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ledgerEntriesToLeaderboard(entries))
}

// History handles GET /api/history/{actorID} requests.
func (h *EconomyHandler) History(w http.ResponseWriter, r *http.Request) {
	actorID := chi.URLParam(r, "actorID")
	if actorID == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Actor ID is required")
		return
	}

	transactions, err := h.economyService.History(r.Context(), actorID, 0)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to read history")
		return
	}

	responses := make([]TransactionResponse, 0, len(transactions))
	for _, tx := range transactions {
		responses = append(responses, TransactionResponse{
			ID:        tx.ID.String(),
			Type:      string(tx.Type),
			Amount:    tx.Amount.Float(),
			Tokens:    tx.TokenAmount,
			Reference: tx.ReferenceID,
			CreatedAt: tx.CreatedAt.Format(time.RFC3339),
		})
	}

	shared.RespondWithJSON(w, r, http.StatusOK, responses)
}

// Greet handles POST /api/hello requests.
func (h *EconomyHandler) Greet(w http.ResponseWriter, r *http.Request) {
	var req GreetRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	balance, err := h.economyService.Greet(r.Context(), req.Actor)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to credit greeting reward")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, GreetResponse{Balance: balance.Float()})
}

// ledgerEntriesToLeaderboard converts ranked ledger entries to response rows.
func ledgerEntriesToLeaderboard(entries []domain.LedgerEntry) []LeaderboardEntry {
	rows := make([]LeaderboardEntry, 0, len(entries))
	for i, entry := range entries {
		rows = append(rows, LeaderboardEntry{
			Rank:        i + 1,
			ActorID:     entry.ActorID,
			DisplayName: entry.DisplayName,
			Balance:     entry.Balance.Float(),
			Tokens:      entry.Tokens,
		})
	}
	return rows
}

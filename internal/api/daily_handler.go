package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/LasseVKP/LDCBots/internal/api/shared"
	"github.com/LasseVKP/LDCBots/internal/domain"
	"github.com/LasseVKP/LDCBots/internal/service"
)

// DailyHandler handles the daily reward HTTP requests: the forecast overview
// and the claim.
type DailyHandler struct {
	dailyService service.DailyService
	validator    *validator.Validate
}

// NewDailyHandler creates a new DailyHandler.
func NewDailyHandler(dailyService service.DailyService) *DailyHandler {
	return &DailyHandler{
		dailyService: dailyService,
		validator:    validator.New(),
	}
}

// View handles GET /api/daily/{actorID} requests.
func (h *DailyHandler) View(w http.ResponseWriter, r *http.Request) {
	actorID := chi.URLParam(r, "actorID")
	if actorID == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Actor ID is required")
		return
	}

	view, err := h.dailyService.View(r.Context(), actorID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to read daily forecast")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, DailyViewResponse{
		Day:      view.Day,
		Claimed:  view.Claimed,
		Forecast: forecastToEntries(view.Forecast),
	})
}

// Claim handles POST /api/daily/claim requests.
func (h *DailyHandler) Claim(w http.ResponseWriter, r *http.Request) {
	var req ClaimRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	reward, err := h.dailyService.Claim(r.Context(), req.Actor)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ClaimResponse{
		Day:    reward.Day,
		Money:  reward.Money.Float(),
		Tokens: reward.Tokens,
	})
}

func forecastToEntries(forecast []domain.DailyForecast) []DailyForecastEntry {
	entries := make([]DailyForecastEntry, 0, len(forecast))
	for _, f := range forecast {
		entries = append(entries, DailyForecastEntry{
			Day:    f.Day,
			Money:  f.Money.Float(),
			Tokens: f.Tokens,
		})
	}
	return entries
}

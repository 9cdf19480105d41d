package api

import (
	"net/http"

	"github.com/LasseVKP/LDCBots/internal/api/shared"
	"github.com/LasseVKP/LDCBots/internal/service"
)

// DistributorHandler exposes the manual trigger for the weekly token pool
// distribution. The scheduler fires the same service on its own cadence;
// this endpoint exists for operators.
type DistributorHandler struct {
	distributorService service.DistributorService
}

// NewDistributorHandler creates a new DistributorHandler.
func NewDistributorHandler(distributorService service.DistributorService) *DistributorHandler {
	return &DistributorHandler{distributorService: distributorService}
}

// Distribute handles POST /api/distribute requests. Firing it against an
// empty pool is harmless: the response reports zero consumed and no winners.
func (h *DistributorHandler) Distribute(w http.ResponseWriter, r *http.Request) {
	result, err := h.distributorService.Distribute(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Distribution failed")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, result)
}

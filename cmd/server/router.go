package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/LasseVKP/LDCBots/internal/api"
	apiMiddleware "github.com/LasseVKP/LDCBots/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware. Returns the configured router.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	// Create API handlers using the application's services
	economyHandler := api.NewEconomyHandler(app.economyService)
	tokenHandler := api.NewTokenHandler(app.tokenService)
	dailyHandler := api.NewDailyHandler(app.dailyService)
	blackjackHandler := api.NewBlackjackHandler(app.blackjackService)
	distributorHandler := api.NewDistributorHandler(app.distributorService)

	// Register routes
	r.Route("/api", func(r chi.Router) {
		// Currency
		r.Post("/pay", economyHandler.Pay)
		r.Post("/hello", economyHandler.Greet)
		r.Get("/balance/{actorID}", economyHandler.Balance)
		r.Get("/leaderboard", economyHandler.Leaderboard)
		r.Get("/history/{actorID}", economyHandler.History)

		// Tokens
		r.Post("/tokens/buy", tokenHandler.Buy)
		r.Get("/tokens/balance/{actorID}", tokenHandler.Balance)
		r.Get("/tokens/leaderboard", tokenHandler.Leaderboard)
		r.Get("/tokens/pool", tokenHandler.Pool)

		// Daily rewards
		r.Get("/daily/{actorID}", dailyHandler.View)
		r.Post("/daily/claim", dailyHandler.Claim)

		// Blackjack
		r.Post("/blackjack", blackjackHandler.Start)
		r.Post("/blackjack/{sessionID}/hit", blackjackHandler.Hit)
		r.Post("/blackjack/{sessionID}/stand", blackjackHandler.Stand)

		// Manual distribution trigger
		r.Post("/distribute", distributorHandler.Distribute)
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}

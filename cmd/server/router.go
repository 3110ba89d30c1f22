package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/corepay/gateway/internal/api"
	apiMiddleware "github.com/corepay/gateway/internal/api/middleware"
)

// setupRouter creates the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware(app.logger))

	paymentHandler := api.NewPaymentHandler(app.gateway, app.logger)
	cardHandler := api.NewCardHandler(app.gateway, app.logger)
	methodHandler := api.NewMethodHandler(app.gateway, app.logger)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			// Payment and payout endpoints
			r.Post("/payments", paymentHandler.CreatePayment)
			r.Post("/payouts", paymentHandler.CreatePayout)
			r.Get("/transactions/{id}", paymentHandler.GetTransaction)

			// Card lifecycle endpoints
			r.Get("/cards", cardHandler.ListCards)
			r.Post("/cards/bind", cardHandler.BindCard)
			r.Delete("/cards/{id}", cardHandler.RemoveCard)

			// Method listing endpoints
			r.Get("/companies/{alias}/methods", methodHandler.GetMethods)
			r.Post("/methods/context", methodHandler.GetContextMethods)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}

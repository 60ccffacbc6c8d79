/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. Logger:      Request logging
  2. Recoverer:   Panic recovery (500 instead of crash)
  3. RequestID:   Unique ID per request for tracing
  4. CORS:        Cross-origin requests for the frontend
  5. RequireAuth: Token validation on everything except login
  6. RequireAdmin: Role gate on mutating routes

ROUTE GROUPS:
  /api/auth/*        Login and identity echo
  /api/employees/*   Employee management
  /api/payments/*    Payment ledger
  /api/salary/*      Salary calculation
  /api/reports       Reporting

SEE ALSO:
  - handlers.go: Handler implementations
  - middleware.go: Auth middleware
  - cmd/server/main.go: Server startup
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Route("/api", func(r chi.Router) {
		// Public
		r.Post("/auth/login", h.Login)

		// Authenticated
		r.Group(func(r chi.Router) {
			r.Use(RequireAuth(h.Tokens))

			r.Get("/auth/user", h.CurrentUser)
			r.Get("/employees", h.ListEmployees)
			r.Get("/payments", h.ListPayments)
			r.Get("/reports", h.GetReport)

			// Admin-only mutations
			r.Group(func(r chi.Router) {
				r.Use(RequireAdmin)

				r.Post("/employees", h.CreateEmployee)
				r.Put("/employees/{id}", h.UpdateEmployee)
				r.Delete("/employees/{id}", h.DeleteEmployee)

				r.Post("/payments", h.CreatePayment)
				r.Post("/payments/salary", h.PaySalary)
				r.Post("/payments/advance", h.PayAdvance)
				r.Delete("/payments/{id}", h.DeletePayment)

				r.Post("/salary/calculate", h.CalculateSalary)
			})
		})
	})

	return r
}

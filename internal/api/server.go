// Package api provides the JSON HTTP server for the trip ledger.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tripledger/tripledger/internal/auth"
	"github.com/tripledger/tripledger/internal/middleware"
	"github.com/tripledger/tripledger/internal/service"
)

// Server wires the services into HTTP routes.
type Server struct {
	auth      *service.AuthService
	trips     *service.TripService
	expenses  *service.ExpenseService
	transfers *service.TransferService
	invites   *service.InviteService
	jwt       *auth.JWTManager
}

// NewServer creates the API server.
func NewServer(
	authSvc *service.AuthService,
	trips *service.TripService,
	expenses *service.ExpenseService,
	transfers *service.TransferService,
	invites *service.InviteService,
	jwt *auth.JWTManager,
) *Server {
	return &Server{
		auth:      authSvc,
		trips:     trips,
		expenses:  expenses,
		transfers: transfers,
		invites:   invites,
		jwt:       jwt,
	}
}

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(corsMiddleware)
	r.Use(middleware.RequestLogger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", s.handleRegister)
		r.Post("/auth/login", s.handleLogin)

		// Invite lookup is public so invitees can see what they were
		// invited to before signing in.
		r.Get("/invites/{token}", s.handleGetInvite)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(s.jwt))

			r.Route("/trips", func(r chi.Router) {
				r.Get("/", s.handleListTrips)
				r.Post("/", s.handleCreateTrip)
				r.Get("/{id}", s.handleGetTrip)
				r.Delete("/{id}", s.handleDeleteTrip)
				r.Get("/{id}/balances", s.handleTripBalances)
				r.Get("/{id}/expenses", s.handleListExpenses)
				r.Post("/{id}/expenses", s.handleCreateExpense)
				r.Get("/{id}/transfers", s.handleListTransfers)
				r.Post("/{id}/transfers", s.handleCreateTransfer)
				r.Get("/{id}/invites", s.handleListInvites)
				r.Post("/{id}/invites", s.handleCreateInvite)
			})

			r.Post("/invites/{token}/accept", s.handleAcceptInvite)
			r.Post("/invites/{token}/revoke", s.handleRevokeInvite)

			r.Get("/notifications", s.handleListNotifications)
			r.Post("/notifications/{id}/accept", s.handleAcceptNotification)
		})
	})

	return r
}

// corsMiddleware adds CORS headers for browser access.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

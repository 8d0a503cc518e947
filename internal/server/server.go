// Package server wires the HTTP surface of the user service.
package server

import (
	"log/slog"
	"net/http"

	"github.com/iudanet/usersvc/internal/server/handlers"
	"github.com/iudanet/usersvc/internal/server/middleware"
	"github.com/iudanet/usersvc/internal/server/storage"
	"github.com/iudanet/usersvc/internal/server/token"
)

// Server holds the route table and the collaborators every handler needs.
// There is no process-wide state: everything is injected here once and
// passed down explicitly.
type Server struct {
	logger *slog.Logger
	users  storage.UserStorage
	ledger storage.TokenLedger
	codec  *token.Codec
	mux    *http.ServeMux
}

// New creates the server and registers all routes.
func New(
	logger *slog.Logger,
	users storage.UserStorage,
	ledger storage.TokenLedger,
	codec *token.Codec,
) *Server {
	s := &Server{
		logger: logger,
		users:  users,
		ledger: ledger,
		codec:  codec,
		mux:    http.NewServeMux(),
	}
	s.registerRoutes()
	return s
}

// Handler returns the full middleware chain around the route table.
func (s *Server) Handler() http.Handler {
	var h http.Handler = s.mux
	h = middleware.RecoveryMiddleware(s.logger)(h)
	h = middleware.LoggingMiddleware(s.logger)(h)
	return h
}

// registerRoutes wires handlers to routes. Reads are open, writes go
// through the auth gate; user creation additionally requires admin.
func (s *Server) registerRoutes() {
	authHandler := handlers.NewAuthHandler(s.logger, s.users, s.ledger, s.codec)
	usersHandler := handlers.NewUsersHandler(s.logger, s.users)

	authenticate := middleware.Authenticate(s.logger, s.codec, s.users, s.ledger)
	requireAdmin := middleware.RequireAdmin(s.logger)

	s.mux.HandleFunc("GET /users/ping", handlers.Ping)

	s.mux.HandleFunc("POST /auth/login", authHandler.Login)
	s.mux.HandleFunc("POST /auth/logout", authHandler.Logout)
	s.mux.Handle("GET /auth/status", authenticate(http.HandlerFunc(authHandler.Status)))

	s.mux.HandleFunc("GET /users", usersHandler.List)
	s.mux.HandleFunc("GET /users/{id}", usersHandler.Get)
	s.mux.Handle("POST /users", authenticate(requireAdmin(http.HandlerFunc(usersHandler.Create))))
}

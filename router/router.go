// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/cecm11deoutubro/portal/cliparse"
	"github.com/cecm11deoutubro/portal/handlers"
	"github.com/cecm11deoutubro/portal/identity"
	"github.com/cecm11deoutubro/portal/middleware"
	"github.com/cecm11deoutubro/portal/models"
	"github.com/cecm11deoutubro/portal/polls"
	"github.com/cecm11deoutubro/portal/store"
)

var (
	pollManagers = []models.Role{models.RoleAdmin, models.RoleStaff}
	adminsOnly   = []models.Role{models.RoleAdmin}
)

func NewRouter(db *sql.DB, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize services
	st := store.New(db)
	pollService := polls.NewService(st, cfg.Location, nil)
	identityService := identity.NewService(st, cfg.StudentEmailSuffix, nil)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(identityService, cfg)
	userHandler := handlers.NewUserHandler(identityService)
	pollHandler := handlers.NewPollHandler(pollService)
	votingHandler := handlers.NewVotingHandler(pollService)
	resultsHandler := handlers.NewResultsHandler(pollService)

	authed := func(next http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.Authenticated(cfg.TokenSecret, next))
	}
	restricted := func(roles []models.Role, next http.HandlerFunc) http.HandlerFunc {
		return authed(middleware.RequireRole(roles, next))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Authentication
	mux.HandleFunc("POST /auth/login", middleware.WithLogging(authHandler.Login))
	mux.HandleFunc("GET /auth/me", authed(authHandler.Me))

	// Dashboard and voting (any signed-in user)
	mux.HandleFunc("GET /polls", authed(pollHandler.ListPolls))
	mux.HandleFunc("POST /polls/{id}/votes", authed(votingHandler.CastVote))
	mux.HandleFunc("GET /polls/{id}/vote", authed(votingHandler.GetMyVote))

	// Poll management (staff and admins)
	mux.HandleFunc("POST /polls", restricted(pollManagers, pollHandler.CreatePoll))
	mux.HandleFunc("GET /admin/polls", restricted(pollManagers, pollHandler.ListAllPolls))
	mux.HandleFunc("POST /polls/{id}/close", restricted(pollManagers, pollHandler.ClosePoll))
	mux.HandleFunc("DELETE /polls/{id}", restricted(pollManagers, pollHandler.DeletePoll))
	mux.HandleFunc("GET /polls/{id}/results", restricted(pollManagers, resultsHandler.GetResults))

	// Administration
	mux.HandleFunc("POST /polls/{id}/reconcile", restricted(adminsOnly, resultsHandler.Reconcile))
	mux.HandleFunc("GET /admin/users", restricted(adminsOnly, userHandler.ListUsers))
	mux.HandleFunc("POST /admin/users", restricted(adminsOnly, userHandler.CreateUser))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("portal API v1"))
	})

	return mux
}

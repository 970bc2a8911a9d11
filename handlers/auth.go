// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/cecm11deoutubro/portal/auth"
	"github.com/cecm11deoutubro/portal/cliparse"
	"github.com/cecm11deoutubro/portal/identity"
	"github.com/cecm11deoutubro/portal/middleware"
	"github.com/cecm11deoutubro/portal/models"
)

type AuthHandler struct {
	identity *identity.Service
	cfg      cliparse.Config
	now      func() time.Time
}

func NewAuthHandler(svc *identity.Service, cfg cliparse.Config) *AuthHandler {
	return &AuthHandler{identity: svc, cfg: cfg, now: time.Now}
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Username == "" || req.Password == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "username and password are required")
		return
	}

	now := h.now()
	user, registered, err := h.identity.Login(r.Context(), req.Username, req.Password, now)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	token, expiresAt, err := auth.IssueToken(user, h.cfg.TokenSecret, h.cfg.TokenTTL, now)
	if err != nil {
		slog.Error("failed to issue token", "user_id", user.ID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to log in")
		return
	}

	slog.Info("user logged in", "user_id", user.ID, "role", user.Role, "registered", registered)

	middleware.JSONResponse(w, http.StatusOK, models.LoginResponse{
		Token:      token,
		ExpiresAt:  expiresAt,
		User:       user,
		Registered: registered,
	})
}

// Me handles GET /auth/me. A token outliving its account yields 404.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	id, ok := callerIdentity(w, r)
	if !ok {
		return
	}

	user, err := h.identity.Get(r.Context(), id.UserID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, user)
}

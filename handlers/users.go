// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"time"

	"github.com/cecm11deoutubro/portal/identity"
	"github.com/cecm11deoutubro/portal/middleware"
	"github.com/cecm11deoutubro/portal/models"
)

type UserHandler struct {
	identity *identity.Service
	now      func() time.Time
}

func NewUserHandler(svc *identity.Service) *UserHandler {
	return &UserHandler{identity: svc, now: time.Now}
}

// ListUsers handles GET /admin/users
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.identity.ListUsers(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, users)
}

// CreateUser handles POST /admin/users. The role defaults to admin.
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req models.CreateUserRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Role == "" {
		req.Role = models.RoleAdmin
	}

	user, err := h.identity.Register(r.Context(), req.Username, req.Password, req.Role, h.now())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, user)
}

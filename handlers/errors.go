// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cecm11deoutubro/portal/middleware"
	"github.com/cecm11deoutubro/portal/models"
)

// writeDomainError maps service errors to HTTP responses
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, models.ErrValidation), errors.Is(err, models.ErrInvalidOption):
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, models.ErrAuthFailure):
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid username or password")
	case errors.Is(err, models.ErrNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, err.Error())
	case errors.Is(err, models.ErrPollClosed):
		middleware.ErrorResponse(w, http.StatusConflict, "Poll is not open for voting")
	case errors.Is(err, models.ErrDuplicateVote):
		middleware.ErrorResponse(w, http.StatusConflict, "You have already voted in this poll")
	case errors.Is(err, models.ErrDuplicateUsername):
		middleware.ErrorResponse(w, http.StatusConflict, "Username already exists")
	default:
		slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Internal error")
	}
}

// callerIdentity returns the identity stored by middleware.Authenticated,
// writing a 401 when it is missing
func callerIdentity(w http.ResponseWriter, r *http.Request) (models.Identity, bool) {
	id, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Authentication required")
	}
	return id, ok
}

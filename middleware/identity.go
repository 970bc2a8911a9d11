// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/cecm11deoutubro/portal/auth"
	"github.com/cecm11deoutubro/portal/models"
)

type identityKey struct{}

// WithIdentity returns a copy of ctx carrying the caller identity
func WithIdentity(ctx context.Context, id models.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFrom returns the caller identity stored by Authenticated
func IdentityFrom(ctx context.Context) (models.Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(models.Identity)
	return id, ok
}

// Authenticated requires a valid "Authorization: Bearer <token>" header and
// stores the identity it carries in the request context.
func Authenticated(secret string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			w.Header().Set("WWW-Authenticate", "Bearer")
			ErrorResponse(w, http.StatusUnauthorized, "Authorization bearer token required")
			return
		}

		id, err := auth.ParseToken(token, secret)
		if err != nil {
			slog.Info("token rejected", "path", r.URL.Path, "error", err)
			w.Header().Set("WWW-Authenticate", "Bearer")
			ErrorResponse(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		next(w, r.WithContext(WithIdentity(r.Context(), id)))
	}
}

// RequireRole rejects callers without one of the roles with 403.
// It must run inside Authenticated.
func RequireRole(roles []models.Role, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := IdentityFrom(r.Context())
		if !ok {
			ErrorResponse(w, http.StatusUnauthorized, "Authentication required")
			return
		}
		if err := auth.Authorize(id, roles...); err != nil {
			ErrorResponse(w, http.StatusForbidden, "Your role cannot perform this action")
			return
		}
		next(w, r)
	}
}

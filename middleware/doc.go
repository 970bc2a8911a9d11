// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /polls", middleware.WithLogging(handler))

Logs request start (method, path, client IP) and completion (status, duration_ms).

# Identity

Authenticated verifies the bearer token and stores the caller identity in
the request context; RequireRole then restricts the route to given roles:

	mux.HandleFunc("POST /polls", middleware.WithLogging(
		middleware.Authenticated(cfg.TokenSecret,
			middleware.RequireRole(managers, pollHandler.CreatePoll))))

Handlers read the identity back with IdentityFrom(r.Context()).
Missing or invalid tokens get 401, wrong roles get 403.

# CORS Middleware

Enable cross-origin requests for frontend access:

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

Allows methods GET, POST, DELETE, OPTIONS with headers Content-Type and
Authorization.

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

	var req models.CreatePollRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

# Client IP Extraction

	ip := middleware.GetClientIP(r)

Checks X-Forwarded-For, then X-Real-IP, then RemoteAddr.
*/
package middleware

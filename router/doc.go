// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the polling portal API.

# Route Registration

NewRouter builds the services over db and returns a configured
http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg)

Every route except /health, / and /auth/login requires an
"Authorization: Bearer <token>" header issued by /auth/login.

# Endpoints

Health:

	GET /health

Authentication (public):

	POST /auth/login - Log in, registering students on first login
	GET  /auth/me    - Caller identity

Dashboard and voting (any role):

	GET  /polls            - Open polls with has_voted and expires_in
	POST /polls/{id}/votes - Cast a vote
	GET  /polls/{id}/vote  - Caller's own vote

Poll management (admin, staff):

	POST   /polls              - Create poll
	GET    /admin/polls        - All polls, including closed and expired
	POST   /polls/{id}/close   - Stop accepting votes
	DELETE /polls/{id}         - Remove poll and its votes
	GET    /polls/{id}/results - Per-option counts

Administration (admin):

	POST /polls/{id}/reconcile - Recompute the cached vote total
	GET  /admin/users          - List accounts
	POST /admin/users          - Add an account
*/
package router

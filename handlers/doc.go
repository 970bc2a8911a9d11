// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the polling portal API.

# Handler Types

Each handler is a struct holding a domain service and the config:

  - AuthHandler: Login (with student self-registration) and caller identity
  - UserHandler: Administrator account management
  - PollHandler: Poll creation, dashboard listing, close, delete
  - VotingHandler: Vote submission and the caller's own vote
  - ResultsHandler: Per-option tallies and counter reconciliation

Handlers are created via constructor functions:

	pollHandler := handlers.NewPollHandler(pollService)

Handlers trust the identity placed in the request context by
middleware.Authenticated; role checks happen in the router.

# Errors

Service errors are mapped to status codes in one place (writeDomainError):
validation and unknown options are 400, authentication failures 401,
missing polls 404, and closed polls or duplicate votes and usernames 409.
Anything else is logged and reported as 500.

# Voting Flow

	POST /auth/login           → Login (returns a bearer token)
	GET  /polls                → ListPolls (open polls, has_voted, expires_in)
	POST /polls/{id}/votes     → CastVote
	GET  /polls/{id}/results   → GetResults (staff and admins)
*/
package handlers

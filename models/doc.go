// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, domain and error types for the API.

# Request Types

Types for parsing incoming JSON:

  - LoginRequest: username, password
  - CreatePollRequest: title, question, options (comma-delimited), expiration
  - CastVoteRequest: option
  - CreateUserRequest: username, password, role

# Response Types

  - LoginResponse: token, expires_at, user, registered
  - CastVoteResponse: vote_id, message
  - ClosePollResponse: poll_id, active
  - PollSummary: dashboard entry (expires_in, has_voted)
  - AdminPollSummary: admin listing entry (is_expired, is_open)
  - ResultsResponse: poll, counts, total_votes
  - ErrorResponse: error, message

# Domain Types

  - User: account with role (admin, staff, student)
  - Identity: verified caller resolved from a token
  - Poll: question, options, optional expiration, active flag, cached total
  - Vote: one per (user, poll)
  - Tally, OptionCount, Reconciliation: aggregation results

# Errors

Sentinel errors are matched with errors.Is:

	ErrValidation        -> 400
	ErrInvalidOption     -> 400
	ErrAuthFailure       -> 401
	ErrNotFound          -> 404
	ErrPollClosed        -> 409
	ErrDuplicateVote     -> 409
	ErrDuplicateUsername -> 409

Invalid wraps ErrValidation with a message:

	return models.Invalid("title is required")
*/
package models

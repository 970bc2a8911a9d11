// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Role is one of the three fixed account roles.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleStaff   Role = "staff"
	RoleStudent Role = "student"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleStaff, RoleStudent:
		return true
	}
	return false
}

// CanManagePolls reports whether r may create, close, delete and read results of polls.
func (r Role) CanManagePolls() bool {
	return r == RoleAdmin || r == RoleStaff
}

// Request types

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Options is the comma-delimited option list, e.g. "Red, Blue, Green".
// Expiration is optional and uses the "YYYY-MM-DD HH:MM" format.
type CreatePollRequest struct {
	Title      string `json:"title"`
	Question   string `json:"question"`
	Options    string `json:"options"`
	Expiration string `json:"expiration,omitempty"`
}

type CastVoteRequest struct {
	Option string `json:"option"`
}

type CreateUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     Role   `json:"role,omitempty"`
}

// Response types

type LoginResponse struct {
	Token      string    `json:"token"`
	ExpiresAt  time.Time `json:"expires_at"`
	User       User      `json:"user"`
	Registered bool      `json:"registered"`
}

type CastVoteResponse struct {
	VoteID  string `json:"vote_id"`
	Message string `json:"message"`
}

type ClosePollResponse struct {
	PollID string `json:"poll_id"`
	Active bool   `json:"active"`
}

// PollSummary is a dashboard entry for a poll open for voting.
type PollSummary struct {
	Poll      Poll   `json:"poll"`
	ExpiresIn string `json:"expires_in,omitempty"`
	HasVoted  bool   `json:"has_voted"`
}

// AdminPollSummary is an entry of the admin listing, which includes closed and expired polls.
type AdminPollSummary struct {
	Poll      Poll   `json:"poll"`
	IsExpired bool   `json:"is_expired"`
	IsOpen    bool   `json:"is_open"`
	ExpiresIn string `json:"expires_in,omitempty"`
}

type ResultsResponse struct {
	Poll       Poll          `json:"poll"`
	Counts     []OptionCount `json:"counts"`
	TotalVotes int           `json:"total_votes"`
}

// Domain types

type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // Never expose in JSON
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// Identity is the verified caller of a request.
type Identity struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

type Poll struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Question   string     `json:"question"`
	Options    []string   `json:"options"`
	Expiration *time.Time `json:"expiration,omitempty"`
	Active     bool       `json:"active"`
	TotalVotes int        `json:"total_votes"`
	CreatedAt  time.Time  `json:"created_at"`
}

// HasOption reports whether label is one of the poll's options.
func (p Poll) HasOption(label string) bool {
	for _, o := range p.Options {
		if o == label {
			return true
		}
	}
	return false
}

type Vote struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	PollID    string    `json:"poll_id"`
	Option    string    `json:"option"`
	CreatedAt time.Time `json:"created_at"`
}

type OptionCount struct {
	Option  string  `json:"option"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// Tally is the aggregated result of a poll. Total is the poll's cached
// counter, which equals the sum of Counts while the ledger and the
// counter agree.
type Tally struct {
	Poll   Poll          `json:"-"`
	PollID string        `json:"poll_id"`
	Counts []OptionCount `json:"counts"`
	Total  int           `json:"total"`
}

// Reconciliation reports a counter recomputed from the vote ledger.
type Reconciliation struct {
	PollID   string `json:"poll_id"`
	Previous int    `json:"previous"`
	Current  int    `json:"current"`
	Changed  bool   `json:"changed"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

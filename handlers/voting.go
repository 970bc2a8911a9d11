// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"time"

	"github.com/cecm11deoutubro/portal/middleware"
	"github.com/cecm11deoutubro/portal/models"
	"github.com/cecm11deoutubro/portal/polls"
)

type VotingHandler struct {
	polls *polls.Service
	now   func() time.Time
}

func NewVotingHandler(svc *polls.Service) *VotingHandler {
	return &VotingHandler{polls: svc, now: time.Now}
}

// CastVote handles POST /polls/{id}/votes
func (h *VotingHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	id, ok := callerIdentity(w, r)
	if !ok {
		return
	}

	pollID := r.PathValue("id")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll_id is required")
		return
	}

	var req models.CastVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	vote, err := h.polls.CastVote(r.Context(), id.UserID, pollID, req.Option, h.now())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.CastVoteResponse{
		VoteID:  vote.ID,
		Message: "Vote recorded",
	})
}

// GetMyVote handles GET /polls/{id}/vote
func (h *VotingHandler) GetMyVote(w http.ResponseWriter, r *http.Request) {
	id, ok := callerIdentity(w, r)
	if !ok {
		return
	}

	pollID := r.PathValue("id")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll_id is required")
		return
	}

	vote, err := h.polls.MyVote(r.Context(), id.UserID, pollID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, vote)
}

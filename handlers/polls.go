// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/cecm11deoutubro/portal/middleware"
	"github.com/cecm11deoutubro/portal/models"
	"github.com/cecm11deoutubro/portal/polls"
)

type PollHandler struct {
	polls *polls.Service
	now   func() time.Time
}

func NewPollHandler(svc *polls.Service) *PollHandler {
	return &PollHandler{polls: svc, now: time.Now}
}

// CreatePoll handles POST /polls
func (h *PollHandler) CreatePoll(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePollRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	poll, err := h.polls.Create(r.Context(), polls.CreateInput{
		Title:      req.Title,
		Question:   req.Question,
		Options:    req.Options,
		Expiration: req.Expiration,
	}, h.now())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, poll)
}

// ListPolls handles GET /polls, the dashboard of polls open for voting
func (h *PollHandler) ListPolls(w http.ResponseWriter, r *http.Request) {
	id, ok := callerIdentity(w, r)
	if !ok {
		return
	}

	now := h.now()
	open, err := h.polls.ListOpen(r.Context(), now)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	voted, err := h.polls.VotedPollIDs(r.Context(), id.UserID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	summaries := make([]models.PollSummary, 0, len(open))
	for _, p := range open {
		summaries = append(summaries, models.PollSummary{
			Poll:      p,
			ExpiresIn: expiresIn(p, now),
			HasVoted:  voted[p.ID],
		})
	}

	middleware.JSONResponse(w, http.StatusOK, summaries)
}

// ListAllPolls handles GET /admin/polls
func (h *PollHandler) ListAllPolls(w http.ResponseWriter, r *http.Request) {
	all, err := h.polls.ListAll(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	now := h.now()
	summaries := make([]models.AdminPollSummary, 0, len(all))
	for _, p := range all {
		summaries = append(summaries, models.AdminPollSummary{
			Poll:      p,
			IsExpired: polls.IsExpired(p, now),
			IsOpen:    polls.IsOpenForVoting(p, now),
			ExpiresIn: expiresIn(p, now),
		})
	}

	middleware.JSONResponse(w, http.StatusOK, summaries)
}

// ClosePoll handles POST /polls/{id}/close
func (h *PollHandler) ClosePoll(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll_id is required")
		return
	}

	if err := h.polls.Close(r.Context(), pollID); err != nil {
		writeDomainError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ClosePollResponse{
		PollID: pollID,
		Active: false,
	})
}

// DeletePoll handles DELETE /polls/{id}
func (h *PollHandler) DeletePoll(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll_id is required")
		return
	}

	if err := h.polls.Delete(r.Context(), pollID); err != nil {
		writeDomainError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// expiresIn renders the expiration relative to now, e.g. "3 hours from now"
func expiresIn(p models.Poll, now time.Time) string {
	if p.Expiration == nil {
		return ""
	}
	return humanize.RelTime(*p.Expiration, now, "ago", "from now")
}

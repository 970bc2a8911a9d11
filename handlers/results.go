// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/cecm11deoutubro/portal/middleware"
	"github.com/cecm11deoutubro/portal/models"
	"github.com/cecm11deoutubro/portal/polls"
)

type ResultsHandler struct {
	polls *polls.Service
}

func NewResultsHandler(svc *polls.Service) *ResultsHandler {
	return &ResultsHandler{polls: svc}
}

// GetResults handles GET /polls/{id}/results
func (h *ResultsHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll_id is required")
		return
	}

	tally, err := h.polls.Tally(r.Context(), pollID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ResultsResponse{
		Poll:       tally.Poll,
		Counts:     tally.Counts,
		TotalVotes: tally.Total,
	})
}

// Reconcile handles POST /polls/{id}/reconcile
func (h *ResultsHandler) Reconcile(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll_id is required")
		return
	}

	rec, err := h.polls.Reconcile(r.Context(), pollID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, rec)
}

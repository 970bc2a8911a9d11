// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package polls

import (
	"context"
	"log/slog"
	"time"

	"github.com/cecm11deoutubro/portal/models"
)

// Store is the persistence the poll services need. *store.Store implements it.
type Store interface {
	InsertPoll(ctx context.Context, p models.Poll) error
	GetPoll(ctx context.Context, id string) (models.Poll, error)
	ListPolls(ctx context.Context) ([]models.Poll, error)
	ListActivePolls(ctx context.Context) ([]models.Poll, error)
	SetPollActive(ctx context.Context, id string, active bool) error
	DeletePoll(ctx context.Context, id string) (int64, error)

	InsertVote(ctx context.Context, v models.Vote) error
	GetVote(ctx context.Context, userID, pollID string) (models.Vote, error)
	VotedPollIDs(ctx context.Context, userID string) (map[string]bool, error)
	TallyPoll(ctx context.Context, pollID string) (models.Poll, map[string]int, error)
	ReconcileTotal(ctx context.Context, pollID string) (previous, current int, err error)
}

// Service implements the poll lifecycle, voting and aggregation.
// Callers pass the current time to every time-dependent operation.
type Service struct {
	store    Store
	location *time.Location
	logger   *slog.Logger
}

// NewService creates a Service. Expirations are parsed in loc (time.Local
// when nil); logs go to logger (slog.Default() when nil).
func NewService(store Store, loc *time.Location, logger *slog.Logger) *Service {
	if loc == nil {
		loc = time.Local
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:    store,
		location: loc,
		logger:   logger.With("module", "polls"),
	}
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package polls

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cecm11deoutubro/portal/auth"
	"github.com/cecm11deoutubro/portal/models"
)

// CastVote records the user's vote for rawOption in the poll.
//
// Checks run in order and the first failure wins: the poll must exist
// (models.ErrNotFound), be open at now (models.ErrPollClosed), and list the
// trimmed option (models.ErrInvalidOption). A second vote by the same user
// fails with models.ErrDuplicateVote. The vote and the poll's total are
// written together or not at all.
func (s *Service) CastVote(ctx context.Context, userID, pollID, rawOption string, now time.Time) (models.Vote, error) {
	poll, err := s.store.GetPoll(ctx, pollID)
	if err != nil {
		return models.Vote{}, err
	}

	if !IsOpenForVoting(poll, now) {
		return models.Vote{}, fmt.Errorf("poll %s: %w", pollID, models.ErrPollClosed)
	}

	option := strings.TrimSpace(rawOption)
	if !poll.HasOption(option) {
		return models.Vote{}, fmt.Errorf("%w: %q is not an option of poll %s", models.ErrInvalidOption, option, pollID)
	}

	vote := models.Vote{
		ID:        auth.NewID(),
		UserID:    userID,
		PollID:    pollID,
		Option:    option,
		CreatedAt: now,
	}
	if err := s.store.InsertVote(ctx, vote); err != nil {
		if errors.Is(err, models.ErrDuplicateVote) {
			s.logger.Info("duplicate vote rejected", "poll_id", pollID, "user_id", userID)
		}
		return models.Vote{}, err
	}

	s.logger.Info("vote recorded", "poll_id", pollID, "user_id", userID, "vote_id", vote.ID)
	return vote, nil
}

// MyVote returns the vote the user cast in the poll. Both a missing poll and
// a poll the user has not voted in yield models.ErrNotFound.
func (s *Service) MyVote(ctx context.Context, userID, pollID string) (models.Vote, error) {
	if _, err := s.store.GetPoll(ctx, pollID); err != nil {
		return models.Vote{}, err
	}
	return s.store.GetVote(ctx, userID, pollID)
}

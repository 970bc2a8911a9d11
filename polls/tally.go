// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package polls

import (
	"context"
	"math"

	"github.com/cecm11deoutubro/portal/models"
)

// Tally counts the poll's votes per option, in option order, with zero for
// options nobody picked. Total is the poll's cached counter, read from the
// same snapshot as the counts.
func (s *Service) Tally(ctx context.Context, pollID string) (models.Tally, error) {
	poll, byOption, err := s.store.TallyPoll(ctx, pollID)
	if err != nil {
		return models.Tally{}, err
	}

	return buildTally(poll, byOption), nil
}

func buildTally(poll models.Poll, byOption map[string]int) models.Tally {
	counts := make([]models.OptionCount, 0, len(poll.Options))
	for _, option := range poll.Options {
		count := byOption[option]
		counts = append(counts, models.OptionCount{
			Option:  option,
			Count:   count,
			Percent: percent(count, poll.TotalVotes),
		})
	}

	return models.Tally{
		Poll:   poll,
		PollID: poll.ID,
		Counts: counts,
		Total:  poll.TotalVotes,
	}
}

// percent rounds to one decimal place.
func percent(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(count)*1000/float64(total)) / 10
}

// Reconcile recomputes the poll's cached total from its votes.
func (s *Service) Reconcile(ctx context.Context, pollID string) (models.Reconciliation, error) {
	previous, current, err := s.store.ReconcileTotal(ctx, pollID)
	if err != nil {
		return models.Reconciliation{}, err
	}

	rec := models.Reconciliation{
		PollID:   pollID,
		Previous: previous,
		Current:  current,
		Changed:  previous != current,
	}
	if rec.Changed {
		s.logger.Warn("vote total corrected", "poll_id", pollID, "previous", previous, "current", current)
	}
	return rec, nil
}

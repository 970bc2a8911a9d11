// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package polls implements the poll lifecycle, voting and result aggregation.

	svc := polls.NewService(store.New(conn), time.Local, slog.Default())

# Lifecycle

A poll is created active with a trimmed, de-duplicated option list and an
optional expiration in the "YYYY-MM-DD HH:MM" format:

	poll, err := svc.Create(ctx, polls.CreateInput{
		Title:      "Lunch",
		Question:   "What should we eat?",
		Options:    "Pizza, Sushi, Tacos",
		Expiration: "2025-12-01 18:00",
	}, time.Now())

Close deactivates a poll and can be repeated. Delete removes a poll with its
votes.

IsOpenForVoting is the one definition of an open poll (active, and no
expiration or an expiration after now). ListOpen and CastVote both use it.

# Voting

	vote, err := svc.CastVote(ctx, userID, pollID, "Sushi", time.Now())

Errors, in the order they are checked: models.ErrNotFound,
models.ErrPollClosed, models.ErrInvalidOption, models.ErrDuplicateVote.

# Results

Tally returns per-option counts with percentages and the poll's cached
total. Reconcile recomputes that total from the stored votes.
*/
package polls

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/cecm11deoutubro/portal/db"
	"github.com/cecm11deoutubro/portal/models"
)

// InsertVote records the vote and increments the poll's cached total in a
// single transaction. If the user already voted in the poll, nothing is
// written and models.ErrDuplicateVote is returned; the UNIQUE (user_id,
// poll_id) constraint catches submissions racing past the existence check.
func (s *Store) InsertVote(ctx context.Context, v models.Vote) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var exists bool
	err = tx.QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM vote
			WHERE user_id = $1 AND poll_id = $2
		)
	`, v.UserID, v.PollID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check existing vote: %w", err)
	}
	if exists {
		return fmt.Errorf("poll %s: %w", v.PollID, models.ErrDuplicateVote)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO vote (id, user_id, poll_id, option, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, v.ID, v.UserID, v.PollID, v.Option, v.CreatedAt.UTC())
	if db.IsUniqueViolation(err) {
		return fmt.Errorf("poll %s: %w", v.PollID, models.ErrDuplicateVote)
	}
	if err != nil {
		return fmt.Errorf("failed to insert vote: %w", err)
	}

	res, err := tx.ExecContext(ctx, `UPDATE poll SET total_votes = total_votes + 1 WHERE id = $1`, v.PollID)
	if err != nil {
		return fmt.Errorf("failed to increment vote total: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return fmt.Errorf("failed to increment vote total: %w", err)
	} else if n == 0 {
		return fmt.Errorf("poll %s: %w", v.PollID, models.ErrNotFound)
	}

	if err := tx.Commit(); err != nil {
		if db.IsUniqueViolation(err) {
			return fmt.Errorf("poll %s: %w", v.PollID, models.ErrDuplicateVote)
		}
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetVote returns the user's vote in the poll, or models.ErrNotFound.
func (s *Store) GetVote(ctx context.Context, userID, pollID string) (models.Vote, error) {
	var v models.Vote
	err := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, poll_id, option, created_at
		FROM vote WHERE user_id = $1 AND poll_id = $2
	`, userID, pollID).Scan(&v.ID, &v.UserID, &v.PollID, &v.Option, &v.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Vote{}, fmt.Errorf("vote for poll %s: %w", pollID, models.ErrNotFound)
	}
	if err != nil {
		return models.Vote{}, fmt.Errorf("failed to query vote: %w", err)
	}
	return v, nil
}

// VotedPollIDs returns the set of polls the user has voted in.
func (s *Store) VotedPollIDs(ctx context.Context, userID string) (map[string]bool, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT poll_id FROM vote WHERE user_id = $1`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query votes: %w", err)
	}
	defer rows.Close()

	voted := make(map[string]bool)
	for rows.Next() {
		var pollID string
		if err := rows.Scan(&pollID); err != nil {
			return nil, fmt.Errorf("failed to scan vote: %w", err)
		}
		voted[pollID] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate votes: %w", err)
	}
	return voted, nil
}

// TallyPoll reads the poll and its votes grouped by option label from one
// read-only snapshot, so the poll's total_votes and the counts agree with
// each other. Options without votes are absent from the map.
func (s *Store) TallyPoll(ctx context.Context, pollID string) (models.Poll, map[string]int, error) {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	if err != nil {
		return models.Poll{}, nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx, `SELECT `+pollColumns+` FROM poll WHERE id = $1`, pollID)
	poll, err := scanPoll(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Poll{}, nil, fmt.Errorf("poll %s: %w", pollID, models.ErrNotFound)
	}
	if err != nil {
		return models.Poll{}, nil, fmt.Errorf("failed to query poll: %w", err)
	}

	rows, err := tx.QueryContext(ctx, `
		SELECT option, COUNT(*)
		FROM vote
		WHERE poll_id = $1
		GROUP BY option
	`, pollID)
	if err != nil {
		return models.Poll{}, nil, fmt.Errorf("failed to count votes: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var option string
		var count int
		if err := rows.Scan(&option, &count); err != nil {
			return models.Poll{}, nil, fmt.Errorf("failed to scan vote count: %w", err)
		}
		counts[option] = count
	}
	if err := rows.Err(); err != nil {
		return models.Poll{}, nil, fmt.Errorf("failed to iterate vote counts: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return models.Poll{}, nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return poll, counts, nil
}

// ReconcileTotal recomputes the poll's cached total from the vote ledger and
// returns the value before and after.
func (s *Store) ReconcileTotal(ctx context.Context, pollID string) (previous, current int, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx, `SELECT total_votes FROM poll WHERE id = $1`, pollID).Scan(&previous)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, 0, fmt.Errorf("poll %s: %w", pollID, models.ErrNotFound)
	}
	if err != nil {
		return 0, 0, fmt.Errorf("failed to query poll: %w", err)
	}

	err = tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM vote WHERE poll_id = $1`, pollID).Scan(&current)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to count votes: %w", err)
	}

	if current != previous {
		_, err = tx.ExecContext(ctx, `UPDATE poll SET total_votes = $1 WHERE id = $2`, current, pollID)
		if err != nil {
			return 0, 0, fmt.Errorf("failed to update vote total: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return previous, current, nil
}

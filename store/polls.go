// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/cecm11deoutubro/portal/models"
)

const pollColumns = `id, title, question, options, expiration, active, total_votes, created_at`

// InsertPoll stores a new poll with its options, active flag and counter as given.
func (s *Store) InsertPoll(ctx context.Context, p models.Poll) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO poll (id, title, question, options, expiration, active, total_votes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, p.ID, p.Title, p.Question, joinOptions(p.Options), nullTime(p.Expiration),
		p.Active, p.TotalVotes, p.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to insert poll: %w", err)
	}
	return nil
}

// GetPoll returns models.ErrNotFound when the poll does not exist.
func (s *Store) GetPoll(ctx context.Context, id string) (models.Poll, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+pollColumns+` FROM poll WHERE id = $1`, id)
	p, err := scanPoll(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Poll{}, fmt.Errorf("poll %s: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return models.Poll{}, fmt.Errorf("failed to query poll: %w", err)
	}
	return p, nil
}

// ListPolls returns all polls, newest first.
func (s *Store) ListPolls(ctx context.Context) ([]models.Poll, error) {
	return s.queryPolls(ctx, `SELECT `+pollColumns+` FROM poll ORDER BY created_at DESC`)
}

// ListActivePolls returns polls whose active flag is set, newest first.
// Expiration is not considered here.
func (s *Store) ListActivePolls(ctx context.Context) ([]models.Poll, error) {
	return s.queryPolls(ctx, `SELECT `+pollColumns+` FROM poll WHERE active = $1 ORDER BY created_at DESC`, true)
}

// SetPollActive updates the active flag. Setting the current value again is not an error.
func (s *Store) SetPollActive(ctx context.Context, id string, active bool) error {
	res, err := s.db.ExecContext(ctx, `UPDATE poll SET active = $1 WHERE id = $2`, active, id)
	if err != nil {
		return fmt.Errorf("failed to update poll: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update poll: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("poll %s: %w", id, models.ErrNotFound)
	}
	return nil
}

// DeletePoll removes the poll and all of its votes in one transaction and
// returns the number of votes removed.
func (s *Store) DeletePoll(ctx context.Context, id string) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `DELETE FROM vote WHERE poll_id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete votes: %w", err)
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to delete votes: %w", err)
	}

	res, err = tx.ExecContext(ctx, `DELETE FROM poll WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete poll: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to delete poll: %w", err)
	}
	if n == 0 {
		return 0, fmt.Errorf("poll %s: %w", id, models.ErrNotFound)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return removed, nil
}

func (s *Store) queryPolls(ctx context.Context, query string, args ...any) ([]models.Poll, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query polls: %w", err)
	}
	defer rows.Close()

	polls := []models.Poll{}
	for rows.Next() {
		p, err := scanPoll(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan poll: %w", err)
		}
		polls = append(polls, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate polls: %w", err)
	}
	return polls, nil
}

func scanPoll(row rowScanner) (models.Poll, error) {
	var p models.Poll
	var options string
	var expiration sql.NullTime
	err := row.Scan(&p.ID, &p.Title, &p.Question, &options, &expiration,
		&p.Active, &p.TotalVotes, &p.CreatedAt)
	if err != nil {
		return models.Poll{}, err
	}
	p.Options = splitOptions(options)
	p.Expiration = timePtr(expiration)
	return p, nil
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package polls

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cecm11deoutubro/portal/auth"
	"github.com/cecm11deoutubro/portal/models"
)

// ExpirationLayout is the accepted expiration format, "YYYY-MM-DD HH:MM".
const ExpirationLayout = "2006-01-02 15:04"

// CreateInput is the raw input of a new poll.
type CreateInput struct {
	Title      string
	Question   string
	Options    string // comma-delimited
	Expiration string // optional, ExpirationLayout
}

// ParseOptions splits a comma-delimited option list. Labels are trimmed,
// empty labels dropped and repeated labels kept only at their first position.
func ParseOptions(raw string) []string {
	options := []string{}
	seen := make(map[string]bool)
	for _, part := range strings.Split(raw, ",") {
		label := strings.TrimSpace(part)
		if label == "" || seen[label] {
			continue
		}
		seen[label] = true
		options = append(options, label)
	}
	return options
}

// ParseExpiration parses an optional expiration in the service's location.
// An empty string means the poll never expires.
func (s *Service) ParseExpiration(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(ExpirationLayout, raw, s.location)
	if err != nil {
		return nil, models.Invalid("expiration %q must use the format YYYY-MM-DD HH:MM", raw)
	}
	return &t, nil
}

// IsOpenForVoting reports whether a poll accepts votes at now: it must be
// active and either have no expiration or expire strictly after now.
// Both the dashboard listing and the vote check use this predicate.
func IsOpenForVoting(p models.Poll, now time.Time) bool {
	return p.Active && !IsExpired(p, now)
}

// IsExpired reports whether the poll's expiration is at or before now.
func IsExpired(p models.Poll, now time.Time) bool {
	return p.Expiration != nil && !p.Expiration.After(now)
}

// Create validates the input and stores a new active poll with no votes.
// The expiration may lie in the past; such a poll is simply never open.
func (s *Service) Create(ctx context.Context, in CreateInput, now time.Time) (models.Poll, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return models.Poll{}, models.Invalid("title is required")
	}
	question := strings.TrimSpace(in.Question)
	if question == "" {
		return models.Poll{}, models.Invalid("question is required")
	}
	options := ParseOptions(in.Options)
	if len(options) == 0 {
		return models.Poll{}, models.Invalid("at least one option is required")
	}
	expiration, err := s.ParseExpiration(in.Expiration)
	if err != nil {
		return models.Poll{}, err
	}

	poll := models.Poll{
		ID:         auth.NewID(),
		Title:      title,
		Question:   question,
		Options:    options,
		Expiration: expiration,
		Active:     true,
		TotalVotes: 0,
		CreatedAt:  now,
	}
	if err := s.store.InsertPoll(ctx, poll); err != nil {
		return models.Poll{}, err
	}

	s.logger.Info("poll created", "poll_id", poll.ID, "options", len(options), "expires", expiration != nil)
	return poll, nil
}

func (s *Service) Get(ctx context.Context, id string) (models.Poll, error) {
	return s.store.GetPoll(ctx, id)
}

// Close marks the poll inactive. Closing a closed poll succeeds.
func (s *Service) Close(ctx context.Context, id string) error {
	if err := s.store.SetPollActive(ctx, id, false); err != nil {
		return err
	}
	s.logger.Info("poll closed", "poll_id", id)
	return nil
}

// Delete removes the poll and every vote cast in it.
func (s *Service) Delete(ctx context.Context, id string) error {
	removed, err := s.store.DeletePoll(ctx, id)
	if err != nil {
		return err
	}
	s.logger.Info("poll deleted", "poll_id", id, "votes_removed", removed)
	return nil
}

// ListOpen returns the polls open for voting at now, newest first.
func (s *Service) ListOpen(ctx context.Context, now time.Time) ([]models.Poll, error) {
	active, err := s.store.ListActivePolls(ctx)
	if err != nil {
		return nil, err
	}

	open := make([]models.Poll, 0, len(active))
	for _, p := range active {
		if IsOpenForVoting(p, now) {
			open = append(open, p)
		}
	}
	return open, nil
}

// ListAll returns every poll, including closed and expired ones.
func (s *Service) ListAll(ctx context.Context) ([]models.Poll, error) {
	return s.store.ListPolls(ctx)
}

// VotedPollIDs returns the polls the user has already voted in.
func (s *Service) VotedPollIDs(ctx context.Context, userID string) (map[string]bool, error) {
	voted, err := s.store.VotedPollIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("user %s: %w", userID, err)
	}
	return voted, nil
}

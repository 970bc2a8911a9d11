// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cecm11deoutubro/portal/auth"
	"github.com/cecm11deoutubro/portal/models"
	"github.com/cecm11deoutubro/portal/testutil"
)

func TestInsertUser_DuplicateUsername(t *testing.T) {
	db := testutil.SetupTestDB(t)

	st := New(db)
	ctx := context.Background()

	user := models.User{ID: auth.NewID(), Username: "ana", PasswordHash: "h", Role: models.RoleStudent, CreatedAt: time.Now()}
	if err := st.InsertUser(ctx, user); err != nil {
		t.Fatalf("InsertUser() error = %v", err)
	}

	dup := user
	dup.ID = auth.NewID()
	err := st.InsertUser(ctx, dup)
	if !errors.Is(err, models.ErrDuplicateUsername) {
		t.Errorf("Expected ErrDuplicateUsername, got %v", err)
	}

	got, err := st.GetUserByUsername(ctx, "ana")
	if err != nil {
		t.Fatalf("GetUserByUsername() error = %v", err)
	}
	if got.ID != user.ID || got.Role != models.RoleStudent {
		t.Errorf("Unexpected user: %+v", got)
	}

	if _, err := st.GetUserByUsername(ctx, "nobody"); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestPollRoundTrip(t *testing.T) {
	db := testutil.SetupTestDB(t)

	st := New(db)
	ctx := context.Background()

	exp := time.Date(2030, 5, 1, 18, 30, 0, 0, time.UTC)
	poll := models.Poll{
		ID:         auth.NewID(),
		Title:      "Lunch",
		Question:   "What should we eat?",
		Options:    []string{"Pizza", "Sushi"},
		Expiration: &exp,
		Active:     true,
		CreatedAt:  time.Now(),
	}
	if err := st.InsertPoll(ctx, poll); err != nil {
		t.Fatalf("InsertPoll() error = %v", err)
	}

	got, err := st.GetPoll(ctx, poll.ID)
	if err != nil {
		t.Fatalf("GetPoll() error = %v", err)
	}
	if len(got.Options) != 2 || got.Options[0] != "Pizza" || got.Options[1] != "Sushi" {
		t.Errorf("Options = %v", got.Options)
	}
	if got.Expiration == nil || !got.Expiration.Equal(exp) {
		t.Errorf("Expiration = %v, want %v", got.Expiration, exp)
	}
	if !got.Active || got.TotalVotes != 0 {
		t.Errorf("Expected active poll with no votes, got %+v", got)
	}

	noExp := poll
	noExp.ID = auth.NewID()
	noExp.Expiration = nil
	if err := st.InsertPoll(ctx, noExp); err != nil {
		t.Fatalf("InsertPoll() error = %v", err)
	}
	got, err = st.GetPoll(ctx, noExp.ID)
	if err != nil {
		t.Fatalf("GetPoll() error = %v", err)
	}
	if got.Expiration != nil {
		t.Errorf("Expected nil expiration, got %v", got.Expiration)
	}
}

func TestSetPollActive(t *testing.T) {
	db := testutil.SetupTestDB(t)

	st := New(db)
	ctx := context.Background()
	poll := testutil.CreateTestPoll(t, db, "open")

	// Repeating the update is not an error
	for i := 0; i < 2; i++ {
		if err := st.SetPollActive(ctx, poll.ID, false); err != nil {
			t.Fatalf("SetPollActive() attempt %d error = %v", i+1, err)
		}
	}

	active, err := st.ListActivePolls(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(active) != 0 {
		t.Errorf("Expected no active polls, got %d", len(active))
	}

	if err := st.SetPollActive(ctx, "missing", false); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestInsertVote(t *testing.T) {
	db := testutil.SetupTestDB(t)

	st := New(db)
	ctx := context.Background()
	user := testutil.CreateTestUser(t, db, "ana", models.RoleStudent)
	poll := testutil.CreateTestPoll(t, db, "open")

	vote := models.Vote{ID: auth.NewID(), UserID: user.ID, PollID: poll.ID, Option: "Red", CreatedAt: time.Now()}
	if err := st.InsertVote(ctx, vote); err != nil {
		t.Fatalf("InsertVote() error = %v", err)
	}

	second := vote
	second.ID = auth.NewID()
	second.Option = "Blue"
	if err := st.InsertVote(ctx, second); !errors.Is(err, models.ErrDuplicateVote) {
		t.Errorf("Expected ErrDuplicateVote, got %v", err)
	}

	got, err := st.GetPoll(ctx, poll.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.TotalVotes != 1 {
		t.Errorf("Expected total 1, got %d", got.TotalVotes)
	}

	stored, err := st.GetVote(ctx, user.ID, poll.ID)
	if err != nil {
		t.Fatalf("GetVote() error = %v", err)
	}
	if stored.Option != "Red" {
		t.Errorf("Expected the first vote to be kept, got %q", stored.Option)
	}
}

func TestInsertVote_UniqueConstraintBackstop(t *testing.T) {
	db := testutil.SetupTestDB(t)

	user := testutil.CreateTestUser(t, db, "ana", models.RoleStudent)
	poll := testutil.CreateTestPoll(t, db, "open")
	testutil.CastTestVote(t, db, user.ID, poll.ID, "Red")

	// Bypass the existence check to hit the constraint directly
	_, err := db.Exec(`
		INSERT INTO vote (id, user_id, poll_id, option, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, auth.NewID(), user.ID, poll.ID, "Blue", time.Now().UTC())
	if err == nil {
		t.Fatal("Expected unique violation")
	}
}

func TestDeletePoll_RemovesVotes(t *testing.T) {
	db := testutil.SetupTestDB(t)

	st := New(db)
	ctx := context.Background()
	poll := testutil.CreateTestPoll(t, db, "open")
	other := testutil.CreateTestPoll(t, db, "open")
	for _, name := range []string{"ana", "bia", "caio"} {
		u := testutil.CreateTestUser(t, db, name, models.RoleStudent)
		testutil.CastTestVote(t, db, u.ID, poll.ID, "Red")
		testutil.CastTestVote(t, db, u.ID, other.ID, "Blue")
	}

	removed, err := st.DeletePoll(ctx, poll.ID)
	if err != nil {
		t.Fatalf("DeletePoll() error = %v", err)
	}
	if removed != 3 {
		t.Errorf("Expected 3 votes removed, got %d", removed)
	}

	var remaining int
	if err := db.QueryRow(`SELECT COUNT(*) FROM vote WHERE poll_id = $1`, poll.ID).Scan(&remaining); err != nil {
		t.Fatal(err)
	}
	if remaining != 0 {
		t.Errorf("Expected no votes left, got %d", remaining)
	}

	_, counts, err := st.TallyPoll(ctx, other.ID)
	if err != nil {
		t.Fatal(err)
	}
	if counts["Blue"] != 3 {
		t.Errorf("Other poll's votes should be untouched, got %v", counts)
	}

	if _, err := st.DeletePoll(ctx, poll.ID); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Expected ErrNotFound on second delete, got %v", err)
	}
}

func TestReconcileTotal(t *testing.T) {
	db := testutil.SetupTestDB(t)

	st := New(db)
	ctx := context.Background()
	poll := testutil.CreateTestPoll(t, db, "open")
	for _, name := range []string{"ana", "bia"} {
		u := testutil.CreateTestUser(t, db, name, models.RoleStudent)
		testutil.CastTestVote(t, db, u.ID, poll.ID, "Green")
	}

	// Corrupt the cached counter
	if _, err := db.Exec(`UPDATE poll SET total_votes = 7 WHERE id = $1`, poll.ID); err != nil {
		t.Fatal(err)
	}

	previous, current, err := st.ReconcileTotal(ctx, poll.ID)
	if err != nil {
		t.Fatalf("ReconcileTotal() error = %v", err)
	}
	if previous != 7 || current != 2 {
		t.Errorf("ReconcileTotal() = (%d, %d), want (7, 2)", previous, current)
	}

	got, _ := st.GetPoll(ctx, poll.ID)
	if got.TotalVotes != 2 {
		t.Errorf("Expected corrected total 2, got %d", got.TotalVotes)
	}

	if _, _, err := st.ReconcileTotal(ctx, "missing"); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestVotedPollIDs(t *testing.T) {
	db := testutil.SetupTestDB(t)

	st := New(db)
	user := testutil.CreateTestUser(t, db, "ana", models.RoleStudent)
	voted := testutil.CreateTestPoll(t, db, "open")
	notVoted := testutil.CreateTestPoll(t, db, "open")
	testutil.CastTestVote(t, db, user.ID, voted.ID, "Red")

	ids, err := st.VotedPollIDs(context.Background(), user.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !ids[voted.ID] || ids[notVoted.ID] {
		t.Errorf("Unexpected voted set: %v", ids)
	}
}

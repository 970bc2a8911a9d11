// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/cecm11deoutubro/portal/auth"
	"github.com/cecm11deoutubro/portal/cliparse"
	"github.com/cecm11deoutubro/portal/db"
	"github.com/cecm11deoutubro/portal/models"
)

// TestPassword is the password of every user made by CreateTestUser
const TestPassword = "test-password"

// SetupTestDB creates a fresh in-memory SQLite database with the full schema.
// Each call gets its own database, closed when the test ends.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(db.TypeSQLite, "file:"+auth.NewID()+"?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:               3318,
		DatabaseType:       db.TypeSQLite,
		DatabaseURL:        ":memory:",
		TokenSecret:        "test-token-secret",
		TokenTTL:           time.Hour,
		StudentEmailSuffix: cliparse.DefaultStudentEmailSuffix,
		AdminUsername:      "admin",
		AdminPassword:      "admin123",
		Location:           time.UTC,
	}
}

// CreateTestUser inserts a user with TestPassword and the given role
func CreateTestUser(t *testing.T, conn *sql.DB, username string, role models.Role) models.User {
	t.Helper()

	hash, err := auth.HashPassword(TestPassword, bcrypt.MinCost)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}

	user := models.User{
		ID:           auth.NewID(),
		Username:     username,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}
	_, err = conn.Exec(`
		INSERT INTO app_user (id, username, password_hash, role, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, user.ID, user.Username, user.PasswordHash, string(user.Role), user.CreatedAt)
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return user
}

// CreateTestPoll creates a poll with the given options (Red, Green, Blue when
// none are given). status should be "open", "closed", or "expired".
func CreateTestPoll(t *testing.T, conn *sql.DB, status string, options ...string) models.Poll {
	t.Helper()

	if len(options) == 0 {
		options = []string{"Red", "Green", "Blue"}
	}

	now := time.Now().UTC()
	poll := models.Poll{
		ID:        auth.NewID(),
		Title:     "Test Poll",
		Question:  "Which color?",
		Options:   options,
		Active:    status != "closed",
		CreatedAt: now,
	}

	var expiration *time.Time
	switch status {
	case "open":
		exp := now.Add(24 * time.Hour)
		expiration = &exp
	case "expired":
		exp := now.Add(-time.Hour)
		expiration = &exp
	}
	poll.Expiration = expiration

	var exp sql.NullTime
	if expiration != nil {
		exp = sql.NullTime{Time: *expiration, Valid: true}
	}

	_, err := conn.Exec(`
		INSERT INTO poll (id, title, question, options, expiration, active, total_votes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, 0, $7)
	`, poll.ID, poll.Title, poll.Question, strings.Join(options, ","), exp, poll.Active, poll.CreatedAt)
	if err != nil {
		t.Fatalf("Failed to create test poll: %v", err)
	}

	return poll
}

// CastTestVote records a vote and bumps the poll's cached total
func CastTestVote(t *testing.T, conn *sql.DB, userID, pollID, option string) string {
	t.Helper()

	voteID := auth.NewID()
	_, err := conn.Exec(`
		INSERT INTO vote (id, user_id, poll_id, option, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, voteID, userID, pollID, option, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test vote: %v", err)
	}

	_, err = conn.Exec(`UPDATE poll SET total_votes = total_votes + 1 WHERE id = $1`, pollID)
	if err != nil {
		t.Fatalf("Failed to update vote total: %v", err)
	}

	return voteID
}

// AuthHeader returns an Authorization header carrying a token for the user
func AuthHeader(t *testing.T, cfg cliparse.Config, user models.User) map[string]string {
	t.Helper()

	token, _, err := auth.IssueToken(user, cfg.TokenSecret, cfg.TokenTTL, time.Now())
	if err != nil {
		t.Fatalf("Failed to issue token: %v", err)
	}

	return map[string]string{"Authorization": "Bearer " + token}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}

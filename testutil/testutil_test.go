// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"database/sql"
	"testing"
)

func TestSetupTestDB_ClosedAfterTest(t *testing.T) {
	var conn *sql.DB
	t.Run("open", func(t *testing.T) {
		conn = SetupTestDB(t)
		if err := conn.Ping(); err != nil {
			t.Fatalf("Expected an open database, got %v", err)
		}
	})

	if err := conn.Ping(); err == nil {
		t.Error("Expected the database to be closed once its test finished")
	}
}

func TestSetupTestDB_Isolated(t *testing.T) {
	first := SetupTestDB(t)
	second := SetupTestDB(t)

	CreateTestPoll(t, first, "open")

	var n int
	if err := second.QueryRow(`SELECT COUNT(*) FROM poll`).Scan(&n); err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Errorf("Expected an empty second database, got %d polls", n)
	}
}

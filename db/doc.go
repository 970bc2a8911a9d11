// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database connections and schema creation.

# Connections

Open accepts "sqlite" (modernc.org/sqlite, the default) or "postgres"
(github.com/lib/pq):

	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)

SQLite connections enable foreign keys and are limited to one open
connection.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.
Timestamps have no database defaults; callers always pass them.

# Tables

  - app_user: Accounts with a unique username and a role
  - poll: Question, comma-joined options, expiration, active flag, cached total
  - vote: One row per (user_id, poll_id)

# Relationships

	app_user 1──* vote
	poll     1──* vote (ON DELETE CASCADE)

# Constraint Errors

IsUniqueViolation recognizes unique constraint failures from both drivers
(PostgreSQL code 23505, SQLITE_CONSTRAINT_UNIQUE):

	if db.IsUniqueViolation(err) {
		return models.ErrDuplicateVote
	}
*/
package db

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store is the SQL persistence layer shared by the services.

A Store wraps one *sql.DB and is safe for concurrent use:

	st := store.New(conn)

Missing rows are reported as models.ErrNotFound, taken usernames as
models.ErrDuplicateUsername and repeated votes as models.ErrDuplicateVote.
Other failures are wrapped with the failing operation.

# Votes

InsertVote writes the vote and increments poll.total_votes in one
transaction, so the cached total always matches the number of vote rows.
ReconcileTotal recomputes the total from the vote rows.
*/
package store

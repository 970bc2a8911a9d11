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

// InsertUser stores a new user. A taken username yields models.ErrDuplicateUsername.
func (s *Store) InsertUser(ctx context.Context, u models.User) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO app_user (id, username, password_hash, role, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, u.ID, u.Username, u.PasswordHash, string(u.Role), u.CreatedAt.UTC())
	if db.IsUniqueViolation(err) {
		return fmt.Errorf("user %q: %w", u.Username, models.ErrDuplicateUsername)
	}
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

// GetUserByUsername returns models.ErrNotFound when no user has that username.
func (s *Store) GetUserByUsername(ctx context.Context, username string) (models.User, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, username, password_hash, role, created_at
		FROM app_user WHERE username = $1
	`, username)
	return scanUser(row, username)
}

func (s *Store) GetUserByID(ctx context.Context, id string) (models.User, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, username, password_hash, role, created_at
		FROM app_user WHERE id = $1
	`, id)
	return scanUser(row, id)
}

// ListUsers returns every user ordered by username.
func (s *Store) ListUsers(ctx context.Context) ([]models.User, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, username, password_hash, role, created_at
		FROM app_user ORDER BY username
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		var u models.User
		var role string
		if err := rows.Scan(&u.ID, &u.Username, &u.PasswordHash, &role, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		u.Role = models.Role(role)
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}
	return users, nil
}

func scanUser(row rowScanner, key string) (models.User, error) {
	var u models.User
	var role string
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &role, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, fmt.Errorf("user %q: %w", key, models.ErrNotFound)
	}
	if err != nil {
		return models.User{}, fmt.Errorf("failed to query user: %w", err)
	}
	u.Role = models.Role(role)
	return u, nil
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides identity tokens, password hashing and ID generation.

# Identity Tokens

Tokens are HS256 JWTs (github.com/golang-jwt/jwt/v5) carrying the user ID
as the subject plus the username and role:

	token, expiresAt, err := auth.IssueToken(user, cfg.TokenSecret, cfg.TokenTTL, time.Now())
	identity, err := auth.ParseToken(token, cfg.TokenSecret)

ParseToken rejects tokens with a bad signature, a different algorithm, a
missing or past expiry, or an unknown role. All failures wrap ErrInvalidToken.

# Role Checks

	if err := auth.Authorize(identity, models.RoleAdmin, models.RoleStaff); err != nil {
		// ErrForbidden
	}

# Passwords

Secrets are stored as bcrypt hashes (golang.org/x/crypto/bcrypt):

	hash, err := auth.HashPassword(secret, bcrypt.DefaultCost)
	ok := auth.CheckPassword(hash, secret)

# ID Generation

Random UUIDs for database records:

	id := auth.NewID()
*/
package auth

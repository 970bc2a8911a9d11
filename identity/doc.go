// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package identity registers and authenticates users.

	svc := identity.NewService(store.New(conn), "@escola.pr.gov.br", slog.Default())

Register validates the username, password and role, and stores a bcrypt
hash of the password. Authenticate returns models.ErrAuthFailure for both
unknown usernames and wrong passwords.

# Student Self-Registration

Login registers an unknown username as a student when the password ends
with the institutional e-mail suffix, then authenticates normally:

	user, registered, err := svc.Login(ctx, "ana", "ana@escola.pr.gov.br", time.Now())

Known users always go through the normal password check.

# Default Administrator

EnsureAdmin seeds an administrator at startup and does nothing when the
username is taken. UsesPassword lets startup warn while that account still
has the default password.
*/
package identity

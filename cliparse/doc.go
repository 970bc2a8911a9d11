// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

LoadDotEnv reads a .env file into the environment, then ParseFlags returns
a Config struct with all settings:

	if err := cliparse.LoadDotEnv(); err != nil {
		log.Fatal(err)
	}
	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseType: sqlite or postgres (default: sqlite)
  - DatabaseURL: Connection string or SQLite file (default for sqlite: enquete.db)
  - TokenSecret: Secret for signing identity tokens (required)
  - TokenTTL: Token lifetime (default: 12h)
  - StudentEmailSuffix: Password suffix allowing student self-registration (default: @escola.pr.gov.br)
  - AdminUsername, AdminPassword: Default administrator (default: admin / admin123)
  - Location: Time zone of poll expirations (default: Local)

# CLI Flags

	-p               Server port
	-d               Database URL
	-t               Database type
	-token-secret    Token signing secret
	-token-ttl       Token lifetime
	-student-suffix  Student e-mail suffix
	-admin-user      Default administrator username
	-admin-password  Default administrator password
	-tz              Expiration time zone

# Environment Variables

Flags fall back to environment variables:

	PORT                 → -p
	DATABASE_URL         → -d
	DATABASE_TYPE        → -t
	TOKEN_SECRET         → -token-secret
	TOKEN_TTL            → -token-ttl
	STUDENT_EMAIL_SUFFIX → -student-suffix
	ADMIN_USERNAME       → -admin-user
	ADMIN_PASSWORD       → -admin-password
	POLL_TIMEZONE        → -tz

CLI flags take precedence over environment variables, and variables already
in the environment take precedence over the .env file.
*/
package cliparse

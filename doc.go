// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the polling portal API server.

The portal lets a school's administrators and staff publish single-choice
polls, and lets authenticated users cast at most one vote per poll while the
poll is active and not expired. Students create their account on first login
with an institutional e-mail address.

# Starting the Server

The server reads a .env file when present, then environment variables, then
CLI flags (flags win):

	TOKEN_SECRET=... go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..." -token-secret ...

# Configuration

Required settings:

  - TOKEN_SECRET (-token-secret): HMAC secret for bearer tokens

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - DATABASE_URL (-d): Connection string or SQLite file (default: enquete.db)
  - TOKEN_TTL (-token-ttl): Token lifetime (default: 12h)
  - STUDENT_EMAIL_SUFFIX (-student-suffix): Institutional domain; "none" disables self-registration
  - ADMIN_USERNAME, ADMIN_PASSWORD: Administrator seeded on first start
  - POLL_TIMEZONE (-tz): Location for poll expirations (default: Local)

# Architecture

  - handlers: HTTP request handlers (auth, users, polls, voting, results)
  - router: Route definitions and role gates using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers, bearer authentication
  - polls: Poll lifecycle, vote casting and tallies
  - identity: Accounts, credentials and student self-registration
  - store: SQL persistence for users, polls and votes
  - auth: Identifiers, password hashing and tokens
  - models: Domain, request and response types and errors
  - db: Connection and schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main

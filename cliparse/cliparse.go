// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port               int
	DatabaseURL        string
	DatabaseType       string
	TokenSecret        string
	TokenTTL           time.Duration
	StudentEmailSuffix string
	AdminUsername      string
	AdminPassword      string
	Location           *time.Location
}

const (
	DefaultStudentEmailSuffix = "@escola.pr.gov.br"
	DefaultAdminUsername      = "admin"
	DefaultAdminPassword      = "admin123"
)

// LoadDotEnv loads variables from the given .env files (".env" when none are
// given). Variables already set in the environment win. A missing file is
// not an error.
func LoadDotEnv(filenames ...string) error {
	if len(filenames) == 0 {
		filenames = []string{".env"}
	}
	for _, name := range filenames {
		if _, err := os.Stat(name); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(name); err != nil {
			return fmt.Errorf("failed to load %s: %w", name, err)
		}
	}
	return nil
}

// ParseFlags validates flags and fills the rest from the environment
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var ttl, tz string

	fs := flag.NewFlagSet("enquete", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL or SQLite file")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.TokenSecret, "token-secret", "", "Token signing secret (prefer env)")
	fs.StringVar(&ttl, "token-ttl", "", "Token lifetime, e.g. 12h")

	// Accounts
	fs.StringVar(&cfg.StudentEmailSuffix, "student-suffix", "", "E-mail suffix allowing student self-registration (\"none\" disables)")
	fs.StringVar(&cfg.AdminUsername, "admin-user", "", "Default administrator username")
	fs.StringVar(&cfg.AdminPassword, "admin-password", "", "Default administrator password (prefer env)")

	fs.StringVar(&tz, "tz", "", "Time zone for poll expirations, e.g. America/Sao_Paulo")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3318 // default
		}
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, fmt.Errorf("unsupported database type %q (use sqlite or postgres)", cfg.DatabaseType)
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		if cfg.DatabaseType != "sqlite" {
			return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
		}
		cfg.DatabaseURL = "enquete.db"
	}

	// Secrets - MUST be provided
	if cfg.TokenSecret == "" {
		cfg.TokenSecret = os.Getenv("TOKEN_SECRET")
	}
	if cfg.TokenSecret == "" {
		return Config{}, errors.New("TOKEN_SECRET required")
	}

	if ttl == "" {
		ttl = os.Getenv("TOKEN_TTL")
	}
	cfg.TokenTTL = 12 * time.Hour
	if ttl != "" {
		d, err := time.ParseDuration(ttl)
		if err != nil || d <= 0 {
			return Config{}, fmt.Errorf("invalid token TTL %q", ttl)
		}
		cfg.TokenTTL = d
	}

	if cfg.StudentEmailSuffix == "" {
		cfg.StudentEmailSuffix = getEnv("STUDENT_EMAIL_SUFFIX", DefaultStudentEmailSuffix)
	}
	// "none" turns student self-registration off
	if strings.EqualFold(cfg.StudentEmailSuffix, "none") {
		cfg.StudentEmailSuffix = ""
	}
	if cfg.AdminUsername == "" {
		cfg.AdminUsername = getEnv("ADMIN_USERNAME", DefaultAdminUsername)
	}
	if cfg.AdminPassword == "" {
		cfg.AdminPassword = getEnv("ADMIN_PASSWORD", DefaultAdminPassword)
	}

	if tz == "" {
		tz = getEnv("POLL_TIMEZONE", "Local")
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return Config{}, fmt.Errorf("invalid time zone %q: %w", tz, err)
	}
	cfg.Location = loc

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

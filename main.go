package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/cecm11deoutubro/portal/cliparse"
	"github.com/cecm11deoutubro/portal/db"
	"github.com/cecm11deoutubro/portal/identity"
	"github.com/cecm11deoutubro/portal/middleware"
	"github.com/cecm11deoutubro/portal/router"
	"github.com/cecm11deoutubro/portal/store"
)

func main() {
	var err error

	// Text logs for humans, JSON when piped into a collector
	var handler slog.Handler = slog.NewJSONHandler(os.Stdout, nil)
	if isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		handler = slog.NewTextHandler(os.Stdout, nil)
	}
	slog.SetDefault(slog.New(handler))

	if err := cliparse.LoadDotEnv(); err != nil {
		slog.Error("Error loading .env", "error", err)
		os.Exit(1)
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Connect to the database
	dbConn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "type", cfg.DatabaseType, "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	// Create schema (tables)
	if err := db.CreateSchema(dbConn); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready", "type", cfg.DatabaseType)

	// Seed the first administrator
	accounts := identity.NewService(store.New(dbConn), cfg.StudentEmailSuffix, nil)
	created, err := accounts.EnsureAdmin(context.Background(), cfg.AdminUsername, cfg.AdminPassword, time.Now())
	if err != nil {
		slog.Error("admin seeding failed", "error", err)
		os.Exit(1)
	}
	if created {
		slog.Info("Default administrator created", "username", cfg.AdminUsername)
	}
	defaultPassword, err := accounts.UsesPassword(context.Background(), cfg.AdminUsername, cliparse.DefaultAdminPassword)
	if err != nil {
		slog.Error("admin password check failed", "error", err)
		os.Exit(1)
	}
	if defaultPassword {
		slog.Warn("Administrator uses the default password; change it", "username", cfg.AdminUsername)
	}

	// Create router
	mux := router.NewRouter(dbConn, cfg)

	// Create server
	server := http.Server{
		Handler: middleware.CORS(mux),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}

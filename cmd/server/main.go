/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the payroll engine server: configuration,
  dependency injection, admin bootstrap, and graceful shutdown.

STARTUP SEQUENCE:
  1. Install structured logging
  2. Load configuration (env / .env)
  3. Initialize SQLite store
  4. Ensure an admin account exists (bootstrap)
  5. Configure HTTP router and start server

COMMAND-LINE FLAGS:
  -port    HTTP server port (overrides HTTP_PORT)
  -db      SQLite database path (overrides DB_PATH)
           Use ":memory:" for an in-memory database

ADMIN BOOTSTRAP:
  If no admin-role employee exists on startup, one is seeded from
  ADMIN_CODE / ADMIN_PASSWORD / ADMIN_NAME so the system is never
  locked out.

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM: stop accepting connections, wait for active
  requests (SHUTDOWN_TIMEOUT), close the database, exit.

SEE ALSO:
  - api/server.go: Router configuration
  - config/config.go: Environment configuration
*/
package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/warp/payroll-engine/api"
	"github.com/warp/payroll-engine/auth"
	"github.com/warp/payroll-engine/config"
	"github.com/warp/payroll-engine/logging"
	"github.com/warp/payroll-engine/payroll"
	"github.com/warp/payroll-engine/store/sqlite"
)

func main() {
	logging.Setup()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Flags override the environment.
	port := flag.String("port", cfg.HTTPPort, "HTTP server port")
	dbPath := flag.String("db", cfg.DBPath, "SQLite database path")
	flag.Parse()

	store, err := sqlite.New(*dbPath)
	if err != nil {
		slog.Error("failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	if err := ensureAdmin(context.Background(), store, cfg); err != nil {
		slog.Error("failed to bootstrap admin account", "error", err)
		os.Exit(1)
	}

	tokens := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)
	handler := api.NewHandler(store, tokens)
	router := api.NewRouter(handler)

	server := &http.Server{
		Addr:         ":" + *port,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	go func() {
		slog.Info("server starting", "port", *port, "db", *dbPath)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}

// ensureAdmin seeds the bootstrap admin account when no admin exists.
func ensureAdmin(ctx context.Context, store payroll.Store, cfg config.Config) error {
	employees, err := store.ListEmployees(ctx)
	if err != nil {
		return err
	}
	for _, e := range employees {
		if e.IsAdmin() {
			return nil
		}
	}

	hash, err := auth.HashPassword(cfg.AdminPassword)
	if err != nil {
		return err
	}

	admin := payroll.Employee{
		ID:           uuid.NewString(),
		Code:         cfg.AdminCode,
		PasswordHash: hash,
		Name:         cfg.AdminName,
		StartDate:    payroll.Today(),
		Role:         payroll.RoleAdmin,
	}
	if err := store.CreateEmployee(ctx, admin); err != nil {
		return err
	}

	slog.Info("seeded bootstrap admin account", "code", admin.Code)
	return nil
}

package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/danielhkuo/live-poll/cliparse"
	"github.com/danielhkuo/live-poll/db"
	"github.com/danielhkuo/live-poll/logger"
	"github.com/danielhkuo/live-poll/middleware"
	"github.com/danielhkuo/live-poll/mirror"
	"github.com/danielhkuo/live-poll/realtime"
	"github.com/danielhkuo/live-poll/router"
)

func main() {
	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(logger.New(cfg.Env, os.Stdout))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to the ledger
	dbConn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "type", cfg.DatabaseType, "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	if err := db.CreateSchema(dbConn); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready", "type", cfg.DatabaseType)

	// Secondary mirror
	var sink mirror.Sink = mirror.Nop{}
	if cfg.Mirror.Enabled() {
		store, err := mirror.NewFirestore(ctx, mirror.FirestoreConfig{
			ProjectID:       cfg.Mirror.ProjectID,
			CredentialsFile: cfg.Mirror.CredentialsFile,
			CredentialsJSON: cfg.Mirror.CredentialsJSON,
		})
		if err != nil {
			// The ledger is authoritative; run without the mirror.
			slog.Warn("firestore mirror disabled", "error", err)
		} else {
			defer store.Close()
			sink = store
			slog.Info("firestore mirror enabled", "project", cfg.Mirror.ProjectID)
		}
	}
	replicator := mirror.NewAsync(sink, cfg.Mirror.Timeout, cfg.Mirror.MaxInFlight)

	hub := realtime.NewHub()
	mux := router.NewRouter(dbConn, cfg, hub, replicator)

	server := http.Server{
		Handler: middleware.CORS(cfg.AllowedOrigins)(mux),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	go func() {
		<-ctx.Done()
		slog.Info("Shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		// Hijacked sockets are not tracked by Shutdown.
		hub.Close()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("graceful shutdown failed", "error", err)
			server.Close()
		}
	}()

	slog.Info("Listening", "port", cfg.Port, "env", cfg.Env)
	err = server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed")
	}

	replicator.Close()
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Command migrator applies the embedded schema migrations to PostgreSQL.
//
//	DATABASE_TYPE=postgres DATABASE_URL=postgres://... migrator -action up
//	migrator -config config/prod.yaml -action version
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/danielhkuo/live-poll/cliparse"
	"github.com/danielhkuo/live-poll/db"
	"github.com/danielhkuo/live-poll/logger"
)

func main() {
	var (
		action     string
		steps      int
		configPath string
	)

	flag.StringVar(&action, "action", "up", "Migration action: up, down, force, version")
	flag.IntVar(&steps, "steps", 0, "Number of steps for up/down, target version for force")
	flag.StringVar(&configPath, "config", "", "Path to YAML config file")
	flag.Parse()

	var args []string
	if configPath != "" {
		args = []string{"-c", configPath}
	}
	cfg, err := cliparse.ParseFlags(args)
	if err != nil {
		slog.Error("Error parsing config", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(logger.New(cfg.Env, os.Stderr))

	if cfg.DatabaseType != db.TypePostgres {
		slog.Error("migrator only supports postgres; sqlite schemas are created at startup", "type", cfg.DatabaseType)
		os.Exit(1)
	}

	if err := run(cfg.DatabaseURL, action, steps); err != nil {
		slog.Error("migration failed", "action", action, "error", err)
		os.Exit(1)
	}
}

func run(databaseURL, action string, steps int) error {
	conn, err := db.Open(db.TypePostgres, databaseURL)
	if err != nil {
		return err
	}
	defer conn.Close()

	driver, err := postgres.WithInstance(conn, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("postgres driver: %w", err)
	}

	src, err := iofs.New(db.Migrations, db.MigrationsDir)
	if err != nil {
		return fmt.Errorf("migration source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "postgres", driver)
	if err != nil {
		return err
	}

	switch action {
	case "up":
		if steps > 0 {
			err = m.Steps(steps)
		} else {
			err = m.Up()
		}
	case "down":
		if steps > 0 {
			err = m.Steps(-steps)
		} else {
			err = m.Down()
		}
	case "force":
		err = m.Force(steps)
	case "version":
		version, dirty, err := m.Version()
		if err != nil {
			return err
		}
		slog.Info("migration version", "version", version, "dirty", dirty)
		return nil
	default:
		return fmt.Errorf("unknown action %q", action)
	}

	if errors.Is(err, migrate.ErrNoChange) {
		slog.Info("no migrations to apply")
		return nil
	}
	if err != nil {
		return err
	}

	slog.Info("migration complete", "action", action)
	return nil
}

//go:build migrate

package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/Vibhav-y/GitTool/internal/config"
)

func main() {
	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if len(os.Args) < 2 {
		fatal(log, "usage: migrate <up|down|version|force N>")
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		cfg, err := config.Load()
		if err != nil {
			fatal(log, "failed to load config", "err", err)
		}
		dsn = cfg.Database.DSN()
	}

	source := os.Getenv("MIGRATIONS_PATH")
	if source == "" {
		source = "file://migrations"
	}

	m, err := migrate.New(source, dsn)
	if err != nil {
		fatal(log, "failed to create migrate instance", "err", err)
	}
	defer m.Close()

	switch os.Args[1] {
	case "up":
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			fatal(log, "failed to run migrations", "err", err)
		}
		log.Info("migrations applied")

	case "down":
		if err := m.Steps(-1); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			fatal(log, "failed to roll back migration", "err", err)
		}
		log.Info("migration rolled back")

	case "version":
		version, dirty, err := m.Version()
		if err != nil {
			fatal(log, "failed to get version", "err", err)
		}
		log.Info("schema version", "version", version, "dirty", dirty)

	case "force":
		if len(os.Args) < 3 {
			fatal(log, "usage: migrate force <version>")
		}
		var version int
		if _, err := fmt.Sscanf(os.Args[2], "%d", &version); err != nil {
			fatal(log, "invalid version", "err", err)
		}
		if err := m.Force(version); err != nil {
			fatal(log, "failed to force version", "err", err)
		}
		log.Info("forced version", "version", version)

	default:
		fatal(log, "unknown command", "command", os.Args[1])
	}
}

func fatal(log *slog.Logger, msg string, args ...any) {
	log.Error(msg, args...)
	os.Exit(1)
}

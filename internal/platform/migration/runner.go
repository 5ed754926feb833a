// Copyright (c) 2026 Church Wallet. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package migration applies the Church Wallet schema with golang-migrate.
//
// The SQL files are embedded and served through the iofs source, so the API
// server and the cwctl CLI always apply the schema they were built with. The
// core, users and finance schemas are created in that order.
package migration

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	// Registers the "pgx5" database driver.
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed sql/*.sql
var migrationFiles embed.FS

const sqlDir = "sql"

// State is the schema version recorded in schema_migrations.
type State struct {
	Version uint
	Dirty   bool
	Pending int
}

// open builds a migrator over the embedded files. The caller must call the
// returned close function.
func open(dsn string, logger *slog.Logger) (*migrate.Migrate, func(), error) {
	source, err := iofs.New(migrationFiles, sqlDir)
	if err != nil {
		return nil, nil, fmt.Errorf("migration: failed to load embedded files: %w", err)
	}

	migrator, err := migrate.NewWithSourceInstance("iofs", source, pgx5DSN(dsn))
	if err != nil {
		return nil, nil, fmt.Errorf("migration: failed to initialize: %w", err)
	}
	migrator.Log = &slogBridge{
		logger:  logger,
		verbose: logger.Enabled(context.Background(), slog.LevelDebug),
	}

	closeFn := func() {
		sourceErr, dbErr := migrator.Close()
		if err := errors.Join(sourceErr, dbErr); err != nil {
			logger.Warn("migration_close_failed", slog.Any("error", err))
		}
	}
	return migrator, closeFn, nil
}

// RunUp applies every pending up migration. A dirty schema is refused.
func RunUp(dsn string, logger *slog.Logger) error {
	migrator, closeFn, err := open(dsn, logger)
	if err != nil {
		return err
	}
	defer closeFn()

	from, err := version(migrator)
	if err != nil {
		return err
	}
	if from.Dirty {
		return fmt.Errorf("migration: schema is dirty at version %d, fix it by hand and force the version", from.Version)
	}

	err = migrator.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("migration_up_to_date", slog.Uint64("version", uint64(from.Version)))
		return nil
	}
	if err != nil {
		return fmt.Errorf("migration: up failed: %w", err)
	}

	to, err := version(migrator)
	if err != nil {
		return err
	}
	logger.Info("migration_applied",
		slog.Uint64("from_version", uint64(from.Version)),
		slog.Uint64("to_version", uint64(to.Version)),
	)
	return nil
}

// Status reports the applied version and how many embedded migrations are
// still pending.
func Status(dsn string, logger *slog.Logger) (State, error) {
	migrator, closeFn, err := open(dsn, logger)
	if err != nil {
		return State{}, err
	}
	defer closeFn()

	state, err := version(migrator)
	if err != nil {
		return State{}, err
	}

	versions, err := upVersions()
	if err != nil {
		return State{}, err
	}
	for _, v := range versions {
		if v > state.Version {
			state.Pending++
		}
	}
	return state, nil
}

func version(migrator *migrate.Migrate) (State, error) {
	current, dirty, err := migrator.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return State{}, nil
	}
	if err != nil {
		return State{}, fmt.Errorf("migration: failed to read version: %w", err)
	}
	return State{Version: current, Dirty: dirty}, nil
}

// pgx5DSN rewrites postgres:// URLs to the pgx5:// scheme the driver registers.
func pgx5DSN(dsn string) string {
	for _, prefix := range []string{"postgres://", "postgresql://"} {
		if rest, ok := strings.CutPrefix(dsn, prefix); ok {
			return "pgx5://" + rest
		}
	}
	return dsn
}

// Files lists the embedded migration file names in apply order.
func Files() ([]string, error) {
	entries, err := migrationFiles.ReadDir(sqlDir)
	if err != nil {
		return nil, fmt.Errorf("migration: failed to list embedded files: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	return names, nil
}

// upVersions parses the numeric prefix of every up migration.
func upVersions() ([]uint, error) {
	names, err := Files()
	if err != nil {
		return nil, err
	}
	var versions []uint
	for _, name := range names {
		if !strings.HasSuffix(name, ".up.sql") {
			continue
		}
		var v uint
		if _, err := fmt.Sscanf(name, "%d_", &v); err != nil {
			return nil, fmt.Errorf("migration: bad file name %q: %w", name, err)
		}
		versions = append(versions, v)
	}
	return versions, nil
}

// slogBridge implements migrate.Logger on top of slog.
type slogBridge struct {
	logger  *slog.Logger
	verbose bool
}

func (bridge *slogBridge) Printf(format string, args ...any) {
	bridge.logger.Debug("migration_driver", slog.String("message", strings.TrimSpace(fmt.Sprintf(format, args...))))
}

func (bridge *slogBridge) Verbose() bool {
	return bridge.verbose
}

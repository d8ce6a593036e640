package db

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrate applies every embedded migration that has not been recorded in
// schema_migrations, in file name order. Each file runs in its own
// transaction. It is safe to call repeatedly.
func Migrate(ctx context.Context, pool *pgxpool.Pool, logger logrus.FieldLogger) error {
	_, err := pool.Exec(ctx, fmt.Sprintf(`
		CREATE SCHEMA IF NOT EXISTS %[1]s;
		CREATE TABLE IF NOT EXISTS %[1]s.schema_migrations (
			version TEXT PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`, Schema))
	if err != nil {
		return fmt.Errorf("create schema_migrations table: %w", err)
	}

	files, err := migrationFiles()
	if err != nil {
		return err
	}

	for _, file := range files {
		version := strings.TrimSuffix(file, ".sql")
		applied, err := applyMigration(ctx, pool, version, file)
		if err != nil {
			return err
		}
		if applied {
			logger.WithField("version", version).Info("applied migration")
		}
	}

	return nil
}

func migrationFiles() ([]string, error) {
	entries, err := fs.ReadDir(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("read migrations: %w", err)
	}

	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)

	return files, nil
}

func applyMigration(ctx context.Context, pool *pgxpool.Pool, version, file string) (bool, error) {
	body, err := migrationsFS.ReadFile("migrations/" + file)
	if err != nil {
		return false, fmt.Errorf("read migration %s: %w", file, err)
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to begin migration %s: %w", version, err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	var exists bool
	err = tx.QueryRow(ctx,
		fmt.Sprintf("SELECT EXISTS (SELECT 1 FROM %s.schema_migrations WHERE version = $1)", Schema),
		version,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check migration %s: %w", version, err)
	}
	if exists {
		return false, nil
	}

	if _, err := tx.Exec(ctx, string(body)); err != nil {
		return false, fmt.Errorf("apply migration %s: %w", version, err)
	}

	if err := recordMigration(ctx, tx, version); err != nil {
		return false, err
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("failed to commit migration %s: %w", version, err)
	}

	return true, nil
}

func recordMigration(ctx context.Context, tx pgx.Tx, version string) error {
	_, err := tx.Exec(ctx,
		fmt.Sprintf("INSERT INTO %s.schema_migrations (version) VALUES ($1)", Schema),
		version,
	)
	if err != nil {
		return fmt.Errorf("record migration %s: %w", version, err)
	}
	return nil
}

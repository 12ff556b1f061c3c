package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/Xunop/e-library/internal/log"
	"github.com/Xunop/e-library/internal/model"
	"github.com/Xunop/e-library/internal/store"
	"github.com/Xunop/e-library/internal/version"
)

const latestSchemaFileName = "LATEST_SCHEMA.sql"

//go:embed migration
var migrationFS embed.FS

type DB struct {
	*sql.DB
	path string
}

// NewDB opens the sqlite database at path, creating the file if needed.
func NewDB(path string) (*DB, error) {
	if path == "" {
		return nil, errors.New("Database path is required")
	}

	d, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, store.WrapError("open database", err)
	}
	// One writer at a time, sqlite serialises them anyway.
	d.SetMaxOpenConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL;",
		"PRAGMA busy_timeout = 5000;",
	} {
		if _, err := d.Exec(pragma); err != nil {
			d.Close()
			return nil, store.WrapError("open database", errors.Wrapf(err, "failed to apply %q", pragma))
		}
	}

	return &DB{d, path}, nil
}

func (d *DB) Close() error {
	return d.DB.Close()
}

// EnsureSchema creates the tables if they are missing and records the
// running version. It is safe to call on every start.
func (d *DB) EnsureSchema(ctx context.Context) error {
	if err := d.applyLatestSchema(ctx); err != nil {
		return store.WrapError("ensure schema", err)
	}

	currentVersion := version.GetCurrentVersion()
	list, err := d.FindMigrationHistoryList(ctx)
	if err != nil {
		return store.WrapError("ensure schema", errors.Wrap(err, "failed to find migration history list"))
	}
	for _, history := range list {
		if !version.IsValid(history.Version) {
			log.Warn("Skipping invalid version in migration history", zap.String("database_version", history.Version))
			continue
		}
		if version.IsVersionGreaterThan(history.Version, currentVersion) {
			log.Warn("Database was last opened by a newer version",
				zap.String("database_version", history.Version),
				zap.String("current_version", currentVersion),
				zap.String("path", d.path))
			break
		}
	}

	if _, err := d.UpsertMigrationHistory(ctx, &model.UpsertMigrationHistory{
		Version: currentVersion,
	}); err != nil {
		return store.WrapError("ensure schema", errors.Wrap(err, "failed to upsert migration history"))
	}
	return nil
}

func (d *DB) applyLatestSchema(ctx context.Context) error {
	latestSchemaPath := fmt.Sprintf("migration/%s", latestSchemaFileName)
	buf, err := migrationFS.ReadFile(latestSchemaPath)
	if err != nil {
		return errors.Wrapf(err, "failed to read latest schema file: %q", latestSchemaPath)
	}

	if err := d.execute(ctx, string(buf)); err != nil {
		return errors.Wrap(err, "failed to apply latest schema")
	}
	return nil
}

// execute runs a single SQL statement within a transaction.
func (d *DB) execute(ctx context.Context, stmt string) error {
	tx, err := d.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, stmt); err != nil {
		return errors.Wrap(err, "failed to execute statement")
	}

	return tx.Commit()
}

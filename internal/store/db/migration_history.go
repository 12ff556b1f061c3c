package db

import (
	"context"

	"github.com/Xunop/e-library/internal/model"
)

func (d *DB) UpsertMigrationHistory(ctx context.Context, upsert *model.UpsertMigrationHistory) (*model.MigrationHistory, error) {
	stmt := `
		INSERT INTO migration_history (
			version
		)
		VALUES (?)
		ON CONFLICT(version) DO UPDATE
		SET
			version=EXCLUDED.version
		RETURNING version, created_ts
	`
	var migrationHistory model.MigrationHistory
	if err := d.DB.QueryRowContext(ctx, stmt, upsert.Version).Scan(
		&migrationHistory.Version,
		&migrationHistory.CreatedTs,
	); err != nil {
		return nil, err
	}

	return &migrationHistory, nil
}

func (d *DB) FindMigrationHistoryList(ctx context.Context) ([]*model.MigrationHistory, error) {
	query := "SELECT `version`, `created_ts` FROM `migration_history` ORDER BY `created_ts` DESC"
	rows, err := d.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]*model.MigrationHistory, 0)
	for rows.Next() {
		var mia model.MigrationHistory
		if err := rows.Scan(
			&mia.Version,
			&mia.CreatedTs,
		); err != nil {
			return nil, err
		}

		list = append(list, &mia)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return list, nil
}

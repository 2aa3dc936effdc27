package database

import (
	"context"
	"database/sql"

	"github.com/method3fitness/pike13-ghl-sync/internal/entity"
)

// SyncRunRepository keeps the audit trail of reconciliation runs. The
// reconciled state itself lives in Pike13 and GoHighLevel; these rows only
// answer "what did the last run do".
type SyncRunRepository struct {
	DB *sql.DB
}

func NewSyncRunRepository(db *sql.DB) *SyncRunRepository {
	return &SyncRunRepository{DB: db}
}

func (r *SyncRunRepository) Create(ctx context.Context, run *entity.SyncRun) error {
	query := `
		INSERT INTO sync_runs (
			id, started_at, finished_at, dry_run,
			rows_fetched, pages_read, tagged, untagged,
			already_in_sync, ineligible, skipped, failed
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.DB.ExecContext(ctx, query,
		run.ID, run.StartedAt, run.FinishedAt, run.DryRun,
		run.RowsFetched, run.PagesRead, run.Tagged, run.Untagged,
		run.AlreadySync, run.Ineligible, run.Skipped, run.Failed,
	)
	return err
}

// FindLast returns the most recent run, or (nil, nil) when the table is
// still empty.
func (r *SyncRunRepository) FindLast(ctx context.Context) (*entity.SyncRun, error) {
	query := `
		SELECT id, started_at, finished_at, dry_run,
		       rows_fetched, pages_read, tagged, untagged,
		       already_in_sync, ineligible, skipped, failed
		FROM sync_runs
		ORDER BY started_at DESC
		LIMIT 1
	`

	var run entity.SyncRun
	err := r.DB.QueryRowContext(ctx, query).Scan(
		&run.ID, &run.StartedAt, &run.FinishedAt, &run.DryRun,
		&run.RowsFetched, &run.PagesRead, &run.Tagged, &run.Untagged,
		&run.AlreadySync, &run.Ineligible, &run.Skipped, &run.Failed,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &run, nil
}

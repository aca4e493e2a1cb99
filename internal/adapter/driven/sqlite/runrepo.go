package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sspanel-tools/checkin-bot/internal/domain/model"
	"github.com/sspanel-tools/checkin-bot/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.RunStore = (*RunRepo)(nil)

// RunRepo is the SQLite implementation of the RunStore port interface.
type RunRepo struct {
	db *DB
}

// NewRunRepo creates a new RunRepo backed by the given DB.
func NewRunRepo(db *DB) *RunRepo {
	return &RunRepo{db: db}
}

// SaveRun persists the run summary and its outcomes in a single transaction.
// Outcome rows store position, flag, message and error only; the account
// identifier never reaches the database.
func (r *RunRepo) SaveRun(ctx context.Context, run model.Run, outcomes []model.Outcome) error {
	tx, err := r.db.Conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // Rollback after commit is a no-op.

	const insertRun = `
		INSERT INTO runs (id, started_at, total, succeeded)
		VALUES (?, ?, ?, ?)
	`
	if _, err := tx.ExecContext(ctx, insertRun,
		run.ID, run.StartedAt.UTC(), run.Total, run.Succeeded,
	); err != nil {
		return fmt.Errorf("insert run %s: %w", run.ID, err)
	}

	const insertOutcome = `
		INSERT INTO run_outcomes (run_id, position, succeeded, message, error)
		VALUES (?, ?, ?, ?, ?)
	`
	for i, o := range outcomes {
		succeeded := 0
		if o.Succeeded {
			succeeded = 1
		}

		if _, err := tx.ExecContext(ctx, insertOutcome,
			run.ID, i+1, succeeded, o.Message, o.Error,
		); err != nil {
			return fmt.Errorf("insert outcome %d for run %s: %w", i+1, run.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit run %s: %w", run.ID, err)
	}

	return nil
}

// LastRun returns the most recently started run, or nil when no run has been
// recorded yet.
func (r *RunRepo) LastRun(ctx context.Context) (*model.Run, error) {
	const query = `
		SELECT id, started_at, total, succeeded
		FROM runs
		ORDER BY started_at DESC
		LIMIT 1
	`

	var run model.Run
	err := r.db.Conn.QueryRowContext(ctx, query).Scan(
		&run.ID, &run.StartedAt, &run.Total, &run.Succeeded,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan last run: %w", err)
	}

	return &run, nil
}

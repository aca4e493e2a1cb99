package driven

import (
	"context"

	"github.com/sspanel-tools/checkin-bot/internal/domain/model"
)

// RunStore defines the driven port for run-history persistence.
type RunStore interface {
	// SaveRun persists the run summary and its outcomes atomically.
	// Account identifiers are never stored; outcome rows are keyed by
	// position within the run.
	SaveRun(ctx context.Context, run model.Run, outcomes []model.Outcome) error
	// LastRun returns the most recently started run, or nil when no run has
	// been recorded yet.
	LastRun(ctx context.Context) (*model.Run, error)
}

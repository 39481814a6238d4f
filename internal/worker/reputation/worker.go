// Package reputation implements the catch-up worker that re-applies
// reputation adjustments whose apply step failed after the recompute
// committed. Applying an adjustment is idempotent, so the worker can safely
// overlap with the inline apply path.
package reputation

import (
	"context"

	"github.com/wildsight/wildsight/internal/database"
	"go.uber.org/zap"
)

// DefaultBatchSize bounds how many pending adjustments one run applies.
const DefaultBatchSize = 100

// Worker periodically applies pending reputation adjustments.
type Worker struct {
	db        database.Client
	batchSize int
	logger    *zap.Logger
}

// New creates a new reputation catch-up worker.
func New(db database.Client, batchSize int, logger *zap.Logger) *Worker {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	return &Worker{
		db:        db,
		batchSize: batchSize,
		logger:    logger.Named("reputation_worker"),
	}
}

// Run applies one batch of pending adjustments.
func (w *Worker) Run(ctx context.Context) {
	applied, err := w.db.Service().Reputation().ApplyPending(ctx, w.batchSize)
	if err != nil {
		w.logger.Error("Reputation catch-up run failed", zap.Error(err))
		return
	}

	if applied > 0 {
		w.logger.Info("Applied pending reputation adjustments", zap.Int("applied", applied))
	}
}

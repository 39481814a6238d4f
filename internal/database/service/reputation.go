package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/sourcegraph/conc/pool"
	"github.com/uptrace/bun"
	"github.com/wildsight/wildsight/internal/database/dbretry"
	"github.com/wildsight/wildsight/internal/database/models"
	"github.com/wildsight/wildsight/internal/database/types"
	"go.uber.org/zap"
)

// ErrAdjustmentNotFound is returned when an adjustment ID references no
// recorded adjustment.
var ErrAdjustmentNotFound = errors.New("reputation adjustment not found")

// applyConcurrency bounds how many adjustments the catch-up path applies at
// once.
const applyConcurrency = 4

// ReputationService applies recorded reputation adjustments to owner scores.
type ReputationService struct {
	db     *bun.DB
	model  *models.ReputationModel
	logger *zap.Logger
}

// NewReputation creates a new reputation service.
func NewReputation(db *bun.DB, model *models.ReputationModel, logger *zap.Logger) *ReputationService {
	return &ReputationService{
		db:     db,
		model:  model,
		logger: logger.Named("reputation_service"),
	}
}

// Apply adds a recorded adjustment's delta to its owner's score. The score
// increment and the applied flag flip in one transaction, so re-applying the
// same adjustment after a failure or crash is a no-op.
func (s *ReputationService) Apply(ctx context.Context, adjustmentID string) error {
	return dbretry.Transaction(ctx, s.db, func(ctx context.Context, tx bun.Tx) error {
		var adjustment types.ReputationAdjustment

		err := tx.NewSelect().
			Model(&adjustment).
			Where("id = ?", adjustmentID).
			For("UPDATE").
			Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("%w: %s", ErrAdjustmentNotFound, adjustmentID)
			}
			return fmt.Errorf("failed to get reputation adjustment: %w", err)
		}

		if adjustment.Applied {
			return nil
		}

		now := time.Now()
		err = models.IncrementScore(ctx, tx, &types.Reputation{
			OwnerID:   adjustment.OwnerID,
			Score:     adjustment.Delta,
			UpdatedAt: now,
		})
		if err != nil {
			return err
		}

		_, err = tx.NewUpdate().
			Model(&adjustment).
			Set("applied = true").
			Set("applied_at = ?", now).
			WherePK().
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to mark adjustment applied: %w", err)
		}

		s.logger.Debug("Applied reputation adjustment",
			zap.String("adjustmentID", adjustment.ID),
			zap.String("ownerID", adjustment.OwnerID),
			zap.Int("delta", adjustment.Delta))

		return nil
	})
}

// ApplyPending applies up to batchSize unapplied adjustments and returns how
// many were applied. Used by the catch-up worker to recover deltas whose
// apply step failed after the recompute committed.
func (s *ReputationService) ApplyPending(ctx context.Context, batchSize int) (int, error) {
	adjustments, err := s.model.GetPendingAdjustments(ctx, batchSize)
	if err != nil {
		return 0, err
	}
	if len(adjustments) == 0 {
		return 0, nil
	}

	var applied atomic.Int64

	p := pool.New().WithContext(ctx).WithMaxGoroutines(applyConcurrency)
	for _, adjustment := range adjustments {
		p.Go(func(ctx context.Context) error {
			if err := s.Apply(ctx, adjustment.ID); err != nil {
				s.logger.Warn("Failed to apply pending adjustment",
					zap.String("adjustmentID", adjustment.ID),
					zap.Error(err))
				return nil
			}
			applied.Add(1)
			return nil
		})
	}

	if err := p.Wait(); err != nil {
		return int(applied.Load()), err
	}

	return int(applied.Load()), nil
}

package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/wildsight/wildsight/internal/database/dbretry"
	"github.com/wildsight/wildsight/internal/database/models"
	"github.com/wildsight/wildsight/internal/database/types"
	"github.com/wildsight/wildsight/internal/redis"
	"github.com/wildsight/wildsight/internal/verification"
	"go.uber.org/zap"
)

// StatusService recomputes the trust status of submissions from the
// authoritative vote set and records the reputation delta each transition
// produces.
type StatusService struct {
	db         *bun.DB
	locker     *redis.Locker
	thresholds verification.Thresholds
	logger     *zap.Logger
}

// NewStatus creates a new status service.
func NewStatus(
	db *bun.DB, locker *redis.Locker, thresholds verification.Thresholds, logger *zap.Logger,
) *StatusService {
	return &StatusService{
		db:         db,
		locker:     locker,
		thresholds: thresholds,
		logger:     logger.Named("status_service"),
	}
}

// Recompute re-derives the status and counts of a submission from its full
// vote set. It runs as a single transaction with the submission row locked,
// so concurrent recomputes on the same submission serialize while different
// submissions proceed independently. Retrying the whole call is safe: the
// tallies always come from the vote set, never from a delta.
func (s *StatusService) Recompute(ctx context.Context, submissionID string) (*types.RecomputeResult, error) {
	result := &types.RecomputeResult{SubmissionID: submissionID}

	err := s.withRecomputeLock(ctx, submissionID, func(ctx context.Context) error {
		return dbretry.Transaction(ctx, s.db, func(ctx context.Context, tx bun.Tx) error {
			var submission types.Submission

			err := tx.NewSelect().
				Model(&submission).
				Where("id = ?", submissionID).
				For("UPDATE").
				Scan(ctx)
			if err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					return types.ErrSubmissionNotFound
				}
				return fmt.Errorf("failed to get submission for recompute: %w", err)
			}

			counts, err := models.CountVotes(ctx, tx, submissionID)
			if err != nil {
				return err
			}

			outcome := verification.Decide(s.thresholds, submission.Status, counts.Approves, counts.Rejects)

			now := time.Now()
			_, err = tx.NewUpdate().
				Model(&submission).
				Set("status = ?", outcome.Status).
				Set("approve_count = ?", counts.Approves).
				Set("reject_count = ?", counts.Rejects).
				Set("updated_at = ?", now).
				WherePK().
				Exec(ctx)
			if err != nil {
				return fmt.Errorf("failed to update submission status: %w", err)
			}

			result.OwnerID = submission.OwnerID
			result.OldStatus = submission.Status
			result.NewStatus = outcome.Status
			result.ApproveCount = counts.Approves
			result.RejectCount = counts.Rejects
			result.ReputationDelta = outcome.ReputationDelta
			result.AdjustmentID = ""

			if outcome.ReputationDelta == 0 {
				return nil
			}

			// Record the delta in the same transaction that commits the
			// transition. Each crossing gets exactly one adjustment row, so
			// the apply step can be retried without double-counting.
			adjustment := &types.ReputationAdjustment{
				ID:           uuid.NewString(),
				SubmissionID: submission.ID,
				OwnerID:      submission.OwnerID,
				FromStatus:   submission.Status,
				ToStatus:     outcome.Status,
				Delta:        outcome.ReputationDelta,
				CreatedAt:    now,
			}

			_, err = tx.NewInsert().
				Model(adjustment).
				Exec(ctx)
			if err != nil {
				return fmt.Errorf("failed to record reputation adjustment: %w", err)
			}

			result.AdjustmentID = adjustment.ID

			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	if result.OldStatus != result.NewStatus {
		s.logger.Info("Submission status changed",
			zap.String("submissionID", submissionID),
			zap.String("from", result.OldStatus.String()),
			zap.String("to", result.NewStatus.String()),
			zap.Int("approves", result.ApproveCount),
			zap.Int("rejects", result.RejectCount),
			zap.Int("reputationDelta", result.ReputationDelta))
	}

	return result, nil
}

// withRecomputeLock serializes recomputes per submission across instances.
// Without a locker the row lock inside the transaction still serializes
// concurrent recomputes on the same submission.
func (s *StatusService) withRecomputeLock(
	ctx context.Context, submissionID string, fn func(context.Context) error,
) error {
	if s.locker == nil {
		return fn(ctx)
	}
	return s.locker.WithLock(ctx, "recompute:"+submissionID, fn)
}

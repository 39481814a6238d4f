package models

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"
	"github.com/wildsight/wildsight/internal/database/types"
	"github.com/wildsight/wildsight/internal/database/types/enum"
	"go.uber.org/zap"
)

// SubmissionModel handles database operations for sighting submissions.
type SubmissionModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewSubmission creates a new SubmissionModel instance.
func NewSubmission(db *bun.DB, logger *zap.Logger) *SubmissionModel {
	return &SubmissionModel{
		db:     db,
		logger: logger,
	}
}

// Create stores a new submission. Submissions always start pending with zero
// counts regardless of what the caller supplies.
func (m *SubmissionModel) Create(ctx context.Context, submission *types.Submission) error {
	now := time.Now()
	submission.Status = enum.SubmissionStatusPending
	submission.ApproveCount = 0
	submission.RejectCount = 0
	submission.SubmittedAt = now
	submission.UpdatedAt = now

	_, err := m.db.NewInsert().
		Model(submission).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create submission: %w", err)
	}

	m.logger.Debug("Created submission",
		zap.String("submissionID", submission.ID),
		zap.String("ownerID", submission.OwnerID))

	return nil
}

// GetByID retrieves a submission by its ID.
func (m *SubmissionModel) GetByID(ctx context.Context, submissionID string) (*types.Submission, error) {
	var submission types.Submission

	err := m.db.NewSelect().
		Model(&submission).
		Where("id = ?", submissionID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("failed to get submission: %w", err)
	}

	return &submission, nil
}

// GetRecent retrieves the most recently submitted sightings.
func (m *SubmissionModel) GetRecent(ctx context.Context, limit int) ([]*types.Submission, error) {
	var submissions []*types.Submission

	err := m.db.NewSelect().
		Model(&submissions).
		Order("submitted_at DESC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent submissions: %w", err)
	}

	return submissions, nil
}

// Exists reports whether a submission with the given ID exists.
func (m *SubmissionModel) Exists(ctx context.Context, submissionID string) (bool, error) {
	exists, err := m.db.NewSelect().
		Model((*types.Submission)(nil)).
		Where("id = ?", submissionID).
		Exists(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to check submission existence: %w", err)
	}

	return exists, nil
}

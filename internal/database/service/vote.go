package service

import (
	"context"
	"fmt"
	"time"

	"github.com/wildsight/wildsight/internal/database/models"
	"github.com/wildsight/wildsight/internal/database/types"
	"github.com/wildsight/wildsight/internal/database/types/enum"
	"go.uber.org/zap"
)

// VoteService validates and records community votes and drives the
// cast-recompute-apply sequence for each vote action.
type VoteService struct {
	submissions *models.SubmissionModel
	votes       *models.VoteModel
	status      *StatusService
	reputation  *ReputationService
	logger      *zap.Logger
}

// NewVote creates a new vote service.
func NewVote(
	submissions *models.SubmissionModel,
	votes *models.VoteModel,
	status *StatusService,
	reputation *ReputationService,
	logger *zap.Logger,
) *VoteService {
	return &VoteService{
		submissions: submissions,
		votes:       votes,
		status:      status,
		reputation:  reputation,
		logger:      logger.Named("vote_service"),
	}
}

// CastVote records a voter's choice on a submission, overwriting an earlier
// different choice in place. Returns false when the voter already holds the
// same choice, in which case nothing changed and no recompute is needed.
// Votes on rejected submissions are still accepted; rejection is terminal for
// the status, not for counting.
func (s *VoteService) CastVote(
	ctx context.Context, submissionID, voterID string, choice enum.VoteChoice,
) (bool, error) {
	if !choice.Valid() {
		return false, fmt.Errorf("%w: %q", types.ErrInvalidChoice, choice)
	}

	exists, err := s.submissions.Exists(ctx, submissionID)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, types.ErrSubmissionNotFound
	}

	existing, err := s.votes.GetVote(ctx, submissionID, voterID)
	if err != nil {
		return false, err
	}
	if existing != nil && existing.Choice == choice {
		return false, nil
	}

	now := time.Now()
	vote := &types.Vote{
		SubmissionID: submissionID,
		VoterID:      voterID,
		Choice:       choice,
		CastAt:       now,
		UpdatedAt:    now,
	}
	if existing != nil {
		vote.CastAt = existing.CastAt
	}

	if err := s.votes.SaveVote(ctx, vote); err != nil {
		return false, err
	}

	s.logger.Debug("Recorded vote",
		zap.String("submissionID", submissionID),
		zap.String("voterID", voterID),
		zap.String("choice", choice.String()),
		zap.Bool("revote", existing != nil))

	return true, nil
}

// SubmitVote runs the full vote action as one logical unit: cast or change
// the vote, recompute the submission status from the authoritative vote set,
// and apply the resulting reputation delta. A failed reputation application
// after a committed recompute is left to the catch-up path, since the delta
// is already durably recorded.
func (s *VoteService) SubmitVote(
	ctx context.Context, submissionID, voterID string, choice enum.VoteChoice,
) (*types.RecomputeResult, bool, error) {
	changed, err := s.CastVote(ctx, submissionID, voterID, choice)
	if err != nil {
		return nil, false, err
	}

	if !changed {
		// Identical re-cast is a no-op; report the current state.
		submission, err := s.submissions.GetByID(ctx, submissionID)
		if err != nil {
			return nil, false, err
		}
		return &types.RecomputeResult{
			SubmissionID: submission.ID,
			OwnerID:      submission.OwnerID,
			OldStatus:    submission.Status,
			NewStatus:    submission.Status,
			ApproveCount: submission.ApproveCount,
			RejectCount:  submission.RejectCount,
		}, false, nil
	}

	result, err := s.status.Recompute(ctx, submissionID)
	if err != nil {
		return nil, true, err
	}

	if result.AdjustmentID != "" {
		if err := s.reputation.Apply(ctx, result.AdjustmentID); err != nil {
			s.logger.Warn("Failed to apply reputation adjustment, leaving for catch-up",
				zap.String("adjustmentID", result.AdjustmentID),
				zap.String("ownerID", result.OwnerID),
				zap.Int("delta", result.ReputationDelta),
				zap.Error(err))
		}
	}

	return result, true, nil
}

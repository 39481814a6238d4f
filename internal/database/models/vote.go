package models

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"
	"github.com/wildsight/wildsight/internal/database/types"
	"github.com/wildsight/wildsight/internal/database/types/enum"
	"go.uber.org/zap"
)

// VoteModel handles database operations for vote records.
type VoteModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewVote creates a new VoteModel instance.
func NewVote(db *bun.DB, logger *zap.Logger) *VoteModel {
	return &VoteModel{
		db:     db,
		logger: logger,
	}
}

// GetVote retrieves the live vote for a voter on a submission. Returns nil
// without an error when the voter has not voted yet.
func (m *VoteModel) GetVote(ctx context.Context, submissionID, voterID string) (*types.Vote, error) {
	var vote types.Vote

	err := m.db.NewSelect().
		Model(&vote).
		Where("submission_id = ?", submissionID).
		Where("voter_id = ?", voterID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get vote: %w", err)
	}

	return &vote, nil
}

// SaveVote records a voter's choice, overwriting any earlier choice in place.
func (m *VoteModel) SaveVote(ctx context.Context, vote *types.Vote) error {
	_, err := m.db.NewInsert().
		Model(vote).
		On("CONFLICT (submission_id, voter_id) DO UPDATE").
		Set("choice = EXCLUDED.choice").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to save vote: %w", err)
	}

	return nil
}

// CountVotes tallies the live votes for a submission from the authoritative
// vote set. When a transaction is given the tally is read inside it, which is
// how the recompute observes a snapshot consistent with its row lock.
func CountVotes(ctx context.Context, idb bun.IDB, submissionID string) (types.VoteCounts, error) {
	var rows []struct {
		Choice enum.VoteChoice `bun:"choice"`
		Count  int             `bun:"count"`
	}

	err := idb.NewSelect().
		Model((*types.Vote)(nil)).
		ColumnExpr("choice, count(*) AS count").
		Where("submission_id = ?", submissionID).
		GroupExpr("choice").
		Scan(ctx, &rows)
	if err != nil {
		return types.VoteCounts{}, fmt.Errorf("failed to count votes: %w", err)
	}

	var counts types.VoteCounts
	for _, row := range rows {
		switch row.Choice {
		case enum.VoteChoiceApprove:
			counts.Approves = row.Count
		case enum.VoteChoiceReject:
			counts.Rejects = row.Count
		}
	}

	return counts, nil
}

// CountVotes tallies the live votes for a submission outside a transaction,
// for read-only callers such as the REST surface.
func (m *VoteModel) CountVotes(ctx context.Context, submissionID string) (types.VoteCounts, error) {
	return CountVotes(ctx, m.db, submissionID)
}

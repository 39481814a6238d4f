package models

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"
	"github.com/wildsight/wildsight/internal/database/types"
	"go.uber.org/zap"
)

// ReputationModel handles database operations for reputation scores and
// pending reputation adjustments.
type ReputationModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewReputation creates a new ReputationModel instance.
func NewReputation(db *bun.DB, logger *zap.Logger) *ReputationModel {
	return &ReputationModel{
		db:     db,
		logger: logger,
	}
}

// GetScore retrieves the reputation for an owner, defaulting to a zero score
// when no row exists yet.
func (m *ReputationModel) GetScore(ctx context.Context, ownerID string) (*types.Reputation, error) {
	var reputation types.Reputation

	err := m.db.NewSelect().
		Model(&reputation).
		Where("owner_id = ?", ownerID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &types.Reputation{OwnerID: ownerID}, nil
		}
		return nil, fmt.Errorf("failed to get reputation: %w", err)
	}

	return &reputation, nil
}

// IncrementScore adds a signed delta to an owner's score, creating the row on
// first use. Increments commute, so no row lock is needed here.
func IncrementScore(ctx context.Context, idb bun.IDB, reputation *types.Reputation) error {
	_, err := idb.NewInsert().
		Model(reputation).
		On("CONFLICT (owner_id) DO UPDATE").
		Set("score = reputation.score + EXCLUDED.score").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to increment reputation: %w", err)
	}

	return nil
}

// GetPendingAdjustments retrieves unapplied reputation adjustments, oldest
// first, for the catch-up path.
func (m *ReputationModel) GetPendingAdjustments(ctx context.Context, limit int) ([]*types.ReputationAdjustment, error) {
	var adjustments []*types.ReputationAdjustment

	err := m.db.NewSelect().
		Model(&adjustments).
		Where("applied = false").
		Order("created_at ASC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get pending adjustments: %w", err)
	}

	return adjustments, nil
}

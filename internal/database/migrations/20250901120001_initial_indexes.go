package migrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		_, err := db.NewRaw(`
			-- Vote tally lookups during recompute
			CREATE INDEX IF NOT EXISTS idx_votes_submission
			ON votes (submission_id, choice);

			-- Owner and recency listings
			CREATE INDEX IF NOT EXISTS idx_submissions_owner
			ON submissions (owner_id, submitted_at DESC);

			CREATE INDEX IF NOT EXISTS idx_submissions_submitted_at
			ON submissions (submitted_at DESC);

			-- Catch-up scan over unapplied adjustments
			CREATE INDEX IF NOT EXISTS idx_reputation_adjustments_pending
			ON reputation_adjustments (created_at ASC)
			WHERE applied = false;
		`).Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to create indexes: %w", err)
		}

		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		_, err := db.NewRaw(`
			DROP INDEX IF EXISTS idx_votes_submission;
			DROP INDEX IF EXISTS idx_submissions_owner;
			DROP INDEX IF EXISTS idx_submissions_submitted_at;
			DROP INDEX IF EXISTS idx_reputation_adjustments_pending;
		`).Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to drop indexes: %w", err)
		}

		return nil
	})
}

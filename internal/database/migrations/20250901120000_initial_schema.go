package migrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
	"github.com/wildsight/wildsight/internal/database/types"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		models := []any{
			(*types.Submission)(nil),
			(*types.Vote)(nil),
			(*types.Reputation)(nil),
			(*types.ReputationAdjustment)(nil),
		}

		for _, model := range models {
			_, err := db.NewCreateTable().
				Model(model).
				IfNotExists().
				Exec(ctx)
			if err != nil {
				return fmt.Errorf("failed to create table for %T: %w", model, err)
			}
		}

		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		models := []any{
			(*types.ReputationAdjustment)(nil),
			(*types.Reputation)(nil),
			(*types.Vote)(nil),
			(*types.Submission)(nil),
		}

		for _, model := range models {
			_, err := db.NewDropTable().
				Model(model).
				IfExists().
				Exec(ctx)
			if err != nil {
				return fmt.Errorf("failed to drop table for %T: %w", model, err)
			}
		}

		return nil
	})
}

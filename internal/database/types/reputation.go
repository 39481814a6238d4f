package types

import (
	"time"

	"github.com/wildsight/wildsight/internal/database/types/enum"
)

// Reputation tracks the cumulative trust score of a submitter. Scores start
// at zero and are only ever moved by signed increments.
type Reputation struct {
	OwnerID   string    `bun:",pk"      json:"ownerId"`
	Score     int       `bun:",notnull" json:"score"`
	UpdatedAt time.Time `bun:",notnull" json:"updatedAt"`
}

// ReputationAdjustment records a single reputation delta produced by a status
// transition. The row is written in the same transaction that commits the
// transition, and Applied flips in the same transaction as the score
// increment, so each transition edge is applied at most once even when the
// apply step is retried after a crash.
type ReputationAdjustment struct {
	ID           string                `bun:",pk"      json:"id"`
	SubmissionID string                `bun:",notnull" json:"submissionId"`
	OwnerID      string                `bun:",notnull" json:"ownerId"`
	FromStatus   enum.SubmissionStatus `bun:",notnull" json:"fromStatus"`
	ToStatus     enum.SubmissionStatus `bun:",notnull" json:"toStatus"`
	Delta        int                   `bun:",notnull" json:"delta"`
	Applied      bool                  `bun:",notnull" json:"applied"`
	CreatedAt    time.Time             `bun:",notnull" json:"createdAt"`
	AppliedAt    time.Time             `bun:",nullzero" json:"appliedAt,omitempty"`
}

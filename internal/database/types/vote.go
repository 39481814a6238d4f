package types

import (
	"time"

	"github.com/wildsight/wildsight/internal/database/types/enum"
)

// Vote represents one voter's current opinion on a sighting. A voter has at
// most one live vote per sighting; changing a vote overwrites the choice in
// place. Votes are never deleted, even after a sighting is rejected.
type Vote struct {
	SubmissionID string          `bun:",pk"      json:"submissionId"`
	VoterID      string          `bun:",pk"      json:"voterId"`
	Choice       enum.VoteChoice `bun:",notnull" json:"choice"`
	CastAt       time.Time       `bun:",notnull" json:"castAt"`
	UpdatedAt    time.Time       `bun:",notnull" json:"updatedAt"`
}

// VoteCounts holds the vote tallies for a single sighting, derived from the
// full vote set inside the recompute transaction.
type VoteCounts struct {
	Approves int
	Rejects  int
}

// Total returns the number of votes cast on the sighting.
func (c VoteCounts) Total() int {
	return c.Approves + c.Rejects
}

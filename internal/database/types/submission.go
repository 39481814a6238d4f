package types

import (
	"errors"
	"time"

	"github.com/wildsight/wildsight/internal/database/types/enum"
)

var (
	ErrSubmissionNotFound = errors.New("submission not found")
	ErrInvalidChoice      = errors.New("invalid vote choice")
)

// Submission represents a community-contributed sighting awaiting trust
// classification. ApproveCount and RejectCount are derived values; they are
// recomputed from the vote set on every status recompute and are never
// incremented in place.
type Submission struct {
	ID             string                `bun:",pk"                    json:"id"`
	OwnerID        string                `bun:",notnull"               json:"ownerId"`
	Title          string                `bun:",notnull"               json:"title"`
	PredictedLabel string                `bun:",nullzero"              json:"predictedLabel,omitempty"`
	ImageURL       string                `bun:",nullzero"              json:"imageUrl,omitempty"`
	Status         enum.SubmissionStatus `bun:",notnull"               json:"status"`
	ApproveCount   int                   `bun:",notnull,default:0"     json:"approveCount"`
	RejectCount    int                   `bun:",notnull,default:0"     json:"rejectCount"`
	SubmittedAt    time.Time             `bun:",notnull"               json:"submittedAt"`
	UpdatedAt      time.Time             `bun:",notnull"               json:"updatedAt"`
}

// RecomputeResult carries the outcome of a status recompute back to the
// caller. ReputationDelta is the exact signed amount the applier must add to
// the owner's score for this transition; it is computed once per recompute
// and never re-derived.
type RecomputeResult struct {
	SubmissionID    string
	OwnerID         string
	OldStatus       enum.SubmissionStatus
	NewStatus       enum.SubmissionStatus
	ApproveCount    int
	RejectCount     int
	ReputationDelta int
	// AdjustmentID identifies the pending reputation adjustment recorded for
	// this transition, empty when the delta is zero.
	AdjustmentID string
}

// Package verification implements the status decision rules for community
// sighting verification. The decision is a pure function of the current
// status and the vote tallies so it can be evaluated, and tested, without
// touching any datastore.
package verification

import "github.com/wildsight/wildsight/internal/database/types/enum"

// Reputation deltas awarded on status transitions. The rejection penalty is
// independent of the verification reversal; both apply when a verified
// sighting is rejected in the same recompute.
const (
	VerifiedAward    = 10
	RejectionPenalty = 5
)

// Thresholds controls when a sighting is promoted or rejected.
type Thresholds struct {
	// ApproveThreshold is the number of approvals needed for verification.
	ApproveThreshold int
	// MinVotesForRejection is the minimum total votes before the rejection
	// majority rule is evaluated at all.
	MinVotesForRejection int
}

// DefaultThresholds returns the standard community thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{
		ApproveThreshold:     5,
		MinVotesForRejection: 3,
	}
}

// Outcome is the result of evaluating the decision rules for one sighting.
type Outcome struct {
	Status enum.SubmissionStatus
	// ReputationDelta is the signed score change the owner earns for the
	// transition from the previous status to Status.
	ReputationDelta int
}

// Decide evaluates the status rules for a sighting with the given current
// status and vote tallies, and returns the new status together with the
// reputation delta for the transition.
//
// Rejected is terminal: the status and delta are frozen while counts keep
// updating upstream. Otherwise the candidate status starts at pending, is
// promoted to verified once approvals reach the threshold, and a strict
// rejection majority over at least MinVotesForRejection votes overrides any
// promotion in the same pass. A 50/50 split does not reject.
func Decide(t Thresholds, current enum.SubmissionStatus, approves, rejects int) Outcome {
	if current == enum.SubmissionStatusRejected {
		return Outcome{Status: enum.SubmissionStatusRejected}
	}

	candidate := enum.SubmissionStatusPending
	if approves >= t.ApproveThreshold {
		candidate = enum.SubmissionStatusVerified
	}

	// Strict majority: 2*R > T avoids float comparison and keeps the 50/50
	// split on the non-rejecting side.
	total := approves + rejects
	if total >= t.MinVotesForRejection && rejects > 0 && 2*rejects > total {
		candidate = enum.SubmissionStatusRejected
	}

	delta := 0
	if current == enum.SubmissionStatusVerified && candidate != enum.SubmissionStatusVerified {
		delta -= VerifiedAward
	}
	if current != enum.SubmissionStatusVerified && candidate == enum.SubmissionStatusVerified {
		delta += VerifiedAward
	}
	if candidate == enum.SubmissionStatusRejected {
		delta -= RejectionPenalty
	}

	return Outcome{Status: candidate, ReputationDelta: delta}
}

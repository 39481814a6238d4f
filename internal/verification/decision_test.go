package verification_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/wildsight/wildsight/internal/database/types/enum"
	"github.com/wildsight/wildsight/internal/verification"
)

func TestDecide(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		current        enum.SubmissionStatus
		approves       int
		rejects        int
		expectedStatus enum.SubmissionStatus
		expectedDelta  int
	}{
		{
			name:           "no votes stays pending",
			current:        enum.SubmissionStatusPending,
			approves:       0,
			rejects:        0,
			expectedStatus: enum.SubmissionStatusPending,
			expectedDelta:  0,
		},
		{
			name:           "four approvals stays pending",
			current:        enum.SubmissionStatusPending,
			approves:       4,
			rejects:        0,
			expectedStatus: enum.SubmissionStatusPending,
			expectedDelta:  0,
		},
		{
			name:           "exactly five approvals verifies",
			current:        enum.SubmissionStatusPending,
			approves:       5,
			rejects:        0,
			expectedStatus: enum.SubmissionStatusVerified,
			expectedDelta:  10,
		},
		{
			name:           "already verified earns nothing again",
			current:        enum.SubmissionStatusVerified,
			approves:       6,
			rejects:        0,
			expectedStatus: enum.SubmissionStatusVerified,
			expectedDelta:  0,
		},
		{
			name:           "even split keeps verification",
			current:        enum.SubmissionStatusVerified,
			approves:       5,
			rejects:        5,
			expectedStatus: enum.SubmissionStatusVerified,
			expectedDelta:  0,
		},
		{
			name:           "strict majority rejects a verified sighting",
			current:        enum.SubmissionStatusVerified,
			approves:       5,
			rejects:        6,
			expectedStatus: enum.SubmissionStatusRejected,
			expectedDelta:  -15,
		},
		{
			name:           "rejection majority overrides promotion in the same pass",
			current:        enum.SubmissionStatusPending,
			approves:       5,
			rejects:        6,
			expectedStatus: enum.SubmissionStatusRejected,
			expectedDelta:  -5,
		},
		{
			name:           "two rejections are below the minimum sample",
			current:        enum.SubmissionStatusPending,
			approves:       0,
			rejects:        2,
			expectedStatus: enum.SubmissionStatusPending,
			expectedDelta:  0,
		},
		{
			name:           "three rejections reject a pending sighting",
			current:        enum.SubmissionStatusPending,
			approves:       0,
			rejects:        3,
			expectedStatus: enum.SubmissionStatusRejected,
			expectedDelta:  -5,
		},
		{
			name:           "votes draining below threshold reverses verification",
			current:        enum.SubmissionStatusVerified,
			approves:       4,
			rejects:        0,
			expectedStatus: enum.SubmissionStatusPending,
			expectedDelta:  -10,
		},
		{
			name:           "rejected is terminal even with many approvals",
			current:        enum.SubmissionStatusRejected,
			approves:       20,
			rejects:        0,
			expectedStatus: enum.SubmissionStatusRejected,
			expectedDelta:  0,
		},
		{
			name:           "rejected recompute never re-applies the penalty",
			current:        enum.SubmissionStatusRejected,
			approves:       1,
			rejects:        10,
			expectedStatus: enum.SubmissionStatusRejected,
			expectedDelta:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			outcome := verification.Decide(verification.DefaultThresholds(), tt.current, tt.approves, tt.rejects)
			assert.Equal(t, tt.expectedStatus, outcome.Status)
			assert.Equal(t, tt.expectedDelta, outcome.ReputationDelta)
		})
	}
}

// TestDecideLifecycle walks a sighting through the full verify-then-reject
// sequence and checks that the applied deltas sum to the expected net score.
func TestDecideLifecycle(t *testing.T) {
	t.Parallel()

	thresholds := verification.DefaultThresholds()
	status := enum.SubmissionStatusPending
	score := 0

	step := func(approves, rejects int) verification.Outcome {
		outcome := verification.Decide(thresholds, status, approves, rejects)
		status = outcome.Status
		score += outcome.ReputationDelta
		return outcome
	}

	// Five approvals, one at a time.
	for approves := 1; approves <= 4; approves++ {
		outcome := step(approves, 0)
		assert.Equal(t, enum.SubmissionStatusPending, outcome.Status)
	}
	outcome := step(5, 0)
	assert.Equal(t, enum.SubmissionStatusVerified, outcome.Status)
	assert.Equal(t, 10, score)

	// Five rejections bring the split to 50/50, which does not reject.
	for rejects := 1; rejects <= 5; rejects++ {
		outcome = step(5, rejects)
		assert.Equal(t, enum.SubmissionStatusVerified, outcome.Status)
	}
	assert.Equal(t, 10, score)

	// The sixth rejection tips the strict majority.
	outcome = step(5, 6)
	assert.Equal(t, enum.SubmissionStatusRejected, outcome.Status)
	assert.Equal(t, -15, outcome.ReputationDelta)
	assert.Equal(t, -5, score)

	// Further votes no longer move the status or the score.
	outcome = step(20, 6)
	assert.Equal(t, enum.SubmissionStatusRejected, outcome.Status)
	assert.Equal(t, -5, score)
}

// TestDecideCycling verifies that a sighting can move between pending and
// verified repeatedly with symmetric deltas, leaving the score unchanged
// after each round trip.
func TestDecideCycling(t *testing.T) {
	t.Parallel()

	thresholds := verification.DefaultThresholds()
	status := enum.SubmissionStatusPending
	score := 0

	for range 3 {
		outcome := verification.Decide(thresholds, status, 5, 0)
		status = outcome.Status
		score += outcome.ReputationDelta
		assert.Equal(t, enum.SubmissionStatusVerified, status)

		outcome = verification.Decide(thresholds, status, 4, 0)
		status = outcome.Status
		score += outcome.ReputationDelta
		assert.Equal(t, enum.SubmissionStatusPending, status)
	}

	assert.Equal(t, 0, score)
}

package enum_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/wildsight/wildsight/internal/database/types/enum"
)

func TestVoteChoiceValid(t *testing.T) {
	t.Parallel()

	assert.True(t, enum.VoteChoiceApprove.Valid())
	assert.True(t, enum.VoteChoiceReject.Valid())
	assert.False(t, enum.VoteChoice("").Valid())
	assert.False(t, enum.VoteChoice("abstain").Valid())
	assert.False(t, enum.VoteChoice("Approve").Valid())
}

func TestSubmissionStatusValid(t *testing.T) {
	t.Parallel()

	assert.True(t, enum.SubmissionStatusPending.Valid())
	assert.True(t, enum.SubmissionStatusVerified.Valid())
	assert.True(t, enum.SubmissionStatusRejected.Valid())
	assert.False(t, enum.SubmissionStatus("flagged").Valid())
}

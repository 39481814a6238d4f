package convert

import (
	"github.com/wildsight/wildsight/internal/database/types"
	"github.com/wildsight/wildsight/internal/database/types/enum"
	restTypes "github.com/wildsight/wildsight/internal/rest/types"
)

// SubmissionStatus converts a database status to its API representation.
func SubmissionStatus(status enum.SubmissionStatus) restTypes.SubmissionStatus {
	switch status {
	case enum.SubmissionStatusVerified:
		return restTypes.SubmissionStatusVerified
	case enum.SubmissionStatusRejected:
		return restTypes.SubmissionStatusRejected
	default:
		return restTypes.SubmissionStatusPending
	}
}

// Submission converts a database submission to its API representation.
func Submission(submission *types.Submission) restTypes.Submission {
	return restTypes.Submission{
		ID:             submission.ID,
		OwnerID:        submission.OwnerID,
		Title:          submission.Title,
		PredictedLabel: submission.PredictedLabel,
		ImageURL:       submission.ImageURL,
		Status:         SubmissionStatus(submission.Status),
		ApproveCount:   submission.ApproveCount,
		RejectCount:    submission.RejectCount,
		SubmittedAt:    submission.SubmittedAt,
	}
}

package types

import "time"

// SubmissionStatus represents a sighting's trust classification in API responses.
type SubmissionStatus string

const (
	SubmissionStatusPending  SubmissionStatus = "pending"
	SubmissionStatusVerified SubmissionStatus = "verified"
	SubmissionStatusRejected SubmissionStatus = "rejected"
)

// Submission is the API representation of a sighting.
type Submission struct {
	ID             string           `json:"id"`
	OwnerID        string           `json:"ownerId"`
	Title          string           `json:"title"`
	PredictedLabel string           `json:"predictedLabel,omitempty"`
	ImageURL       string           `json:"imageUrl,omitempty"`
	Status         SubmissionStatus `json:"status"`
	ApproveCount   int              `json:"approveCount"`
	RejectCount    int              `json:"rejectCount"`
	SubmittedAt    time.Time        `json:"submittedAt"`
}

// CreateSubmissionRequest is the payload for registering a new sighting.
type CreateSubmissionRequest struct {
	OwnerID        string `json:"ownerId"`
	Title          string `json:"title"`
	PredictedLabel string `json:"predictedLabel,omitempty"`
	ImageURL       string `json:"imageUrl,omitempty"`
}

// CastVoteRequest is the payload for casting or changing a vote.
type CastVoteRequest struct {
	VoterID string `json:"voterId"`
	Choice  string `json:"choice"`
}

// CastVoteResponse reports the result of a vote action.
type CastVoteResponse struct {
	Changed      bool             `json:"changed"`
	Status       SubmissionStatus `json:"status"`
	ApproveCount int              `json:"approveCount"`
	RejectCount  int              `json:"rejectCount"`
}

// ReputationResponse reports an owner's current reputation score.
type ReputationResponse struct {
	OwnerID string `json:"ownerId"`
	Score   int    `json:"score"`
}

// ErrorResponse carries an error message to the client.
type ErrorResponse struct {
	Error string `json:"error"`
}

package enum

// SubmissionStatus represents the trust classification of a sighting.
type SubmissionStatus string

const (
	// SubmissionStatusPending indicates a sighting awaiting enough community votes.
	SubmissionStatusPending SubmissionStatus = "pending"
	// SubmissionStatusVerified indicates a sighting confirmed by the community.
	SubmissionStatusVerified SubmissionStatus = "verified"
	// SubmissionStatusRejected indicates a sighting dismissed by the community.
	// Rejected is terminal; a sighting never leaves this status.
	SubmissionStatusRejected SubmissionStatus = "rejected"
)

// String returns the status as a plain string.
func (s SubmissionStatus) String() string {
	return string(s)
}

// Valid reports whether the status is one of the known values.
func (s SubmissionStatus) Valid() bool {
	switch s {
	case SubmissionStatusPending, SubmissionStatusVerified, SubmissionStatusRejected:
		return true
	default:
		return false
	}
}

// VoteChoice represents a voter's current opinion on a sighting.
type VoteChoice string

const (
	VoteChoiceApprove VoteChoice = "approve"
	VoteChoiceReject  VoteChoice = "reject"
)

// String returns the choice as a plain string.
func (c VoteChoice) String() string {
	return string(c)
}

// Valid reports whether the choice is one of the two allowed values.
func (c VoteChoice) Valid() bool {
	return c == VoteChoiceApprove || c == VoteChoiceReject
}

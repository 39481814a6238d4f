package database

import (
	"github.com/uptrace/bun"
	"github.com/wildsight/wildsight/internal/database/models"
	"go.uber.org/zap"
)

// Repository provides access to all database models.
type Repository struct {
	submission *models.SubmissionModel
	vote       *models.VoteModel
	reputation *models.ReputationModel
}

// NewRepository creates a new repository instance with all models.
func NewRepository(db *bun.DB, logger *zap.Logger) *Repository {
	return &Repository{
		submission: models.NewSubmission(db, logger),
		vote:       models.NewVote(db, logger),
		reputation: models.NewReputation(db, logger),
	}
}

// Submission returns the submission model repository.
func (r *Repository) Submission() *models.SubmissionModel {
	return r.submission
}

// Vote returns the vote model repository.
func (r *Repository) Vote() *models.VoteModel {
	return r.vote
}

// Reputation returns the reputation model repository.
func (r *Repository) Reputation() *models.ReputationModel {
	return r.reputation
}

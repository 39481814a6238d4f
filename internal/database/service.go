package database

import (
	"github.com/uptrace/bun"
	"github.com/wildsight/wildsight/internal/database/service"
	"github.com/wildsight/wildsight/internal/redis"
	"github.com/wildsight/wildsight/internal/verification"
	"go.uber.org/zap"
)

// Service provides access to all business logic services.
type Service struct {
	vote       *service.VoteService
	status     *service.StatusService
	reputation *service.ReputationService
}

// NewService creates a new service instance with all services.
func NewService(
	db *bun.DB, repository *Repository, thresholds verification.Thresholds,
	locker *redis.Locker, logger *zap.Logger,
) *Service {
	statusService := service.NewStatus(db, locker, thresholds, logger)
	reputationService := service.NewReputation(db, repository.Reputation(), logger)

	return &Service{
		vote: service.NewVote(
			repository.Submission(), repository.Vote(), statusService, reputationService, logger,
		),
		status:     statusService,
		reputation: reputationService,
	}
}

// Vote returns the vote service.
func (s *Service) Vote() *service.VoteService {
	return s.vote
}

// Status returns the status service.
func (s *Service) Status() *service.StatusService {
	return s.status
}

// Reputation returns the reputation service.
func (s *Service) Reputation() *service.ReputationService {
	return s.reputation
}

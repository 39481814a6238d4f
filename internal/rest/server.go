package rest

import (
	"net/http"

	"github.com/klauspost/compress/gzhttp"
	"github.com/uptrace/bunrouter"
	"github.com/wildsight/wildsight/internal/database"
	"github.com/wildsight/wildsight/internal/rest/handler"
	"github.com/wildsight/wildsight/internal/rest/middleware/ratelimit"
	"github.com/wildsight/wildsight/internal/setup/config"
	"go.uber.org/zap"
)

// Server implements the REST API service.
type Server struct {
	submissionHandler *handler.SubmissionHandler
	voteHandler       *handler.VoteHandler
	reputationHandler *handler.ReputationHandler
}

// NewServer creates a new REST API server.
func NewServer(db database.Client, logger *zap.Logger, config *config.APIConfig) (http.Handler, error) {
	// Create server instance with handlers
	server := &Server{
		submissionHandler: handler.NewSubmissionHandler(db, logger),
		voteHandler:       handler.NewVoteHandler(db, logger),
		reputationHandler: handler.NewReputationHandler(db, logger),
	}

	// Create middleware instances
	rateLimiter := ratelimit.New(&config.RateLimit, logger)

	// Create base router
	router := bunrouter.New()

	// Create API routes group
	router.Use(
		rateLimiter.AsRESTMiddleware,
	).WithGroup("/v1", func(g *bunrouter.Group) {
		g.POST("/submissions", server.submissionHandler.CreateSubmission)
		g.GET("/submissions", server.submissionHandler.GetRecentSubmissions)
		g.GET("/submissions/:id", server.submissionHandler.GetSubmission)
		g.POST("/submissions/:id/votes", server.voteHandler.CastVote)
		g.GET("/owners/:id/reputation", server.reputationHandler.GetReputation)
	})

	// Add gzip compression
	return gzhttp.GzipHandler(router), nil
}

package handler

import (
	"net/http"

	"github.com/uptrace/bunrouter"
	"github.com/wildsight/wildsight/internal/database"
	restTypes "github.com/wildsight/wildsight/internal/rest/types"
	"go.uber.org/zap"
)

// ReputationHandler handles reputation-related REST endpoints.
type ReputationHandler struct {
	db     database.Client
	logger *zap.Logger
}

// NewReputationHandler creates a new reputation handler.
func NewReputationHandler(db database.Client, logger *zap.Logger) *ReputationHandler {
	return &ReputationHandler{
		db:     db,
		logger: logger,
	}
}

// GetReputation retrieves an owner's current reputation score. Owners without
// any scored submissions report zero.
func (h *ReputationHandler) GetReputation(w http.ResponseWriter, req bunrouter.Request) error {
	reputation, err := h.db.Model().Reputation().GetScore(req.Context(), req.Param("id"))
	if err != nil {
		h.logger.Error("Failed to get reputation", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return nil
	}

	return bunrouter.JSON(w, restTypes.ReputationResponse{
		OwnerID: reputation.OwnerID,
		Score:   reputation.Score,
	})
}

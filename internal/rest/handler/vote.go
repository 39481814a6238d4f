package handler

import (
	"errors"
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/uptrace/bunrouter"
	"github.com/wildsight/wildsight/internal/database"
	"github.com/wildsight/wildsight/internal/database/types"
	"github.com/wildsight/wildsight/internal/database/types/enum"
	"github.com/wildsight/wildsight/internal/rest/convert"
	restTypes "github.com/wildsight/wildsight/internal/rest/types"
	"go.uber.org/zap"
)

// VoteHandler handles vote-related REST endpoints.
type VoteHandler struct {
	db     database.Client
	logger *zap.Logger
}

// NewVoteHandler creates a new vote handler.
func NewVoteHandler(db database.Client, logger *zap.Logger) *VoteHandler {
	return &VoteHandler{
		db:     db,
		logger: logger,
	}
}

// CastVote casts or changes a vote on a sighting and returns the resulting
// status and counts after the recompute.
func (h *VoteHandler) CastVote(w http.ResponseWriter, req bunrouter.Request) error {
	var payload restTypes.CastVoteRequest
	if err := sonic.ConfigDefault.NewDecoder(req.Body).Decode(&payload); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return nil
	}

	if payload.VoterID == "" {
		http.Error(w, "voterId is required", http.StatusBadRequest)
		return nil
	}

	result, changed, err := h.db.Service().Vote().SubmitVote(
		req.Context(), req.Param("id"), payload.VoterID, enum.VoteChoice(payload.Choice),
	)
	if err != nil {
		switch {
		case errors.Is(err, types.ErrSubmissionNotFound):
			http.Error(w, "submission not found", http.StatusNotFound)
		case errors.Is(err, types.ErrInvalidChoice):
			http.Error(w, "choice must be approve or reject", http.StatusBadRequest)
		default:
			h.logger.Error("Failed to process vote", zap.Error(err))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
		}
		return nil
	}

	return bunrouter.JSON(w, restTypes.CastVoteResponse{
		Changed:      changed,
		Status:       convert.SubmissionStatus(result.NewStatus),
		ApproveCount: result.ApproveCount,
		RejectCount:  result.RejectCount,
	})
}

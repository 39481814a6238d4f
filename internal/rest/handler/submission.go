package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/uptrace/bunrouter"
	"github.com/wildsight/wildsight/internal/database"
	"github.com/wildsight/wildsight/internal/database/types"
	"github.com/wildsight/wildsight/internal/rest/convert"
	restTypes "github.com/wildsight/wildsight/internal/rest/types"
	"go.uber.org/zap"
)

// recentSubmissionsLimit caps the recent sightings listing.
const recentSubmissionsLimit = 50

// SubmissionHandler handles sighting-related REST endpoints.
type SubmissionHandler struct {
	db     database.Client
	logger *zap.Logger
}

// NewSubmissionHandler creates a new submission handler.
func NewSubmissionHandler(db database.Client, logger *zap.Logger) *SubmissionHandler {
	return &SubmissionHandler{
		db:     db,
		logger: logger,
	}
}

// CreateSubmission registers a new sighting in pending status with zero counts.
func (h *SubmissionHandler) CreateSubmission(w http.ResponseWriter, req bunrouter.Request) error {
	var payload restTypes.CreateSubmissionRequest
	if err := sonic.ConfigDefault.NewDecoder(req.Body).Decode(&payload); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return nil
	}

	if strings.TrimSpace(payload.OwnerID) == "" || strings.TrimSpace(payload.Title) == "" {
		http.Error(w, "ownerId and title are required", http.StatusBadRequest)
		return nil
	}

	submission := &types.Submission{
		ID:             uuid.NewString(),
		OwnerID:        payload.OwnerID,
		Title:          payload.Title,
		PredictedLabel: payload.PredictedLabel,
		ImageURL:       payload.ImageURL,
	}

	if err := h.db.Model().Submission().Create(req.Context(), submission); err != nil {
		h.logger.Error("Failed to create submission", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return nil
	}

	w.WriteHeader(http.StatusCreated)
	return bunrouter.JSON(w, convert.Submission(submission))
}

// GetSubmission retrieves a sighting with its current status and counts.
func (h *SubmissionHandler) GetSubmission(w http.ResponseWriter, req bunrouter.Request) error {
	submission, err := h.db.Model().Submission().GetByID(req.Context(), req.Param("id"))
	if err != nil {
		if errors.Is(err, types.ErrSubmissionNotFound) {
			http.Error(w, "submission not found", http.StatusNotFound)
			return nil
		}
		h.logger.Error("Failed to get submission", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return nil
	}

	return bunrouter.JSON(w, convert.Submission(submission))
}

// GetRecentSubmissions lists the most recently submitted sightings.
func (h *SubmissionHandler) GetRecentSubmissions(w http.ResponseWriter, req bunrouter.Request) error {
	submissions, err := h.db.Model().Submission().GetRecent(req.Context(), recentSubmissionsLimit)
	if err != nil {
		h.logger.Error("Failed to get recent submissions", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return nil
	}

	response := make([]restTypes.Submission, 0, len(submissions))
	for _, submission := range submissions {
		response = append(response, convert.Submission(submission))
	}

	return bunrouter.JSON(w, response)
}

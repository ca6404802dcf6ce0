package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Lixing-Zhang/outfit-finder/internal/analyzer"
	"github.com/Lixing-Zhang/outfit-finder/internal/models"
)

const (
	msgDescriptionRequired = "Description is required"
	msgInvalidBody         = "Invalid request body"
	msgInvalidPlan         = "Failed to parse outfit plan"
	msgAnalyzeFailed       = "Failed to analyze outfit"
)

// outfitAnalyzer is the interface for outfit analysis
type outfitAnalyzer interface {
	Analyze(ctx context.Context, description string) (*models.OutfitPlan, error)
}

// AnalyzeRequest is the body of POST /api/analyze
type AnalyzeRequest struct {
	Description string `json:"description"`
}

// AnalyzeHandler handles outfit analysis requests
type AnalyzeHandler struct {
	analyzer outfitAnalyzer
	log      *slog.Logger
}

// NewAnalyzeHandler creates a new analyze handler
func NewAnalyzeHandler(analyzer outfitAnalyzer, log *slog.Logger) *AnalyzeHandler {
	return &AnalyzeHandler{
		analyzer: analyzer,
		log:      log,
	}
}

// Analyze handles POST /api/analyze
func (h *AnalyzeHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Warn("failed to decode analyze request", "error", err)
		WriteError(w, http.StatusBadRequest, msgInvalidBody, h.log)
		return
	}

	if req.Description == "" {
		WriteError(w, http.StatusBadRequest, msgDescriptionRequired, h.log)
		return
	}

	plan, err := h.analyzer.Analyze(r.Context(), req.Description)
	if err != nil {
		status, message := analyzeErrorResponse(err)
		h.log.Error("failed to analyze outfit", "error", err, "status", status)
		WriteError(w, status, message, h.log)
		return
	}

	WriteJSON(w, http.StatusOK, plan, h.log)
	h.log.Info("outfit analyzed", "categories", len(plan.Categories))
}

// analyzeErrorResponse maps analyzer errors to a status code and a client-facing message.
// Upstream messages are passed through; parse failures are normalized.
func analyzeErrorResponse(err error) (int, string) {
	var upstream *analyzer.UpstreamError

	switch {
	case errors.Is(err, analyzer.ErrEmptyDescription):
		return http.StatusBadRequest, msgDescriptionRequired
	case errors.Is(err, analyzer.ErrInvalidPlan):
		return http.StatusInternalServerError, msgInvalidPlan
	case errors.As(err, &upstream) && upstream.Error() != "":
		return http.StatusInternalServerError, upstream.Error()
	default:
		return http.StatusInternalServerError, msgAnalyzeFailed
	}
}

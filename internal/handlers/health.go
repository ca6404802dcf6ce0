package handlers

import (
	"log/slog"
	"net/http"
	"time"
)

// Version is reported by the health endpoint
const Version = "1.0.0"

// HealthHandler provides health check endpoint
type HealthHandler struct {
	logger     *slog.Logger
	provider   string
	liveSearch bool
}

// NewHealthHandler creates a new health handler. provider names the configured
// language model provider; liveSearch reports whether a shopping search key is set.
func NewHealthHandler(logger *slog.Logger, provider string, liveSearch bool) *HealthHandler {
	return &HealthHandler{
		logger:     logger,
		provider:   provider,
		liveSearch: liveSearch,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status      string    `json:"status"`
	Timestamp   time.Time `json:"timestamp"`
	Version     string    `json:"version"`
	LLMProvider string    `json:"llmProvider"`
	SearchMode  string    `json:"searchMode"`
}

// ServeHTTP handles health check requests
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	mode := "mock"
	if h.liveSearch {
		mode = "live"
	}

	WriteJSON(w, http.StatusOK, HealthResponse{
		Status:      "healthy",
		Timestamp:   time.Now().UTC(),
		Version:     Version,
		LLMProvider: h.provider,
		SearchMode:  mode,
	}, h.logger)
}

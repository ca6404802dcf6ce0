package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/Lixing-Zhang/outfit-finder/internal/models"
)

const msgCategoriesRequired = "Categories array is required"

// productSearcher is the interface for per-category product search
type productSearcher interface {
	Search(ctx context.Context, categories []models.Category) *models.SearchResults
}

// searchRequest keeps categories raw so that a missing field and a non-array
// value can be told apart from malformed JSON
type searchRequest struct {
	Categories json.RawMessage `json:"categories"`
}

// SearchHandler handles product search requests
type SearchHandler struct {
	searcher productSearcher
	log      *slog.Logger
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(searcher productSearcher, log *slog.Logger) *SearchHandler {
	return &SearchHandler{
		searcher: searcher,
		log:      log,
	}
}

// Search handles POST /api/search
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Warn("failed to decode search request", "error", err)
		WriteError(w, http.StatusBadRequest, msgInvalidBody, h.log)
		return
	}

	raw := bytes.TrimSpace(req.Categories)
	if len(raw) == 0 || raw[0] != '[' {
		WriteError(w, http.StatusBadRequest, msgCategoriesRequired, h.log)
		return
	}

	var categories []models.Category
	if err := json.Unmarshal(raw, &categories); err != nil {
		h.log.Warn("failed to decode categories", "error", err)
		WriteError(w, http.StatusBadRequest, msgInvalidBody, h.log)
		return
	}

	results := h.searcher.Search(r.Context(), categories)

	WriteJSON(w, http.StatusOK, results, h.log)
	h.log.Info("products searched", "categories", results.Len())
}

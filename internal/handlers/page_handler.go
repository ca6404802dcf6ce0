package handlers

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Lixing-Zhang/outfit-finder/internal/service"
	"github.com/Lixing-Zhang/outfit-finder/internal/view"
)

// outfitFinder runs the whole describe, analyze and search pipeline
type outfitFinder interface {
	FindOutfit(ctx context.Context, description string) (*service.Outfit, error)
}

// PageHandler serves the server-rendered outfit finder page
type PageHandler struct {
	finder outfitFinder
	log    *slog.Logger
}

// NewPageHandler creates a new page handler
func NewPageHandler(finder outfitFinder, log *slog.Logger) *PageHandler {
	return &PageHandler{
		finder: finder,
		log:    log,
	}
}

// Show handles GET /
func (h *PageHandler) Show(w http.ResponseWriter, r *http.Request) {
	h.render(w, view.NewMachine())
}

// Submit handles POST / with a form-encoded description. Retrying posts the
// same description again.
func (h *PageHandler) Submit(w http.ResponseWriter, r *http.Request) {
	m := view.NewMachine()

	if err := r.ParseForm(); err != nil {
		h.log.Warn("failed to parse page form", "error", err)
	}
	description := strings.TrimSpace(r.PostFormValue("description"))

	if description == "" {
		_ = m.Reject(view.EmptyDescriptionMessage)
		h.render(w, m)
		return
	}

	_ = m.Submit(description)
	outfit, err := h.finder.FindOutfit(r.Context(), description)
	if err != nil {
		_, message := analyzeErrorResponse(err)
		h.log.Error("failed to find outfit", "error", err)
		_ = m.Fail(message)
		h.render(w, m)
		return
	}

	_ = m.Succeed(view.Render(outfit.Plan.Summary, outfit.Results))
	h.render(w, m)
}

func (h *PageHandler) render(w http.ResponseWriter, m *view.Machine) {
	var buf bytes.Buffer
	if err := view.WriteHTML(&buf, m); err != nil {
		h.log.Error("failed to render page", "error", err, "state", m.State().String())
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.log.Error("failed to write page", "error", err)
	}
}

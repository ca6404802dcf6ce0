// Package analyzer turns a free-text outfit description into a structured outfit plan
// with the help of a language model.
package analyzer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Lixing-Zhang/outfit-finder/internal/llm"
	"github.com/Lixing-Zhang/outfit-finder/internal/metrics"
	"github.com/Lixing-Zhang/outfit-finder/internal/models"
)

// DefaultMaxTokens bounds the size of the model reply
const DefaultMaxTokens = 1024

var (
	ErrEmptyDescription = errors.New("description is required")
	ErrInvalidPlan      = errors.New("invalid outfit plan")
)

// UpstreamError reports a failed language-model call.
// Its message is the upstream message unchanged.
type UpstreamError struct {
	Err error
}

func (e *UpstreamError) Error() string {
	return e.Err.Error()
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// Analyzer asks a language model to break an outfit description into shopping categories
type Analyzer struct {
	model     llm.Completer
	maxTokens int
	validator *planValidator
	logger    *slog.Logger
}

// New creates an analyzer. maxTokens <= 0 uses DefaultMaxTokens.
func New(model llm.Completer, maxTokens int, logger *slog.Logger) (*Analyzer, error) {
	if model == nil {
		return nil, errors.New("language model is required")
	}
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}

	validator, err := newPlanValidator()
	if err != nil {
		return nil, err
	}

	return &Analyzer{
		model:     model,
		maxTokens: maxTokens,
		validator: validator,
		logger:    logger,
	}, nil
}

// Analyze returns the outfit plan for a description.
// Errors are ErrEmptyDescription, *UpstreamError or wrap ErrInvalidPlan.
func (a *Analyzer) Analyze(ctx context.Context, description string) (*models.OutfitPlan, error) {
	if strings.TrimSpace(description) == "" {
		return nil, ErrEmptyDescription
	}

	start := time.Now()
	reply, err := a.model.Complete(ctx, BuildPrompt(description), a.maxTokens)
	metrics.UpstreamDuration.WithLabelValues("llm").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.AnalyzeTotal.WithLabelValues("upstream_error").Inc()
		a.logger.Error("language model call failed", "error", err)
		return nil, &UpstreamError{Err: err}
	}

	plan, err := a.parse(reply)
	if err != nil {
		metrics.AnalyzeTotal.WithLabelValues("parse_error").Inc()
		a.logger.Error("failed to parse outfit plan", "error", err, "reply", reply)
		return nil, err
	}

	metrics.AnalyzeTotal.WithLabelValues("success").Inc()
	a.logger.Info("outfit analyzed",
		"categories", len(plan.Categories),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return plan, nil
}

// parse strips code fences, validates the reply against the plan schema and decodes it
func (a *Analyzer) parse(reply string) (*models.OutfitPlan, error) {
	doc := []byte(StripCodeFences(reply))

	if err := a.validator.Validate(doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPlan, err)
	}

	var plan models.OutfitPlan
	if err := json.Unmarshal(doc, &plan); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPlan, err)
	}

	plan.Summary = strings.TrimSpace(plan.Summary)
	for i := range plan.Categories {
		c := &plan.Categories[i]
		c.Name = strings.TrimSpace(c.Name)
		c.Icon = strings.TrimSpace(c.Icon)
		c.SearchQuery = strings.TrimSpace(c.SearchQuery)
		c.PriceRange = strings.TrimSpace(c.PriceRange)
		if c.Name == "" || c.SearchQuery == "" {
			return nil, fmt.Errorf("%w: category %d has a blank name or search query", ErrInvalidPlan, i+1)
		}
	}

	return &plan, nil
}

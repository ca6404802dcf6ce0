package service

import (
	"context"

	"github.com/Lixing-Zhang/outfit-finder/internal/models"
)

// OutfitAnalyzer turns a free-text description into an outfit plan
type OutfitAnalyzer interface {
	Analyze(ctx context.Context, description string) (*models.OutfitPlan, error)
}

// ProductSearcher finds products for each category of a plan
type ProductSearcher interface {
	Search(ctx context.Context, categories []models.Category) *models.SearchResults
}

// Outfit is a plan together with the products found for it
type Outfit struct {
	Plan    *models.OutfitPlan
	Results *models.SearchResults
}

// OutfitService runs the describe, analyze and search pipeline
type OutfitService struct {
	analyzer OutfitAnalyzer
	searcher ProductSearcher
}

// NewOutfitService creates a new outfit service
func NewOutfitService(analyzer OutfitAnalyzer, searcher ProductSearcher) *OutfitService {
	return &OutfitService{
		analyzer: analyzer,
		searcher: searcher,
	}
}

// Analyze returns the outfit plan for a description
func (s *OutfitService) Analyze(ctx context.Context, description string) (*models.OutfitPlan, error) {
	return s.analyzer.Analyze(ctx, description)
}

// Search returns products for the given categories
func (s *OutfitService) Search(ctx context.Context, categories []models.Category) *models.SearchResults {
	return s.searcher.Search(ctx, categories)
}

// FindOutfit analyzes the description and searches every category of the plan.
// Analyzer errors are returned unchanged so callers can match them with errors.Is/As.
func (s *OutfitService) FindOutfit(ctx context.Context, description string) (*Outfit, error) {
	plan, err := s.analyzer.Analyze(ctx, description)
	if err != nil {
		return nil, err
	}

	return &Outfit{
		Plan:    plan,
		Results: s.searcher.Search(ctx, plan.Categories),
	}, nil
}

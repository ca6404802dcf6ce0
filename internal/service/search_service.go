package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/Lixing-Zhang/outfit-finder/internal/metrics"
	"github.com/Lixing-Zhang/outfit-finder/internal/models"
	"github.com/Lixing-Zhang/outfit-finder/internal/repository"
	"golang.org/x/sync/errgroup"
)

// LiveRepository is a product repository that may lack its credential
type LiveRepository interface {
	repository.ProductRepository
	Configured() bool
}

// liveOutcome carries the result of one live search attempt
type liveOutcome struct {
	products []models.Product
	err      error
}

// SearchService finds products for every category of an outfit plan
type SearchService struct {
	live        LiveRepository
	fallback    repository.ProductRepository
	concurrency int
	logger      *slog.Logger
}

// NewSearchService creates a new search service. live may be nil, in which case
// every category is served by the fallback repository. A concurrency below 1 searches
// categories one at a time.
func NewSearchService(live LiveRepository, fallback repository.ProductRepository, concurrency int, logger *slog.Logger) *SearchService {
	if concurrency < 1 {
		concurrency = 1
	}
	return &SearchService{
		live:        live,
		fallback:    fallback,
		concurrency: concurrency,
		logger:      logger,
	}
}

// Search returns products keyed by category name in input order.
// It never fails: a category whose live search fails is filled with mock products.
func (s *SearchService) Search(ctx context.Context, categories []models.Category) *models.SearchResults {
	slots := make([]models.CategoryResult, len(categories))

	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for i, category := range categories {
		g.Go(func() error {
			slots[i] = s.searchCategory(ctx, category)
			return nil
		})
	}
	_ = g.Wait()

	results := models.NewSearchResults()
	for _, result := range slots {
		results.Set(result)
	}
	return results
}

func (s *SearchService) searchCategory(ctx context.Context, category models.Category) models.CategoryResult {
	outcome := s.searchLive(ctx, category)
	if outcome.err == nil {
		metrics.SearchCategories.WithLabelValues("live").Inc()
		return models.CategoryResult{Category: category, Products: outcome.products}
	}

	if errors.Is(outcome.err, repository.ErrSearchNotConfigured) {
		metrics.SearchCategories.WithLabelValues("mock").Inc()
	} else {
		metrics.SearchCategories.WithLabelValues("fallback").Inc()
		s.logger.Warn("live search failed, using mock products",
			"category", category.Name,
			"error", outcome.err,
		)
	}

	products, err := s.fallback.Search(ctx, category)
	if err != nil {
		s.logger.Error("fallback search failed", "category", category.Name, "error", err)
		products = []models.Product{}
	}
	return models.CategoryResult{Category: category, Products: products}
}

func (s *SearchService) searchLive(ctx context.Context, category models.Category) liveOutcome {
	if s.live == nil || !s.live.Configured() {
		return liveOutcome{err: repository.ErrSearchNotConfigured}
	}
	products, err := s.live.Search(ctx, category)
	if products == nil && err == nil {
		products = []models.Product{}
	}
	return liveOutcome{products: products, err: err}
}

package handlers

import (
	"context"

	"github.com/Lixing-Zhang/outfit-finder/internal/analyzer"
	"github.com/Lixing-Zhang/outfit-finder/internal/coupon"
	"github.com/Lixing-Zhang/outfit-finder/internal/mock"
	"github.com/Lixing-Zhang/outfit-finder/internal/repository"
	"github.com/Lixing-Zhang/outfit-finder/internal/service"
	"github.com/Lixing-Zhang/outfit-finder/pkg/logger"
)

// stubCompleter implements llm.Completer for testing
type stubCompleter struct {
	reply string
	err   error
	calls int
}

func (s *stubCompleter) Complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	s.calls++
	return s.reply, s.err
}

const summerPlan = `{
  "summary": "A breezy, feminine summer look",
  "categories": [
    {"name": "Dress", "icon": "👗", "searchQuery": "floral midi sundress", "priceRange": "$40-$90"},
    {"name": "Shoes", "icon": "👡", "searchQuery": "tan strappy flat sandals", "priceRange": "$30-$70"},
    {"name": "Bag", "icon": "👜", "searchQuery": "woven straw crossbody bag", "priceRange": "$25-$60"}
  ]
}`

// newTestOutfitService wires the real pipeline with a stub model and no shopping key
func newTestOutfitService(model *stubCompleter) *service.OutfitService {
	log := logger.New("error")

	a, err := analyzer.New(model, 0, log)
	if err != nil {
		panic(err)
	}

	table := coupon.DefaultTable()
	live := repository.NewSerpAPIProductRepository(repository.SerpAPIConfig{}, table)
	fallback := repository.NewMockProductRepository(mock.NewGenerator(table, nil))
	search := service.NewSearchService(live, fallback, 1, log)

	return service.NewOutfitService(a, search)
}

// Package app wires configuration into the outfit finder components.
package app

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/Lixing-Zhang/outfit-finder/internal/analyzer"
	"github.com/Lixing-Zhang/outfit-finder/internal/config"
	"github.com/Lixing-Zhang/outfit-finder/internal/coupon"
	"github.com/Lixing-Zhang/outfit-finder/internal/handlers"
	"github.com/Lixing-Zhang/outfit-finder/internal/llm"
	"github.com/Lixing-Zhang/outfit-finder/internal/mock"
	"github.com/Lixing-Zhang/outfit-finder/internal/repository"
	"github.com/Lixing-Zhang/outfit-finder/internal/server"
	"github.com/Lixing-Zhang/outfit-finder/internal/service"
)

// App holds the components built from a configuration
type App struct {
	Config  *config.Config
	Coupons *coupon.Table
	Live    *repository.SerpAPIProductRepository
	Outfits *service.OutfitService
}

// New builds every component. The coupon file, when configured, is read once here.
func New(cfg *config.Config, log *slog.Logger) (*App, error) {
	coupons := coupon.DefaultTable()
	if cfg.Coupon.File != "" {
		loaded, err := coupon.LoadTable(cfg.Coupon.File)
		if err != nil {
			return nil, fmt.Errorf("failed to load coupons: %w", err)
		}
		coupons = loaded
	}

	provider := strings.ToLower(cfg.LLM.Provider)
	model, err := llm.New(llm.Options{
		Provider: provider,
		APIKey:   cfg.LLM.APIKey(),
		BaseURL:  cfg.LLM.BaseURL(),
		Model:    cfg.LLM.Model,
		Timeout:  cfg.LLM.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create language model client: %w", err)
	}

	outfitAnalyzer, err := analyzer.New(model, cfg.LLM.MaxTokens, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create analyzer: %w", err)
	}

	live := repository.NewSerpAPIProductRepository(repository.SerpAPIConfig{
		BaseURL:   cfg.Search.SerpAPIURL,
		APIKey:    cfg.Search.SerpAPIKey,
		Timeout:   cfg.Search.Timeout,
		RateLimit: cfg.Search.RateLimit,
	}, coupons)
	fallback := repository.NewMockProductRepository(mock.NewGenerator(coupons, nil))
	search := service.NewSearchService(live, fallback, cfg.Search.Concurrency, log)

	stats := coupons.GetStats()
	log.Info("components initialized",
		"llm_provider", provider,
		"live_search", live.Configured(),
		"search_concurrency", cfg.Search.Concurrency,
		"coupon_retailers", stats["total_retailers"],
	)

	return &App{
		Config:  cfg,
		Coupons: coupons,
		Live:    live,
		Outfits: service.NewOutfitService(outfitAnalyzer, search),
	}, nil
}

// Handlers builds the HTTP handlers for the router
func (a *App) Handlers(log *slog.Logger) server.Handlers {
	return server.Handlers{
		Analyze: handlers.NewAnalyzeHandler(a.Outfits, log),
		Search:  handlers.NewSearchHandler(a.Outfits, log),
		Coupon:  handlers.NewCouponHandler(a.Coupons, log),
		Health:  handlers.NewHealthHandler(log, strings.ToLower(a.Config.LLM.Provider), a.Live.Configured()),
		Page:    handlers.NewPageHandler(a.Outfits, log),
	}
}

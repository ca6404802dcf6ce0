// Package server assembles the HTTP routes of the outfit finder.
package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/Lixing-Zhang/outfit-finder/internal/handlers"
	"github.com/Lixing-Zhang/outfit-finder/internal/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handlers groups the endpoint handlers served by the router
type Handlers struct {
	Analyze *handlers.AnalyzeHandler
	Search  *handlers.SearchHandler
	Coupon  *handlers.CouponHandler
	Health  *handlers.HealthHandler
	Page    *handlers.PageHandler
}

// NewRouter creates the chi router with middleware and all routes
func NewRouter(h Handlers, log *slog.Logger, requestTimeout time.Duration) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(log))
	r.Use(chimiddleware.Recoverer)
	if requestTimeout > 0 {
		r.Use(chimiddleware.Timeout(requestTimeout))
	}

	// Preflights pass through so the API answers them with an empty 200
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:     []string{"*"},
		AllowedMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:     []string{"Content-Type"},
		ExposedHeaders:     []string{middleware.RequestIDHeader},
		AllowCredentials:   false,
		OptionsPassthrough: true,
		MaxAge:             300,
	}))

	// must be set before sub-routers are mounted so they inherit them
	r.NotFound(handlers.NotFound(log))
	r.MethodNotAllowed(handlers.MethodNotAllowed(log))

	r.Get("/health", h.Health.ServeHTTP)
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	r.Get("/", h.Page.Show)
	r.Post("/", h.Page.Submit)

	r.Route("/api", func(r chi.Router) {
		r.Post("/analyze", h.Analyze.Analyze)
		r.Options("/analyze", handlers.Options)

		r.Post("/search", h.Search.Search)
		r.Options("/search", handlers.Options)

		r.Get("/coupon/stats", h.Coupon.GetStats)
		r.Get("/coupon/{retailer}", h.Coupon.LookupCoupon)
	})

	return r
}

package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"time"

	"github.com/Lixing-Zhang/outfit-finder/internal/metrics"
	"github.com/Lixing-Zhang/outfit-finder/internal/models"
	"golang.org/x/time/rate"
)

const (
	// DefaultSerpAPIURL is the SerpAPI search endpoint
	DefaultSerpAPIURL = "https://serpapi.com/search.json"

	// MaxLiveProducts is the number of live results kept per category
	MaxLiveProducts = 4

	requestedResults = 6
	defaultSource    = "Shop"
)

var (
	nonNumeric     = regexp.MustCompile(`[^0-9.]`)
	leadingDecimal = regexp.MustCompile(`^[0-9]*\.?[0-9]*`)
)

// CouponLookup resolves a retailer to its coupon
type CouponLookup interface {
	Lookup(retailer string) *models.Coupon
}

// SerpAPIConfig configures the Google Shopping search through SerpAPI
type SerpAPIConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
	// RateLimit is the maximum number of requests per second; 0 disables throttling
	RateLimit float64
}

// SerpAPIProductRepository searches Google Shopping through SerpAPI
type SerpAPIProductRepository struct {
	baseURL string
	apiKey  string
	client  *http.Client
	limiter *rate.Limiter
	coupons CouponLookup
}

// NewSerpAPIProductRepository creates a live product repository
func NewSerpAPIProductRepository(cfg SerpAPIConfig, coupons CouponLookup) *SerpAPIProductRepository {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultSerpAPIURL
	}

	var limiter *rate.Limiter
	if cfg.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), 1)
	}

	return &SerpAPIProductRepository{
		baseURL: baseURL,
		apiKey:  cfg.APIKey,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		limiter: limiter,
		coupons: coupons,
	}
}

// Configured reports whether a search credential is present
func (r *SerpAPIProductRepository) Configured() bool {
	return r.apiKey != ""
}

// shoppingResponse is the subset of the SerpAPI google_shopping payload we use
type shoppingResponse struct {
	ShoppingResults []shoppingResult `json:"shopping_results"`
}

type shoppingResult struct {
	Title          string   `json:"title"`
	Price          string   `json:"price"`
	ExtractedPrice *float64 `json:"extracted_price"`
	OldPrice       string   `json:"old_price"`
	Thumbnail      string   `json:"thumbnail"`
	Link           string   `json:"link"`
	Source         string   `json:"source"`
	Rating         *float64 `json:"rating"`
	Reviews        *int     `json:"reviews"`
}

// Search returns up to MaxLiveProducts live products for the category
func (r *SerpAPIProductRepository) Search(ctx context.Context, category models.Category) ([]models.Product, error) {
	if !r.Configured() {
		return nil, ErrSearchNotConfigured
	}

	if r.limiter != nil {
		if err := r.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.searchURL(category.SearchQuery), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	start := time.Now()
	resp, err := r.client.Do(req)
	metrics.UpstreamDuration.WithLabelValues("serpapi").Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	var payload shoppingResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	results := payload.ShoppingResults
	if len(results) > MaxLiveProducts {
		results = results[:MaxLiveProducts]
	}

	products := make([]models.Product, 0, len(results))
	for _, item := range results {
		products = append(products, r.toProduct(item))
	}
	return products, nil
}

func (r *SerpAPIProductRepository) searchURL(query string) string {
	params := url.Values{}
	params.Set("engine", "google_shopping")
	params.Set("q", query)
	params.Set("api_key", r.apiKey)
	params.Set("num", strconv.Itoa(requestedResults))
	params.Set("gl", "us")
	return r.baseURL + "?" + params.Encode()
}

func (r *SerpAPIProductRepository) toProduct(item shoppingResult) models.Product {
	source := item.Source
	if source == "" {
		source = defaultSource
	}

	price := models.TextPrice(item.Price)
	if item.ExtractedPrice != nil && *item.ExtractedPrice != 0 {
		price = models.NumberPrice(*item.ExtractedPrice)
	}

	var coupon *models.Coupon
	if r.coupons != nil {
		coupon = r.coupons.Lookup(source)
	}

	return models.Product{
		Title:         item.Title,
		Price:         price,
		OriginalPrice: parseOldPrice(item.OldPrice),
		Image:         item.Thumbnail,
		Link:          item.Link,
		Source:        source,
		Rating:        item.Rating,
		Reviews:       item.Reviews,
		Coupon:        coupon,
	}
}

// parseOldPrice keeps digits and dots, then reads the leading decimal number.
// "$1,299.00" becomes 1299; unreadable values yield nil.
func parseOldPrice(s string) *float64 {
	if s == "" {
		return nil
	}
	digits := leadingDecimal.FindString(nonNumeric.ReplaceAllString(s, ""))
	if digits == "" || digits == "." {
		return nil
	}
	v, err := strconv.ParseFloat(digits, 64)
	if err != nil {
		return nil
	}
	return &v
}

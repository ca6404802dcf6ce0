package repository

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Lixing-Zhang/outfit-finder/internal/coupon"
	"github.com/Lixing-Zhang/outfit-finder/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const shoppingPayload = `{
  "search_metadata": {"status": "Success"},
  "shopping_results": [
    {"title": "Floral Wrap Dress", "price": "$49.99", "extracted_price": 49.99, "old_price": "$1,299.00", "thumbnail": "https://img/1.jpg", "link": "https://shop/1", "source": "Nordstrom", "rating": 4.6, "reviews": 212},
    {"title": "Linen Sundress", "price": "See site", "extracted_price": 0, "thumbnail": "https://img/2.jpg", "link": "https://shop/2", "source": "Tiny Boutique"},
    {"title": "Midi Dress", "price": "$35.00", "extracted_price": 35, "old_price": "was $50", "thumbnail": "https://img/3.jpg", "link": "https://shop/3"},
    {"title": "Maxi Dress", "extracted_price": 80, "old_price": "n/a", "thumbnail": "https://img/4.jpg", "link": "https://shop/4", "source": "nordstrom"},
    {"title": "Fifth Dress", "extracted_price": 10, "source": "Zara"},
    {"title": "Sixth Dress", "extracted_price": 12, "source": "ASOS"}
  ]
}`

var dressCategory = models.Category{
	Name:        "Dress",
	Icon:        "👗",
	SearchQuery: "floral midi sundress",
	PriceRange:  "$40-$90",
}

func newTestRepository(baseURL, key string) *SerpAPIProductRepository {
	return NewSerpAPIProductRepository(SerpAPIConfig{
		BaseURL: baseURL,
		APIKey:  key,
		Timeout: 5 * time.Second,
	}, coupon.DefaultTable())
}

func TestSerpAPIProductRepository_Search(t *testing.T) {
	var query map[string][]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		query = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(shoppingPayload))
	}))
	defer server.Close()

	repo := newTestRepository(server.URL, "test-key")
	products, err := repo.Search(context.Background(), dressCategory)
	require.NoError(t, err)

	assert.Equal(t, []string{"google_shopping"}, query["engine"])
	assert.Equal(t, []string{"floral midi sundress"}, query["q"])
	assert.Equal(t, []string{"test-key"}, query["api_key"])
	assert.Equal(t, []string{"6"}, query["num"])
	assert.Equal(t, []string{"us"}, query["gl"])

	require.Len(t, products, MaxLiveProducts)

	first := products[0]
	assert.Equal(t, "Floral Wrap Dress", first.Title)
	amount, ok := first.Price.Amount()
	require.True(t, ok)
	assert.Equal(t, 49.99, amount)
	require.NotNil(t, first.OriginalPrice)
	assert.Equal(t, 1299.0, *first.OriginalPrice)
	assert.Equal(t, "https://img/1.jpg", first.Image)
	assert.Equal(t, "https://shop/1", first.Link)
	assert.Equal(t, "Nordstrom", first.Source)
	require.NotNil(t, first.Rating)
	assert.Equal(t, 4.6, *first.Rating)
	require.NotNil(t, first.Reviews)
	assert.Equal(t, 212, *first.Reviews)
	require.NotNil(t, first.Coupon)
	assert.Equal(t, "STYLE10", first.Coupon.Code)

	// zero extracted price falls back to the display string
	second := products[1]
	_, ok = second.Price.Amount()
	assert.False(t, ok)
	assert.Equal(t, "See site", second.Price.Label())
	assert.Nil(t, second.OriginalPrice)
	assert.Nil(t, second.Coupon, "unknown retailer has no coupon")
	assert.Nil(t, second.Rating)

	third := products[2]
	assert.Equal(t, "Shop", third.Source)
	require.NotNil(t, third.OriginalPrice)
	assert.Equal(t, 50.0, *third.OriginalPrice)
	assert.Nil(t, third.Coupon)

	fourth := products[3]
	assert.Nil(t, fourth.OriginalPrice, "unparsable old price")
	assert.Nil(t, fourth.Coupon, "coupon lookup is case-sensitive")
}

func TestSerpAPIProductRepository_Search_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{name: "server error", status: http.StatusInternalServerError, body: `{"error":"boom"}`, wantErr: ErrUnexpectedStatus},
		{name: "unauthorized", status: http.StatusUnauthorized, body: `{"error":"Invalid API key"}`, wantErr: ErrUnexpectedStatus},
		{name: "malformed body", status: http.StatusOK, body: `{"shopping_results": [`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			products, err := newTestRepository(server.URL, "test-key").Search(context.Background(), dressCategory)
			require.Error(t, err)
			assert.Nil(t, products)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestSerpAPIProductRepository_Search_EmptyResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"search_metadata": {"status": "Success"}}`))
	}))
	defer server.Close()

	products, err := newTestRepository(server.URL, "test-key").Search(context.Background(), dressCategory)
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestSerpAPIProductRepository_NotConfigured(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	repo := newTestRepository(server.URL, "")
	assert.False(t, repo.Configured())

	_, err := repo.Search(context.Background(), dressCategory)
	assert.ErrorIs(t, err, ErrSearchNotConfigured)
	assert.False(t, called, "no request without a credential")
}

func TestSerpAPIProductRepository_Transport(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	_, err := newTestRepository(server.URL, "test-key").Search(context.Background(), dressCategory)
	assert.Error(t, err)
}

func TestSerpAPIProductRepository_RateLimitHonoursContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"shopping_results": []}`))
	}))
	defer server.Close()

	repo := NewSerpAPIProductRepository(SerpAPIConfig{
		BaseURL:   server.URL,
		APIKey:    "test-key",
		Timeout:   time.Second,
		RateLimit: 0.001,
	}, nil)

	_, err := repo.Search(context.Background(), dressCategory)
	require.NoError(t, err, "the first request uses the initial token")

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = repo.Search(ctx, dressCategory)
	assert.Error(t, err)
}

func TestParseOldPrice(t *testing.T) {
	tests := []struct {
		in   string
		want *float64
	}{
		{in: "", want: nil},
		{in: "$59.99", want: ptr(59.99)},
		{in: "$1,299.00", want: ptr(1299)},
		{in: "USD 40", want: ptr(40)},
		{in: "1.299.00", want: ptr(1.299)},
		{in: "free", want: nil},
		{in: ".", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parseOldPrice(tt.in))
		})
	}
}

func ptr(v float64) *float64 {
	return &v
}

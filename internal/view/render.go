package view

import (
	"fmt"
	"math"

	"github.com/Lixing-Zhang/outfit-finder/internal/models"
)

const (
	// MaxCardsPerCategory is the number of product cards shown per category
	MaxCardsPerCategory = 4

	unknownPriceLabel = "See price"
	defaultSource     = "Shop"
)

// Page is the rendered result of a search
type Page struct {
	Summary    string
	Categories []CategoryView
}

// CategoryView is one block of product cards
type CategoryView struct {
	Name       string
	Icon       string
	PriceRange string
	Cards      []CardView
}

// CardView holds the display strings of a single product card
type CardView struct {
	Title         string
	Image         string
	Link          string
	Source        string
	Price         string
	OriginalPrice string
	Discount      string
	Coupon        *models.Coupon
}

// Render builds the page for a plan summary and its search results.
// It is a pure function of its inputs.
func Render(summary string, results *models.SearchResults) Page {
	page := Page{Summary: summary}
	if results == nil {
		return page
	}

	for _, result := range results.Ordered() {
		products := result.Products
		if len(products) > MaxCardsPerCategory {
			products = products[:MaxCardsPerCategory]
		}

		cards := make([]CardView, 0, len(products))
		for _, p := range products {
			cards = append(cards, renderCard(p))
		}

		page.Categories = append(page.Categories, CategoryView{
			Name:       result.Name,
			Icon:       result.Icon,
			PriceRange: result.PriceRange,
			Cards:      cards,
		})
	}
	return page
}

func renderCard(p models.Product) CardView {
	source := p.Source
	if source == "" {
		source = defaultSource
	}

	return CardView{
		Title:         p.Title,
		Image:         p.Image,
		Link:          p.Link,
		Source:        source,
		Price:         PriceDisplay(p.Price),
		OriginalPrice: OriginalPriceDisplay(p.OriginalPrice),
		Discount:      DiscountBadge(p.Price, p.OriginalPrice),
		Coupon:        p.Coupon,
	}
}

// PriceDisplay formats numbers as dollars, keeps labels and shows "See price" otherwise
func PriceDisplay(price models.Price) string {
	if amount, ok := price.Amount(); ok {
		return fmt.Sprintf("$%.2f", amount)
	}
	if label := price.Label(); label != "" {
		return label
	}
	return unknownPriceLabel
}

// OriginalPriceDisplay returns the strikethrough price, or "" when there is none
func OriginalPriceDisplay(original *float64) string {
	if original == nil || *original == 0 {
		return ""
	}
	return fmt.Sprintf("$%.2f", *original)
}

// DiscountBadge returns e.g. "40% OFF" when both prices are numeric, or "" otherwise.
// Halves round up.
func DiscountBadge(price models.Price, original *float64) string {
	amount, ok := price.Amount()
	if !ok || amount == 0 || original == nil || *original == 0 {
		return ""
	}
	ratio := amount / *original
	percent := math.Floor((1-ratio)*100 + 0.5)
	return fmt.Sprintf("%d%% OFF", int(percent))
}

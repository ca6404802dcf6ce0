// Package mock synthesizes plausible products for a category when live shopping
// search is unavailable.
package mock

import (
	"fmt"
	"math"
	"math/rand/v2"
	"net/url"
	"strings"

	"github.com/Lixing-Zhang/outfit-finder/internal/models"
)

// ProductsPerCategory is the number of products generated for every category
const ProductsPerCategory = 4

const (
	minPrice        = 30
	priceSpread     = 100
	discountFactor  = 1.3
	defaultKeyword  = "fashion-clothing"
	imageBaseURL    = "https://source.unsplash.com/300x300/"
	shoppingBaseURL = "https://www.google.com/search"
)

// Stores are the retailers mock products are attributed to
var Stores = []string{
	"Nordstrom",
	"ASOS",
	"Zara",
	"H&M",
	"Madewell",
	"Anthropologie",
	"Urban Outfitters",
	"Free People",
}

type keyword struct {
	match string
	image string
}

// imageKeywords is ordered; the first case-insensitive substring match wins.
var imageKeywords = []keyword{
	{"Top", "fashion-shirt"},
	{"Tops", "fashion-shirt"},
	{"Blouse", "blouse-fashion"},
	{"Sweater", "sweater-fashion"},
	{"Jacket", "jacket-fashion"},
	{"Blazer", "blazer-fashion"},
	{"Bottom", "jeans-fashion"},
	{"Bottoms", "jeans-fashion"},
	{"Pants", "pants-fashion"},
	{"Jeans", "jeans-fashion"},
	{"Skirt", "skirt-fashion"},
	{"Trousers", "trousers-fashion"},
	{"Dress", "dress-fashion"},
	{"Shoes", "shoes-fashion"},
	{"Footwear", "shoes-fashion"},
	{"Heels", "heels-fashion"},
	{"Boots", "boots-fashion"},
	{"Sneakers", "sneakers-fashion"},
	{"Accessories", "fashion-accessories"},
	{"Bag", "handbag-fashion"},
	{"Jewelry", "jewelry-fashion"},
	{"Outerwear", "coat-fashion"},
	{"Coat", "coat-fashion"},
}

// CouponLookup resolves a retailer to its coupon
type CouponLookup interface {
	Lookup(retailer string) *models.Coupon
}

// Rand is the randomness the generator draws from. *rand.Rand satisfies it.
type Rand interface {
	IntN(n int) int
	Float64() float64
}

// globalRand uses the goroutine-safe top-level math/rand/v2 functions
type globalRand struct{}

func (globalRand) IntN(n int) int   { return rand.IntN(n) }
func (globalRand) Float64() float64 { return rand.Float64() }

// Generator builds mock products
type Generator struct {
	coupons CouponLookup
	rnd     Rand
}

// NewGenerator creates a generator. A nil rnd uses the global random source.
func NewGenerator(coupons CouponLookup, rnd Rand) *Generator {
	if rnd == nil {
		rnd = globalRand{}
	}
	return &Generator{
		coupons: coupons,
		rnd:     rnd,
	}
}

// Products returns exactly ProductsPerCategory mock products for the category.
// A generator built with a *rand.Rand must not be shared between goroutines.
func (g *Generator) Products(category models.Category) []models.Product {
	imageKeyword := ImageKeyword(category.Name)
	link := shoppingLink(category.SearchQuery)

	products := make([]models.Product, 0, ProductsPerCategory)
	for i := 0; i < ProductsPerCategory; i++ {
		price := g.rnd.IntN(priceSpread) + minPrice
		hasDiscount := g.rnd.Float64() > 0.5
		source := Stores[g.rnd.IntN(len(Stores))]

		var originalPrice *float64
		if hasDiscount {
			v := math.Floor(float64(price) * discountFactor)
			originalPrice = &v
		}

		products = append(products, models.Product{
			Title:         fmt.Sprintf("%s - Style %d", category.SearchQuery, i+1),
			Price:         models.NumberPrice(float64(price)),
			OriginalPrice: originalPrice,
			Image:         imageURL(imageKeyword, category.Name, i),
			Link:          link,
			Source:        source,
			Coupon:        g.lookup(source),
		})
	}

	return products
}

func (g *Generator) lookup(retailer string) *models.Coupon {
	if g.coupons == nil {
		return nil
	}
	return g.coupons.Lookup(retailer)
}

// ImageKeyword derives the placeholder image keyword for a category name
func ImageKeyword(categoryName string) string {
	name := strings.ToLower(categoryName)
	for _, k := range imageKeywords {
		if strings.Contains(name, strings.ToLower(k.match)) {
			return k.image
		}
	}
	return defaultKeyword
}

// imageURL embeds the category name and index as a signature so that
// images differ between categories and positions.
func imageURL(keyword, categoryName string, index int) string {
	sig := url.QueryEscape(fmt.Sprintf("%s%d", categoryName, index))
	return imageBaseURL + "?" + keyword + "&sig=" + sig
}

func shoppingLink(query string) string {
	params := url.Values{}
	params.Set("q", query)
	params.Set("tbm", "shop")
	return shoppingBaseURL + "?" + params.Encode()
}

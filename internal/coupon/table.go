package coupon

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Lixing-Zhang/outfit-finder/internal/models"
	"github.com/spf13/viper"
)

// defaultCoupons are the known retailer coupon codes
var defaultCoupons = map[string]models.Coupon{
	"ASOS":             {Code: "EXTRA20", Discount: "20% off"},
	"H&M":              {Code: "HMNEW15", Discount: "15% off first order"},
	"Nordstrom":        {Code: "STYLE10", Discount: "$10 off $50+"},
	"Zara":             {Code: "WELCOME10", Discount: "10% off"},
	"Madewell":         {Code: "INSIDER25", Discount: "25% off"},
	"Anthropologie":    {Code: "ANTHRO20", Discount: "20% off full price"},
	"Target":           {Code: "CIRCLE10", Discount: "10% with Target Circle"},
	"Amazon":           {Code: "FASHION15", Discount: "15% select styles"},
	"Amazon.com":       {Code: "FASHION15", Discount: "15% select styles"},
	"Revolve":          {Code: "NEWREVOLVE", Discount: "10% first order"},
	"Shopbop":          {Code: "STYLE15", Discount: "15% off"},
	"Urban Outfitters": {Code: "UONEW10", Discount: "10% off"},
	"Free People":      {Code: "FREESHIP", Discount: "Free shipping"},
	"Gap":              {Code: "GAPFRIEND", Discount: "40% off"},
	"Old Navy":         {Code: "ONMORE", Discount: "30% off"},
	"Banana Republic":  {Code: "BRCARD", Discount: "20% off"},
	"J.Crew":           {Code: "SHOPNOW", Discount: "25% off"},
	"Everlane":         {Code: "WELCOME10", Discount: "10% first order"},
	"Lululemon":        {Code: "SWEAT15", Discount: "15% off"},
	"Nike":             {Code: "SPORT20", Discount: "20% off select"},
	"Adidas":           {Code: "ADIDAS15", Discount: "15% off"},
}

// Table maps retailer display names to coupon suggestions.
// A Table is read-only once built and safe for concurrent use.
type Table struct {
	coupons map[string]models.Coupon
}

// NewTable builds a table from the given entries
func NewTable(entries map[string]models.Coupon) *Table {
	coupons := make(map[string]models.Coupon, len(entries))
	for retailer, c := range entries {
		coupons[retailer] = c
	}
	return &Table{coupons: coupons}
}

// DefaultTable returns the built-in retailer coupons
func DefaultTable() *Table {
	return NewTable(defaultCoupons)
}

// fileEntry is one coupon row in a coupon file.
// Retailers are listed as values because viper folds map keys to lower case.
type fileEntry struct {
	Retailer string `mapstructure:"retailer"`
	Code     string `mapstructure:"code"`
	Discount string `mapstructure:"discount"`
}

// LoadTable reads coupons from a YAML, JSON or TOML file and merges them over the defaults.
//
//	coupons:
//	  - retailer: Zara
//	    code: SUMMER25
//	    discount: 25% off
func LoadTable(path string) (*Table, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read coupon file: %w", err)
	}

	var file struct {
		Coupons []fileEntry `mapstructure:"coupons"`
	}
	if err := v.Unmarshal(&file); err != nil {
		return nil, fmt.Errorf("failed to decode coupon file: %w", err)
	}

	entries := make(map[string]models.Coupon, len(defaultCoupons)+len(file.Coupons))
	for retailer, c := range defaultCoupons {
		entries[retailer] = c
	}
	for i, e := range file.Coupons {
		retailer := strings.TrimSpace(e.Retailer)
		if retailer == "" || e.Code == "" {
			return nil, fmt.Errorf("coupon entry %d: retailer and code are required", i+1)
		}
		entries[retailer] = models.Coupon{Code: e.Code, Discount: e.Discount}
	}

	return NewTable(entries), nil
}

// Lookup returns the coupon for a retailer, or nil when the retailer is unknown.
// Matching is exact and case-sensitive.
func (t *Table) Lookup(retailer string) *models.Coupon {
	if t == nil {
		return nil
	}
	c, ok := t.coupons[retailer]
	if !ok {
		return nil
	}
	return &c
}

// Retailers returns the known retailer names, sorted
func (t *Table) Retailers() []string {
	names := make([]string, 0, len(t.coupons))
	for retailer := range t.coupons {
		names = append(names, retailer)
	}
	sort.Strings(names)
	return names
}

// GetStats returns statistics about the loaded coupons
func (t *Table) GetStats() map[string]interface{} {
	codes := make(map[string]struct{}, len(t.coupons))
	for _, c := range t.coupons {
		codes[c.Code] = struct{}{}
	}

	return map[string]interface{}{
		"total_retailers": len(t.coupons),
		"distinct_codes":  len(codes),
		"retailers":       t.Retailers(),
	}
}

package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Product represents a single shoppable item shown on a product card.
// Live results come from the shopping search API, mock results from the generator.
type Product struct {
	Title         string   `json:"title"`
	Price         Price    `json:"price"`
	OriginalPrice *float64 `json:"originalPrice"`
	Image         string   `json:"image"`
	Link          string   `json:"link"`
	Source        string   `json:"source"`
	Rating        *float64 `json:"rating,omitempty"`
	Reviews       *int     `json:"reviews,omitempty"`
	Coupon        *Coupon  `json:"coupon"`
}

// Coupon is a retailer discount code suggestion
type Coupon struct {
	Code     string `json:"code"`
	Discount string `json:"discount"`
}

type priceKind int

const (
	priceUnknown priceKind = iota
	priceNumber
	priceText
)

// Price is either a numeric amount or a human readable label such as "See price".
// The zero value is an unknown price and encodes as JSON null.
type Price struct {
	kind  priceKind
	value float64
	text  string
}

// NumberPrice returns a numeric price
func NumberPrice(v float64) Price {
	return Price{kind: priceNumber, value: v}
}

// TextPrice returns a display-only price. An empty label is an unknown price.
func TextPrice(s string) Price {
	if s == "" {
		return Price{}
	}
	return Price{kind: priceText, text: s}
}

// Amount returns the numeric value and whether the price is numeric.
func (p Price) Amount() (float64, bool) {
	return p.value, p.kind == priceNumber
}

// Label returns the display string for a text price.
func (p Price) Label() string {
	return p.text
}

// IsZero reports whether the price is unknown.
func (p Price) IsZero() bool {
	return p.kind == priceUnknown
}

func (p Price) MarshalJSON() ([]byte, error) {
	switch p.kind {
	case priceNumber:
		return json.Marshal(p.value)
	case priceText:
		return json.Marshal(p.text)
	default:
		return []byte("null"), nil
	}
}

func (p *Price) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*p = Price{}
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*p = TextPrice(s)
		return nil
	default:
		var v float64
		if err := json.Unmarshal(data, &v); err != nil {
			return fmt.Errorf("price must be a number or a string: %w", err)
		}
		*p = NumberPrice(v)
		return nil
	}
}

package models

import (
	"errors"

	"github.com/shopspring/decimal"
)

// ErrProductNotFound is returned when a product is not found.
var ErrProductNotFound = errors.New("product not found")

// Source tells where a product came from.
type Source string

const (
	SourceCatalog Source = "catalog"
	SourceAdmin   Source = "admin"
)

// Product represents a product in the catalog.
// Catalog products come from the static catalog source; admin products are
// created through the admin API and are the only deletable ones.
type Product struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
	Colors      []string        `json:"colors"`
	Rating      float64         `json:"rating,omitempty"`
	Description string          `json:"description,omitempty"`
	Source      Source          `json:"-"`
}

// FirstColor returns the product's first color, or "" when it has none.
func (p Product) FirstColor() string {
	if len(p.Colors) == 0 {
		return ""
	}
	return p.Colors[0]
}

type ProductFilters struct {
	Color         string
	PriceLessThan *float64
}

// Match reports whether p passes every filter that is set.
func (f ProductFilters) Match(p Product) bool {
	if f.Color != "" {
		found := false
		for _, c := range p.Colors {
			if c == f.Color {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.PriceLessThan != nil && p.Price.InexactFloat64() >= *f.PriceLessThan {
		return false
	}
	return true
}

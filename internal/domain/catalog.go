package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// UncategorizedLabel is the display fallback when a product's category
// reference does not resolve to an existing category.
const UncategorizedLabel = "Uncategorized"

// Product represents a catalog entry promoted through an affiliate link.
// Price and Rating are decimals so boundary comparisons in the filter
// pipeline stay exact.
type Product struct {
	ID            string           `json:"id"`
	Title         string           `json:"title"`
	Description   string           `json:"description"`
	Price         decimal.Decimal  `json:"price"`
	OriginalPrice *decimal.Decimal `json:"originalPrice,omitempty"`
	Image         string           `json:"image"`
	Images        []string         `json:"images"`
	CategoryID    string           `json:"categoryId,omitempty"`
	AffiliateURL  string           `json:"affiliateUrl"`
	Rating        decimal.Decimal  `json:"rating"`
	ReviewCount   int              `json:"reviewCount"`
	SKU           string           `json:"sku,omitempty"`
	IsActive      bool             `json:"isActive"`
	IsFeatured    bool             `json:"isFeatured"`
	Tags          []string         `json:"tags"`
	CreatedAt     time.Time        `json:"createdAt"`
	UpdatedAt     time.Time        `json:"updatedAt"`
}

// Clone returns a deep copy so callers can never mutate stored records.
func (p *Product) Clone() *Product {
	clone := *p
	if p.OriginalPrice != nil {
		op := *p.OriginalPrice
		clone.OriginalPrice = &op
	}
	clone.Images = append([]string(nil), p.Images...)
	clone.Tags = append([]string(nil), p.Tags...)
	return &clone
}

// Category groups products. CategoryID on Product is a weak reference:
// deleting a category neither cascades nor blocks.
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	NameAr      string `json:"nameAr"`
	Description string `json:"description,omitempty"`

	// ProductCount is derived from the product set after every product
	// mutation and is never settable from the outside. It counts inactive
	// products too.
	ProductCount int `json:"productCount"`
}

// Clone returns a copy of the category.
func (c *Category) Clone() *Category {
	clone := *c
	return &clone
}

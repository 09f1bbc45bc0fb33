package repository

import (
	"sort"
	"strings"

	"souqlink/internal/domain"

	"github.com/shopspring/decimal"
)

// SortBy selects the ordering applied after filtering.
type SortBy string

const (
	SortNewest    SortBy = "newest"
	SortPriceAsc  SortBy = "price_asc"
	SortPriceDesc SortBy = "price_desc"
	SortRating    SortBy = "rating"
	SortPopular   SortBy = "popular"
)

// ProductFilter is the set of optional constraints applied conjunctively
// to a product listing. A nil bound means "no constraint", never
// "exclude all". Price and rating bounds are inclusive and compared as
// decimals so boundary values are classified exactly.
type ProductFilter struct {
	CategoryID string
	Search     string
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
	Rating     *decimal.Decimal
	SortBy     SortBy
}

func (f ProductFilter) matches(p *domain.Product) bool {
	if f.CategoryID != "" && p.CategoryID != f.CategoryID {
		return false
	}
	if f.Search != "" && !matchesSearch(p, f.Search) {
		return false
	}
	if f.MinPrice != nil && p.Price.Cmp(*f.MinPrice) < 0 {
		return false
	}
	if f.MaxPrice != nil && p.Price.Cmp(*f.MaxPrice) > 0 {
		return false
	}
	if f.Rating != nil && p.Rating.Cmp(*f.Rating) < 0 {
		return false
	}
	return true
}

// matchesSearch reports whether the query appears as a case-insensitive
// substring of the title, the description or any tag.
func matchesSearch(p *domain.Product, query string) bool {
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(p.Title), q) {
		return true
	}
	if strings.Contains(strings.ToLower(p.Description), q) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

// sortProducts applies exactly one ordering in place. The sort is stable
// so products with equal keys keep their prior relative order, which
// keeps repeated identical requests deterministic for the UI.
func sortProducts(products []*domain.Product, sortBy SortBy) {
	switch sortBy {
	case SortPriceAsc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price.Cmp(products[j].Price) < 0
		})
	case SortPriceDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price.Cmp(products[j].Price) > 0
		})
	case SortRating:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Rating.Cmp(products[j].Rating) > 0
		})
	case SortPopular:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].ReviewCount > products[j].ReviewCount
		})
	default:
		// Newest is both the default and the fallback for an
		// unrecognized sort value.
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].CreatedAt.After(products[j].CreatedAt)
		})
	}
}

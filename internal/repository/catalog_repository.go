package repository

import (
	"context"
	"errors"
	"sync"
	"time"

	"souqlink/internal/domain"

	"github.com/shopspring/decimal"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrCategoryNotFound = errors.New("category not found")
)

// ProductPatch carries a partial product update. Nil fields are left
// untouched. ID and CreatedAt can never change.
type ProductPatch struct {
	Title         *string
	Description   *string
	Price         *decimal.Decimal
	OriginalPrice *decimal.Decimal
	Image         *string
	Images        *[]string
	CategoryID    *string
	AffiliateURL  *string
	Rating        *decimal.Decimal
	ReviewCount   *int
	SKU           *string
	IsActive      *bool
	IsFeatured    *bool
	Tags          *[]string
}

// CategoryPatch carries a partial category update. ProductCount is
// deliberately absent: it only changes through recomputation.
type CategoryPatch struct {
	Name        *string
	NameAr      *string
	Description *string
}

// CatalogRepository defines the interface for product and category data
// access. Both entity sets sit behind a single implementation because
// category product counts derive from the product set.
type CatalogRepository interface {
	ListProducts(ctx context.Context, filter ProductFilter) ([]*domain.Product, error)
	FindProductByID(ctx context.Context, id string) (*domain.Product, error)
	CreateProduct(ctx context.Context, product *domain.Product) error
	UpdateProduct(ctx context.Context, id string, patch ProductPatch) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id string) (bool, error)

	ListCategories(ctx context.Context) ([]*domain.Category, error)
	FindCategoryByID(ctx context.Context, id string) (*domain.Category, error)
	CreateCategory(ctx context.Context, category *domain.Category) error
	UpdateCategory(ctx context.Context, id string, patch CategoryPatch) (*domain.Category, error)
	DeleteCategory(ctx context.Context, id string) (bool, error)
}

// memoryCatalog is the sole in-process source of truth. A restart
// discards every mutation back to whatever the caller seeded.
type memoryCatalog struct {
	mu sync.RWMutex

	products   map[string]*domain.Product
	categories map[string]*domain.Category

	// Go maps iterate in random order, but the listing contract requires
	// equal sort keys to keep their insertion-relative order. Insertion
	// order is therefore tracked explicitly.
	productIDs  []string
	categoryIDs []string
}

// NewCatalogRepository creates an empty in-memory catalog store.
func NewCatalogRepository() CatalogRepository {
	return &memoryCatalog{
		products:   make(map[string]*domain.Product),
		categories: make(map[string]*domain.Category),
	}
}

// ListProducts returns active products matching every supplied filter
// constraint, ordered by the requested sort. An empty result is valid.
func (m *memoryCatalog) ListProducts(ctx context.Context, filter ProductFilter) ([]*domain.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	products := []*domain.Product{}
	for _, id := range m.productIDs {
		p := m.products[id]
		if !p.IsActive {
			continue
		}
		if !filter.matches(p) {
			continue
		}
		products = append(products, p.Clone())
	}

	sortProducts(products, filter.SortBy)
	return products, nil
}

// FindProductByID retrieves a product regardless of its active flag, so
// admin edit flows can reach hidden products.
func (m *memoryCatalog) FindProductByID(ctx context.Context, id string) (*domain.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	product, ok := m.products[id]
	if !ok {
		return nil, ErrProductNotFound
	}
	return product.Clone(), nil
}

// CreateProduct inserts a fully-populated product and recomputes the
// category product counts.
func (m *memoryCatalog) CreateProduct(ctx context.Context, product *domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.products[product.ID] = product.Clone()
	m.productIDs = append(m.productIDs, product.ID)
	m.recomputeProductCounts()
	return nil
}

// UpdateProduct merges the supplied fields over the existing record,
// refreshes UpdatedAt and recomputes category counts since the category
// membership may have changed.
func (m *memoryCatalog) UpdateProduct(ctx context.Context, id string, patch ProductPatch) (*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	product, ok := m.products[id]
	if !ok {
		return nil, ErrProductNotFound
	}

	if patch.Title != nil {
		product.Title = *patch.Title
	}
	if patch.Description != nil {
		product.Description = *patch.Description
	}
	if patch.Price != nil {
		product.Price = *patch.Price
	}
	if patch.OriginalPrice != nil {
		op := *patch.OriginalPrice
		product.OriginalPrice = &op
	}
	if patch.Image != nil {
		product.Image = *patch.Image
	}
	if patch.Images != nil {
		product.Images = append([]string(nil), *patch.Images...)
	}
	if patch.CategoryID != nil {
		product.CategoryID = *patch.CategoryID
	}
	if patch.AffiliateURL != nil {
		product.AffiliateURL = *patch.AffiliateURL
	}
	if patch.Rating != nil {
		product.Rating = *patch.Rating
	}
	if patch.ReviewCount != nil {
		product.ReviewCount = *patch.ReviewCount
	}
	if patch.SKU != nil {
		product.SKU = *patch.SKU
	}
	if patch.IsActive != nil {
		product.IsActive = *patch.IsActive
	}
	if patch.IsFeatured != nil {
		product.IsFeatured = *patch.IsFeatured
	}
	if patch.Tags != nil {
		product.Tags = append([]string(nil), *patch.Tags...)
	}
	product.UpdatedAt = time.Now().UTC()

	m.recomputeProductCounts()
	return product.Clone(), nil
}

// DeleteProduct removes the record if present and reports whether a
// record was actually removed. A missing id is not an error.
func (m *memoryCatalog) DeleteProduct(ctx context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.products[id]; !ok {
		return false, nil
	}

	delete(m.products, id)
	for i, pid := range m.productIDs {
		if pid == id {
			m.productIDs = append(m.productIDs[:i], m.productIDs[i+1:]...)
			break
		}
	}
	m.recomputeProductCounts()
	return true, nil
}

// ListCategories returns all categories in insertion order.
func (m *memoryCatalog) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	categories := []*domain.Category{}
	for _, id := range m.categoryIDs {
		categories = append(categories, m.categories[id].Clone())
	}
	return categories, nil
}

// FindCategoryByID retrieves a category by ID.
func (m *memoryCatalog) FindCategoryByID(ctx context.Context, id string) (*domain.Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	category, ok := m.categories[id]
	if !ok {
		return nil, ErrCategoryNotFound
	}
	return category.Clone(), nil
}

// CreateCategory inserts a category. The stored product count always
// starts at zero regardless of the input.
func (m *memoryCatalog) CreateCategory(ctx context.Context, category *domain.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := category.Clone()
	stored.ProductCount = 0
	m.categories[stored.ID] = stored
	m.categoryIDs = append(m.categoryIDs, stored.ID)
	return nil
}

// UpdateCategory merges the supplied fields over the existing record.
func (m *memoryCatalog) UpdateCategory(ctx context.Context, id string, patch CategoryPatch) (*domain.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	category, ok := m.categories[id]
	if !ok {
		return nil, ErrCategoryNotFound
	}

	if patch.Name != nil {
		category.Name = *patch.Name
	}
	if patch.NameAr != nil {
		category.NameAr = *patch.NameAr
	}
	if patch.Description != nil {
		category.Description = *patch.Description
	}
	return category.Clone(), nil
}

// DeleteCategory removes the category unconditionally. Products still
// referencing it keep their now-dangling category id; the reference is
// weak and resolution degrades at display time.
func (m *memoryCatalog) DeleteCategory(ctx context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.categories[id]; !ok {
		return false, nil
	}

	delete(m.categories, id)
	for i, cid := range m.categoryIDs {
		if cid == id {
			m.categoryIDs = append(m.categoryIDs[:i], m.categoryIDs[i+1:]...)
			break
		}
	}
	return true, nil
}

// recomputeProductCounts rebuilds every category's product count from a
// full scan of the product set. Inactive products are counted too.
// O(products) per mutation, which is acceptable at this demonstration
// scale; callers must hold the write lock.
func (m *memoryCatalog) recomputeProductCounts() {
	counts := make(map[string]int, len(m.categories))
	for _, product := range m.products {
		if product.CategoryID != "" {
			counts[product.CategoryID]++
		}
	}
	for id, category := range m.categories {
		category.ProductCount = counts[id]
	}
}

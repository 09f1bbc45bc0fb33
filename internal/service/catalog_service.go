package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"souqlink/internal/domain"
	"souqlink/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ratingMax = decimal.NewFromInt(5)

// ValidationError reports a business-rule violation on a single field.
// Handlers map it to a 400 response; it never mutates state.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// CreateProductInput is a product draft. The store assigns the id and
// both timestamps; zero-valued optional fields fall back to defaults.
type CreateProductInput struct {
	Title         string
	Description   string
	Price         decimal.Decimal
	OriginalPrice *decimal.Decimal
	Image         string
	Images        []string
	CategoryID    string
	AffiliateURL  string
	Rating        *decimal.Decimal
	ReviewCount   *int
	SKU           string
	IsActive      *bool
	IsFeatured    *bool
	Tags          []string
}

// UpdateProductInput is a partial update; nil fields stay untouched.
type UpdateProductInput struct {
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

// CreateCategoryInput is a category draft; the store assigns the id and
// the product count always starts at zero.
type CreateCategoryInput struct {
	Name        string
	NameAr      string
	Description string
}

// UpdateCategoryInput is a partial category update. There is no way to
// set the product count from here; it only changes through the
// recomputation path.
type UpdateCategoryInput struct {
	Name        *string
	NameAr      *string
	Description *string
}

// CatalogService defines the business logic over the catalog store.
type CatalogService interface {
	ListProducts(ctx context.Context, filter repository.ProductFilter) ([]*domain.Product, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	CreateProduct(ctx context.Context, input CreateProductInput) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id string, input UpdateProductInput) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id string) (bool, error)

	ListCategories(ctx context.Context) ([]*domain.Category, error)
	GetCategory(ctx context.Context, id string) (*domain.Category, error)
	CreateCategory(ctx context.Context, input CreateCategoryInput) (*domain.Category, error)
	UpdateCategory(ctx context.Context, id string, input UpdateCategoryInput) (*domain.Category, error)
	DeleteCategory(ctx context.Context, id string) (bool, error)

	CategoryLabel(ctx context.Context, categoryID string) string
}

type catalogService struct {
	repo repository.CatalogRepository
}

// NewCatalogService creates a new instance of CatalogService.
func NewCatalogService(repo repository.CatalogRepository) CatalogService {
	return &catalogService{repo: repo}
}

// ListProducts returns active products matching the filter.
func (s *catalogService) ListProducts(ctx context.Context, filter repository.ProductFilter) ([]*domain.Product, error) {
	return s.repo.ListProducts(ctx, filter)
}

// GetProduct returns the product regardless of its active flag.
func (s *catalogService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.FindProductByID(ctx, id)
}

// CreateProduct validates the draft, fills defaults, assigns a fresh id
// and timestamps and stores the product.
func (s *catalogService) CreateProduct(ctx context.Context, input CreateProductInput) (*domain.Product, error) {
	if err := validatePrice("price", input.Price); err != nil {
		return nil, err
	}
	if input.OriginalPrice != nil {
		if err := validatePrice("originalPrice", *input.OriginalPrice); err != nil {
			return nil, err
		}
	}

	rating := decimal.Zero
	if input.Rating != nil {
		if err := validateRating(*input.Rating); err != nil {
			return nil, err
		}
		rating = *input.Rating
	}

	reviewCount := 0
	if input.ReviewCount != nil {
		if *input.ReviewCount < 0 {
			return nil, &ValidationError{Field: "reviewCount", Reason: "must not be negative"}
		}
		reviewCount = *input.ReviewCount
	}

	images := append([]string(nil), input.Images...)
	if len(images) == 0 && input.Image != "" {
		images = []string{input.Image}
	}

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}
	isFeatured := false
	if input.IsFeatured != nil {
		isFeatured = *input.IsFeatured
	}

	now := time.Now().UTC()
	product := &domain.Product{
		ID:            uuid.NewString(),
		Title:         input.Title,
		Description:   input.Description,
		Price:         input.Price,
		OriginalPrice: input.OriginalPrice,
		Image:         input.Image,
		Images:        images,
		CategoryID:    input.CategoryID,
		AffiliateURL:  input.AffiliateURL,
		Rating:        rating,
		ReviewCount:   reviewCount,
		SKU:           input.SKU,
		IsActive:      isActive,
		IsFeatured:    isFeatured,
		Tags:          NormalizeTags(input.Tags),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.CreateProduct(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return product, nil
}

// UpdateProduct validates the supplied fields and merges them over the
// existing record. The id and creation timestamp never change.
func (s *catalogService) UpdateProduct(ctx context.Context, id string, input UpdateProductInput) (*domain.Product, error) {
	if input.Price != nil {
		if err := validatePrice("price", *input.Price); err != nil {
			return nil, err
		}
	}
	if input.OriginalPrice != nil {
		if err := validatePrice("originalPrice", *input.OriginalPrice); err != nil {
			return nil, err
		}
	}
	if input.Rating != nil {
		if err := validateRating(*input.Rating); err != nil {
			return nil, err
		}
	}
	if input.ReviewCount != nil && *input.ReviewCount < 0 {
		return nil, &ValidationError{Field: "reviewCount", Reason: "must not be negative"}
	}

	patch := repository.ProductPatch{
		Title:         input.Title,
		Description:   input.Description,
		Price:         input.Price,
		OriginalPrice: input.OriginalPrice,
		Image:         input.Image,
		Images:        input.Images,
		CategoryID:    input.CategoryID,
		AffiliateURL:  input.AffiliateURL,
		Rating:        input.Rating,
		ReviewCount:   input.ReviewCount,
		SKU:           input.SKU,
		IsActive:      input.IsActive,
		IsFeatured:    input.IsFeatured,
	}
	if input.Tags != nil {
		tags := NormalizeTags(*input.Tags)
		patch.Tags = &tags
	}

	return s.repo.UpdateProduct(ctx, id, patch)
}

// DeleteProduct removes the product and reports whether one existed.
func (s *catalogService) DeleteProduct(ctx context.Context, id string) (bool, error) {
	return s.repo.DeleteProduct(ctx, id)
}

// ListCategories returns all categories.
func (s *catalogService) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	return s.repo.ListCategories(ctx)
}

// GetCategory returns a single category.
func (s *catalogService) GetCategory(ctx context.Context, id string) (*domain.Category, error) {
	return s.repo.FindCategoryByID(ctx, id)
}

// CreateCategory assigns a fresh id and stores the category with a zero
// product count.
func (s *catalogService) CreateCategory(ctx context.Context, input CreateCategoryInput) (*domain.Category, error) {
	category := &domain.Category{
		ID:          uuid.NewString(),
		Name:        input.Name,
		NameAr:      input.NameAr,
		Description: input.Description,
	}
	if err := s.repo.CreateCategory(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return category, nil
}

// UpdateCategory merges the supplied fields over the existing record.
func (s *catalogService) UpdateCategory(ctx context.Context, id string, input UpdateCategoryInput) (*domain.Category, error) {
	return s.repo.UpdateCategory(ctx, id, repository.CategoryPatch{
		Name:        input.Name,
		NameAr:      input.NameAr,
		Description: input.Description,
	})
}

// DeleteCategory removes the category unconditionally; referencing
// products keep their weak category id.
func (s *catalogService) DeleteCategory(ctx context.Context, id string) (bool, error) {
	return s.repo.DeleteCategory(ctx, id)
}

// CategoryLabel resolves a category reference to its display name,
// degrading to the uncategorized label when the reference is empty or
// dangling.
func (s *catalogService) CategoryLabel(ctx context.Context, categoryID string) string {
	if categoryID == "" {
		return domain.UncategorizedLabel
	}
	category, err := s.repo.FindCategoryByID(ctx, categoryID)
	if err != nil {
		return domain.UncategorizedLabel
	}
	return category.Name
}

// NormalizeTags trims every tag and drops empty entries. Tag order is
// preserved even though matching ignores it.
func NormalizeTags(tags []string) []string {
	normalized := []string{}
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag != "" {
			normalized = append(normalized, tag)
		}
	}
	return normalized
}

func validatePrice(field string, price decimal.Decimal) error {
	if price.IsNegative() {
		return &ValidationError{Field: field, Reason: "must not be negative"}
	}
	return nil
}

func validateRating(rating decimal.Decimal) error {
	if rating.IsNegative() || rating.Cmp(ratingMax) > 0 {
		return &ValidationError{Field: "rating", Reason: "must be between 0.0 and 5.0"}
	}
	return nil
}

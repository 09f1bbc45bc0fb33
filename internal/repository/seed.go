package repository

import (
	"context"
	"fmt"
	"time"

	"souqlink/internal/domain"

	"github.com/shopspring/decimal"
)

func mustDecimal(value string) decimal.Decimal {
	d, err := decimal.NewFromString(value)
	if err != nil {
		panic(err)
	}
	return d
}

func decimalPtr(value string) *decimal.Decimal {
	d := mustDecimal(value)
	return &d
}

// SeedCategories returns the fixed category set the storefront starts
// from on every boot.
func SeedCategories() []*domain.Category {
	return []*domain.Category{
		{ID: "cat-1", Name: "Electronics", NameAr: "الإلكترونيات", Description: "Electronic devices and accessories"},
		{ID: "cat-2", Name: "Fashion", NameAr: "الأزياء", Description: "Clothing and fashion accessories"},
		{ID: "cat-3", Name: "Home & Garden", NameAr: "المنزل والحديقة", Description: "Home and garden products"},
		{ID: "cat-4", Name: "Sports", NameAr: "الرياضة", Description: "Sports and fitness equipment"},
		{ID: "cat-5", Name: "Books", NameAr: "الكتب", Description: "Books and educational materials"},
	}
}

// SeedProducts returns the fixed product set. All products share one
// creation instant; the stable newest sort then falls back to insertion
// order, matching the order below.
func SeedProducts() []*domain.Product {
	now := time.Now().UTC()
	return []*domain.Product{
		{
			ID:            "prod-1",
			Title:         "iPhone 15 Pro Max 256GB",
			Description:   "أحدث إصدار من آيفون مع كاميرا عالية الدقة وأداء استثنائي",
			Price:         mustDecimal("45999.00"),
			OriginalPrice: decimalPtr("52999.00"),
			Image:         "https://images.unsplash.com/photo-1511707171634-5f897ff02aa9?ixlib=rb-4.0.3&auto=format&fit=crop&w=400&h=300",
			Images:        []string{"https://images.unsplash.com/photo-1511707171634-5f897ff02aa9?ixlib=rb-4.0.3&auto=format&fit=crop&w=400&h=300"},
			CategoryID:    "cat-1",
			AffiliateURL:  "https://example.com/iphone15pro",
			Rating:        mustDecimal("4.8"),
			ReviewCount:   127,
			SKU:           "IP15PM256",
			IsActive:      true,
			IsFeatured:    true,
			Tags:          []string{"جديد", "آيفون", "هاتف ذكي"},
			CreatedAt:     now,
			UpdatedAt:     now,
		},
		{
			ID:            "prod-2",
			Title:         "سماعة ألعاب لاسلكية RGB",
			Description:   "سماعة ألعاب احترافية مع إضاءة RGB وجودة صوت عالية",
			Price:         mustDecimal("2499.00"),
			OriginalPrice: decimalPtr("3999.00"),
			Image:         "https://images.unsplash.com/photo-1599669454699-248893623440?ixlib=rb-4.0.3&auto=format&fit=crop&w=400&h=300",
			Images:        []string{"https://images.unsplash.com/photo-1599669454699-248893623440?ixlib=rb-4.0.3&auto=format&fit=crop&w=400&h=300"},
			CategoryID:    "cat-1",
			AffiliateURL:  "https://example.com/gaming-headset",
			Rating:        mustDecimal("4.3"),
			ReviewCount:   89,
			SKU:           "GH-RGB-001",
			IsActive:      true,
			Tags:          []string{"ألعاب", "سماعة", "RGB"},
			CreatedAt:     now,
			UpdatedAt:     now,
		},
		{
			ID:           "prod-3",
			Title:        "لوحة مفاتيح ميكانيكية RGB",
			Description:  "لوحة مفاتيح ميكانيكية للألعاب مع إضاءة RGB قابلة للتخصيص",
			Price:        mustDecimal("3799.00"),
			Image:        "https://images.unsplash.com/photo-1541140532154-b024d705b90a?ixlib=rb-4.0.3&auto=format&fit=crop&w=400&h=300",
			Images:       []string{"https://images.unsplash.com/photo-1541140532154-b024d705b90a?ixlib=rb-4.0.3&auto=format&fit=crop&w=400&h=300"},
			CategoryID:   "cat-1",
			AffiliateURL: "https://example.com/mechanical-keyboard",
			Rating:       mustDecimal("4.6"),
			ReviewCount:  203,
			SKU:          "MK-RGB-001",
			IsActive:     true,
			Tags:         []string{"ألعاب", "لوحة مفاتيح", "ميكانيكية"},
			CreatedAt:    now,
			UpdatedAt:    now,
		},
		{
			ID:            "prod-4",
			Title:         "سماعات أذن لاسلكية AirPods Pro",
			Description:   "سماعات أذن لاسلكية مع إلغاء الضوضاء النشط وجودة صوت فائقة",
			Price:         mustDecimal("8999.00"),
			OriginalPrice: decimalPtr("9999.00"),
			Image:         "https://images.unsplash.com/photo-1572569511254-d8f925fe2cbb?ixlib=rb-4.0.3&auto=format&fit=crop&w=400&h=300",
			Images:        []string{"https://images.unsplash.com/photo-1572569511254-d8f925fe2cbb?ixlib=rb-4.0.3&auto=format&fit=crop&w=400&h=300"},
			CategoryID:    "cat-1",
			AffiliateURL:  "https://example.com/airpods-pro",
			Rating:        mustDecimal("4.9"),
			ReviewCount:   1456,
			SKU:           "APP-001",
			IsActive:      true,
			IsFeatured:    true,
			Tags:          []string{"سماعات", "لاسلكية", "آبل"},
			CreatedAt:     now,
			UpdatedAt:     now,
		},
	}
}

// LoadSeed populates an empty catalog with the fixed seed set. Category
// counts come out of the regular recomputation path.
func LoadSeed(ctx context.Context, repo CatalogRepository) error {
	for _, category := range SeedCategories() {
		if err := repo.CreateCategory(ctx, category); err != nil {
			return fmt.Errorf("failed to seed category %s: %w", category.ID, err)
		}
	}
	for _, product := range SeedProducts() {
		if err := repo.CreateProduct(ctx, product); err != nil {
			return fmt.Errorf("failed to seed product %s: %w", product.ID, err)
		}
	}
	return nil
}

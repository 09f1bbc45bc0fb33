package transport

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"souqlink/internal/domain"
	"souqlink/internal/middleware"
	"souqlink/internal/repository"
	"souqlink/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// TagList accepts either a JSON array of strings or a single
// comma-joined string, which is how the admin form submits tags.
type TagList []string

// UnmarshalJSON implements the dual decoding. Entries are trimmed and
// empties dropped downstream by the service.
func (t *TagList) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*t = list
		return nil
	}

	var joined string
	if err := json.Unmarshal(data, &joined); err != nil {
		return fmt.Errorf("tags must be an array of strings or a comma-joined string")
	}
	*t = strings.Split(joined, ",")
	return nil
}

// CreateProductRequest represents the product creation payload.
type CreateProductRequest struct {
	Title         string           `json:"title" validate:"required"`
	Description   string           `json:"description" validate:"required"`
	Price         *decimal.Decimal `json:"price" validate:"required"`
	OriginalPrice *decimal.Decimal `json:"originalPrice"`
	Image         string           `json:"image" validate:"required,url"`
	Images        []string         `json:"images"`
	CategoryID    string           `json:"categoryId"`
	AffiliateURL  string           `json:"affiliateUrl" validate:"required,url"`
	Rating        *decimal.Decimal `json:"rating"`
	ReviewCount   *int             `json:"reviewCount"`
	SKU           string           `json:"sku"`
	IsActive      *bool            `json:"isActive"`
	IsFeatured    *bool            `json:"isFeatured"`
	Tags          TagList          `json:"tags"`
}

// UpdateProductRequest represents a partial product update payload.
// Absent fields leave the stored record untouched.
type UpdateProductRequest struct {
	Title         *string          `json:"title"`
	Description   *string          `json:"description"`
	Price         *decimal.Decimal `json:"price"`
	OriginalPrice *decimal.Decimal `json:"originalPrice"`
	Image         *string          `json:"image" validate:"omitempty,url"`
	Images        *[]string        `json:"images"`
	CategoryID    *string          `json:"categoryId"`
	AffiliateURL  *string          `json:"affiliateUrl" validate:"omitempty,url"`
	Rating        *decimal.Decimal `json:"rating"`
	ReviewCount   *int             `json:"reviewCount"`
	SKU           *string          `json:"sku"`
	IsActive      *bool            `json:"isActive"`
	IsFeatured    *bool            `json:"isFeatured"`
	Tags          *TagList         `json:"tags"`
}

// ProductListResponse wraps the ordered product sequence.
type ProductListResponse struct {
	Data []*domain.Product `json:"data"`
}

// ProductDetailResponse is a single product enriched with the resolved
// category display name, falling back to "Uncategorized" for dangling
// references.
type ProductDetailResponse struct {
	*domain.Product
	CategoryName string `json:"categoryName"`
}

// ProductHandler handles HTTP requests for catalog products.
type ProductHandler struct {
	catalog service.CatalogService
	logger  *zap.Logger
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(catalog service.CatalogService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		catalog: catalog,
		logger:  logger,
	}
}

// RegisterRoutes registers product routes. Reads are public; mutations
// require an authenticated admin.
func (h *ProductHandler) RegisterRoutes(r chi.Router, authMiddleware, adminMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.Use(adminMiddleware)
			r.Post("/", h.Create)
			r.Patch("/{id}", h.Update)
			r.Delete("/{id}", h.Delete)
		})
	})
}

// List handles GET /api/products with optional filter parameters.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, validationErrors := parseProductFilter(r)
	if len(validationErrors) > 0 {
		h.logger.Debug("Product listing rejected invalid filters",
			zap.Int("error_count", len(validationErrors)),
		)
		middleware.RespondWithValidationErrors(w, validationErrors)
		return
	}

	products, err := h.catalog.ListProducts(r.Context(), filter)
	if err != nil {
		h.logger.Error("Failed to list products", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list products")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, ProductListResponse{Data: products})
}

// Get handles GET /api/products/{id}. Inactive products are returned
// too so the admin edit flow can load them.
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	product, err := h.catalog.GetProduct(r.Context(), id)
	if err != nil {
		h.respondProductError(w, err)
		return
	}

	response := ProductDetailResponse{
		Product:      product,
		CategoryName: h.catalog.CategoryLabel(r.Context(), product.CategoryID),
	}
	middleware.RespondWithJSON(w, http.StatusOK, response)
}

// Create handles POST /api/products.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Product creation validation failed", zap.Error(err))
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	product, err := h.catalog.CreateProduct(r.Context(), service.CreateProductInput{
		Title:         req.Title,
		Description:   req.Description,
		Price:         *req.Price,
		OriginalPrice: req.OriginalPrice,
		Image:         req.Image,
		Images:        req.Images,
		CategoryID:    req.CategoryID,
		AffiliateURL:  req.AffiliateURL,
		Rating:        req.Rating,
		ReviewCount:   req.ReviewCount,
		SKU:           req.SKU,
		IsActive:      req.IsActive,
		IsFeatured:    req.IsFeatured,
		Tags:          req.Tags,
	})
	if err != nil {
		h.respondProductError(w, err)
		return
	}

	h.logger.Info("Product created", zap.String("product_id", product.ID))
	middleware.RespondWithJSON(w, http.StatusCreated, product)
}

// Update handles PATCH /api/products/{id}.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req UpdateProductRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Product update validation failed", zap.Error(err))
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	input := service.UpdateProductInput{
		Title:         req.Title,
		Description:   req.Description,
		Price:         req.Price,
		OriginalPrice: req.OriginalPrice,
		Image:         req.Image,
		Images:        req.Images,
		CategoryID:    req.CategoryID,
		AffiliateURL:  req.AffiliateURL,
		Rating:        req.Rating,
		ReviewCount:   req.ReviewCount,
		SKU:           req.SKU,
		IsActive:      req.IsActive,
		IsFeatured:    req.IsFeatured,
	}
	if req.Tags != nil {
		tags := []string(*req.Tags)
		input.Tags = &tags
	}

	product, err := h.catalog.UpdateProduct(r.Context(), id, input)
	if err != nil {
		h.respondProductError(w, err)
		return
	}

	h.logger.Info("Product updated", zap.String("product_id", product.ID))
	middleware.RespondWithJSON(w, http.StatusOK, product)
}

// Delete handles DELETE /api/products/{id}. Deleting an absent id is
// reported as not found without touching any state.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	removed, err := h.catalog.DeleteProduct(r.Context(), id)
	if err != nil {
		h.logger.Error("Failed to delete product", zap.Error(err), zap.String("product_id", id))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to delete product")
		return
	}
	if !removed {
		middleware.RespondWithError(w, http.StatusNotFound, "product not found")
		return
	}

	h.logger.Info("Product deleted", zap.String("product_id", id))
	w.WriteHeader(http.StatusNoContent)
}

func (h *ProductHandler) respondProductError(w http.ResponseWriter, err error) {
	var validationErr *service.ValidationError
	switch {
	case errors.Is(err, repository.ErrProductNotFound):
		middleware.RespondWithError(w, http.StatusNotFound, "product not found")
	case errors.As(err, &validationErr):
		middleware.RespondWithValidationErrors(w, []middleware.ValidationError{
			{Field: validationErr.Field, Message: validationErr.Reason},
		})
	default:
		h.logger.Error("Product operation failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "internal server error")
	}
}

// parseProductFilter extracts the recognized filter options from query
// parameters. Numeric bounds must parse as decimals.
func parseProductFilter(r *http.Request) (repository.ProductFilter, []middleware.ValidationError) {
	q := r.URL.Query()
	filter := repository.ProductFilter{
		CategoryID: q.Get("categoryId"),
		Search:     q.Get("search"),
		SortBy:     repository.SortBy(q.Get("sortBy")),
	}

	var validationErrors []middleware.ValidationError
	bounds := []struct {
		name string
		dst  **decimal.Decimal
	}{
		{"minPrice", &filter.MinPrice},
		{"maxPrice", &filter.MaxPrice},
		{"rating", &filter.Rating},
	}
	for _, bound := range bounds {
		raw := q.Get(bound.name)
		if raw == "" {
			continue
		}
		value, err := decimal.NewFromString(raw)
		if err != nil {
			validationErrors = append(validationErrors, middleware.ValidationError{
				Field:   bound.name,
				Message: "must be a decimal number",
			})
			continue
		}
		*bound.dst = &value
	}

	return filter, validationErrors
}

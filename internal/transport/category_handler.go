package transport

import (
	"errors"
	"net/http"

	"souqlink/internal/domain"
	"souqlink/internal/middleware"
	"souqlink/internal/repository"
	"souqlink/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CreateCategoryRequest represents the category creation payload. Any
// product count supplied by the client is ignored.
type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required"`
	NameAr      string `json:"nameAr" validate:"required"`
	Description string `json:"description"`
}

// UpdateCategoryRequest represents a partial category update payload.
type UpdateCategoryRequest struct {
	Name        *string `json:"name"`
	NameAr      *string `json:"nameAr"`
	Description *string `json:"description"`
}

// CategoryListResponse wraps the category sequence.
type CategoryListResponse struct {
	Data []*domain.Category `json:"data"`
}

// CategoryHandler handles HTTP requests for catalog categories.
type CategoryHandler struct {
	catalog service.CatalogService
	logger  *zap.Logger
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(catalog service.CatalogService, logger *zap.Logger) *CategoryHandler {
	return &CategoryHandler{
		catalog: catalog,
		logger:  logger,
	}
}

// RegisterRoutes registers category routes. Reads are public; mutations
// require an authenticated admin.
func (h *CategoryHandler) RegisterRoutes(r chi.Router, authMiddleware, adminMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/categories", func(r chi.Router) {
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

// List handles GET /api/categories.
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalog.ListCategories(r.Context())
	if err != nil {
		h.logger.Error("Failed to list categories", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list categories")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, CategoryListResponse{Data: categories})
}

// Get handles GET /api/categories/{id}.
func (h *CategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	category, err := h.catalog.GetCategory(r.Context(), id)
	if err != nil {
		h.respondCategoryError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, category)
}

// Create handles POST /api/categories.
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateCategoryRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Category creation validation failed", zap.Error(err))
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	category, err := h.catalog.CreateCategory(r.Context(), service.CreateCategoryInput{
		Name:        req.Name,
		NameAr:      req.NameAr,
		Description: req.Description,
	})
	if err != nil {
		h.respondCategoryError(w, err)
		return
	}

	h.logger.Info("Category created", zap.String("category_id", category.ID))
	middleware.RespondWithJSON(w, http.StatusCreated, category)
}

// Update handles PATCH /api/categories/{id}.
func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req UpdateCategoryRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Category update validation failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	category, err := h.catalog.UpdateCategory(r.Context(), id, service.UpdateCategoryInput{
		Name:        req.Name,
		NameAr:      req.NameAr,
		Description: req.Description,
	})
	if err != nil {
		h.respondCategoryError(w, err)
		return
	}

	h.logger.Info("Category updated", zap.String("category_id", category.ID))
	middleware.RespondWithJSON(w, http.StatusOK, category)
}

// Delete handles DELETE /api/categories/{id}. Deletion is unconditional
// and never cascades to referencing products.
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	removed, err := h.catalog.DeleteCategory(r.Context(), id)
	if err != nil {
		h.logger.Error("Failed to delete category", zap.Error(err), zap.String("category_id", id))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to delete category")
		return
	}
	if !removed {
		middleware.RespondWithError(w, http.StatusNotFound, "category not found")
		return
	}

	h.logger.Info("Category deleted", zap.String("category_id", id))
	w.WriteHeader(http.StatusNoContent)
}

func (h *CategoryHandler) respondCategoryError(w http.ResponseWriter, err error) {
	if errors.Is(err, repository.ErrCategoryNotFound) {
		middleware.RespondWithError(w, http.StatusNotFound, "category not found")
		return
	}
	h.logger.Error("Category operation failed", zap.Error(err))
	middleware.RespondWithError(w, http.StatusInternalServerError, "internal server error")
}

package transport

import (
	"encoding/json"
	"net/http"
	"testing"

	"souqlink/internal/domain"
)

func TestListCategories(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(t, router, http.MethodGet, "/api/categories", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var response CategoryListResponse
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(response.Data) != 5 {
		t.Fatalf("Expected 5 seeded categories, got %d", len(response.Data))
	}
	if response.Data[0].ID != "cat-1" || response.Data[0].ProductCount != 4 {
		t.Errorf("Expected cat-1 first with count 4, got %s count %d", response.Data[0].ID, response.Data[0].ProductCount)
	}
}

func TestGetCategoryNotFound(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(t, router, http.MethodGet, "/api/categories/no-such-id", "", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("Expected 404, got %d", w.Code)
	}
}

func TestCreateCategoryRequiresAdmin(t *testing.T) {
	router := newTestRouter(t)

	body := map[string]interface{}{"name": "Toys", "nameAr": "ألعاب"}

	w := doRequest(t, router, http.MethodPost, "/api/categories", "", body)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 without a token, got %d", w.Code)
	}

	w = doRequest(t, router, http.MethodPost, "/api/categories", signToken(t, "customer"), body)
	if w.Code != http.StatusForbidden {
		t.Errorf("Expected 403 for a non-admin, got %d", w.Code)
	}
}

func TestCreateCategoryIgnoresSuppliedCount(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(t, router, http.MethodPost, "/api/categories", signToken(t, "admin"), map[string]interface{}{
		"name":         "Toys",
		"nameAr":       "ألعاب",
		"productCount": 42,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var category domain.Category
	if err := json.Unmarshal(w.Body.Bytes(), &category); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if category.ID == "" {
		t.Error("Expected a generated id")
	}
	if category.ProductCount != 0 {
		t.Errorf("Expected product count 0, got %d", category.ProductCount)
	}
}

func TestCreateCategoryValidatesPayload(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(t, router, http.MethodPost, "/api/categories", signToken(t, "admin"), map[string]interface{}{
		"name": "Missing Arabic name",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestUpdateCategory(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(t, router, http.MethodPatch, "/api/categories/cat-2", signToken(t, "admin"), map[string]interface{}{
		"name": "Fashion & Apparel",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var category domain.Category
	if err := json.Unmarshal(w.Body.Bytes(), &category); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if category.Name != "Fashion & Apparel" {
		t.Errorf("Expected updated name, got %q", category.Name)
	}
	if category.NameAr != "الأزياء" {
		t.Errorf("Absent fields must stay untouched, got %q", category.NameAr)
	}
}

func TestDeleteCategory(t *testing.T) {
	router := newTestRouter(t)
	admin := signToken(t, "admin")

	w := doRequest(t, router, http.MethodDelete, "/api/categories/cat-5", admin, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("Expected 204, got %d", w.Code)
	}

	w = doRequest(t, router, http.MethodDelete, "/api/categories/cat-5", admin, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("Expected 404 on repeated delete, got %d", w.Code)
	}
}

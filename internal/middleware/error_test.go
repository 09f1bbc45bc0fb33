package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestRespondWithErrorStructure(t *testing.T) {
	w := httptest.NewRecorder()
	RespondWithError(w, http.StatusNotFound, "product not found")

	if w.Code != http.StatusNotFound {
		t.Fatalf("Expected 404, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Expected application/json, got %q", ct)
	}

	var response ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if response.Error.Code != http.StatusText(http.StatusNotFound) {
		t.Errorf("Expected code %q, got %q", http.StatusText(http.StatusNotFound), response.Error.Code)
	}
	if response.Error.Message != "product not found" {
		t.Errorf("Expected message to round-trip, got %q", response.Error.Message)
	}
	if _, err := time.Parse(time.RFC3339, response.Error.Timestamp); err != nil {
		t.Errorf("Expected an RFC3339 timestamp, got %q", response.Error.Timestamp)
	}
}

func TestRespondWithValidationErrors(t *testing.T) {
	w := httptest.NewRecorder()
	RespondWithValidationErrors(w, []ValidationError{
		{Field: "price", Message: "must not be negative"},
	})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", w.Code)
	}

	var response ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if response.Error.Message != "validation failed" {
		t.Errorf("Expected validation failed, got %q", response.Error.Message)
	}
	if response.Error.Details["validation_errors"] == nil {
		t.Error("Expected validation_errors in details")
	}
}

func TestErrorHandlingMiddlewareRecoversPanics(t *testing.T) {
	handler := ErrorHandlingMiddleware(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("Expected 500 after panic, got %d", w.Code)
	}
}

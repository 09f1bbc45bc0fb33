package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type testPayload struct {
	Name string `json:"name" validate:"required"`
	Link string `json:"link" validate:"omitempty,url"`
}

func TestDecodeAndValidate(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"valid payload", `{"name":"Electronics","link":"https://example.com"}`, false},
		{"link optional", `{"name":"Electronics"}`, false},
		{"missing required field", `{"link":"https://example.com"}`, true},
		{"malformed url", `{"name":"x","link":"not a url"}`, true},
		{"malformed json", `{"name":`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			var payload testPayload
			err := DecodeAndValidate(req, &payload)
			if tt.wantErr && err == nil {
				t.Error("Expected an error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
		})
	}
}

func TestFormatValidationErrors(t *testing.T) {
	err := ValidateRequest(testPayload{Link: "not a url"})
	if err == nil {
		t.Fatal("Expected validation to fail")
	}

	formatted := FormatValidationErrors(err)
	if len(formatted) != 2 {
		t.Fatalf("Expected 2 validation errors, got %d", len(formatted))
	}

	messages := map[string]string{}
	for _, ve := range formatted {
		messages[ve.Field] = ve.Message
	}
	if messages["Name"] != "This field is required" {
		t.Errorf("Unexpected message for Name: %q", messages["Name"])
	}
	if messages["Link"] != "Invalid URL format" {
		t.Errorf("Unexpected message for Link: %q", messages["Link"])
	}
}

func TestFormatValidationErrorsNonValidatorError(t *testing.T) {
	formatted := FormatValidationErrors(http.ErrBodyNotAllowed)
	if len(formatted) != 0 {
		t.Errorf("Expected no formatted errors for a non-validator error, got %d", len(formatted))
	}
}

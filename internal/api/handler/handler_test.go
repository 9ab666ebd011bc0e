package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/scrollconnect/postpilot/internal/api/handler"
)

func TestHealthCheck(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	rec := httptest.NewRecorder()

	handler.HealthCheck(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	var response map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if response["success"] != true {
		t.Error("expected success to be true")
	}

	data, ok := response["data"].(map[string]any)
	if !ok {
		t.Fatal("expected data to be a map")
	}

	if data["status"] != "ok" {
		t.Errorf("expected status 'ok', got %v", data["status"])
	}
}

// Request validation rejects malformed bodies before any service call,
// so a nil service is safe for these cases.
func TestChatHandler_Create_InvalidBody(t *testing.T) {
	h := handler.NewChatHandler(nil, 0)

	tests := []struct {
		name string
		body string
	}{
		{"not json", "{not-json"},
		{"missing userId", `{"text": "Make a caption"}`},
		{"missing text", `{"userId": "u1"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/chats", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()

			h.Create(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
			}
		})
	}
}

func TestChatHandler_ProcessTurn_InvalidImage(t *testing.T) {
	h := handler.NewChatHandler(nil, 16)

	tests := []struct {
		name string
		body string
	}{
		{"missing mime type", `{"image": {"data": "aGVsbG8="}}`},
		{"bad base64", `{"image": {"data": "!!!not-base64!!!", "mimeType": "image/png"}}`},
		{"too large", `{"image": {"data": "aGVsbG8gd29ybGQgaGVsbG8gd29ybGQgaGVsbG8=", "mimeType": "image/png"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPut, "/api/v1/chats/abc", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()

			h.ProcessTurn(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
			}
		})
	}
}

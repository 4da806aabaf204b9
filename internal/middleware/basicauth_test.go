package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/webtriad/webtriad/internal/config"
)

func newProtectedHandler() http.Handler {
	auth := NewBasicAuth(config.BasicAuthConfig{Username: "admin", Password: "password"}, nil)
	return auth.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
}

func TestBasicAuthAcceptsValidCredentials(t *testing.T) {
	handler := newProtectedHandler()

	req := httptest.NewRequest(http.MethodGet, "/member", nil)
	req.SetBasicAuth("admin", "password")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
}

func TestBasicAuthRejectsMissingCredentials(t *testing.T) {
	handler := newProtectedHandler()

	req := httptest.NewRequest(http.MethodGet, "/member", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal body: %v", err)
	}
	if body["message"] != "Authorization failed! " {
		t.Fatalf("unexpected message: %q", body["message"])
	}
}

func TestBasicAuthRejectsWrongPassword(t *testing.T) {
	handler := newProtectedHandler()

	req := httptest.NewRequest(http.MethodGet, "/member", nil)
	req.SetBasicAuth("admin", "wrong")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

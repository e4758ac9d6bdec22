package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestNewUIHandler(t *testing.T) {
	handler := NewUIHandler()
	if handler == nil {
		t.Fatal("handler should not be nil")
	}
}

func TestUIHandler_Pages(t *testing.T) {
	handler := NewUIHandler()

	tests := []struct {
		name        string
		path        string
		serve       http.HandlerFunc
		contentType string
		marker      string
	}{
		{"index", "/", handler.Index, "text/html; charset=utf-8", "user-list"},
		{"user", "/user.html?screen_name=a", handler.User, "text/html; charset=utf-8", "tweet-list"},
		{"styles", "/styles.css", handler.Styles, "text/css; charset=utf-8", ".tweet"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			w := httptest.NewRecorder()

			tt.serve(w, req)

			if w.Code != http.StatusOK {
				t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
			}
			if ct := w.Header().Get("Content-Type"); ct != tt.contentType {
				t.Errorf("Content-Type = %q, want %q", ct, tt.contentType)
			}
			if body := w.Body.String(); !strings.Contains(body, tt.marker) {
				t.Errorf("body should contain %q", tt.marker)
			}
		})
	}
}

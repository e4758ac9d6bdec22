package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/iconidentify/xgallery/internal/domain"
)

func TestGalleryHandler_ListUsers(t *testing.T) {
	svc := newMockGalleryService()
	svc.users = []domain.UserSummary{
		{ScreenName: "a", Name: "Alice", TweetCount: 2},
		{ScreenName: "b", Name: "Bob", TweetCount: 1},
	}
	handler := NewGalleryHandler(svc, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users", nil)
	w := httptest.NewRecorder()

	handler.ListUsers(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}

	var resp UsersResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Users) != 2 || resp.Users[0].ScreenName != "a" || resp.Users[1].Name != "Bob" {
		t.Errorf("users = %+v", resp.Users)
	}
}

func TestGalleryHandler_ListUsers_EmptyIsArray(t *testing.T) {
	handler := NewGalleryHandler(newMockGalleryService(), testLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users", nil)
	w := httptest.NewRecorder()

	handler.ListUsers(w, req)

	if got := w.Body.String(); got != "{\"users\":[]}\n" {
		t.Errorf("body = %q, want an empty users array", got)
	}
}

func TestGalleryHandler_Timeline_QueryParam(t *testing.T) {
	svc := newMockGalleryService()
	svc.timelines["alice"] = []domain.TweetView{
		{RawTweet: domain.RawTweet{ScreenName: "alice", ID: "2"}, FormattedTime: "2021年1月1日 00:00", MediaURLs: []string{}},
		{RawTweet: domain.RawTweet{ScreenName: "alice", ID: "1"}, FormattedTime: "2020年1月1日 00:00", MediaURLs: []string{}},
	}
	handler := NewGalleryHandler(svc, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/timeline?screen_name=alice", nil)
	w := httptest.NewRecorder()

	handler.Timeline(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var resp TimelineResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ScreenName != "alice" {
		t.Errorf("screen_name = %q, want alice", resp.ScreenName)
	}
	if len(resp.Tweets) != 2 || resp.Tweets[0].ID != "2" {
		t.Errorf("tweets = %+v, want service order preserved", resp.Tweets)
	}
}

func TestGalleryHandler_Timeline_PathParam(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{"plain", "/api/v1/users/alice/tweets", "alice"},
		{"escaped space", "/api/v1/users/bob%20smith/tweets", "bob smith"},
		{"escaped percent decoded once", "/api/v1/users/a%2541/tweets", "a%41"},
		{"escaped slash", "/api/v1/users/a%2Fb/tweets", "a/b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newMockGalleryService()
			handler := NewGalleryHandler(svc, testLogger())

			r := chi.NewRouter()
			r.Get("/api/v1/users/{screenName}/tweets", handler.Timeline)

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != http.StatusOK {
				t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
			}
			if len(svc.requested) != 1 || svc.requested[0] != tt.want {
				t.Errorf("requested = %q, want [%q]", svc.requested, tt.want)
			}
		})
	}
}

func TestGalleryHandler_Timeline_UnknownUserIsEmpty(t *testing.T) {
	handler := NewGalleryHandler(newMockGalleryService(), testLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/timeline?screen_name=nobody", nil)
	w := httptest.NewRecorder()

	handler.Timeline(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var resp TimelineResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Tweets == nil || len(resp.Tweets) != 0 {
		t.Errorf("tweets = %v, want empty array", resp.Tweets)
	}
}

func TestGalleryHandler_Timeline_MissingSelector(t *testing.T) {
	svc := newMockGalleryService()
	handler := NewGalleryHandler(svc, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/timeline", nil)
	w := httptest.NewRecorder()

	handler.Timeline(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
	if len(svc.requested) != 0 {
		t.Error("service should not be called without a selector")
	}
}

package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/iconidentify/xgallery/internal/domain"
)

// GalleryService produces the gallery view models.
type GalleryService interface {
	Users(ctx context.Context) []domain.UserSummary
	Timeline(ctx context.Context, screenName string) []domain.TweetView
}

// GalleryHandler serves the user gallery and timeline view models as JSON.
type GalleryHandler struct {
	svc    GalleryService
	logger *slog.Logger
}

// NewGalleryHandler creates a new gallery handler.
func NewGalleryHandler(svc GalleryService, logger *slog.Logger) *GalleryHandler {
	return &GalleryHandler{
		svc:    svc,
		logger: logger,
	}
}

// UsersResponse is the JSON response for the user gallery.
type UsersResponse struct {
	Users []domain.UserSummary `json:"users"`
}

// TimelineResponse is the JSON response for a user timeline.
type TimelineResponse struct {
	ScreenName string             `json:"screen_name"`
	Tweets     []domain.TweetView `json:"tweets"`
}

// ListUsers handles GET /api/v1/users
func (h *GalleryHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users := h.svc.Users(r.Context())
	writeJSON(w, http.StatusOK, UsersResponse{Users: users})
}

// Timeline handles GET /api/v1/timeline?screen_name={screenName}
// and GET /api/v1/users/{screenName}/tweets
func (h *GalleryHandler) Timeline(w http.ResponseWriter, r *http.Request) {
	screenName := r.URL.Query().Get("screen_name")
	if screenName == "" {
		screenName = pathParam(r, "screenName")
	}
	if screenName == "" {
		writeError(w, http.StatusBadRequest, "missing screen_name")
		return
	}

	tweets := h.svc.Timeline(r.Context(), screenName)
	if len(tweets) == 0 {
		h.logger.Debug("empty timeline", "screen_name", screenName)
	}

	writeJSON(w, http.StatusOK, TimelineResponse{
		ScreenName: screenName,
		Tweets:     tweets,
	})
}

// pathParam returns the decoded chi URL parameter. chi matches against
// RawPath when the request has one, leaving that parameter still escaped.
func pathParam(r *http.Request, key string) string {
	v := chi.URLParam(r, key)
	if r.URL.RawPath == "" {
		return v
	}
	if unescaped, err := url.PathUnescape(v); err == nil {
		return unescaped
	}
	return v
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

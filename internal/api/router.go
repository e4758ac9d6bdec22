package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/iconidentify/xgallery/internal/api/handler"
	mw "github.com/iconidentify/xgallery/internal/api/middleware"
)

// NewRouter creates the HTTP router with all routes configured.
func NewRouter(
	galleryHandler *handler.GalleryHandler,
	healthHandler *handler.HealthHandler,
	uiHandler *handler.UIHandler,
	metricsHandler http.Handler,
	requestTimeout time.Duration,
) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.CleanPath) // Normalize paths (e.g., //ready -> /ready)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(mw.Logger)
	r.Use(mw.Recovery)
	if requestTimeout > 0 {
		r.Use(middleware.Timeout(requestTimeout))
	}
	r.Use(mw.CORS)

	// Health endpoints
	r.Get("/health", healthHandler.Live)
	r.Get("/ready", healthHandler.Ready)
	if metricsHandler != nil {
		r.Handle("/metrics", metricsHandler)
	}

	// Pages
	r.Get("/", uiHandler.Index)
	r.Get("/index.html", uiHandler.Index)
	r.Get("/user.html", uiHandler.User)
	r.Get("/styles.css", uiHandler.Styles)

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/stats", healthHandler.Stats)
		r.Get("/users", galleryHandler.ListUsers)
		r.Get("/users/{screenName}/tweets", galleryHandler.Timeline)
		r.Get("/timeline", galleryHandler.Timeline)
	})

	return r
}

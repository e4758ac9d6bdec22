package handler

import (
	"net/http"

	"github.com/iconidentify/xgallery/pkg/ui"
)

// UIHandler serves the embedded gallery pages.
type UIHandler struct{}

// NewUIHandler creates a new UI handler.
func NewUIHandler() *UIHandler {
	return &UIHandler{}
}

// Index serves the user gallery page.
func (h *UIHandler) Index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(ui.IndexHTML)
}

// User serves the timeline page. The page reads ?screen_name= itself.
func (h *UIHandler) User(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(ui.UserHTML)
}

// Styles serves the shared stylesheet.
func (h *UIHandler) Styles(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Write(ui.StylesCSS)
}

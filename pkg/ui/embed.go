// Package ui provides the embedded gallery pages.
//
// The pages are served by the HTTP server and written out by the static
// export. They render the JSON view models client-side; when
// window.OFFLINE_MODE is set they read the exported data/ files instead of
// calling the API.
package ui

import (
	_ "embed"
	"strings"
)

// IndexHTML is the user gallery page.
//
//go:embed index.html
var IndexHTML []byte

// UserHTML is the per-user timeline page. It reads ?screen_name= from its URL.
//
//go:embed user.html
var UserHTML []byte

// StylesCSS is the stylesheet shared by both pages.
//
//go:embed styles.css
var StylesCSS []byte

// WithOfflineMode returns page with a script setting window.OFFLINE_MODE
// injected before </head>.
func WithOfflineMode(page []byte) []byte {
	html := string(page)
	script := "<script>window.OFFLINE_MODE = true;</script>\n</head>"
	return []byte(strings.Replace(html, "</head>", script, 1))
}

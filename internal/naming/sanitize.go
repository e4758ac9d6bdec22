// Package naming turns arbitrary display names into tokens that are safe to use
// as file-name segments and URL path components.
package naming

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

var (
	unsafeChars   = regexp.MustCompile(`[/\\?%*:|"<>#&+=;,]`)
	underscoreRun = regexp.MustCompile(`_+`)
)

// Sanitize replaces characters that break file names or URLs with '_',
// collapses repeated underscores and trims surrounding whitespace and underscores.
// An empty name yields an empty string.
func Sanitize(name string) string {
	if name == "" {
		return ""
	}
	s := unsafeChars.ReplaceAllString(name, "_")
	s = underscoreRun.ReplaceAllString(s, "_")
	// Trimmed as one set so the result is a fixed point.
	return strings.TrimFunc(s, func(r rune) bool {
		return r == '_' || unicode.IsSpace(r)
	})
}

// SanitizeAny coerces v to its string form before sanitizing. nil yields "".
func SanitizeAny(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return Sanitize(x)
	case fmt.Stringer:
		return Sanitize(x.String())
	default:
		return Sanitize(fmt.Sprint(x))
	}
}

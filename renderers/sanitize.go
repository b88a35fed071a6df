package renderers

import (
	"html"
	"strings"
)

var dangerousSchemes = []string{"javascript:", "vbscript:", "file:"}

// SanitizeURL makes a URL safe for inclusion in HTML attributes. Script
// bearing schemes collapse to "#"; data: URIs are allowed only for images.
func SanitizeURL(url string) string {
	if url == "" {
		return "#"
	}
	lower := strings.ToLower(strings.TrimSpace(url))
	for _, scheme := range dangerousSchemes {
		if strings.HasPrefix(lower, scheme) {
			return "#"
		}
	}
	if strings.HasPrefix(lower, "data:") && !strings.HasPrefix(lower, "data:image/") {
		return "#"
	}
	return html.EscapeString(url)
}

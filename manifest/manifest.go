// Package manifest defines caller-supplied creative manifests and validates
// them against catalog formats.
package manifest

// Asset is one concrete asset value inside a manifest. Which fields are
// meaningful depends on the asset type the format declares for the role:
// url-bearing types (image, video, audio, url) use URL, content-bearing types
// (text, html) use Content, and vast_tag accepts exactly one of the two.
type Asset struct {
	URL      string `json:"url,omitempty"`
	Content  string `json:"content,omitempty"`
	Width    int    `json:"width,omitempty"`
	Height   int    `json:"height,omitempty"`
	Format   string `json:"format,omitempty"`
	AltText  string `json:"alt_text,omitempty"`
	Duration int    `json:"duration_seconds,omitempty"`
}

// Manifest maps asset roles to concrete values intended to satisfy one format.
type Manifest struct {
	FormatID string           `json:"format_id"`
	Assets   map[string]Asset `json:"assets"`
}

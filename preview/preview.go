// Package preview composes creative manifests into viewable HTML previews and
// orchestrates multi-item preview batches with per-item failure isolation.
package preview

import (
	"time"

	"github.com/adcontextprotocol/creative-agent/formats"
	"github.com/adcontextprotocol/creative-agent/manifest"
)

// OutputFormat selects how a rendered preview is delivered to the caller.
type OutputFormat string

const (
	// OutputHTML returns the rendered document inline in the response.
	OutputHTML OutputFormat = "html"
	// OutputURL persists the document and returns a durable public URL.
	OutputURL OutputFormat = "url"
)

// Input is one named render variant with its own macro values. A request with
// no inputs gets the default device variants.
type Input struct {
	Name   string            `json:"name"`
	Macros map[string]string `json:"macros,omitempty"`
}

// Request asks for one creative to be previewed across its input variants.
type Request struct {
	FormatID string             `json:"format_id"`
	Manifest *manifest.Manifest `json:"creative_manifest"`
	Inputs   []Input            `json:"inputs,omitempty"`
	Output   OutputFormat       `json:"output_format,omitempty"`
}

// Render is one delivered output for one (variant, role) pair. Exactly one of
// HTML and URL is populated, per the request's output mode.
type Render struct {
	RenderID   string             `json:"render_id"`
	Role       string             `json:"role"`
	HTML       string             `json:"preview_html,omitempty"`
	URL        string             `json:"preview_url,omitempty"`
	Dimensions formats.Dimensions `json:"dimensions"`
}

// Preview is the rendered output of one input variant.
type Preview struct {
	PreviewID string   `json:"preview_id"`
	Renders   []Render `json:"renders"`
	Input     Input    `json:"input"`
}

// Response is the result of a successful single preview request.
type Response struct {
	Previews       []Preview `json:"previews"`
	InteractiveURL string    `json:"interactive_url,omitempty"`
	ExpiresAt      time.Time `json:"expires_at"`
	Warnings       []string  `json:"warnings,omitempty"`
}

// ItemError is the caller-facing failure shape for one batch item.
type ItemError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// BatchItemResult is the tagged success or failure of one batch item.
// Result order always matches request order.
type BatchItemResult struct {
	Success  bool       `json:"success"`
	Response *Response  `json:"response,omitempty"`
	Error    *ItemError `json:"error,omitempty"`
}

// BatchResponse wraps the ordered per-item results of a batch request.
type BatchResponse struct {
	Results []BatchItemResult `json:"results"`
}

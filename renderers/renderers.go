// Package renderers turns manifest assets into HTML preview fragments.
//
// Each asset type has a fixed rendering strategy dispatched by tag; the set
// of asset types is closed, so a switch beats an extensible hierarchy here.
package renderers

import (
	"fmt"
	"html"

	"github.com/adcontextprotocol/creative-agent/errortypes"
	"github.com/adcontextprotocol/creative-agent/formats"
	"github.com/adcontextprotocol/creative-agent/manifest"
)

// RenderedAsset is one asset's HTML fragment plus the metadata hints derived
// while rendering it.
type RenderedAsset struct {
	Role          string
	HTML          string
	Width         int
	Height        int
	MediaType     string
	ContainsVideo bool
	ContainsAudio bool
}

// RenderAsset produces the HTML fragment for a single asset. Failures are
// typed errors naming the role; the caller decides whether a failed role
// aborts the whole composition (required) or is dropped with a warning.
func RenderAsset(role string, asset manifest.Asset, req formats.AssetRequirement) (RenderedAsset, error) {
	switch req.Type {
	case formats.AssetTypeImage:
		return renderImage(role, asset, req), nil
	case formats.AssetTypeVideo:
		return renderVideo(role, asset, req), nil
	case formats.AssetTypeAudio:
		return renderAudio(role, asset), nil
	case formats.AssetTypeText:
		return renderText(role, asset), nil
	case formats.AssetTypeHTML:
		return renderHTML(role, asset, req), nil
	case formats.AssetTypeURL:
		return renderClickURL(role, asset), nil
	case formats.AssetTypeVAST:
		return renderVAST(role, asset)
	default:
		return RenderedAsset{}, &errortypes.RenderFailed{
			Message: fmt.Sprintf("no renderer for asset type %q (role %s)", req.Type, role),
			Role:    role,
		}
	}
}

// renderImage emits an img fragment. When the requirement declares dimensions
// the fragment is sized to them; otherwise sizing is left to the consumer's
// browser, since the renderer never fetches the image.
func renderImage(role string, asset manifest.Asset, req formats.AssetRequirement) RenderedAsset {
	width, height := dimensionHint(asset, req)
	alt := asset.AltText
	if alt == "" {
		alt = role
	}

	sizeAttrs := ""
	if width > 0 && height > 0 {
		sizeAttrs = fmt.Sprintf(` width="%d" height="%d"`, width, height)
	}
	fragment := fmt.Sprintf(`<img src="%s" alt="%s"%s style="display:block;max-width:100%%;">`,
		SanitizeURL(asset.URL), html.EscapeString(alt), sizeAttrs)

	return RenderedAsset{
		Role:      role,
		HTML:      fragment,
		Width:     width,
		Height:    height,
		MediaType: "image",
	}
}

func renderVideo(role string, asset manifest.Asset, req formats.AssetRequirement) RenderedAsset {
	width, height := dimensionHint(asset, req)
	sizeAttrs := ""
	if width > 0 && height > 0 {
		sizeAttrs = fmt.Sprintf(` width="%d" height="%d"`, width, height)
	}
	fragment := fmt.Sprintf(`<video controls%s style="display:block;max-width:100%%;"><source src="%s"></video>`,
		sizeAttrs, SanitizeURL(asset.URL))

	return RenderedAsset{
		Role:          role,
		HTML:          fragment,
		Width:         width,
		Height:        height,
		MediaType:     "video",
		ContainsVideo: true,
	}
}

func renderAudio(role string, asset manifest.Asset) RenderedAsset {
	fragment := fmt.Sprintf(`<audio controls src="%s"></audio>`, SanitizeURL(asset.URL))
	return RenderedAsset{
		Role:          role,
		HTML:          fragment,
		MediaType:     "audio",
		ContainsAudio: true,
	}
}

func renderText(role string, asset manifest.Asset) RenderedAsset {
	fragment := fmt.Sprintf(`<span class="asset-%s">%s</span>`,
		html.EscapeString(role), html.EscapeString(asset.Content))
	return RenderedAsset{
		Role:      role,
		HTML:      fragment,
		MediaType: "text",
	}
}

// renderHTML passes caller HTML through wrapped in an isolation container.
// Macro substitution happened once over the whole manifest already; nothing
// is re-substituted inside nested markup.
func renderHTML(role string, asset manifest.Asset, req formats.AssetRequirement) RenderedAsset {
	width, height := 0, 0
	if req.Width > 0 && req.Height > 0 {
		width, height = req.Width, req.Height
	}
	fragment := fmt.Sprintf(`<div class="html-asset" data-role="%s">%s</div>`,
		html.EscapeString(role), asset.Content)
	return RenderedAsset{
		Role:      role,
		HTML:      fragment,
		Width:     width,
		Height:    height,
		MediaType: "html",
	}
}

func renderClickURL(role string, asset manifest.Asset) RenderedAsset {
	fragment := fmt.Sprintf(`<a class="clickthrough" data-role="%s" href="%s" target="_blank" rel="noopener"></a>`,
		html.EscapeString(role), SanitizeURL(asset.URL))
	return RenderedAsset{
		Role:      role,
		HTML:      fragment,
		MediaType: "url",
	}
}

// renderVAST emits a reference wrapper pointing at the external tag. The tag
// is never fetched or resolved here.
func renderVAST(role string, asset manifest.Asset) (RenderedAsset, error) {
	if asset.URL == "" && asset.Content == "" {
		return RenderedAsset{}, &errortypes.RenderFailed{
			Message: fmt.Sprintf("vast asset %q has neither url nor content", role),
			Role:    role,
		}
	}

	var fragment string
	if asset.URL != "" {
		fragment = fmt.Sprintf(
			`<div class="vast-placeholder" data-vast-url="%s">VAST video player loads here</div>`,
			SanitizeURL(asset.URL))
	} else {
		fragment = fmt.Sprintf(
			`<div class="vast-placeholder" data-vast-inline="true">VAST video player loads here<!-- %s --></div>`,
			html.EscapeString(asset.Content))
	}

	return RenderedAsset{
		Role:          role,
		HTML:          fragment,
		MediaType:     "video",
		ContainsVideo: true,
	}, nil
}

// dimensionHint prefers the requirement's declared size, falling back to the
// asset's own claim.
func dimensionHint(asset manifest.Asset, req formats.AssetRequirement) (int, int) {
	if req.Width > 0 && req.Height > 0 {
		return req.Width, req.Height
	}
	if asset.Width > 0 && asset.Height > 0 {
		return asset.Width, asset.Height
	}
	return 0, 0
}

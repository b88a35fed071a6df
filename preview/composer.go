package preview

import (
	"strings"
	"time"

	"github.com/adcontextprotocol/creative-agent/errortypes"
	"github.com/adcontextprotocol/creative-agent/formats"
	"github.com/adcontextprotocol/creative-agent/macros"
	"github.com/adcontextprotocol/creative-agent/manifest"
	"github.com/adcontextprotocol/creative-agent/metrics"
	"github.com/adcontextprotocol/creative-agent/renderers"
)

// Composer turns one (format, manifest, input variant) triple into rendered
// fragments plus aggregated layout hints. It holds no per-request state, so a
// single Composer is safe for concurrent use.
type Composer struct {
	catalog *formats.Catalog
	opts    manifest.ValidationOptions
	me      metrics.Engine
}

func NewComposer(catalog *formats.Catalog, opts manifest.ValidationOptions, me metrics.Engine) *Composer {
	if me == nil {
		me = &metrics.NilEngine{}
	}
	return &Composer{
		catalog: catalog,
		opts:    opts,
		me:      me,
	}
}

// ComposedRender is one render role's fragment body before document wrapping
// and output dispatch.
type ComposedRender struct {
	Role   string
	Body   string
	Width  int
	Height int
}

// Composition is the outcome of composing one input variant.
type Composition struct {
	Format           *formats.Format
	Renders          []ComposedRender
	Dimensions       formats.Dimensions
	PrimaryMediaType string
	ContainsVideo    bool
	ContainsAudio    bool
	Warnings         []error
}

// Compose validates the manifest against the named format, resolves the
// variant's macros into every asset value, renders each declared asset and
// aggregates the results into one body per declared render role.
//
// A missing format, a fatally invalid manifest, or a failed required asset
// aborts the composition with a typed error. A failed non-required asset is
// dropped and reported as a warning.
func (c *Composer) Compose(formatID string, m *manifest.Manifest, input Input) (*Composition, error) {
	start := time.Now()

	format, ok := c.catalog.Get(formatID)
	if !ok {
		return nil, &errortypes.FormatNotFound{Message: "format " + formatID + " not found"}
	}

	valErrs := manifest.Validate(format, m, c.opts)
	warnings := errortypes.WarningOnly(valErrs)
	if fatal := errortypes.FatalOnly(valErrs); len(fatal) > 0 {
		return nil, &errortypes.InvalidManifest{
			Message:          "manifest does not satisfy format " + formatID,
			ValidationErrors: fatal,
		}
	}

	provider := macros.Resolve(format, input.Macros)
	resolved := resolveAssets(provider, m.Assets)

	comp := &Composition{Format: format, Warnings: warnings}

	rendered := make(map[string]renderers.RenderedAsset, len(resolved))
	fragments := make([]string, 0, len(format.AssetsRequired))
	for _, req := range format.AssetsRequired {
		asset, present := resolved[req.AssetID]
		if !present {
			continue
		}
		ra, err := renderers.RenderAsset(req.AssetID, asset, req)
		if err != nil {
			if req.Required {
				return nil, err
			}
			comp.Warnings = append(comp.Warnings, &errortypes.Warning{
				Message:     "optional asset " + req.AssetID + " skipped: " + err.Error(),
				WarningCode: errortypes.OptionalRenderWarningCode,
			})
			continue
		}
		rendered[req.AssetID] = ra
		fragments = append(fragments, ra.HTML)
		comp.ContainsVideo = comp.ContainsVideo || ra.ContainsVideo
		comp.ContainsAudio = comp.ContainsAudio || ra.ContainsAudio
	}

	body := strings.Join(fragments, "\n")
	if format.Type == formats.FormatTypeNative {
		body = renderers.NativeBody(declaredAssets(format, resolved))
	}

	comp.Dimensions = aggregateDimensions(format, rendered)
	comp.PrimaryMediaType = primaryMediaType(format, rendered)
	comp.Renders = composeRenders(format, body, rendered, comp.Dimensions)

	c.me.RecordRenderTime(string(format.Type), time.Since(start))
	return comp, nil
}

// resolveAssets substitutes the variant's macro values into every asset's
// url and content. Manifests are never mutated.
func resolveAssets(provider *macros.Provider, assets map[string]manifest.Asset) map[string]manifest.Asset {
	out := make(map[string]manifest.Asset, len(assets))
	for role, asset := range assets {
		asset.URL = provider.Replace(asset.URL)
		asset.Content = provider.Replace(asset.Content)
		out[role] = asset
	}
	return out
}

// declaredAssets narrows the resolved map to the roles the format declares.
// Undeclared roles are tolerated by validation but must never render.
func declaredAssets(format *formats.Format, resolved map[string]manifest.Asset) map[string]manifest.Asset {
	out := make(map[string]manifest.Asset, len(format.AssetsRequired))
	for _, req := range format.AssetsRequired {
		if asset, ok := resolved[req.AssetID]; ok {
			out[req.AssetID] = asset
		}
	}
	return out
}

// aggregateDimensions prefers the format's declared primary render size.
// Responsive formats fall back to the largest rendered asset hint, which may
// legitimately be zero.
func aggregateDimensions(format *formats.Format, rendered map[string]renderers.RenderedAsset) formats.Dimensions {
	if dims, ok := format.PrimaryDimensions(); ok {
		return dims
	}
	var best formats.Dimensions
	for _, ra := range rendered {
		if ra.Width*ra.Height > best.Width*best.Height {
			best = formats.Dimensions{Width: ra.Width, Height: ra.Height}
		}
	}
	return best
}

// primaryMediaType is the media type of the first required visual asset in
// the format's declared order, falling back to the first required asset of
// any type, then to any rendered asset.
func primaryMediaType(format *formats.Format, rendered map[string]renderers.RenderedAsset) string {
	for _, req := range format.AssetsRequired {
		if !req.Required {
			continue
		}
		if ra, ok := rendered[req.AssetID]; ok && isVisual(ra.MediaType) {
			return ra.MediaType
		}
	}
	for _, req := range format.AssetsRequired {
		if !req.Required {
			continue
		}
		if ra, ok := rendered[req.AssetID]; ok {
			return ra.MediaType
		}
	}
	for _, req := range format.AssetsRequired {
		if ra, ok := rendered[req.AssetID]; ok {
			return ra.MediaType
		}
	}
	return "html"
}

func isVisual(mediaType string) bool {
	switch mediaType {
	case "image", "video", "html":
		return true
	}
	return false
}

// composeRenders produces one body per render role the format declares. The
// primary role carries the full composed body; a companion role carries the
// fragment of its like-named asset when one rendered. Formats that declare no
// renders still produce a single primary.
func composeRenders(format *formats.Format, body string, rendered map[string]renderers.RenderedAsset, dims formats.Dimensions) []ComposedRender {
	declared := format.Renders
	if len(declared) == 0 {
		declared = []formats.Render{{Role: "primary"}}
	}

	out := make([]ComposedRender, 0, len(declared))
	for _, r := range declared {
		cr := ComposedRender{Role: r.Role, Body: body, Width: dims.Width, Height: dims.Height}
		if r.Dimensions != nil {
			cr.Width = r.Dimensions.Width
			cr.Height = r.Dimensions.Height
		}
		if r.Role != "primary" {
			if ra, ok := rendered[r.Role]; ok {
				cr.Body = ra.HTML
			}
		}
		out = append(out, cr)
	}
	return out
}

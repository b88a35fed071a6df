package renderers

import (
	"fmt"
	"html"
	"strings"

	"github.com/adcontextprotocol/creative-agent/manifest"
)

// NativeBody composes the structural fragment for native formats from the
// manifest's text and image sub-fields. There is no single outer media tag;
// the layout is a card assembled from whichever well-known roles are present.
func NativeBody(assets map[string]manifest.Asset) string {
	var b strings.Builder
	b.WriteString(`<div class="native-ad">`)

	if icon, ok := firstAsset(assets, "icon", "thumbnail"); ok && icon.URL != "" {
		fmt.Fprintf(&b, `<img class="native-icon" src="%s" alt="">`, SanitizeURL(icon.URL))
	}
	if title, ok := firstAsset(assets, "title", "headline"); ok {
		fmt.Fprintf(&b, `<div class="native-title">%s</div>`, html.EscapeString(title.Content))
	}
	if sponsor, ok := firstAsset(assets, "sponsored_by", "disclosure"); ok {
		fmt.Fprintf(&b, `<div class="native-sponsor">%s</div>`, html.EscapeString(sponsor.Content))
	}
	if img, ok := firstAsset(assets, "main_image"); ok && img.URL != "" {
		fmt.Fprintf(&b, `<img class="native-image" src="%s" alt="" style="max-width:100%%;">`, SanitizeURL(img.URL))
	}
	if body, ok := firstAsset(assets, "description", "body"); ok {
		fmt.Fprintf(&b, `<div class="native-body">%s</div>`, html.EscapeString(body.Content))
	}
	if cta, ok := firstAsset(assets, "cta_text"); ok {
		href := "#"
		if click, hasClick := assets["click_url"]; hasClick {
			href = SanitizeURL(click.URL)
		}
		fmt.Fprintf(&b, `<a class="native-cta" href="%s" target="_blank" rel="noopener">%s</a>`,
			href, html.EscapeString(cta.Content))
	}

	b.WriteString(`</div>`)
	return b.String()
}

func firstAsset(assets map[string]manifest.Asset, roles ...string) (manifest.Asset, bool) {
	for _, role := range roles {
		if a, ok := assets[role]; ok {
			return a, true
		}
	}
	return manifest.Asset{}, false
}

package manifest

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/adcontextprotocol/creative-agent/errortypes"
	"github.com/adcontextprotocol/creative-agent/formats"
)

const maxDataURIBytes = 10 * 1024 * 1024

var allowedImageMIMEs = []string{
	"image/png",
	"image/jpeg",
	"image/jpg",
	"image/gif",
	"image/webp",
	"image/svg+xml",
}

var allowedImageFormats = []string{"jpg", "jpeg", "png", "gif", "webp", "svg"}

// checkAsset validates one asset's payload against the type its requirement
// declares. The requirement's type wins: the manifest never states a type of
// its own.
func checkAsset(role string, asset Asset, req formats.AssetRequirement) error {
	var problem string
	switch req.Type {
	case formats.AssetTypeImage:
		problem = checkImage(asset)
	case formats.AssetTypeVideo, formats.AssetTypeAudio:
		problem = checkMediaURL(asset, string(req.Type))
	case formats.AssetTypeText:
		problem = checkText(asset)
	case formats.AssetTypeHTML:
		problem = checkHTML(asset)
	case formats.AssetTypeURL:
		problem = checkURLValue(asset.URL)
	case formats.AssetTypeVAST:
		problem = checkVAST(asset)
	default:
		problem = fmt.Sprintf("unknown asset type %q", req.Type)
	}

	if problem == "" {
		return nil
	}
	return &errortypes.BadInput{
		Message: fmt.Sprintf("asset %q: %s", role, problem),
	}
}

func checkImage(asset Asset) string {
	if asset.URL == "" {
		return "image asset must have a url"
	}
	if strings.HasPrefix(strings.ToLower(asset.URL), "data:") {
		if problem := checkDataURI(asset.URL); problem != "" {
			return problem
		}
	} else if problem := checkURLValue(asset.URL); problem != "" {
		return problem
	}
	if asset.Width < 0 {
		return "image width must be a positive integer"
	}
	if asset.Height < 0 {
		return "image height must be a positive integer"
	}
	if asset.Format != "" && !containsFold(allowedImageFormats, asset.Format) {
		return fmt.Sprintf("image format not allowed: %s", asset.Format)
	}
	return ""
}

func checkMediaURL(asset Asset, kind string) string {
	if asset.URL == "" {
		return fmt.Sprintf("%s asset must have a url", kind)
	}
	return checkURLValue(asset.URL)
}

func checkText(asset Asset) string {
	if strings.TrimSpace(asset.Content) == "" {
		return "text content cannot be empty"
	}
	return ""
}

func checkHTML(asset Asset) string {
	content := strings.TrimSpace(asset.Content)
	if content == "" {
		return "html content cannot be empty"
	}
	lower := strings.ToLower(content)
	if !strings.Contains(lower, "<") || !strings.Contains(lower, ">") {
		return "html content must contain valid HTML tags"
	}
	isDocument := strings.Contains(lower, "<html") || strings.Contains(lower, "<!doctype html>")
	if isDocument && !strings.Contains(lower, "<body") {
		return "html document must contain <body> tag"
	}
	return ""
}

func checkVAST(asset Asset) string {
	if asset.URL == "" && asset.Content == "" {
		return "vast asset must have either url or content"
	}
	if asset.URL != "" && asset.Content != "" {
		return "vast asset must have url or content, not both"
	}
	if asset.URL != "" {
		return checkURLValue(asset.URL)
	}
	return ""
}

// checkURLValue enforces http(s) URLs and blocks script-bearing schemes so a
// manifest can never smuggle executable URLs into rendered markup.
func checkURLValue(raw string) string {
	if raw == "" {
		return "url cannot be empty"
	}
	lower := strings.ToLower(raw)
	for _, scheme := range []string{"javascript:", "vbscript:", "file:", "about:"} {
		if strings.HasPrefix(lower, scheme) {
			return fmt.Sprintf("url scheme not allowed: %s", strings.TrimSuffix(scheme, ":"))
		}
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return fmt.Sprintf("invalid url format: %v", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return "url must have scheme and host"
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Sprintf("url scheme must be http or https, got: %s", parsed.Scheme)
	}
	return ""
}

func checkDataURI(uri string) string {
	header, data, found := strings.Cut(uri, ",")
	if !found {
		return "data uri must contain comma separator"
	}
	mime := strings.TrimPrefix(strings.SplitN(header, ";", 2)[0], "data:")
	if !containsFold(allowedImageMIMEs, mime) {
		return fmt.Sprintf("data uri mime type not allowed: %s", mime)
	}
	if len(data) > maxDataURIBytes {
		return "data uri exceeds 10MB size limit"
	}
	return ""
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}

package manifest

import (
	"testing"

	"github.com/adcontextprotocol/creative-agent/errortypes"
	"github.com/adcontextprotocol/creative-agent/formats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFormat(t *testing.T, id string) *formats.Format {
	t.Helper()
	catalog, err := formats.NewCatalog(formats.StandardFormats())
	require.NoError(t, err)
	f, ok := catalog.Get(id)
	require.True(t, ok, "format %s must exist in the standard catalog", id)
	return f
}

func validDisplayManifest() *Manifest {
	return &Manifest{
		FormatID: "display_300x250_image",
		Assets: map[string]Asset{
			"banner_image": {URL: "https://cdn.example.com/banner.png", Width: 300, Height: 250},
			"click_url":    {URL: "https://example.com/landing"},
		},
	}
}

func TestValidateAccepts(t *testing.T) {
	f := testFormat(t, "display_300x250_image")
	errs := Validate(f, validDisplayManifest(), ValidationOptions{})
	assert.Empty(t, errs)
}

func TestValidateMissingRequiredAsset(t *testing.T) {
	f := testFormat(t, "display_300x250_image")
	m := validDisplayManifest()
	delete(m.Assets, "banner_image")

	errs := Validate(f, m, ValidationOptions{})
	require.Len(t, errs, 1)
	assert.EqualError(t, errs[0], "required asset missing: banner_image")
	assert.True(t, errortypes.ContainsFatalError(errs))
}

func TestValidateReportsAllErrors(t *testing.T) {
	f := testFormat(t, "native_standard")
	m := &Manifest{
		FormatID: "native_standard",
		Assets: map[string]Asset{
			"title":      {Content: "Fresh Roast Delivered"},
			"main_image": {URL: "javascript:alert(1)"},
		},
	}

	errs := Validate(f, m, ValidationOptions{})
	fatal := errortypes.FatalOnly(errs)
	// Four required roles missing plus one bad image URL.
	assert.Len(t, fatal, 5, "validation must report every problem, not just the first: %v", errs)
}

func TestValidateUnknownAssetIsWarningByDefault(t *testing.T) {
	f := testFormat(t, "display_300x250_image")
	m := validDisplayManifest()
	m.Assets["tracking_pixel"] = Asset{URL: "https://example.com/pixel.gif"}

	errs := Validate(f, m, ValidationOptions{})
	require.Len(t, errs, 1)
	assert.False(t, errortypes.ContainsFatalError(errs), "extraneous assets are tolerated by default")
	assert.Equal(t, errortypes.UnknownAssetWarningCode, errortypes.ReadCode(errs[0]))
}

func TestValidateUnknownAssetStrictMode(t *testing.T) {
	f := testFormat(t, "display_300x250_image")
	m := validDisplayManifest()
	m.Assets["tracking_pixel"] = Asset{URL: "https://example.com/pixel.gif"}

	errs := Validate(f, m, ValidationOptions{StrictUnknownAssets: true})
	require.Len(t, errs, 1)
	assert.True(t, errortypes.ContainsFatalError(errs))
}

func TestValidateTypeMismatch(t *testing.T) {
	f := testFormat(t, "display_300x250_image")
	m := validDisplayManifest()
	// The format declares click_url as a url asset; inline text doesn't satisfy it.
	m.Assets["click_url"] = Asset{Content: "not a url"}

	errs := Validate(f, m, ValidationOptions{})
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), `asset "click_url"`)
}

func TestValidateFormatIDMismatch(t *testing.T) {
	f := testFormat(t, "display_300x250_image")
	m := validDisplayManifest()
	m.FormatID = "display_728x90_image"

	errs := Validate(f, m, ValidationOptions{})
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "does not match")
}

func TestValidateNilManifest(t *testing.T) {
	f := testFormat(t, "display_300x250_image")
	errs := Validate(f, nil, ValidationOptions{})
	require.Len(t, errs, 1)
	assert.Equal(t, errortypes.InvalidManifestErrorCode, errortypes.ReadCode(errs[0]))
}

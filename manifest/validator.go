package manifest

import (
	"fmt"

	"github.com/adcontextprotocol/creative-agent/errortypes"
	"github.com/adcontextprotocol/creative-agent/formats"
)

// ValidationOptions controls how strict validation is about manifests that
// carry more than the format asks for.
type ValidationOptions struct {
	// StrictUnknownAssets turns unknown manifest roles into fatal errors
	// instead of warnings. The default accepts them for forward
	// compatibility with evolving manifests.
	StrictUnknownAssets bool
}

// Validate checks every asset in the manifest against the format's asset
// requirements and returns the complete list of problems found, fatal errors
// and warnings mixed. Callers separate them with errortypes.FatalOnly and
// WarningOnly; a manifest is usable only when no fatal error is present.
func Validate(format *formats.Format, m *Manifest, opts ValidationOptions) []error {
	var errs []error

	if m == nil {
		return []error{&errortypes.InvalidManifest{Message: "manifest is missing"}}
	}
	if m.FormatID != "" && m.FormatID != format.ID {
		errs = append(errs, &errortypes.BadInput{
			Message: fmt.Sprintf("manifest format_id %q does not match request format %q", m.FormatID, format.ID),
		})
	}

	for _, req := range format.AssetsRequired {
		asset, present := m.Assets[req.AssetID]
		if !present {
			if req.Required {
				errs = append(errs, &errortypes.BadInput{
					Message: fmt.Sprintf("required asset missing: %s", req.AssetID),
				})
			}
			continue
		}
		if err := checkAsset(req.AssetID, asset, req); err != nil {
			errs = append(errs, err)
		}
	}

	for role := range m.Assets {
		if _, declared := format.Requirement(role); declared {
			continue
		}
		msg := fmt.Sprintf("asset %q is not declared by format %s", role, format.ID)
		if opts.StrictUnknownAssets {
			errs = append(errs, &errortypes.BadInput{Message: msg})
		} else {
			errs = append(errs, &errortypes.Warning{
				Message:     msg,
				WarningCode: errortypes.UnknownAssetWarningCode,
			})
		}
	}

	return errs
}

package errortypes

// Wire-level error code strings surfaced to API callers.
const (
	WireFormatNotFound  = "format_not_found"
	WireInvalidManifest = "invalid_manifest"
	WireRenderFailed    = "render_failed"
	WireBatchTooLarge   = "batch_too_large"
	WireStorageFailed   = "storage_failed"
	WireBadInput        = "bad_input"
	WireTimeout         = "timeout"
	WireUnknown         = "unknown_error"
)

// ReadWireCode maps an error to the string code callers see in responses.
func ReadWireCode(err error) string {
	switch ReadCode(err) {
	case FormatNotFoundErrorCode:
		return WireFormatNotFound
	case InvalidManifestErrorCode:
		return WireInvalidManifest
	case RenderFailedErrorCode:
		return WireRenderFailed
	case BatchTooLargeErrorCode:
		return WireBatchTooLarge
	case StorageFailedErrorCode:
		return WireStorageFailed
	case BadInputErrorCode:
		return WireBadInput
	case TimeoutErrorCode:
		return WireTimeout
	default:
		return WireUnknown
	}
}

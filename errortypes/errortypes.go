package errortypes

// FormatNotFound should be used when a request references a format id that is
// not present in the catalog. These are caller mistakes, not server faults,
// and are never retried.
type FormatNotFound struct {
	Message string
}

func (err *FormatNotFound) Error() string {
	return err.Message
}

func (err *FormatNotFound) Code() int {
	return FormatNotFoundErrorCode
}

func (err *FormatNotFound) Severity() Severity {
	return SeverityFatal
}

// InvalidManifest should be used when a manifest fails validation against its
// format's asset requirements. It carries the full list of validator errors so
// callers can fix every problem in one pass.
type InvalidManifest struct {
	Message          string
	ValidationErrors []error
}

func (err *InvalidManifest) Error() string {
	if len(err.ValidationErrors) == 0 {
		return err.Message
	}
	return ValidationReport{Message: err.Message, Findings: err.ValidationErrors}.Error()
}

func (err *InvalidManifest) Code() int {
	return InvalidManifestErrorCode
}

func (err *InvalidManifest) Severity() Severity {
	return SeverityFatal
}

// RenderFailed should be used when a required asset could not be rendered.
// The Role field names the offending asset so callers know what to fix.
type RenderFailed struct {
	Message string
	Role    string
}

func (err *RenderFailed) Error() string {
	return err.Message
}

func (err *RenderFailed) Code() int {
	return RenderFailedErrorCode
}

func (err *RenderFailed) Severity() Severity {
	return SeverityFatal
}

// BatchTooLarge should be used when a batch request exceeds the configured
// cap. The whole batch is rejected before any item is processed.
type BatchTooLarge struct {
	Message string
}

func (err *BatchTooLarge) Error() string {
	return err.Message
}

func (err *BatchTooLarge) Code() int {
	return BatchTooLargeErrorCode
}

func (err *BatchTooLarge) Severity() Severity {
	return SeverityFatal
}

// StorageFailed should be used when the storage collaborator could not persist
// a rendered preview. Uploads use deterministic keys, so retry policy is left
// to the caller.
type StorageFailed struct {
	Message string
}

func (err *StorageFailed) Error() string {
	return err.Message
}

func (err *StorageFailed) Code() int {
	return StorageFailedErrorCode
}

func (err *StorageFailed) Severity() Severity {
	return SeverityFatal
}

// BadInput should be used when returning errors which are caused by malformed
// request bodies or parameters rather than manifest contents.
type BadInput struct {
	Message string
}

func (err *BadInput) Error() string {
	return err.Message
}

func (err *BadInput) Code() int {
	return BadInputErrorCode
}

func (err *BadInput) Severity() Severity {
	return SeverityFatal
}

// Timeout should be used to flag that the batch deadline expired before an
// item started processing.
type Timeout struct {
	Message string
}

func (err *Timeout) Error() string {
	return err.Message
}

func (err *Timeout) Code() int {
	return TimeoutErrorCode
}

func (err *Timeout) Severity() Severity {
	return SeverityFatal
}

// Warning is a generic non-fatal error.
type Warning struct {
	Message     string
	WarningCode int
}

func (err *Warning) Error() string {
	return err.Message
}

func (err *Warning) Code() int {
	return err.WarningCode
}

func (err *Warning) Severity() Severity {
	return SeverityWarning
}

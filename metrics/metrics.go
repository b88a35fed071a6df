// Package metrics records operational metrics for the preview engine.
package metrics

import (
	"time"
)

// RequestType marks which tool surface a request came through.
type RequestType string

const (
	ReqTypeListFormats RequestType = "list_formats"
	ReqTypeSingle      RequestType = "preview_single"
	ReqTypeBatch       RequestType = "preview_batch"
)

// RequestStatus is the terminal outcome of a request.
type RequestStatus string

const (
	RequestStatusOK  RequestStatus = "ok"
	RequestStatusErr RequestStatus = "err"
)

// Engine is a generic interface to record engine metrics into the desired
// backend. Request-level calls fire once per incoming request; render and
// storage calls fire once per item or upload, so they record a number of hits
// per request.
type Engine interface {
	RecordRequest(reqType RequestType, status RequestStatus)
	RecordRequestTime(reqType RequestType, length time.Duration)
	RecordRenderTime(formatType string, length time.Duration)
	RecordBatchSize(size int)
	RecordItemFailure(code string)
	RecordStorageRequestTime(success bool, length time.Duration)
}

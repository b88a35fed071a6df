package endpoints

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/buger/jsonparser"

	"github.com/adcontextprotocol/creative-agent/errortypes"
	"github.com/adcontextprotocol/creative-agent/metrics"
	"github.com/adcontextprotocol/creative-agent/preview"
)

// maxRequestBytes caps preview request bodies. Inline html assets are the
// largest legitimate payload; anything past this is abuse.
const maxRequestBytes = 16 << 20

type batchRequest struct {
	Requests []preview.Request    `json:"requests"`
	Output   preview.OutputFormat `json:"output_format,omitempty"`
}

// NewPreviewEndpoint renders creatives. A body carrying a "requests" list is
// processed as a batch with per-item failure isolation; anything else is a
// single request answered with a top-level error on failure.
func NewPreviewEndpoint(orchestrator *preview.Orchestrator, me metrics.Engine) http.HandlerFunc {
	deps := &previewDeps{orchestrator: orchestrator, me: me}
	return deps.Preview
}

type previewDeps struct {
	orchestrator *preview.Orchestrator
	me           metrics.Engine
}

func (deps *previewDeps) Preview(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBytes+1))
	if err != nil {
		writeError(w, http.StatusBadRequest, errortypes.WireBadInput, "failed to read request body")
		return
	}
	if len(body) > maxRequestBytes {
		writeError(w, http.StatusRequestEntityTooLarge, errortypes.WireBadInput, "request body too large")
		return
	}

	if _, dataType, _, _ := jsonparser.Get(body, "requests"); dataType == jsonparser.Array {
		deps.batch(w, r, body)
		return
	}
	deps.single(w, r, body)
}

func (deps *previewDeps) single(w http.ResponseWriter, r *http.Request, body []byte) {
	start := time.Now()

	var req preview.Request
	if err := json.Unmarshal(body, &req); err != nil {
		deps.me.RecordRequest(metrics.ReqTypeSingle, metrics.RequestStatusErr)
		writeError(w, http.StatusBadRequest, errortypes.WireBadInput, "malformed request body: "+err.Error())
		return
	}

	resp, err := deps.orchestrator.Single(r.Context(), req)
	if err != nil {
		deps.me.RecordRequest(metrics.ReqTypeSingle, metrics.RequestStatusErr)
		writeTypedError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
	deps.me.RecordRequest(metrics.ReqTypeSingle, metrics.RequestStatusOK)
	deps.me.RecordRequestTime(metrics.ReqTypeSingle, time.Since(start))
}

func (deps *previewDeps) batch(w http.ResponseWriter, r *http.Request, body []byte) {
	start := time.Now()

	var req batchRequest
	if err := json.Unmarshal(body, &req); err != nil {
		deps.me.RecordRequest(metrics.ReqTypeBatch, metrics.RequestStatusErr)
		writeError(w, http.StatusBadRequest, errortypes.WireBadInput, "malformed request body: "+err.Error())
		return
	}

	results, err := deps.orchestrator.RunBatch(r.Context(), req.Requests, req.Output)
	if err != nil {
		deps.me.RecordRequest(metrics.ReqTypeBatch, metrics.RequestStatusErr)
		writeTypedError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, preview.BatchResponse{Results: results})
	deps.me.RecordRequest(metrics.ReqTypeBatch, metrics.RequestStatusOK)
	deps.me.RecordRequestTime(metrics.ReqTypeBatch, time.Since(start))
}

// writeTypedError surfaces an errortypes value to the caller. Manifest
// validation failures carry the full error list so callers can fix every
// problem in one pass.
func writeTypedError(w http.ResponseWriter, err error) {
	status := statusForError(err)
	code := errortypes.ReadWireCode(err)
	if invalid, ok := err.(*errortypes.InvalidManifest); ok {
		details := make([]string, 0, len(invalid.ValidationErrors))
		for _, ve := range invalid.ValidationErrors {
			details = append(details, ve.Error())
		}
		writeJSON(w, status, errorBody{Error: apiError{Code: code, Message: err.Error(), Details: details}})
		return
	}
	writeError(w, status, code, err.Error())
}

func statusForError(err error) int {
	switch errortypes.ReadCode(err) {
	case errortypes.FormatNotFoundErrorCode:
		return http.StatusNotFound
	case errortypes.InvalidManifestErrorCode, errortypes.BatchTooLargeErrorCode, errortypes.BadInputErrorCode:
		return http.StatusBadRequest
	case errortypes.StorageFailedErrorCode:
		return http.StatusBadGateway
	case errortypes.TimeoutErrorCode:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

package endpoints

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/golang/glog"
	"github.com/julienschmidt/httprouter"

	"github.com/adcontextprotocol/creative-agent/formats"
	"github.com/adcontextprotocol/creative-agent/metrics"
)

type formatsResponse struct {
	Formats []*formats.Format `json:"formats"`
	Count   int               `json:"count"`
}

// NewFormatsEndpoint lists the catalog, narrowed by query parameters:
// format_ids, type, asset_types, name_search and min/max width and height.
func NewFormatsEndpoint(catalog *formats.Catalog, me metrics.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		opts, err := parseFilterOptions(r)
		if err != nil {
			me.RecordRequest(metrics.ReqTypeListFormats, metrics.RequestStatusErr)
			writeError(w, http.StatusBadRequest, "bad_input", err.Error())
			return
		}

		matched := catalog.Filter(opts)
		writeJSON(w, http.StatusOK, formatsResponse{Formats: matched, Count: len(matched)})
		me.RecordRequest(metrics.ReqTypeListFormats, metrics.RequestStatusOK)
		me.RecordRequestTime(metrics.ReqTypeListFormats, time.Since(start))
	}
}

// NewFormatDetailEndpoint serves a single format by id.
func NewFormatDetailEndpoint(catalog *formats.Catalog, me metrics.Engine) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		id := ps.ByName("formatID")
		format, ok := catalog.Get(id)
		if !ok {
			me.RecordRequest(metrics.ReqTypeListFormats, metrics.RequestStatusErr)
			writeError(w, http.StatusNotFound, "format_not_found", "format "+id+" not found")
			return
		}
		writeJSON(w, http.StatusOK, format)
		me.RecordRequest(metrics.ReqTypeListFormats, metrics.RequestStatusOK)
	}
}

func parseFilterOptions(r *http.Request) (formats.FilterOptions, error) {
	q := r.URL.Query()
	opts := formats.FilterOptions{
		Type:       formats.FormatType(q.Get("type")),
		NameSearch: q.Get("name_search"),
	}
	if ids := q.Get("format_ids"); ids != "" {
		opts.IDs = strings.Split(ids, ",")
	}
	if types := q.Get("asset_types"); types != "" {
		for _, at := range strings.Split(types, ",") {
			opts.AssetTypes = append(opts.AssetTypes, formats.AssetType(at))
		}
	}

	var err error
	if opts.MinWidth, err = intParam(q.Get("min_width")); err != nil {
		return opts, err
	}
	if opts.MaxWidth, err = intParam(q.Get("max_width")); err != nil {
		return opts, err
	}
	if opts.MinHeight, err = intParam(q.Get("min_height")); err != nil {
		return opts, err
	}
	opts.MaxHeight, err = intParam(q.Get("max_height"))
	return opts, err
}

func intParam(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}

type errorBody struct {
	Error apiError `json:"error"`
}

type apiError struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorBody{Error: apiError{Code: code, Message: message}})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	body, err := json.Marshal(payload)
	if err != nil {
		glog.Errorf("Failed to marshal response body: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(body)
}

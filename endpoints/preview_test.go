package endpoints

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adcontextprotocol/creative-agent/manifest"
	"github.com/adcontextprotocol/creative-agent/metrics"
	"github.com/adcontextprotocol/creative-agent/preview"
)

func testPreviewEndpoint(t *testing.T) http.HandlerFunc {
	t.Helper()
	composer := preview.NewComposer(testCatalog(t), manifest.ValidationOptions{}, nil)
	orchestrator := preview.NewOrchestrator(composer, preview.NewDispatcher(nil, 0), nil, 4)
	return NewPreviewEndpoint(orchestrator, &metrics.NilEngine{})
}

const singleBody = `{
	"format_id": "display_300x250_image",
	"creative_manifest": {
		"format_id": "display_300x250_image",
		"assets": {
			"banner_image": {"url": "https://cdn.example.com/banner.png"},
			"click_url": {"url": "https://example.com/land"}
		}
	}
}`

func postPreview(t *testing.T, endpoint http.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	recorder := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/preview", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	endpoint(recorder, req)
	return recorder
}

func TestPreviewSingle(t *testing.T) {
	recorder := postPreview(t, testPreviewEndpoint(t), singleBody)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "application/json", recorder.Header().Get("Content-Type"))

	var resp preview.Response
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	require.Len(t, resp.Previews, 3, "default device variants apply when no inputs are given")
	assert.False(t, resp.ExpiresAt.IsZero())
	for _, pv := range resp.Previews {
		require.Len(t, pv.Renders, 1)
		assert.NotEmpty(t, pv.Renders[0].HTML)
		assert.Empty(t, pv.Renders[0].URL)
	}
}

func TestPreviewSingleUnknownFormat(t *testing.T) {
	body := strings.ReplaceAll(singleBody, "display_300x250_image", "display_1x1")
	recorder := postPreview(t, testPreviewEndpoint(t), body)

	require.Equal(t, http.StatusNotFound, recorder.Code)
	var errResp errorBody
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &errResp))
	assert.Equal(t, "format_not_found", errResp.Error.Code)
}

func TestPreviewSingleInvalidManifest(t *testing.T) {
	body := `{
		"format_id": "display_300x250_image",
		"creative_manifest": {
			"format_id": "display_300x250_image",
			"assets": {"click_url": {"url": "https://example.com/land"}}
		}
	}`
	recorder := postPreview(t, testPreviewEndpoint(t), body)

	require.Equal(t, http.StatusBadRequest, recorder.Code)
	var errResp errorBody
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &errResp))
	assert.Equal(t, "invalid_manifest", errResp.Error.Code)
	require.NotEmpty(t, errResp.Error.Details)
	assert.Contains(t, errResp.Error.Details[0], "banner_image")
}

func TestPreviewMalformedJSON(t *testing.T) {
	recorder := postPreview(t, testPreviewEndpoint(t), `{"format_id": `)
	require.Equal(t, http.StatusBadRequest, recorder.Code)

	var errResp errorBody
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &errResp))
	assert.Equal(t, "bad_input", errResp.Error.Code)
}

func TestPreviewBatch(t *testing.T) {
	body := `{"requests": [` + singleBody + `,
		{"format_id": "display_1x1", "creative_manifest": {"format_id": "display_1x1", "assets": {}}},
		` + singleBody + `]}`
	recorder := postPreview(t, testPreviewEndpoint(t), body)

	require.Equal(t, http.StatusOK, recorder.Code)
	var resp preview.BatchResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	require.Len(t, resp.Results, 3)

	assert.True(t, resp.Results[0].Success)
	assert.True(t, resp.Results[2].Success)
	require.False(t, resp.Results[1].Success)
	assert.Equal(t, "format_not_found", resp.Results[1].Error.Code)
}

func TestPreviewBatchTooLarge(t *testing.T) {
	items := make([]string, preview.MaxBatchSize+1)
	for i := range items {
		items[i] = singleBody
	}
	body := `{"requests": [` + strings.Join(items, ",") + `]}`
	recorder := postPreview(t, testPreviewEndpoint(t), body)

	require.Equal(t, http.StatusBadRequest, recorder.Code)
	var errResp errorBody
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &errResp))
	assert.Equal(t, "batch_too_large", errResp.Error.Code)
}

func TestPreviewEmptyBatchIsBatch(t *testing.T) {
	recorder := postPreview(t, testPreviewEndpoint(t), `{"requests": []}`)

	require.Equal(t, http.StatusOK, recorder.Code)
	var resp preview.BatchResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	assert.Len(t, resp.Results, 0)
}

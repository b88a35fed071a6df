package endpoints

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adcontextprotocol/creative-agent/formats"
	"github.com/adcontextprotocol/creative-agent/metrics"
)

func testCatalog(t *testing.T) *formats.Catalog {
	t.Helper()
	catalog, err := formats.NewCatalog(formats.StandardFormats())
	require.NoError(t, err)
	return catalog
}

func getFormats(t *testing.T, query string) (int, formatsResponse) {
	t.Helper()
	endpoint := NewFormatsEndpoint(testCatalog(t), &metrics.NilEngine{})

	recorder := httptest.NewRecorder()
	endpoint(recorder, httptest.NewRequest("GET", "/formats"+query, nil))

	var resp formatsResponse
	if recorder.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	}
	return recorder.Code, resp
}

func TestListFormats(t *testing.T) {
	code, resp := getFormats(t, "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, len(resp.Formats), resp.Count)
	assert.NotZero(t, resp.Count)
}

func TestListFormatsFiltered(t *testing.T) {
	code, resp := getFormats(t, "?type=video")
	assert.Equal(t, http.StatusOK, code)
	require.NotZero(t, resp.Count)
	for _, f := range resp.Formats {
		assert.Equal(t, formats.FormatTypeVideo, f.Type)
	}

	code, resp = getFormats(t, "?min_width=300&max_width=300&min_height=250&max_height=250")
	assert.Equal(t, http.StatusOK, code)
	for _, f := range resp.Formats {
		dims, fixed := f.PrimaryDimensions()
		require.True(t, fixed)
		assert.Equal(t, formats.Dimensions{Width: 300, Height: 250}, dims)
	}

	code, resp = getFormats(t, "?format_ids=display_300x250_image,video_1280x720")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, 2, resp.Count)
}

func TestListFormatsBadParam(t *testing.T) {
	code, _ := getFormats(t, "?min_width=wide")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestFormatDetail(t *testing.T) {
	endpoint := NewFormatDetailEndpoint(testCatalog(t), &metrics.NilEngine{})

	recorder := httptest.NewRecorder()
	endpoint(recorder, httptest.NewRequest("GET", "/formats/display_300x250_image", nil),
		httprouter.Params{{Key: "formatID", Value: "display_300x250_image"}})

	require.Equal(t, http.StatusOK, recorder.Code)
	var format formats.Format
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &format))
	assert.Equal(t, "display_300x250_image", format.ID)
	assert.NotEmpty(t, format.AssetsRequired)
}

func TestFormatDetailNotFound(t *testing.T) {
	endpoint := NewFormatDetailEndpoint(testCatalog(t), &metrics.NilEngine{})

	recorder := httptest.NewRecorder()
	endpoint(recorder, httptest.NewRequest("GET", "/formats/display_1x1", nil),
		httprouter.Params{{Key: "formatID", Value: "display_1x1"}})

	require.Equal(t, http.StatusNotFound, recorder.Code)
	var body errorBody
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "format_not_found", body.Error.Code)
}

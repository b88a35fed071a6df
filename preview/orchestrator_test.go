package preview

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/adcontextprotocol/creative-agent/errortypes"
	"github.com/adcontextprotocol/creative-agent/formats"
	"github.com/adcontextprotocol/creative-agent/manifest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOrchestrator(t *testing.T, store *stubStore) *Orchestrator {
	t.Helper()
	catalog, err := formats.NewCatalog(formats.StandardFormats())
	require.NoError(t, err)
	composer := NewComposer(catalog, manifest.ValidationOptions{}, nil)
	return NewOrchestrator(composer, NewDispatcher(store, 0), nil, 4)
}

func TestSingleDefaultVariants(t *testing.T) {
	o := testOrchestrator(t, &stubStore{})

	resp, err := o.Single(context.Background(), Request{
		FormatID: "display_300x250_image",
		Manifest: bannerManifest(),
	})
	require.NoError(t, err)

	require.Len(t, resp.Previews, 3)
	names := []string{resp.Previews[0].Input.Name, resp.Previews[1].Input.Name, resp.Previews[2].Input.Name}
	assert.Equal(t, []string{"Desktop", "Mobile", "Tablet"}, names)

	for _, pv := range resp.Previews {
		assert.Equal(t, resp.Previews[0].PreviewID, pv.PreviewID, "variants share one preview id")
		require.Len(t, pv.Renders, 1)
		r := pv.Renders[0]
		assert.Equal(t, "primary", r.Role)
		assert.NotEmpty(t, r.HTML)
		assert.Empty(t, r.URL)
		assert.Equal(t, formats.Dimensions{Width: 300, Height: 250}, r.Dimensions)
		assert.Contains(t, r.HTML, "<!DOCTYPE html>")
		assert.Contains(t, r.HTML, pv.Input.Name)
	}

	assert.Empty(t, resp.InteractiveURL)
	until := time.Until(resp.ExpiresAt)
	assert.Greater(t, until, 23*time.Hour)
	assert.LessOrEqual(t, until, 24*time.Hour)
}

func TestSingleExplicitVariants(t *testing.T) {
	o := testOrchestrator(t, &stubStore{})

	resp, err := o.Single(context.Background(), Request{
		FormatID: "display_300x250_image",
		Manifest: bannerManifest(),
		Inputs: []Input{
			{Name: "Control", Macros: map[string]string{"CREATIVE_ID": "cr-1"}},
			{Name: "Holdout", Macros: map[string]string{"CREATIVE_ID": "cr-2"}},
		},
	})
	require.NoError(t, err)
	require.Len(t, resp.Previews, 2)
	assert.Equal(t, "Control", resp.Previews[0].Input.Name)
	assert.Equal(t, "Holdout", resp.Previews[1].Input.Name)
}

func TestSingleWarningsDeduplicatedAcrossVariants(t *testing.T) {
	o := testOrchestrator(t, &stubStore{})

	m := bannerManifest()
	m.Assets["sparkles"] = manifest.Asset{URL: "https://cdn.example.com/sparkles.png"}

	resp, err := o.Single(context.Background(), Request{
		FormatID: "display_300x250_image",
		Manifest: m,
	})
	require.NoError(t, err)
	require.Len(t, resp.Previews, 3)
	require.Len(t, resp.Warnings, 1, "each warning appears once no matter how many variants render")
	assert.Contains(t, resp.Warnings[0], `asset "sparkles" is not declared`)
}

func TestSingleStoredOutput(t *testing.T) {
	store := &stubStore{}
	o := testOrchestrator(t, store)

	resp, err := o.Single(context.Background(), Request{
		FormatID: "display_300x250_image",
		Manifest: bannerManifest(),
		Inputs:   []Input{{Name: "Desktop"}},
		Output:   OutputURL,
	})
	require.NoError(t, err)

	require.Len(t, resp.Previews, 1)
	r := resp.Previews[0].Renders[0]
	assert.Empty(t, r.HTML)
	expected := fmt.Sprintf("https://previews.example.com/previews/%s/desktop.html", resp.Previews[0].PreviewID)
	assert.Equal(t, expected, r.URL)
	assert.Equal(t, expected, resp.InteractiveURL)
	assert.Equal(t, 1, store.putCount())
}

func TestSingleStorageFailureIsTopLevel(t *testing.T) {
	o := testOrchestrator(t, &stubStore{fail: true})

	_, err := o.Single(context.Background(), Request{
		FormatID: "display_300x250_image",
		Manifest: bannerManifest(),
		Inputs:   []Input{{Name: "Desktop"}},
		Output:   OutputURL,
	})
	require.IsType(t, &errortypes.StorageFailed{}, err)
}

func TestRunBatchOrderAndIsolation(t *testing.T) {
	o := testOrchestrator(t, &stubStore{})

	requests := make([]Request, 5)
	for i := range requests {
		requests[i] = Request{FormatID: "display_300x250_image", Manifest: bannerManifest()}
	}
	requests[2].FormatID = "no_such_format"

	results, err := o.RunBatch(context.Background(), requests, OutputHTML)
	require.NoError(t, err)
	require.Len(t, results, 5)

	for i, res := range results {
		if i == 2 {
			assert.False(t, res.Success)
			require.NotNil(t, res.Error)
			assert.Equal(t, errortypes.WireFormatNotFound, res.Error.Code)
			assert.Nil(t, res.Response)
			continue
		}
		assert.True(t, res.Success, "item %d must not be poisoned by its sibling", i)
		require.NotNil(t, res.Response)
		assert.Nil(t, res.Error)
	}
}

func TestRunBatchTooLarge(t *testing.T) {
	store := &stubStore{}
	o := testOrchestrator(t, store)

	requests := make([]Request, MaxBatchSize+1)
	for i := range requests {
		requests[i] = Request{FormatID: "display_300x250_image", Manifest: bannerManifest(), Output: OutputURL}
	}

	results, err := o.RunBatch(context.Background(), requests, OutputHTML)
	assert.Nil(t, results)
	require.IsType(t, &errortypes.BatchTooLarge{}, err)
	assert.Zero(t, store.putCount(), "an oversized batch is rejected before any item runs")
}

func TestRunBatchAtCap(t *testing.T) {
	o := testOrchestrator(t, &stubStore{})

	requests := make([]Request, MaxBatchSize)
	for i := range requests {
		requests[i] = Request{
			FormatID: "display_300x250_image",
			Manifest: bannerManifest(),
			Inputs:   []Input{{Name: "Desktop"}},
		}
	}

	results, err := o.RunBatch(context.Background(), requests, OutputHTML)
	require.NoError(t, err)
	require.Len(t, results, MaxBatchSize)
	for _, res := range results {
		assert.True(t, res.Success)
	}
}

func TestRunBatchEmpty(t *testing.T) {
	o := testOrchestrator(t, &stubStore{})

	results, err := o.RunBatch(context.Background(), nil, OutputHTML)
	require.NoError(t, err)
	assert.Len(t, results, 0)
}

func TestRunBatchOutputOverride(t *testing.T) {
	store := &stubStore{}
	o := testOrchestrator(t, store)

	requests := []Request{
		{FormatID: "display_300x250_image", Manifest: bannerManifest(), Inputs: []Input{{Name: "Desktop"}}},
		{FormatID: "display_300x250_image", Manifest: bannerManifest(), Inputs: []Input{{Name: "Desktop"}}, Output: OutputURL},
		{FormatID: "display_300x250_image", Manifest: bannerManifest(), Inputs: []Input{{Name: "Desktop"}}},
	}

	results, err := o.RunBatch(context.Background(), requests, OutputHTML)
	require.NoError(t, err)
	require.Len(t, results, 3)

	for i, res := range results {
		require.True(t, res.Success)
		r := res.Response.Previews[0].Renders[0]
		if i == 1 {
			assert.Empty(t, r.HTML, "the overridden item carries a URL only")
			assert.NotEmpty(t, r.URL)
		} else {
			assert.NotEmpty(t, r.HTML)
			assert.Empty(t, r.URL, "siblings keep the batch default of inline html")
		}
	}
	assert.Equal(t, 1, store.putCount())
}

func TestRunBatchCancelledContext(t *testing.T) {
	o := testOrchestrator(t, &stubStore{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	requests := []Request{
		{FormatID: "display_300x250_image", Manifest: bannerManifest(), Inputs: []Input{{Name: "Desktop"}}},
		{FormatID: "display_300x250_image", Manifest: bannerManifest(), Inputs: []Input{{Name: "Desktop"}}},
	}
	results, err := o.RunBatch(ctx, requests, OutputHTML)
	require.NoError(t, err)
	require.Len(t, results, 2)
	for _, res := range results {
		if res.Success {
			continue
		}
		require.NotNil(t, res.Error)
		assert.Equal(t, errortypes.WireTimeout, res.Error.Code)
	}
}

func TestRunBatchPanicIsolation(t *testing.T) {
	o := testOrchestrator(t, &stubStore{})

	results := make([]BatchItemResult, 2)
	runner := o.recoverSafely(results, func(i int, req Request) {
		if i == 0 {
			panic("renderer exploded")
		}
		results[i] = BatchItemResult{Success: true}
	})

	runner(0, Request{FormatID: "display_300x250_image"})
	runner(1, Request{FormatID: "display_300x250_image"})

	require.NotNil(t, results[0].Error)
	assert.Equal(t, errortypes.WireRenderFailed, results[0].Error.Code)
	assert.True(t, results[1].Success)
}

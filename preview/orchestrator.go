package preview

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"github.com/gofrs/uuid"
	"github.com/golang/glog"

	"github.com/adcontextprotocol/creative-agent/errortypes"
	"github.com/adcontextprotocol/creative-agent/formats"
	"github.com/adcontextprotocol/creative-agent/macros"
	"github.com/adcontextprotocol/creative-agent/metrics"
	"github.com/adcontextprotocol/creative-agent/renderers"
	"github.com/adcontextprotocol/creative-agent/storage"
)

// MaxBatchSize is the hard cap on batch requests. Larger batches are rejected
// wholesale before any item is processed.
const MaxBatchSize = 50

const defaultMaxInFlight = 10

// Orchestrator runs single preview requests end to end and fans batches out
// across independent items. Items share no mutable state; the only shared
// resource is the preview store connection, bounded by maxInFlight.
type Orchestrator struct {
	composer    *Composer
	dispatcher  *Dispatcher
	me          metrics.Engine
	maxInFlight int
}

func NewOrchestrator(composer *Composer, dispatcher *Dispatcher, me metrics.Engine, maxInFlight int) *Orchestrator {
	if me == nil {
		me = &metrics.NilEngine{}
	}
	if maxInFlight <= 0 {
		maxInFlight = defaultMaxInFlight
	}
	return &Orchestrator{
		composer:    composer,
		dispatcher:  dispatcher,
		me:          me,
		maxInFlight: maxInFlight,
	}
}

// defaultInputs are the device variants applied when a request supplies none.
func defaultInputs() []Input {
	return []Input{
		{Name: "Desktop", Macros: map[string]string{macros.MacroKeyDeviceType: "desktop"}},
		{Name: "Mobile", Macros: map[string]string{macros.MacroKeyDeviceType: "mobile"}},
		{Name: "Tablet", Macros: map[string]string{macros.MacroKeyDeviceType: "tablet"}},
	}
}

// Single renders one request across all its input variants. The error return
// is a typed errortypes value; callers map it to a wire code for the response.
func (o *Orchestrator) Single(ctx context.Context, req Request) (*Response, error) {
	previewID := uuid.Must(uuid.NewV4()).String()

	inputs := req.Inputs
	if len(inputs) == 0 {
		inputs = defaultInputs()
	}
	mode := req.Output
	if mode == "" {
		mode = OutputHTML
	}

	resp := &Response{
		Previews:  make([]Preview, 0, len(inputs)),
		ExpiresAt: time.Now().Add(o.dispatcher.TTL()).UTC(),
	}

	// Variants share one manifest, so each one re-reports the same validation
	// warnings. Deduplicate so the response carries each warning once.
	seenWarnings := make(map[string]struct{})

	for _, input := range inputs {
		comp, err := o.composer.Compose(req.FormatID, req.Manifest, input)
		if err != nil {
			return nil, err
		}
		for _, warn := range comp.Warnings {
			msg := warn.Error()
			if _, seen := seenWarnings[msg]; seen {
				continue
			}
			seenWarnings[msg] = struct{}{}
			resp.Warnings = append(resp.Warnings, msg)
		}

		pv := Preview{
			PreviewID: previewID,
			Renders:   make([]Render, 0, len(comp.Renders)),
			Input:     input,
		}
		for _, cr := range comp.Renders {
			doc := renderers.Document(comp.Format.Name, input.Name, cr.Body, cr.Width, cr.Height)
			key := storage.PreviewKey(previewID, variantKey(input.Name, cr.Role))
			inline, url, err := o.dispatcher.Dispatch(ctx, mode, key, doc)
			if err != nil {
				return nil, err
			}
			if resp.InteractiveURL == "" && url != "" {
				resp.InteractiveURL = url
			}
			pv.Renders = append(pv.Renders, Render{
				RenderID:   uuid.Must(uuid.NewV4()).String(),
				Role:       cr.Role,
				HTML:       inline,
				URL:        url,
				Dimensions: formats.Dimensions{Width: cr.Width, Height: cr.Height},
			})
		}
		resp.Previews = append(resp.Previews, pv)
	}

	return resp, nil
}

// variantKey keeps storage keys unique when a format declares companion
// renders alongside the primary.
func variantKey(inputName, role string) string {
	if role == "" || role == "primary" {
		return inputName
	}
	return inputName + "-" + role
}

// RunBatch fans requests out to Single with per-item failure isolation.
// Batches over MaxBatchSize are rejected with a single top-level error and
// zero items processed. Results are written into a pre-sized slice by input
// index, so result order always matches request order no matter which items
// finish first. A cancelled context fails not-yet-started items with a
// timeout result; items already running finish normally.
func (o *Orchestrator) RunBatch(ctx context.Context, requests []Request, defaultOutput OutputFormat) ([]BatchItemResult, error) {
	o.me.RecordBatchSize(len(requests))

	if len(requests) > MaxBatchSize {
		return nil, &errortypes.BatchTooLarge{
			Message: fmt.Sprintf("batch of %d requests exceeds the maximum of %d", len(requests), MaxBatchSize),
		}
	}

	results := make([]BatchItemResult, len(requests))
	sem := make(chan struct{}, o.maxInFlight)
	var wg sync.WaitGroup

	runner := o.recoverSafely(results, func(i int, req Request) {
		if req.Output == "" {
			req.Output = defaultOutput
		}
		resp, err := o.Single(ctx, req)
		if err != nil {
			code := errortypes.ReadWireCode(err)
			o.me.RecordItemFailure(code)
			results[i] = BatchItemResult{Error: &ItemError{Code: code, Message: err.Error()}}
			return
		}
		results[i] = BatchItemResult{Success: true, Response: resp}
	})

	for i := range requests {
		wg.Add(1)
		go func(i int, req Request) {
			defer wg.Done()
			select {
			case <-ctx.Done():
				o.me.RecordItemFailure(errortypes.WireTimeout)
				results[i] = BatchItemResult{Error: &ItemError{
					Code:    errortypes.WireTimeout,
					Message: "batch cancelled before this item started",
				}}
			case sem <- struct{}{}:
				defer func() { <-sem }()
				runner(i, req)
			}
		}(i, requests[i])
	}
	wg.Wait()

	return results, nil
}

// recoverSafely converts a panic in one batch item into that item's failure
// result so sibling items keep running.
func (o *Orchestrator) recoverSafely(results []BatchItemResult, inner func(int, Request)) func(int, Request) {
	return func(i int, req Request) {
		defer func() {
			if r := recover(); r != nil {
				glog.Errorf("Batch preview recovered panic from item %d (format %s): %v. Stack trace is: %v",
					i, req.FormatID, r, string(debug.Stack()))
				o.me.RecordItemFailure(errortypes.WireRenderFailed)
				results[i] = BatchItemResult{Error: &ItemError{
					Code:    errortypes.WireRenderFailed,
					Message: fmt.Sprintf("internal error rendering item %d", i),
				}}
			}
		}()
		inner(i, req)
	}
}

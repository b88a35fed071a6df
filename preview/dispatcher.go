package preview

import (
	"context"
	"fmt"
	"time"

	"github.com/adcontextprotocol/creative-agent/errortypes"
	"github.com/adcontextprotocol/creative-agent/storage"
)

// DefaultTTL is how long stored previews remain readable.
const DefaultTTL = 24 * time.Hour

// Dispatcher routes a rendered document to the caller per the output mode:
// inline for html, written to the preview store for url. Storage writes are
// never retried here; keys are deterministic per preview id, so callers can
// retry safely themselves.
type Dispatcher struct {
	store storage.Client
	ttl   time.Duration
}

func NewDispatcher(store storage.Client, ttl time.Duration) *Dispatcher {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Dispatcher{store: store, ttl: ttl}
}

// TTL is the retention applied to stored previews.
func (d *Dispatcher) TTL() time.Duration {
	return d.ttl
}

// Dispatch delivers one rendered document. In html mode the document passes
// straight through with no storage call. In url mode it is written under the
// given key and the durable public URL is returned instead.
func (d *Dispatcher) Dispatch(ctx context.Context, mode OutputFormat, key, doc string) (inline string, url string, err error) {
	if mode != OutputURL {
		return doc, "", nil
	}
	if d.store == nil {
		return "", "", &errortypes.StorageFailed{Message: "url output requested but no preview store is configured"}
	}

	urls, errs := d.store.PutHTML(ctx, []storage.Entry{{
		Key:        key,
		Body:       doc,
		TTLSeconds: int64(d.ttl.Seconds()),
	}})
	if len(errs) > 0 || len(urls) != 1 || urls[0] == "" {
		return "", "", &errortypes.StorageFailed{
			Message: fmt.Sprintf("preview store write failed for %s: %v", key, errs),
		}
	}
	return "", urls[0], nil
}

// Package router assembles the engine's collaborators and binds them to
// routes.
package router

import (
	"fmt"
	"net/http"
	"time"

	"github.com/didip/tollbooth"
	"github.com/didip/tollbooth/limiter"
	"github.com/julienschmidt/httprouter"
	gometrics "github.com/rcrowley/go-metrics"
	"github.com/rs/cors"

	"github.com/adcontextprotocol/creative-agent/config"
	"github.com/adcontextprotocol/creative-agent/endpoints"
	"github.com/adcontextprotocol/creative-agent/formats"
	"github.com/adcontextprotocol/creative-agent/manifest"
	"github.com/adcontextprotocol/creative-agent/metrics"
	"github.com/adcontextprotocol/creative-agent/preview"
	"github.com/adcontextprotocol/creative-agent/storage"
)

type Router struct {
	*httprouter.Router
	MetricsEngine metrics.Engine
}

// New builds the format catalog, the preview engine and the preview store
// client, then binds every route.
func New(cfg *config.Configuration) (*Router, error) {
	catalog, err := formats.NewCatalog(formats.StandardFormats())
	if err != nil {
		return nil, fmt.Errorf("could not build the format catalog: %v", err)
	}

	me := newMetricsEngine(cfg)

	var store storage.Client
	if cfg.Store.Host != "" {
		storeHTTPClient := &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:    10,
				IdleConnTimeout: 65 * time.Second,
			},
		}
		store = storage.NewClient(storeHTTPClient, cfg.Store.GetPutURL(), cfg.Store.GetPublicBaseURL(), me)
	}

	composer := preview.NewComposer(catalog, manifest.ValidationOptions{
		StrictUnknownAssets: cfg.Preview.StrictUnknownAssets,
	}, me)
	dispatcher := preview.NewDispatcher(store, time.Duration(cfg.Preview.TTLSeconds)*time.Second)
	orchestrator := preview.NewOrchestrator(composer, dispatcher, me, cfg.Preview.MaxInFlight)

	r := &Router{
		Router:        httprouter.New(),
		MetricsEngine: me,
	}

	var previewHandler http.Handler = endpoints.NewPreviewEndpoint(orchestrator, me)
	if cfg.RateLimit.Enabled {
		lmt := tollbooth.NewLimiter(float64(cfg.RateLimit.MaxRequestsPerSecond), &limiter.ExpirableOptions{
			DefaultExpirationTTL: time.Hour,
		})
		previewHandler = tollbooth.LimitHandler(lmt, previewHandler)
	}

	r.HandlerFunc("GET", "/formats", endpoints.NewFormatsEndpoint(catalog, me))
	r.GET("/formats/:formatID", endpoints.NewFormatDetailEndpoint(catalog, me))
	r.Handler("POST", "/preview", previewHandler)
	r.HandlerFunc("GET", "/status", endpoints.NewStatusEndpoint(cfg.StatusResponse))

	return r, nil
}

func newMetricsEngine(cfg *config.Configuration) metrics.Engine {
	if cfg.Metrics.Type == "go_metrics" {
		return metrics.NewMetrics(gometrics.NewPrefixedRegistry("creativeagent."))
	}
	return &metrics.NilEngine{}
}

// NoCache stops intermediaries from caching preview responses, which embed
// per-render cachebuster tokens.
type NoCache struct {
	Handler http.Handler
}

func (m NoCache) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Add("Cache-Control", "no-cache, no-store, must-revalidate")
	w.Header().Add("Pragma", "no-cache")
	w.Header().Add("Expires", "0")
	m.Handler.ServeHTTP(w, r)
}

// SupportCORS lets preview tooling on any origin call the API.
func SupportCORS(handler http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowCredentials: true,
		AllowOriginFunc: func(string) bool {
			return true
		},
		AllowedMethods: []string{"GET", "POST"},
		AllowedHeaders: []string{"Origin", "X-Requested-With", "Content-Type", "Accept"}})
	return c.Handler(handler)
}

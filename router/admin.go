package router

import (
	"net/http"
	_ "net/http/pprof"

	"github.com/adcontextprotocol/creative-agent/endpoints"
)

// Admin serves operational endpoints on the admin port. The pprof handlers
// register themselves on the default mux via their package import.
func Admin(revision string) http.Handler {
	http.HandleFunc("/version", endpoints.NewVersionEndpoint(revision))
	return http.DefaultServeMux
}

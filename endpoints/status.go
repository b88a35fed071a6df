package endpoints

import (
	"net/http"
)

// NewStatusEndpoint serves the health check. A configured response body is
// echoed back; without one the endpoint returns 204 so load balancers can
// still probe it.
func NewStatusEndpoint(responseText string) http.HandlerFunc {
	if responseText == "" {
		return func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}
	}

	responseBytes := []byte(responseText)
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Write(responseBytes)
	}
}

// Package httpserver constructs the service's HTTP server.
package httpserver

import (
	"net/http"
	"time"
)

// Slow-header clients get cut off instead of holding a connection open.
const readHeaderTimeout = 5 * time.Second

// New returns a server listening on addr with the shared timeouts applied.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
	}
}

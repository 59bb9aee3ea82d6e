// Package httpserver provides a http.Server with production timeouts.
package httpserver

import (
	"net/http"
	"time"
)

// New returns a server with conservative timeouts so slow clients cannot
// hold connections open indefinitely.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}

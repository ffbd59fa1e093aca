package server

import (
	"net/http"
	"time"
)

// The ops and metrics endpoints answer from memory.
const (
	readHeaderTimeout = 2 * time.Second
	readTimeout       = 5 * time.Second
	writeTimeout      = 10 * time.Second
	idleTimeout       = 60 * time.Second
)

// shutdownTimeout bounds the wait for the in-flight pass and its persist. Tests override it.
var shutdownTimeout = 15 * time.Second

// newOpsServer returns an http.Server on port with the service's limits applied.
func newOpsServer(port string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              ":" + port,
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}
}

// Package httputil provides shared HTTP client construction utilities
// for the pipedash project. It centralizes timeout defaults and client
// creation so that every module uses consistent configuration.
package httputil

import (
	"net/http"
	"time"
)

// Standard timeout defaults used across the project.
const (
	// DefaultAPITimeout is the HTTP timeout for ordinary backend calls
	// (browse, job creation, job lookup, settings). These are short-lived
	// request/response exchanges.
	DefaultAPITimeout = 30 * time.Second

	// DefaultHealthTimeout is the HTTP timeout for connectivity probes.
	// Health checks must fail fast so the UI can degrade to an offline
	// indicator without hanging.
	DefaultHealthTimeout = 5 * time.Second
)

// NewHTTPClient returns an *http.Client configured with the given timeout.
// Pass one of the Default*Timeout constants, or a custom duration.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

// NewStreamClient returns an *http.Client with no overall timeout, for
// long-lived server-push connections such as the progress event stream.
// Callers are expected to bound the connection with a request context.
func NewStreamClient() *http.Client {
	return &http.Client{}
}

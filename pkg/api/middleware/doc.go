// Package middleware provides the HTTP middleware stack of the analyzer API:
// request ids, panic recovery, structured request logging, query timeouts,
// body limits, Prometheus request metrics and CORS for browser clients.
//
// Every constructor returns func(http.Handler) http.Handler so they compose
// with Chain.
package middleware

import "net/http"

// Chain applies middleware so the first argument is the outermost wrapper
func Chain(h http.Handler, mws ...func(http.Handler) http.Handler) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

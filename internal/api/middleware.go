// Package api implements the read-only cheatsheet JSON API using chi.
package api

import (
	"fmt"
	"net/http"
	"time"
)

// CacheControl returns middleware that lets clients cache GET responses for
// maxAge and revalidate them with the ETag afterwards.
func CacheControl(maxAge time.Duration) func(http.Handler) http.Handler {
	value := fmt.Sprintf("public, max-age=%d, must-revalidate", int(maxAge.Seconds()))
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodGet || r.Method == http.MethodHead {
				w.Header().Set("Cache-Control", value)
			}
			next.ServeHTTP(w, r)
		})
	}
}

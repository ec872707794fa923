// Package handler is the serverless entry point. Every request, whatever its
// path, is routed through the same table as the long-running server.
package handler

import (
	"net/http"
	"sync"

	"github.com/shandysiswandi/cryptogate/internal/app"
)

var (
	once    sync.Once
	gateway http.Handler
)

// Handler is the entry point for Vercel serverless functions.
func Handler(w http.ResponseWriter, r *http.Request) {
	once.Do(func() {
		gateway = app.New().Handler()
	})

	gateway.ServeHTTP(w, r)
}

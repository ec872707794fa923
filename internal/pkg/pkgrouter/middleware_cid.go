package pkgrouter

import (
	"context"
	"net/http"
	"strings"

	"github.com/shandysiswandi/cryptogate/internal/pkg/pkglog"
)

// Generator generates a unique string (used for correlation/request IDs).
type Generator interface {
	Generate() string
}

const (
	// HeaderCorrelationID is the canonical header used to track requests end-to-end.
	HeaderCorrelationID = "X-Correlation-ID"
	// HeaderRequestID is an accepted alternative header name used by some proxies.
	HeaderRequestID = "X-Request-ID"
)

const maxCIDLen = 128

func normalizeCID(v string) string {
	v = strings.TrimSpace(v)
	if v == "" || strings.ContainsAny(v, "\r\n") {
		return ""
	}
	if len(v) > maxCIDLen {
		v = v[:maxCIDLen]
	}
	return v
}

// CorrelationID picks the first usable candidate, or generates one with uid,
// and stores it in ctx.
func CorrelationID(ctx context.Context, uid Generator, candidates ...string) (context.Context, string) {
	cid := ""
	for _, c := range candidates {
		if cid = normalizeCID(c); cid != "" {
			break
		}
	}
	if cid == "" && uid != nil {
		cid = uid.Generate()
	}
	if cid == "" {
		return ctx, ""
	}
	return pkglog.SetCorrelationID(ctx, cid), cid
}

func middlewareCorrelationID(uid Generator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cid := CorrelationID(r.Context(), uid,
				r.Header.Get(HeaderCorrelationID),
				r.Header.Get(HeaderRequestID),
			)
			if cid != "" {
				w.Header().Set(HeaderCorrelationID, cid)
				r = r.WithContext(ctx)
			}

			next.ServeHTTP(w, r)
		})
	}
}

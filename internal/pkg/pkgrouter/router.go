package pkgrouter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/shandysiswandi/cryptogate/internal/pkg/pkgerror"
)

// Handler is the application-style handler used by this router.
//
// It returns a response payload (that will be JSON encoded) or an error.
// Path parameters are available through GetParam.
type Handler func(ctx context.Context, req Request) (any, error)

type route struct {
	pattern Pattern
	handler Handler
}

// Router is an http.Handler over an ordered route table plus a middleware chain.
type Router struct {
	hr     *httprouter.Router
	routes []route
	mws    []Middleware
}

// NewRouter builds the default application router with standard middleware.
func NewRouter(uuid Generator) *Router {
	ro := &Router{}

	// Only exact GET / and GET /health belong to httprouter. Every other
	// request, redirects and method mismatches included, goes to the table.
	ro.hr = &httprouter.Router{
		RedirectTrailingSlash:  false,
		RedirectFixedPath:      false,
		HandleMethodNotAllowed: false,
		HandleOPTIONS:          false,
		NotFound:               http.HandlerFunc(ro.serveTable),
	}

	ro.mws = []Middleware{
		middlewareRecoverer,
		middlewareCorrelationID(uuid),
		middlewareLogging(ro.routeOf),
	}

	ro.hr.Handler(http.MethodGet, "/", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		NewResponse(http.StatusOK, map[string]string{"message": "hi from cryptogate"}).Write(w)
	}))

	ro.hr.Handler(http.MethodGet, "/health", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		NewResponse(http.StatusOK, map[string]string{"message": "server is running well"}).Write(w)
	}))

	return ro
}

// Use appends middleware to the existing middleware stack.
func (r *Router) Use(mws ...Middleware) {
	r.mws = append(r.mws, mws...)
}

// Route appends a route to the table. Earlier routes take priority.
func (r *Router) Route(p Pattern, h Handler) {
	r.routes = append(r.routes, route{pattern: p, handler: h})
}

// Dispatch runs req through the route table.
//
// Unmatched paths get 404 {"error":"Not Found"}. A handler error becomes the
// status and message of a *pkgerror.Error; any other error or a panic becomes
// 500 {"error":"Internal Server Error"} and is only logged.
func (r *Router) Dispatch(ctx context.Context, req Request) Response {
	for _, rt := range r.routes {
		params, ok := rt.pattern.Match(req.Path)
		if !ok {
			continue
		}

		return r.invoke(withRoute(ctx, rt.pattern, params), rt.handler, req)
	}

	return errorCodec(ctx, pkgerror.NewNotFound("Not Found"))
}

func (r *Router) invoke(ctx context.Context, h Handler, req Request) (resp Response) {
	defer func() {
		if rvr := recover(); rvr != nil {
			//nolint:err113 // panic value is dynamic
			resp = errorCodec(ctx, pkgerror.NewServer(fmt.Errorf("handler panic: %v", rvr)))
		}
	}()

	out, err := h(ctx, req)
	if err != nil {
		return errorCodec(ctx, err)
	}

	code := http.StatusOK
	if sc, ok := out.(interface {
		StatusCode() int
	}); ok {
		code = sc.StatusCode()
	}

	return NewResponse(code, out)
}

func errorCodec(ctx context.Context, err error) Response {
	var gerr *pkgerror.Error
	if !errors.As(err, &gerr) {
		slog.ErrorContext(ctx, "unhandled error in route handler", "route", MatchedRoute(ctx), "error", err)
		return NewErrorResponse(http.StatusInternalServerError, "Internal Server Error")
	}

	code := gerr.StatusCode()
	if code >= http.StatusInternalServerError {
		slog.ErrorContext(ctx, "route handler failed", "route", MatchedRoute(ctx), "error", gerr.String())
	}

	msg := gerr.Msg()
	if msg == "" {
		msg = http.StatusText(code)
	}

	return NewErrorResponse(code, msg)
}

func (r *Router) serveTable(w http.ResponseWriter, req *http.Request) {
	in, err := RequestFromHTTP(req)
	if err != nil {
		NewErrorResponse(http.StatusBadRequest, "Invalid request body").Write(w)
		return
	}

	r.Dispatch(req.Context(), in).Write(w)
}

func (r *Router) routeOf(req *http.Request) string {
	if h, _, _ := r.hr.Lookup(req.Method, req.URL.Path); h != nil {
		return req.URL.Path
	}

	for _, rt := range r.routes {
		if _, ok := rt.pattern.Match(req.URL.Path); ok {
			return rt.pattern.String()
		}
	}

	return req.URL.Path
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	Chain(r.hr, r.mws...).ServeHTTP(w, req)
}

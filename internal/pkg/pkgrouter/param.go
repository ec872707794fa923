package pkgrouter

import (
	"context"

	"github.com/julienschmidt/httprouter"
)

// GetParam reads a path parameter from the request context (as stored by Dispatch).
func GetParam(ctx context.Context, key string) string {
	return httprouter.ParamsFromContext(ctx).ByName(key)
}

// MatchedRoute returns the pattern of the route serving the request, or "".
func MatchedRoute(ctx context.Context) string {
	route, _ := ctx.Value(matchedRouteKey{}).(string)
	return route
}

type matchedRouteKey struct{}

func withRoute(ctx context.Context, p Pattern, params Params) context.Context {
	ctx = context.WithValue(ctx, httprouter.ParamsKey, params)
	return context.WithValue(ctx, matchedRouteKey{}, p.String())
}

package inbound

import (
	"context"

	"github.com/goccy/go-json"
	"github.com/shandysiswandi/cryptogate/internal/aggregator/entity"
	"github.com/shandysiswandi/cryptogate/internal/pkg/pkgrouter"
)

type uc interface {
	MarketOverview(ctx context.Context) (entity.MarketOverview, error)
	CoinDetails(ctx context.Context, id string) (entity.CoinDetails, error)
	Address(ctx context.Context, req entity.AddressRequest) (json.RawMessage, error)
}

// RegisterHTTPEndpoint adds the aggregator routes to r. Order matters: the
// first matching route serves the request.
func RegisterHTTPEndpoint(r *pkgrouter.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.Route(pkgrouter.Prefix("/api/v1/market/overview"), end.MarketOverview)
	r.Route(pkgrouter.Segments("/api/v1/coins/:id/details"), end.CoinDetails)
	r.Route(pkgrouter.Prefix("/api/v1/addresses"), end.Address) // /{address}/{action}?blockchain=
}

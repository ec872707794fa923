package usecase

import (
	"context"

	"github.com/goccy/go-json"
	"github.com/shandysiswandi/cryptogate/internal/aggregator/entity"
	"github.com/shandysiswandi/cryptogate/internal/aggregator/outbound"
	"github.com/shandysiswandi/cryptogate/internal/pkg/pkgroutine"
)

type MarketData interface {
	TopCoins(ctx context.Context) ([]outbound.CoinMarket, error)
	TopMovers(ctx context.Context) (outbound.GainersLosers, error)
	CoinInfo(ctx context.Context, id string) (outbound.Coin, error)
	CoinChart(ctx context.Context, id string) (outbound.MarketChart, error)
	CoinTickers(ctx context.Context, id string) ([]outbound.CoinTicker, error)
}

type RPC interface {
	Call(ctx context.Context, endpoint, method string, params ...any) (json.RawMessage, error)
}

type Chains interface {
	Lookup(name string) (entity.Chain, bool)
}

// MinFanOut is the widest fan-out of a single request (coin details), so
// every call of a request runs at once.
const MinFanOut = 3

type Dependency struct {
	MarketData MarketData
	RPC        RPC
	Chains     Chains
	// FanOut caps the concurrent upstream calls of one request. Values below
	// MinFanOut are raised to it.
	FanOut int
}

type Usecase struct {
	market MarketData
	rpc    RPC
	chains Chains
	fanOut int
}

func New(dep Dependency) *Usecase {
	fanOut := dep.FanOut
	switch {
	case fanOut < 1:
		fanOut = pkgroutine.DefaultMaxGoroutine
	case fanOut < MinFanOut:
		fanOut = MinFanOut
	}

	return &Usecase{
		market: dep.MarketData,
		rpc:    dep.RPC,
		chains: dep.Chains,
		fanOut: fanOut,
	}
}

func (u *Usecase) newGroup() *pkgroutine.Manager {
	return pkgroutine.NewManager(u.fanOut)
}

// detach keeps ctx values (correlation id) but drops its cancellation: an
// upstream call, once started, outlives a caller that went away.
func detach(ctx context.Context) context.Context {
	return context.WithoutCancel(ctx)
}

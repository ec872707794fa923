package aggregator

import (
	"errors"
	"net/http"

	"github.com/shandysiswandi/cryptogate/internal/aggregator/chain"
	"github.com/shandysiswandi/cryptogate/internal/aggregator/inbound"
	"github.com/shandysiswandi/cryptogate/internal/aggregator/outbound"
	"github.com/shandysiswandi/cryptogate/internal/aggregator/usecase"
	"github.com/shandysiswandi/cryptogate/internal/pkg/pkgconfig"
	"github.com/shandysiswandi/cryptogate/internal/pkg/pkgrouter"
)

type Dependency struct {
	Config     pkgconfig.Config
	Router     *pkgrouter.Router
	HTTPClient *http.Client
}

var ErrNoRouter = errors.New("aggregator: router is required")

func New(dep Dependency) error {
	if dep.Router == nil {
		return ErrNoRouter
	}

	client := dep.HTTPClient
	if client == nil {
		client = outbound.NewHTTPClient(dep.Config.GetDuration("http.client.timeout"))
	}

	uc := usecase.New(usecase.Dependency{
		MarketData: outbound.NewMarketData(client, outbound.MarketDataConfig{
			BaseURL:   dep.Config.GetString("marketdata.base_url"),
			APIKey:    dep.Config.GetString("marketdata.api_key"),
			ChartDays: int(dep.Config.GetInt("marketdata.chart_days")),
		}),
		RPC:    outbound.NewRPC(client),
		Chains: chain.NewRegistry(dep.Config.GetMap("chains.rpc")),
		FanOut: int(dep.Config.GetInt("aggregator.fan_out")),
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return nil
}

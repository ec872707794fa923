package inbound

import (
	"strings"

	"github.com/goccy/go-json"
	"github.com/shandysiswandi/cryptogate/internal/aggregator/entity"
)

// DegradedHeader names the upstream parts that fell back to a default.
const DegradedHeader = "X-Upstream-Degraded"

type MarketOverviewResponse struct {
	TopCoins  []entity.MarketCoin `json:"topCoins"`
	TopMovers entity.TopMovers    `json:"topMovers"`
	degraded  []string
}

func (r MarketOverviewResponse) Header() map[string]string {
	return degradedHeader(r.degraded)
}

type CoinDetailsResponse struct {
	Info       *entity.CoinInfo    `json:"info"`
	MarketData json.RawMessage     `json:"marketData"`
	ChartData  []entity.ChartPoint `json:"chartData"`
	Tickers    []entity.Ticker     `json:"tickers"`
	degraded   []string
}

func (r CoinDetailsResponse) Header() map[string]string {
	return degradedHeader(r.degraded)
}

func degradedHeader(parts []string) map[string]string {
	if len(parts) == 0 {
		return nil
	}
	return map[string]string{DegradedHeader: strings.Join(parts, ",")}
}

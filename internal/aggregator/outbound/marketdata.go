package outbound

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/shandysiswandi/cryptogate/internal/aggregator/entity"
)

const (
	// DefaultMarketDataURL is the CoinGecko Pro API root.
	DefaultMarketDataURL = "https://pro-api.coingecko.com/api/v3"
	// APIKeyHeader carries the static market-data key.
	APIKeyHeader = "x-cg-pro-api-key"

	currency = "usd"
)

// CoinMarket is one row of /coins/markets.
type CoinMarket struct {
	ID                       string        `json:"id"`
	Symbol                   string        `json:"symbol"`
	Name                     string        `json:"name"`
	CurrentPrice             entity.Amount `json:"current_price"`
	PriceChangePercentage24h entity.Amount `json:"price_change_percentage_24h"`
}

// GainersLosers is the body of /coins/top_gainers_losers.
type GainersLosers struct {
	TopGainers []json.RawMessage `json:"top_gainers"`
	TopLosers  []json.RawMessage `json:"top_losers"`
}

// Coin is the body of /coins/{id}.
type Coin struct {
	ID          string            `json:"id"`
	Symbol      string            `json:"symbol"`
	Name        string            `json:"name"`
	Description map[string]string `json:"description"`
	Links       json.RawMessage   `json:"links"`
	Image       json.RawMessage   `json:"image"`
	Categories  []string          `json:"categories"`
	MarketData  json.RawMessage   `json:"market_data"`
}

// MarketChart is the body of /coins/{id}/market_chart.
// Each price point is [timestamp_ms, price].
type MarketChart struct {
	Prices [][]json.Number `json:"prices"`
}

// CoinTicker is one entry of /coins/{id}/tickers.
type CoinTicker struct {
	Base   string `json:"base"`
	Target string `json:"target"`
	Market struct {
		Name string `json:"name"`
	} `json:"market"`
	Volume entity.Amount `json:"volume"`
}

type coinTickers struct {
	Tickers []CoinTicker `json:"tickers"`
}

// MarketData is a client for the CoinGecko-compatible market-data API.
// Every call is priced in USD.
type MarketData struct {
	client    *http.Client
	baseURL   string
	apiKey    string
	chartDays int
}

// MarketDataConfig configures NewMarketData.
type MarketDataConfig struct {
	BaseURL   string
	APIKey    string
	ChartDays int
}

// NewMarketData returns a MarketData client. Zero values fall back to the
// public defaults (CoinGecko Pro root, 30 days of chart).
func NewMarketData(client *http.Client, cfg MarketDataConfig) *MarketData {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultMarketDataURL
	}
	if cfg.ChartDays < 1 {
		cfg.ChartDays = 30
	}

	return &MarketData{
		client:    client,
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:    cfg.APIKey,
		chartDays: cfg.ChartDays,
	}
}

func (m *MarketData) get(ctx context.Context, path string, query url.Values, out any) error {
	u := m.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	header := http.Header{}
	if m.apiKey != "" {
		header.Set(APIKeyHeader, m.apiKey)
	}

	if err := getJSON(ctx, m.client, u, header, out); err != nil {
		return fmt.Errorf("market data %s: %w", path, err)
	}
	return nil
}

// TopCoins lists coins by market cap, in the order the API returns them.
func (m *MarketData) TopCoins(ctx context.Context) ([]CoinMarket, error) {
	var out []CoinMarket
	err := m.get(ctx, "/coins/markets", url.Values{
		"vs_currency": {currency},
		"order":       {"market_cap_desc"},
		"per_page":    {strconv.Itoa(entity.MaxTopCoins)},
		"page":        {"1"},
	}, &out)
	return out, err
}

// TopMovers returns the biggest 24h gainers and losers.
func (m *MarketData) TopMovers(ctx context.Context) (GainersLosers, error) {
	var out GainersLosers
	err := m.get(ctx, "/coins/top_gainers_losers", url.Values{
		"vs_currency": {currency},
	}, &out)
	return out, err
}

// CoinInfo returns metadata and market data for one coin.
func (m *MarketData) CoinInfo(ctx context.Context, id string) (Coin, error) {
	var out Coin
	err := m.get(ctx, "/coins/"+url.PathEscape(id), url.Values{
		"localization":   {"false"},
		"tickers":        {"false"},
		"market_data":    {"true"},
		"community_data": {"false"},
		"developer_data": {"false"},
	}, &out)
	return out, err
}

// CoinChart returns the daily price series of one coin.
func (m *MarketData) CoinChart(ctx context.Context, id string) (MarketChart, error) {
	var out MarketChart
	err := m.get(ctx, "/coins/"+url.PathEscape(id)+"/market_chart", url.Values{
		"vs_currency": {currency},
		"days":        {strconv.Itoa(m.chartDays)},
		"interval":    {"daily"},
	}, &out)
	return out, err
}

// CoinTickers returns the exchange markets of one coin.
func (m *MarketData) CoinTickers(ctx context.Context, id string) ([]CoinTicker, error) {
	var out coinTickers
	err := m.get(ctx, "/coins/"+url.PathEscape(id)+"/tickers", nil, &out)
	return out.Tickers, err
}

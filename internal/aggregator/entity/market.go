package entity

import "github.com/goccy/go-json"

// MaxTopCoins caps the top coins list of the market overview.
const MaxTopCoins = 100

// MarketCoin is one entry of the top coins list.
type MarketCoin struct {
	UID            string `json:"uid"`
	Name           string `json:"name"`
	Code           string `json:"code"`
	Price          Amount `json:"price"`
	PriceChange24h Amount `json:"price_change_24h"`
}

// TopMovers holds the upstream gainers and losers entries unchanged.
type TopMovers struct {
	Gainers []json.RawMessage `json:"gainers"`
	Losers  []json.RawMessage `json:"losers"`
}

// EmptyTopMovers is what the overview reports when movers are unavailable.
func EmptyTopMovers() TopMovers {
	return TopMovers{Gainers: []json.RawMessage{}, Losers: []json.RawMessage{}}
}

// MarketOverview merges the top coins and top movers calls.
// Degraded lists the parts that fell back to their empty default.
type MarketOverview struct {
	TopCoins  []MarketCoin
	TopMovers TopMovers
	Degraded  []string
}

package entity

import (
	"strconv"

	"github.com/goccy/go-json"
)

// CoinInfo is the metadata part of a coin lookup.
type CoinInfo struct {
	ID          string            `json:"id"`
	Symbol      string            `json:"symbol"`
	Name        string            `json:"name"`
	Description map[string]string `json:"description,omitempty"`
	Links       json.RawMessage   `json:"links,omitempty"`
	Image       json.RawMessage   `json:"image,omitempty"`
	Categories  []string          `json:"categories,omitempty"`
}

// ChartPoint is one [timestamp, price] sample of a price chart.
type ChartPoint struct {
	Timestamp int64
	Price     Amount
}

// MarshalJSON renders the point as a two element array.
func (p ChartPoint) MarshalJSON() ([]byte, error) {
	price, err := p.Price.MarshalJSON()
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, 32+len(price))
	out = append(out, '[')
	out = strconv.AppendInt(out, p.Timestamp, 10)
	out = append(out, ',')
	out = append(out, price...)
	return append(out, ']'), nil
}

// Ticker is one exchange market of a coin.
type Ticker struct {
	ExchangeName string `json:"exchangeName"`
	Pair         string `json:"pair"`
	Volume       Amount `json:"volume"`
}

// CoinDetails merges the info, chart and tickers calls. A nil field means
// the corresponding call failed.
type CoinDetails struct {
	Info       *CoinInfo
	MarketData json.RawMessage
	ChartData  []ChartPoint
	Tickers    []Ticker
	Degraded   []string
}

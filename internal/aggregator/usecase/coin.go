package usecase

import (
	"context"
	"log/slog"

	"github.com/goccy/go-json"
	"github.com/shandysiswandi/cryptogate/internal/aggregator/entity"
	"github.com/shandysiswandi/cryptogate/internal/aggregator/outbound"
	"github.com/shandysiswandi/cryptogate/internal/pkg/pkgroutine"
)

// CoinDetails fetches info, chart and tickers for id concurrently. Each part
// that fails is left nil; the others are returned as usual.
func (u *Usecase) CoinDetails(ctx context.Context, id string) (entity.CoinDetails, error) {
	ctx = detach(ctx)
	group := u.newGroup()

	infoF := pkgroutine.Submit(ctx, group, func(ctx context.Context) (outbound.Coin, error) {
		return u.market.CoinInfo(ctx, id)
	})
	chartF := pkgroutine.Submit(ctx, group, func(ctx context.Context) (outbound.MarketChart, error) {
		return u.market.CoinChart(ctx, id)
	})
	tickersF := pkgroutine.Submit(ctx, group, func(ctx context.Context) ([]outbound.CoinTicker, error) {
		return u.market.CoinTickers(ctx, id)
	})

	var out entity.CoinDetails

	if coin, err := infoF.Await(); err != nil {
		out.Degraded = append(out.Degraded, PartInfo)
	} else {
		out.Info, out.MarketData = projectInfo(coin)
	}

	if chart, err := chartF.Await(); err != nil {
		out.Degraded = append(out.Degraded, PartChart)
	} else {
		out.ChartData = projectChart(chart)
	}

	if tickers, err := tickersF.Await(); err != nil {
		out.Degraded = append(out.Degraded, PartTickers)
	} else {
		out.Tickers = projectTickers(tickers)
	}

	if err := group.Wait(); err != nil {
		slog.WarnContext(ctx, "coin details degraded", "coin", id, "degraded", out.Degraded, "error", err)
	}

	return out, nil
}

func projectInfo(c outbound.Coin) (*entity.CoinInfo, json.RawMessage) {
	info := &entity.CoinInfo{
		ID:          c.ID,
		Symbol:      c.Symbol,
		Name:        c.Name,
		Description: c.Description,
		Links:       c.Links,
		Image:       c.Image,
		Categories:  c.Categories,
	}

	marketData := c.MarketData
	if len(marketData) == 0 {
		marketData = json.RawMessage("null")
	}

	return info, marketData
}

// projectChart keeps [timestamp, price] of every point, in upstream order.
// Points that do not carry both are dropped.
func projectChart(chart outbound.MarketChart) []entity.ChartPoint {
	out := make([]entity.ChartPoint, 0, len(chart.Prices))
	for _, p := range chart.Prices {
		if len(p) < 2 {
			continue
		}
		ts, err := p[0].Int64()
		if err != nil {
			f, ferr := p[0].Float64()
			if ferr != nil {
				continue
			}
			ts = int64(f)
		}
		out = append(out, entity.ChartPoint{Timestamp: ts, Price: entity.NewAmount(p[1].String())})
	}
	return out
}

func projectTickers(tickers []outbound.CoinTicker) []entity.Ticker {
	out := make([]entity.Ticker, 0, len(tickers))
	for _, t := range tickers {
		out = append(out, entity.Ticker{
			ExchangeName: t.Market.Name,
			Pair:         t.Base + "/" + t.Target,
			Volume:       t.Volume,
		})
	}
	return out
}

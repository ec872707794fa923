package usecase

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/cryptogate/internal/aggregator/entity"
	"github.com/shandysiswandi/cryptogate/internal/aggregator/outbound"
	"github.com/shandysiswandi/cryptogate/internal/pkg/pkgroutine"
)

// Degraded part names, reported back to the caller.
const (
	PartTopCoins  = "topCoins"
	PartTopMovers = "topMovers"
	PartInfo      = "info"
	PartChart     = "chartData"
	PartTickers   = "tickers"
)

// MarketOverview fetches top coins and top movers concurrently. A failed call
// degrades its own part to an empty default and never fails the overview.
func (u *Usecase) MarketOverview(ctx context.Context) (entity.MarketOverview, error) {
	ctx = detach(ctx)
	group := u.newGroup()

	coinsF := pkgroutine.Submit(ctx, group, u.market.TopCoins)
	moversF := pkgroutine.Submit(ctx, group, u.market.TopMovers)

	out := entity.MarketOverview{
		TopCoins:  []entity.MarketCoin{},
		TopMovers: entity.EmptyTopMovers(),
	}

	if coins, err := coinsF.Await(); err != nil {
		out.Degraded = append(out.Degraded, PartTopCoins)
	} else {
		out.TopCoins = projectTopCoins(coins)
	}

	if movers, err := moversF.Await(); err != nil {
		out.Degraded = append(out.Degraded, PartTopMovers)
	} else {
		out.TopMovers = projectTopMovers(movers)
	}

	if err := group.Wait(); err != nil {
		slog.WarnContext(ctx, "market overview degraded", "degraded", out.Degraded, "error", err)
	}

	return out, nil
}

func projectTopCoins(coins []outbound.CoinMarket) []entity.MarketCoin {
	if len(coins) > entity.MaxTopCoins {
		coins = coins[:entity.MaxTopCoins]
	}

	out := make([]entity.MarketCoin, 0, len(coins))
	for _, c := range coins {
		out = append(out, entity.MarketCoin{
			UID:            c.ID,
			Name:           c.Name,
			Code:           c.Symbol,
			Price:          c.CurrentPrice,
			PriceChange24h: c.PriceChangePercentage24h,
		})
	}
	return out
}

func projectTopMovers(m outbound.GainersLosers) entity.TopMovers {
	out := entity.EmptyTopMovers()
	if m.TopGainers != nil {
		out.Gainers = m.TopGainers
	}
	if m.TopLosers != nil {
		out.Losers = m.TopLosers
	}
	return out
}

package inbound

import (
	"context"
	"strings"

	"github.com/shandysiswandi/cryptogate/internal/aggregator/entity"
	"github.com/shandysiswandi/cryptogate/internal/pkg/pkgerror"
	"github.com/shandysiswandi/cryptogate/internal/pkg/pkgrouter"
)

const (
	addressSegment = 4
	actionSegment  = 5
)

type HTTPEndpoint struct {
	uc uc
}

func (h *HTTPEndpoint) MarketOverview(ctx context.Context, _ pkgrouter.Request) (any, error) {
	result, err := h.uc.MarketOverview(ctx)
	if err != nil {
		return nil, err
	}

	return MarketOverviewResponse{
		TopCoins:  result.TopCoins,
		TopMovers: result.TopMovers,
		degraded:  result.Degraded,
	}, nil
}

func (h *HTTPEndpoint) CoinDetails(ctx context.Context, _ pkgrouter.Request) (any, error) {
	result, err := h.uc.CoinDetails(ctx, pkgrouter.GetParam(ctx, "id"))
	if err != nil {
		return nil, err
	}

	return CoinDetailsResponse{
		Info:       result.Info,
		MarketData: result.MarketData,
		ChartData:  result.ChartData,
		Tickers:    result.Tickers,
		degraded:   result.Degraded,
	}, nil
}

func (h *HTTPEndpoint) Address(ctx context.Context, req pkgrouter.Request) (any, error) {
	parts := strings.Split(req.Path, "/")
	if len(parts) <= actionSegment {
		return nil, pkgerror.NewBadRequest("Invalid address request")
	}

	return h.uc.Address(ctx, entity.AddressRequest{
		Address: parts[addressSegment],
		Action:  entity.AddressAction(parts[actionSegment]),
		Chain:   req.QueryValue("blockchain", entity.DefaultChain),
		Body:    req.Body,
	})
}

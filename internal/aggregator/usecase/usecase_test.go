package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/big"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/goccy/go-json"
	"github.com/shandysiswandi/cryptogate/internal/aggregator/chain"
	"github.com/shandysiswandi/cryptogate/internal/aggregator/entity"
	"github.com/shandysiswandi/cryptogate/internal/aggregator/outbound"
	"github.com/shandysiswandi/cryptogate/internal/pkg/pkgerror"
	"github.com/shandysiswandi/cryptogate/internal/pkg/pkgroutine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errUpstream = errors.New("upstream unavailable")

type fakeMarket struct {
	coins    []outbound.CoinMarket
	movers   outbound.GainersLosers
	coin     outbound.Coin
	chart    outbound.MarketChart
	tickers  []outbound.CoinTicker
	failures map[string]bool
}

// fail mimics a real client: a canceled context aborts the call.
func (f *fakeMarket) fail(ctx context.Context, part string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if f.failures[part] {
		return errUpstream
	}
	return nil
}

func (f *fakeMarket) TopCoins(ctx context.Context) ([]outbound.CoinMarket, error) {
	return f.coins, f.fail(ctx, "coins")
}

func (f *fakeMarket) TopMovers(ctx context.Context) (outbound.GainersLosers, error) {
	return f.movers, f.fail(ctx, "movers")
}

func (f *fakeMarket) CoinInfo(ctx context.Context, _ string) (outbound.Coin, error) {
	if f.failures["panic-info"] {
		panic("decoder exploded")
	}
	return f.coin, f.fail(ctx, "info")
}

func (f *fakeMarket) CoinChart(ctx context.Context, _ string) (outbound.MarketChart, error) {
	return f.chart, f.fail(ctx, "chart")
}

func (f *fakeMarket) CoinTickers(ctx context.Context, _ string) ([]outbound.CoinTicker, error) {
	return f.tickers, f.fail(ctx, "tickers")
}

type rpcCall struct {
	endpoint string
	method   string
	params   []any
}

type fakeRPC struct {
	mu     sync.Mutex
	calls  []rpcCall
	ctxErr []error
	out    json.RawMessage
	err    error
}

func (f *fakeRPC) Call(ctx context.Context, endpoint, method string, params ...any) (json.RawMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, rpcCall{endpoint: endpoint, method: method, params: params})
	f.ctxErr = append(f.ctxErr, ctx.Err())
	return f.out, f.err
}

func quiet(t *testing.T) {
	t.Helper()
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })
}

func newTestUsecase(market *fakeMarket, rpc *fakeRPC) *Usecase {
	return New(Dependency{
		MarketData: market,
		RPC:        rpc,
		Chains:     chain.NewRegistry(nil),
	})
}

func sampleCoins(n int) []outbound.CoinMarket {
	coins := make([]outbound.CoinMarket, n)
	for i := range coins {
		coins[i] = outbound.CoinMarket{
			ID:                       fmt.Sprintf("coin-%03d", i),
			Symbol:                   fmt.Sprintf("c%d", i),
			Name:                     fmt.Sprintf("Coin %d", i),
			CurrentPrice:             entity.NewAmount(fmt.Sprintf("%d.5", i)),
			PriceChangePercentage24h: entity.NewAmount("-0.25"),
		}
	}
	return coins
}

func TestMarketOverviewProjectsAndTruncates(t *testing.T) {
	market := &fakeMarket{
		coins: sampleCoins(120),
		movers: outbound.GainersLosers{
			TopGainers: []json.RawMessage{json.RawMessage(`{"id":"up"}`)},
			TopLosers:  []json.RawMessage{json.RawMessage(`{"id":"down"}`)},
		},
	}

	out, err := newTestUsecase(market, &fakeRPC{}).MarketOverview(context.Background())
	require.NoError(t, err)

	require.Len(t, out.TopCoins, entity.MaxTopCoins)
	assert.Equal(t, "coin-000", out.TopCoins[0].UID)
	assert.Equal(t, "coin-099", out.TopCoins[99].UID)
	assert.Equal(t, "c0", out.TopCoins[0].Code)
	assert.Equal(t, "Coin 0", out.TopCoins[0].Name)
	assert.Equal(t, "0.5", out.TopCoins[0].Price.Decimal.String())
	assert.Equal(t, "-0.25", out.TopCoins[0].PriceChange24h.Decimal.String())

	encoded, err := json.Marshal(out.TopCoins[0])
	require.NoError(t, err)
	assert.JSONEq(t, `{"uid":"coin-000","name":"Coin 0","code":"c0","price":0.5,"price_change_24h":-0.25}`, string(encoded))

	assert.Len(t, out.TopMovers.Gainers, 1)
	assert.Len(t, out.TopMovers.Losers, 1)
	assert.Empty(t, out.Degraded)
}

func TestMarketOverviewToleratesEachFailure(t *testing.T) {
	quiet(t)

	t.Run("top coins down", func(t *testing.T) {
		market := &fakeMarket{
			movers:   outbound.GainersLosers{TopGainers: []json.RawMessage{json.RawMessage(`{"id":"up"}`)}},
			failures: map[string]bool{"coins": true},
		}

		out, err := newTestUsecase(market, &fakeRPC{}).MarketOverview(context.Background())
		require.NoError(t, err)
		assert.NotNil(t, out.TopCoins)
		assert.Empty(t, out.TopCoins)
		assert.Len(t, out.TopMovers.Gainers, 1)
		assert.NotNil(t, out.TopMovers.Losers, "missing upstream list renders as []")
		assert.Equal(t, []string{PartTopCoins}, out.Degraded)
	})

	t.Run("top movers down", func(t *testing.T) {
		market := &fakeMarket{
			coins:    sampleCoins(3),
			failures: map[string]bool{"movers": true},
		}

		out, err := newTestUsecase(market, &fakeRPC{}).MarketOverview(context.Background())
		require.NoError(t, err)
		assert.Len(t, out.TopCoins, 3)
		assert.Equal(t, entity.EmptyTopMovers(), out.TopMovers)
		assert.Equal(t, []string{PartTopMovers}, out.Degraded)
	})

	t.Run("everything down", func(t *testing.T) {
		market := &fakeMarket{failures: map[string]bool{"coins": true, "movers": true}}

		out, err := newTestUsecase(market, &fakeRPC{}).MarketOverview(context.Background())
		require.NoError(t, err)
		assert.Empty(t, out.TopCoins)
		assert.Equal(t, []string{PartTopCoins, PartTopMovers}, out.Degraded)
	})
}

func detailsMarket(failures map[string]bool) *fakeMarket {
	return &fakeMarket{
		coin: outbound.Coin{
			ID: "bitcoin", Symbol: "btc", Name: "Bitcoin",
			Categories: []string{"Layer 1 (L1)"},
			MarketData: json.RawMessage(`{"current_price":{"usd":67187}}`),
		},
		chart: outbound.MarketChart{Prices: [][]json.Number{
			{"1711843200000", "69702.3087"},
			{"bogus"},
			{"1711929600000", "71246.9514", "extra"},
		}},
		tickers: []outbound.CoinTicker{
			{Base: "BTC", Target: "USDT", Volume: entity.NewAmount("12345.67")},
		},
		failures: failures,
	}
}

func TestCoinDetailsAllPartsPresent(t *testing.T) {
	market := detailsMarket(nil)
	market.tickers[0].Market.Name = "Binance"

	out, err := newTestUsecase(market, &fakeRPC{}).CoinDetails(context.Background(), "bitcoin")
	require.NoError(t, err)

	require.NotNil(t, out.Info)
	assert.Equal(t, "Bitcoin", out.Info.Name)
	assert.JSONEq(t, `{"current_price":{"usd":67187}}`, string(out.MarketData))

	require.Len(t, out.ChartData, 2)
	assert.Equal(t, int64(1711843200000), out.ChartData[0].Timestamp)
	assert.Equal(t, "71246.9514", out.ChartData[1].Price.Decimal.String())

	point, err := json.Marshal(out.ChartData[0])
	require.NoError(t, err)
	assert.Equal(t, `[1711843200000,69702.3087]`, string(point))

	require.Len(t, out.Tickers, 1)
	assert.Equal(t, entity.Ticker{ExchangeName: "Binance", Pair: "BTC/USDT", Volume: entity.NewAmount("12345.67")}, out.Tickers[0])
	assert.Empty(t, out.Degraded)
}

func TestCoinDetailsPartsDegradeIndependently(t *testing.T) {
	quiet(t)

	for _, failing := range []string{"info", "chart", "tickers", "panic-info"} {
		t.Run(failing, func(t *testing.T) {
			out, err := newTestUsecase(detailsMarket(map[string]bool{failing: true}), &fakeRPC{}).
				CoinDetails(context.Background(), "bitcoin")
			require.NoError(t, err)

			infoFailed := failing == "info" || failing == "panic-info"
			assert.Equal(t, infoFailed, out.Info == nil)
			assert.Equal(t, infoFailed, out.MarketData == nil)
			assert.Equal(t, failing == "chart", out.ChartData == nil)
			assert.Equal(t, failing == "tickers", out.Tickers == nil)
			assert.Len(t, out.Degraded, 1)
		})
	}
}

func TestCoinDetailsMissingMarketDataIsNull(t *testing.T) {
	market := detailsMarket(nil)
	market.coin.MarketData = nil

	out, err := newTestUsecase(market, &fakeRPC{}).CoinDetails(context.Background(), "bitcoin")
	require.NoError(t, err)
	assert.Equal(t, "null", string(out.MarketData))
}

func TestAddressBalanceDefaultsToEthereum(t *testing.T) {
	rpc := &fakeRPC{out: json.RawMessage(`{"jsonrpc":"2.0","id":1,"result":"0x0"}`)}

	out, err := newTestUsecase(&fakeMarket{}, rpc).Address(context.Background(), entity.AddressRequest{
		Address: "0xABC",
		Action:  entity.ActionBalance,
	})
	require.NoError(t, err)
	assert.Equal(t, `{"jsonrpc":"2.0","id":1,"result":"0x0"}`, string(out))

	require.Len(t, rpc.calls, 1)
	assert.Equal(t, rpcCall{endpoint: chain.EthereumRPC, method: "eth_getBalance", params: []any{"0xABC", "latest"}}, rpc.calls[0])
}

func TestAddressBroadcastUsesSelectedChain(t *testing.T) {
	rpc := &fakeRPC{out: json.RawMessage(`{"jsonrpc":"2.0","id":1,"result":"0xhash"}`)}

	_, err := newTestUsecase(&fakeMarket{}, rpc).Address(context.Background(), entity.AddressRequest{
		Address: "0xABC",
		Action:  entity.ActionBroadcast,
		Chain:   "polygon",
		Body:    "0xf86b",
	})
	require.NoError(t, err)

	require.Len(t, rpc.calls, 1)
	assert.Equal(t, rpcCall{endpoint: chain.PolygonRPC, method: "eth_sendRawTransaction", params: []any{"0xf86b"}}, rpc.calls[0])
}

func TestAddressClientErrors(t *testing.T) {
	cases := []struct {
		name string
		req  entity.AddressRequest
		msg  string
	}{
		{"unsupported chain", entity.AddressRequest{Address: "0xABC", Action: entity.ActionBalance, Chain: "xyz"}, "Unsupported blockchain: xyz"},
		{"empty broadcast", entity.AddressRequest{Address: "0xABC", Action: entity.ActionBroadcast}, "Signed transaction is required"},
		{"unknown action", entity.AddressRequest{Address: "0xABC", Action: "transfer"}, "Invalid action: transfer"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rpc := &fakeRPC{}
			_, err := newTestUsecase(&fakeMarket{}, rpc).Address(context.Background(), tc.req)

			var perr *pkgerror.Error
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, http.StatusBadRequest, perr.StatusCode())
			assert.Equal(t, tc.msg, perr.Msg())
			assert.Empty(t, rpc.calls, "no rpc call on client error")
		})
	}
}

func TestAddressRPCFailure(t *testing.T) {
	quiet(t)
	rpc := &fakeRPC{err: errors.New("dial tcp: connection refused")}

	_, err := newTestUsecase(&fakeMarket{}, rpc).Address(context.Background(), entity.AddressRequest{
		Address: "0xABC",
		Action:  entity.ActionBalance,
		Chain:   "arbitrum",
	})

	var perr *pkgerror.Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, http.StatusInternalServerError, perr.StatusCode())
	assert.Equal(t, "Blockchain RPC request failed", perr.Msg())
	assert.ErrorIs(t, err, rpc.err)
}

func TestTxHash(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)

	to := common.HexToAddress("0x000000000000000000000000000000000000dEaD")
	tx, err := types.SignNewTx(key, types.LatestSignerForChainID(big.NewInt(1)), &types.DynamicFeeTx{
		ChainID:   big.NewInt(1),
		Nonce:     7,
		GasTipCap: big.NewInt(1),
		GasFeeCap: big.NewInt(2),
		Gas:       21000,
		To:        &to,
		Value:     big.NewInt(1),
	})
	require.NoError(t, err)

	raw, err := tx.MarshalBinary()
	require.NoError(t, err)

	hash, ok := txHash(hexutil.Encode(raw))
	require.True(t, ok)
	assert.Equal(t, tx.Hash().Hex(), hash)

	_, ok = txHash("not-hex")
	assert.False(t, ok)
	_, ok = txHash("0xdeadbeef")
	assert.False(t, ok)
}

func TestNewRaisesFanOutToWidestRequest(t *testing.T) {
	cases := []struct {
		in, want int
	}{
		{0, pkgroutine.DefaultMaxGoroutine},
		{-4, pkgroutine.DefaultMaxGoroutine},
		{1, MinFanOut},
		{2, MinFanOut},
		{3, 3},
		{25, 25},
	}

	for _, tc := range cases {
		u := New(Dependency{FanOut: tc.in})
		assert.Equal(t, tc.want, u.fanOut, "fan out %d", tc.in)
	}
}

func TestCoinDetailsRunsPartsConcurrentlyAtMinimumFanOut(t *testing.T) {
	gate := &gatedMarket{
		fakeMarket: detailsMarket(nil),
		in:         make(chan struct{}, MinFanOut),
		release:    make(chan struct{}),
	}
	u := New(Dependency{MarketData: gate, RPC: &fakeRPC{}, Chains: chain.NewRegistry(nil), FanOut: 1})

	done := make(chan entity.CoinDetails, 1)
	go func() {
		out, _ := u.CoinDetails(context.Background(), "bitcoin")
		done <- out
	}()

	// Every part blocks until all three are in flight together.
	for i := 0; i < MinFanOut; i++ {
		select {
		case <-gate.in:
		case <-time.After(2 * time.Second):
			t.Fatalf("only %d of %d parts started", i, MinFanOut)
		}
	}
	close(gate.release)

	out := <-done
	assert.Empty(t, out.Degraded)
}

type gatedMarket struct {
	*fakeMarket
	in      chan struct{}
	release chan struct{}
}

func (g *gatedMarket) wait() {
	g.in <- struct{}{}
	<-g.release
}

func (g *gatedMarket) CoinInfo(ctx context.Context, id string) (outbound.Coin, error) {
	g.wait()
	return g.fakeMarket.CoinInfo(ctx, id)
}

func (g *gatedMarket) CoinChart(ctx context.Context, id string) (outbound.MarketChart, error) {
	g.wait()
	return g.fakeMarket.CoinChart(ctx, id)
}

func (g *gatedMarket) CoinTickers(ctx context.Context, id string) ([]outbound.CoinTicker, error) {
	g.wait()
	return g.fakeMarket.CoinTickers(ctx, id)
}

func TestUpstreamCallsOutliveCanceledCaller(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	market := detailsMarket(nil)
	market.coins = sampleCoins(2)
	rpc := &fakeRPC{out: json.RawMessage(`{"jsonrpc":"2.0","id":1,"result":"0xhash"}`)}
	u := newTestUsecase(market, rpc)

	details, err := u.CoinDetails(ctx, "bitcoin")
	require.NoError(t, err)
	assert.Empty(t, details.Degraded)

	overview, err := u.MarketOverview(ctx)
	require.NoError(t, err)
	assert.Empty(t, overview.Degraded)
	assert.Len(t, overview.TopCoins, 2)

	out, err := u.Address(ctx, entity.AddressRequest{Address: "0xABC", Action: entity.ActionBroadcast, Body: "0xf86b"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"jsonrpc":"2.0","id":1,"result":"0xhash"}`, string(out))
	assert.Equal(t, []error{nil}, rpc.ctxErr)
}

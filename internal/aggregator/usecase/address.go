package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/goccy/go-json"
	"github.com/shandysiswandi/cryptogate/internal/aggregator/entity"
	"github.com/shandysiswandi/cryptogate/internal/pkg/pkgerror"
)

const msgRPCFailed = "Blockchain RPC request failed"

// Address serves a balance lookup or a transaction broadcast on the chain
// named in req, returning the RPC response body as received.
func (u *Usecase) Address(ctx context.Context, req entity.AddressRequest) (json.RawMessage, error) {
	name := req.Chain
	if name == "" {
		name = entity.DefaultChain
	}

	chain, ok := u.chains.Lookup(name)
	if !ok {
		return nil, pkgerror.NewBadRequest(fmt.Sprintf("Unsupported blockchain: %s", name))
	}

	switch req.Action {
	case entity.ActionBalance:
		return u.call(ctx, chain, "eth_getBalance", req.Address, "latest")

	case entity.ActionBroadcast:
		if req.Body == "" {
			return nil, pkgerror.NewBadRequest("Signed transaction is required")
		}
		if hash, ok := txHash(req.Body); ok {
			slog.InfoContext(ctx, "broadcasting transaction", "chain", chain.Name, "tx_hash", hash)
		}
		return u.call(ctx, chain, "eth_sendRawTransaction", req.Body)

	default:
		return nil, pkgerror.NewBadRequest(fmt.Sprintf("Invalid action: %s", req.Action))
	}
}

func (u *Usecase) call(ctx context.Context, chain entity.Chain, method string, params ...any) (json.RawMessage, error) {
	out, err := u.rpc.Call(detach(ctx), chain.RPCURL, method, params...)
	if err != nil {
		slog.ErrorContext(ctx, "blockchain rpc call failed", "chain", chain.Name, "method", method, "error", err)
		return nil, pkgerror.NewUpstream(err, msgRPCFailed)
	}
	return out, nil
}

// txHash decodes a hex encoded signed transaction and returns its hash.
// It only feeds logs: a payload it cannot decode is still forwarded.
func txHash(raw string) (string, bool) {
	data, err := hexutil.Decode(strings.TrimSpace(raw))
	if err != nil {
		return "", false
	}

	var tx types.Transaction
	if err := tx.UnmarshalBinary(data); err != nil {
		return "", false
	}

	return tx.Hash().Hex(), true
}

package outbound

import (
	"context"
	"errors"
	"net/http"

	"github.com/goccy/go-json"
)

// ErrInvalidRPCBody is returned when an endpoint answers 2xx with something
// that is not JSON.
var ErrInvalidRPCBody = errors.New("rpc response is not valid JSON")

// RPCRequest is a JSON-RPC 2.0 request envelope.
type RPCRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      int    `json:"id"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
}

// NewRPCRequest builds the envelope for method. The id is always 1: every
// call is its own HTTP round trip, so ids never need to be told apart.
func NewRPCRequest(method string, params ...any) RPCRequest {
	if params == nil {
		params = []any{}
	}
	return RPCRequest{JSONRPC: "2.0", ID: 1, Method: method, Params: params}
}

// RPC forwards JSON-RPC calls to chain endpoints.
type RPC struct {
	client *http.Client
}

// NewRPC returns an RPC forwarder using client.
func NewRPC(client *http.Client) *RPC {
	return &RPC{client: client}
}

// Call posts method(params...) to endpoint and returns the response body
// untouched, JSON-RPC error objects included. Transport failures and non-2xx
// answers are errors.
func (r *RPC) Call(ctx context.Context, endpoint, method string, params ...any) (json.RawMessage, error) {
	body, err := postJSON(ctx, r.client, endpoint, NewRPCRequest(method, params...))
	if err != nil {
		return nil, err
	}

	if !json.Valid(body) {
		return nil, ErrInvalidRPCBody
	}

	return json.RawMessage(body), nil
}

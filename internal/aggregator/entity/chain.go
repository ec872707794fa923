package entity

// DefaultChain is used when a request names no chain.
const DefaultChain = "eth"

// Chain is an EVM network reachable over a public JSON-RPC endpoint.
type Chain struct {
	Name   string
	RPCURL string
}

// AddressAction is what an address request asks the chain to do.
type AddressAction string

const (
	ActionBalance   AddressAction = "balance"
	ActionBroadcast AddressAction = "broadcast"
)

// AddressRequest is the decoded form of /api/v1/addresses/{address}/{action}.
type AddressRequest struct {
	Address string
	Action  AddressAction
	Chain   string
	Body    string
}

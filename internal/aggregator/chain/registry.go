// Package chain holds the table of supported EVM networks and their RPC endpoints.
package chain

import (
	"sort"

	"github.com/shandysiswandi/cryptogate/internal/aggregator/entity"
)

// Public JSON-RPC endpoints.
const (
	EthereumRPC  = "https://ethereum-rpc.publicnode.com"
	BSCRPC       = "https://bsc-rpc.publicnode.com"
	PolygonRPC   = "https://polygon-bor-rpc.publicnode.com"
	AvalancheRPC = "https://avalanche-c-chain-rpc.publicnode.com"
	OptimismRPC  = "https://optimism-rpc.publicnode.com"
	ArbitrumRPC  = "https://arbitrum-one-rpc.publicnode.com"
)

func defaults() map[string]string {
	return map[string]string{
		"eth":       EthereumRPC,
		"bsc":       BSCRPC,
		"polygon":   PolygonRPC,
		"avalanche": AvalancheRPC,
		"optimism":  OptimismRPC,
		"arbitrum":  ArbitrumRPC,
	}
}

// Registry is the immutable chain table, built once at startup.
type Registry struct {
	chains map[string]entity.Chain
}

// NewRegistry builds the table from the built-in endpoints. overrides may
// replace the URL of a supported chain; names outside the supported set are
// ignored so configuration cannot add chains.
func NewRegistry(overrides map[string]string) *Registry {
	urls := defaults()
	for name, url := range overrides {
		if _, ok := urls[name]; ok && url != "" {
			urls[name] = url
		}
	}

	chains := make(map[string]entity.Chain, len(urls))
	for name, url := range urls {
		chains[name] = entity.Chain{Name: name, RPCURL: url}
	}

	return &Registry{chains: chains}
}

// Lookup returns the chain registered under name.
func (r *Registry) Lookup(name string) (entity.Chain, bool) {
	c, ok := r.chains[name]
	return c, ok
}

// Names lists the supported chains in lexical order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.chains))
	for name := range r.chains {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

package cmd

import (
	"github.com/spf13/cobra"
)

var version = "0.1.0"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "cryptogate",
		Short: "Market data and blockchain RPC aggregator",
		Long: `cryptogate aggregates a market-data API and public EVM JSON-RPC
endpoints behind three routes:

  GET  /api/v1/market/overview
  GET  /api/v1/coins/{id}/details
  GET  /api/v1/addresses/{address}/balance?blockchain=eth
  POST /api/v1/addresses/{address}/broadcast?blockchain=eth

Configuration is read from $CONFIG_PATH (default ./config/config.yaml) and
the environment, e.g. MARKETDATA_API_KEY.

Examples:
  cryptogate serve
  cryptogate invoke --path /api/v1/coins/bitcoin/details
  cryptogate invoke --path /api/v1/addresses/0xABC/balance --query blockchain=polygon`,
		SilenceUsage: true,
	}

	root.AddCommand(newServeCmd())
	root.AddCommand(newInvokeCmd())
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("cryptogate v%s\n", version)
		},
	})

	return root
}

// Execute runs the command line.
func Execute() error {
	return newRootCmd().Execute()
}

package cmd

import (
	"context"
	"time"

	"github.com/shandysiswandi/cryptogate/internal/app"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var shutdownTimeout time.Duration

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			application := app.New()    // Initialize the application
			wait := application.Start() // Start the application and wait for the termination signal
			<-wait                      // Wait for the application to receive a termination signal

			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()

			application.Stop(ctx) // Stop the application gracefully
			return nil
		},
	}

	cmd.Flags().DurationVar(&shutdownTimeout, "shutdown-timeout", 10*time.Second, "grace period for in-flight requests")

	return cmd
}

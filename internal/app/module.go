package app

import (
	"log/slog"
	"os"

	"github.com/shandysiswandi/cryptogate/internal/aggregator"
)

func (a *App) initModules() {
	err := aggregator.New(aggregator.Dependency{
		Config:     a.config,
		Router:     a.router,
		HTTPClient: a.httpClient,
	})
	if err != nil {
		slog.Error("failed to init module aggregator", "error", err)
		os.Exit(1)
	}
}

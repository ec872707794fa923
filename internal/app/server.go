package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"syscall"
)

// Start serves HTTP in the background. The returned channel is closed once
// an interrupt or termination signal arrives.
func (a *App) Start() <-chan struct{} {
	done := make(chan struct{})

	go func() {
		slog.Info("http server listening",
			"address", a.httpServer.Addr,
			"marketdata", a.config.GetString("marketdata.base_url"),
			"timeout", a.httpClient.Timeout.String(),
		)

		if err := a.httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			slog.Error("failed to listen and serve http server", "error", err)
			os.Exit(1)
		}
	}()

	sigCtx, stop := signal.NotifyContext(a.ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	go func() {
		defer stop()
		<-sigCtx.Done()

		slog.Info("termination signal received")
		close(done)
	}()

	return done
}

// Stop drains in-flight requests first, then releases every other resource.
func (a *App) Stop(ctx context.Context) {
	if a.cancel != nil {
		defer a.cancel()
	}

	if err := a.closerFn[closerHTTPServer](ctx); err != nil {
		slog.ErrorContext(ctx, "failed to close resources", "name", closerHTTPServer, "error", err)
	}

	names := make([]string, 0, len(a.closerFn))
	for name := range a.closerFn {
		if name != closerHTTPServer {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	for _, name := range names {
		if err := a.closerFn[name](ctx); err != nil {
			slog.ErrorContext(ctx, "failed to close resources", "name", name, "error", err)
		}
	}

	slog.InfoContext(ctx, "application gracefully shutdown")
}

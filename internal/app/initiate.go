package app

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/rs/cors"
	"github.com/shandysiswandi/cryptogate/internal/aggregator/inbound"
	"github.com/shandysiswandi/cryptogate/internal/aggregator/outbound"
	"github.com/shandysiswandi/cryptogate/internal/pkg/pkgconfig"
	"github.com/shandysiswandi/cryptogate/internal/pkg/pkglog"
	"github.com/shandysiswandi/cryptogate/internal/pkg/pkgrouter"
	"github.com/shandysiswandi/cryptogate/internal/pkg/pkguid"
)

const defaultConfigPath = "./config/config.yaml"

const closerHTTPServer = "HTTP Server"

func defaults() map[string]any {
	return map[string]any{
		"log.level":             "info",
		"server.address.http":   ":8080",
		"server.cors.origins":   "*",
		"http.client.timeout":   outbound.DefaultTimeout.String(),
		"marketdata.base_url":   outbound.DefaultMarketDataURL,
		"marketdata.api_key":    "",
		"marketdata.chart_days": 30,
		"aggregator.fan_out":    10,
		"chains.rpc":            "",
	}
}

func (a *App) initConfig() {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = defaultConfigPath
	}

	cfg, err := pkgconfig.NewViper(path, defaults())
	if err != nil {
		slog.Error("failed to init config", "path", path, "error", err)
		os.Exit(1)
	}

	if tz := cfg.GetString("tz"); tz != "" {
		//nolint:errcheck,gosec // ignore error
		os.Setenv("TZ", tz)
	}

	a.config = cfg
}

func (a *App) initLogging() {
	pkglog.InitLogging(a.logOutput, a.config.GetString("log.level"))
}

func (a *App) initLibraries() {
	a.uuid = pkguid.NewUUID()
	a.httpClient = outbound.NewHTTPClient(a.config.GetDuration("http.client.timeout"))
}

func (a *App) initHTTPServer() {
	a.router = pkgrouter.NewRouter(a.uuid)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: a.config.GetArray("server.cors.origins"),
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodOptions,
		},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{pkgrouter.HeaderCorrelationID, inbound.DegradedHeader},
	})

	a.router.Use(corsHandler.Handler)
	a.handler = a.router
	a.httpServer = &http.Server{
		Addr:              a.config.GetString("server.address.http"),
		Handler:           a.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func (a *App) initClosers() {
	if a.closerFn == nil {
		a.closerFn = map[string]func(context.Context) error{}
	}

	a.closerFn[closerHTTPServer] = func(ctx context.Context) error {
		return a.httpServer.Shutdown(ctx)
	}
	a.closerFn["HTTP Client"] = func(context.Context) error {
		a.httpClient.CloseIdleConnections()
		return nil
	}
	a.closerFn["Config"] = func(context.Context) error {
		return a.config.Close()
	}
}

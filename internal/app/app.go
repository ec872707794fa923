package app

import (
	"context"
	"io"
	"net/http"
	"os"

	"github.com/shandysiswandi/cryptogate/internal/pkg/pkgconfig"
	"github.com/shandysiswandi/cryptogate/internal/pkg/pkgrouter"
	"github.com/shandysiswandi/cryptogate/internal/pkg/pkguid"
)

type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	// configuration
	config pkgconfig.Config

	// libraries
	uuid pkguid.StringID

	// resources
	httpClient *http.Client

	// server
	router     *pkgrouter.Router
	handler    http.Handler
	httpServer *http.Server

	//
	closerFn map[string]func(context.Context) error

	logOutput io.Writer
}

type Option func(*App)

// WithLogOutput sends logs to w instead of stdout.
func WithLogOutput(w io.Writer) Option {
	return func(a *App) {
		a.logOutput = w
	}
}

func New(opts ...Option) *App {
	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		ctx:       ctx,
		cancel:    cancel,
		logOutput: os.Stdout,
	}
	for _, opt := range opts {
		opt(app)
	}

	app.initConfig()
	app.initLogging()
	app.initLibraries()
	app.initHTTPServer()
	app.initModules()
	app.initClosers()

	return app
}

// Router exposes the route table for callers that dispatch without a listener.
func (a *App) Router() *pkgrouter.Router {
	return a.router
}

// Handler is the full HTTP stack: router middleware, CORS, then routes.
func (a *App) Handler() http.Handler {
	return a.handler
}

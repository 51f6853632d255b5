package server

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	xhttp "TechAnalyst/pkg/http"
	applogger "TechAnalyst/pkg/logger"
)

// Closer is a resource released on shutdown, after the HTTP server stops.
type Closer struct {
	Name string
	io.Closer
}

// CloserFunc adapts a function to io.Closer.
type CloserFunc func() error

func (f CloserFunc) Close() error { return f() }

// App encapsulates the entire application lifecycle.
type App struct {
	l          *applogger.Logger
	httpServer *xhttp.Server
	closers    []Closer
}

// New creates an App. Closers are released in the given order.
func New(l *applogger.Logger, httpServer *xhttp.Server, closers ...Closer) *App {
	if l == nil {
		l = applogger.NewNop()
	}
	return &App{l: l, httpServer: httpServer, closers: closers}
}

// Run starts the application and blocks until SIGINT or SIGTERM.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return a.RunContext(ctx)
}

// RunContext serves until ctx is done or the listener fails, then shuts down.
func (a *App) RunContext(ctx context.Context) error {
	errCh := a.httpServer.Start()

	var serveErr error
	select {
	case <-ctx.Done():
		a.l.Info("shutdown signal received")
	case err, ok := <-errCh:
		if ok && err != nil {
			serveErr = fmt.Errorf("http server: %w", err)
		}
	}

	if err := a.shutdown(); err != nil && serveErr == nil {
		return err
	}
	return serveErr
}

// shutdown stops HTTP first so no request races a closed dependency.
func (a *App) shutdown() error {
	a.l.Info("shutting down")

	var firstErr error
	if err := a.httpServer.Stop(context.Background()); err != nil {
		a.l.Error("http shutdown error", applogger.Error(err))
		firstErr = err
	}

	for _, c := range a.closers {
		if c.Closer == nil {
			continue
		}
		if err := c.Close(); err != nil {
			a.l.Warn("close error", applogger.String("resource", c.Name), applogger.Error(err))
			if firstErr == nil {
				firstErr = fmt.Errorf("close %s: %w", c.Name, err)
			}
		}
	}

	a.l.Info("shutdown complete")
	return firstErr
}

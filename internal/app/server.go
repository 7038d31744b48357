package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Start launches the configured transport and returns a channel closed on
// shutdown: a termination signal, or the stdio peer closing the stream.
func (a *App) Start() <-chan struct{} {
	terminateChan := make(chan struct{})
	var once sync.Once
	terminate := func(reason string) {
		once.Do(func() {
			slog.Info("application shutting down", "reason", reason)
			close(terminateChan)
		})
	}

	switch a.transport {
	case transportHTTP:
		a.goroutine.Go(a.ctx, func(context.Context) error {
			slog.Info("http server listening", "address", a.httpServer.Addr)

			if err := a.httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				slog.Error("failed to listen and serve http server", "error", err)
				os.Exit(1)
			}
			return nil
		})

	default:
		a.goroutine.Go(a.ctx, func(ctx context.Context) error {
			slog.Info("mcp server serving on stdio")
			defer terminate("stdio transport closed")

			if err := a.mcpServer.Run(ctx, &mcp.StdioTransport{}); err != nil && !errors.Is(err, context.Canceled) {
				slog.Warn("mcp stdio session ended", "error", err)
			}
			return nil
		})
	}

	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
		defer signal.Stop(sigint)

		select {
		case <-sigint:
			terminate("signal received")
		case <-terminateChan:
		}
	}()

	return terminateChan
}

// Stop gracefully shuts down the server and closes resources.
func (a *App) Stop(ctx context.Context) {
	a.ready.Store(false)

	if a.httpServer != nil {
		if err := a.httpServer.Shutdown(ctx); err != nil {
			slog.ErrorContext(ctx, "failed to close resources", "name", "HTTP Server", "error", err)
		}
	}

	if a.cancel != nil {
		a.cancel()
	}

	slog.InfoContext(ctx, "waiting for all goroutine to finish")
	if err := a.goroutine.Wait(ctx); err != nil {
		slog.ErrorContext(ctx, "error from goroutines executions", "error", err)
	}

	for _, closer := range a.closers {
		if err := closer.fn(ctx); err != nil {
			slog.ErrorContext(ctx, "failed to close resources", "name", closer.name, "error", err)
		}
	}

	slog.InfoContext(ctx, "application gracefully shutdown")
}

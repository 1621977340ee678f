package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
)

// Start serves HTTP in the background. The returned channel is closed on a
// termination signal or when the server stops on its own.
func (a *App) Start() <-chan struct{} {
	done := make(chan struct{})
	// both senders below send at most once
	stop := make(chan string, 2)

	go func() {
		slog.Info("http server listening", "address", a.httpServer.Addr)

		err := a.httpServer.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			return
		}
		slog.Error("http server stopped", "error", err)
		stop <- "server error"
	}()

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
		defer signal.Stop(sig)

		select {
		case s := <-sig:
			stop <- s.String()
		case <-a.ctx.Done():
			stop <- "context done"
		}
	}()

	go func() {
		slog.Info("shutting down", "reason", <-stop)
		close(done)
	}()

	return done
}

// Stop shuts the HTTP server, cancels background work, waits for it, and
// then runs the closers newest first, so the id checkpoint is written before
// the config watcher goes away.
func (a *App) Stop(ctx context.Context) {
	if a.httpServer != nil {
		if err := a.httpServer.Shutdown(ctx); err != nil {
			slog.ErrorContext(ctx, "failed to close resources", "name", "HTTP Server", "error", err)
		}
	}

	if a.cancel != nil {
		a.cancel()
	}

	if a.goroutine != nil {
		if err := a.goroutine.Wait(); err != nil {
			slog.ErrorContext(ctx, "error from goroutines executions", "error", err)
		}
	}

	for i := len(a.closers) - 1; i >= 0; i-- {
		c := a.closers[i]
		if err := c.fn(ctx); err != nil {
			slog.ErrorContext(ctx, "failed to close resources", "name", c.name, "error", err)
		}
	}

	slog.InfoContext(ctx, "application stopped")
}

package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"newsfeed/internal/domain/ports"
	"newsfeed/internal/usecase"
)

// App manages the lifecycle of the news feed and its HTTP surface.
type App struct {
	feed   *usecase.NewsFeed
	server *http.Server
	logger ports.Logger
}

// New constructs an App instance.
func New(feed *usecase.NewsFeed, handler http.Handler, logger ports.Logger, addr string) *App {
	return &App{
		feed:   feed,
		logger: logger,
		server: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       10 * time.Second,
			WriteTimeout:      15 * time.Second,
		},
	}
}

// Run fetches the first feed immediately, keeps it refreshed and serves
// HTTP until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	if err := a.feed.Start(ctx); err != nil {
		return fmt.Errorf("start news feed: %w", err)
	}

	serveErr := make(chan error, 1)
	go func() {
		a.logger.Info(ctx, "http server starting", "addr", a.server.Addr)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	var runErr error
	select {
	case <-ctx.Done():
		a.logger.Info(context.Background(), "shutdown signal received")
	case err := <-serveErr:
		if err != nil {
			runErr = fmt.Errorf("http server: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		a.logger.Error(shutdownCtx, "server shutdown", "error", err)
	}

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer stopCancel()
	if err := a.feed.Stop(stopCtx); err != nil {
		a.logger.Error(stopCtx, "news feed did not stop cleanly", "error", err)
	}

	a.logger.Info(context.Background(), "application stopped")
	return runErr
}

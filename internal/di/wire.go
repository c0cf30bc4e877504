//go:build wireinject

package di

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/google/wire"

	"newsfeed/internal/adapter/gemini"
	"newsfeed/internal/adapter/httpapi"
	"newsfeed/internal/adapter/logging"
	"newsfeed/internal/app"
	"newsfeed/internal/config"
	"newsfeed/internal/domain/ports"
	"newsfeed/internal/usecase"
)

// InitializeApp wires the application components together.
func InitializeApp() (*app.App, error) {
	wire.Build(
		config.Load,
		provideSlogLogger,
		provideLogger,
		wire.Bind(new(ports.Logger), new(*logging.SLogger)),
		provideNewsProvider,
		provideFeedConfig,
		usecase.NewNewsFeed,
		provideRouter,
		provideHTTPAddr,
		app.New,
	)
	return nil, nil
}

func provideSlogLogger(cfg *config.Config) *slog.Logger {
	return logging.NewJSON(os.Stdout, cfg.LogLevel)
}

func provideLogger(cfg *config.Config, base *slog.Logger) *logging.SLogger {
	logger := logging.New(base)
	for _, warning := range cfg.Warnings {
		logger.Warn(context.Background(), "config value ignored", "detail", warning)
	}
	return logger
}

func provideNewsProvider(cfg *config.Config, logger ports.Logger) (ports.NewsProvider, error) {
	return gemini.New(context.Background(), gemini.Options{
		APIKey:      cfg.GeminiAPIKey,
		Model:       cfg.GeminiModel,
		Temperature: cfg.GeminiTemperature,
		Timeout:     cfg.RequestTimeout,
	}, logger)
}

func provideFeedConfig(cfg *config.Config) usecase.NewsFeedConfig {
	return usecase.NewsFeedConfig{
		Locale:          cfg.DefaultLocale,
		Category:        cfg.DefaultCategory,
		RefreshInterval: cfg.RefreshInterval,
		FetchTimeout:    cfg.RequestTimeout,
		FallbackURL:     cfg.FallbackURL,
	}
}

func provideRouter(feed *usecase.NewsFeed, logger ports.Logger) http.Handler {
	return httpapi.NewRouter(feed, logger)
}

func provideHTTPAddr(cfg *config.Config) string {
	return cfg.HTTPAddr
}

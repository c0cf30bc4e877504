package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"newsfeed/internal/domain/model"
)

// Config contains runtime configuration values.
type Config struct {
	GeminiAPIKey      string
	GeminiModel       string
	GeminiTemperature float32
	RequestTimeout    time.Duration
	RefreshInterval   time.Duration
	HTTPAddr          string
	DefaultLocale     model.Locale
	DefaultCategory   model.Category
	FallbackURL       string
	LogLevel          string

	// Warnings lists values that could not be parsed and were replaced by
	// their defaults. Load runs before logging exists, so callers report them.
	Warnings []string
}

const (
	defaultGeminiModel       = "gemini-2.5-flash"
	defaultGeminiTemperature = 0.4
	defaultTimeout           = 60 * time.Second
	defaultRefreshInterval   = 15 * time.Minute
	defaultHTTPAddr          = ":8080"
	defaultLocale            = "en"
	defaultCategory          = "World"
	defaultFallbackURL       = "https://news.google.com"
	defaultLogLevel          = "info"
)

// Load builds a Config from environment variables with sane defaults. A .env
// file in the working directory is read first when present; variables already
// set in the environment win.
func Load() (*Config, error) {
	_ = godotenv.Load()

	locale, err := model.ParseLocale(getenvDefault("DEFAULT_LOCALE", defaultLocale))
	if err != nil {
		return nil, fmt.Errorf("DEFAULT_LOCALE: %w", err)
	}

	category, err := model.ParseCategory(getenvDefault("DEFAULT_CATEGORY", defaultCategory))
	if err != nil {
		return nil, fmt.Errorf("DEFAULT_CATEGORY: %w", err)
	}

	var warnings []string
	cfg := &Config{
		GeminiAPIKey:      getenvDefault("GEMINI_API_KEY", ""),
		GeminiModel:       getenvDefault("GEMINI_MODEL", defaultGeminiModel),
		GeminiTemperature: parseFloatDefault("GEMINI_TEMPERATURE", defaultGeminiTemperature, &warnings),
		RequestTimeout:    parseDurationDefault("REQUEST_TIMEOUT", defaultTimeout, &warnings),
		RefreshInterval:   parseDurationDefault("REFRESH_INTERVAL", defaultRefreshInterval, &warnings),
		HTTPAddr:          getenvDefault("HTTP_ADDR", defaultHTTPAddr),
		DefaultLocale:     locale,
		DefaultCategory:   category,
		FallbackURL:       getenvDefault("FALLBACK_URL", defaultFallbackURL),
		LogLevel:          getenvDefault("LOG_LEVEL", defaultLogLevel),
	}

	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}

	if cfg.RequestTimeout <= 0 {
		warnings = append(warnings, fmt.Sprintf("REQUEST_TIMEOUT %s is not positive, using %s", cfg.RequestTimeout, defaultTimeout))
		cfg.RequestTimeout = defaultTimeout
	}

	if cfg.RefreshInterval < time.Second {
		return nil, fmt.Errorf("REFRESH_INTERVAL must be at least 1s")
	}

	if cfg.GeminiTemperature < 0 || cfg.GeminiTemperature > 2 {
		return nil, fmt.Errorf("GEMINI_TEMPERATURE must be within [0, 2]")
	}

	cfg.Warnings = warnings
	return cfg, nil
}

func getenvDefault(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseFloatDefault(key string, fallback float32, warnings *[]string) float32 {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(val, 32)
	if err != nil {
		*warnings = append(*warnings, fmt.Sprintf("%s=%q is not a number, using %v", key, val, fallback))
		return fallback
	}
	return float32(f)
}

func parseDurationDefault(key string, fallback time.Duration, warnings *[]string) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		*warnings = append(*warnings, fmt.Sprintf("%s=%q is not a duration, using %s", key, val, fallback))
		return fallback
	}
	return d
}

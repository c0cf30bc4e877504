package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"newsfeed/internal/adapter/logging"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		raw  string
		want slog.Level
	}{
		{raw: "", want: slog.LevelInfo},
		{raw: "debug", want: slog.LevelDebug},
		{raw: " WARN ", want: slog.LevelWarn},
		{raw: "error", want: slog.LevelError},
		{raw: "verbose", want: slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			require.Equal(t, tt.want, logging.ParseLevel(tt.raw))
		})
	}
}

func TestSLoggerWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(logging.NewJSON(&buf, "warn"))

	logger.Info(context.Background(), "dropped")
	require.Zero(t, buf.Len())

	logger.Error(context.Background(), "fetch failed", "generation", 3)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "fetch failed", entry["msg"])
	require.Equal(t, "ERROR", entry["level"])
	require.EqualValues(t, 3, entry["generation"])
}

func TestNilLoggerIsSafe(t *testing.T) {
	var logger *logging.SLogger
	require.NotPanics(t, func() {
		logger.Info(context.Background(), "noop")
		logging.New(nil).Warn(context.Background(), "noop")
	})
}

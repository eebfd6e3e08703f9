package main

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rocketscienceinc/inarow/internal/config"
)

func TestInitLogger(t *testing.T) {
	tests := []struct {
		logLevel string
		want     slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run("level "+tt.logLevel, func(t *testing.T) {
			// Given: a config with the level as written
			conf := &config.Config{LogLevel: tt.logLevel}

			// When: the logger is built
			logger := initLogger(conf)

			// Then: the wanted level is the lowest one enabled
			ctx := context.Background()
			assert.True(t, logger.Enabled(ctx, tt.want))
			assert.False(t, logger.Enabled(ctx, tt.want-1))
		})
	}
}

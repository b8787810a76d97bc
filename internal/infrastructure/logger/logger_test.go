package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"backoffice/internal/config"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		cfg       config.LogConfig
		wantLevel zapcore.Level
	}{
		{name: "json debug", cfg: config.LogConfig{Level: "debug", Format: "json"}, wantLevel: zapcore.DebugLevel},
		{name: "console warn", cfg: config.LogConfig{Level: "warn", Format: "console"}, wantLevel: zapcore.WarnLevel},
		{name: "bad level falls back to info", cfg: config.LogConfig{Level: "loud"}, wantLevel: zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := New(tt.cfg)
			require.NoError(t, err)
			assert.Equal(t, tt.wantLevel, l.Level())
		})
	}
}

package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"backoffice/internal/config"
)

// New builds the service logger. An unparsable level falls back to info and
// any format other than console produces JSON.
func New(cfg config.LogConfig) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}

	zcfg := zap.NewProductionConfig()
	if cfg.Format == "console" {
		zcfg = zap.NewDevelopmentConfig()
	}
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	zcfg.EncoderConfig.TimeKey = "timestamp"
	zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zcfg.InitialFields = map[string]any{"service": "backoffice"}

	return zcfg.Build()
}

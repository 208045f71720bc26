package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the application logger. Unknown levels fall back to info.
func New(level string) *zap.Logger {
	cfg := zap.NewProductionConfig()
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	cfg.Level.SetLevel(lvl)

	log, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return log
}

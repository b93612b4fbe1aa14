package logger

import (
	"go.uber.org/zap"
)

type LoggerConfig struct {
	Debug bool
}

// NewLogger builds a production zap logger, lowered to debug level when
// requested.
func NewLogger(cfg *LoggerConfig) (*zap.Logger, error) {
	loggerConfig := zap.NewProductionConfig()
	if cfg.Debug {
		loggerConfig.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return loggerConfig.Build()
}

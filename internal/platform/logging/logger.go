package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var globalLogger *zap.SugaredLogger

// Init builds the global sugared logger. Production gets JSON output,
// anything else a human-readable development config.
func Init(appEnv string) error {
	var cfg zap.Config
	if appEnv == "production" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("initialize logger: %w", err)
	}
	globalLogger = logger.Sugar()
	return nil
}

// L returns the global logger, falling back to a production logger if Init
// was never called (useful in tests).
func L() *zap.SugaredLogger {
	if globalLogger == nil {
		logger, _ := zap.NewProduction()
		globalLogger = logger.Sugar()
	}
	return globalLogger
}

// Sync flushes any buffered log entries.
func Sync() {
	if globalLogger != nil {
		_ = globalLogger.Sync()
	}
}

// Package logging builds the shared zap logger used by the orchestrator,
// CLI, and HTTP façade, grounded on noah-isme-sma-adp-api's pkg/logger.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a zap logger. format is "console" or "json" (default); level
// is any zapcore.Level text ("debug", "info", "warn", "error"), empty or
// invalid falling back to info.
func New(level, format string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()

	switch format {
	case "console":
		cfg.Encoding = "console"
	default:
		cfg.Encoding = "json"
	}

	if level != "" {
		if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
			cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
		}
	}

	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}

package figsync

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// log is the package logger. It stays a no-op until SetLogger installs a
// real one, so library use is silent by default.
var log = zap.NewNop()

// SetLogger routes the package's diagnostics through logger. Passing nil
// silences them again.
func SetLogger(logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	log = logger
}

// NewLogger builds a logger writing to stderr at the given level.
// format is "console" or "json"; anything else falls back to console.
// Callers own the returned logger and should Sync it on exit.
func NewLogger(level zapcore.Level, format string) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(level)
	if format != "json" {
		config.Encoding = "console"
		config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}
	config.OutputPaths = []string{"stderr"}
	config.ErrorOutputPaths = []string{"stderr"}
	return config.Build()
}

// ParseLevel maps a config log level onto a zap level, defaulting to
// info for anything unrecognised.
func ParseLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

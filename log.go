package inkwell

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// logger is shared by every component. inkwell is single-threaded, so a plain
// variable is enough; SetLogger is expected to be called during setup.
var logger = zap.NewNop()

// SetLogger replaces the package logger. A nil logger restores the no-op default.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger = l
}

// Logger returns the package logger so scenes and hosts can log with the same
// sink.
func Logger() *zap.Logger {
	return logger
}

// NewLogger builds a zap logger from the runtime configuration. Debug mode
// uses the development encoder; otherwise the production JSON encoder.
func NewLogger(cfg RuntimeConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zapcore.InfoLevel
	}
	var zc zap.Config
	if cfg.Debug {
		zc = zap.NewDevelopmentConfig()
		if level > zapcore.DebugLevel {
			level = zapcore.DebugLevel
		}
	} else {
		zc = zap.NewProductionConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}

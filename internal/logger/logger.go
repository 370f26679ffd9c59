// Package logger wraps zap with level configuration for the application.
package logger

import (
	"fmt"

	"go.uber.org/zap"
)

// Logger holds the configured zap logger.
type Logger struct {
	// Log is the underlying zap logger.
	Log *zap.Logger
}

// New returns a Logger with a no-op zap logger; call Init to configure it.
func New() *Logger {
	return &Logger{Log: zap.NewNop()}
}

// Init builds a production zap logger at the given level ("Debug", "Info",
// "Warn", "Error") and replaces the current one.
func (l *Logger) Init(level string) error {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return fmt.Errorf("parse log level: %w", err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = lvl

	logger, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	l.Log = logger
	return nil
}

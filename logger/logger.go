// Package logger provides the process wide structured logger.
//
// The Sugar instance is nil until New is called. Library packages receive a
// logger through options where they need one; commands call New once at
// startup and OnExit before terminating.
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the interface accepted by components that want a logger injected.
type Logger = *zap.SugaredLogger

var Sugar *zap.SugaredLogger

// New initialises the package logger at the requested level. Level strings
// follow zap conventions: "DEBUG", "INFO", "WARN", "ERROR". Unrecognised
// levels fall back to INFO.
func New(level string) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		// A default production config cannot fail to build, but fall back to
		// a no-op logger rather than panic in a library path.
		Sugar = zap.NewNop().Sugar()
		return
	}
	Sugar = l.Sugar()
}

// OnExit flushes any buffered log entries. Safe to call when New was never
// called.
func OnExit() {
	if Sugar == nil {
		return
	}
	_ = Sugar.Sync()
}

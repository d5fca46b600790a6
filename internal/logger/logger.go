// Package logger holds the process-wide zap logger.
package logger

import (
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu         sync.Mutex
	globalBase *zap.Logger
)

// Init initializes the global zap logger. env "production" (or "prod") selects
// JSON output at info level; anything else selects the development console
// config at debug level. Output goes to stderr so command output on stdout
// stays clean. Calling Init again replaces the logger.
func Init(env string) (*zap.Logger, error) {
	var cfg zap.Config
	if strings.EqualFold(env, "prod") || strings.EqualFold(env, "production") {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	base, err := cfg.Build()
	if err != nil {
		return nil, err
	}

	mu.Lock()
	globalBase = base
	mu.Unlock()

	zap.ReplaceGlobals(base)
	return base, nil
}

// SetLevel replaces the global logger with one that only emits entries at or
// above level. Used by the CLI's --quiet flag.
func SetLevel(level zapcore.Level) {
	mu.Lock()
	defer mu.Unlock()
	if globalBase == nil {
		return
	}
	globalBase = globalBase.WithOptions(zap.IncreaseLevel(level))
	zap.ReplaceGlobals(globalBase)
}

// Base returns the global logger, initializing it from LOG_ENV on first use.
func Base() *zap.Logger {
	mu.Lock()
	base := globalBase
	mu.Unlock()
	if base != nil {
		return base
	}

	base, err := Init(os.Getenv("LOG_ENV"))
	if err != nil {
		base = zap.NewNop()
	}
	return base
}

// Named returns a child of the global logger for a component.
func Named(component string) *zap.Logger {
	return Base().Named(component)
}

// Sync flushes any buffered log entries.
func Sync() {
	mu.Lock()
	defer mu.Unlock()
	if globalBase != nil {
		_ = globalBase.Sync()
	}
}

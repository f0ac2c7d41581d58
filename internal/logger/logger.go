package logger

import (
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Fields map[string]any

var (
	mu  sync.RWMutex
	log = mustBuild("info")
)

// Init replaces the package logger with one at the given level. Safe to call
// more than once; the last call wins.
func Init(level string) {
	mu.Lock()
	defer mu.Unlock()
	log = mustBuild(level)
}

func Info(message string, fields Fields) {
	mu.RLock()
	l := log
	mu.RUnlock()
	l.Info(message, zapFields(fields)...)
}

func Error(message string, err error, fields Fields) {
	base := Fields{}
	for k, v := range fields {
		base[k] = v
	}
	if err != nil {
		base["error"] = err.Error()
	}

	mu.RLock()
	l := log
	mu.RUnlock()
	l.Error(message, zapFields(base)...)
}

func mustBuild(level string) *zap.Logger {
	lvl, err := zapcore.ParseLevel(strings.TrimSpace(strings.ToLower(level)))
	if err != nil {
		lvl = zapcore.InfoLevel
	}

	cfg := zap.Config{
		Level:            zap.NewAtomicLevelAt(lvl),
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	built, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return built
}

func zapFields(fields Fields) []zap.Field {
	out := make([]zap.Field, 0, len(fields))
	for key, value := range fields {
		if isSensitiveKey(key) {
			out = append(out, zap.String(key, maskedValue))
			continue
		}
		out = append(out, zap.Any(key, sanitizeValue(value)))
	}
	return out
}

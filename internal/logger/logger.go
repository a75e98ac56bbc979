// package logger wraps a process wide zap logger. helpers take a context so
// that call sites stay uniform; fields attached with [WithKV] travel with it.
package logger

import (
	"context"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type ctxKey struct{}

var (
	mu     sync.RWMutex
	level  = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	global *zap.SugaredLogger
)

func init() {
	global = New(level)
}

// New builds a console logger writing to stderr. a nil level means info.
func New(lvl zapcore.LevelEnabler) *zap.SugaredLogger {
	if lvl == nil {
		lvl = zapcore.InfoLevel
	}
	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.Lock(os.Stderr),
		lvl,
	)
	return zap.New(core).Sugar()
}

// ParseLogLevel reports false and info for unknown names.
func ParseLogLevel(s string) (zapcore.Level, bool) {
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(strings.ToLower(strings.TrimSpace(s)))); err != nil || strings.TrimSpace(s) == "" {
		return zapcore.InfoLevel, false
	}
	return l, true
}

func Level() zapcore.Level {
	return level.Level()
}

func SetLevel(l zapcore.Level) {
	level.SetLevel(l)
}

func IsDebugLevel() bool {
	return level.Enabled(zapcore.DebugLevel)
}

func Logger() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return global
}

func SetLogger(l *zap.SugaredLogger) {
	mu.Lock()
	global = l
	mu.Unlock()
}

// WithKV returns a context whose log lines carry the given key-value pairs.
func WithKV(ctx context.Context, kvs ...interface{}) context.Context {
	kvs = append(fieldsFrom(ctx), kvs...)
	return context.WithValue(ctx, ctxKey{}, kvs)
}

func fieldsFrom(ctx context.Context) []interface{} {
	if ctx == nil {
		return nil
	}
	kvs, _ := ctx.Value(ctxKey{}).([]interface{})
	return kvs[:len(kvs):len(kvs)]
}

func from(ctx context.Context) *zap.SugaredLogger {
	l := Logger()
	if kvs := fieldsFrom(ctx); len(kvs) > 0 {
		return l.With(kvs...)
	}
	return l
}

func DebugKV(ctx context.Context, msg string, kvs ...interface{}) { from(ctx).Debugw(msg, kvs...) }

func WarnKV(ctx context.Context, msg string, kvs ...interface{}) { from(ctx).Warnw(msg, kvs...) }

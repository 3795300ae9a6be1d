package logger

import (
	"sync"

	"github.com/elisa-suite/logrouter/core"
)

var (
	defaultRegistry = NewRegistry()
	defaultMu       sync.RWMutex
)

// Default returns the process-wide default registry. It starts empty:
// root at WARNING with no sinks, so only WARNING and above surface,
// as bare last-resort messages on stderr, until a configuration is
// applied.
func Default() *Registry {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultRegistry
}

// SetDefault replaces the default registry. A nil registry is ignored.
func SetDefault(r *Registry) {
	if r == nil {
		return
	}
	defaultMu.Lock()
	defaultRegistry = r
	defaultMu.Unlock()
}

// GetLogger returns a channel from the default registry.
func GetLogger(name string) *Channel {
	return Default().GetLogger(name)
}

// Package-level convenience functions emitting on the default
// registry's root channel.

// Debug emits a DEBUG record on the root channel
func Debug(msg string, fields ...core.Field) {
	Default().Root().Debug(msg, fields...)
}

// Info emits an INFO record on the root channel
func Info(msg string, fields ...core.Field) {
	Default().Root().Info(msg, fields...)
}

// Warning emits a WARNING record on the root channel
func Warning(msg string, fields ...core.Field) {
	Default().Root().Warning(msg, fields...)
}

// Error emits an ERROR record on the root channel
func Error(msg string, fields ...core.Field) {
	Default().Root().Error(msg, fields...)
}

// Critical emits a CRITICAL record on the root channel
func Critical(msg string, fields ...core.Field) {
	Default().Root().Critical(msg, fields...)
}

// Debugf emits a formatted DEBUG record on the root channel
func Debugf(format string, args ...interface{}) {
	Default().Root().Debugf(format, args...)
}

// Infof emits a formatted INFO record on the root channel
func Infof(format string, args ...interface{}) {
	Default().Root().Infof(format, args...)
}

// Warningf emits a formatted WARNING record on the root channel
func Warningf(format string, args ...interface{}) {
	Default().Root().Warningf(format, args...)
}

// Errorf emits a formatted ERROR record on the root channel
func Errorf(format string, args ...interface{}) {
	Default().Root().Errorf(format, args...)
}

// Criticalf emits a formatted CRITICAL record on the root channel
func Criticalf(format string, args ...interface{}) {
	Default().Root().Criticalf(format, args...)
}

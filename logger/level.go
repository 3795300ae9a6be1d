package logger

import (
	"strings"

	"github.com/elisa-suite/logrouter/core"
)

// Level Re-export type and constants for convenience
type Level = core.Level

const (
	NotSetLevel   = core.NotSetLevel
	DebugLevel    = core.DebugLevel
	InfoLevel     = core.InfoLevel
	WarningLevel  = core.WarningLevel
	ErrorLevel    = core.ErrorLevel
	CriticalLevel = core.CriticalLevel
)

// ParseLevel converts a string to a Level, defaulting to InfoLevel for
// anything it does not recognize. Use core.ParseLevel when unknown
// names must be an error.
func ParseLevel(s string) Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "NOTSET":
		return NotSetLevel
	case "DEBUG":
		return DebugLevel
	case "INFO":
		return InfoLevel
	case "WARN", "WARNING":
		return WarningLevel
	case "ERROR":
		return ErrorLevel
	case "CRITICAL", "FATAL":
		return CriticalLevel
	default:
		return InfoLevel
	}
}

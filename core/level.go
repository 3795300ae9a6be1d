package core

import (
	"fmt"
	"strings"
)

// Level represents the severity of a log record.
//
// The scale is numeric with gaps so thresholds compare with plain
// integer ordering and custom in-between values remain possible.
// NotSet is the zero value and means "no explicit threshold": a
// channel at NotSet inherits its effective level from the nearest
// ancestor, and a sink at NotSet passes every record it is offered.
type Level int8

const (
	// NotSetLevel marks an unset threshold (inherit / pass-through).
	NotSetLevel Level = 0
	// DebugLevel for detailed diagnostic output.
	DebugLevel Level = 10
	// InfoLevel for routine progress messages.
	InfoLevel Level = 20
	// WarningLevel for conditions worth attention that do not stop a run.
	WarningLevel Level = 30
	// ErrorLevel for failures of an individual operation.
	ErrorLevel Level = 40
	// CriticalLevel for failures that abort the run.
	CriticalLevel Level = 50
)

// String returns the canonical upper-case name of the level.
// Values between the named levels render as "Level(n)".
func (l Level) String() string {
	switch l {
	case NotSetLevel:
		return "NOTSET"
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarningLevel:
		return "WARNING"
	case ErrorLevel:
		return "ERROR"
	case CriticalLevel:
		return "CRITICAL"
	default:
		return fmt.Sprintf("Level(%d)", int8(l))
	}
}

// ParseLevel converts a level name into a Level. Matching is
// case-insensitive and accepts the aliases WARN for WARNING and FATAL
// for CRITICAL, which appear in older configuration documents.
func ParseLevel(name string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "NOTSET":
		return NotSetLevel, nil
	case "DEBUG":
		return DebugLevel, nil
	case "INFO":
		return InfoLevel, nil
	case "WARNING", "WARN":
		return WarningLevel, nil
	case "ERROR":
		return ErrorLevel, nil
	case "CRITICAL", "FATAL":
		return CriticalLevel, nil
	default:
		return NotSetLevel, fmt.Errorf("unknown level %q", name)
	}
}

package handler

import (
	"github.com/elisa-suite/logrouter/core"
)

// Handler defines the interface for log sinks
type Handler interface {
	// Handle writes a log record to the sink
	Handle(rec *core.Record) error

	// Level returns the sink's own severity threshold. NotSetLevel
	// accepts every record the sink is offered.
	Level() core.Level

	// Close closes the handler and releases resources
	Close() error
}

// StatsProvider is an optional interface for sinks that expose
// delivery counters.
type StatsProvider interface {
	GetSnapshot() Snapshot
}

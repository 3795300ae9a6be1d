package benchmark

import (
	"github.com/elisa-suite/logrouter/core"
	"github.com/elisa-suite/logrouter/handler"
)

// noopSink accepts every record and discards it without formatting,
// isolating the dispatch path in benchmarks.
type noopSink struct{}

func newNoopSink() handler.Handler {
	return noopSink{}
}

func (noopSink) Handle(rec *core.Record) error {
	_ = len(rec.Message)
	return nil
}

func (noopSink) Level() core.Level {
	return core.NotSetLevel
}

func (noopSink) Close() error {
	return nil
}

// Package handler defines the sink contract shared by all output
// destinations and the delivery bookkeeping that goes with it.
//
// A Handler consumes log records and owns exactly one backing
// resource, a console stream or a rotating file. Channels offer a
// record to every handler bound along their ancestor chain; the
// handler's own Level gates acceptance, so a channel at DEBUG can
// feed an INFO-only sink without flooding it. Writes are synchronous:
// a handler serializes format, rotate, and write behind its own
// mutex, and the caller returns only after the record reached the
// backing resource.
//
// Stats carries two atomic counters per sink, processed and failed,
// exposed through GetSnapshot for inspection without locks.
//
// SinkError is the error type sinks return on open, write, and rotate
// failures. It names the sink and the operation so the registry can
// report the failure to its error output while the remaining sinks
// still receive the record.
//
// The concrete sinks live in the consolehandler and filehandler
// subpackages; sloghandler adapts log/slog emitters onto a channel.
package handler

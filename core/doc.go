// Package core defines the data model shared across the router:
// severity levels, log records, structured fields, and call site
// capture.
//
// Level carries the numeric severity scale (NOTSET through CRITICAL,
// in steps of ten) so that thresholds form a total order and NotSet
// doubles as the "inherit from the parent channel" marker. ParseLevel
// converts the textual spellings used by configuration documents.
//
// Record represents a single log event on its way from a channel to
// the sinks bound along the channel's ancestor chain. Records are
// pooled via sync.Pool to keep the emission path allocation-free;
// callers get one with GetRecord and must return it with PutRecord
// after the last sink has consumed it. The pool pre-allocates the
// Fields slice with capacity 8, which covers typical call sites
// without a slice growth.
//
// Field encodes values into fixed-size numeric slots (Int64, Float64)
// wherever possible so that common types like int, bool, and
// time.Time never escape to the heap. The Any slot is a fallback for
// arbitrary types and does allocate.
package core

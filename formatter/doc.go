// Package formatter defines how log records are serialized into bytes.
//
// It exposes two interfaces: Formatter, which returns a []byte, and
// BufferFormatter, which formats into a caller-provided buffer.
// Handlers check for BufferFormatter at construction time and prefer
// it when available, eliminating the intermediate byte slice
// allocation on the write path.
//
// Pattern is the workhorse: it compiles a "%(name)s"-style template
// (the directive syntax used by the configuration documents) into a
// segment list once, at load time, so that rendering a record is a
// straight walk over pre-parsed segments with no per-record template
// scanning. Unknown directives are rejected at compile time, which
// lets configuration validation surface typos before any sink opens.
// Date rendering honors an optional strftime-style datefmt, also
// compiled up front.
//
// JSON is the machine-readable alternative for programmatic handler
// construction. Both formatters use a pooled bytes.Buffer internally
// and rely on Go's Append-style functions (time.AppendFormat,
// strconv.AppendInt) to avoid per-call allocations.
//
// Buffers larger than 64 KiB are not returned to the pool to prevent
// a single large log line from permanently inflating memory usage.
package formatter

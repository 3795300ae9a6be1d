package consolehandler

import (
	"bytes"
	"io"
	"os"
	"sync"

	"github.com/elisa-suite/logrouter/core"
	"github.com/elisa-suite/logrouter/formatter"
	"github.com/elisa-suite/logrouter/handler"
)

// ConsoleConfig holds configuration for the console sink
type ConsoleConfig struct {
	// Writer to write to (default: os.Stderr)
	Writer io.Writer
	// Level is the sink's own severity threshold
	// (default: NotSetLevel, which accepts every record)
	Level core.Level
	// Formatter renders records (default: message-only pattern)
	Formatter formatter.Formatter
	// Name identifies the sink in error reports (default: "console")
	Name string
}

// ConsoleHandler writes formatted records to a standard stream.
// A single mutex serializes format and write, so records from
// concurrent emitters never interleave.
type ConsoleHandler struct {
	name            string
	writer          io.Writer
	level           core.Level
	formatter       formatter.Formatter
	bufferFormatter formatter.BufferFormatter
	stats           *handler.Stats
	mu              sync.Mutex // protects buf and writer
	buf             bytes.Buffer
	closed          chan struct{}
}

// NewConsoleHandler creates a console sink.
func NewConsoleHandler(cfg ConsoleConfig) *ConsoleHandler {
	if cfg.Writer == nil {
		cfg.Writer = os.Stderr
	}
	if cfg.Formatter == nil {
		cfg.Formatter = formatter.DefaultPattern()
	}
	if cfg.Name == "" {
		cfg.Name = "console"
	}

	h := &ConsoleHandler{
		name:      cfg.Name,
		writer:    cfg.Writer,
		level:     cfg.Level,
		formatter: cfg.Formatter,
		stats:     handler.NewStats(),
		closed:    make(chan struct{}),
	}

	// Cache BufferFormatter for the handler-owned buffer path
	h.bufferFormatter, _ = cfg.Formatter.(formatter.BufferFormatter)
	if h.bufferFormatter != nil {
		h.buf.Grow(256)
	}

	return h
}

// Handle formats the record and writes it to the stream.
func (h *ConsoleHandler) Handle(rec *core.Record) error {
	if h.bufferFormatter != nil {
		h.mu.Lock()
		h.buf.Reset()
		h.bufferFormatter.FormatRecord(rec, &h.buf)
		_, err := h.writer.Write(h.buf.Bytes())
		h.mu.Unlock()
		return h.outcome(err)
	}

	data, err := h.formatter.Format(rec)
	if err != nil {
		return h.outcome(err)
	}

	h.mu.Lock()
	_, err = h.writer.Write(data)
	h.mu.Unlock()
	return h.outcome(err)
}

func (h *ConsoleHandler) outcome(err error) error {
	if err == nil {
		h.stats.IncrementProcessed()
		return nil
	}
	h.stats.IncrementFailed()
	return &handler.SinkError{Sink: h.name, Op: "write", Err: err}
}

// Level returns the sink's severity threshold.
func (h *ConsoleHandler) Level() core.Level {
	return h.level
}

// Name returns the sink's configured name.
func (h *ConsoleHandler) Name() string {
	return h.name
}

// GetSnapshot returns the sink's delivery counters.
func (h *ConsoleHandler) GetSnapshot() handler.Snapshot {
	return h.stats.GetSnapshot()
}

// Close marks the handler closed. The underlying stream stays open;
// process streams are not ours to close.
func (h *ConsoleHandler) Close() error {
	select {
	case <-h.closed:
		return nil // Already closed
	default:
		close(h.closed)
	}
	return nil
}

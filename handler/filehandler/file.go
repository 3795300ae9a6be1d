package filehandler

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/elisa-suite/logrouter/core"
	"github.com/elisa-suite/logrouter/formatter"
	"github.com/elisa-suite/logrouter/handler"
)

// FileConfig holds configuration for the rotating file sink
type FileConfig struct {
	// Filename is the path to the log file
	Filename string
	// Level is the sink's own severity threshold
	// (default: NotSetLevel, which accepts every record)
	Level core.Level
	// Formatter renders records (default: message-only pattern)
	Formatter formatter.Formatter
	// MaxBytes is the size threshold that triggers rotation
	// (0 = never rotate)
	MaxBytes int64
	// BackupCount is how many rotated generations to retain. With 0
	// the file is truncated in place when it fills.
	BackupCount int
	// Name identifies the sink in error reports (default: the filename)
	Name string
}

// FileHandler writes records to a file and rotates through numbered
// backups when the size threshold would be crossed: the current file
// becomes base.1, base.1 becomes base.2, and so on, discarding the
// generation beyond BackupCount.
type FileHandler struct {
	name            string
	filename        string
	file            *os.File
	level           core.Level
	formatter       formatter.Formatter
	bufferFormatter formatter.BufferFormatter
	maxBytes        int64
	backupCount     int
	mu              sync.Mutex // protects buf, file, and currentSize
	buf             bytes.Buffer
	currentSize     int64
	stats           *handler.Stats
	closed          chan struct{}
}

// NewFileHandler opens the target file, creating missing parent
// directories, and returns the sink. A file already at or past
// MaxBytes rotates before the first write.
func NewFileHandler(cfg FileConfig) (*FileHandler, error) {
	if cfg.Filename == "" {
		return nil, fmt.Errorf("filename is required")
	}
	if cfg.Formatter == nil {
		cfg.Formatter = formatter.DefaultPattern()
	}
	if cfg.Name == "" {
		cfg.Name = cfg.Filename
	}

	dir := filepath.Dir(cfg.Filename)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, &handler.SinkError{Sink: cfg.Name, Op: "open", Err: err}
	}

	file, err := os.OpenFile(cfg.Filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, &handler.SinkError{Sink: cfg.Name, Op: "open", Err: err}
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, &handler.SinkError{Sink: cfg.Name, Op: "open", Err: err}
	}

	h := &FileHandler{
		name:        cfg.Name,
		filename:    cfg.Filename,
		file:        file,
		level:       cfg.Level,
		formatter:   cfg.Formatter,
		maxBytes:    cfg.MaxBytes,
		backupCount: cfg.BackupCount,
		currentSize: info.Size(),
		stats:       handler.NewStats(),
		closed:      make(chan struct{}),
	}

	// Cache BufferFormatter for the handler-owned buffer path
	h.bufferFormatter, _ = cfg.Formatter.(formatter.BufferFormatter)
	if h.bufferFormatter != nil {
		h.buf.Grow(256)
	}

	// An inherited file already past the threshold rotates before the
	// first write.
	if h.maxBytes > 0 && h.currentSize >= h.maxBytes {
		h.mu.Lock()
		err := h.rotate()
		h.mu.Unlock()
		if err != nil {
			h.file.Close()
			return nil, err
		}
	}

	return h, nil
}

// Handle formats the record, rotates if the pending payload would
// cross the threshold, and writes.
func (h *FileHandler) Handle(rec *core.Record) error {
	if h.bufferFormatter != nil {
		h.mu.Lock()
		h.buf.Reset()
		h.bufferFormatter.FormatRecord(rec, &h.buf)
		err := h.writeLocked(h.buf.Bytes())
		h.mu.Unlock()
		return h.outcome(err)
	}

	data, err := h.formatter.Format(rec)
	if err != nil {
		return h.outcome(err)
	}

	h.mu.Lock()
	err = h.writeLocked(data)
	h.mu.Unlock()
	return h.outcome(err)
}

func (h *FileHandler) outcome(err error) error {
	if err == nil {
		h.stats.IncrementProcessed()
		return nil
	}
	h.stats.IncrementFailed()
	return err
}

// writeLocked performs the rotate-then-write sequence. Callers hold mu.
func (h *FileHandler) writeLocked(data []byte) error {
	if h.shouldRotate(int64(len(data))) {
		if err := h.rotate(); err != nil {
			return err
		}
	}

	n, err := h.file.Write(data)
	h.currentSize += int64(n)
	if err != nil {
		return &handler.SinkError{Sink: h.name, Op: "write", Err: err}
	}
	return nil
}

// shouldRotate reports whether writing pending more bytes reaches the
// threshold. An empty file never rotates; a record larger than
// MaxBytes lands in a fresh file instead of cycling empty backups.
func (h *FileHandler) shouldRotate(pending int64) bool {
	if h.maxBytes <= 0 {
		return false
	}
	if h.currentSize == 0 {
		return false
	}
	return h.currentSize+pending >= h.maxBytes
}

// rotate shifts base.i to base.(i+1) for the retained generations,
// archives the current file as base.1, and reopens a fresh one. With
// BackupCount 0 the current file is truncated instead.
func (h *FileHandler) rotate() error {
	if err := h.file.Sync(); err != nil {
		return &handler.SinkError{Sink: h.name, Op: "rotate", Err: err}
	}
	if err := h.file.Close(); err != nil {
		return &handler.SinkError{Sink: h.name, Op: "rotate", Err: err}
	}

	if h.backupCount > 0 {
		for i := h.backupCount - 1; i >= 1; i-- {
			src := h.backupName(i)
			dst := h.backupName(i + 1)
			if _, err := os.Stat(src); err == nil {
				os.Remove(dst)
				if err := os.Rename(src, dst); err != nil {
					h.reopen()
					return &handler.SinkError{Sink: h.name, Op: "rotate", Err: err}
				}
			}
		}
		dst := h.backupName(1)
		os.Remove(dst)
		if err := os.Rename(h.filename, dst); err != nil {
			h.reopen()
			return &handler.SinkError{Sink: h.name, Op: "rotate", Err: err}
		}
	}

	flags := os.O_CREATE | os.O_WRONLY | os.O_APPEND
	if h.backupCount <= 0 {
		flags = os.O_CREATE | os.O_WRONLY | os.O_TRUNC
	}
	file, err := os.OpenFile(h.filename, flags, 0644)
	if err != nil {
		return &handler.SinkError{Sink: h.name, Op: "rotate", Err: err}
	}

	h.file = file
	h.currentSize = 0
	return nil
}

func (h *FileHandler) backupName(i int) string {
	return h.filename + "." + strconv.Itoa(i)
}

// reopen restores the base file after a failed rename so later writes
// still have somewhere to go.
func (h *FileHandler) reopen() {
	file, err := os.OpenFile(h.filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return
	}
	h.file = file
	h.currentSize = 0
	if info, err := file.Stat(); err == nil {
		h.currentSize = info.Size()
	}
}

// Level returns the sink's severity threshold.
func (h *FileHandler) Level() core.Level {
	return h.level
}

// Name returns the sink's configured name.
func (h *FileHandler) Name() string {
	return h.name
}

// Filename returns the path of the backing file.
func (h *FileHandler) Filename() string {
	return h.filename
}

// GetSnapshot returns the sink's delivery counters.
func (h *FileHandler) GetSnapshot() handler.Snapshot {
	return h.stats.GetSnapshot()
}

// Close syncs and closes the backing file. Double close is a no-op.
func (h *FileHandler) Close() error {
	select {
	case <-h.closed:
		return nil // Already closed
	default:
		close(h.closed)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.file == nil {
		return nil
	}
	if err := h.file.Sync(); err != nil {
		h.file.Close()
		return &handler.SinkError{Sink: h.name, Op: "close", Err: err}
	}
	if err := h.file.Close(); err != nil {
		return &handler.SinkError{Sink: h.name, Op: "close", Err: err}
	}
	return nil
}

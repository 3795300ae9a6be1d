package handler

import (
	"fmt"
)

// SinkError reports a failure against a sink's backing resource. It
// names the sink and the failed operation (open, write, rotate, close)
// and wraps the underlying cause.
type SinkError struct {
	Sink string
	Op   string
	Err  error
}

// Error implements the error interface
func (e *SinkError) Error() string {
	return fmt.Sprintf("sink %s: %s: %v", e.Sink, e.Op, e.Err)
}

// Unwrap returns the underlying cause
func (e *SinkError) Unwrap() error {
	return e.Err
}

package config

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Document is the declarative configuration surface: a versioned set
// of named formatters, named handlers (sinks), logger-to-handler
// bindings, and the root binding. JSON is the canonical form; YAML is
// accepted with identical keys.
type Document struct {
	Version                int                      `json:"version" yaml:"version"`
	DisableExistingLoggers Flag                     `json:"disable_existing_loggers,omitempty" yaml:"disable_existing_loggers,omitempty"`
	Formatters             map[string]FormatterSpec `json:"formatters,omitempty" yaml:"formatters,omitempty"`
	Handlers               map[string]HandlerSpec   `json:"handlers,omitempty" yaml:"handlers,omitempty"`
	Loggers                map[string]LoggerSpec    `json:"loggers,omitempty" yaml:"loggers,omitempty"`
	Root                   *RootSpec                `json:"root,omitempty" yaml:"root,omitempty"`
}

// FormatterSpec is a named %()-style template, optionally with an
// strftime date format for its asctime directive.
type FormatterSpec struct {
	Format     string `json:"format" yaml:"format"`
	DateFormat string `json:"datefmt,omitempty" yaml:"datefmt,omitempty"`
}

// HandlerSpec describes one sink. Class selects the sink kind; the
// remaining keys apply to one kind each: stream to console sinks,
// filename/maxBytes/backupCount/encoding to rotating file sinks.
type HandlerSpec struct {
	Class       string `json:"class" yaml:"class"`
	Level       string `json:"level,omitempty" yaml:"level,omitempty"`
	Formatter   string `json:"formatter,omitempty" yaml:"formatter,omitempty"`
	Stream      string `json:"stream,omitempty" yaml:"stream,omitempty"`
	Filename    string `json:"filename,omitempty" yaml:"filename,omitempty"`
	MaxBytes    int64  `json:"maxBytes,omitempty" yaml:"maxBytes,omitempty"`
	BackupCount int    `json:"backupCount,omitempty" yaml:"backupCount,omitempty"`
	Encoding    string `json:"encoding,omitempty" yaml:"encoding,omitempty"`
}

// LoggerSpec binds one named channel. A nil Propagate means true.
type LoggerSpec struct {
	Level     string   `json:"level,omitempty" yaml:"level,omitempty"`
	Handlers  []string `json:"handlers,omitempty" yaml:"handlers,omitempty"`
	Propagate *Flag    `json:"propagate,omitempty" yaml:"propagate,omitempty"`
}

// RootSpec binds the root channel. Root has no propagation flag;
// there is nowhere further to go.
type RootSpec struct {
	Level    string   `json:"level,omitempty" yaml:"level,omitempty"`
	Handlers []string `json:"handlers,omitempty" yaml:"handlers,omitempty"`
}

// Flag is a boolean that also accepts the numeric spellings 0 and 1
// used by the original schema documents ("propagate": 0).
type Flag bool

// Bool returns the flag as a plain bool.
func (f Flag) Bool() bool { return bool(f) }

// UnmarshalJSON accepts true, false, 0, and 1.
func (f *Flag) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case "true", "1":
		*f = true
	case "false", "0":
		*f = false
	default:
		return fmt.Errorf("must be true, false, 0, or 1, got %s", data)
	}
	return nil
}

// UnmarshalYAML accepts true, false, 0, and 1.
func (f *Flag) UnmarshalYAML(value *yaml.Node) error {
	switch value.Value {
	case "true", "True", "1":
		*f = true
	case "false", "False", "0":
		*f = false
	default:
		return fmt.Errorf("must be true, false, 0, or 1, got %q", value.Value)
	}
	return nil
}

// SinkKind is the closed set of handler classes a document can name.
type SinkKind int

const (
	// SinkConsole writes to a standard process stream.
	SinkConsole SinkKind = iota
	// SinkRotatingFile writes to a size-rotated file with numbered
	// backups.
	SinkRotatingFile
)

// String returns the canonical class name.
func (k SinkKind) String() string {
	switch k {
	case SinkConsole:
		return "console"
	case SinkRotatingFile:
		return "rotating_file"
	default:
		return fmt.Sprintf("SinkKind(%d)", int(k))
	}
}

// sinkClasses maps every accepted class spelling onto the closed kind
// set. The dotted names keep documents written for the original
// system loading unchanged.
var sinkClasses = map[string]SinkKind{
	"console":                              SinkConsole,
	"ConsoleSink":                          SinkConsole,
	"logging.StreamHandler":                SinkConsole,
	"rotating_file":                        SinkRotatingFile,
	"RotatingFileSink":                     SinkRotatingFile,
	"logging.handlers.RotatingFileHandler": SinkRotatingFile,
}

// resolveStream canonicalizes a console stream marker to "stdout" or
// "stderr". The empty marker means stderr.
func resolveStream(marker string) (string, bool) {
	switch marker {
	case "", "stderr", "ext://sys.stderr":
		return "stderr", true
	case "stdout", "ext://sys.stdout":
		return "stdout", true
	default:
		return "", false
	}
}

// normalizeEncoding canonicalizes a file sink encoding. Only UTF-8 is
// supported; it is what the strings being written already are.
func normalizeEncoding(enc string) (string, bool) {
	switch {
	case enc == "":
		return "utf8", true
	case strings.EqualFold(enc, "utf8"), strings.EqualFold(enc, "utf-8"):
		return "utf8", true
	default:
		return "", false
	}
}

package config

import (
	"sort"

	"github.com/elisa-suite/logrouter/core"
	"github.com/elisa-suite/logrouter/formatter"
)

// RoutingTable is the validated, resolved form of a Document: levels
// parsed, classes mapped onto the closed sink kinds, stream markers
// and encodings canonicalized, patterns compiled. Building it has no
// side effects; no file is opened before Apply.
type RoutingTable struct {
	DisableExisting bool
	Formatters      map[string]*ResolvedFormatter
	Handlers        map[string]*ResolvedHandler
	Loggers         map[string]*ResolvedLogger
	Root            ResolvedRoot
}

// ResolvedFormatter carries a compiled pattern under its document
// name.
type ResolvedFormatter struct {
	Name    string
	Pattern *formatter.Pattern
}

// ResolvedHandler is a sink definition ready to instantiate. Formatter
// is empty when the document gave none; the sink then renders bare
// messages. Stream is "stdout" or "stderr" for console sinks. Encoding
// is always "utf8"; output is UTF-8 regardless, the field records that
// the document asked for nothing else.
type ResolvedHandler struct {
	Name        string
	Kind        SinkKind
	Level       core.Level
	Formatter   string
	Stream      string
	Filename    string
	MaxBytes    int64
	BackupCount int
	Encoding    string
}

// ResolvedLogger is one channel binding. Level is NOTSET when the
// document omitted it, leaving the channel inheriting.
type ResolvedLogger struct {
	Name      string
	Level     core.Level
	Handlers  []string
	Propagate bool
}

// ResolvedRoot is the root channel binding. An absent root section
// leaves the default WARNING threshold and no sinks.
type ResolvedRoot struct {
	Level    core.Level
	Handlers []string
}

// LoggerNames returns the configured channel names, sorted.
func (t *RoutingTable) LoggerNames() []string {
	names := make([]string, 0, len(t.Loggers))
	for name := range t.Loggers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// HandlerNames returns the defined sink names, sorted.
func (t *RoutingTable) HandlerNames() []string {
	names := make([]string, 0, len(t.Handlers))
	for name := range t.Handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NeedsCaller reports whether any defined sink's formatter renders
// call-site directives.
func (t *RoutingTable) NeedsCaller() bool {
	for _, h := range t.Handlers {
		if h.Formatter == "" {
			continue
		}
		if f, ok := t.Formatters[h.Formatter]; ok && f.Pattern.NeedsCaller() {
			return true
		}
	}
	return false
}

// Resolve validates the document and compiles it into a routing
// table. Every defect found is reported; the combined error unpacks
// with Defects or errors.As on *ConfigError.
func (d *Document) Resolve() (*RoutingTable, error) {
	var defects defectList

	if d.Version != 1 {
		defects.add("version", "must be 1, got %d", d.Version)
	}

	t := &RoutingTable{
		DisableExisting: d.DisableExistingLoggers.Bool(),
		Formatters:      make(map[string]*ResolvedFormatter, len(d.Formatters)),
		Handlers:        make(map[string]*ResolvedHandler, len(d.Handlers)),
		Loggers:         make(map[string]*ResolvedLogger, len(d.Loggers)),
		Root:            ResolvedRoot{Level: core.WarningLevel},
	}

	for _, name := range sortedKeys(d.Formatters) {
		spec := d.Formatters[name]
		p, err := formatter.NewPattern(spec.Format, spec.DateFormat)
		if err != nil {
			defects.add("formatters."+name, "%v", err)
			continue
		}
		t.Formatters[name] = &ResolvedFormatter{Name: name, Pattern: p}
	}

	for _, name := range sortedKeys(d.Handlers) {
		spec := d.Handlers[name]
		path := "handlers." + name

		if spec.Class == "" {
			defects.add(path, "missing class")
			continue
		}
		kind, ok := sinkClasses[spec.Class]
		if !ok {
			defects.add(path, "unknown class %q", spec.Class)
			continue
		}

		h := &ResolvedHandler{Name: name, Kind: kind}

		if spec.Level != "" {
			level, err := core.ParseLevel(spec.Level)
			if err != nil {
				defects.add(path+".level", "%v", err)
			}
			h.Level = level
		}

		if spec.Formatter != "" {
			if _, ok := d.Formatters[spec.Formatter]; !ok {
				defects.add(path+".formatter", "undefined formatter %q", spec.Formatter)
			}
			h.Formatter = spec.Formatter
		}

		switch kind {
		case SinkConsole:
			stream, ok := resolveStream(spec.Stream)
			if !ok {
				defects.add(path+".stream", "unknown stream %q", spec.Stream)
			}
			h.Stream = stream
			if spec.Filename != "" {
				defects.add(path+".filename", "not valid for class %v", kind)
			}
			if spec.MaxBytes != 0 {
				defects.add(path+".maxBytes", "not valid for class %v", kind)
			}
			if spec.BackupCount != 0 {
				defects.add(path+".backupCount", "not valid for class %v", kind)
			}
			if spec.Encoding != "" {
				defects.add(path+".encoding", "not valid for class %v", kind)
			}

		case SinkRotatingFile:
			if spec.Filename == "" {
				defects.add(path+".filename", "required for class %v", kind)
			}
			h.Filename = spec.Filename
			if spec.MaxBytes < 0 {
				defects.add(path+".maxBytes", "must not be negative, got %d", spec.MaxBytes)
			}
			h.MaxBytes = spec.MaxBytes
			if spec.BackupCount < 0 {
				defects.add(path+".backupCount", "must not be negative, got %d", spec.BackupCount)
			}
			h.BackupCount = spec.BackupCount
			encoding, ok := normalizeEncoding(spec.Encoding)
			if !ok {
				defects.add(path+".encoding", "unsupported encoding %q", spec.Encoding)
			}
			h.Encoding = encoding
			if spec.Stream != "" {
				defects.add(path+".stream", "not valid for class %v", kind)
			}
		}

		t.Handlers[name] = h
	}

	for _, name := range sortedKeys(d.Loggers) {
		spec := d.Loggers[name]
		path := "loggers." + name

		if name == "" {
			defects.add("loggers", "logger name must not be empty")
			continue
		}

		l := &ResolvedLogger{Name: name, Propagate: true}

		if spec.Level != "" {
			level, err := core.ParseLevel(spec.Level)
			if err != nil {
				defects.add(path+".level", "%v", err)
			}
			l.Level = level
		}
		if spec.Propagate != nil {
			l.Propagate = spec.Propagate.Bool()
		}
		for _, ref := range spec.Handlers {
			if _, ok := d.Handlers[ref]; !ok {
				defects.add(path+".handlers", "undefined handler %q", ref)
			}
		}
		l.Handlers = append(l.Handlers, spec.Handlers...)

		t.Loggers[name] = l
	}

	if d.Root != nil {
		if d.Root.Level != "" {
			level, err := core.ParseLevel(d.Root.Level)
			if err != nil {
				defects.add("root.level", "%v", err)
			} else {
				t.Root.Level = level
			}
		}
		for _, ref := range d.Root.Handlers {
			if _, ok := d.Handlers[ref]; !ok {
				defects.add("root.handlers", "undefined handler %q", ref)
			}
		}
		t.Root.Handlers = append(t.Root.Handlers, d.Root.Handlers...)
	}

	if err := defects.err(); err != nil {
		return nil, err
	}
	return t, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

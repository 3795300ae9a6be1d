package config

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/elisa-suite/logrouter/formatter"
	"github.com/elisa-suite/logrouter/handler"
	"github.com/elisa-suite/logrouter/handler/consolehandler"
	"github.com/elisa-suite/logrouter/handler/filehandler"
	"github.com/elisa-suite/logrouter/logger"
)

// ApplyOptions redirects the standard streams console sinks write to.
// Zero values mean os.Stdout and os.Stderr.
type ApplyOptions struct {
	Stdout io.Writer
	Stderr io.Writer
}

// Apply installs the routing table on a registry: it resets existing
// state, opens the referenced sinks, and binds them to their channels.
// See ApplyWith for the details.
func (t *RoutingTable) Apply(reg *logger.Registry) error {
	return t.ApplyWith(reg, ApplyOptions{})
}

// ApplyWith installs the routing table on a registry, directing
// console sinks at the writers in opts.
//
// Channels that exist on the registry but are not named in the table
// keep working: they are reset to inherit from their nearest
// configured ancestor, unless DisableExisting is set, in which case
// those that are not descendants of a configured channel are muted.
// Sinks are shared, one instance per handler name, so two channels
// referencing the same name write through the same file descriptor
// and the same lock. Only sinks referenced by at least one channel
// are opened.
//
// A sink that cannot be opened aborts the application; the registry
// is left reset but unconfigured. After a successful return the table
// is installed and may be discarded, the registry holds everything.
func (t *RoutingTable) ApplyWith(reg *logger.Registry, opts ApplyOptions) error {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}

	existing := reg.ChannelNames()

	if err := reg.Reset(); err != nil {
		reg.ReportError(err)
	}

	sinks := make(map[string]handler.Handler)
	for _, name := range t.referencedHandlers() {
		h, err := t.buildSink(t.Handlers[name], opts)
		if err != nil {
			for _, open := range sinks {
				if cerr := open.Close(); cerr != nil {
					reg.ReportError(cerr)
				}
			}
			return fmt.Errorf("handlers.%s: %w", name, err)
		}
		sinks[name] = h
	}

	for _, name := range t.LoggerNames() {
		l := t.Loggers[name]
		ch := reg.GetLogger(name)
		ch.SetLevel(l.Level)
		ch.SetPropagate(l.Propagate)
		for _, ref := range l.Handlers {
			ch.AddHandler(sinks[ref])
		}
	}

	root := reg.Root()
	root.SetLevel(t.Root.Level)
	for _, ref := range t.Root.Handlers {
		root.AddHandler(sinks[ref])
	}

	if t.DisableExisting {
		for _, name := range existing {
			if _, ok := t.Loggers[name]; ok {
				continue
			}
			if t.childOfConfigured(name) {
				continue
			}
			reg.GetLogger(name).SetDisabled(true)
		}
	}

	reg.SetIncludeCaller(t.NeedsCaller())
	return nil
}

// referencedHandlers returns the sorted handler names that at least
// one channel or the root binds.
func (t *RoutingTable) referencedHandlers() []string {
	seen := make(map[string]struct{})
	for _, l := range t.Loggers {
		for _, ref := range l.Handlers {
			seen[ref] = struct{}{}
		}
	}
	for _, ref := range t.Root.Handlers {
		seen[ref] = struct{}{}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (t *RoutingTable) childOfConfigured(name string) bool {
	for i := strings.LastIndexByte(name, '.'); i > 0; i = strings.LastIndexByte(name, '.') {
		name = name[:i]
		if _, ok := t.Loggers[name]; ok {
			return true
		}
	}
	return false
}

func (t *RoutingTable) buildSink(h *ResolvedHandler, opts ApplyOptions) (handler.Handler, error) {
	var pattern *formatter.Pattern
	if h.Formatter != "" {
		if f, ok := t.Formatters[h.Formatter]; ok {
			pattern = f.Pattern
		}
	}

	switch h.Kind {
	case SinkConsole:
		cfg := consolehandler.ConsoleConfig{
			Level: h.Level,
			Name:  h.Name,
		}
		if pattern != nil {
			cfg.Formatter = pattern
		}
		if h.Stream == "stdout" {
			cfg.Writer = opts.Stdout
		} else {
			cfg.Writer = opts.Stderr
		}
		return consolehandler.NewConsoleHandler(cfg), nil

	case SinkRotatingFile:
		cfg := filehandler.FileConfig{
			Filename:    h.Filename,
			Level:       h.Level,
			MaxBytes:    h.MaxBytes,
			BackupCount: h.BackupCount,
			Name:        h.Name,
		}
		if pattern != nil {
			cfg.Formatter = pattern
		}
		return filehandler.NewFileHandler(cfg)

	default:
		return nil, fmt.Errorf("unknown sink kind %v", h.Kind)
	}
}

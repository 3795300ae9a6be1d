package logger

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"

	"go.uber.org/multierr"

	"github.com/elisa-suite/logrouter/core"
	"github.com/elisa-suite/logrouter/handler"
)

// Registry owns the channel hierarchy and the routing state applied to
// it. All lookups and mutations are safe for concurrent use; emission
// takes only the read lock.
type Registry struct {
	mu            sync.RWMutex
	channels      map[string]*Channel
	root          *Channel
	errOut        io.Writer
	includeCaller bool
	suppressAll   bool
}

// NewRegistry creates an empty registry. The root channel starts at
// WARNING with no sinks bound, so records are dropped until a
// configuration is applied or handlers are attached by hand.
func NewRegistry() *Registry {
	r := &Registry{
		channels: make(map[string]*Channel),
		errOut:   os.Stderr,
	}
	r.root = &Channel{
		reg:       r,
		name:      "root",
		level:     core.WarningLevel,
		propagate: true,
	}
	return r
}

// GetLogger returns the channel with the given dot-separated name,
// creating it and any missing ancestors on first lookup. Created
// ancestors inherit their threshold (NOTSET). The empty string and
// "root" both name the root channel. Repeated lookups return the
// same *Channel.
func (r *Registry) GetLogger(name string) *Channel {
	if name == "" || name == "root" {
		return r.root
	}

	r.mu.RLock()
	c, ok := r.channels[name]
	r.mu.RUnlock()
	if ok {
		return c
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.channelLocked(name)
}

// channelLocked creates the channel and its ancestor chain. Caller
// holds the write lock.
func (r *Registry) channelLocked(name string) *Channel {
	if name == "" || name == "root" {
		return r.root
	}
	if c, ok := r.channels[name]; ok {
		return c
	}

	parent := r.root
	if i := strings.LastIndexByte(name, '.'); i > 0 {
		parent = r.channelLocked(name[:i])
	}

	c := &Channel{
		reg:       r,
		name:      name,
		parent:    parent,
		propagate: true,
	}
	r.channels[name] = c
	return c
}

// Root returns the root channel, the ultimate ancestor of every
// channel in this registry.
func (r *Registry) Root() *Channel {
	return r.root
}

// ChannelNames returns the names of all channels materialized so far,
// sorted, excluding root.
func (r *Registry) ChannelNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.channels))
	for name := range r.channels {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SetErrorOutput redirects the registry's own fault reporting: sink
// errors and last-resort messages. A nil writer restores stderr.
func (r *Registry) SetErrorOutput(w io.Writer) {
	if w == nil {
		w = os.Stderr
	}
	r.mu.Lock()
	r.errOut = w
	r.mu.Unlock()
}

// SetIncludeCaller enables call-site capture on every record. Capture
// costs a runtime.Caller per record, so it is switched on only when an
// applied formatter renders file, line, or function directives.
func (r *Registry) SetIncludeCaller(enabled bool) {
	r.mu.Lock()
	r.includeCaller = enabled
	r.mu.Unlock()
}

// SetSuppressAll drops every record on every channel while set. Used
// for silencing the whole subsystem without touching the bindings.
func (r *Registry) SetSuppressAll(suppress bool) {
	r.mu.Lock()
	r.suppressAll = suppress
	r.mu.Unlock()
}

// ReportError writes a sink failure to the registry error output.
// Dispatch calls it for every failed delivery; appliers use it for
// non-fatal faults such as close errors on replaced sinks.
func (r *Registry) ReportError(err error) {
	if err == nil {
		return
	}
	r.mu.RLock()
	r.reportLocked(err)
	r.mu.RUnlock()
}

func (r *Registry) reportLocked(err error) {
	fmt.Fprintf(r.errOut, "logrouter: %v\n", err)
}

// lastResortLocked prints the bare message of a record that reached no
// handler anywhere on its chain.
func (r *Registry) lastResortLocked(rec *core.Record) {
	fmt.Fprintln(r.errOut, rec.Message)
}

// Reset closes every bound sink and returns all channels, including
// root, to their unconfigured state: inherited threshold, no handlers,
// propagation on, enabled. Channels themselves survive, so references
// held by collaborators stay valid across re-application. Close
// failures are combined and returned; the reset still completes.
func (r *Registry) Reset() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var err error
	for _, h := range r.uniqueHandlersLocked() {
		err = multierr.Append(err, h.Close())
	}

	for _, c := range r.channels {
		c.level = core.NotSetLevel
		c.handlers = nil
		c.propagate = true
		c.disabled = false
	}
	r.root.level = core.WarningLevel
	r.root.handlers = nil
	r.root.disabled = false
	r.includeCaller = false
	return err
}

// Close closes every sink bound anywhere in the registry, each exactly
// once even when shared between channels. Bindings are left in place;
// the registry should not be used for emission afterwards.
func (r *Registry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var err error
	for _, h := range r.uniqueHandlersLocked() {
		err = multierr.Append(err, h.Close())
	}
	return err
}

// uniqueHandlersLocked collects every distinct handler bound to root
// or any channel. Caller holds the lock.
func (r *Registry) uniqueHandlersLocked() []handler.Handler {
	seen := make(map[handler.Handler]struct{})
	var out []handler.Handler

	collect := func(hs []handler.Handler) {
		for _, h := range hs {
			if _, ok := seen[h]; ok {
				continue
			}
			seen[h] = struct{}{}
			out = append(out, h)
		}
	}

	collect(r.root.handlers)
	for _, c := range r.channels {
		collect(c.handlers)
	}
	return out
}

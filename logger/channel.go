package logger

import (
	"fmt"
	"time"

	"github.com/elisa-suite/logrouter/core"
	"github.com/elisa-suite/logrouter/handler"
)

// callerSkip is the frame depth from core.GetCaller back to the
// call site of a per-level helper.
const callerSkip = 3

// Channel is a named node in the routing hierarchy. Records emitted on
// a channel visit its own sinks and then, while propagation holds,
// each ancestor's sinks up to root.
//
// Channels are created by Registry.GetLogger and never destroyed;
// holding a *Channel across re-application of a configuration is safe.
type Channel struct {
	reg        *Registry
	name       string
	parent     *Channel
	level      core.Level
	handlers   []handler.Handler
	propagate  bool
	disabled   bool
	suppressed bool
}

// Name returns the channel's dot-separated name. The root channel is
// named "root".
func (c *Channel) Name() string {
	return c.name
}

// Parent returns the channel's ancestor, or nil for root.
func (c *Channel) Parent() *Channel {
	return c.parent
}

// Level returns the channel's own threshold, NOTSET when it inherits.
func (c *Channel) Level() core.Level {
	c.reg.mu.RLock()
	defer c.reg.mu.RUnlock()
	return c.level
}

// EffectiveLevel resolves the channel's threshold: its own level when
// set, otherwise the first explicit level walking toward root. NOTSET
// everywhere on the chain resolves to NOTSET, which passes every
// record.
func (c *Channel) EffectiveLevel() core.Level {
	c.reg.mu.RLock()
	defer c.reg.mu.RUnlock()
	return c.effectiveLevelLocked()
}

func (c *Channel) effectiveLevelLocked() core.Level {
	for cur := c; cur != nil; cur = cur.parent {
		if cur.level != core.NotSetLevel {
			return cur.level
		}
	}
	return core.NotSetLevel
}

// EnabledFor reports whether a record at the given severity would be
// dispatched from this channel.
func (c *Channel) EnabledFor(level core.Level) bool {
	c.reg.mu.RLock()
	defer c.reg.mu.RUnlock()
	return c.enabledLocked(level)
}

func (c *Channel) enabledLocked(level core.Level) bool {
	if c.disabled || c.suppressed || c.reg.suppressAll {
		return false
	}
	return level >= c.effectiveLevelLocked()
}

// Propagate reports whether records continue to ancestor channels
// after this one.
func (c *Channel) Propagate() bool {
	c.reg.mu.RLock()
	defer c.reg.mu.RUnlock()
	return c.propagate
}

// Handlers returns the sinks bound directly to this channel.
func (c *Channel) Handlers() []handler.Handler {
	c.reg.mu.RLock()
	defer c.reg.mu.RUnlock()
	out := make([]handler.Handler, len(c.handlers))
	copy(out, c.handlers)
	return out
}

// SetLevel sets the channel's threshold. NOTSET restores inheritance
// from the nearest configured ancestor.
func (c *Channel) SetLevel(level core.Level) {
	c.reg.mu.Lock()
	c.level = level
	c.reg.mu.Unlock()
}

// SetPropagate controls whether records flow on to ancestors after
// this channel's own sinks.
func (c *Channel) SetPropagate(propagate bool) {
	c.reg.mu.Lock()
	c.propagate = propagate
	c.reg.mu.Unlock()
}

// SetSuppressed mutes or unmutes this channel without touching its
// bindings. Suppression is per channel and survives re-application.
func (c *Channel) SetSuppressed(suppressed bool) {
	c.reg.mu.Lock()
	c.suppressed = suppressed
	c.reg.mu.Unlock()
}

// SetDisabled marks the channel disabled. Disabled channels drop
// records emitted on them; records propagating up from descendants
// still pass through and reach their sinks.
func (c *Channel) SetDisabled(disabled bool) {
	c.reg.mu.Lock()
	c.disabled = disabled
	c.reg.mu.Unlock()
}

// AddHandler binds a sink to this channel. Binding order is delivery
// order.
func (c *Channel) AddHandler(h handler.Handler) {
	if h == nil {
		return
	}
	c.reg.mu.Lock()
	c.handlers = append(c.handlers, h)
	c.reg.mu.Unlock()
}

// Log emits a record at the given severity.
func (c *Channel) Log(level core.Level, msg string, fields ...core.Field) {
	c.log(level, msg, fields)
}

// Debug emits a DEBUG record.
func (c *Channel) Debug(msg string, fields ...core.Field) {
	c.log(core.DebugLevel, msg, fields)
}

// Info emits an INFO record.
func (c *Channel) Info(msg string, fields ...core.Field) {
	c.log(core.InfoLevel, msg, fields)
}

// Warning emits a WARNING record.
func (c *Channel) Warning(msg string, fields ...core.Field) {
	c.log(core.WarningLevel, msg, fields)
}

// Error emits an ERROR record.
func (c *Channel) Error(msg string, fields ...core.Field) {
	c.log(core.ErrorLevel, msg, fields)
}

// Critical emits a CRITICAL record.
func (c *Channel) Critical(msg string, fields ...core.Field) {
	c.log(core.CriticalLevel, msg, fields)
}

// Debugf emits a DEBUG record with fmt.Sprintf formatting.
func (c *Channel) Debugf(format string, args ...interface{}) {
	if !c.EnabledFor(core.DebugLevel) {
		return
	}
	c.log(core.DebugLevel, fmt.Sprintf(format, args...), nil)
}

// Infof emits an INFO record with fmt.Sprintf formatting.
func (c *Channel) Infof(format string, args ...interface{}) {
	if !c.EnabledFor(core.InfoLevel) {
		return
	}
	c.log(core.InfoLevel, fmt.Sprintf(format, args...), nil)
}

// Warningf emits a WARNING record with fmt.Sprintf formatting.
func (c *Channel) Warningf(format string, args ...interface{}) {
	if !c.EnabledFor(core.WarningLevel) {
		return
	}
	c.log(core.WarningLevel, fmt.Sprintf(format, args...), nil)
}

// Errorf emits an ERROR record with fmt.Sprintf formatting.
func (c *Channel) Errorf(format string, args ...interface{}) {
	if !c.EnabledFor(core.ErrorLevel) {
		return
	}
	c.log(core.ErrorLevel, fmt.Sprintf(format, args...), nil)
}

// Criticalf emits a CRITICAL record with fmt.Sprintf formatting.
func (c *Channel) Criticalf(format string, args ...interface{}) {
	if !c.EnabledFor(core.CriticalLevel) {
		return
	}
	c.log(core.CriticalLevel, fmt.Sprintf(format, args...), nil)
}

// Emit dispatches a pre-stamped record on behalf of a bridge. A zero
// time means now. Emit never captures the call site; bridges carry
// their own source information when they have it.
func (c *Channel) Emit(t time.Time, level core.Level, msg string, fields []core.Field) {
	reg := c.reg
	reg.mu.RLock()
	if !c.enabledLocked(level) {
		reg.mu.RUnlock()
		return
	}

	rec := core.GetRecord()
	if !t.IsZero() {
		rec.Time = t
	}
	rec.Level = level
	rec.Channel = c.name
	rec.Message = msg
	if len(fields) > 0 {
		rec.Fields = append(rec.Fields, fields...)
	}

	c.dispatchLocked(rec)
	reg.mu.RUnlock()
	core.PutRecord(rec)
}

// log builds a pooled record and dispatches it. The registry read lock
// is held across the whole fan-out so application of a new
// configuration cannot interleave with delivery.
func (c *Channel) log(level core.Level, msg string, fields []core.Field) {
	reg := c.reg
	reg.mu.RLock()
	if !c.enabledLocked(level) {
		reg.mu.RUnlock()
		return
	}

	rec := core.GetRecord()
	rec.Level = level
	rec.Channel = c.name
	rec.Message = msg
	if len(fields) > 0 {
		rec.Fields = append(rec.Fields, fields...)
	}
	if reg.includeCaller {
		rec.Caller = core.GetCaller(callerSkip)
	}

	c.dispatchLocked(rec)
	reg.mu.RUnlock()
	core.PutRecord(rec)
}

// dispatchLocked walks the channel chain delivering the record.
//
// The emitting channel already passed its effective threshold; each
// ancestor is checked again against its own, so a record can skip an
// over-strict ancestor's sinks yet still reach a permissive one above
// it. Every handler on the chain counts as found whether or not it
// fires; a record that found none prints its bare message to the
// registry error output when at least WARNING. Sink failures are
// reported and never stop the fan-out.
func (c *Channel) dispatchLocked(rec *core.Record) {
	found := 0
	for cur := c; cur != nil; cur = cur.parent {
		deliver := cur == c || rec.Level >= cur.effectiveLevelLocked()
		for _, h := range cur.handlers {
			found++
			if !deliver || rec.Level < h.Level() {
				continue
			}
			if err := h.Handle(rec); err != nil {
				c.reg.reportLocked(err)
			}
		}
		if !cur.propagate {
			break
		}
	}

	if found == 0 && rec.Level >= core.WarningLevel {
		c.reg.lastResortLocked(rec)
	}
}

package sloghandler

import (
	"context"
	"log/slog"

	"github.com/elisa-suite/logrouter/core"
	"github.com/elisa-suite/logrouter/logger"
)

// SlogHandler implements slog.Handler on top of a routing channel.
// Records keep their slog timestamps and attributes and then follow
// the channel's configured routing, including propagation.
type SlogHandler struct {
	channel *logger.Channel
	attrs   []core.Field
	group   string
}

// New wraps a channel as a slog.Handler.
func New(ch *logger.Channel) *SlogHandler {
	return &SlogHandler{channel: ch}
}

// Enabled consults the channel's effective threshold.
func (s *SlogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return s.channel.EnabledFor(slogLevel(level))
}

// Handle converts the record's attributes and emits it on the channel.
// Sink failures are reported through the registry error output, so
// Handle itself never fails.
func (s *SlogHandler) Handle(_ context.Context, record slog.Record) error {
	fields := make([]core.Field, 0, len(s.attrs)+record.NumAttrs())
	fields = append(fields, s.attrs...)
	record.Attrs(func(a slog.Attr) bool {
		fields = appendAttr(fields, s.group, a)
		return true
	})

	s.channel.Emit(record.Time, slogLevel(record.Level), record.Message, fields)
	return nil
}

// WithAttrs returns a handler carrying additional pre-converted
// fields. Attributes added inside an open group get its prefix.
func (s *SlogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return s
	}
	newAttrs := make([]core.Field, len(s.attrs), len(s.attrs)+len(attrs))
	copy(newAttrs, s.attrs)
	for _, a := range attrs {
		newAttrs = appendAttr(newAttrs, s.group, a)
	}
	return &SlogHandler{
		channel: s.channel,
		attrs:   newAttrs,
		group:   s.group,
	}
}

// WithGroup returns a handler that dot-prefixes subsequent attribute
// keys with the group name.
func (s *SlogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return s
	}
	newGroup := name
	if s.group != "" {
		newGroup = s.group + "." + name
	}
	newAttrs := make([]core.Field, len(s.attrs))
	copy(newAttrs, s.attrs)
	return &SlogHandler{
		channel: s.channel,
		attrs:   newAttrs,
		group:   newGroup,
	}
}

// slogLevel maps slog severities onto the router's scale. Levels four
// or more above slog.LevelError count as CRITICAL.
func slogLevel(level slog.Level) core.Level {
	switch {
	case level >= slog.LevelError+4:
		return core.CriticalLevel
	case level >= slog.LevelError:
		return core.ErrorLevel
	case level >= slog.LevelWarn:
		return core.WarningLevel
	case level >= slog.LevelInfo:
		return core.InfoLevel
	default:
		return core.DebugLevel
	}
}

// appendAttr converts one attribute, flattening groups into
// dot-prefixed keys. Zero attributes are dropped per the slog.Handler
// contract.
func appendAttr(fields []core.Field, group string, a slog.Attr) []core.Field {
	a.Value = a.Value.Resolve()

	if a.Value.Kind() == slog.KindGroup {
		prefix := group
		if a.Key != "" {
			prefix = joinKey(group, a.Key)
		}
		for _, ga := range a.Value.Group() {
			fields = appendAttr(fields, prefix, ga)
		}
		return fields
	}

	if a.Key == "" && a.Value.Any() == nil {
		return fields
	}
	key := joinKey(group, a.Key)

	switch a.Value.Kind() {
	case slog.KindString:
		return append(fields, core.Field{Key: key, Type: core.StringType, Str: a.Value.String()})
	case slog.KindInt64:
		return append(fields, core.Field{Key: key, Type: core.Int64Type, Int64: a.Value.Int64()})
	case slog.KindUint64:
		return append(fields, core.Field{Key: key, Type: core.Int64Type, Int64: int64(a.Value.Uint64())})
	case slog.KindFloat64:
		return append(fields, core.Field{Key: key, Type: core.Float64Type, Float64: a.Value.Float64()})
	case slog.KindBool:
		val := int64(0)
		if a.Value.Bool() {
			val = 1
		}
		return append(fields, core.Field{Key: key, Type: core.BoolType, Int64: val})
	case slog.KindTime:
		return append(fields, core.Field{Key: key, Type: core.TimeType, Int64: a.Value.Time().UnixNano()})
	case slog.KindDuration:
		return append(fields, core.Field{Key: key, Type: core.DurationType, Int64: int64(a.Value.Duration())})
	default:
		return append(fields, core.Field{Key: key, Type: core.AnyType, Any: a.Value.Any()})
	}
}

func joinKey(group, key string) string {
	if group == "" {
		return key
	}
	return group + "." + key
}

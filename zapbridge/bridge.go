package zapbridge

import (
	"math"
	"time"

	"go.uber.org/zap/zapcore"

	"github.com/elisa-suite/logrouter/core"
	"github.com/elisa-suite/logrouter/logger"
)

// routerCore is a zapcore.Core that forwards entries to registry
// channels. The zap logger name selects the channel, so
// zap.L().Named("binary_system").Named("system") writes through the
// "binary_system.system" channel with its thresholds, sinks, and
// propagation.
type routerCore struct {
	reg    *logger.Registry
	fields []core.Field
	ns     string
}

// NewCore returns a zapcore.Core backed by the registry. Entries
// without a logger name go to the root channel.
//
//	log := zap.New(zapbridge.NewCore(reg))
//	log.Named("observer").Info("observation loaded")
func NewCore(reg *logger.Registry) zapcore.Core {
	return &routerCore{reg: reg}
}

// Enabled reports the root channel's verdict. Named entries are
// gated precisely in Check, which sees the logger name.
func (c *routerCore) Enabled(level zapcore.Level) bool {
	return c.reg.Root().EnabledFor(routerLevel(level))
}

func (c *routerCore) With(fields []zapcore.Field) zapcore.Core {
	if len(fields) == 0 {
		return c
	}
	converted, ns := convertFields(c.ns, fields)
	merged := make([]core.Field, 0, len(c.fields)+len(converted))
	merged = append(merged, c.fields...)
	merged = append(merged, converted...)
	return &routerCore{reg: c.reg, fields: merged, ns: ns}
}

func (c *routerCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.channel(ent.LoggerName).EnabledFor(routerLevel(ent.Level)) {
		return ce.AddCore(ent, c)
	}
	return ce
}

func (c *routerCore) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	all := c.fields
	if len(fields) > 0 || ent.Stack != "" {
		converted, _ := convertFields(c.ns, fields)
		all = make([]core.Field, 0, len(c.fields)+len(converted)+1)
		all = append(all, c.fields...)
		all = append(all, converted...)
		if ent.Stack != "" {
			all = append(all, logger.String("stacktrace", ent.Stack))
		}
	}
	c.channel(ent.LoggerName).Emit(ent.Time, routerLevel(ent.Level), ent.Message, all)
	return nil
}

// Sync is a no-op; emission is synchronous and sinks hold no buffers.
func (c *routerCore) Sync() error { return nil }

func (c *routerCore) channel(name string) *logger.Channel {
	if name == "" {
		return c.reg.Root()
	}
	return c.reg.GetLogger(name)
}

// routerLevel maps zap severities onto channel levels. DPanic, Panic,
// and Fatal all land on CRITICAL; the zap logger still handles its
// own panic and exit behavior after Write returns.
func routerLevel(level zapcore.Level) core.Level {
	switch {
	case level >= zapcore.DPanicLevel:
		return core.CriticalLevel
	case level == zapcore.ErrorLevel:
		return core.ErrorLevel
	case level == zapcore.WarnLevel:
		return core.WarningLevel
	case level == zapcore.InfoLevel:
		return core.InfoLevel
	default:
		return core.DebugLevel
	}
}

// convertFields maps zap fields onto record fields. Namespaces
// flatten into dotted key prefixes, matching how attribute groups are
// rendered elsewhere; the returned namespace carries opened
// namespaces forward to later batches on the same core.
func convertFields(ns string, fields []zapcore.Field) ([]core.Field, string) {
	out := make([]core.Field, 0, len(fields))
	for _, f := range fields {
		switch f.Type {
		case zapcore.SkipType:
			continue
		case zapcore.NamespaceType:
			ns = joinKey(ns, f.Key)
			continue
		}
		cf := convertField(f)
		cf.Key = joinKey(ns, cf.Key)
		out = append(out, cf)
	}
	return out, ns
}

func convertField(f zapcore.Field) core.Field {
	switch f.Type {
	case zapcore.StringType:
		return logger.String(f.Key, f.String)
	case zapcore.Int64Type, zapcore.Int32Type, zapcore.Int16Type, zapcore.Int8Type,
		zapcore.Uint64Type, zapcore.Uint32Type, zapcore.Uint16Type, zapcore.Uint8Type,
		zapcore.UintptrType:
		return logger.Int64(f.Key, f.Integer)
	case zapcore.Float64Type:
		return logger.Float64(f.Key, math.Float64frombits(uint64(f.Integer)))
	case zapcore.Float32Type:
		return logger.Float64(f.Key, float64(math.Float32frombits(uint32(f.Integer))))
	case zapcore.BoolType:
		return logger.Bool(f.Key, f.Integer == 1)
	case zapcore.DurationType:
		return logger.Duration(f.Key, time.Duration(f.Integer))
	case zapcore.TimeType:
		t := time.Unix(0, f.Integer)
		if loc, ok := f.Interface.(*time.Location); ok && loc != nil {
			t = t.In(loc)
		}
		return logger.Time(f.Key, t)
	case zapcore.TimeFullType:
		return logger.Time(f.Key, f.Interface.(time.Time))
	case zapcore.ErrorType:
		err, _ := f.Interface.(error)
		var msg string
		if err != nil {
			msg = err.Error()
		}
		return core.Field{Key: f.Key, Type: core.ErrorType, Str: msg}
	case zapcore.StringerType:
		return logger.String(f.Key, stringerValue(f.Interface))
	default:
		// Objects, arrays, reflected values: let zap's own encoder
		// produce something printable.
		enc := zapcore.NewMapObjectEncoder()
		f.AddTo(enc)
		if v, ok := enc.Fields[f.Key]; ok {
			return logger.Any(f.Key, v)
		}
		return logger.Any(f.Key, f.Interface)
	}
}

func stringerValue(v interface{}) string {
	s, ok := v.(interface{ String() string })
	if !ok || s == nil {
		return ""
	}
	return s.String()
}

func joinKey(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

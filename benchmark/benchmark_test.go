package benchmark

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/elisa-suite/logrouter/core"
	"github.com/elisa-suite/logrouter/formatter"
	"github.com/elisa-suite/logrouter/handler/consolehandler"
	"github.com/elisa-suite/logrouter/handler/filehandler"
	"github.com/elisa-suite/logrouter/logger"
)

// discardWriter is a no-op writer for benchmarking
type discardWriter struct{}

func (w discardWriter) Write(p []byte) (int, error) {
	return len(p), nil
}

var sinkField any

// benchFormat is the template the stock configuration documents use.
const benchFormat = "%(asctime)s - %(process)d - %(name)s - %(levelname)s: %(message)s"

func mustPattern(b *testing.B, format string) *formatter.Pattern {
	b.Helper()
	p, err := formatter.NewPattern(format, "")
	if err != nil {
		b.Fatal(err)
	}
	return p
}

// newDiscardChannel returns a registry and a channel carrying a single
// console sink that writes to a no-op writer. The channel does not
// propagate, so each benchmark measures exactly one delivery.
func newDiscardChannel(b *testing.B, level core.Level, f formatter.Formatter) (*logger.Registry, *logger.Channel) {
	b.Helper()
	reg := logger.NewRegistry()
	ch := reg.GetLogger("observer.observer")
	ch.SetLevel(level)
	ch.SetPropagate(false)
	ch.AddHandler(consolehandler.NewConsoleHandler(consolehandler.ConsoleConfig{
		Writer:    discardWriter{},
		Formatter: f,
	}))
	return reg, ch
}

// Benchmark channel lookup on a warm registry
func BenchmarkGetLogger(b *testing.B) {
	tests := []struct {
		name    string
		channel string
	}{
		{"Flat", "observer"},
		{"Dotted", "binary_system.curves.lc"},
	}

	for _, tt := range tests {
		b.Run(tt.name, func(b *testing.B) {
			reg := logger.NewRegistry()
			defer reg.Close()
			reg.GetLogger(tt.channel)

			b.ResetTimer()
			b.ReportAllocs()

			for i := 0; i < b.N; i++ {
				_ = reg.GetLogger(tt.channel)
			}
		})
	}
}

// Benchmark basic Info logging without fields
func BenchmarkInfoNoFields(b *testing.B) {
	reg, log := newDiscardChannel(b, core.InfoLevel, mustPattern(b, benchFormat))
	defer reg.Close()

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		log.Info("observation point recorded")
	}
}

// Benchmark Info logging with 1 field
func BenchmarkInfo1Field(b *testing.B) {
	reg, log := newDiscardChannel(b, core.InfoLevel, mustPattern(b, benchFormat))
	defer reg.Close()

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		log.Info("observation point recorded", logger.String("component", "primary"))
	}
}

// Benchmark Info logging with 5 fields
func BenchmarkInfo5Fields(b *testing.B) {
	reg, log := newDiscardChannel(b, core.InfoLevel, mustPattern(b, benchFormat))
	defer reg.Close()

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		log.Info("observation point recorded",
			logger.String("component", "primary"),
			logger.Int("points", 512),
			logger.Float64("phase", 0.25),
			logger.Bool("eclipse", true),
			logger.String("passband", "Kepler"),
		)
	}
}

// Benchmark Info logging with 10 fields
func BenchmarkInfo10Fields(b *testing.B) {
	reg, log := newDiscardChannel(b, core.InfoLevel, mustPattern(b, benchFormat))
	defer reg.Close()

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		log.Info("observation point recorded",
			logger.String("component", "primary"),
			logger.Int("points", 512),
			logger.Float64("phase", 0.25),
			logger.Bool("eclipse", true),
			logger.String("passband", "Kepler"),
			logger.Int64("run", 1234567890),
			logger.Duration("elapsed", time.Second),
			logger.Time("started", time.Now()),
			logger.Float64("inclination", 85.0),
			logger.String("morphology", "detached"),
		)
	}
}

// Benchmark disabled level (testing early exit)
func BenchmarkDisabledLevel(b *testing.B) {
	reg, log := newDiscardChannel(b, core.ErrorLevel, mustPattern(b, benchFormat))
	defer reg.Close()

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		log.Debug("flux sample", logger.Float64("phase", 0.25))
	}
}

// Benchmark the muting flags, which gate before any record is built
func BenchmarkMutedChannel(b *testing.B) {
	tests := []struct {
		name string
		mute func(*logger.Registry, *logger.Channel)
	}{
		{"Suppressed", func(_ *logger.Registry, ch *logger.Channel) { ch.SetSuppressed(true) }},
		{"Disabled", func(_ *logger.Registry, ch *logger.Channel) { ch.SetDisabled(true) }},
		{"SuppressAll", func(reg *logger.Registry, _ *logger.Channel) { reg.SetSuppressAll(true) }},
	}

	for _, tt := range tests {
		b.Run(tt.name, func(b *testing.B) {
			reg, log := newDiscardChannel(b, core.DebugLevel, mustPattern(b, benchFormat))
			defer reg.Close()
			tt.mute(reg, log)

			b.ResetTimer()
			b.ReportAllocs()

			for i := 0; i < b.N; i++ {
				log.Info("observation point recorded")
			}
		})
	}
}

// Benchmark different field types
func BenchmarkFieldTypes(b *testing.B) {
	tests := []struct {
		name  string
		field core.Field
	}{
		{"String", logger.String("component", "primary")},
		{"Int", logger.Int("points", 512)},
		{"Int64", logger.Int64("run", 1234567890)},
		{"Float64", logger.Float64("phase", 0.25159265)},
		{"Bool", logger.Bool("eclipse", true)},
		{"Time", logger.Time("started", time.Now())},
		{"Duration", logger.Duration("elapsed", time.Second)},
		{"Error", logger.Err(errors.New("interpolation failed"))},
		{"Any", logger.Any("passbands", map[string]string{"primary": "Kepler"})},
	}

	for _, tt := range tests {
		b.Run(tt.name, func(b *testing.B) {
			reg, log := newDiscardChannel(b, core.InfoLevel, mustPattern(b, benchFormat))
			defer reg.Close()

			b.ResetTimer()
			b.ReportAllocs()

			for i := 0; i < b.N; i++ {
				log.Info("observation point recorded", tt.field)
			}
		})
	}
}

// Benchmark formatter variants
func BenchmarkFormatters(b *testing.B) {
	callerFormat := "%(filename)s:%(lineno)d - %(levelname)s: %(message)s"

	tests := []struct {
		name      string
		formatter formatter.Formatter
		caller    bool
	}{
		{"MessageOnly", formatter.DefaultPattern(), false},
		{"Template", mustPattern(b, benchFormat), false},
		{"TemplateWithCaller", mustPattern(b, callerFormat), true},
		{"JSON", formatter.NewJSONFormatter(formatter.Config{}), false},
		{"JSONWithCaller", formatter.NewJSONFormatter(formatter.Config{IncludeCaller: true}), true},
	}

	for _, tt := range tests {
		b.Run(tt.name, func(b *testing.B) {
			reg, log := newDiscardChannel(b, core.InfoLevel, tt.formatter)
			defer reg.Close()
			reg.SetIncludeCaller(tt.caller)

			b.ResetTimer()
			b.ReportAllocs()

			for i := 0; i < b.N; i++ {
				log.Info("observation point recorded",
					logger.String("component", "primary"),
					logger.Int("points", 512),
					logger.Float64("phase", 0.25),
				)
			}
		})
	}
}

// Benchmark caller capture overhead in isolation
func BenchmarkCallerCapture(b *testing.B) {
	tests := []struct {
		name          string
		includeCaller bool
	}{
		{"WithoutCaller", false},
		{"WithCaller", true},
	}

	for _, tt := range tests {
		b.Run(tt.name, func(b *testing.B) {
			reg, log := newDiscardChannel(b, core.InfoLevel, mustPattern(b, benchFormat))
			defer reg.Close()
			reg.SetIncludeCaller(tt.includeCaller)

			b.ResetTimer()
			b.ReportAllocs()

			for i := 0; i < b.N; i++ {
				log.Info("observation point recorded", logger.String("component", "primary"))
			}
		})
	}
}

// Benchmark formatted logging methods
func BenchmarkFormattedLogging(b *testing.B) {
	reg, log := newDiscardChannel(b, core.InfoLevel, mustPattern(b, benchFormat))
	defer reg.Close()

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		log.Infof("observation point %d in %s", i, "Kepler")
	}
}

// Benchmark propagation across channel depths (sink on the root)
func BenchmarkPropagationDepth(b *testing.B) {
	depths := []int{1, 2, 4, 8}

	for _, depth := range depths {
		b.Run(fmt.Sprintf("Depth%d", depth), func(b *testing.B) {
			segments := make([]string, depth)
			for i := range segments {
				segments[i] = fmt.Sprintf("seg%d", i)
			}

			reg := logger.NewRegistry()
			defer reg.Close()
			reg.Root().SetLevel(core.DebugLevel)
			reg.Root().AddHandler(consolehandler.NewConsoleHandler(consolehandler.ConsoleConfig{
				Writer:    discardWriter{},
				Formatter: mustPattern(b, benchFormat),
			}))
			log := reg.GetLogger(strings.Join(segments, "."))

			b.ResetTimer()
			b.ReportAllocs()

			for i := 0; i < b.N; i++ {
				log.Info("observation point recorded", logger.Int("points", i))
			}
		})
	}
}

// Benchmark fan-out to multiple sinks on a single channel
func BenchmarkFanout(b *testing.B) {
	counts := []int{2, 3, 5, 10}

	for _, count := range counts {
		b.Run(fmt.Sprintf("%dSinks", count), func(b *testing.B) {
			reg := logger.NewRegistry()
			defer reg.Close()
			log := reg.GetLogger("observer")
			log.SetLevel(core.InfoLevel)
			log.SetPropagate(false)
			for i := 0; i < count; i++ {
				log.AddHandler(consolehandler.NewConsoleHandler(consolehandler.ConsoleConfig{
					Writer:    discardWriter{},
					Formatter: mustPattern(b, benchFormat),
					Name:      fmt.Sprintf("console%d", i),
				}))
			}

			b.ResetTimer()
			b.ReportAllocs()

			for i := 0; i < b.N; i++ {
				log.Info("observation point recorded", logger.Int("points", i))
			}
		})
	}
}

// Benchmark different log levels
func BenchmarkLogLevels(b *testing.B) {
	reg, log := newDiscardChannel(b, core.DebugLevel, mustPattern(b, benchFormat))
	defer reg.Close()

	tests := []struct {
		name string
		fn   func(string, ...core.Field)
	}{
		{"Debug", log.Debug},
		{"Info", log.Info},
		{"Warning", log.Warning},
		{"Error", log.Error},
		{"Critical", log.Critical},
	}

	for _, tt := range tests {
		b.Run(tt.name, func(b *testing.B) {
			b.ResetTimer()
			b.ReportAllocs()

			for i := 0; i < b.N; i++ {
				tt.fn("observation point recorded", logger.String("component", "primary"))
			}
		})
	}
}

// Benchmark the dispatch machinery alone with a no-op sink
func BenchmarkNoopDispatch(b *testing.B) {
	reg := logger.NewRegistry()
	defer reg.Close()
	log := reg.GetLogger("observer")
	log.SetLevel(core.InfoLevel)
	log.SetPropagate(false)
	log.AddHandler(newNoopSink())

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		log.Info("observation point recorded")
	}
}

// Benchmark concurrent emission
func BenchmarkParallelEmit(b *testing.B) {
	b.Run("NoFields", func(b *testing.B) {
		reg, log := newDiscardChannel(b, core.InfoLevel, mustPattern(b, benchFormat))
		defer reg.Close()

		b.ReportAllocs()
		b.ResetTimer()

		b.RunParallel(func(pb *testing.PB) {
			for pb.Next() {
				log.Info("observation point recorded")
			}
		})
	})

	b.Run("WithFields", func(b *testing.B) {
		reg, log := newDiscardChannel(b, core.InfoLevel, mustPattern(b, benchFormat))
		defer reg.Close()

		b.ReportAllocs()
		b.ResetTimer()

		b.RunParallel(func(pb *testing.PB) {
			for pb.Next() {
				log.Info("observation point recorded",
					logger.String("component", "primary"),
					logger.Int("points", 512),
				)
			}
		})
	})

	b.Run("NoopSink", func(b *testing.B) {
		reg := logger.NewRegistry()
		defer reg.Close()
		log := reg.GetLogger("observer")
		log.SetLevel(core.InfoLevel)
		log.SetPropagate(false)
		log.AddHandler(newNoopSink())

		b.ReportAllocs()
		b.ResetTimer()

		b.RunParallel(func(pb *testing.PB) {
			for pb.Next() {
				log.Info("observation point recorded")
			}
		})
	})
}

// Benchmark the rotating file sink writing to a real file
func BenchmarkFileSink(b *testing.B) {
	h, err := filehandler.NewFileHandler(filehandler.FileConfig{
		Filename:  filepath.Join(b.TempDir(), "bench.log"),
		Formatter: mustPattern(b, benchFormat),
	})
	if err != nil {
		b.Fatal(err)
	}

	reg := logger.NewRegistry()
	defer reg.Close()
	log := reg.GetLogger("observer")
	log.SetLevel(core.InfoLevel)
	log.SetPropagate(false)
	log.AddHandler(h)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		log.Info("observation point recorded",
			logger.String("component", "primary"),
			logger.Int("points", i),
		)
	}
}

// Benchmark the rotating file sink with rotation firing regularly
func BenchmarkFileSinkRotation(b *testing.B) {
	h, err := filehandler.NewFileHandler(filehandler.FileConfig{
		Filename:    filepath.Join(b.TempDir(), "bench.log"),
		Formatter:   mustPattern(b, benchFormat),
		MaxBytes:    4096,
		BackupCount: 3,
	})
	if err != nil {
		b.Fatal(err)
	}

	reg := logger.NewRegistry()
	defer reg.Close()
	log := reg.GetLogger("observer")
	log.SetLevel(core.InfoLevel)
	log.SetPropagate(false)
	log.AddHandler(h)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		log.Info("observation point recorded", logger.Int("points", i))
	}
}

// Benchmark record pool recycling
func BenchmarkRecordPool(b *testing.B) {
	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		rec := core.GetRecord()
		rec.Level = core.InfoLevel
		rec.Channel = "observer"
		rec.Message = "observation point recorded"
		rec.Fields = append(rec.Fields, logger.String("component", "primary"))
		core.PutRecord(rec)
	}
}

// Benchmark error field creation
func BenchmarkErrorField(b *testing.B) {
	testErr := errors.New("interpolation failed")

	b.Run("WithError", func(b *testing.B) {
		b.ReportAllocs()
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			f := logger.Err(testErr)
			sinkField = f
		}
	})

	b.Run("WithNilError", func(b *testing.B) {
		b.ReportAllocs()
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			f := logger.Err(nil)
			sinkField = f
		}
	})
}

// Benchmark large message handling
func BenchmarkLargeMessages(b *testing.B) {
	sizes := []struct {
		name string
		size int
	}{
		{"Small_50B", 50},
		{"Medium_500B", 500},
		{"Large_5KB", 5000},
		{"VeryLarge_50KB", 50000},
	}

	for _, sz := range sizes {
		b.Run(sz.name, func(b *testing.B) {
			reg, log := newDiscardChannel(b, core.InfoLevel, mustPattern(b, benchFormat))
			defer reg.Close()

			message := string(make([]byte, sz.size))

			b.ResetTimer()
			b.ReportAllocs()

			for i := 0; i < b.N; i++ {
				log.Info(message)
			}
		})
	}
}

// Benchmark timestamped emission, the path log front-ends use
func BenchmarkEmit(b *testing.B) {
	reg, log := newDiscardChannel(b, core.InfoLevel, mustPattern(b, benchFormat))
	defer reg.Close()

	stamp := time.Now()
	fields := []core.Field{logger.Int("points", 512)}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		log.Emit(stamp, core.InfoLevel, "observation point recorded", fields)
	}
}

// Benchmark a realistic fitting run with mixed channels and thresholds
func BenchmarkObservationRun(b *testing.B) {
	reg := logger.NewRegistry()
	defer reg.Close()
	reg.Root().SetLevel(core.InfoLevel)
	reg.Root().AddHandler(consolehandler.NewConsoleHandler(consolehandler.ConsoleConfig{
		Writer:    discardWriter{},
		Formatter: mustPattern(b, benchFormat),
	}))

	obs := reg.GetLogger("observer.observer")
	curves := reg.GetLogger("binary_system.curves.lc")
	system := reg.GetLogger("binary_system.system")

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		obs.Info("observation point recorded",
			logger.Int("index", i),
			logger.String("passband", "Kepler"),
		)
		curves.Debug("flux sample interpolated", logger.Float64("phase", 0.25))
		system.Warning("mass ratio out of range", logger.Float64("q", 14.8))
	}
}

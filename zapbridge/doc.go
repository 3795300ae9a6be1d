// Package zapbridge routes zap entries through registry channels.
//
// Libraries instrumented with go.uber.org/zap can participate in the
// same routing configuration as everything else: build the zap logger
// on a bridge core and the logger name selects the channel.
//
//	log := zap.New(zapbridge.NewCore(reg))
//	fit := log.Named("analytics").Named("binary").Named("fit")
//	fit.Debug("iteration finished", zap.Int("step", 12))
//
// The dotted zap logger name maps onto the channel hierarchy, so the
// entry above is gated by the analytics.binary.fit channel and
// delivered to whatever sinks the configuration bound there. Field
// namespaces flatten into dotted key prefixes. DPanic, Panic, and
// Fatal map to CRITICAL; panicking and exiting stay with the zap
// logger itself.
package zapbridge

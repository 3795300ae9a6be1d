// Package sloghandler adapts a routing channel to the standard
// library's log/slog, so code already written against slog emits
// through the configured channel hierarchy:
//
//	reg := logger.NewRegistry()
//	log := slog.New(sloghandler.New(reg.GetLogger("observer.observer")))
//	log.Info("observation loaded", "points", 512)
//
// Records keep their slog timestamps; severities map onto the router's
// scale (slog custom levels at LevelError+4 and above count as
// CRITICAL). Attribute groups flatten to dot-prefixed keys, so
// WithGroup("auth") plus a user_id attribute renders auth.user_id=123.
package sloghandler

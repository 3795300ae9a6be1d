// Package logger provides the routing registry and the hierarchical
// channels that emit through it.
//
// A Registry owns a tree of named channels. Names are dot separated:
// "binary_system.curves.lc" is a child of "binary_system.curves",
// which is a child of "binary_system", whose parent is the root
// channel. Channels materialize on first lookup and are never
// destroyed, so a *Channel held by a collaborator stays valid when a
// new configuration is applied to the registry:
//
//	reg := logger.NewRegistry()
//	sys := reg.GetLogger("binary_system.system")
//	sys.Warning("primary component is overflowing")
//
// A channel without an explicit threshold inherits the first one found
// walking toward root (root defaults to WARNING). A record passing the
// emitting channel's effective threshold visits that channel's sinks
// and then, while propagation holds, each ancestor's sinks up to root.
// Ancestors are checked against their own effective thresholds, and
// every sink applies its own threshold on top, so a handler bound at
// INFO never renders DEBUG traffic however permissive its channel.
//
// Records that reach no sink anywhere on their chain print their bare
// message to the registry error output (stderr unless redirected) when
// at least WARNING, so misconfigured processes are not silent. Sink
// write failures are reported to the same output and never prevent
// delivery to the remaining sinks.
//
// Emission is synchronous: when a call like Info returns, every sink
// has rendered and written the record. Each sink serializes its own
// writes, so channels are safe for concurrent use from any number of
// goroutines.
//
// The package also keeps a default registry for programs that do not
// thread an explicit handle; logger.GetLogger and the package-level
// Info, Warning, Errorf, etc. delegate to it. New code should prefer
// an injected *Registry.
package logger

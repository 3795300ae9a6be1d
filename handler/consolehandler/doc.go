// Package consolehandler provides the console sink: formatted log
// records written to a standard stream or any io.Writer (default:
// os.Stderr).
//
// Writes are synchronous. The handler formats into an owned buffer
// and writes under a single mutex, so output from concurrent
// emitters never interleaves. Closing the handler never closes the
// underlying stream, which usually belongs to the process.
package consolehandler

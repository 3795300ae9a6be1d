// Package filehandler provides the rotating file sink: formatted log
// records appended to a file that rotates through numbered backups
// when a size threshold would be crossed.
//
// Rotation follows the numbered-generation scheme: before a write
// that would reach MaxBytes, base.(N-1) is renamed to base.N for each
// retained generation, the current file becomes base.1, and writes
// continue in a fresh base file. base.1 therefore always holds the
// most recent archive and the generation past BackupCount is
// discarded. With BackupCount 0 the file is truncated in place. A
// file already past the threshold when the handler opens it rotates
// before the first write, so a restarted process never inflates an
// oversized log.
//
// Writes are synchronous and unbuffered; format, rotate, and write
// happen under one mutex per sink, so concurrent emitters cannot
// interleave output or race a rotation.
package filehandler

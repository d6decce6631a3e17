// Package log provides packet-level trace logging for device sessions.
//
// This is separate from operational logging (slog): a trace captures every
// feature report exchanged with the mouse, byte-exact, so a failing
// exchange can be replayed against the protocol documentation. Sessions
// emit an Event per packet, per state change, and per error.
//
// Applications pick a Logger implementation:
//
//	// Development: packets on the console via slog
//	cfg.Trace = log.NewSlogAdapter(slog.Default())
//
//	// Capture to a binary file for later inspection
//	cfg.Trace, _ = log.NewFileLogger("x3.trace")
//
//	// Both at once
//	cfg.Trace = log.NewMultiLogger(...)
//
// Trace files are a stream of CBOR-encoded events; Reader iterates them
// back with optional filtering.
package log

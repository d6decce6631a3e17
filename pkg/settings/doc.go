// Package settings is the typed, human-facing view over the command
// catalog: query-then-decode and validate-then-encode-then-send helpers
// for each named setting.
//
// Every setter validates against the setting's declared domain before
// anything is encoded; out-of-domain values fail with a ValidationError
// and never reach the wire. Getters decode the device's reply into the
// value kind the setting uses (integer DPI, stage index, on/off flag,
// lift-off millimeters, debounce milliseconds, percentage, version
// string, polling-rate hint).
//
// There is no combined "info" state machine: ReadAll is simply the
// readable settings queried one after another through the session's
// serialized transaction queue, which is also what keeps a "DPI x stage"
// report consistent within one refresh.
package settings

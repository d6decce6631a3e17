// Package catalog is the static table of every command the Pulsar X3
// understands, keyed by setting.
//
// The device's command set is irregular: opcode length, argument offset
// and field width all vary per setting. Each entry therefore spells out
// its wire layout explicitly instead of deriving it from a generic
// scheme.
// Keying by an enumerated Setting keeps lookups type-checked and lets
// switches over settings be exhaustive.
//
// The catalog also owns the fixed value mappings: lift-off distance raw
// values to millimeters, and the polling-rate query table. The device's
// self-reported polling rate is known to be unreliable and is therefore
// exposed as a hint that may be unresolvable, never as an authoritative
// rate.
package catalog

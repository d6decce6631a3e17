// Package wire defines the binary packet format spoken by the Pulsar X3
// over HID feature reports.
//
// Every exchange is a fixed 64-byte packet in both directions:
//
//	┌──────┬───────────────────────────────┬────────────┐
//	│ 0x00 │ opcode + argument (bytes 1-61)│ checksum   │
//	│ rpt  │ zero-filled remainder         │ (62-63,LE) │
//	└──────┴───────────────────────────────┴────────────┘
//
// Byte 0 is the report ID and is always zero. The checksum is the sum of
// bytes 0..61 modulo 65536, stored little-endian at bytes 62-63.
//
// The protocol carries no message IDs and no retransmission; every packet
// is self-contained and correlation is purely positional (one request,
// one reply). Adding sequence numbers would require firmware cooperation
// that does not exist, so the format is preserved exactly as the device
// defines it.
//
// Command layouts are irregular: opcode length and argument placement
// vary per setting, so each command is described explicitly by a Command
// value rather than derived from a generic layout.
package wire

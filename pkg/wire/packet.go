package wire

import (
	"encoding/binary"
	"fmt"
)

// Packet layout constants.
const (
	// PacketSize is the fixed size of every command and response packet.
	PacketSize = 64

	// PayloadOffset is where the opcode starts (byte 0 is the report ID).
	PayloadOffset = 1

	// ChecksumOffset is where the little-endian 16-bit checksum is stored.
	ChecksumOffset = 62
)

// Packet is one fixed-size HID feature report, fully assembled including
// report ID and checksum.
type Packet [PacketSize]byte

// Checksum computes the 16-bit checksum over bytes 0..61.
func (p *Packet) Checksum() uint16 {
	var sum uint16
	for _, b := range p[:ChecksumOffset] {
		sum += uint16(b)
	}
	return sum
}

// StoredChecksum returns the checksum embedded at bytes 62-63.
func (p *Packet) StoredChecksum() uint16 {
	return binary.LittleEndian.Uint16(p[ChecksumOffset:])
}

// Seal recomputes the checksum over the current payload and writes it
// into bytes 62-63. Call after all payload bytes are set.
func (p *Packet) Seal() {
	binary.LittleEndian.PutUint16(p[ChecksumOffset:], p.Checksum())
}

// Verify reports whether the stored checksum matches the payload.
func (p *Packet) Verify() bool {
	return p.StoredChecksum() == p.Checksum()
}

// ParsePacket validates a raw transfer buffer and converts it to a Packet.
// The device always answers with exactly PacketSize bytes; anything else
// indicates a protocol mismatch or a firmware anomaly.
func ParsePacket(data []byte) (Packet, error) {
	var p Packet
	if len(data) != PacketSize {
		return p, &DecodingError{Reason: fmt.Sprintf("response is %d bytes, want %d", len(data), PacketSize)}
	}
	copy(p[:], data)
	return p, nil
}

// EncodingError reports an argument that cannot be represented in a
// command's declared layout. It is a programming or validation failure;
// nothing reaches the wire when it is returned.
type EncodingError struct {
	Command string
	Arg     uint16
	Reason  string
}

func (e *EncodingError) Error() string {
	if e.Command == "" {
		return fmt.Sprintf("wire: cannot encode argument %d: %s", e.Arg, e.Reason)
	}
	return fmt.Sprintf("wire: %s: cannot encode argument %d: %s", e.Command, e.Arg, e.Reason)
}

// DecodingError reports a malformed response packet or an attempt to
// decode a response with the wrong shape for the command.
type DecodingError struct {
	Command string
	Reason  string
}

func (e *DecodingError) Error() string {
	if e.Command == "" {
		return fmt.Sprintf("wire: cannot decode response: %s", e.Reason)
	}
	return fmt.Sprintf("wire: %s: cannot decode response: %s", e.Command, e.Reason)
}

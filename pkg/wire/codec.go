package wire

import (
	"encoding/binary"
	"fmt"
)

// Encode assembles a sealed packet for cmd. The argument is interpreted
// per cmd.ArgKind and ignored for ArgNone commands.
//
// Callers are expected to validate the argument against the setting's
// domain before encoding; Encode only re-asserts that the value fits the
// declared field width as a last-resort guard.
func Encode(cmd Command, arg uint16) (Packet, error) {
	var p Packet
	p[0] = 0x00 // report ID
	copy(p[PayloadOffset:], cmd.Opcode)

	switch cmd.ArgKind {
	case ArgNone:
		// query or fixed command, nothing to place
	case ArgByte:
		if arg > 0xFF {
			return Packet{}, &EncodingError{Command: cmd.Name, Arg: arg, Reason: "does not fit in one byte"}
		}
		p[cmd.ArgOffset] = byte(arg)
	case ArgWordPair:
		binary.LittleEndian.PutUint16(p[cmd.ArgOffset:], arg)
		binary.LittleEndian.PutUint16(p[cmd.ArgOffset+2:], arg)
	default:
		return Packet{}, &EncodingError{Command: cmd.Name, Arg: arg, Reason: fmt.Sprintf("unknown argument kind %d", cmd.ArgKind)}
	}

	p.Seal()
	return p, nil
}

// DecodeByte reads a RespByte response value.
func DecodeByte(cmd Command, p Packet) (byte, error) {
	if cmd.RespKind != RespByte {
		return 0, &DecodingError{Command: cmd.Name, Reason: fmt.Sprintf("response kind is %s, not BYTE", cmd.RespKind)}
	}
	return p[cmd.RespOffset], nil
}

// DecodeBool reads a RespBool response value. Only the value 1 means
// enabled; the firmware reports 0 for disabled.
func DecodeBool(cmd Command, p Packet) (bool, error) {
	if cmd.RespKind != RespBool {
		return false, &DecodingError{Command: cmd.Name, Reason: fmt.Sprintf("response kind is %s, not BOOL", cmd.RespKind)}
	}
	return p[cmd.RespOffset] == 1, nil
}

// DecodeWordPair reads a RespWordPair response (two little-endian 16-bit
// values, e.g. DPI x and y).
func DecodeWordPair(cmd Command, p Packet) (first, second uint16, err error) {
	if cmd.RespKind != RespWordPair {
		return 0, 0, &DecodingError{Command: cmd.Name, Reason: fmt.Sprintf("response kind is %s, not WORD_PAIR", cmd.RespKind)}
	}
	first = binary.LittleEndian.Uint16(p[cmd.RespOffset:])
	second = binary.LittleEndian.Uint16(p[cmd.RespOffset+2:])
	return first, second, nil
}

// DecodeVersion reads a RespVersion response and renders it the way the
// vendor software displays it: "00.00.<major>.<minor>" with hex pairs.
func DecodeVersion(cmd Command, p Packet) (string, error) {
	if cmd.RespKind != RespVersion {
		return "", &DecodingError{Command: cmd.Name, Reason: fmt.Sprintf("response kind is %s, not VERSION", cmd.RespKind)}
	}
	minor := p[cmd.RespOffset]
	major := p[cmd.RespOffset+1]
	return fmt.Sprintf("00.00.%02x.%02x", major, minor), nil
}

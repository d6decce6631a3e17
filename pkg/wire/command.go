package wire

// ArgKind describes how a command's argument is laid out in the packet.
type ArgKind uint8

const (
	// ArgNone marks a command that takes no argument.
	ArgNone ArgKind = 0

	// ArgByte is a single byte at ArgOffset.
	ArgByte ArgKind = 1

	// ArgWordPair is two identical little-endian 16-bit fields, at
	// ArgOffset and ArgOffset+2. Used for DPI, where x and y are always
	// written with the same value.
	ArgWordPair ArgKind = 2
)

// String returns the argument kind name.
func (k ArgKind) String() string {
	switch k {
	case ArgNone:
		return "NONE"
	case ArgByte:
		return "BYTE"
	case ArgWordPair:
		return "WORD_PAIR"
	default:
		return "UNKNOWN"
	}
}

// RespKind describes how a query response is decoded.
type RespKind uint8

const (
	// RespNone marks a command with no decodable response (setters).
	RespNone RespKind = 0

	// RespByte is a single raw byte at RespOffset.
	RespByte RespKind = 1

	// RespBool is a byte at RespOffset that is 1 for enabled.
	RespBool RespKind = 2

	// RespWordPair is two little-endian 16-bit values at RespOffset and
	// RespOffset+2 (DPI x and y).
	RespWordPair RespKind = 3

	// RespVersion is a minor byte at RespOffset and a major byte at
	// RespOffset+1, rendered as a hex-pair version string.
	RespVersion RespKind = 4
)

// String returns the response kind name.
func (k RespKind) String() string {
	switch k {
	case RespNone:
		return "NONE"
	case RespByte:
		return "BYTE"
	case RespBool:
		return "BOOL"
	case RespWordPair:
		return "WORD_PAIR"
	case RespVersion:
		return "VERSION"
	default:
		return "UNKNOWN"
	}
}

// Command fully fixes the wire layout of one device command: the opcode
// bytes, where its argument goes, and how its response is read back.
// Offsets are absolute packet offsets (report ID included), matching the
// capture notation used throughout this package.
type Command struct {
	// Name identifies the command in errors and trace logs.
	Name string

	// Opcode is written starting at PayloadOffset. 3-7 bytes.
	Opcode []byte

	// ArgOffset is the absolute offset of the argument, if any.
	ArgOffset int
	ArgKind   ArgKind

	// RespOffset is the absolute offset of the response value, if any.
	RespOffset int
	RespKind   RespKind
}

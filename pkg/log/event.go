package log

import "time"

// Event is one trace record captured during a device session.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// SessionID uniquely identifies the device session (UUID).
	SessionID string `cbor:"2,keyasint"`

	// Direction indicates packet flow relative to the host.
	Direction Direction `cbor:"3,keyasint"`

	// Category classifies the event type.
	Category Category `cbor:"4,keyasint"`

	// Mode is the connection mode ("wired"/"wireless"), when known.
	Mode string `cbor:"5,keyasint,omitempty"`

	// Type-specific payload (exactly one is set).
	Packet *PacketEvent      `cbor:"6,keyasint,omitempty"`
	State  *StateChangeEvent `cbor:"7,keyasint,omitempty"`
	Error  *ErrorEventData   `cbor:"8,keyasint,omitempty"`
}

// Direction indicates the direction of packet flow.
type Direction uint8

const (
	// DirectionIn is a packet read back from the device.
	DirectionIn Direction = 0
	// DirectionOut is a packet sent to the device.
	DirectionOut Direction = 1
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirectionIn:
		return "IN"
	case DirectionOut:
		return "OUT"
	default:
		return "UNKNOWN"
	}
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryPacket indicates a feature report exchange.
	CategoryPacket Category = 0
	// CategoryState indicates a session lifecycle change.
	CategoryState Category = 1
	// CategoryError indicates an error, fatal or swallowed.
	CategoryError Category = 2
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryPacket:
		return "PACKET"
	case CategoryState:
		return "STATE"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// PacketEvent captures one raw feature report, byte-exact.
type PacketEvent struct {
	// Command names the catalog command that produced the packet, when
	// the caller knows it. Empty for raw replies.
	Command string `cbor:"1,keyasint,omitempty"`

	// Data is the full packet, checksum included.
	Data []byte `cbor:"2,keyasint"`
}

// StateChangeEvent captures session lifecycle transitions
// (connect, disconnect, driver detach/reattach).
type StateChangeEvent struct {
	// OldState is the previous state (may be empty).
	OldState string `cbor:"1,keyasint,omitempty"`

	// NewState is the new state.
	NewState string `cbor:"2,keyasint"`

	// Reason for the change (if available).
	Reason string `cbor:"3,keyasint,omitempty"`
}

// ErrorEventData captures errors, including the non-fatal ones that are
// deliberately swallowed (driver reattach failures).
type ErrorEventData struct {
	// Message is the error message.
	Message string `cbor:"1,keyasint"`

	// Context describes what operation was being performed.
	Context string `cbor:"2,keyasint,omitempty"`

	// Fatal indicates whether the error aborted the operation.
	Fatal bool `cbor:"3,keyasint,omitempty"`
}

package catalog

import "github.com/pulsar-tools/pulsarctl/pkg/wire"

// Domain limits. Values outside these never reach the wire.
const (
	// DPIMin and DPIMax bound the sensor resolution.
	DPIMin = 50
	DPIMax = 26000

	// StageMin and StageMax bound the DPI preset index.
	StageMin = 1
	StageMax = 6

	// DebounceMaxMS bounds the button debounce time. The firmware stores
	// it in a single byte; the vendor software offers at most 30 ms.
	DebounceMaxMS = 30
)

// Entry holds the wire layout for one setting. Query is nil for
// write-only settings, Set is nil for read-only ones.
type Entry struct {
	Query *wire.Command
	Set   *wire.Command
}

// Readable reports whether the setting can be queried.
func (e Entry) Readable() bool { return e.Query != nil }

// Writable reports whether the setting can be changed.
func (e Entry) Writable() bool { return e.Set != nil }

// Opcode bytes below are shown as sent, excluding the leading report-ID
// byte; offsets are absolute packet offsets including it.
var entries = map[Setting]Entry{
	SettingFirmwareVersion: {
		Query: &wire.Command{
			Name:       "query-firmware-version",
			Opcode:     []byte{0x01, 0x87, 0x04},
			RespOffset: 6, // minor at 6, major at 7
			RespKind:   wire.RespVersion,
		},
	},
	SettingDPI: {
		Query: &wire.Command{
			Name:       "query-dpi",
			Opcode:     []byte{0x05, 0x82, 0x05},
			RespOffset: 7, // x at 7-8, y at 9-10
			RespKind:   wire.RespWordPair,
		},
		Set: &wire.Command{
			Name:      "set-dpi",
			Opcode:    []byte{0x05, 0x02, 0x05, 0x00, 0x00, 0x01},
			ArgOffset: 7, // x at 7, y at 9, always equal
			ArgKind:   wire.ArgWordPair,
		},
	},
	SettingDPIStage: {
		Query: &wire.Command{
			Name:       "query-stage",
			Opcode:     []byte{0x05, 0x81, 0x02},
			RespOffset: 7,
			RespKind:   wire.RespByte,
		},
		Set: &wire.Command{
			Name:      "set-stage",
			Opcode:    []byte{0x05, 0x01, 0x02, 0x00, 0x00, 0x01},
			ArgOffset: 7,
			ArgKind:   wire.ArgByte,
		},
	},
	SettingMotionSync: {
		Query: &wire.Command{
			Name:       "query-motion-sync",
			Opcode:     []byte{0x07, 0x85, 0x02},
			RespOffset: 7,
			RespKind:   wire.RespBool,
		},
		Set: &wire.Command{
			Name:      "set-motion-sync",
			Opcode:    []byte{0x07, 0x05, 0x02, 0x00, 0x00, 0x01},
			ArgOffset: 7,
			ArgKind:   wire.ArgByte,
		},
	},
	SettingLiftOffDistance: {
		Query: &wire.Command{
			Name:       "query-lod",
			Opcode:     []byte{0x07, 0x82, 0x03},
			RespOffset: 8, // stored as mm x 10
			RespKind:   wire.RespByte,
		},
		Set: &wire.Command{
			Name:      "set-lod",
			Opcode:    []byte{0x07, 0x02, 0x03, 0x00, 0x00, 0x01, 0x02},
			ArgOffset: 8, // mm x 10
			ArgKind:   wire.ArgByte,
		},
	},
	SettingAngleSnapping: {
		Query: &wire.Command{
			Name:       "query-angle-snap",
			Opcode:     []byte{0x07, 0x84, 0x02},
			RespOffset: 7,
			RespKind:   wire.RespBool,
		},
		Set: &wire.Command{
			Name:      "set-angle-snap",
			Opcode:    []byte{0x07, 0x04, 0x02, 0x00, 0x00, 0x01},
			ArgOffset: 7,
			ArgKind:   wire.ArgByte,
		},
	},
	SettingRippleControl: {
		Query: &wire.Command{
			Name:       "query-ripple-control",
			Opcode:     []byte{0x07, 0x83, 0x02},
			RespOffset: 7,
			RespKind:   wire.RespBool,
		},
		Set: &wire.Command{
			Name:      "set-ripple-control",
			Opcode:    []byte{0x07, 0x03, 0x02, 0x00, 0x00, 0x01},
			ArgOffset: 7,
			ArgKind:   wire.ArgByte,
		},
	},
	SettingDebounce: {
		Query: &wire.Command{
			Name:       "query-debounce",
			Opcode:     []byte{0x04, 0x83, 0x03},
			RespOffset: 7,
			RespKind:   wire.RespByte,
		},
		Set: &wire.Command{
			Name:      "set-debounce",
			Opcode:    []byte{0x04, 0x03, 0x03, 0x00, 0x00, 0x01},
			ArgOffset: 7,
			ArgKind:   wire.ArgByte,
		},
	},
	SettingBattery: {
		Query: &wire.Command{
			Name:       "query-battery",
			Opcode:     []byte{0x08, 0x81, 0x01},
			RespOffset: 6,
			RespKind:   wire.RespByte,
		},
	},
	SettingPollingRate: {
		Query: &wire.Command{
			Name:       "query-polling-rate",
			Opcode:     []byte{0x08, 0x85, 0x03},
			RespOffset: 7,
			RespKind:   wire.RespByte,
		},
	},
}

// Lookup returns the catalog entry for a setting.
func Lookup(s Setting) (Entry, bool) {
	e, ok := entries[s]
	return e, ok
}

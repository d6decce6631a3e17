// Package emulator is an in-memory Pulsar X3 used by tests. It speaks
// the real packet format: it validates checksums, dispatches on opcode
// bytes, mutates its state for set commands and answers queries at the
// documented response offsets.
package emulator

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/pulsar-tools/pulsarctl/pkg/catalog"
	"github.com/pulsar-tools/pulsarctl/pkg/wire"
)

// Device emulates the mouse behind the port contract. The zero value is
// not usable; create with New.
type Device struct {
	mu sync.Mutex

	// Mouse state, exported so tests can seed and inspect it directly.
	DPIX, DPIY uint16
	Stage      byte
	MotionSync bool
	AngleSnap  bool
	Ripple     bool
	LODRaw     byte
	DebounceMS byte
	Battery    byte
	PollingRaw byte
	FWMinor    byte
	FWMajor    byte

	// Transactions counts accepted set reports. Tests use it to prove
	// that rejected values never reach the wire.
	Transactions int

	// Fault injection.
	SetReportErr error
	GetReportErr error
	CloseErr     error
	ShortReply   int // when positive, GetReport returns this many bytes

	pending wire.Packet
	closed  bool
}

// New returns an emulated mouse with plausible factory state.
func New() *Device {
	return &Device{
		DPIX:       800,
		DPIY:       800,
		Stage:      2,
		LODRaw:     10,
		DebounceMS: 3,
		Battery:    85,
		PollingRaw: 60,
		FWMinor:    0x2a,
		FWMajor:    0x01,
	}
}

// SetReport accepts one command packet, updates state, and prepares the
// reply for the next GetReport.
func (d *Device) SetReport(data []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.SetReportErr != nil {
		return d.SetReportErr
	}
	if d.closed {
		return fmt.Errorf("emulator: device closed")
	}

	p, err := wire.ParsePacket(data)
	if err != nil {
		return fmt.Errorf("emulator: %w", err)
	}
	if p[0] != 0x00 {
		return fmt.Errorf("emulator: report ID %#02x, want 00", p[0])
	}
	if !p.Verify() {
		return fmt.Errorf("emulator: checksum %#04x does not match payload", p.StoredChecksum())
	}

	d.Transactions++
	d.pending = d.dispatch(p)
	return nil
}

// GetReport returns the reply prepared by the last SetReport.
func (d *Device) GetReport(buf []byte) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.GetReportErr != nil {
		return 0, d.GetReportErr
	}
	if d.closed {
		return 0, fmt.Errorf("emulator: device closed")
	}

	n := copy(buf, d.pending[:])
	if d.ShortReply > 0 && d.ShortReply < n {
		n = d.ShortReply
	}
	return n, nil
}

// Close marks the device closed. Further transfers fail.
func (d *Device) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	return d.CloseErr
}

// dispatch matches the packet opcode against the catalog and produces
// the device's reply. Unknown opcodes get an empty (zero) reply, which
// matches the real firmware's silence on garbage.
func (d *Device) dispatch(p wire.Packet) wire.Packet {
	for _, s := range catalog.Settings() {
		entry, _ := catalog.Lookup(s)
		if entry.Set != nil && opcodeMatches(p, entry.Set.Opcode) {
			d.apply(s, entry.Set, p)
			return echo(p)
		}
		if entry.Query != nil && opcodeMatches(p, entry.Query.Opcode) {
			return d.answer(s, entry.Query)
		}
	}
	var empty wire.Packet
	empty.Seal()
	return empty
}

func opcodeMatches(p wire.Packet, opcode []byte) bool {
	return bytes.Equal(p[wire.PayloadOffset:wire.PayloadOffset+len(opcode)], opcode)
}

// echo acknowledges a set command the way the firmware does: the request
// comes back with its checksum intact.
func echo(p wire.Packet) wire.Packet {
	return p
}

func (d *Device) apply(s catalog.Setting, cmd *wire.Command, p wire.Packet) {
	switch s {
	case catalog.SettingDPI:
		d.DPIX = binary.LittleEndian.Uint16(p[cmd.ArgOffset:])
		d.DPIY = binary.LittleEndian.Uint16(p[cmd.ArgOffset+2:])
	case catalog.SettingDPIStage:
		d.Stage = p[cmd.ArgOffset]
	case catalog.SettingMotionSync:
		d.MotionSync = p[cmd.ArgOffset] == 1
	case catalog.SettingLiftOffDistance:
		d.LODRaw = p[cmd.ArgOffset]
	case catalog.SettingAngleSnapping:
		d.AngleSnap = p[cmd.ArgOffset] == 1
	case catalog.SettingRippleControl:
		d.Ripple = p[cmd.ArgOffset] == 1
	case catalog.SettingDebounce:
		d.DebounceMS = p[cmd.ArgOffset]
	}
}

func (d *Device) answer(s catalog.Setting, cmd *wire.Command) wire.Packet {
	var p wire.Packet
	copy(p[wire.PayloadOffset:], cmd.Opcode)

	switch s {
	case catalog.SettingFirmwareVersion:
		p[cmd.RespOffset] = d.FWMinor
		p[cmd.RespOffset+1] = d.FWMajor
	case catalog.SettingDPI:
		binary.LittleEndian.PutUint16(p[cmd.RespOffset:], d.DPIX)
		binary.LittleEndian.PutUint16(p[cmd.RespOffset+2:], d.DPIY)
	case catalog.SettingDPIStage:
		p[cmd.RespOffset] = d.Stage
	case catalog.SettingMotionSync:
		p[cmd.RespOffset] = boolByte(d.MotionSync)
	case catalog.SettingLiftOffDistance:
		p[cmd.RespOffset] = d.LODRaw
	case catalog.SettingAngleSnapping:
		p[cmd.RespOffset] = boolByte(d.AngleSnap)
	case catalog.SettingRippleControl:
		p[cmd.RespOffset] = boolByte(d.Ripple)
	case catalog.SettingDebounce:
		p[cmd.RespOffset] = d.DebounceMS
	case catalog.SettingBattery:
		p[cmd.RespOffset] = d.Battery
	case catalog.SettingPollingRate:
		p[cmd.RespOffset] = d.PollingRaw
	}

	p.Seal()
	return p
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}

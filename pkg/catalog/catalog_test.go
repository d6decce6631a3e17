package catalog

import (
	"bytes"
	"testing"

	"github.com/pulsar-tools/pulsarctl/pkg/wire"
)

func TestEveryCatalogSettingResolves(t *testing.T) {
	for _, s := range Settings() {
		e, ok := Lookup(s)
		if !ok {
			t.Errorf("Lookup(%s) missing", s)
			continue
		}
		if !e.Readable() && !e.Writable() {
			t.Errorf("%s: entry is neither readable nor writable", s)
		}
	}
}

func TestCommandLayouts(t *testing.T) {
	for _, s := range Settings() {
		e, _ := Lookup(s)
		for _, cmd := range []*wire.Command{e.Query, e.Set} {
			if cmd == nil {
				continue
			}
			if n := len(cmd.Opcode); n < 2 || n > 7 {
				t.Errorf("%s: opcode length %d out of range", cmd.Name, n)
			}
			if cmd.ArgKind != wire.ArgNone && cmd.ArgOffset <= 0 {
				t.Errorf("%s: argument kind %s without offset", cmd.Name, cmd.ArgKind)
			}
			if cmd.RespKind != wire.RespNone && cmd.RespOffset <= 0 {
				t.Errorf("%s: response kind %s without offset", cmd.Name, cmd.RespKind)
			}
		}
	}
}

func TestReadOnlySettings(t *testing.T) {
	for _, s := range []Setting{SettingFirmwareVersion, SettingBattery, SettingPollingRate} {
		e, _ := Lookup(s)
		if e.Writable() {
			t.Errorf("%s should be read-only", s)
		}
	}
}

func TestQueryOpcodes(t *testing.T) {
	tests := []struct {
		setting Setting
		opcode  []byte
	}{
		{SettingFirmwareVersion, []byte{0x01, 0x87, 0x04}},
		{SettingDPI, []byte{0x05, 0x82, 0x05}},
		{SettingDPIStage, []byte{0x05, 0x81, 0x02}},
		{SettingMotionSync, []byte{0x07, 0x85, 0x02}},
		{SettingLiftOffDistance, []byte{0x07, 0x82, 0x03}},
		{SettingAngleSnapping, []byte{0x07, 0x84, 0x02}},
		{SettingRippleControl, []byte{0x07, 0x83, 0x02}},
		{SettingDebounce, []byte{0x04, 0x83, 0x03}},
		{SettingBattery, []byte{0x08, 0x81, 0x01}},
		{SettingPollingRate, []byte{0x08, 0x85, 0x03}},
	}
	for _, tt := range tests {
		e, _ := Lookup(tt.setting)
		if !bytes.Equal(e.Query.Opcode, tt.opcode) {
			t.Errorf("%s query opcode = % 02x, want % 02x", tt.setting, e.Query.Opcode, tt.opcode)
		}
	}
}

func TestParseSetting(t *testing.T) {
	s, err := ParseSetting("motion-sync")
	if err != nil {
		t.Fatalf("ParseSetting failed: %v", err)
	}
	if s != SettingMotionSync {
		t.Errorf("ParseSetting = %v, want %v", s, SettingMotionSync)
	}
	if _, err := ParseSetting("laser-power"); err == nil {
		t.Error("ParseSetting accepted an unknown name")
	}
}

func TestLiftOffMillimeters(t *testing.T) {
	tests := []struct {
		raw  byte
		want float64
	}{
		{7, 0.7},
		{10, 1.0},
		{20, 2.0},
		{15, 1.5}, // unmapped, fallback scaling
	}
	for _, tt := range tests {
		if got := LiftOffMillimeters(tt.raw); got != tt.want {
			t.Errorf("LiftOffMillimeters(%d) = %v, want %v", tt.raw, got, tt.want)
		}
	}

	for _, raw := range []byte{7, 10, 20} {
		if !ValidLiftOffRaw(raw) {
			t.Errorf("ValidLiftOffRaw(%d) = false", raw)
		}
	}
	if ValidLiftOffRaw(15) {
		t.Error("ValidLiftOffRaw(15) = true")
	}
}

func TestLiftOffRawFromMillimeters(t *testing.T) {
	tests := []struct {
		mm   float64
		want byte
		ok   bool
	}{
		{0.7, 7, true},
		{1, 10, true},
		{2, 20, true},
		{1.5, 0, false},
		{0, 0, false},
		// Values whose x10 scaling exceeds a byte must fail, not wrap
		// onto an accepted raw value.
		{256.7, 0, false},
		{257, 0, false},
		{258, 0, false},
		{-1, 0, false},
	}
	for _, tt := range tests {
		got, ok := LiftOffRawFromMillimeters(tt.mm)
		if ok != tt.ok {
			t.Errorf("LiftOffRawFromMillimeters(%v) ok = %v, want %v", tt.mm, ok, tt.ok)
			continue
		}
		if ok && got != tt.want {
			t.Errorf("LiftOffRawFromMillimeters(%v) = %d, want %d", tt.mm, got, tt.want)
		}
	}
}

func TestPollingRateHz(t *testing.T) {
	tests := []struct {
		raw  byte
		hz   int
		ok   bool
	}{
		{240, 125, true},
		{120, 250, true},
		{60, 500, true},
		{30, 1000, true},
		{15, 2000, true},
		{8, 4000, true},
		{4, 8000, true},
		{99, 0, false}, // unmapped must stay unresolved
	}
	for _, tt := range tests {
		hz, ok := PollingRateHz(tt.raw)
		if ok != tt.ok || (ok && hz != tt.hz) {
			t.Errorf("PollingRateHz(%d) = (%d, %v), want (%d, %v)", tt.raw, hz, ok, tt.hz, tt.ok)
		}
	}
}

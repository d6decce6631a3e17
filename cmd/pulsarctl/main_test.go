package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/gousb"

	"github.com/pulsar-tools/pulsarctl/internal/emulator"
	"github.com/pulsar-tools/pulsarctl/pkg/catalog"
	tracelog "github.com/pulsar-tools/pulsarctl/pkg/log"
	"github.com/pulsar-tools/pulsarctl/pkg/session"
	"github.com/pulsar-tools/pulsarctl/pkg/settings"
)

func TestParseOnOff(t *testing.T) {
	tests := []struct {
		in      string
		want    bool
		wantErr bool
	}{
		{"on", true, false},
		{"ON", true, false},
		{"true", true, false},
		{"1", true, false},
		{"off", false, false},
		{"false", false, false},
		{"0", false, false},
		{"yes", false, true},
		{"", false, true},
	}
	for _, tt := range tests {
		got, err := parseOnOff(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseOnOff(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("parseOnOff(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseHexID(t *testing.T) {
	tests := []struct {
		in      string
		want    uint16
		wantErr bool
	}{
		{"0x3710", 0x3710, false},
		{"3710", 0x3710, false},
		{"0X5403", 0x5403, false},
		{"", 0, true},
		{"zz", 0, true},
		{"0x10000", 0, true},
	}
	for _, tt := range tests {
		got, err := parseHexID(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseHexID(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("parseHexID(%q) = %#04x, want %#04x", tt.in, got, tt.want)
		}
	}
}

func TestParseSettingValue(t *testing.T) {
	v, err := parseSettingValue(catalog.SettingMotionSync, "on")
	if err != nil || !v.Bool {
		t.Errorf("motion-sync on = (%v, %v), want Bool true", v, err)
	}

	v, err = parseSettingValue(catalog.SettingLiftOffDistance, "0.7")
	if err != nil || v.Float != 0.7 {
		t.Errorf("lod 0.7 = (%v, %v), want Float 0.7", v, err)
	}

	v, err = parseSettingValue(catalog.SettingDPI, "1600")
	if err != nil || v.Int != 1600 {
		t.Errorf("dpi 1600 = (%v, %v), want Int 1600", v, err)
	}

	if _, err := parseSettingValue(catalog.SettingDPIStage, "three"); err == nil {
		t.Error("stage \"three\" parsed, want error")
	}
}

// Flag presence, not value, decides whether a write happens: -debounce 0
// is a real write, an absent flag is not.
func TestApplyWritesHonorsFlagPresence(t *testing.T) {
	em := emulator.New()
	s := session.New(em, session.Config{SettleDelay: time.Millisecond})
	defer s.Close()
	reg := settings.NewRegistry(s)
	ctx := context.Background()

	opts.Debounce = 0
	wrote, err := applyWrites(ctx, reg, map[string]bool{"debounce": true})
	if err != nil {
		t.Fatalf("applyWrites failed: %v", err)
	}
	if !wrote {
		t.Error("provided -debounce 0 did not write")
	}
	if em.DebounceMS != 0 {
		t.Errorf("DebounceMS = %d, want 0", em.DebounceMS)
	}
	if em.Transactions != 1 {
		t.Errorf("Transactions = %d, want 1", em.Transactions)
	}

	wrote, err = applyWrites(ctx, reg, map[string]bool{})
	if err != nil {
		t.Fatalf("applyWrites failed: %v", err)
	}
	if wrote || em.Transactions != 1 {
		t.Errorf("absent flags wrote anyway (wrote=%v, transactions=%d)", wrote, em.Transactions)
	}
}

// Truncated or hand-edited captures can carry events whose category
// names a payload that is not present; dumping them must not panic.
func TestDumpTraceMalformedEvents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x3.trace")
	fl, err := tracelog.NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}
	fl.Log(tracelog.Event{Timestamp: time.Now(), SessionID: "s-1", Category: tracelog.CategoryPacket})
	fl.Log(tracelog.Event{Timestamp: time.Now(), SessionID: "s-1", Category: tracelog.CategoryState})
	fl.Log(tracelog.Event{Timestamp: time.Now(), SessionID: "s-1", Category: tracelog.CategoryError})
	fl.Log(tracelog.Event{
		Timestamp: time.Now(),
		SessionID: "s-1",
		Category:  tracelog.CategoryPacket,
		Direction: tracelog.DirectionOut,
		Packet:    &tracelog.PacketEvent{Command: "query-battery", Data: []byte{0x00, 0x08, 0x81, 0x01}},
	})
	if err := fl.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	if err := dumpTrace(path); err != nil {
		t.Errorf("dumpTrace failed: %v", err)
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pulsarctl.yaml")
	content := `
usb:
  vendor_id: "0x3711"
  wireless_product: "0x5404"
  timeout_ms: 2500
settle_delay_ms: 80
trace_file: /tmp/x3.ptrace
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}

	uc, err := cfg.usbConfig()
	if err != nil {
		t.Fatalf("usbConfig failed: %v", err)
	}
	if uc.VendorID != gousb.ID(0x3711) {
		t.Errorf("VendorID = %v, want 0x3711", uc.VendorID)
	}
	if uc.WirelessProduct != gousb.ID(0x5404) {
		t.Errorf("WirelessProduct = %v, want 0x5404", uc.WirelessProduct)
	}
	// Wired product keeps its stock default.
	if uc.WiredProduct != gousb.ID(0x3410) {
		t.Errorf("WiredProduct = %v, want 0x3410", uc.WiredProduct)
	}
	if uc.Timeout != 2500*time.Millisecond {
		t.Errorf("Timeout = %v, want 2.5s", uc.Timeout)
	}
	if cfg.settleDelay() != 80*time.Millisecond {
		t.Errorf("settleDelay = %v, want 80ms", cfg.settleDelay())
	}
	if cfg.TraceFile != "/tmp/x3.ptrace" {
		t.Errorf("TraceFile = %q", cfg.TraceFile)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}
	uc, err := cfg.usbConfig()
	if err != nil {
		t.Fatalf("usbConfig failed: %v", err)
	}
	if uc.VendorID != gousb.ID(0x3710) || uc.WiredProduct != gousb.ID(0x3410) || uc.WirelessProduct != gousb.ID(0x5403) {
		t.Errorf("default IDs = %v/%v/%v", uc.VendorID, uc.WiredProduct, uc.WirelessProduct)
	}
	if cfg.settleDelay() != 0 {
		t.Errorf("settleDelay = %v, want 0 (session default)", cfg.settleDelay())
	}
}

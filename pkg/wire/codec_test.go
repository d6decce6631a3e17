package wire

import (
	"bytes"
	"testing"
)

var (
	setDPI = Command{
		Name:      "set-dpi",
		Opcode:    []byte{0x05, 0x02, 0x05, 0x00, 0x00, 0x01},
		ArgOffset: 7,
		ArgKind:   ArgWordPair,
	}
	setStage = Command{
		Name:      "set-stage",
		Opcode:    []byte{0x05, 0x01, 0x02, 0x00, 0x00, 0x01},
		ArgOffset: 7,
		ArgKind:   ArgByte,
	}
	queryDPI = Command{
		Name:       "query-dpi",
		Opcode:     []byte{0x05, 0x82, 0x05},
		RespOffset: 7,
		RespKind:   RespWordPair,
	}
	queryMotionSync = Command{
		Name:       "query-motion-sync",
		Opcode:     []byte{0x07, 0x85, 0x02},
		RespOffset: 7,
		RespKind:   RespBool,
	}
	queryVersion = Command{
		Name:       "query-version",
		Opcode:     []byte{0x01, 0x87, 0x04},
		RespOffset: 6,
		RespKind:   RespVersion,
	}
)

func TestEncodeDPI(t *testing.T) {
	p, err := Encode(setDPI, 800)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	// 800 = 0x0320, little-endian, identical at x and y.
	if p[7] != 0x20 || p[8] != 0x03 {
		t.Errorf("x field = %02x %02x, want 20 03", p[7], p[8])
	}
	if p[9] != 0x20 || p[10] != 0x03 {
		t.Errorf("y field = %02x %02x, want 20 03", p[9], p[10])
	}
	if p[0] != 0x00 {
		t.Errorf("report ID = %02x, want 00", p[0])
	}
	if !p.Verify() {
		t.Error("encoded packet has invalid checksum")
	}
}

func TestEncodeStage(t *testing.T) {
	p, err := Encode(setStage, 3)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	want := []byte{0x05, 0x01, 0x02, 0x00, 0x00, 0x01, 0x03}
	if !bytes.Equal(p[1:8], want) {
		t.Errorf("payload bytes 1-7 = % 02x, want % 02x", p[1:8], want)
	}
	if !p.Verify() {
		t.Error("encoded packet has invalid checksum")
	}
}

func TestEncodeZeroFillsRemainder(t *testing.T) {
	p, err := Encode(setStage, 6)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	for i := 8; i < ChecksumOffset; i++ {
		if p[i] != 0 {
			t.Fatalf("byte %d = %02x, want zero fill", i, p[i])
		}
	}
}

func TestEncodeWidthGuard(t *testing.T) {
	_, err := Encode(setStage, 0x100)
	if err == nil {
		t.Fatal("Encode accepted an argument wider than one byte")
	}
	if _, ok := err.(*EncodingError); !ok {
		t.Errorf("error type = %T, want *EncodingError", err)
	}
}

func TestDecodeWordPair(t *testing.T) {
	var p Packet
	p[7], p[8] = 0x20, 0x03 // x = 800
	p[9], p[10] = 0x40, 0x06 // y = 1600
	p.Seal()

	x, y, err := DecodeWordPair(queryDPI, p)
	if err != nil {
		t.Fatalf("DecodeWordPair failed: %v", err)
	}
	if x != 800 || y != 1600 {
		t.Errorf("got (%d, %d), want (800, 1600)", x, y)
	}
}

func TestDecodeBool(t *testing.T) {
	tests := []struct {
		raw  byte
		want bool
	}{
		{raw: 0, want: false},
		{raw: 1, want: true},
		{raw: 2, want: false}, // only 1 means enabled
	}
	for _, tt := range tests {
		var p Packet
		p[7] = tt.raw
		p.Seal()
		got, err := DecodeBool(queryMotionSync, p)
		if err != nil {
			t.Fatalf("DecodeBool(raw=%d) failed: %v", tt.raw, err)
		}
		if got != tt.want {
			t.Errorf("DecodeBool(raw=%d) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}

func TestDecodeVersion(t *testing.T) {
	var p Packet
	p[6] = 0x2a // minor
	p[7] = 0x01 // major
	p.Seal()

	got, err := DecodeVersion(queryVersion, p)
	if err != nil {
		t.Fatalf("DecodeVersion failed: %v", err)
	}
	if want := "00.00.01.2a"; got != want {
		t.Errorf("DecodeVersion = %q, want %q", got, want)
	}
}

func TestDecodeKindMismatch(t *testing.T) {
	var p Packet
	p.Seal()

	if _, err := DecodeByte(queryDPI, p); err == nil {
		t.Error("DecodeByte accepted a WORD_PAIR command")
	}
	if _, _, err := DecodeWordPair(queryMotionSync, p); err == nil {
		t.Error("DecodeWordPair accepted a BOOL command")
	}
	if _, err := DecodeBool(queryVersion, p); err == nil {
		t.Error("DecodeBool accepted a VERSION command")
	}
}

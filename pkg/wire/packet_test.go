package wire

import (
	"math/rand"
	"testing"
)

func TestChecksumInvariant(t *testing.T) {
	// For any fully assembled packet the stored checksum must equal the
	// sum of bytes 0..61 mod 65536.
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 100; i++ {
		var p Packet
		for j := PayloadOffset; j < ChecksumOffset; j++ {
			p[j] = byte(rng.Intn(256))
		}
		p.Seal()

		var sum uint16
		for _, b := range p[:ChecksumOffset] {
			sum += uint16(b)
		}
		if got := p.StoredChecksum(); got != sum {
			t.Fatalf("stored checksum = %#04x, want %#04x", got, sum)
		}
		if !p.Verify() {
			t.Fatalf("Verify() = false for sealed packet")
		}
	}
}

func TestChecksumMaxPayload(t *testing.T) {
	var p Packet
	for j := 0; j < ChecksumOffset; j++ {
		p[j] = 0xFF
	}
	p.Seal()

	// 62 * 0xFF is the largest possible sum; it fits in 16 bits.
	want := uint16(ChecksumOffset * 0xFF)
	if got := p.StoredChecksum(); got != want {
		t.Errorf("StoredChecksum() = %#04x, want %#04x", got, want)
	}
}

func TestVerifyDetectsCorruption(t *testing.T) {
	var p Packet
	p[PayloadOffset] = 0x05
	p.Seal()
	if !p.Verify() {
		t.Fatal("Verify() = false for intact packet")
	}
	p[7] ^= 0x01
	if p.Verify() {
		t.Error("Verify() = true after payload corruption")
	}
}

func TestParsePacket(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		wantErr bool
	}{
		{name: "exact size", size: PacketSize, wantErr: false},
		{name: "short", size: 32, wantErr: true},
		{name: "empty", size: 0, wantErr: true},
		{name: "long", size: 65, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePacket(make([]byte, tt.size))
			if tt.wantErr && err == nil {
				t.Fatalf("ParsePacket(%d bytes) succeeded, want DecodingError", tt.size)
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("ParsePacket(%d bytes) failed: %v", tt.size, err)
			}
			if tt.wantErr {
				if _, ok := err.(*DecodingError); !ok {
					t.Errorf("error type = %T, want *DecodingError", err)
				}
			}
		})
	}
}

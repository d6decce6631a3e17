package log

import (
	"io"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func packetEvent(session string, dir Direction, cmd string) Event {
	return Event{
		Timestamp: time.Now(),
		SessionID: session,
		Direction: dir,
		Category:  CategoryPacket,
		Mode:      "wireless",
		Packet: &PacketEvent{
			Command: cmd,
			Data:    []byte{0x00, 0x05, 0x81, 0x02},
		},
	}
}

func TestEncodeDecodeEvent(t *testing.T) {
	orig := packetEvent("s-1", DirectionOut, "query-stage")

	data, err := EncodeEvent(orig)
	if err != nil {
		t.Fatalf("EncodeEvent failed: %v", err)
	}
	got, err := DecodeEvent(data)
	if err != nil {
		t.Fatalf("DecodeEvent failed: %v", err)
	}

	if got.SessionID != orig.SessionID {
		t.Errorf("SessionID = %q, want %q", got.SessionID, orig.SessionID)
	}
	if got.Direction != orig.Direction || got.Category != orig.Category {
		t.Errorf("direction/category = %v/%v, want %v/%v",
			got.Direction, got.Category, orig.Direction, orig.Category)
	}
	if got.Packet == nil || got.Packet.Command != "query-stage" {
		t.Errorf("packet payload not preserved: %+v", got.Packet)
	}
}

func TestFileLoggerRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x3.trace")

	fl, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}
	fl.Log(packetEvent("s-1", DirectionOut, "set-dpi"))
	fl.Log(packetEvent("s-1", DirectionIn, ""))
	fl.Log(Event{
		Timestamp: time.Now(),
		SessionID: "s-1",
		Category:  CategoryError,
		Error:     &ErrorEventData{Message: "reattach failed", Context: "disconnect"},
	})
	if err := fl.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	// Log after Close is a no-op
	fl.Log(packetEvent("s-1", DirectionOut, "ignored"))

	r, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer r.Close()

	events, err := r.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("got %d events, want 3", len(events))
	}
	if events[0].Packet == nil || events[0].Packet.Command != "set-dpi" {
		t.Errorf("first event = %+v, want set-dpi packet", events[0])
	}
	if events[2].Error == nil || events[2].Error.Message != "reattach failed" {
		t.Errorf("third event = %+v, want reattach error", events[2])
	}
}

func TestReaderFilter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x3.trace")

	fl, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}
	fl.Log(packetEvent("s-1", DirectionOut, "set-dpi"))
	fl.Log(packetEvent("s-1", DirectionIn, ""))
	fl.Log(packetEvent("s-2", DirectionOut, "query-battery"))
	fl.Close()

	r, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer r.Close()

	out := DirectionOut
	r.SetFilter(&Filter{SessionID: "s-1", Direction: &out})

	first, err := r.Next()
	if err != nil {
		t.Fatalf("Next failed: %v", err)
	}
	if first.Packet.Command != "set-dpi" {
		t.Errorf("filtered event = %q, want set-dpi", first.Packet.Command)
	}
	if _, err := r.Next(); err != io.EOF {
		t.Errorf("Next after last match = %v, want io.EOF", err)
	}
}

func TestMultiLoggerFanOut(t *testing.T) {
	var mu sync.Mutex
	var a, b int

	counter := func(n *int) Logger {
		return loggerFunc(func(Event) {
			mu.Lock()
			*n++
			mu.Unlock()
		})
	}

	ml := NewMultiLogger(counter(&a), counter(&b), NoopLogger{})
	ml.Log(packetEvent("s-1", DirectionOut, "set-stage"))
	ml.Log(packetEvent("s-1", DirectionIn, ""))

	if a != 2 || b != 2 {
		t.Errorf("fan-out counts = (%d, %d), want (2, 2)", a, b)
	}
}

// loggerFunc adapts a function to the Logger interface for tests.
type loggerFunc func(Event)

func (f loggerFunc) Log(e Event) { f(e) }

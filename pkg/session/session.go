package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pulsar-tools/pulsarctl/pkg/log"
	"github.com/pulsar-tools/pulsarctl/pkg/usb"
	"github.com/pulsar-tools/pulsarctl/pkg/wire"
)

// DefaultSettleDelay is the pause between sending a command and reading
// its reply. Required by the device firmware.
const DefaultSettleDelay = 50 * time.Millisecond

// ErrSessionClosed indicates a transaction was attempted on a closed session.
var ErrSessionClosed = errors.New("session: closed")

// TransportError wraps a control-transfer failure or timeout. The
// transaction is lost but the session stays open for the next call.
type TransportError struct {
	Op  string // "send" or "receive"
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("session: %s failed: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Port carries raw feature reports to and from the device. Implemented
// by usb.Device and by the test emulator.
type Port interface {
	SetReport(data []byte) error
	GetReport(buf []byte) (int, error)
	Close() error
}

// Config configures a session.
type Config struct {
	// USB identifies the device to open. Zero value means DefaultConfig.
	USB usb.Config

	// SettleDelay overrides DefaultSettleDelay when positive.
	SettleDelay time.Duration

	// Trace receives packet-level events. Nil disables tracing.
	Trace log.Logger
}

// Session is one exclusive device connection. At most one transaction is
// in flight at any time; see the package documentation.
type Session struct {
	port   Port
	trace  log.Logger
	id     string
	mode   string
	dongle string
	settle time.Duration

	mu     sync.Mutex
	closed bool

	closeOnce sync.Once
}

// Connect opens the mouse (wireless dongle first, wired fallback) and
// wraps it in a session. The kernel HID driver is detached from the
// command interface for the lifetime of the session.
func Connect(config Config) (*Session, error) {
	usbConfig := config.USB
	if usbConfig.VendorID == 0 {
		usbConfig = usb.DefaultConfig()
	}

	dev, err := usb.Open(usbConfig)
	if err != nil {
		return nil, err
	}

	s := New(dev, config)
	s.mode = dev.Mode().String()
	s.dongle = dev.DongleFirmware()
	s.logState("", "connected", s.mode)
	return s, nil
}

// New wraps an already-open port. Used by Connect and by tests that
// drive an emulated device.
func New(port Port, config Config) *Session {
	settle := config.SettleDelay
	if settle <= 0 {
		settle = DefaultSettleDelay
	}
	trace := config.Trace
	if trace == nil {
		trace = log.NoopLogger{}
	}
	return &Session{
		port:   port,
		trace:  trace,
		id:     uuid.NewString(),
		settle: settle,
	}
}

// ID returns the session's unique identifier, as used in trace events.
func (s *Session) ID() string { return s.id }

// Mode returns the detected connection mode ("wired"/"wireless"), or an
// empty string for wrapped ports.
func (s *Session) Mode() string { return s.mode }

// DongleFirmware returns the dongle firmware revision from the USB
// descriptor, or an empty string for wrapped ports.
func (s *Session) DongleFirmware() string { return s.dongle }

// Transact performs one complete exchange: send the packet, wait the
// settle delay, read the 64-byte reply. Concurrent callers queue; the
// context is honored between the transfer steps.
//
// The name identifies the command in trace events and errors; it has no
// wire effect.
func (s *Session) Transact(ctx context.Context, name string, out wire.Packet) (wire.Packet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return wire.Packet{}, ErrSessionClosed
	}
	if err := ctx.Err(); err != nil {
		return wire.Packet{}, err
	}

	s.logPacket(log.DirectionOut, name, out[:])

	if err := s.port.SetReport(out[:]); err != nil {
		terr := &TransportError{Op: "send", Err: err}
		s.logError(terr.Error(), name, true)
		return wire.Packet{}, terr
	}

	// The device is not ready to answer immediately after a set report.
	timer := time.NewTimer(s.settle)
	select {
	case <-ctx.Done():
		timer.Stop()
		return wire.Packet{}, ctx.Err()
	case <-timer.C:
	}

	buf := make([]byte, wire.PacketSize)
	n, err := s.port.GetReport(buf)
	if err != nil {
		terr := &TransportError{Op: "receive", Err: err}
		s.logError(terr.Error(), name, true)
		return wire.Packet{}, terr
	}

	in, err := wire.ParsePacket(buf[:n])
	if err != nil {
		s.logError(err.Error(), name, true)
		return wire.Packet{}, err
	}

	s.logPacket(log.DirectionIn, "", in[:])
	return in, nil
}

// Close releases the device. The interface claim is dropped so the
// kernel driver can reattach; failures there are logged and swallowed
// because the mouse remains usable under the default driver. Close is
// idempotent and always leaves the session unusable for transactions.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		s.closed = true
		s.mu.Unlock()

		s.logState("connected", "closed", "")
		if err := s.port.Close(); err != nil {
			s.logError(err.Error(), "disconnect", false)
		}
	})
}

func (s *Session) logPacket(dir log.Direction, name string, data []byte) {
	s.trace.Log(log.Event{
		Timestamp: time.Now(),
		SessionID: s.id,
		Direction: dir,
		Category:  log.CategoryPacket,
		Mode:      s.mode,
		Packet:    &log.PacketEvent{Command: name, Data: append([]byte(nil), data...)},
	})
}

func (s *Session) logState(oldState, newState, reason string) {
	s.trace.Log(log.Event{
		Timestamp: time.Now(),
		SessionID: s.id,
		Category:  log.CategoryState,
		Mode:      s.mode,
		State:     &log.StateChangeEvent{OldState: oldState, NewState: newState, Reason: reason},
	})
}

func (s *Session) logError(msg, context string, fatal bool) {
	s.trace.Log(log.Event{
		Timestamp: time.Now(),
		SessionID: s.id,
		Category:  log.CategoryError,
		Mode:      s.mode,
		Error:     &log.ErrorEventData{Message: msg, Context: context, Fatal: fatal},
	})
}

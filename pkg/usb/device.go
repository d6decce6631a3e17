package usb

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/gousb"
)

// Device identification and HID transfer constants.
const (
	// VendorID is the Pulsar vendor ID.
	VendorID gousb.ID = 0x3710

	// ProductWired is the product ID when connected over USB cable.
	ProductWired gousb.ID = 0x3410

	// ProductWireless is the product ID of the 2.4 GHz dongle.
	ProductWireless gousb.ID = 0x5403

	// HIDInterfaceNumber is the interface carrying feature reports.
	HIDInterfaceNumber = 3

	// reportValue selects the feature report (type 3, report ID 0).
	reportValue = 0x0300

	requestSetReport = 0x09
	requestGetReport = 0x01
)

// DefaultTimeout bounds each control transfer.
const DefaultTimeout = time.Second

var (
	// ErrDeviceNotFound indicates no matching device is present, in
	// either wired or wireless mode. The user must connect the hardware.
	ErrDeviceNotFound = errors.New("usb: Pulsar X3 not found (wired or wireless)")

	// ErrClaimFailed indicates the HID interface could not be claimed
	// (kernel driver detach failed). Fatal to starting a session.
	ErrClaimFailed = errors.New("usb: failed to claim HID interface")
)

// Mode is the detected connection mode.
type Mode uint8

const (
	// ModeWired means the mouse is connected over USB cable.
	ModeWired Mode = 0
	// ModeWireless means the 2.4 GHz dongle answered.
	ModeWireless Mode = 1
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeWired:
		return "wired"
	case ModeWireless:
		return "wireless"
	default:
		return "unknown"
	}
}

// Config holds device identification and transfer tuning. The zero value
// is not usable; start from DefaultConfig.
type Config struct {
	// VendorID and the two product IDs to probe. Overridable for
	// firmware revisions that enumerate differently.
	VendorID        gousb.ID
	WiredProduct    gousb.ID
	WirelessProduct gousb.ID

	// Timeout bounds each individual control transfer.
	Timeout time.Duration
}

// DefaultConfig returns the stock Pulsar X3 identification.
func DefaultConfig() Config {
	return Config{
		VendorID:        VendorID,
		WiredProduct:    ProductWired,
		WirelessProduct: ProductWireless,
		Timeout:         DefaultTimeout,
	}
}

// Device is an open, claimed Pulsar X3. It owns the libusb context and
// the exclusive claim on the HID interface; Close releases both.
type Device struct {
	ctx  *gousb.Context
	dev  *gousb.Device
	cfg  *gousb.Config
	intf *gousb.Interface
	mode Mode
}

// Open finds and claims the mouse. The wireless dongle is probed first,
// then the wired interface. Claiming the HID interface detaches the
// kernel driver for the duration of the session.
func Open(config Config) (*Device, error) {
	uctx := gousb.NewContext()

	dev, mode, err := openEither(uctx, config)
	if err != nil {
		uctx.Close()
		return nil, err
	}

	dev.ControlTimeout = config.Timeout

	if err := dev.SetAutoDetach(true); err != nil {
		dev.Close()
		uctx.Close()
		return nil, fmt.Errorf("%w: auto-detach: %v", ErrClaimFailed, err)
	}

	cfgNum, err := dev.ActiveConfigNum()
	if err != nil {
		dev.Close()
		uctx.Close()
		return nil, fmt.Errorf("%w: active configuration: %v", ErrClaimFailed, err)
	}

	cfg, err := dev.Config(cfgNum)
	if err != nil {
		dev.Close()
		uctx.Close()
		return nil, fmt.Errorf("%w: configuration %d: %v", ErrClaimFailed, cfgNum, err)
	}

	intf, err := cfg.Interface(HIDInterfaceNumber, 0)
	if err != nil {
		cfg.Close()
		dev.Close()
		uctx.Close()
		return nil, fmt.Errorf("%w: interface %d: %v", ErrClaimFailed, HIDInterfaceNumber, err)
	}

	return &Device{
		ctx:  uctx,
		dev:  dev,
		cfg:  cfg,
		intf: intf,
		mode: mode,
	}, nil
}

func openEither(uctx *gousb.Context, config Config) (*gousb.Device, Mode, error) {
	dev, err := uctx.OpenDeviceWithVIDPID(config.VendorID, config.WirelessProduct)
	if err != nil {
		return nil, 0, fmt.Errorf("usb: open wireless: %w", err)
	}
	if dev != nil {
		return dev, ModeWireless, nil
	}

	dev, err = uctx.OpenDeviceWithVIDPID(config.VendorID, config.WiredProduct)
	if err != nil {
		return nil, 0, fmt.Errorf("usb: open wired: %w", err)
	}
	if dev != nil {
		return dev, ModeWired, nil
	}

	return nil, 0, ErrDeviceNotFound
}

// Mode returns the detected connection mode.
func (d *Device) Mode() Mode {
	return d.mode
}

// DongleFirmware returns the dongle/controller firmware revision from
// the USB device descriptor (bcdDevice), formatted as the vendor
// software displays it.
func (d *Device) DongleFirmware() string {
	return fmt.Sprintf("%04x", uint16(d.dev.Desc.Device))
}

// SetReport sends one feature report to the device.
func (d *Device) SetReport(data []byte) error {
	n, err := d.dev.Control(
		gousb.ControlOut|gousb.ControlClass|gousb.ControlInterface,
		requestSetReport, reportValue, HIDInterfaceNumber, data)
	if err != nil {
		return fmt.Errorf("set report: %w", err)
	}
	if n != len(data) {
		return fmt.Errorf("set report: wrote %d of %d bytes", n, len(data))
	}
	return nil
}

// GetReport reads one feature report from the device into buf and
// returns the number of bytes transferred.
func (d *Device) GetReport(buf []byte) (int, error) {
	n, err := d.dev.Control(
		gousb.ControlIn|gousb.ControlClass|gousb.ControlInterface,
		requestGetReport, reportValue, HIDInterfaceNumber, buf)
	if err != nil {
		return n, fmt.Errorf("get report: %w", err)
	}
	return n, nil
}

// Close releases the interface claim (letting the kernel driver
// reattach) and closes the device and context. Errors are joined; the
// device remains usable by the host's default driver regardless.
func (d *Device) Close() error {
	var errs error
	if d.intf != nil {
		d.intf.Close()
		d.intf = nil
	}
	if d.cfg != nil {
		if err := d.cfg.Close(); err != nil {
			errs = errors.Join(errs, err)
		}
		d.cfg = nil
	}
	if d.dev != nil {
		if err := d.dev.Close(); err != nil {
			errs = errors.Join(errs, err)
		}
		d.dev = nil
	}
	if d.ctx != nil {
		if err := d.ctx.Close(); err != nil {
			errs = errors.Join(errs, err)
		}
		d.ctx = nil
	}
	return errs
}

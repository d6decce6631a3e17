// Package usb opens the Pulsar X3 over libusb and carries feature
// reports to and from it.
//
// The mouse enumerates under one vendor ID with two product IDs: the
// wireless dongle and the wired (cable) interface. Wireless is probed
// first, falling back to wired.
//
// Commands travel as HID feature reports on interface 3, via control
// transfers:
//
//	out: bmRequestType 0x21 (class, interface, host-to-device),
//	     bRequest SET_REPORT (0x09), wValue 0x0300, wIndex 3
//	in:  bmRequestType 0xA1 (class, interface, device-to-host),
//	     bRequest GET_REPORT (0x01), wValue 0x0300, wIndex 3
//
// Claiming interface 3 detaches the kernel HID driver (auto-detach);
// releasing it on Close lets the kernel reattach, so the mouse keeps
// working as a normal input device after a session ends.
package usb

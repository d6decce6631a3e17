package main

import (
	"fmt"
	"os"
	"time"

	"github.com/google/gousb"
	"gopkg.in/yaml.v3"

	"github.com/pulsar-tools/pulsarctl/pkg/usb"
)

// fileConfig is the optional YAML configuration file. Everything in it
// has a sensible default; the file exists for firmware revisions that
// enumerate under different IDs and for hosts that need slower timing.
type fileConfig struct {
	USB struct {
		VendorID        string `yaml:"vendor_id"`
		WiredProduct    string `yaml:"wired_product"`
		WirelessProduct string `yaml:"wireless_product"`
		TimeoutMS       int    `yaml:"timeout_ms"`
	} `yaml:"usb"`

	SettleDelayMS int    `yaml:"settle_delay_ms"`
	TraceFile     string `yaml:"trace_file"`
}

// loadConfig reads the YAML file at path. An empty path yields the
// all-defaults configuration.
func loadConfig(path string) (*fileConfig, error) {
	cfg := &fileConfig{}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// usbConfig resolves the file's overrides on top of the stock device IDs.
func (c *fileConfig) usbConfig() (usb.Config, error) {
	out := usb.DefaultConfig()

	if c.USB.VendorID != "" {
		id, err := parseHexID(c.USB.VendorID)
		if err != nil {
			return usb.Config{}, err
		}
		out.VendorID = gousb.ID(id)
	}
	if c.USB.WiredProduct != "" {
		id, err := parseHexID(c.USB.WiredProduct)
		if err != nil {
			return usb.Config{}, err
		}
		out.WiredProduct = gousb.ID(id)
	}
	if c.USB.WirelessProduct != "" {
		id, err := parseHexID(c.USB.WirelessProduct)
		if err != nil {
			return usb.Config{}, err
		}
		out.WirelessProduct = gousb.ID(id)
	}
	if c.USB.TimeoutMS > 0 {
		out.Timeout = time.Duration(c.USB.TimeoutMS) * time.Millisecond
	}
	return out, nil
}

// settleDelay returns the configured send-to-receive pause, or zero to
// let the session use its default.
func (c *fileConfig) settleDelay() time.Duration {
	return time.Duration(c.SettleDelayMS) * time.Millisecond
}

package settings

import (
	"fmt"

	"github.com/pulsar-tools/pulsarctl/pkg/catalog"
)

// ValidationError reports a value outside a setting's declared domain.
// It is raised before any wire traffic; the caller can correct the input
// and retry.
type ValidationError struct {
	Setting catalog.Setting
	Value   string
	Reason  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("settings: %s: invalid value %s: %s", e.Setting, e.Value, e.Reason)
}

// PollingRate is the device's self-reported polling rate. The query is
// documented as unreliable: raw values outside the known mapping are
// carried as unresolved and must never be presented as a concrete rate.
type PollingRate struct {
	// Hz is the mapped rate; only meaningful when Resolved is true.
	Hz int

	// Raw is the byte the device reported.
	Raw byte

	// Resolved indicates the raw value was found in the mapping table.
	Resolved bool
}

// String renders the hint, always flagged as device-reported.
func (p PollingRate) String() string {
	if !p.Resolved {
		return fmt.Sprintf("unresolved(%d)", p.Raw)
	}
	return fmt.Sprintf("%dHz (unreliable)", p.Hz)
}

// Value is one decoded setting value. Which fields are meaningful
// depends on Setting; String renders the appropriate one.
type Value struct {
	Setting catalog.Setting

	Int     int     // dpi x, stage, debounce ms, battery percent
	Int2    int     // dpi y
	Bool    bool    // motion sync, angle snapping, ripple control
	Float   float64 // lift-off distance in mm
	Text    string  // firmware version
	Polling PollingRate
}

// String renders the value the way the CLI displays it.
func (v Value) String() string {
	switch v.Setting {
	case catalog.SettingFirmwareVersion:
		return v.Text
	case catalog.SettingDPI:
		if v.Int != v.Int2 {
			return fmt.Sprintf("%d x %d", v.Int, v.Int2)
		}
		return fmt.Sprintf("%d", v.Int)
	case catalog.SettingDPIStage:
		return fmt.Sprintf("%d", v.Int)
	case catalog.SettingMotionSync, catalog.SettingAngleSnapping, catalog.SettingRippleControl:
		if v.Bool {
			return "on"
		}
		return "off"
	case catalog.SettingLiftOffDistance:
		return fmt.Sprintf("%gmm", v.Float)
	case catalog.SettingDebounce:
		return fmt.Sprintf("%dms", v.Int)
	case catalog.SettingBattery:
		return fmt.Sprintf("%d%%", v.Int)
	case catalog.SettingPollingRate:
		return v.Polling.String()
	default:
		return "unknown"
	}
}

package catalog

import "fmt"

// Setting identifies one configurable or readable device setting.
type Setting uint8

const (
	// SettingFirmwareVersion is the mouse firmware version (read-only).
	SettingFirmwareVersion Setting = iota

	// SettingDPI is the sensor resolution in dots per inch.
	SettingDPI

	// SettingDPIStage is the active DPI preset slot (1-6).
	SettingDPIStage

	// SettingMotionSync aligns sensor polling to a fixed internal clock.
	SettingMotionSync

	// SettingLiftOffDistance is the tracking cut-off height.
	SettingLiftOffDistance

	// SettingAngleSnapping straightens near-linear cursor movement.
	SettingAngleSnapping

	// SettingRippleControl smooths tracking at DPI transitions.
	SettingRippleControl

	// SettingDebounce is the button debounce time in milliseconds.
	SettingDebounce

	// SettingBattery is the battery charge percentage (read-only).
	SettingBattery

	// SettingPollingRate is the self-reported polling rate hint (read-only).
	SettingPollingRate
)

// String returns the setting name as used by the CLI and trace logs.
func (s Setting) String() string {
	switch s {
	case SettingFirmwareVersion:
		return "firmware-version"
	case SettingDPI:
		return "dpi"
	case SettingDPIStage:
		return "stage"
	case SettingMotionSync:
		return "motion-sync"
	case SettingLiftOffDistance:
		return "lod"
	case SettingAngleSnapping:
		return "angle-snap"
	case SettingRippleControl:
		return "ripple-control"
	case SettingDebounce:
		return "debounce"
	case SettingBattery:
		return "battery"
	case SettingPollingRate:
		return "polling-rate"
	default:
		return "unknown"
	}
}

// Settings returns all settings in catalog order. The order is used by
// bulk reads; no cross-setting dependency exists, it is purely the
// presentation order.
func Settings() []Setting {
	return []Setting{
		SettingFirmwareVersion,
		SettingDPI,
		SettingDPIStage,
		SettingMotionSync,
		SettingLiftOffDistance,
		SettingAngleSnapping,
		SettingRippleControl,
		SettingDebounce,
		SettingBattery,
		SettingPollingRate,
	}
}

// ParseSetting resolves a setting name as accepted on the command line.
func ParseSetting(name string) (Setting, error) {
	for _, s := range Settings() {
		if s.String() == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown setting %q", name)
}

package catalog

// Lift-off distance raw values the firmware accepts, as mm x 10.
var liftOffRaw = [...]byte{7, 10, 20}

// LiftOffRawValues returns the raw values the set command accepts.
func LiftOffRawValues() []byte {
	return liftOffRaw[:]
}

// ValidLiftOffRaw reports whether raw is an accepted lift-off value.
func ValidLiftOffRaw(raw byte) bool {
	for _, v := range liftOffRaw {
		if v == raw {
			return true
		}
	}
	return false
}

// LiftOffMillimeters converts a raw lift-off value to millimeters.
// Known values map exactly (7 -> 0.7, 10 -> 1.0, 20 -> 2.0); anything
// else the firmware might report falls back to the same raw/10 scaling.
func LiftOffMillimeters(raw byte) float64 {
	return float64(raw) / 10
}

// LiftOffRawFromMillimeters converts millimeters to the firmware's raw
// encoding. ok is false when mm is outside the accepted set; the range
// check happens in float space so out-of-range inputs cannot wrap onto
// a valid raw value through the byte conversion.
func LiftOffRawFromMillimeters(mm float64) (raw byte, ok bool) {
	scaled := mm * 10
	if scaled < 0 || scaled > 255 {
		return 0, false
	}
	raw = byte(scaled + 0.5)
	return raw, ValidLiftOffRaw(raw)
}

// pollingRates maps the polling-rate query value to a rate in Hz. The
// mapping was captured from the vendor software; values outside it are
// reported as unresolved because the query is documented as unreliable.
var pollingRates = map[byte]int{
	240: 125,
	120: 250,
	60:  500,
	30:  1000,
	15:  2000,
	8:   4000,
	4:   8000,
}

// PollingRateHz resolves a raw polling-rate query value. ok is false for
// values outside the known table; such values must be surfaced as
// unresolved, never silently presented as a concrete rate.
func PollingRateHz(raw byte) (hz int, ok bool) {
	hz, ok = pollingRates[raw]
	return hz, ok
}

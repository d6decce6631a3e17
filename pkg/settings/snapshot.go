package settings

import "context"

// Snapshot is one bulk read of every readable setting. The queries are
// independent transactions; the session's serialization keeps the DPI
// and stage values consistent within the refresh.
type Snapshot struct {
	FirmwareVersion string
	DPIX, DPIY      int
	Stage           int
	MotionSync      bool
	AngleSnapping   bool
	RippleControl   bool
	LiftOffMM       float64
	DebounceMS      int
	BatteryPercent  int
	Polling         PollingRate
}

// ReadAll queries every readable setting and returns the combined view.
// The first failing query aborts the read.
func (r *Registry) ReadAll(ctx context.Context) (*Snapshot, error) {
	var (
		snap Snapshot
		err  error
	)

	if snap.FirmwareVersion, err = r.FirmwareVersion(ctx); err != nil {
		return nil, err
	}
	if snap.DPIX, snap.DPIY, err = r.DPI(ctx); err != nil {
		return nil, err
	}
	if snap.Stage, err = r.Stage(ctx); err != nil {
		return nil, err
	}
	if snap.MotionSync, err = r.MotionSync(ctx); err != nil {
		return nil, err
	}
	if snap.LiftOffMM, err = r.LiftOffDistance(ctx); err != nil {
		return nil, err
	}
	if snap.AngleSnapping, err = r.AngleSnapping(ctx); err != nil {
		return nil, err
	}
	if snap.RippleControl, err = r.RippleControl(ctx); err != nil {
		return nil, err
	}
	if snap.DebounceMS, err = r.Debounce(ctx); err != nil {
		return nil, err
	}
	if snap.BatteryPercent, err = r.Battery(ctx); err != nil {
		return nil, err
	}
	if snap.Polling, err = r.PollingRate(ctx); err != nil {
		return nil, err
	}

	return &snap, nil
}

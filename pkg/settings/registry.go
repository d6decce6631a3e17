package settings

import (
	"context"
	"fmt"

	"github.com/pulsar-tools/pulsarctl/pkg/catalog"
	"github.com/pulsar-tools/pulsarctl/pkg/wire"
)

// Transactor is the session surface the registry needs: one serialized
// command/response exchange. Implemented by session.Session.
type Transactor interface {
	Transact(ctx context.Context, name string, out wire.Packet) (wire.Packet, error)
}

// Registry exposes typed get/set operations per setting on top of one
// device session.
type Registry struct {
	t Transactor
}

// NewRegistry creates a registry bound to a session.
func NewRegistry(t Transactor) *Registry {
	return &Registry{t: t}
}

// query runs a setting's query command and returns the command used and
// the device's reply.
func (r *Registry) query(ctx context.Context, s catalog.Setting) (*wire.Command, wire.Packet, error) {
	entry, ok := catalog.Lookup(s)
	if !ok || entry.Query == nil {
		return nil, wire.Packet{}, fmt.Errorf("settings: %s is not readable", s)
	}
	out, err := wire.Encode(*entry.Query, 0)
	if err != nil {
		return nil, wire.Packet{}, err
	}
	in, err := r.t.Transact(ctx, entry.Query.Name, out)
	if err != nil {
		return nil, wire.Packet{}, err
	}
	return entry.Query, in, nil
}

// send encodes and runs a setting's set command, discarding the reply.
func (r *Registry) send(ctx context.Context, s catalog.Setting, arg uint16) error {
	entry, ok := catalog.Lookup(s)
	if !ok || entry.Set == nil {
		return fmt.Errorf("settings: %s is not writable", s)
	}
	out, err := wire.Encode(*entry.Set, arg)
	if err != nil {
		return err
	}
	_, err = r.t.Transact(ctx, entry.Set.Name, out)
	return err
}

// FirmwareVersion queries the mouse firmware version.
func (r *Registry) FirmwareVersion(ctx context.Context) (string, error) {
	cmd, in, err := r.query(ctx, catalog.SettingFirmwareVersion)
	if err != nil {
		return "", err
	}
	return wire.DecodeVersion(*cmd, in)
}

// DPI queries the current x and y resolution. The set command always
// writes them equal, but the device reports them separately.
func (r *Registry) DPI(ctx context.Context) (x, y int, err error) {
	cmd, in, err := r.query(ctx, catalog.SettingDPI)
	if err != nil {
		return 0, 0, err
	}
	xw, yw, err := wire.DecodeWordPair(*cmd, in)
	if err != nil {
		return 0, 0, err
	}
	return int(xw), int(yw), nil
}

// SetDPI programs the sensor resolution, x and y identical.
func (r *Registry) SetDPI(ctx context.Context, dpi int) error {
	if dpi < catalog.DPIMin || dpi > catalog.DPIMax {
		return &ValidationError{
			Setting: catalog.SettingDPI,
			Value:   fmt.Sprintf("%d", dpi),
			Reason:  fmt.Sprintf("must be %d-%d", catalog.DPIMin, catalog.DPIMax),
		}
	}
	return r.send(ctx, catalog.SettingDPI, uint16(dpi))
}

// Stage queries the active DPI preset slot.
func (r *Registry) Stage(ctx context.Context) (int, error) {
	cmd, in, err := r.query(ctx, catalog.SettingDPIStage)
	if err != nil {
		return 0, err
	}
	b, err := wire.DecodeByte(*cmd, in)
	if err != nil {
		return 0, err
	}
	return int(b), nil
}

// SetStage switches the active DPI preset slot (1-6).
func (r *Registry) SetStage(ctx context.Context, stage int) error {
	if stage < catalog.StageMin || stage > catalog.StageMax {
		return &ValidationError{
			Setting: catalog.SettingDPIStage,
			Value:   fmt.Sprintf("%d", stage),
			Reason:  fmt.Sprintf("must be %d-%d", catalog.StageMin, catalog.StageMax),
		}
	}
	return r.send(ctx, catalog.SettingDPIStage, uint16(stage))
}

// MotionSync queries whether motion sync is enabled.
func (r *Registry) MotionSync(ctx context.Context) (bool, error) {
	return r.queryBool(ctx, catalog.SettingMotionSync)
}

// SetMotionSync enables or disables motion sync.
func (r *Registry) SetMotionSync(ctx context.Context, on bool) error {
	return r.send(ctx, catalog.SettingMotionSync, boolArg(on))
}

// AngleSnapping queries whether angle snapping is enabled.
func (r *Registry) AngleSnapping(ctx context.Context) (bool, error) {
	return r.queryBool(ctx, catalog.SettingAngleSnapping)
}

// SetAngleSnapping enables or disables angle snapping.
func (r *Registry) SetAngleSnapping(ctx context.Context, on bool) error {
	return r.send(ctx, catalog.SettingAngleSnapping, boolArg(on))
}

// RippleControl queries whether ripple control is enabled.
func (r *Registry) RippleControl(ctx context.Context) (bool, error) {
	return r.queryBool(ctx, catalog.SettingRippleControl)
}

// SetRippleControl enables or disables ripple control.
func (r *Registry) SetRippleControl(ctx context.Context, on bool) error {
	return r.send(ctx, catalog.SettingRippleControl, boolArg(on))
}

// LiftOffDistance queries the lift-off distance in millimeters. Raw
// values outside the documented set fall back to raw/10 scaling.
func (r *Registry) LiftOffDistance(ctx context.Context) (float64, error) {
	cmd, in, err := r.query(ctx, catalog.SettingLiftOffDistance)
	if err != nil {
		return 0, err
	}
	raw, err := wire.DecodeByte(*cmd, in)
	if err != nil {
		return 0, err
	}
	return catalog.LiftOffMillimeters(raw), nil
}

// SetLiftOffDistance programs the lift-off distance. The firmware only
// accepts 0.7, 1 or 2 millimeters.
func (r *Registry) SetLiftOffDistance(ctx context.Context, mm float64) error {
	raw, ok := catalog.LiftOffRawFromMillimeters(mm)
	if !ok {
		return &ValidationError{
			Setting: catalog.SettingLiftOffDistance,
			Value:   fmt.Sprintf("%g", mm),
			Reason:  "must be 0.7, 1 or 2 (mm)",
		}
	}
	return r.send(ctx, catalog.SettingLiftOffDistance, uint16(raw))
}

// Debounce queries the button debounce time in milliseconds.
func (r *Registry) Debounce(ctx context.Context) (int, error) {
	cmd, in, err := r.query(ctx, catalog.SettingDebounce)
	if err != nil {
		return 0, err
	}
	b, err := wire.DecodeByte(*cmd, in)
	if err != nil {
		return 0, err
	}
	return int(b), nil
}

// SetDebounce programs the button debounce time in milliseconds.
func (r *Registry) SetDebounce(ctx context.Context, ms int) error {
	if ms < 0 || ms > catalog.DebounceMaxMS {
		return &ValidationError{
			Setting: catalog.SettingDebounce,
			Value:   fmt.Sprintf("%d", ms),
			Reason:  fmt.Sprintf("must be 0-%d", catalog.DebounceMaxMS),
		}
	}
	return r.send(ctx, catalog.SettingDebounce, uint16(ms))
}

// Battery queries the battery charge percentage.
func (r *Registry) Battery(ctx context.Context) (int, error) {
	cmd, in, err := r.query(ctx, catalog.SettingBattery)
	if err != nil {
		return 0, err
	}
	b, err := wire.DecodeByte(*cmd, in)
	if err != nil {
		return 0, err
	}
	return int(b), nil
}

// PollingRate queries the polling-rate hint. Unmapped raw values are
// returned unresolved, never as a concrete rate.
func (r *Registry) PollingRate(ctx context.Context) (PollingRate, error) {
	cmd, in, err := r.query(ctx, catalog.SettingPollingRate)
	if err != nil {
		return PollingRate{}, err
	}
	raw, err := wire.DecodeByte(*cmd, in)
	if err != nil {
		return PollingRate{}, err
	}
	hz, ok := catalog.PollingRateHz(raw)
	return PollingRate{Hz: hz, Raw: raw, Resolved: ok}, nil
}

// Get queries any readable setting generically. Front-ends that work
// from setting names use this; typed accessors are preferred in code.
func (r *Registry) Get(ctx context.Context, s catalog.Setting) (Value, error) {
	v := Value{Setting: s}
	var err error
	switch s {
	case catalog.SettingFirmwareVersion:
		v.Text, err = r.FirmwareVersion(ctx)
	case catalog.SettingDPI:
		v.Int, v.Int2, err = r.DPI(ctx)
	case catalog.SettingDPIStage:
		v.Int, err = r.Stage(ctx)
	case catalog.SettingMotionSync:
		v.Bool, err = r.MotionSync(ctx)
	case catalog.SettingLiftOffDistance:
		v.Float, err = r.LiftOffDistance(ctx)
	case catalog.SettingAngleSnapping:
		v.Bool, err = r.AngleSnapping(ctx)
	case catalog.SettingRippleControl:
		v.Bool, err = r.RippleControl(ctx)
	case catalog.SettingDebounce:
		v.Int, err = r.Debounce(ctx)
	case catalog.SettingBattery:
		v.Int, err = r.Battery(ctx)
	case catalog.SettingPollingRate:
		v.Polling, err = r.PollingRate(ctx)
	default:
		err = fmt.Errorf("settings: unknown setting %d", s)
	}
	if err != nil {
		return Value{}, err
	}
	return v, nil
}

// Set writes any writable setting generically, validating first.
func (r *Registry) Set(ctx context.Context, s catalog.Setting, v Value) error {
	switch s {
	case catalog.SettingDPI:
		return r.SetDPI(ctx, v.Int)
	case catalog.SettingDPIStage:
		return r.SetStage(ctx, v.Int)
	case catalog.SettingMotionSync:
		return r.SetMotionSync(ctx, v.Bool)
	case catalog.SettingLiftOffDistance:
		return r.SetLiftOffDistance(ctx, v.Float)
	case catalog.SettingAngleSnapping:
		return r.SetAngleSnapping(ctx, v.Bool)
	case catalog.SettingRippleControl:
		return r.SetRippleControl(ctx, v.Bool)
	case catalog.SettingDebounce:
		return r.SetDebounce(ctx, v.Int)
	default:
		return &ValidationError{Setting: s, Value: v.String(), Reason: "read-only setting"}
	}
}

func (r *Registry) queryBool(ctx context.Context, s catalog.Setting) (bool, error) {
	cmd, in, err := r.query(ctx, s)
	if err != nil {
		return false, err
	}
	return wire.DecodeBool(*cmd, in)
}

func boolArg(on bool) uint16 {
	if on {
		return 1
	}
	return 0
}

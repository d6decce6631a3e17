// Command pulsarctl configures a Pulsar X3 gaming mouse over USB.
//
// The tool supports two modes:
//   - One-shot: apply the settings given as flags, then print anything
//     that was asked for and exit.
//   - Interactive: a readline command loop (-interactive).
//
// Usage:
//
//	pulsarctl [flags]
//
// Flags:
//
//	-dpi int            Set sensor resolution, 50-26000
//	-stage int          Set active DPI stage, 1-6
//	-motion-sync on|off Set motion sync
//	-lod float          Set lift-off distance in mm: 0.7, 1 or 2
//	-angle-snap on|off  Set angle snapping
//	-ripple-control on|off  Set ripple control
//	-debounce int       Set button debounce in ms, 0-30
//	-get string         Query one setting by name
//	-battery            Query battery charge
//	-info               Print all readable settings
//	-interactive        Start the interactive command loop
//	-config string      YAML configuration file path
//	-trace string       Write a binary packet trace to this file
//	-dump-trace string  Print a packet trace file and exit (no device needed)
//	-log-level string   Log level: debug, info, warn, error (default "info")
//
// Examples:
//
//	# Show everything the mouse reports
//	pulsarctl -info
//
//	# Set DPI and switch to stage 3 in one invocation
//	pulsarctl -dpi 1600 -stage 3
//
//	# Explicit zero is a real value, not "unset"
//	pulsarctl -debounce 0
//
//	# Record the packet exchange while querying the battery
//	pulsarctl -battery -trace battery.ptrace
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/pulsar-tools/pulsarctl/pkg/catalog"
	tracelog "github.com/pulsar-tools/pulsarctl/pkg/log"
	"github.com/pulsar-tools/pulsarctl/pkg/session"
	"github.com/pulsar-tools/pulsarctl/pkg/settings"
	"github.com/pulsar-tools/pulsarctl/pkg/usb"
)

type options struct {
	DPI         int
	Stage       int
	MotionSync  string
	LiftOff     float64
	AngleSnap   string
	Ripple      string
	Debounce    int
	Get         string
	Battery     bool
	Info        bool
	Interactive bool
	ConfigFile  string
	TraceFile   string
	DumpTrace   string
	LogLevel    string
}

var opts options

func init() {
	flag.IntVar(&opts.DPI, "dpi", 0, "Set sensor resolution (50-26000)")
	flag.IntVar(&opts.Stage, "stage", 0, "Set active DPI stage (1-6)")
	flag.StringVar(&opts.MotionSync, "motion-sync", "", "Set motion sync (on/off)")
	flag.Float64Var(&opts.LiftOff, "lod", 0, "Set lift-off distance in mm (0.7, 1 or 2)")
	flag.StringVar(&opts.AngleSnap, "angle-snap", "", "Set angle snapping (on/off)")
	flag.StringVar(&opts.Ripple, "ripple-control", "", "Set ripple control (on/off)")
	flag.IntVar(&opts.Debounce, "debounce", 0, "Set button debounce in ms (0-30)")
	flag.StringVar(&opts.Get, "get", "", "Query one setting by name")
	flag.BoolVar(&opts.Battery, "battery", false, "Query battery charge")
	flag.BoolVar(&opts.Info, "info", false, "Print all readable settings")
	flag.BoolVar(&opts.Interactive, "interactive", false, "Start the interactive command loop")
	flag.StringVar(&opts.ConfigFile, "config", "", "YAML configuration file path")
	flag.StringVar(&opts.TraceFile, "trace", "", "Write a binary packet trace to this file")
	flag.StringVar(&opts.DumpTrace, "dump-trace", "", "Print a packet trace file and exit")
	flag.StringVar(&opts.LogLevel, "log-level", "info", "Log level: debug, info, warn, error")
}

// writeFlags lists the setter flags in the order they are applied when
// several are given at once. Presence is what matters: -debounce 0 is a
// real write, detected via flag.Visit, not via the zero value.
var writeFlags = []string{"dpi", "stage", "motion-sync", "lod", "angle-snap", "ripple-control", "debounce"}

func main() {
	flag.Parse()

	provided := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { provided[f.Name] = true })

	setupLogging(opts.LogLevel)

	if opts.DumpTrace != "" {
		if err := dumpTrace(opts.DumpTrace); err != nil {
			log.Fatalf("Failed to read trace: %v", err)
		}
		return
	}

	cfg, err := loadConfig(opts.ConfigFile)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	tracePath := opts.TraceFile
	if tracePath == "" {
		tracePath = cfg.TraceFile
	}
	trace, closeTrace, err := buildTrace(tracePath, opts.LogLevel)
	if err != nil {
		log.Fatalf("Failed to open trace file: %v", err)
	}
	defer closeTrace()

	usbConfig, err := cfg.usbConfig()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	sess, err := session.Connect(session.Config{
		USB:         usbConfig,
		SettleDelay: cfg.settleDelay(),
		Trace:       trace,
	})
	if err != nil {
		if errors.Is(err, usb.ErrDeviceNotFound) {
			log.Fatalf("No Pulsar X3 found (checked wireless and wired IDs)")
		}
		log.Fatalf("Failed to open device: %v", err)
	}
	defer sess.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	reg := settings.NewRegistry(sess)

	if opts.Interactive {
		if err := runInteractive(ctx, sess, reg); err != nil {
			log.Fatalf("Interactive mode failed: %v", err)
		}
		return
	}

	wrote, err := applyWrites(ctx, reg, provided)
	if err != nil {
		log.Fatalf("%v", err)
	}

	read := false
	if opts.Battery {
		pct, err := reg.Battery(ctx)
		if err != nil {
			log.Fatalf("Battery query failed: %v", err)
		}
		fmt.Printf("Battery: %d%%\n", pct)
		read = true
	}
	if opts.Get != "" {
		s, err := catalog.ParseSetting(opts.Get)
		if err != nil {
			log.Fatalf("%v", err)
		}
		v, err := reg.Get(ctx, s)
		if err != nil {
			log.Fatalf("Query failed: %v", err)
		}
		fmt.Printf("%s: %s\n", s, v)
		read = true
	}

	// Plain "pulsarctl" with no work to do defaults to the info report.
	if opts.Info || (!wrote && !read) {
		snap, err := reg.ReadAll(ctx)
		if err != nil {
			log.Fatalf("Info query failed: %v", err)
		}
		printInfo(os.Stdout, sess, snap)
	}
}

// applyWrites performs the setter flags that were actually given on the
// command line, in writeFlags order. Returns whether anything was written.
func applyWrites(ctx context.Context, reg *settings.Registry, provided map[string]bool) (bool, error) {
	wrote := false
	for _, name := range writeFlags {
		if !provided[name] {
			continue
		}
		var err error
		switch name {
		case "dpi":
			err = reg.SetDPI(ctx, opts.DPI)
		case "stage":
			err = reg.SetStage(ctx, opts.Stage)
		case "motion-sync":
			err = setToggle(ctx, reg.SetMotionSync, name, opts.MotionSync)
		case "lod":
			err = reg.SetLiftOffDistance(ctx, opts.LiftOff)
		case "angle-snap":
			err = setToggle(ctx, reg.SetAngleSnapping, name, opts.AngleSnap)
		case "ripple-control":
			err = setToggle(ctx, reg.SetRippleControl, name, opts.Ripple)
		case "debounce":
			err = reg.SetDebounce(ctx, opts.Debounce)
		}
		if err != nil {
			return wrote, err
		}
		log.Printf("Set %s", name)
		wrote = true
	}
	return wrote, nil
}

func setToggle(ctx context.Context, set func(context.Context, bool) error, name, raw string) error {
	on, err := parseOnOff(raw)
	if err != nil {
		return fmt.Errorf("-%s: %w", name, err)
	}
	return set(ctx, on)
}

// parseOnOff accepts the toggle spellings the CLI documents.
func parseOnOff(raw string) (bool, error) {
	switch strings.ToLower(raw) {
	case "on", "true", "1":
		return true, nil
	case "off", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid value %q, want on or off", raw)
	}
}

func printInfo(w io.Writer, sess *session.Session, snap *settings.Snapshot) {
	if sess.Mode() != "" {
		fmt.Fprintf(w, "Connection:       %s", sess.Mode())
		if sess.DongleFirmware() != "" {
			fmt.Fprintf(w, " (dongle fw %s)", sess.DongleFirmware())
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "Firmware:         %s\n", snap.FirmwareVersion)
	if snap.DPIX != snap.DPIY {
		fmt.Fprintf(w, "DPI:              %d x %d (stage %d)\n", snap.DPIX, snap.DPIY, snap.Stage)
	} else {
		fmt.Fprintf(w, "DPI:              %d (stage %d)\n", snap.DPIX, snap.Stage)
	}
	fmt.Fprintf(w, "Motion sync:      %s\n", onOff(snap.MotionSync))
	fmt.Fprintf(w, "Lift-off:         %gmm\n", snap.LiftOffMM)
	fmt.Fprintf(w, "Angle snapping:   %s\n", onOff(snap.AngleSnapping))
	fmt.Fprintf(w, "Ripple control:   %s\n", onOff(snap.RippleControl))
	fmt.Fprintf(w, "Debounce:         %dms\n", snap.DebounceMS)
	fmt.Fprintf(w, "Battery:          %d%%\n", snap.BatteryPercent)
	fmt.Fprintf(w, "Polling rate:     %s\n", snap.Polling)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// buildTrace assembles the session trace logger: a CBOR file logger when
// a path is given, plus console packet dumps at debug level.
func buildTrace(path, level string) (tracelog.Logger, func(), error) {
	var loggers []tracelog.Logger

	closeTrace := func() {}
	if path != "" {
		fl, err := tracelog.NewFileLogger(path)
		if err != nil {
			return nil, nil, err
		}
		closeTrace = func() {
			if err := fl.Close(); err != nil {
				log.Printf("Error closing trace file: %v", err)
			}
		}
		loggers = append(loggers, fl)
	}
	if level == "debug" {
		loggers = append(loggers, tracelog.NewSlogAdapter(slog.Default()))
	}

	switch len(loggers) {
	case 0:
		return tracelog.NoopLogger{}, closeTrace, nil
	case 1:
		return loggers[0], closeTrace, nil
	default:
		return tracelog.NewMultiLogger(loggers...), closeTrace, nil
	}
}

// dumpTrace prints a recorded packet trace in human-readable form.
func dumpTrace(path string) error {
	r, err := tracelog.NewReader(path)
	if err != nil {
		return err
	}
	defer r.Close()

	events, err := r.ReadAll()
	if err != nil {
		return err
	}
	for _, e := range events {
		ts := e.Timestamp.Format("15:04:05.000")
		switch e.Category {
		case tracelog.CategoryPacket:
			if e.Packet == nil {
				fmt.Printf("%s malformed event (packet without payload)\n", ts)
				continue
			}
			name := e.Packet.Command
			if name == "" {
				name = "reply"
			}
			fmt.Printf("%s %-3s %-24s % x\n", ts, e.Direction, name, e.Packet.Data)
		case tracelog.CategoryState:
			if e.State == nil {
				fmt.Printf("%s malformed event (state without payload)\n", ts)
				continue
			}
			fmt.Printf("%s state %s -> %s %s\n", ts, e.State.OldState, e.State.NewState, e.State.Reason)
		case tracelog.CategoryError:
			if e.Error == nil {
				fmt.Printf("%s malformed event (error without payload)\n", ts)
				continue
			}
			fmt.Printf("%s error [%s] %s\n", ts, e.Error.Context, e.Error.Message)
		}
	}
	return nil
}

func setupLogging(level string) {
	log.SetFlags(log.Ltime)

	slogLevel := slog.LevelInfo
	switch level {
	case "debug":
		log.SetFlags(log.Ltime | log.Lmicroseconds)
		slogLevel = slog.LevelDebug
	case "warn":
		slogLevel = slog.LevelWarn
	case "error":
		slogLevel = slog.LevelError
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slogLevel})))
}

// parseHexID parses a USB vendor or product ID written as hex ("0x3710"
// or bare "3710").
func parseHexID(raw string) (uint16, error) {
	raw = strings.TrimPrefix(strings.ToLower(raw), "0x")
	id, err := strconv.ParseUint(raw, 16, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid USB ID %q", raw)
	}
	return uint16(id), nil
}

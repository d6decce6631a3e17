package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/chzyer/readline"

	"github.com/pulsar-tools/pulsarctl/pkg/catalog"
	"github.com/pulsar-tools/pulsarctl/pkg/session"
	"github.com/pulsar-tools/pulsarctl/pkg/settings"
)

const interactiveHelp = `
Pulsar X3 Commands:
  info               - Show all readable settings
  get <setting>      - Query one setting
  set <setting> <v>  - Write one setting
  battery            - Show battery charge
  settings           - List setting names
  help               - Show this help
  quit               - Exit

  Values: toggles take on/off, lod takes 0.7/1/2, the rest integers.
`

// runInteractive is the readline command loop.
func runInteractive(ctx context.Context, sess *session.Session, reg *settings.Registry) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "pulsar> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("failed to create readline: %w", err)
	}
	defer rl.Close()

	fmt.Fprint(rl.Stdout(), interactiveHelp)

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		line, err := rl.Readline()
		if err != nil {
			// EOF or interrupt
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(rl.Stdout(), "Exiting...")
			return nil
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}

		parts := strings.Fields(input)
		cmd := strings.ToLower(parts[0])
		args := parts[1:]

		switch cmd {
		case "help", "?":
			fmt.Fprint(rl.Stdout(), interactiveHelp)

		case "info", "i":
			snap, err := reg.ReadAll(ctx)
			if err != nil {
				fmt.Fprintf(rl.Stdout(), "Error: %v\n", err)
				continue
			}
			printInfo(rl.Stdout(), sess, snap)

		case "get", "g":
			cmdGet(ctx, rl, reg, args)

		case "set", "s":
			cmdSet(ctx, rl, reg, args)

		case "battery", "b":
			pct, err := reg.Battery(ctx)
			if err != nil {
				fmt.Fprintf(rl.Stdout(), "Error: %v\n", err)
				continue
			}
			fmt.Fprintf(rl.Stdout(), "Battery: %d%%\n", pct)

		case "settings":
			cmdSettings(rl)

		case "quit", "exit", "q":
			fmt.Fprintln(rl.Stdout(), "Exiting...")
			return nil

		default:
			fmt.Fprintf(rl.Stdout(), "Unknown command: %s (type 'help' for commands)\n", cmd)
		}
	}
}

func cmdGet(ctx context.Context, rl *readline.Instance, reg *settings.Registry, args []string) {
	if len(args) != 1 {
		fmt.Fprintln(rl.Stdout(), "Usage: get <setting>")
		return
	}
	s, err := catalog.ParseSetting(args[0])
	if err != nil {
		fmt.Fprintf(rl.Stdout(), "Error: %v\n", err)
		return
	}
	v, err := reg.Get(ctx, s)
	if err != nil {
		fmt.Fprintf(rl.Stdout(), "Error: %v\n", err)
		return
	}
	fmt.Fprintf(rl.Stdout(), "%s: %s\n", s, v)
}

func cmdSet(ctx context.Context, rl *readline.Instance, reg *settings.Registry, args []string) {
	if len(args) != 2 {
		fmt.Fprintln(rl.Stdout(), "Usage: set <setting> <value>")
		return
	}
	s, err := catalog.ParseSetting(args[0])
	if err != nil {
		fmt.Fprintf(rl.Stdout(), "Error: %v\n", err)
		return
	}
	v, err := parseSettingValue(s, args[1])
	if err != nil {
		fmt.Fprintf(rl.Stdout(), "Error: %v\n", err)
		return
	}
	if err := reg.Set(ctx, s, v); err != nil {
		fmt.Fprintf(rl.Stdout(), "Error: %v\n", err)
		return
	}
	fmt.Fprintf(rl.Stdout(), "Set %s = %s\n", s, args[1])
}

func cmdSettings(rl *readline.Instance) {
	for _, s := range catalog.Settings() {
		entry, _ := catalog.Lookup(s)
		access := "read-only"
		if entry.Writable() {
			access = "read/write"
		}
		fmt.Fprintf(rl.Stdout(), "  %-18s %s\n", s, access)
	}
}

// parseSettingValue converts CLI text into the value kind the setting
// uses. Domain validation happens later in the registry.
func parseSettingValue(s catalog.Setting, raw string) (settings.Value, error) {
	v := settings.Value{Setting: s}
	switch s {
	case catalog.SettingMotionSync, catalog.SettingAngleSnapping, catalog.SettingRippleControl:
		on, err := parseOnOff(raw)
		if err != nil {
			return settings.Value{}, err
		}
		v.Bool = on
	case catalog.SettingLiftOffDistance:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return settings.Value{}, fmt.Errorf("invalid value %q, want a distance in mm", raw)
		}
		v.Float = f
	default:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return settings.Value{}, fmt.Errorf("invalid value %q, want an integer", raw)
		}
		v.Int = n
		v.Int2 = n
	}
	return v, nil
}

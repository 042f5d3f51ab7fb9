// Package interactive provides the interactive command-line interface
// for vcpanel.
package interactive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/chzyer/readline"

	"github.com/RBSystems/vcpanel-go/pkg/device/sim"
	"github.com/RBSystems/vcpanel-go/pkg/dispatch"
	"github.com/RBSystems/vcpanel-go/pkg/interlock"
	"github.com/RBSystems/vcpanel-go/pkg/panel"
	"github.com/RBSystems/vcpanel-go/pkg/signal"
)

// errQuit ends the command loop.
var errQuit = errors.New("quit")

// Runtime is the running panel the shell operates on. Every access to the
// surface, the driver or the codec goes through Loop.
type Runtime struct {
	Loop     *dispatch.Loop
	Surface  *signal.Panel
	Driver   *panel.Driver
	Codec    *sim.Codec
	Recorder *sim.Recorder
}

// Shell handles interactive mode for vcpanel.
type Shell struct {
	rt  Runtime
	out io.Writer
	rl  *readline.Instance

	joins       panel.Joins
	presetCount int
}

// New creates a new interactive shell.
func New(rt Runtime) (*Shell, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "panel> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}

	s := newShell(rt, rl.Stdout())
	s.rl = rl
	return s, nil
}

func newShell(rt Runtime, out io.Writer) *Shell {
	cfg := rt.Driver.Config()
	return &Shell{
		rt:          rt,
		out:         out,
		joins:       cfg.Joins,
		presetCount: cfg.PresetCount,
	}
}

// Stdout returns a writer that properly coordinates with the readline input.
// Use this for log output to avoid interfering with the command prompt.
func (s *Shell) Stdout() io.Writer {
	return s.rl.Stdout()
}

// Stderr returns a writer that properly coordinates with the readline input.
func (s *Shell) Stderr() io.Writer {
	return s.rl.Stderr()
}

// Run starts the interactive command loop.
func (s *Shell) Run(ctx context.Context, cancel context.CancelFunc) {
	defer s.rl.Close()

	s.printHelp()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line, err := s.rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(s.out, "Exiting...")
			cancel()
			return
		}

		if err := s.Exec(ctx, line); err != nil {
			if errors.Is(err, errQuit) {
				fmt.Fprintln(s.out, "Exiting...")
				cancel()
				return
			}
			fmt.Fprintf(s.out, "Error: %v\n", err)
		}
	}
}

// Exec runs one command line.
func (s *Shell) Exec(ctx context.Context, line string) error {
	input := strings.TrimSpace(line)
	if input == "" {
		return nil
	}

	parts := strings.Fields(input)
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "help", "?":
		s.printHelp()
		return nil

	case "press", "p":
		return s.cmdInput(ctx, args, (*signal.Panel).Press)

	case "release", "r":
		return s.cmdInput(ctx, args, (*signal.Panel).Release)

	case "tap", "t":
		return s.cmdInput(ctx, args, (*signal.Panel).Tap)

	case "hold":
		return s.cmdHold(ctx, args)

	case "row":
		return s.cmdRow(ctx, args)

	case "select":
		return s.cmdSelect(ctx, args)

	case "mode", "m":
		return s.cmdMode(ctx, args)

	case "automode":
		return s.cmdFeedback(ctx, args, s.rt.Codec.SetAutoModeFeedback)

	case "farend":
		return s.cmdFeedback(ctx, args, s.rt.Codec.SetFarEndFeedback)

	case "ready":
		return s.rt.Loop.Do(ctx, s.rt.Codec.SetReady)

	case "show":
		return s.rt.Loop.Do(ctx, s.rt.Driver.Show)

	case "hide":
		return s.rt.Loop.Do(ctx, s.rt.Driver.Hide)

	case "state", "s":
		return s.cmdState(ctx)

	case "controls":
		fmt.Fprintln(s.out, strings.Join(s.joins.ControlNames(s.presetCount), " "))
		return nil

	case "calls", "c":
		s.cmdCalls(args)
		return nil

	case "quit", "exit", "q":
		return errQuit

	default:
		return fmt.Errorf("unknown command %q (type 'help' for commands)", cmd)
	}
}

func (s *Shell) control(args []string) (signal.Join, error) {
	if len(args) < 1 {
		return 0, errors.New("missing control name")
	}
	return s.joins.ByName(args[0], s.presetCount)
}

func (s *Shell) cmdInput(ctx context.Context, args []string, fn func(*signal.Panel, signal.Join) bool) error {
	join, err := s.control(args)
	if err != nil {
		return err
	}
	var ran bool
	if err := s.rt.Loop.Do(ctx, func() { ran = fn(s.rt.Surface, join) }); err != nil {
		return err
	}
	if !ran {
		fmt.Fprintf(s.out, "%s: no action\n", join)
	}
	return nil
}

func (s *Shell) cmdHold(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return errors.New("usage: hold <control> <ms>")
	}
	join, err := s.control(args)
	if err != nil {
		return err
	}
	ms, err := strconv.Atoi(args[1])
	if err != nil || ms < 0 {
		return fmt.Errorf("invalid duration %q", args[1])
	}

	if err := s.rt.Loop.Do(ctx, func() { s.rt.Surface.Press(join) }); err != nil {
		return err
	}
	select {
	case <-time.After(time.Duration(ms) * time.Millisecond):
	case <-ctx.Done():
	}
	// Release even when cancelled so the control is not left pressed.
	return s.rt.Loop.Do(context.WithoutCancel(ctx), func() { s.rt.Surface.Release(join) })
}

func (s *Shell) cmdRow(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return errors.New("usage: row <n> [mode]")
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid row %q", args[0])
	}
	id := s.joins.CameraList
	if len(args) > 1 && strings.EqualFold(args[1], "mode") {
		id = s.joins.ModeList
	}

	var ran bool
	err = s.rt.Loop.Do(ctx, func() {
		if list, ok := s.rt.Surface.List(id); ok {
			ran = list.TapRow(n)
		}
	})
	if err != nil {
		return err
	}
	if !ran {
		fmt.Fprintf(s.out, "row %d: no action\n", n)
	}
	return nil
}

func (s *Shell) cmdSelect(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return errors.New("usage: select <camera-key>")
	}
	var selErr error
	if err := s.rt.Loop.Do(ctx, func() { selErr = s.rt.Codec.SelectCamera(args[0]) }); err != nil {
		return err
	}
	return selErr
}

func (s *Shell) cmdMode(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return errors.New("usage: mode <auto|manual|off>")
	}
	m, err := interlock.ParseMode(args[0])
	if err != nil {
		return err
	}
	var modeErr error
	if err := s.rt.Loop.Do(ctx, func() { modeErr = s.rt.Driver.RequestMode(m) }); err != nil {
		return err
	}
	return modeErr
}

func (s *Shell) cmdFeedback(ctx context.Context, args []string, set func(bool)) error {
	if len(args) < 1 {
		return errors.New("usage: <automode|farend> <on|off>")
	}
	on, err := parseOnOff(args[0])
	if err != nil {
		return err
	}
	return s.rt.Loop.Do(ctx, func() { set(on) })
}

func (s *Shell) cmdState(ctx context.Context) error {
	var b strings.Builder
	err := s.rt.Loop.Do(ctx, func() {
		d := s.rt.Driver
		fmt.Fprintf(&b, "Session:  %s\n", d.SessionID())
		fmt.Fprintf(&b, "Ready:    %t\n", d.Ready())
		fmt.Fprintf(&b, "Visible:  %t\n", d.Visible())
		fmt.Fprintf(&b, "Mode:     %s\n", d.Mode())

		modes := make([]string, 0, 3)
		for _, m := range d.ModeRows() {
			modes = append(modes, m.String())
		}
		fmt.Fprintf(&b, "Modes:    %s\n", strings.Join(modes, " "))

		bound := "-"
		if cam := d.BoundCamera(); cam != nil {
			bound = cam.Key()
		}
		fmt.Fprintf(&b, "Camera:   %s\n", bound)
		fmt.Fprintf(&b, "Cameras:  %s\n", strings.Join(d.CameraKeys(), " "))

		names := d.PresetNames()
		for i, n := range names {
			if n != "" {
				fmt.Fprintf(&b, "Preset %d: %s\n", i+1, n)
			}
		}
	})
	if err != nil {
		return err
	}
	fmt.Fprint(s.out, b.String())
	return nil
}

func (s *Shell) cmdCalls(args []string) {
	if len(args) > 0 && strings.EqualFold(args[0], "reset") {
		s.rt.Recorder.Reset()
		return
	}
	ops := s.rt.Recorder.Ops()
	if len(ops) == 0 {
		fmt.Fprintln(s.out, "No device calls.")
		return
	}
	for _, op := range ops {
		fmt.Fprintln(s.out, op)
	}
}

func parseOnOff(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on", "1", "true":
		return true, nil
	case "off", "0", "false":
		return false, nil
	default:
		return false, fmt.Errorf("expected on or off, got %q", s)
	}
}

func (s *Shell) printHelp() {
	fmt.Fprint(s.out, `
Commands:
  press, p <control>       Press a control (name or join number)
  release, r <control>     Release a control
  tap, t <control>         Press and release a control
  hold <control> <ms>      Hold a control for ms milliseconds
  row <n> [mode]           Tap row n of the camera list (or the mode list)
  select <camera-key>      Select a camera on the codec
  mode, m <auto|manual|off>
                           Request a mode
  automode <on|off>        Simulate codec auto mode feedback
  farend <on|off>          Simulate far end control feedback
  ready                    Mark the codec ready
  show | hide              Show or hide the panel
  state, s                 Show panel state
  controls                 List control names
  calls, c [reset]         Show (or clear) recorded device calls
  help, ?                  Show this help
  quit, q                  Exit

`)
}

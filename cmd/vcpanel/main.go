// Command vcpanel runs a camera control panel against a simulated codec.
//
// The panel core, the simulated codec and every outer surface share one
// dispatch loop. Operator input comes from the interactive shell or from a
// MIDI pad controller; panel events go to the process log and, optionally,
// to a CBOR event log readable with vcpanel-log.
//
// Usage:
//
//	vcpanel [flags]
//
// Flags:
//
//	-config string      Configuration file path
//	-log-level string   Log level: debug, info, warn, error (overrides config)
//	-event-log string   Write panel events to this file (overrides config)
//	-interactive        Enable interactive command mode
//	-advertise          Advertise the panel over mDNS
//	-midi string        MIDI controller port name (overrides config)
//	-show               Show the panel at startup
//
// Examples:
//
//	# Drive the default panel from the shell
//	vcpanel -interactive -show
//
//	# Use a room configuration, log events and advertise the panel
//	vcpanel -config room4.yaml -event-log room4.cbor -advertise
//
//	# Attach a pad controller (requires a build with -tags midi)
//	vcpanel -interactive -midi "Launchpad"
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	ossignal "os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/RBSystems/vcpanel-go/cmd/vcpanel/interactive"
	"github.com/RBSystems/vcpanel-go/pkg/config"
	"github.com/RBSystems/vcpanel-go/pkg/connection"
	"github.com/RBSystems/vcpanel-go/pkg/device/sim"
	"github.com/RBSystems/vcpanel-go/pkg/discovery"
	"github.com/RBSystems/vcpanel-go/pkg/dispatch"
	"github.com/RBSystems/vcpanel-go/pkg/log"
	"github.com/RBSystems/vcpanel-go/pkg/midisurface"
	"github.com/RBSystems/vcpanel-go/pkg/panel"
	"github.com/RBSystems/vcpanel-go/pkg/signal"
	"github.com/RBSystems/vcpanel-go/pkg/version"
)

// midiWatchInterval is how often the attached MIDI port is checked.
const midiWatchInterval = 2 * time.Second

// Flags holds the command line settings.
type Flags struct {
	ConfigFile  string
	LogLevel    string
	EventLog    string
	Interactive bool
	Advertise   bool
	MIDIPort    string
	Show        bool
}

var flags Flags

func init() {
	flag.StringVar(&flags.ConfigFile, "config", "", "Configuration file path")
	flag.StringVar(&flags.LogLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")
	flag.StringVar(&flags.EventLog, "event-log", "", "Write panel events to this file (overrides config)")
	flag.BoolVar(&flags.Interactive, "interactive", false, "Enable interactive command mode")
	flag.BoolVar(&flags.Advertise, "advertise", false, "Advertise the panel over mDNS")
	flag.StringVar(&flags.MIDIPort, "midi", "", "MIDI controller port name (overrides config)")
	flag.BoolVar(&flags.Show, "show", false, "Show the panel at startup")
}

// logOutput lets the log destination move to the interactive shell after
// the logger is created.
type logOutput struct {
	mu sync.Mutex
	w  io.Writer
}

func (o *logOutput) Write(p []byte) (int, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.w.Write(p)
}

func (o *logOutput) set(w io.Writer) {
	o.mu.Lock()
	o.w = w
	o.mu.Unlock()
}

func main() {
	flag.Parse()

	cfg, err := loadConfig()
	if err != nil {
		fatal("Invalid configuration: %v", err)
	}

	out := &logOutput{w: os.Stderr}
	logger := slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: parseLevel(cfg.Logging.Level)}))

	logger.Info("vcpanel starting", "version", version.Current, "config", cfg.String())

	rec := sim.NewRecorder()
	codec, err := cfg.BuildCodec(rec)
	if err != nil {
		fatal("Failed to create codec: %v", err)
	}

	eventLoggers := []log.Logger{log.NewSlogAdapter(logger.With("component", "panel"))}
	var fileLogger *log.FileLogger
	if cfg.Logging.EventLog != "" {
		fileLogger, err = log.NewFileLogger(cfg.Logging.EventLog)
		if err != nil {
			fatal("Failed to open event log: %v", err)
		}
		eventLoggers = append(eventLoggers, fileLogger)
		logger.Info("writing panel events", "path", cfg.Logging.EventLog)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	loop := dispatch.New(0)
	go func() { _ = loop.Run(ctx) }()

	rt := interactive.Runtime{Loop: loop, Codec: codec, Recorder: rec}
	dc := cfg.DriverConfig()
	dc.Clock = loop
	dc.Logger = log.NewMultiLogger(eventLoggers...)
	dc.SessionID = uuid.NewString()

	err = loop.Do(ctx, func() {
		p := signal.NewPanel()
		camList := p.AddList(dc.Joins.CameraList, cfg.Panel.MaxCameraRows)
		modeList := p.AddList(dc.Joins.ModeList, 3)

		d := panel.New(p, camList, modeList, codec, dc)
		p.OnInput(d.LogInput)
		if cfg.Panel.StartVisible || flags.Show {
			d.Show()
		}
		rt.Surface, rt.Driver = p, d
	})
	if err != nil {
		fatal("Failed to create panel: %v", err)
	}
	logger.Info("panel created", "session", dc.SessionID, "name", dc.Name)

	var adv *discovery.MDNSAdvertiser
	if cfg.Discovery.Enabled {
		adv = startAdvertising(ctx, cfg, rt, dc.SessionID, logger)
	}

	var (
		bridge *midisurface.Bridge
		mgr    *connection.Manager
	)
	if cfg.MIDI.Port != "" {
		bridge, mgr, err = startMIDI(ctx, cfg, rt, dc, logger)
		if err != nil {
			logger.Error("MIDI disabled", "error", err)
		}
	}

	loop.AfterFunc(cfg.Codec.ReadyDelay, codec.SetReady)

	if flags.Interactive {
		sh, err := interactive.New(rt)
		if err != nil {
			fatal("Failed to create interactive shell: %v", err)
		}
		// Keep log lines from breaking the prompt.
		out.set(sh.Stdout())
		go sh.Run(ctx, cancel)
	}

	// Wait for shutdown signal or context cancellation
	sigCh := make(chan os.Signal, 1)
	ossignal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("received signal", "signal", sig.String())
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	out.set(os.Stderr)

	if adv != nil {
		adv.Stop()
	}
	if mgr != nil {
		mgr.Close()
	}
	if bridge != nil {
		bridge.Detach()
	}

	closeCtx, closeCancel := context.WithTimeout(context.Background(), time.Second)
	_ = loop.Do(closeCtx, rt.Driver.Close)
	closeCancel()

	cancel()
	<-loop.Done()

	if fileLogger != nil {
		st := fileLogger.Stats()
		if st.Dropped > 0 {
			logger.Warn("event log dropped events", "written", st.Written, "dropped", st.Dropped)
		}
		if err := fileLogger.Close(); err != nil {
			logger.Error("failed to close event log", "error", err)
		}
	}
	logger.Info("goodbye")
}

// loadConfig reads the configuration file, or the defaults, and applies
// the flag overrides.
func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if flags.ConfigFile != "" {
		var err error
		if cfg, err = config.Load(flags.ConfigFile); err != nil {
			return nil, err
		}
	}

	if flags.LogLevel != "" {
		cfg.Logging.Level = flags.LogLevel
	}
	if flags.EventLog != "" {
		cfg.Logging.EventLog = flags.EventLog
	}
	if flags.Advertise {
		cfg.Discovery.Enabled = true
	}
	if flags.MIDIPort != "" {
		cfg.MIDI.Port = flags.MIDIPort
	}
	return cfg, cfg.Validate()
}

func parseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// startAdvertising registers the panel and republishes its TXT records once
// the codec is ready.
func startAdvertising(ctx context.Context, cfg *config.Config, rt interactive.Runtime, sessionID string, logger *slog.Logger) *discovery.MDNSAdvertiser {
	acfg := discovery.DefaultAdvertiserConfig()
	acfg.Interface = cfg.Discovery.Interface
	adv := discovery.NewMDNSAdvertiser(acfg)

	info := discovery.PanelInfo{
		Name:        cfg.Discovery.Instance,
		Version:     version.Current,
		CodecKey:    cfg.Codec.Key,
		CameraCount: len(cfg.Cameras),
		SessionID:   sessionID,
		Port:        cfg.Discovery.Port,
	}
	if err := adv.Advertise(ctx, &info); err != nil {
		logger.Error("failed to advertise panel", "error", err)
		return nil
	}
	logger.Info("advertising panel", "instance", info.Name, "service", discovery.ServiceType, "port", info.Port)

	_ = rt.Loop.Post(func() {
		rt.Codec.OnReady(func() {
			info.Ready = true
			if err := adv.Update(&info); err != nil {
				logger.Warn("failed to update advertisement", "error", err)
			}
		})
	})
	return adv
}

// startMIDI creates the pad bridge and a connection manager that keeps it
// attached to the configured port.
func startMIDI(ctx context.Context, cfg *config.Config, rt interactive.Runtime, dc panel.Config, logger *slog.Logger) (*midisurface.Bridge, *connection.Manager, error) {
	notes, err := midisurface.ResolveNotes(cfg.MIDI.Notes, dc.Joins, dc.PresetCount)
	if err != nil {
		return nil, nil, err
	}

	mlog := logger.With("component", "midi")
	bridge := midisurface.New(rt.Surface, rt.Loop, midisurface.Config{
		Notes:   notes,
		Channel: cfg.MIDI.Channel,
		Logger:  mlog,
	})
	if err := rt.Loop.Do(ctx, func() { rt.Surface.OnFeedback(bridge.Feedback) }); err != nil {
		return nil, nil, err
	}

	var mgr *connection.Manager
	mgr = connection.NewManager(func(ctx context.Context) error {
		return bridge.AttachPort(ctx, cfg.MIDI.Port)
	}, connection.Options{
		OnStateChange: func(oldState, newState connection.State) {
			mlog.Info("controller state", "from", oldState.String(), "to", newState.String())
			if newState == connection.StateAttached {
				go bridge.Watch(ctx, midiWatchInterval, mgr.Lost)
			}
		},
	})
	mgr.Start()

	if err := mgr.Attach(ctx); err != nil {
		mlog.Warn("controller not available, retrying", "port", cfg.MIDI.Port, "error", err)
		mgr.Lost()
	}
	return bridge, mgr, nil
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

// Command vcpanel-log views and analyzes panel event logs.
//
// Event logs are written by vcpanel when started with -event-log or when
// logging.event_log is set in its configuration.
//
// Usage:
//
//	vcpanel-log <command> [flags] <file.plog>
//
// Commands:
//
//	view     View log file in human-readable format
//	export   Export log file to JSON lines or CSV
//	filter   Filter log file and write to new file
//	stats    Show statistics about the log file
//
// Examples:
//
//	# View all events
//	vcpanel-log view panel.plog
//
//	# View only mode transitions
//	vcpanel-log view -category mode panel.plog
//
//	# Events of one camera as CSV
//	vcpanel-log export -format csv -camera front panel.plog
//
//	# Show statistics for one session
//	vcpanel-log stats -session 1b4e28ba panel.plog
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/RBSystems/vcpanel-go/cmd/vcpanel-log/commands"
	"github.com/RBSystems/vcpanel-go/pkg/log"
)

const usage = `vcpanel-log - Panel Event Log Analyzer

Usage:
  vcpanel-log <command> [flags] <file.plog>

Commands:
  view     View log file in human-readable format
  export   Export log file to JSON lines or CSV
  filter   Filter log file and write to new file
  stats    Show statistics about the log file

Use "vcpanel-log <command> -help" for more information about a command.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "view":
		runView(args)
	case "export":
		runExport(args)
	case "filter":
		runFilter(args)
	case "stats":
		runStats(args)
	case "-h", "-help", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}
}

// newFlagSet creates a flag set carrying the shared filter flags.
func newFlagSet(name, synopsis string) (*flag.FlagSet, *commands.FilterOptions) {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "vcpanel-log %s - %s\n\nUsage:\n  vcpanel-log %s [flags] <file.plog>\n\nFlags:\n", name, synopsis, name)
		fs.PrintDefaults()
	}

	opts := &commands.FilterOptions{}
	fs.StringVar(&opts.Session, "session", "", "Filter by session ID")
	fs.StringVar(&opts.Panel, "panel", "", "Filter by panel name")
	fs.StringVar(&opts.Camera, "camera", "", "Filter by selected camera key")
	fs.StringVar(&opts.Layer, "layer", "", "Filter by layer (surface, driver, device)")
	fs.StringVar(&opts.Category, "category", "", "Filter by category (input, binding, mode, selection, preset, state, error)")
	fs.StringVar(&opts.TimeStart, "time-start", "", "Filter by start time (RFC3339)")
	fs.StringVar(&opts.TimeEnd, "time-end", "", "Filter by end time (RFC3339)")
	return fs, opts
}

// parse parses args and returns the log path and filter, exiting on error.
func parse(fs *flag.FlagSet, opts *commands.FilterOptions, args []string) (string, log.Filter) {
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: log file path required")
		fs.Usage()
		os.Exit(1)
	}
	filter, err := opts.Build()
	if err != nil {
		fatal(err)
	}
	return fs.Arg(0), filter
}

func runView(args []string) {
	fs, opts := newFlagSet("view", "View log file in human-readable format")
	path, filter := parse(fs, opts, args)

	if err := commands.RunView(path, filter, os.Stdout); err != nil {
		fatal(err)
	}
}

func runExport(args []string) {
	fs, opts := newFlagSet("export", "Export log file to JSON lines or CSV")
	format := fs.String("format", "jsonl", "Output format (jsonl, csv)")
	output := fs.String("o", "", "Output file (default: stdout)")
	path, filter := parse(fs, opts, args)

	if err := commands.RunExport(path, *format, *output, filter); err != nil {
		fatal(err)
	}
}

func runFilter(args []string) {
	fs, opts := newFlagSet("filter", "Filter log file and write to new file")
	output := fs.String("o", "", "Output file (required)")
	path, filter := parse(fs, opts, args)

	if *output == "" {
		fmt.Fprintln(os.Stderr, "Error: output file (-o) required")
		fs.Usage()
		os.Exit(1)
	}

	count, err := commands.RunFilter(path, *output, filter)
	if err != nil {
		fatal(err)
	}
	fmt.Printf("Filtered %d events to %s\n", count, *output)
}

func runStats(args []string) {
	fs, opts := newFlagSet("stats", "Show statistics about the log file")
	path, filter := parse(fs, opts, args)

	if err := commands.RunStats(path, filter, os.Stdout); err != nil {
		fatal(err)
	}
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

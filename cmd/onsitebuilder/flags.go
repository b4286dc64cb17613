package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	flag "github.com/spf13/pflag"
)

// Sentinel errors for flag parsing.
var (
	ErrNoCommand      = errors.New("no command given")
	ErrUnknownCommand = errors.New("unknown command")
)

// Commands accepted as the first argument.
const (
	cmdPreview   = "preview"
	cmdExport    = "export"
	cmdExportAll = "export-all"
	cmdSummary   = "summary"
)

// cliFlags holds the parsed command and options.
type cliFlags struct {
	command string
	variant string
	listing string
	photo   string
	assets  string
	outDir  string
	workers int
	timeout time.Duration
	verbose bool
	version bool
}

const usageText = `Usage: onsitebuilder <command> [flags]

Commands:
  preview      Render a variant to an HTML file for inspection
  export       Render a variant and capture it as a JPEG
  export-all   Export every variant in parallel
  summary      Build the listing summary document

Flags:
`

// parseFlags parses the command and flags from os.Args-style input.
func parseFlags(args []string) (*cliFlags, error) {
	f := &cliFlags{}

	fs := flag.NewFlagSet("onsitebuilder", flag.ContinueOnError)
	fs.StringVarP(&f.variant, "variant", "t", "", "template variant: social, newsletter or flyer")
	fs.StringVarP(&f.listing, "listing", "l", "", "listing YAML file (required)")
	fs.StringVarP(&f.photo, "photo", "p", "", "property photo file")
	fs.StringVar(&f.assets, "assets", "", "custom asset directory (templates/, images/, brokers.yaml)")
	fs.StringVarP(&f.outDir, "out", "o", ".", "output directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel export workers (0 = auto)")
	fs.DurationVar(&f.timeout, "timeout", 30*time.Second, "per-export timeout")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "verbose progress output")
	fs.BoolVar(&f.version, "version", false, "print version and exit")

	fs.Usage = func() {
		fmt.Fprint(fs.Output(), usageText)
		fs.PrintDefaults()
	}

	if len(args) < 2 {
		return nil, ErrNoCommand
	}

	rest := args[1:]
	if !strings.HasPrefix(rest[0], "-") {
		f.command = rest[0]
		rest = rest[1:]
	}

	if err := fs.Parse(rest); err != nil {
		return nil, err
	}

	if f.version {
		return f, nil
	}

	switch f.command {
	case cmdPreview, cmdExport, cmdExportAll, cmdSummary:
		return f, nil
	case "":
		return nil, ErrNoCommand
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCommand, f.command)
	}
}

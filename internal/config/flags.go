package config

// This file implements CLI flag parsing and help text.
// Flags are grouped into run, display, and utility concerns. Boolean
// override flags (e.g. --no-color) are applied after Parse so Config
// defaults hold unless set.

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/markusdrag/NanoporeToBED-Pipeline/internal/term"
)

// ParseFlags parses args (os.Args[1:] in production) into cfg. On --help or
// --version it prints and exits. On error it returns non-nil (e.g. unknown
// flag, missing positional args).
func ParseFlags(cfg *Config, version string, args []string) error {
	fs := flag.NewFlagSet("nanopore2bed", flag.ContinueOnError)
	fs.Usage = func() { printUsage(fs, version) }

	var over overrideFlags

	defineRunFlags(fs, cfg)
	defineDisplayFlags(fs, cfg, &over)
	defineUtilityFlags(fs, &over)

	if err := fs.Parse(args); err != nil {
		return err
	}

	applyOverrideFlags(cfg, &over)

	if over.showHelp {
		printUsage(fs, version)
		os.Exit(0)
	}
	if over.showVersion {
		fmt.Fprintln(os.Stdout, "nanopore2bed v"+version)
		os.Exit(0)
	}

	if err := parsePositionalArgs(fs, cfg); err != nil {
		return err
	}

	if cfg.ToolsFile != "" {
		p, err := LoadToolProfile(cfg.ToolsFile)
		if err != nil {
			return err
		}
		cfg.Tools = p
	}
	return nil
}

// overrideFlags holds boolean flags that are applied after Parse.
// These either invert a default (noColor -> ColorMode=never) or trigger
// exit (showHelp, showVersion).
type overrideFlags struct {
	forceColor  bool
	noColor     bool
	showVersion bool
	showHelp    bool
}

// defineRunFlags registers -t/--threads, -d/--dry-run and --tools.
func defineRunFlags(fs *flag.FlagSet, cfg *Config) {
	fs.IntVar(&cfg.Threads, "threads", cfg.Threads, "Requested thread count for external tools")
	fs.IntVar(&cfg.Threads, "t", cfg.Threads, "Same as --threads")
	fs.BoolVar(&cfg.DryRun, "dry-run", false, "Preview only; do not invoke external tools")
	fs.BoolVar(&cfg.DryRun, "d", false, "Same as --dry-run")
	fs.StringVar(&cfg.ToolsFile, "tools", "", "YAML file overriding tool names and thresholds")
}

// defineDisplayFlags registers --color, --no-color, verbose, --check.
func defineDisplayFlags(fs *flag.FlagSet, cfg *Config, o *overrideFlags) {
	fs.BoolVar(&o.forceColor, "color", false, "Force colored logs")
	fs.BoolVar(&o.noColor, "no-color", false, "Disable colored logs")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Verbose output")
	fs.BoolVar(&cfg.Verbose, "v", false, "Same as --verbose")
	fs.BoolVar(&cfg.CheckOnly, "check", false, "Run tool diagnostics and exit")
	fs.BoolVar(&cfg.CheckOnly, "c", false, "Same as --check")
}

// defineUtilityFlags registers --version and --help (exit after printing).
func defineUtilityFlags(fs *flag.FlagSet, o *overrideFlags) {
	fs.BoolVar(&o.showVersion, "version", false, "Print version and exit")
	fs.BoolVar(&o.showVersion, "V", false, "Same as --version")
	fs.BoolVar(&o.showHelp, "help", false, "Show this help and exit")
	fs.BoolVar(&o.showHelp, "h", false, "Same as --help")
}

// applyOverrideFlags copies override flag values into cfg.
func applyOverrideFlags(cfg *Config, o *overrideFlags) {
	if o.noColor {
		cfg.ColorMode = term.ColorNever
	} else if o.forceColor {
		cfg.ColorMode = term.ColorAlways
	}
}

// parsePositionalArgs sets InputRoot, OutputRoot and Reference from the three
// positional args when not in CheckOnly mode.
func parsePositionalArgs(fs *flag.FlagSet, cfg *Config) error {
	args := fs.Args()
	if cfg.CheckOnly {
		return nil
	}
	if len(args) != 3 {
		return fmt.Errorf("need exactly input_dir, output_dir and reference.fa")
	}
	cfg.InputRoot = NormalizeDirArg(args[0])
	cfg.OutputRoot = NormalizeDirArg(args[1])
	cfg.Reference = strings.TrimSpace(args[2])
	return nil
}

// printUsage writes the help text to stderr. Column-aligned for readability.
func printUsage(fs *flag.FlagSet, version string) {
	const col1 = 28 // width of "  -x, --long-name <arg>  "
	lines := []struct {
		flags string
		desc  string
	}{
		{"", "nanopore2bed v" + version + " -- nanopore merge/align/modcall/QC batch pipeline"},
		{"", ""},
		{"  nanopore2bed [OPTIONS] <input_dir> <output_dir> <reference.fa>", ""},
		{"", ""},
		{"Run", ""},
		{"  -t, --threads <n>", "Requested thread count (default: 16, clamped to allocation)"},
		{"  -d, --dry-run", "Preview only; create directories but invoke no tools"},
		{"  --tools <file>", "YAML overrides for tool names, thresholds, ceilings"},
		{"", ""},
		{"Display", ""},
		{"  --color", "Force colored logs"},
		{"  --no-color", "Disable colored logs"},
		{"  -v, --verbose", "Verbose output"},
		{"", ""},
		{"Utility", ""},
		{"  -c, --check", "Tool diagnostics (samtools, dorado, modkit, qualimap)"},
		{"  -V, --version", "Print version and exit"},
		{"  -h, --help", "Show this help and exit"},
	}

	for _, l := range lines {
		if l.flags == "" && l.desc == "" {
			fmt.Fprintln(os.Stderr)
			continue
		}
		if l.desc == "" {
			fmt.Fprintln(os.Stderr, l.flags)
			continue
		}
		if l.flags == "" {
			fmt.Fprintln(os.Stderr, l.desc)
			continue
		}
		padding := col1 - len(l.flags)
		if padding < 1 {
			padding = 1
		}
		fmt.Fprintf(os.Stderr, "%s%*s%s\n", l.flags, padding, "", l.desc)
	}
}

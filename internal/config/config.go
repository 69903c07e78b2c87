// Package config parses and validates the command-line configuration.
// Values come from flags first, then FIBSEQ_* environment variables, then
// the defaults below.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/agbru/fibseq/internal/bounded"
	apperrors "github.com/agbru/fibseq/internal/errors"
	"github.com/agbru/fibseq/internal/format"
	"github.com/agbru/fibseq/internal/sequence"
)

// EnvPrefix is the prefix of every environment override.
const EnvPrefix = "FIBSEQ_"

// Defaults.
const (
	DefaultCount    = 10
	DefaultWidth    = "64"
	DefaultElements = "1,2,3,4,5"
	DefaultTimeout  = time.Minute
	DefaultLogLevel = "warn"
)

// Mode is the top-level action selected by the configuration.
type Mode int

// Execution modes.
const (
	ModeSequence Mode = iota
	ModeCompare
	ModeIndex
	ModePrompt
	ModeREPL
	ModeTUI
	ModeServer
)

func (m Mode) String() string {
	switch m {
	case ModeSequence:
		return "sequence"
	case ModeCompare:
		return "compare"
	case ModeIndex:
		return "index"
	case ModePrompt:
		return "prompt"
	case ModeREPL:
		return "interactive"
	case ModeTUI:
		return "tui"
	case ModeServer:
		return "server"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// AppConfig holds the parsed application configuration.
type AppConfig struct {
	// Count is the sequence length parameter.
	Count uint64
	// Width is the integer width name ("8", "u32", "big", ...).
	Width string
	// Compare runs every registered width concurrently.
	Compare bool
	// Separator joins rendered terms.
	Separator string

	// At is the raw index for index mode. HasAt reports whether it was given.
	At    string
	HasAt bool
	// Prompt reads the index from standard input.
	Prompt bool
	// Elements is the comma-separated collection for index lookups.
	Elements string

	// Interactive starts the REPL.
	Interactive bool
	// TUI starts the bubbletea index explorer.
	TUI bool
	// Serve is the listen address of the HTTP API; empty disables it.
	Serve string

	Timeout     time.Duration
	Quiet       bool
	Verbose     bool
	Details     bool
	NoColor     bool
	OutputFile  string
	MetricsFile string
	LogLevel    string

	// Completion names a shell to print a completion script for.
	Completion  string
	ShowVersion bool
}

// Mode derives the execution mode. Validate guarantees at most one applies.
func (c AppConfig) Mode() Mode {
	switch {
	case c.Serve != "":
		return ModeServer
	case c.TUI:
		return ModeTUI
	case c.Interactive:
		return ModeREPL
	case c.Prompt:
		return ModePrompt
	case c.HasAt:
		return ModeIndex
	case c.Compare:
		return ModeCompare
	}
	return ModeSequence
}

// SequenceWidth parses Width.
func (c AppConfig) SequenceWidth() (sequence.Width, error) {
	return sequence.ParseWidth(c.Width)
}

// Collection parses Elements.
func (c AppConfig) Collection() (bounded.Collection[int64], error) {
	return bounded.ParseInt64Collection(c.Elements)
}

// Validate checks option values and mode conflicts.
func (c AppConfig) Validate() error {
	if _, err := c.SequenceWidth(); err != nil {
		return apperrors.NewConfigError("invalid --width: %v", err)
	}
	if _, err := c.Collection(); err != nil {
		return apperrors.NewConfigError("invalid --elements: %v", err)
	}
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("--timeout must be positive, got %s", c.Timeout)
	}
	modes := 0
	for _, on := range []bool{c.Serve != "", c.TUI, c.Interactive, c.Prompt, c.HasAt, c.Compare} {
		if on {
			modes++
		}
	}
	if modes > 1 {
		return apperrors.NewConfigError("--serve, --tui, --interactive, --prompt, --at and --compare are mutually exclusive")
	}
	if c.Quiet && c.Verbose {
		return apperrors.NewConfigError("--quiet and --verbose cannot be combined")
	}
	return nil
}

// ParseConfig parses args (without the program name) into an AppConfig,
// applies environment overrides and validates the result. Usage and parse
// errors are written to errWriter. --help yields flag.ErrHelp.
func ParseConfig(programName string, args []string, errWriter io.Writer) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errWriter)

	cfg := AppConfig{}
	fs.Uint64Var(&cfg.Count, "n", DefaultCount, "Sequence length parameter.")
	fs.Uint64Var(&cfg.Count, "count", DefaultCount, "Sequence length parameter (alias for -n).")
	fs.StringVar(&cfg.Width, "width", DefaultWidth, "Integer width: 8, 16, 32, 64 or big.")
	fs.BoolVar(&cfg.Compare, "compare", false, "Generate with every width concurrently and compare.")
	fs.StringVar(&cfg.Separator, "sep", format.DefaultSeparator, "Separator between rendered terms.")
	fs.StringVar(&cfg.At, "at", "", "Look up this index in the collection.")
	fs.BoolVar(&cfg.Prompt, "prompt", false, "Read the index to look up from standard input.")
	fs.StringVar(&cfg.Elements, "elements", DefaultElements, "Comma-separated collection for index lookups.")
	fs.BoolVar(&cfg.Interactive, "i", false, "Start the interactive REPL.")
	fs.BoolVar(&cfg.Interactive, "interactive", false, "Start the interactive REPL (alias for -i).")
	fs.BoolVar(&cfg.TUI, "tui", false, "Start the terminal index explorer.")
	fs.StringVar(&cfg.Serve, "serve", "", "Serve the HTTP API on this address (e.g. :8080).")
	fs.DurationVar(&cfg.Timeout, "timeout", DefaultTimeout, "Maximum run time.")
	fs.BoolVar(&cfg.Quiet, "q", false, "Print only the result.")
	fs.BoolVar(&cfg.Quiet, "quiet", false, "Print only the result (alias for -q).")
	fs.BoolVar(&cfg.Verbose, "v", false, "Print every term even for long sequences.")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Print every term (alias for -v).")
	fs.BoolVar(&cfg.Details, "d", false, "Print timing and memory details.")
	fs.BoolVar(&cfg.Details, "details", false, "Print timing and memory details (alias for -d).")
	fs.BoolVar(&cfg.NoColor, "no-color", false, "Disable colored output.")
	fs.StringVar(&cfg.OutputFile, "o", "", "Write the sequence to this file.")
	fs.StringVar(&cfg.OutputFile, "output", "", "Write the sequence to this file (alias for -o).")
	fs.StringVar(&cfg.MetricsFile, "metrics-file", "", "Write Prometheus metrics to this file on exit.")
	fs.StringVar(&cfg.LogLevel, "log-level", DefaultLogLevel, "Log level: debug, info, warn, error.")
	fs.StringVar(&cfg.Completion, "completion", "", "Print a shell completion script (bash, zsh, fish).")
	fs.BoolVar(&cfg.ShowVersion, "version", false, "Print version information and exit.")
	fs.BoolVar(&cfg.ShowVersion, "V", false, "Print version information and exit (alias for --version).")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return AppConfig{}, err
		}
		return AppConfig{}, apperrors.NewConfigError("%v", err)
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(errWriter, "unexpected arguments: %v\n", fs.Args())
		return AppConfig{}, apperrors.NewConfigError("unexpected arguments: %v", fs.Args())
	}
	cfg.HasAt = isFlagSet(fs, "at")

	applyEnvOverrides(&cfg, fs)

	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(errWriter, err)
		return AppConfig{}, err
	}
	return cfg, nil
}

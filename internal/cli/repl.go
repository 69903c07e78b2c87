package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/agbru/fibseq/internal/bounded"
	"github.com/agbru/fibseq/internal/config"
	"github.com/agbru/fibseq/internal/format"
	"github.com/agbru/fibseq/internal/metrics"
	"github.com/agbru/fibseq/internal/orchestration"
	"github.com/agbru/fibseq/internal/sequence"
	"github.com/agbru/fibseq/internal/ui"
)

// REPLConfig holds the initial settings of an interactive session.
type REPLConfig struct {
	// Width is the initial generator name or width spelling.
	Width     string
	Separator string
	// Timeout bounds each command.
	Timeout    time.Duration
	Collection bounded.Collection[int64]
}

// REPL is an interactive session over the sequence generators and the
// index accessor.
type REPL struct {
	config     REPLConfig
	factory    sequence.Factory
	current    sequence.Generator
	collection bounded.Collection[int64]
	recorder   *metrics.Recorder
	in         io.Reader
	out        io.Writer
}

// NewREPL creates a session. An unknown cfg.Width falls back to the
// default width; a zero timeout to config.DefaultTimeout.
func NewREPL(factory sequence.Factory, cfg REPLConfig) *REPL {
	current, err := factory.Get(cfg.Width)
	if err != nil {
		current = factory.MustGet(sequence.DefaultWidth.String())
	}
	if cfg.Collection.Len() == 0 {
		cfg.Collection = bounded.DefaultCollection()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = config.DefaultTimeout
	}
	return &REPL{
		config:     cfg,
		factory:    factory,
		current:    current,
		collection: cfg.Collection,
		in:         os.Stdin,
		out:        os.Stdout,
	}
}

// SetInput sets a custom input reader (useful for testing).
func (r *REPL) SetInput(in io.Reader) { r.in = in }

// SetOutput sets a custom output writer (useful for testing).
func (r *REPL) SetOutput(out io.Writer) { r.out = out }

// SetRecorder records every command's generations and lookups.
func (r *REPL) SetRecorder(rec *metrics.Recorder) { r.recorder = rec }

// Start reads commands until exit, EOF or ctx cancellation.
func (r *REPL) Start(ctx context.Context) {
	r.printBanner()
	r.printHelp()
	fmt.Fprintln(r.out)

	reader := bufio.NewReader(r.in)
	for {
		if ctx.Err() != nil {
			fmt.Fprintln(r.out, "\nGoodbye!")
			return
		}
		fmt.Fprint(r.out, ui.ColorGreen()+"fibseq> "+ui.ColorReset())

		input, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			fmt.Fprintf(r.out, "%sRead error: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
			return
		}

		input = strings.TrimSpace(input)
		if input != "" && !r.processCommand(ctx, input) {
			return
		}
		if err != nil {
			fmt.Fprintln(r.out, "\nGoodbye!")
			return
		}
	}
}

func (r *REPL) printBanner() {
	fmt.Fprintf(r.out, "\n%s╔════════════════════════════════════════════╗%s\n", ui.ColorCyan(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s║%s   %sFibonacci Sequence - Interactive Mode%s    %s║%s\n",
		ui.ColorCyan(), ui.ColorReset(), ui.ColorBold(), ui.ColorReset(), ui.ColorCyan(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s╚════════════════════════════════════════════╝%s\n\n", ui.ColorCyan(), ui.ColorReset())
}

func (r *REPL) printHelp() {
	fmt.Fprintf(r.out, "%sAvailable commands:%s\n", ui.ColorBold(), ui.ColorReset())
	for _, c := range [][2]string{
		{"seq <n>", "Generate the sequence for count n"},
		{"width <w>", "Change width (" + strings.Join(r.factory.List(), ", ") + ")"},
		{"widths", "List widths and their largest count"},
		{"compare <n>", "Generate with every width and compare"},
		{"at <i>", "Look up index i in the collection"},
		{"elements <csv>", "Replace the collection"},
		{"show", "Display the current settings"},
		{"help", "Display this help"},
		{"exit", "Leave interactive mode"},
	} {
		fmt.Fprintf(r.out, "  %s%-15s%s - %s\n", ui.ColorYellow(), c[0], ui.ColorReset(), c[1])
	}
	fmt.Fprintf(r.out, "A bare number is the same as %sseq <n>%s.\n", ui.ColorYellow(), ui.ColorReset())
}

// processCommand runs one command line. It returns false on exit.
func (r *REPL) processCommand(ctx context.Context, input string) bool {
	parts := strings.Fields(input)
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "seq", "s":
		if n, ok := r.countArg("seq", args); ok {
			r.generate(ctx, n)
		}
	case "width", "w":
		r.cmdWidth(args)
	case "widths", "ls":
		r.cmdWidths()
	case "compare", "cmp":
		if n, ok := r.countArg("compare", args); ok {
			r.compare(ctx, n)
		}
	case "at":
		r.cmdAt(ctx, args)
	case "elements", "el":
		r.cmdElements(args)
	case "show", "st":
		r.cmdShow()
	case "help", "h", "?":
		r.printHelp()
	case "exit", "quit", "q":
		fmt.Fprintf(r.out, "%sGoodbye!%s\n", ui.ColorGreen(), ui.ColorReset())
		return false
	default:
		if n, err := strconv.ParseUint(cmd, 10, 64); err == nil {
			r.generate(ctx, n)
			return true
		}
		fmt.Fprintf(r.out, "%sUnknown command: %s%s\n", ui.ColorRed(), cmd, ui.ColorReset())
		fmt.Fprintf(r.out, "Type %shelp%s to see available commands.\n", ui.ColorYellow(), ui.ColorReset())
	}
	return true
}

func (r *REPL) countArg(cmd string, args []string) (uint64, bool) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "%sUsage: %s <n>%s\n", ui.ColorRed(), cmd, ui.ColorReset())
		return 0, false
	}
	n, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		fmt.Fprintf(r.out, "%sInvalid count: %s%s\n", ui.ColorRed(), args[0], ui.ColorReset())
		return 0, false
	}
	return n, true
}

func (r *REPL) generate(ctx context.Context, n uint64) {
	ctx, cancel := context.WithTimeout(ctx, r.config.Timeout)
	defer cancel()

	start := time.Now()
	seq, err := r.current.Generate(ctx, n, nil)
	duration := time.Since(start)
	if err != nil {
		r.recorder.ObserveGeneration(r.current.Name(), 0, duration, err)
		fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return
	}
	r.recorder.ObserveGeneration(r.current.Name(), len(seq.Terms), duration, nil)

	fmt.Fprintln(r.out, FormatSequenceLine(seq, r.config.Separator, false))
	fmt.Fprintf(r.out, "%s%d terms in %s (%s)%s\n", ui.ColorCyan(), len(seq.Terms),
		format.FormatExecutionDuration(duration), r.current.Name(), ui.ColorReset())
}

func (r *REPL) compare(ctx context.Context, n uint64) {
	ctx, cancel := context.WithTimeout(ctx, r.config.Timeout)
	defer cancel()

	gens := r.factory.GetAll()
	results := orchestration.ExecuteGenerations(ctx, gens, n, orchestration.NullProgressReporter{}, io.Discard)

	fmt.Fprintf(r.out, "\n%sComparison for count %d:%s\n", ui.ColorBold(), n, ui.ColorReset())
	var reference *sequence.Sequence
	for _, res := range results {
		if res.Err != nil {
			r.recorder.ObserveGeneration(res.Name, 0, res.Duration, res.Err)
			fmt.Fprintf(r.out, "  %s%-6s%s %sError - %v%s\n",
				ui.ColorYellow(), res.Name, ui.ColorReset(), ui.ColorRed(), res.Err, ui.ColorReset())
			continue
		}
		r.recorder.ObserveGeneration(res.Name, len(res.Sequence.Terms), res.Duration, nil)
		if reference == nil {
			reference = res.Sequence
		}
		status := ui.ColorGreen() + "✓" + ui.ColorReset()
		if !res.Sequence.Equal(reference) {
			status = ui.ColorRed() + "✗ INCONSISTENT" + ui.ColorReset()
		}
		fmt.Fprintf(r.out, "  %s%-6s%s %s%10s%s %s\n",
			ui.ColorYellow(), res.Name, ui.ColorReset(),
			ui.ColorCyan(), format.FormatExecutionDuration(res.Duration), ui.ColorReset(), status)
	}
	fmt.Fprintln(r.out)
}

func (r *REPL) cmdWidth(args []string) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "%sUsage: width <w>%s\n", ui.ColorRed(), ui.ColorReset())
		return
	}
	gen, err := r.factory.Get(strings.ToLower(args[0]))
	if err != nil {
		fmt.Fprintf(r.out, "%sUnknown width: %s%s\n", ui.ColorRed(), args[0], ui.ColorReset())
		fmt.Fprintf(r.out, "Available widths: %s\n", strings.Join(r.factory.List(), ", "))
		return
	}
	r.current = gen
	fmt.Fprintf(r.out, "Width changed to: %s%s%s\n", ui.ColorGreen(), gen.Name(), ui.ColorReset())
}

func (r *REPL) cmdWidths() {
	fmt.Fprintf(r.out, "\n%sAvailable widths:%s\n", ui.ColorBold(), ui.ColorReset())
	for _, gen := range r.factory.GetAll() {
		marker := "  "
		if gen.Name() == r.current.Name() {
			marker = ui.ColorGreen() + "► " + ui.ColorReset()
		}
		limit := "unbounded"
		if gen.Width().Fixed() {
			limit = fmt.Sprintf("count ≤ %d", sequence.MaxCount(gen.Width()))
		}
		fmt.Fprintf(r.out, "%s%s%-6s%s %s\n", marker, ui.ColorYellow(), gen.Name(), ui.ColorReset(), limit)
	}
	fmt.Fprintln(r.out)
}

func (r *REPL) cmdAt(ctx context.Context, args []string) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "%sUsage: at <i>%s\n", ui.ColorRed(), ui.ColorReset())
		return
	}
	attempt := bounded.Resolve(ctx, r.collection, args[0])
	r.recorder.ObserveAccess(attempt.Err)
	if attempt.Err != nil {
		fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorRed(), attempt.Err, ui.ColorReset())
	}
	DisplayAccess(r.out, attempt, true)
}

func (r *REPL) cmdElements(args []string) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "%sUsage: elements <csv>%s\n", ui.ColorRed(), ui.ColorReset())
		return
	}
	c, err := bounded.ParseInt64Collection(strings.Join(args, ""))
	if err != nil {
		fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return
	}
	r.collection = c
	fmt.Fprintf(r.out, "Collection set to: %s%s%s\n", ui.ColorGreen(), c, ui.ColorReset())
}

func (r *REPL) cmdShow() {
	fmt.Fprintf(r.out, "\n%sCurrent settings:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  Width:      %s%s%s\n", ui.ColorCyan(), r.current.Name(), ui.ColorReset())
	fmt.Fprintf(r.out, "  Separator:  %s%q%s\n", ui.ColorCyan(), r.separator(), ui.ColorReset())
	fmt.Fprintf(r.out, "  Collection: %s%s%s\n", ui.ColorCyan(), r.collection, ui.ColorReset())
	fmt.Fprintf(r.out, "  Timeout:    %s%s%s\n", ui.ColorCyan(), r.config.Timeout, ui.ColorReset())
	fmt.Fprintln(r.out)
}

func (r *REPL) separator() string {
	if r.config.Separator == "" {
		return format.DefaultSeparator
	}
	return r.config.Separator
}

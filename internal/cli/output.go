// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* functions write formatted output to an [io.Writer].
//     They handle presentation logic and colorization.
//     Examples: [DisplaySequence], [DisplayAccess], [DisplayProgress].
//
//   - Format* functions return a formatted string without performing I/O.
//     Examples: [FormatSequenceLine], [FormatProgressSuffix].
//
//   - Write* functions write data to files on the filesystem.
//     Examples: [WriteSequenceToFile].

package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	apperrors "github.com/agbru/fibseq/internal/errors"
	"github.com/agbru/fibseq/internal/format"
	"github.com/agbru/fibseq/internal/sequence"
	"github.com/agbru/fibseq/internal/ui"
)

// OutputConfig holds the output options of a sequence run.
type OutputConfig struct {
	// OutputFile is the path to save the sequence to; empty disables it.
	OutputFile string
	Quiet      bool
	// Verbose prints every term even for long sequences.
	Verbose   bool
	Separator string
}

// FormatSequenceLine renders seq on one line. Long sequences keep only
// their edges unless verbose is set.
func FormatSequenceLine(seq *sequence.Sequence, sep string, verbose bool) string {
	terms := seq.Strings()
	if !verbose && len(terms) > SequenceTruncationLimit {
		terms = format.TruncateSequence(terms, SequenceDisplayEdges)
	}
	return format.FormatSequence(terms, sep)
}

// DisplayQuietSequence prints the full sequence and nothing else.
func DisplayQuietSequence(out io.Writer, seq *sequence.Sequence, sep string) {
	fmt.Fprintln(out, format.FormatSequence(seq.Strings(), sep))
}

// DisplaySequence prints a generated sequence with a short summary line.
// With details it also reports the last term's size.
func DisplaySequence(out io.Writer, seq *sequence.Sequence, duration time.Duration, sep string, verbose, details bool) {
	fmt.Fprintf(out, "\n%s--- Sequence ---%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(out, "Count %s%d%s, width %s%s%s: %s%d%s terms in %s%s%s.\n",
		ui.ColorMagenta(), seq.Count, ui.ColorReset(),
		ui.ColorCyan(), seq.Width, ui.ColorReset(),
		ui.ColorGreen(), len(seq.Terms), ui.ColorReset(),
		ui.ColorYellow(), format.FormatExecutionDuration(duration), ui.ColorReset())
	fmt.Fprintln(out, FormatSequenceLine(seq, sep, verbose))

	if !verbose && len(seq.Terms) > SequenceTruncationLimit {
		fmt.Fprintf(out, "%s(Tip: use -v to print all %d terms.)%s\n", ui.ColorCyan(), len(seq.Terms), ui.ColorReset())
	}
	if details {
		last := seq.Last()
		digits := last.String()
		fmt.Fprintf(out, "\n%sDetails:%s\n", ui.ColorBold(), ui.ColorReset())
		fmt.Fprintf(out, "  Generated terms: %s%d%s\n", ui.ColorCyan(), len(seq.Generated()), ui.ColorReset())
		fmt.Fprintf(out, "  Last term:       %s%s%s\n", ui.ColorGreen(), format.FormatNumberString(digits), ui.ColorReset())
		fmt.Fprintf(out, "  Digits:          %s%d%s\n", ui.ColorCyan(), len(digits), ui.ColorReset())
		fmt.Fprintf(out, "  Bits:            %s%d%s\n", ui.ColorCyan(), last.BitLen(), ui.ColorReset())
		if seq.Width.Fixed() {
			fmt.Fprintf(out, "  Largest count for %s: %s%d%s\n", seq.Width, ui.ColorCyan(), sequence.MaxCount(seq.Width), ui.ColorReset())
		}
	}
}

// DisplaySequenceWithConfig prints seq according to cfg and writes it to
// cfg.OutputFile when set.
func DisplaySequenceWithConfig(out io.Writer, seq *sequence.Sequence, duration time.Duration, generator string, details bool, cfg OutputConfig) error {
	if cfg.Quiet {
		DisplayQuietSequence(out, seq, cfg.Separator)
	} else {
		DisplaySequence(out, seq, duration, cfg.Separator, cfg.Verbose, details)
	}

	if cfg.OutputFile == "" {
		return nil
	}
	if err := WriteSequenceToFile(seq, duration, generator, cfg); err != nil {
		return err
	}
	if !cfg.Quiet {
		DisplaySaved(out, cfg.OutputFile)
	}
	return nil
}

// DisplaySaved confirms that the sequence was written to path.
func DisplaySaved(out io.Writer, path string) {
	fmt.Fprintf(out, "\n%s✓ Sequence saved to: %s%s%s\n",
		ui.ColorGreen(), ui.ColorCyan(), path, ui.ColorReset())
}

// WriteSequenceToFile writes a commented header and the full sequence to
// cfg.OutputFile, creating parent directories as needed.
func WriteSequenceToFile(seq *sequence.Sequence, duration time.Duration, generator string, cfg OutputConfig) error {
	if cfg.OutputFile == "" {
		return nil
	}

	if dir := filepath.Dir(cfg.OutputFile); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return apperrors.WrapError(err, "failed to create directory")
		}
	}

	file, err := os.Create(cfg.OutputFile)
	if err != nil {
		return apperrors.WrapError(err, "failed to create output file")
	}
	defer file.Close()

	fmt.Fprintf(file, "# Fibonacci Sequence\n")
	fmt.Fprintf(file, "# Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(file, "# Generator: %s\n", generator)
	fmt.Fprintf(file, "# Duration: %s\n", duration)
	fmt.Fprintf(file, "# Count: %d\n", seq.Count)
	fmt.Fprintf(file, "# Terms: %d\n", len(seq.Terms))
	fmt.Fprintf(file, "\n")
	if _, err := fmt.Fprintln(file, format.FormatSequence(seq.Strings(), cfg.Separator)); err != nil {
		return apperrors.WrapError(err, "failed to write output file")
	}
	return file.Close()
}

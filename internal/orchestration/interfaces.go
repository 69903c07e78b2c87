//go:generate mockgen -source=interfaces.go -destination=mocks/mock_interfaces.go -package=mocks

package orchestration

import (
	"io"
	"sync"
	"time"

	"github.com/agbru/fibseq/internal/sequence"
)

// GenerationResult is the outcome of one generator run.
type GenerationResult struct {
	// Name is the generator name, e.g. "u32".
	Name string
	// Sequence is nil when Err is set.
	Sequence *sequence.Sequence
	// Duration is the wall time of the run.
	Duration time.Duration
	Err      error
}

// PresentationOptions configures how a result is printed.
type PresentationOptions struct {
	Count     uint64
	Separator string
	Verbose   bool
	Details   bool
}

// ProgressReporter displays progress while generators run. DisplayProgress
// runs in its own goroutine, must call wg.Done when it returns, and must
// keep reading until progressChan is closed.
type ProgressReporter interface {
	DisplayProgress(wg *sync.WaitGroup, progressChan <-chan sequence.ProgressUpdate, numGenerators int, out io.Writer)
}

// ProgressReporterFunc adapts a function to ProgressReporter.
type ProgressReporterFunc func(wg *sync.WaitGroup, progressChan <-chan sequence.ProgressUpdate, numGenerators int, out io.Writer)

// DisplayProgress calls f.
func (f ProgressReporterFunc) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan sequence.ProgressUpdate, numGenerators int, out io.Writer) {
	f(wg, progressChan, numGenerators, out)
}

// NullProgressReporter drains the channel silently. Used in quiet mode.
type NullProgressReporter struct{}

// DisplayProgress drains progressChan.
func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan sequence.ProgressUpdate, _ int, _ io.Writer) {
	defer wg.Done()
	DrainChannel(progressChan)
}

// ResultPresenter prints comparison tables and final sequences.
type ResultPresenter interface {
	PresentComparisonTable(results []GenerationResult, out io.Writer)
	PresentResult(result GenerationResult, opts PresentationOptions, out io.Writer)
}

// DurationFormatter formats durations for display.
type DurationFormatter interface {
	FormatDuration(d time.Duration) string
}

// ErrorHandler prints a failure and returns its exit code.
type ErrorHandler interface {
	HandleError(err error, duration time.Duration, out io.Writer) int
}

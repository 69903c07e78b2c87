//go:generate mockgen -source=ui.go -destination=mocks/mock_ui.go -package=mocks

package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/fibseq/internal/format"
	"github.com/agbru/fibseq/internal/orchestration"
	"github.com/agbru/fibseq/internal/sequence"
)

const (
	// SequenceTruncationLimit is the number of terms above which console
	// output is shortened unless --verbose is given.
	SequenceTruncationLimit = 40
	// SequenceDisplayEdges is the number of terms kept at each end of a
	// shortened sequence.
	SequenceDisplayEdges = 8
	// ProgressRefreshRate is the spinner and progress bar refresh interval.
	ProgressRefreshRate = 200 * time.Millisecond
	// ProgressBarWidth is the width in characters of the progress bar.
	ProgressBarWidth = 40
)

// Spinner abstracts the terminal spinner so DisplayProgress can be tested
// without a terminal.
type Spinner interface {
	Start()
	Stop()
	// UpdateSuffix sets the text shown after the spinner glyph.
	UpdateSuffix(suffix string)
}

// realSpinner adapts spinner.Spinner to Spinner.
type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() { rs.s.Start() }

func (rs *realSpinner) Stop() { rs.s.Stop() }

func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Lock()
	rs.s.Suffix = suffix
	rs.s.Unlock()
}

var newSpinner = func(options ...spinner.Option) Spinner {
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)
	return &realSpinner{s}
}

// DisplayProgress shows a spinner with an aggregated progress bar until
// progressChan is closed. It calls wg.Done on return.
func DisplayProgress(wg *sync.WaitGroup, progressChan <-chan sequence.ProgressUpdate, numGenerators int, out io.Writer) {
	defer wg.Done()
	agg := orchestration.NewProgressAggregator(numGenerators)
	if agg == nil {
		orchestration.DrainChannel(progressChan)
		return
	}

	label := "Generating"
	if agg.IsMultiGenerator() {
		label = fmt.Sprintf("Generating with %d widths", numGenerators)
	}

	s := newSpinner(spinner.WithWriter(out))
	s.Start()
	defer s.Stop()

	ticker := time.NewTicker(ProgressRefreshRate)
	defer ticker.Stop()

	for {
		select {
		case update, ok := <-progressChan:
			if !ok {
				s.UpdateSuffix(FormatProgressSuffix(label, 1, 0))
				return
			}
			agg.Update(update)
		case <-ticker.C:
			s.UpdateSuffix(FormatProgressSuffix(label, agg.CalculateAverage(), agg.GetETA()))
		}
	}
}

// FormatProgressSuffix renders the text shown after the spinner.
func FormatProgressSuffix(label string, progress float64, eta time.Duration) string {
	return fmt.Sprintf(" %s %s", label, format.FormatProgressBarWithETA(progress, eta, ProgressBarWidth))
}

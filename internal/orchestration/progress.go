package orchestration

import (
	"time"

	"github.com/agbru/fibseq/internal/format"
	"github.com/agbru/fibseq/internal/sequence"
)

// ProgressAggregator folds per-generator updates into an average and ETA.
type ProgressAggregator struct {
	state         *format.ProgressWithETA
	numGenerators int
}

// NewProgressAggregator returns nil when numGenerators <= 0.
func NewProgressAggregator(numGenerators int) *ProgressAggregator {
	if numGenerators <= 0 {
		return nil
	}
	return &ProgressAggregator{
		state:         format.NewProgressWithETA(numGenerators),
		numGenerators: numGenerators,
	}
}

// AggregatedProgress is the view after one update.
type AggregatedProgress struct {
	GeneratorIndex  int
	Value           float64
	AverageProgress float64
	ETA             time.Duration
}

// Update records one update.
func (a *ProgressAggregator) Update(update sequence.ProgressUpdate) AggregatedProgress {
	avg, eta := a.state.UpdateWithETA(update.GeneratorIndex, update.Value)
	return AggregatedProgress{
		GeneratorIndex:  update.GeneratorIndex,
		Value:           update.Value,
		AverageProgress: avg,
		ETA:             eta,
	}
}

// CalculateAverage returns the current average without updating.
func (a *ProgressAggregator) CalculateAverage() float64 {
	return a.state.CalculateAverage()
}

// GetETA returns the current estimate without updating.
func (a *ProgressAggregator) GetETA() time.Duration {
	return a.state.GetETA()
}

// NumGenerators returns the number of tracked generators.
func (a *ProgressAggregator) NumGenerators() int {
	return a.numGenerators
}

// IsMultiGenerator reports whether more than one generator is tracked.
func (a *ProgressAggregator) IsMultiGenerator() bool {
	return a.numGenerators > 1
}

// DrainChannel discards updates until progressChan is closed.
func DrainChannel(progressChan <-chan sequence.ProgressUpdate) {
	for range progressChan {
	}
}

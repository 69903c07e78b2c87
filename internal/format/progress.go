package format

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// maxETA caps estimates produced from very slow early progress.
const maxETA = 24 * time.Hour

// ProgressState aggregates the progress of concurrently running generators.
type ProgressState struct {
	progresses    []float64
	numGenerators int
}

// NewProgressState tracks numGenerators independent progress values.
func NewProgressState(numGenerators int) *ProgressState {
	return &ProgressState{
		progresses:    make([]float64, numGenerators),
		numGenerators: numGenerators,
	}
}

// Update records value for the generator at index. Out-of-range indices are ignored.
func (ps *ProgressState) Update(index int, value float64) {
	if index >= 0 && index < len(ps.progresses) {
		ps.progresses[index] = value
	}
}

// CalculateAverage returns the mean progress, clamped to [0, 1].
func (ps *ProgressState) CalculateAverage() float64 {
	if ps.numGenerators == 0 {
		return 0
	}
	var total float64
	for _, p := range ps.progresses {
		total += p
	}
	return clamp01(total / float64(ps.numGenerators))
}

// ProgressWithETA extends ProgressState with a rate-based time estimate.
type ProgressWithETA struct {
	*ProgressState
	mu            sync.Mutex
	numGenerators int
	startTime     time.Time
	progressRate  float64 // progress per second
}

// NewProgressWithETA starts the clock for numGenerators generators.
func NewProgressWithETA(numGenerators int) *ProgressWithETA {
	return &ProgressWithETA{
		ProgressState: NewProgressState(numGenerators),
		numGenerators: numGenerators,
		startTime:     time.Now(),
	}
}

// UpdateWithETA records a value and returns the new average and estimate.
func (p *ProgressWithETA) UpdateWithETA(index int, value float64) (float64, time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Update(index, value)
	avg := p.CalculateAverage()
	if elapsed := time.Since(p.startTime).Seconds(); elapsed > 0 {
		p.progressRate = avg / elapsed
	}
	return avg, p.etaLocked(avg)
}

// GetETA returns the current estimate.
func (p *ProgressWithETA) GetETA() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.etaLocked(p.CalculateAverage())
}

func (p *ProgressWithETA) etaLocked(avg float64) time.Duration {
	if p.progressRate <= 0 || avg >= 1 {
		return 0
	}
	eta := time.Duration((1 - avg) / p.progressRate * float64(time.Second))
	if eta > maxETA || eta < 0 {
		return maxETA
	}
	return eta
}

// ProgressBar renders a bar of the given length using block characters.
func ProgressBar(progress float64, length int) string {
	progress = clamp01(progress)
	count := int(progress * float64(length))
	var b strings.Builder
	b.Grow(length * 3)
	for i := 0; i < length; i++ {
		if i < count {
			b.WriteRune('█')
		} else {
			b.WriteRune('░')
		}
	}
	return b.String()
}

// FormatProgressBarWithETA renders "[bar]  42.0% ETA: 3s".
func FormatProgressBarWithETA(progress float64, eta time.Duration, width int) string {
	return fmt.Sprintf("[%s] %5.1f%% ETA: %s", ProgressBar(progress, width), clamp01(progress)*100, FormatETA(eta))
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

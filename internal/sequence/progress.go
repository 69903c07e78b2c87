package sequence

// ProgressFunc receives the completed fraction of a generation, in [0, 1].
type ProgressFunc func(progress float64)

// ProgressUpdate is a progress report sent by a generator running alongside
// others. GeneratorIndex identifies the sender.
type ProgressUpdate struct {
	GeneratorIndex int
	Value          float64
}

// ProgressReportThreshold is the minimum progress change between two reports.
const ProgressReportThreshold = 0.01

// progressTracker throttles reports so a long run sends at most ~100 updates.
type progressTracker struct {
	total        uint64
	lastReported float64
	report       ProgressFunc
}

func newProgressTracker(count uint64, report ProgressFunc) *progressTracker {
	if report == nil {
		report = func(float64) {}
	}
	return &progressTracker{total: GeneratedLen(count), report: report}
}

func (p *progressTracker) update(done uint64) {
	if p.total == 0 {
		return
	}
	value := float64(done) / float64(p.total)
	if value-p.lastReported >= ProgressReportThreshold || done == p.total {
		p.lastReported = value
		p.report(value)
	}
}

package metrics

import "runtime"

// MemorySnapshot is a point-in-time reading of runtime memory statistics.
type MemorySnapshot struct {
	HeapAlloc    uint64
	TotalAlloc   uint64
	Sys          uint64
	NumGC        uint32
	PauseTotalNs uint64
}

// MemoryDelta is the difference between two snapshots taken around a run.
type MemoryDelta struct {
	// PeakHeap is the larger of the two heap readings.
	PeakHeap     uint64
	Allocated    uint64
	GCCycles     uint32
	PauseTotalNs uint64
}

// MemoryCollector reads runtime memory statistics.
type MemoryCollector struct{}

// NewMemoryCollector returns a collector.
func NewMemoryCollector() *MemoryCollector {
	return &MemoryCollector{}
}

// Snapshot reads the current statistics.
func (mc *MemoryCollector) Snapshot() MemorySnapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return MemorySnapshot{
		HeapAlloc:    m.HeapAlloc,
		TotalAlloc:   m.TotalAlloc,
		Sys:          m.Sys,
		NumGC:        m.NumGC,
		PauseTotalNs: m.PauseTotalNs,
	}
}

// Since returns what happened between before and s.
func (s MemorySnapshot) Since(before MemorySnapshot) MemoryDelta {
	return MemoryDelta{
		PeakHeap:     max(s.HeapAlloc, before.HeapAlloc),
		Allocated:    s.TotalAlloc - before.TotalAlloc,
		GCCycles:     s.NumGC - before.NumGC,
		PauseTotalNs: s.PauseTotalNs - before.PauseTotalNs,
	}
}

package metrics

import (
	"runtime"
	"testing"
)

var sink []byte

func TestMemoryCollectorSnapshot(t *testing.T) {
	t.Parallel()

	snap := NewMemoryCollector().Snapshot()
	if snap.HeapAlloc == 0 {
		t.Error("HeapAlloc should be > 0")
	}
	if snap.Sys == 0 {
		t.Error("Sys should be > 0")
	}
}

func TestMemorySnapshotSince(t *testing.T) {
	mc := NewMemoryCollector()
	before := mc.Snapshot()

	sink = make([]byte, 1<<20)
	runtime.GC()

	delta := mc.Snapshot().Since(before)
	if delta.Allocated < 1<<20 {
		t.Errorf("Allocated = %d, want at least 1 MiB", delta.Allocated)
	}
	if delta.GCCycles == 0 {
		t.Error("GCCycles should count the forced collection")
	}
	if delta.PeakHeap < before.HeapAlloc {
		t.Error("PeakHeap should not be below the starting heap")
	}
}

func TestMemorySnapshotSinceFields(t *testing.T) {
	t.Parallel()
	before := MemorySnapshot{HeapAlloc: 100, TotalAlloc: 1000, NumGC: 2, PauseTotalNs: 50}
	after := MemorySnapshot{HeapAlloc: 80, TotalAlloc: 1500, NumGC: 5, PauseTotalNs: 90}

	got := after.Since(before)
	want := MemoryDelta{PeakHeap: 100, Allocated: 500, GCCycles: 3, PauseTotalNs: 40}
	if got != want {
		t.Errorf("Since = %+v, want %+v", got, want)
	}
}

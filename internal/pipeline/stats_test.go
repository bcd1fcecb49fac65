package pipeline

import (
	"testing"
	"time"
)

func TestImportStatsSnapshotPercentiles(t *testing.T) {
	stats := NewImportStats(time.Hour)
	stats.Record(100, OutcomeCompleted)
	stats.Record(200, OutcomeCompleted)
	stats.Record(300, OutcomeDegraded)
	stats.Record(400, OutcomeCompleted)
	stats.Record(500, OutcomeFailed)

	snap := stats.Snapshot()
	if snap.Count != 5 {
		t.Fatalf("expected count=5, got %d", snap.Count)
	}
	if snap.Completed != 3 || snap.Degraded != 1 || snap.Failed != 1 {
		t.Fatalf("unexpected outcome split: %+v", snap)
	}
	if snap.MinMs != 100 {
		t.Fatalf("expected min=100, got %d", snap.MinMs)
	}
	if snap.MaxMs != 500 {
		t.Fatalf("expected max=500, got %d", snap.MaxMs)
	}
	if snap.AvgMs != 300 {
		t.Fatalf("expected avg=300, got %f", snap.AvgMs)
	}
	if snap.P50Ms != 300 {
		t.Fatalf("expected p50=300, got %f", snap.P50Ms)
	}
	if snap.P95Ms != 480 {
		t.Fatalf("expected p95=480, got %f", snap.P95Ms)
	}
	if snap.P99Ms != 496 {
		t.Fatalf("expected p99=496, got %f", snap.P99Ms)
	}
}

func TestImportStatsPrunesExpiredSamples(t *testing.T) {
	stats := NewImportStats(10 * time.Millisecond)
	stats.Record(100, OutcomeFailed)
	time.Sleep(25 * time.Millisecond)

	snap := stats.Snapshot()
	if snap.Count != 0 || snap.Failed != 0 {
		t.Fatalf("expected empty snapshot after prune, got %+v", snap)
	}

	stats.Record(200, OutcomeCompleted)
	snap = stats.Snapshot()
	if snap.Count != 1 {
		t.Fatalf("expected count=1 for fresh sample, got %d", snap.Count)
	}
	if snap.MinMs != 200 || snap.MaxMs != 200 {
		t.Fatalf("expected min=max=200, got min=%d max=%d", snap.MinMs, snap.MaxMs)
	}
}

func TestImportStatsRecordClampsNegativeDuration(t *testing.T) {
	stats := NewImportStats(time.Hour)
	stats.Record(-10, OutcomeCompleted)
	snap := stats.Snapshot()
	if snap.Count != 1 {
		t.Fatalf("expected count=1, got %d", snap.Count)
	}
	if snap.MinMs != 0 || snap.MaxMs != 0 {
		t.Fatalf("expected clamped duration=0, got min=%d max=%d", snap.MinMs, snap.MaxMs)
	}
}

func TestPercentileSingleValue(t *testing.T) {
	if got := percentile([]int64{42}, 95); got != 42 {
		t.Errorf("expected 42, got %f", got)
	}
	if got := percentile(nil, 50); got != 0 {
		t.Errorf("expected 0 for no samples, got %f", got)
	}
}

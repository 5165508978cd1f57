package usage

import (
	"path/filepath"
	"testing"
	"time"

	"docwriter/internal/llm"
	"docwriter/internal/state"
)

func newTestTracker(t *testing.T, sharedPool bool) *Tracker {
	t.Helper()
	s, err := state.Open(filepath.Join(t.TempDir(), "state.json"))
	if err != nil {
		t.Fatalf("state.Open: %v", err)
	}
	return NewTracker(s, sharedPool)
}

func TestRecordUseIncrementsCounters(t *testing.T) {
	t.Parallel()

	tr := newTestTracker(t, true)
	for i := 0; i < 3; i++ {
		if err := tr.CheckQuota(); err != nil {
			t.Fatalf("CheckQuota: %v", err)
		}
		if err := tr.RecordUse(); err != nil {
			t.Fatalf("RecordUse: %v", err)
		}
	}

	stats := tr.Snapshot()
	if stats.RequestsToday != 3 {
		t.Fatalf("RequestsToday=%d, want 3", stats.RequestsToday)
	}
	if stats.RequestsTotal != 3 {
		t.Fatalf("RequestsTotal=%d, want 3", stats.RequestsTotal)
	}
	if stats.DailyLimit != SharedPoolDailyLimit {
		t.Fatalf("DailyLimit=%d, want %d", stats.DailyLimit, SharedPoolDailyLimit)
	}
}

func TestSharedPoolQuotaExhaustion(t *testing.T) {
	t.Parallel()

	tr := newTestTracker(t, true)
	for i := 0; i < SharedPoolDailyLimit; i++ {
		if err := tr.RecordUse(); err != nil {
			t.Fatalf("RecordUse: %v", err)
		}
	}

	err := tr.CheckQuota()
	if err == nil {
		t.Fatal("expected a quota error at the daily limit")
	}
	if !llm.IsQuotaError(err) {
		t.Fatalf("error %v is not a QuotaError", err)
	}
}

func TestPersonalKeyIsNotLimited(t *testing.T) {
	t.Parallel()

	tr := newTestTracker(t, false)
	for i := 0; i < SharedPoolDailyLimit+5; i++ {
		if err := tr.RecordUse(); err != nil {
			t.Fatalf("RecordUse: %v", err)
		}
	}
	if err := tr.CheckQuota(); err != nil {
		t.Fatalf("CheckQuota with a personal key: %v", err)
	}
	if got := tr.Snapshot().RequestsTotal; got != SharedPoolDailyLimit+5 {
		t.Fatalf("RequestsTotal=%d, want %d", got, SharedPoolDailyLimit+5)
	}
}

func TestDailyRollover(t *testing.T) {
	t.Parallel()

	tr := newTestTracker(t, true)
	day1 := time.Date(2026, 8, 25, 23, 0, 0, 0, time.Local)
	tr.now = func() time.Time { return day1 }

	for i := 0; i < SharedPoolDailyLimit; i++ {
		if err := tr.RecordUse(); err != nil {
			t.Fatalf("RecordUse: %v", err)
		}
	}
	if err := tr.CheckQuota(); err == nil {
		t.Fatal("expected exhaustion on day one")
	}

	// Crossing midnight resets the daily counter but not the total.
	tr.now = func() time.Time { return day1.Add(2 * time.Hour) }
	if err := tr.CheckQuota(); err != nil {
		t.Fatalf("CheckQuota after rollover: %v", err)
	}

	stats := tr.Snapshot()
	if stats.RequestsToday != 0 {
		t.Fatalf("RequestsToday=%d after rollover, want 0", stats.RequestsToday)
	}
	if stats.RequestsTotal != SharedPoolDailyLimit {
		t.Fatalf("RequestsTotal=%d after rollover, want %d", stats.RequestsTotal, SharedPoolDailyLimit)
	}

	// Repeated checks within the same day must not reset again.
	if err := tr.RecordUse(); err != nil {
		t.Fatalf("RecordUse: %v", err)
	}
	if got := tr.Snapshot().RequestsToday; got != 1 {
		t.Fatalf("RequestsToday=%d, want 1", got)
	}
}

// Package usage tracks the daily request quota in persisted state. Counters
// are keyed by the local calendar date and roll over exactly once when the
// stored date no longer matches the current one.
package usage

import (
	"sync"
	"time"

	"docwriter/internal/llm"
	"docwriter/internal/models"
	"docwriter/internal/state"
)

// SharedPoolDailyLimit is the number of shared-pool requests allowed per
// calendar day.
const SharedPoolDailyLimit = 20

const dateFormat = "2006-01-02"

const (
	keyUsageDate   = "usage_date"
	keyRequestsDay = "requests_today"
	keyRequestsAll = "requests_total"
)

// Tracker enforces and records the daily quota. All read-modify-write access
// goes through one mutex so concurrent callers cannot lose increments.
type Tracker struct {
	mu         sync.Mutex
	store      *state.Store
	sharedPool bool
	limit      int
	now        func() time.Time
}

// NewTracker creates a tracker over the given store. The daily limit applies
// only in shared-pool mode; a personal key is not limited locally.
func NewTracker(store *state.Store, sharedPool bool) *Tracker {
	return &Tracker{
		store:      store,
		sharedPool: sharedPool,
		limit:      SharedPoolDailyLimit,
		now:        time.Now,
	}
}

// CheckQuota fails with a QuotaError when today's shared-pool budget is
// already spent. It must run before any external call is attempted.
func (t *Tracker) CheckQuota() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	today := t.rolloverLocked()
	if t.sharedPool && today >= t.limit {
		return &llm.QuotaError{}
	}
	return nil
}

// RecordUse counts one successful generation call: +1 today, +1 total.
func (t *Tracker) RecordUse() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	today := t.rolloverLocked()
	if err := t.store.Set(keyRequestsDay, today+1); err != nil {
		return err
	}
	return t.store.Set(keyRequestsAll, t.store.GetInt(keyRequestsAll, 0)+1)
}

// Snapshot returns the current counters without mutating them.
func (t *Tracker) Snapshot() models.UsageStats {
	t.mu.Lock()
	defer t.mu.Unlock()

	return models.UsageStats{
		RequestsToday:   t.rolloverLocked(),
		RequestsTotal:   t.store.GetInt(keyRequestsAll, 0),
		DailyLimit:      t.limit,
		UsingSharedPool: t.sharedPool,
	}
}

// rolloverLocked resets the daily counter when the stored date differs from
// the current local date, and returns today's count.
func (t *Tracker) rolloverLocked() int {
	today := t.now().Format(dateFormat)
	if stored := t.store.GetString(keyUsageDate, ""); stored != today {
		_ = t.store.Set(keyUsageDate, today)
		_ = t.store.Set(keyRequestsDay, 0)
		return 0
	}
	return t.store.GetInt(keyRequestsDay, 0)
}

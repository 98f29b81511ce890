package locktable

import "sync"

// Strategy selects which lock flavor guards a bucket and whether entries
// carry their own write lock.
type Strategy uint8

const (
	// Exclusive guards each bucket with a single exclusive lock. Lookups on
	// the same bucket serialize even though they never mutate.
	Exclusive Strategy = iota

	// SharedExclusive guards each bucket with a read-write lock. Any number
	// of lookups on one bucket proceed in parallel; inserts take the lock in
	// write mode for the whole check-then-act sequence.
	SharedExclusive

	// TwoLevel combines a read-write bucket lock with an exclusive lock per
	// entry, so updates to distinct existing keys in one bucket only contend
	// on the shared bucket lock. Inserting a brand-new key escalates to the
	// write lock and re-scans the chain (double-checked insert).
	TwoLevel
)

var AllStrategies = []Strategy{Exclusive, SharedExclusive, TwoLevel}

func (s Strategy) String() string {
	switch s {
	case Exclusive:
		return "exclusive"
	case SharedExclusive:
		return "rwlock"
	case TwoLevel:
		return "twolevel"
	}
	return "unknown"
}

// bucketLock is the locking capability a strategy hands each bucket. RLock
// is the strategy's read-side acquisition; for Exclusive it aliases the
// write side, so readers serialize with everything else.
type bucketLock interface {
	Lock()
	Unlock()
	RLock()
	RUnlock()
}

type exclusiveLock struct {
	mu sync.Mutex
}

func (l *exclusiveLock) Lock()    { l.mu.Lock() }
func (l *exclusiveLock) Unlock()  { l.mu.Unlock() }
func (l *exclusiveLock) RLock()   { l.mu.Lock() }
func (l *exclusiveLock) RUnlock() { l.mu.Unlock() }

type sharedExclusiveLock struct {
	sync.RWMutex
}

func (s Strategy) newBucketLock() bucketLock {
	if s == Exclusive {
		return new(exclusiveLock)
	}
	return new(sharedExclusiveLock)
}

// fineGrained reports whether entries carry their own lock, enabling the
// optimistic shared-mode insert path.
func (s Strategy) fineGrained() bool {
	return s == TwoLevel
}

// newEntryLock returns the per-entry lock for a freshly linked entry, or nil
// when the strategy protects values at bucket granularity.
func (s Strategy) newEntryLock() *sync.Mutex {
	if s == TwoLevel {
		return new(sync.Mutex)
	}
	return nil
}

package locktable

import (
	"sync"

	"golang.org/x/sys/cpu"
)

// Entry is one node of a bucket chain. The bucket owns its entries; a value
// handed out by Lookup is a copy with no link back into the chain.
type Entry[K comparable, V any] struct {
	key  K
	val  V
	next *Entry[K, V]
	mu   *sync.Mutex // non-nil only under TwoLevel
}

// Bucket is a singly-linked chain of entries reached through one hash slot.
// The trailing pad keeps neighbouring bucket locks off a shared cache line,
// so lock contention measured per strategy is not polluted by false sharing.
type Bucket[K comparable, V any] struct {
	lock bucketLock
	head *Entry[K, V]
	_    cpu.CacheLinePad
}

// findLocked scans the chain for key. The caller must hold the bucket lock
// in at least read mode.
func (b *Bucket[K, V]) findLocked(key K) *Entry[K, V] {
	for e := b.head; e != nil; e = e.next {
		if e.key == key {
			return e
		}
	}
	return nil
}

// lenLocked counts the chain. The caller must hold the bucket lock.
func (b *Bucket[K, V]) lenLocked() int {
	n := 0
	for e := b.head; e != nil; e = e.next {
		n++
	}
	return n
}

// Table is a fixed-capacity chained hash table. Bucket count and locking
// strategy are fixed at construction; the table never rehashes.
type Table[K comparable, V any] struct {
	cfg     Config
	buckets []*Bucket[K, V]
	slot    func(key K) uint32
}

// New returns a Table with uint64 keys slotted by key mod Config.NumBuckets.
func New[V any](cfg Config) *Table[uint64, V] {
	if cfg.NumBuckets <= 0 {
		cfg.NumBuckets = defaultNumBuckets
	}
	n := uint64(cfg.NumBuckets)
	return NewWithSlotFunc[uint64, V](cfg, func(key uint64) uint32 {
		return uint32(key % n)
	})
}

// NewWithSlotFunc creates a Table with a custom slot function. The slot
// value is reduced modulo the bucket count.
func NewWithSlotFunc[K comparable, V any](cfg Config, slot func(key K) uint32) *Table[K, V] {
	if cfg.NumBuckets <= 0 {
		cfg.NumBuckets = defaultNumBuckets
	}
	t := &Table[K, V]{
		cfg:     cfg,
		buckets: make([]*Bucket[K, V], cfg.NumBuckets),
		slot:    slot,
	}
	for i := range t.buckets {
		t.buckets[i] = &Bucket[K, V]{lock: cfg.Strategy.newBucketLock()}
	}
	return t
}

func (t *Table[K, V]) bucket(key K) *Bucket[K, V] {
	return t.buckets[uint(t.slot(key))%uint(len(t.buckets))]
}

func (t *Table[K, V]) Strategy() Strategy {
	return t.cfg.Strategy
}

// Insert is an idempotent upsert: it updates the value in place when key is
// already chained, and splices a new entry at the chain head otherwise.
func (t *Table[K, V]) Insert(key K, val V) {
	b := t.bucket(key)

	if t.cfg.Strategy.fineGrained() {
		// Optimistic pass: the common case is updating an existing key,
		// which needs only the shared bucket lock plus the entry lock.
		b.lock.RLock()
		if e := b.findLocked(key); e != nil {
			e.mu.Lock()
			e.val = val
			e.mu.Unlock()
			b.lock.RUnlock()
			return
		}
		b.lock.RUnlock()
	}

	b.lock.Lock()
	// The chain is scanned again under the write lock: another writer may
	// have inserted key between the shared scan and this acquisition.
	if e := b.findLocked(key); e != nil {
		if e.mu != nil {
			e.mu.Lock()
			e.val = val
			e.mu.Unlock()
		} else {
			e.val = val
		}
		b.lock.Unlock()
		return
	}
	b.head = &Entry[K, V]{
		key:  key,
		val:  val,
		next: b.head,
		mu:   t.cfg.Strategy.newEntryLock(),
	}
	b.lock.Unlock()
}

// Lookup returns a copy of the value stored under key. The copy belongs to
// the caller; mutating it never changes table state. An absent key is a
// normal outcome, not an error.
func (t *Table[K, V]) Lookup(key K) (V, bool) {
	b := t.bucket(key)
	b.lock.RLock()
	e := b.findLocked(key)
	if e == nil {
		b.lock.RUnlock()
		var zero V
		return zero, false
	}
	var val V
	if e.mu != nil {
		// Pairs with the fast insert path: the copy can never observe a
		// half-written value.
		e.mu.Lock()
		val = e.val
		e.mu.Unlock()
	} else {
		val = e.val
	}
	b.lock.RUnlock()
	return val, true
}

func (t *Table[K, V]) Has(key K) bool {
	_, ok := t.Lookup(key)
	return ok
}

// Size counts every chained entry, locking one bucket at a time. The result
// is exact only while no writer runs.
func (t *Table[K, V]) Size() int {
	n := 0
	for _, b := range t.buckets {
		b.lock.RLock()
		n += b.lenLocked()
		b.lock.RUnlock()
	}
	return n
}

// Close unlinks every chain under its bucket's exclusive lock. All workers
// must have been joined before calling: Close provides no synchronization
// against in-flight operations. The table is unusable afterwards; any later
// operation panics, and closing twice panics.
func (t *Table[K, V]) Close() {
	if t.buckets == nil {
		panic("locktable: close of closed table")
	}
	for _, b := range t.buckets {
		b.lock.Lock()
		for e := b.head; e != nil; {
			next := e.next
			e.next = nil
			e = next
		}
		b.head = nil
		b.lock.Unlock()
	}
	t.buckets = nil
}

package locktable

import (
	"errors"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/bwmarrin/snowflake"

	"locktable/util"
)

var ErrInvalidWorkerCount = errors.New("worker count must be a positive integer")

// WorkerResult is one lookup worker's tally. Lost counts keys that were
// expected in the table but came back not-found.
type WorkerResult struct {
	Worker int
	Hits   int64
	Lost   int64
}

// Workload drives a fixed key universe through one insert phase and one
// lookup phase. Keys are partitioned across workers by stride, so each
// worker reads disjoint positions of the shared read-only key slice and no
// synchronization beyond the table's own locks is needed.
type Workload struct {
	id      snowflake.ID
	cfg     Config
	keys    []uint64
	workers int

	putLat *LatencyRecorder
	getLat *LatencyRecorder
}

// NewWorkload builds a workload over a fresh pseudo-random key universe
// seeded from the run ID, so every run exercises a different universe.
func NewWorkload(cfg Config, workers int) (*Workload, error) {
	id, err := newRunID()
	if err != nil {
		return nil, err
	}
	if cfg.NumKeys <= 0 {
		cfg.NumKeys = defaultNumKeys
	}
	return NewWorkloadWithKeys(cfg, workers, util.RandomKeys(cfg.NumKeys, uint64(id.Int64())))
}

// NewWorkloadWithKeys builds a workload over a caller-supplied key universe,
// which lets several runs (one per strategy) share identical input. Keys
// must be distinct for lost-key counting to mean anything.
func NewWorkloadWithKeys(cfg Config, workers int, keys []uint64) (*Workload, error) {
	if workers <= 0 {
		return nil, ErrInvalidWorkerCount
	}
	id, err := newRunID()
	if err != nil {
		return nil, err
	}
	cfg.NumKeys = len(keys)
	w := &Workload{
		id:      id,
		cfg:     cfg,
		keys:    keys,
		workers: workers,
	}
	if cfg.SampleInterval > 0 {
		w.putLat = NewLatencyRecorder()
		w.getLat = NewLatencyRecorder()
	}
	return w, nil
}

var (
	runIDOnce sync.Once
	runIDNode *snowflake.Node
	runIDErr  error
)

// newRunID tags a workload run. One process-wide node keeps IDs unique even
// for workloads created within the same millisecond.
func newRunID() (snowflake.ID, error) {
	runIDOnce.Do(func() {
		runIDNode, runIDErr = snowflake.NewNode(rand.Int63() % 1023)
	})
	if runIDErr != nil {
		return 0, runIDErr
	}
	return runIDNode.Generate(), nil
}

func (w *Workload) ID() snowflake.ID {
	return w.id
}

func (w *Workload) Keys() []uint64 {
	return w.keys
}

// RunPut inserts the whole key universe, each key's value being its writer's
// id. It returns only after every worker finished; the join is the barrier
// required before any lookup phase starts.
func (w *Workload) RunPut(t *Table[uint64, int64]) time.Duration {
	start := time.Now()
	wg := new(sync.WaitGroup)
	wg.Add(w.workers)
	for i := 0; i < w.workers; i++ {
		go func(worker int) {
			defer wg.Done()
			val := int64(worker)
			for n, k := 0, worker; k < len(w.keys); k += w.workers {
				if w.putLat != nil {
					n++
					if n == w.cfg.SampleInterval {
						n = 0
						opStart := time.Now()
						t.Insert(w.keys[k], val)
						w.putLat.Record(time.Since(opStart))
						continue
					}
				}
				t.Insert(w.keys[k], val)
			}
		}(i)
	}
	wg.Wait()
	return time.Since(start)
}

// RunGet looks up every key with the same stride partitioning and collects
// each worker's tally over a results channel. Results are ordered by worker.
func (w *Workload) RunGet(t *Table[uint64, int64]) ([]WorkerResult, time.Duration) {
	start := time.Now()
	results := make(chan WorkerResult, w.workers)
	wg := new(sync.WaitGroup)
	wg.Add(w.workers)
	for i := 0; i < w.workers; i++ {
		go func(worker int) {
			defer wg.Done()
			res := WorkerResult{Worker: worker}
			for n, k := 0, worker; k < len(w.keys); k += w.workers {
				var found bool
				if w.getLat != nil {
					n++
					if n == w.cfg.SampleInterval {
						n = 0
						opStart := time.Now()
						_, found = t.Lookup(w.keys[k])
						w.getLat.Record(time.Since(opStart))
					} else {
						_, found = t.Lookup(w.keys[k])
					}
				} else {
					_, found = t.Lookup(w.keys[k])
				}
				if found {
					res.Hits++
				} else {
					res.Lost++
				}
			}
			results <- res
		}(i)
	}
	wg.Wait()
	close(results)

	out := make([]WorkerResult, 0, w.workers)
	for res := range results {
		out = append(out, res)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Worker < out[j].Worker })
	return out, time.Since(start)
}

// Run executes both phases against a fresh table built for the configured
// strategy, tears the table down, and returns the run's report.
func (w *Workload) Run() *Report {
	t := New[int64](w.cfg)
	defer t.Close()

	putElapsed := w.RunPut(t)
	results, getElapsed := w.RunGet(t)

	return &Report{
		RunID:      w.id.String(),
		Strategy:   w.cfg.Strategy,
		NumKeys:    len(w.keys),
		NumBuckets: t.cfg.NumBuckets,
		Workers:    w.workers,
		PutElapsed: putElapsed,
		GetElapsed: getElapsed,
		Results:    results,
		PutLatency: w.putLat,
		GetLatency: w.getLat,
	}
}

package locktable

import (
	"sync"
	"time"

	"github.com/gansidui/skiplist"
)

// latencySample orders samples by duration; equal durations are tie-broken
// by insertion sequence so they stay distinct skiplist nodes.
type latencySample struct {
	d   time.Duration
	seq uint64
}

func (s *latencySample) Less(other interface{}) bool {
	o := other.(*latencySample)
	if s.d != o.d {
		return s.d < o.d
	}
	return s.seq < o.seq
}

// LatencyRecorder keeps sampled operation latencies rank-ordered, so a
// percentile is a rank query instead of a sort at report time. Safe for
// concurrent use by the workload's workers.
type LatencyRecorder struct {
	mu  sync.Mutex
	skl *skiplist.SkipList
	seq uint64
}

func NewLatencyRecorder() *LatencyRecorder {
	return &LatencyRecorder{skl: skiplist.New()}
}

func (r *LatencyRecorder) Record(d time.Duration) {
	r.mu.Lock()
	r.seq++
	r.skl.Insert(&latencySample{d: d, seq: r.seq})
	r.mu.Unlock()
}

func (r *LatencyRecorder) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.skl.Len()
}

// Percentile returns the p-quantile (0 < p <= 1) of the recorded samples,
// or 0 when nothing was recorded.
func (r *LatencyRecorder) Percentile(p float64) time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := r.skl.Len()
	if n == 0 {
		return 0
	}
	rank := int(float64(n) * p)
	if rank < 1 {
		rank = 1
	}
	if rank > n {
		rank = n
	}
	e := r.skl.GetElementByRank(rank)
	if e == nil {
		return 0
	}
	return e.Value.(*latencySample).d
}

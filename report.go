package locktable

import (
	"fmt"
	"io"
	"time"
)

// Report is the diagnostic output of one workload run under one strategy.
// The line format is human-oriented, not a machine-readable contract.
type Report struct {
	RunID      string
	Strategy   Strategy
	NumKeys    int
	NumBuckets int
	Workers    int

	PutElapsed time.Duration
	GetElapsed time.Duration
	Results    []WorkerResult

	PutLatency *LatencyRecorder // nil when sampling is off
	GetLatency *LatencyRecorder
}

func (r *Report) TotalLost() int64 {
	var lost int64
	for _, res := range r.Results {
		lost += res.Lost
	}
	return lost
}

func (r *Report) TotalHits() int64 {
	var hits int64
	for _, res := range r.Results {
		hits += res.Hits
	}
	return hits
}

func (r *Report) Print(w io.Writer) {
	fmt.Fprintf(w, "[run %s] strategy=%s workers=%d buckets=%d\n",
		r.RunID, r.Strategy, r.Workers, r.NumBuckets)
	fmt.Fprintf(w, "[main] Inserted %d keys in %f seconds\n",
		r.NumKeys, r.PutElapsed.Seconds())
	for _, res := range r.Results {
		fmt.Fprintf(w, "[thread %d] %d keys lost!\n", res.Worker, res.Lost)
	}
	fmt.Fprintf(w, "[main] Retrieved %d/%d keys in %f seconds\n",
		r.TotalHits(), r.NumKeys, r.GetElapsed.Seconds())

	printLatency(w, "insert", r.PutLatency)
	printLatency(w, "lookup", r.GetLatency)
}

func printLatency(w io.Writer, phase string, rec *LatencyRecorder) {
	if rec == nil || rec.Count() == 0 {
		return
	}
	fmt.Fprintf(w, "[main] %s latency p50=%v p95=%v p99=%v (%d samples)\n",
		phase, rec.Percentile(0.50), rec.Percentile(0.95), rec.Percentile(0.99), rec.Count())
}

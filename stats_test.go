package locktable

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLatencyRecorder_Percentile(t *testing.T) {
	rec := NewLatencyRecorder()
	for i := 1; i <= 100; i++ {
		rec.Record(time.Duration(i) * time.Millisecond)
	}

	tests := []struct {
		name string
		p    float64
		want time.Duration
	}{
		{name: "p50", p: 0.50, want: 50 * time.Millisecond},
		{name: "p95", p: 0.95, want: 95 * time.Millisecond},
		{name: "p99", p: 0.99, want: 99 * time.Millisecond},
		{name: "max", p: 1.0, want: 100 * time.Millisecond},
		{name: "min clamp", p: 0.001, want: 1 * time.Millisecond},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, rec.Percentile(tt.p))
		})
	}
	assert.Equal(t, 100, rec.Count())
}

func TestLatencyRecorder_Empty(t *testing.T) {
	rec := NewLatencyRecorder()
	assert.Equal(t, 0, rec.Count())
	assert.Equal(t, time.Duration(0), rec.Percentile(0.99))
}

func TestLatencyRecorder_DuplicateDurations(t *testing.T) {
	rec := NewLatencyRecorder()
	for i := 0; i < 10; i++ {
		rec.Record(time.Millisecond)
	}
	assert.Equal(t, 10, rec.Count())
	assert.Equal(t, time.Millisecond, rec.Percentile(0.5))
}

func TestLatencyRecorder_ConcurrentRecord(t *testing.T) {
	rec := NewLatencyRecorder()
	const workers = 8
	const perWorker = 200

	wg := new(sync.WaitGroup)
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(worker int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				rec.Record(time.Duration(worker*perWorker+i) * time.Microsecond)
			}
		}(w)
	}
	wg.Wait()

	assert.Equal(t, workers*perWorker, rec.Count())
	assert.Equal(t, time.Duration(workers*perWorker-1)*time.Microsecond, rec.Percentile(1.0))
}

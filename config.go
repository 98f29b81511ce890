package locktable

const (
	defaultNumBuckets     = 5
	defaultNumKeys        = 100000
	defaultSampleInterval = 0
)

type Config struct {
	NumBuckets int      // Fixed bucket count. The table never resizes.
	NumKeys    int      // Size of the workload's key universe.
	Strategy   Strategy // Locking discipline guarding the buckets.

	// SampleInterval makes each worker record the latency of every Nth
	// operation. 0 disables latency sampling entirely.
	SampleInterval int
}

func DefaultConfig() Config {
	return Config{
		NumBuckets:     defaultNumBuckets,
		NumKeys:        defaultNumKeys,
		Strategy:       SharedExclusive,
		SampleInterval: defaultSampleInterval,
	}
}

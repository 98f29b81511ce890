package util

// RandomKeys returns n distinct pseudo-random keys, deterministic for a
// given seed. The murmur mixing gives the spread; the rare collision is
// skipped so the universe is guaranteed duplicate free.
func RandomKeys(n int, seed uint64) []uint64 {
	keys := make([]uint64, 0, n)
	seen := make(map[uint64]struct{}, n)
	for next := seed; len(keys) < n; next++ {
		k := Mix64(next)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		keys = append(keys, k)
	}
	return keys
}

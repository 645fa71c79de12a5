package utils

import "hash/fnv"

// StableIndex maps s onto [0, n) with FNV-1a, so the same string always picks
// the same slot. n must be positive.
func StableIndex(s string, n int) int {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return int(h.Sum64() % uint64(n))
}
